// Package cards has the playing cards that drive a Tock game, along with the
// deck they are dealt from and the hands players hold.
package cards

import (
	"fmt"
	"strings"
)

type Suit uint8

const (
	Hearts Suit = iota
	Spades
	Diamonds
	Clubs
)

var suitSymbols = [...]string{"♥", "♠", "♦", "♣"}
var suitLetters = [...]string{"H", "S", "D", "C"}

func (s Suit) String() string {
	if int(s) >= len(suitSymbols) {
		return "?"
	}
	return suitSymbols[s]
}

// Letter is an ASCII rendering of the suit, easier to type in a shell.
func (s Suit) Letter() string {
	if int(s) >= len(suitLetters) {
		return "?"
	}
	return suitLetters[s]
}

var Suits = [...]Suit{Hearts, Spades, Diamonds, Clubs}

// Value is the rank of a card. StepValue is not a real card; it licenses a
// single step during a seven split.
type Value uint8

const (
	StepValue Value = 1
	Two       Value = 2
	Three     Value = 3
	Four      Value = 4
	Five      Value = 5
	Six       Value = 6
	Seven     Value = 7
	Eight     Value = 8
	Nine      Value = 9
	Ten       Value = 10
	Jack      Value = 11
	Queen     Value = 12
	King      Value = 13
	Ace       Value = 14
)

var Values = [...]Value{Two, Three, Four, Five, Six, Seven, Eight, Nine, Ten,
	Jack, Queen, King, Ace}

func (v Value) String() string {
	switch v {
	case StepValue:
		return "1"
	case Ten:
		return "T"
	case Jack:
		return "J"
	case Queen:
		return "Q"
	case King:
		return "K"
	case Ace:
		return "A"
	}
	if v >= Two && v <= Nine {
		return string(rune('0' + v))
	}
	return "?"
}

// NumValue is the number of spots the card moves a piece forward. Ace
// moves 1 (or 11, which the move generator handles), Jack does not move at
// all.
func (v Value) NumValue() int {
	switch v {
	case Ace:
		return 1
	case Jack:
		return 0
	}
	return int(v)
}

// Card is an immutable value; two cards are the same card if suit and value
// match.
type Card struct {
	Suit  Suit
	Value Value
}

func (c Card) String() string {
	return c.Suit.String() + c.Value.String()
}

func (c Card) NumValue() int {
	return c.Value.NumValue()
}

// IsExitCard returns whether the card can take a piece out.
func (c Card) IsExitCard() bool {
	return c.Value == Ace || c.Value == King
}

// StepCard is the synthetic one-step card used while splitting a seven.
func StepCard(s Suit) Card {
	return Card{Suit: s, Value: StepValue}
}

// FromString parses cards written as value followed by suit letter, like
// "AH", "TS" or "7C".
func FromString(s string) (Card, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if len(s) != 2 {
		return Card{}, fmt.Errorf("cannot parse card %q", s)
	}
	var c Card
	found := false
	for _, v := range Values {
		if v.String() == s[:1] {
			c.Value = v
			found = true
		}
	}
	if !found {
		return Card{}, fmt.Errorf("unknown card value in %q", s)
	}
	for _, su := range Suits {
		if su.Letter() == s[1:] {
			c.Suit = su
			return c, nil
		}
	}
	return Card{}, fmt.Errorf("unknown suit in %q", s)
}

// MustFromStrings parses a list of cards and panics on error. Only for
// tests and fixed setups.
func MustFromStrings(ss ...string) []Card {
	ret := make([]Card, len(ss))
	for i, s := range ss {
		c, err := FromString(s)
		if err != nil {
			panic(err)
		}
		ret[i] = c
	}
	return ret
}

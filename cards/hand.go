package cards

import (
	"fmt"
	"strings"
)

type cardList []Card

func (cl cardList) String() string {
	parts := make([]string, len(cl))
	for i, c := range cl {
		parts[i] = c.String()
	}
	return strings.Join(parts, ", ")
}

// A Hand is the cards a player holds for one round.
type Hand struct {
	owner string
	cards []Card
}

func NewHand(owner string, cs []Card) *Hand {
	return &Hand{owner: owner, cards: append([]Card{}, cs...)}
}

func (h *Hand) Owner() string { return h.owner }
func (h *Hand) Size() int     { return len(h.cards) }
func (h *Hand) Empty() bool   { return len(h.cards) == 0 }

// Cards returns a copy of the cards in the hand.
func (h *Hand) Cards() []Card {
	return append([]Card{}, h.cards...)
}

func (h *Hand) Has(c Card) bool {
	for _, hc := range h.cards {
		if hc == c {
			return true
		}
	}
	return false
}

// Remove takes c out of the hand.
func (h *Hand) Remove(c Card) error {
	for i, hc := range h.cards {
		if hc == c {
			h.cards = append(h.cards[:i], h.cards[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("card %v not in %s's hand", c, h.owner)
}

func (h *Hand) Add(c Card) {
	h.cards = append(h.cards, c)
}

// Fold empties the hand and returns what was in it.
func (h *Hand) Fold() []Card {
	folded := h.cards
	h.cards = nil
	return folded
}

// HasExitCard returns whether any card in the hand can take a piece out.
func (h *Hand) HasExitCard() bool {
	for _, c := range h.cards {
		if c.IsExitCard() {
			return true
		}
	}
	return false
}

func (h *Hand) String() string {
	if len(h.cards) == 0 {
		return fmt.Sprintf("%s's hand is empty", h.owner)
	}
	return fmt.Sprintf("%s's hand is composed of %d cards: %v", h.owner,
		len(h.cards), cardList(h.cards))
}

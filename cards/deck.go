package cards

import (
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"
	"lukechampine.com/frand"
)

const (
	DeckSize      = 52
	FirstHandSize = 5
	HandSize      = 4
)

// IllegalHandSizeError is returned when a hand of a size other than 4 or 5
// is requested.
type IllegalHandSizeError struct {
	Requested int
}

func (e IllegalHandSizeError) Error() string {
	return fmt.Sprintf("a hand with %d cards was requested: that's not possible", e.Requested)
}

// A Deck deals hands and collects discards. Hands for all seats are drawn
// at the same time, so it is safe for concurrent use.
type Deck struct {
	sync.Mutex
	cards    []Card
	discards []Card

	// stacked decks are dealt in a fixed order, for tests.
	stacked []Card
}

func fullDeck() []Card {
	cs := make([]Card, 0, DeckSize)
	for _, v := range Values {
		for _, s := range Suits {
			cs = append(cs, Card{Suit: s, Value: v})
		}
	}
	return cs
}

// NewDeck returns a shuffled 52-card deck.
func NewDeck() *Deck {
	d := &Deck{}
	d.Refill()
	return d
}

// NewStackedDeck returns a deck that deals cards in exactly the given order,
// and goes back to that order whenever it is refilled.
func NewStackedDeck(order []Card) *Deck {
	d := &Deck{stacked: append([]Card{}, order...)}
	d.Refill()
	return d
}

// Refill puts every card back in the deck and reshuffles it.
func (d *Deck) Refill() {
	d.Lock()
	defer d.Unlock()
	d.discards = d.discards[:0]
	if d.stacked != nil {
		d.cards = append(d.cards[:0], d.stacked...)
		return
	}
	d.cards = fullDeck()
	frand.Shuffle(len(d.cards), func(i, j int) {
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	})
}

// DrawHand deals a hand of n cards to owner. Only 4 and 5 card hands exist.
func (d *Deck) DrawHand(n int, owner string) (*Hand, error) {
	if n != FirstHandSize && n != HandSize {
		return nil, IllegalHandSizeError{Requested: n}
	}
	d.Lock()
	defer d.Unlock()
	if n > len(d.cards) {
		return nil, fmt.Errorf("tried to draw %d cards, deck has %d", n, len(d.cards))
	}
	drawn := make([]Card, n)
	copy(drawn, d.cards[:n])
	d.cards = d.cards[n:]
	log.Debug().Str("owner", owner).Stringer("hand", cardList(drawn)).Msg("drew-hand")
	return NewHand(owner, drawn), nil
}

// Discard puts a played or folded card on the discard pile.
func (d *Deck) Discard(c Card) {
	d.Lock()
	defer d.Unlock()
	d.discards = append(d.discards, c)
}

func (d *Deck) Remaining() int {
	d.Lock()
	defer d.Unlock()
	return len(d.cards)
}

func (d *Deck) DiscardPile() []Card {
	d.Lock()
	defer d.Unlock()
	return append([]Card{}, d.discards...)
}

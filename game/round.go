package game

import (
	"context"
	"fmt"
	"slices"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/domino14/tock/cards"
)

// PlayRound deals, lets teammates exchange a card, and has the seats take
// turns until every hand is empty or the game is won. After the last round
// of a cycle the dealer moves one seat over and the deck is refilled.
func (g *Game) PlayRound(ctx context.Context) error {
	if g.playing != PlayStatePlaying {
		return ErrGameOver
	}
	log.Debug().Int("cycle", g.cycle).Int("round", g.round).Int("dealer", g.dealer).
		Msg("starting-round")

	if g.dealt {
		// Hands were set up from outside; play them out from whoever is on
		// turn.
		g.handsFinished = 0
		for _, s := range g.seats {
			if s.hand == nil || s.hand.Empty() {
				g.handsFinished++
			}
		}
	} else {
		if err := g.deal(ctx, roundHandSizes[g.round]); err != nil {
			return err
		}
		if err := g.exchange(ctx); err != nil {
			return err
		}
		g.onturn = g.dealer
		g.handsFinished = 0
	}
	g.dealt = true

	for g.handsFinished < NumSeats && g.playing == PlayStatePlaying {
		if err := g.PlayTurn(ctx); err != nil {
			return err
		}
	}
	if g.playing != PlayStatePlaying {
		return nil
	}

	g.dealt = false
	g.round++
	if g.round == RoundsPerCycle {
		g.round = 0
		g.cycle++
		g.dealer = (g.dealer + 1) % NumSeats
		g.deck.Refill()
		log.Debug().Int("dealer", g.dealer).Msg("dealer-rotated")
	}
	return nil
}

// deal draws a hand for every seat at once.
func (g *Game) deal(ctx context.Context, handSize int) error {
	hands := make([]*cards.Hand, NumSeats)
	eg, ctx := errgroup.WithContext(ctx)
	for i, s := range g.seats {
		i, s := i, s
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			h, err := g.deck.DrawHand(handSize, s.nickname)
			if err != nil {
				return fmt.Errorf("dealing to seat %d: %w", i, err)
			}
			hands[i] = h
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return err
	}
	for i, s := range g.seats {
		s.hand = hands[i]
		s.folded = false
		s.state = SeatAwaitingMove
		g.emit(Event{Kind: EventDeal, Turn: g.turnnum, PlayerID: s.nickname,
			Color: s.color.String(), Team: TeamOf(s.color)})
	}
	return nil
}

// exchange has every seat pick a card for its partner. All four picks are
// requested at once; each pair swaps once both of its picks are in.
func (g *Game) exchange(ctx context.Context) error {
	offered := make([]cards.Card, NumSeats)
	sits := make([]Situation, NumSeats)
	for i, s := range g.seats {
		sits[i] = g.situation(s)
	}
	eg, ctx := errgroup.WithContext(ctx)
	for i, s := range g.seats {
		i, s := i, s
		eg.Go(func() error {
			hand := sits[i].Hand
			c, err := s.player.ChooseCard(ctx, sits[i], hand)
			if err != nil {
				return fmt.Errorf("seat %d choosing card to exchange: %w", i, err)
			}
			if !slices.Contains(hand, c) {
				return fmt.Errorf("%w: seat %d offered %v", ErrIllegalChoice, i, c)
			}
			offered[i] = c
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return err
	}
	for i := 0; i < NumSeats/2; i++ {
		a, b := g.seats[i], g.seats[i+NumSeats/2]
		swapCards(a.hand, offered[a.idx], b.hand, offered[b.idx])
		log.Debug().Str("a", a.nickname).Str("b", b.nickname).Msg("exchanged")
	}
	for _, s := range g.seats {
		g.emit(Event{Kind: EventExchange, Turn: g.turnnum, PlayerID: s.nickname,
			Color: s.color.String(), Team: TeamOf(s.color)})
	}
	return nil
}

func swapCards(ha *cards.Hand, ca cards.Card, hb *cards.Hand, cb cards.Card) {
	// Both cards were checked against their hands already.
	if err := ha.Remove(ca); err != nil {
		panic(err)
	}
	if err := hb.Remove(cb); err != nil {
		panic(err)
	}
	ha.Add(cb)
	hb.Add(ca)
}

package game

import (
	"context"
	"fmt"
	"slices"

	"github.com/rs/zerolog/log"

	"github.com/domino14/tock/cards"
	"github.com/domino14/tock/move"
)

// splitSeven lets seat s spread the seven steps of marker's card over its
// pieces, one step at a time. Each step is applied to the board right away
// so the next step can be chosen from the resulting position, but kicked
// pieces are not counted, so the board is restored before the player
// answers. A rejected plan starts over from scratch; a confirmed plan is
// returned for the caller to apply for real.
//
// If at some point no piece can make a step, the remaining steps are lost.
func (g *Game) splitSeven(ctx context.Context, s *seat, marker move.Move) ([]move.Move, error) {
	color := marker.Player()
	step := cards.StepCard(marker.Card().Suit)
	snap := g.board.Snapshot()
	defer g.board.Restore(snap)

	for attempt := 1; ; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		plan := make([]move.Move, 0, SevenSteps)
		for len(plan) < SevenSteps {
			options := g.gen.GenAll(color, g.piecesOut[color], step)
			if len(options) == 0 {
				log.Debug().Int("steps", len(plan)).Msg("seven-split-stuck")
				break
			}
			m := options[0]
			if len(options) > 1 {
				var err error
				m, err = s.player.ChooseSevenStep(ctx, g.situation(s), options)
				if err != nil {
					return nil, fmt.Errorf("seat %d choosing seven step: %w", s.idx, err)
				}
				if !slices.Contains(options, m) {
					return nil, fmt.Errorf("%w: seat %d chose step %v", ErrIllegalChoice, s.idx, m)
				}
			}
			g.applyProvisionally(m)
			plan = append(plan, m)
		}

		ok, err := s.player.ConfirmSevenSplit(ctx, g.situation(s), plan)
		g.board.Restore(snap)
		if err != nil {
			return nil, fmt.Errorf("seat %d confirming seven split: %w", s.idx, err)
		}
		if ok {
			log.Debug().Int("attempt", attempt).Int("steps", len(plan)).Msg("seven-split-confirmed")
			return plan, nil
		}
		log.Debug().Int("attempt", attempt).Msg("seven-split-cancelled")
	}
}

// applyProvisionally moves the piece for a seven step without touching any
// counter. Whoever was on the target just disappears until the board is
// restored.
func (g *Game) applyProvisionally(m move.Move) {
	b := g.board
	b.SpotAt(m.Origin().Color, m.Origin().Index).SetEmpty()
	if m.Target().House {
		b.HouseAt(m.Target().Color, m.Target().Index).SetOccupant(m.Player())
		return
	}
	b.SpotAt(m.Target().Color, m.Target().Index).SetOccupant(m.Player(), false)
}

// Package player has the non-human seat fillers: a bot that plays at
// random and a bot whose decisions are written in Lua.
package player

import (
	"context"

	"github.com/rs/zerolog/log"
	"lukechampine.com/frand"

	"github.com/domino14/tock/cards"
	"github.com/domino14/tock/game"
	"github.com/domino14/tock/move"
)

// RandomPlayer picks uniformly among its options. When giving a card to
// its partner it holds on to aces and kings if it can.
type RandomPlayer struct {
	Name string
}

func NewRandomPlayer(name string) *RandomPlayer {
	return &RandomPlayer{Name: name}
}

func (p *RandomPlayer) ChooseCard(ctx context.Context, sit game.Situation, hand []cards.Card) (cards.Card, error) {
	var spare []cards.Card
	for _, c := range hand {
		if !c.IsExitCard() {
			spare = append(spare, c)
		}
	}
	if len(spare) == 0 {
		spare = hand
	}
	return spare[frand.Intn(len(spare))], nil
}

func (p *RandomPlayer) ChooseMove(ctx context.Context, sit game.Situation, options []move.Move) (move.Move, error) {
	return options[frand.Intn(len(options))], nil
}

func (p *RandomPlayer) ChooseSevenStep(ctx context.Context, sit game.Situation, options []move.Move) (move.Move, error) {
	return options[frand.Intn(len(options))], nil
}

func (p *RandomPlayer) ConfirmSevenSplit(ctx context.Context, sit game.Situation, plan []move.Move) (bool, error) {
	return true, nil
}

func (p *RandomPlayer) Notify(evt game.Event) {
	if evt.Kind == game.EventWin {
		log.Debug().Str("bot", p.Name).Int("team", evt.Team).Msg("bot-saw-win")
	}
}

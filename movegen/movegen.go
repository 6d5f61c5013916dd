// Package movegen turns a card into the moves it allows. Every candidate
// goes through the Validator before it is returned, so callers only ever
// see legal moves; an empty result simply means the card can't be played.
package movegen

import (
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"github.com/domino14/tock/board"
	"github.com/domino14/tock/cards"
	"github.com/domino14/tock/move"
)

// MoveGenerator is the interface the turn engine uses.
type MoveGenerator interface {
	GenAll(player board.Color, piecesOut int, card cards.Card) []move.Move
	GenAllForHand(player board.Color, piecesOut int, hand []cards.Card) []move.Move
}

// Generator generates moves on one board. It holds no state besides the
// board, so it always reflects the board's current occupancy.
type Generator struct {
	board     *board.Board
	validator *Validator
}

func NewGenerator(b *board.Board) *Generator {
	return &Generator{board: b, validator: NewValidator(b)}
}

func (gen *Generator) Validator() *Validator {
	return gen.validator
}

// GenAll generates every legal move for the pieces of color player using
// card. piecesOut is the number of pieces player has out of the start area.
func (gen *Generator) GenAll(player board.Color, piecesOut int, card cards.Card) []move.Move {
	var cands []move.Move
	switch card.Value {
	case cards.Ace:
		cands = append(cands, gen.outMove(player, card))
		cands = append(cands, gen.forward(player, card, 1, 11)...)
	case cards.King:
		cands = append(cands, gen.outMove(player, card))
		cands = append(cands, gen.forward(player, card, 13)...)
	case cards.Jack:
		cands = gen.switches(player, card)
	case cards.Four:
		cands = gen.forward(player, card, 4)
		for _, s := range gen.board.OccupiedSpotsOf(player) {
			t := gen.board.SpotFromDistance(s, -4)
			cands = append(cands, move.NewRingMove(s.Coord(), t.Coord(), -4, card, player))
		}
	case cards.Seven:
		cands = []move.Move{move.NewSevenMove(card, player)}
	default:
		// Includes the one-step card used while splitting a seven.
		cands = gen.forward(player, card, card.NumValue())
	}

	plays := lo.Filter(cands, func(m move.Move, _ int) bool {
		return gen.validator.Valid(m, piecesOut)
	})
	log.Debug().Str("card", card.String()).Stringer("player", player).
		Int("candidates", len(cands)).Int("valid", len(plays)).Msg("gen-all")
	return plays
}

// GenAllForHand is the union of GenAll over every card of a hand.
func (gen *Generator) GenAllForHand(player board.Color, piecesOut int, hand []cards.Card) []move.Move {
	return lo.FlatMap(hand, func(c cards.Card, _ int) []move.Move {
		return gen.GenAll(player, piecesOut, c)
	})
}

func (gen *Generator) outMove(player board.Color, card cards.Card) move.Move {
	return move.NewOutMove(gen.board.EntranceSpot(player).Coord(), card, player)
}

// forward generates a MOVE for each distance and piece, plus an ENTER
// wherever that distance reaches one of the player's houses.
func (gen *Generator) forward(player board.Color, card cards.Card, distances ...int) []move.Move {
	var ret []move.Move
	for _, s := range gen.board.OccupiedSpotsOf(player) {
		for _, d := range distances {
			t := gen.board.SpotFromDistance(s, d)
			ret = append(ret, move.NewRingMove(s.Coord(), t.Coord(), d, card, player))
			if h := gen.board.HouseFromDistance(s, d, player); h != nil {
				ret = append(ret, move.NewEnterMove(s.Coord(), h.Coord(), d, card, player))
			}
		}
	}
	return ret
}

func (gen *Generator) switches(player board.Color, card cards.Card) []move.Move {
	var ret []move.Move
	others := gen.board.OccupiedSpotsOfOthers(player)
	for _, s := range gen.board.OccupiedSpotsOf(player) {
		for _, o := range others {
			ret = append(ret, move.NewSwitchMove(s.Coord(), o.Coord(), card, player))
		}
	}
	return ret
}

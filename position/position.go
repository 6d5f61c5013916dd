// Package position reads and writes game positions as YAML, so a game can
// be set up in a given state from a file, a test or the shell.
//
//	onturn: 1
//	pieces:
//	  red: [red-5, house-red-3]
//	  blue: [blue-0]
//	blocking: [blue-0]
//	hands:
//	  - [AH, 7C]
//	  - [KS]
package position

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/domino14/tock/board"
	"github.com/domino14/tock/cards"
	"github.com/domino14/tock/game"
)

type Position struct {
	Onturn int                 `yaml:"onturn"`
	Pieces map[string][]string `yaml:"pieces"`
	// Blocking lists entrances held by a piece that just came out.
	Blocking []string   `yaml:"blocking,omitempty"`
	Hands    [][]string `yaml:"hands,omitempty"`
}

func Parse(data []byte) (*Position, error) {
	p := &Position{}
	if err := yaml.Unmarshal(data, p); err != nil {
		return nil, fmt.Errorf("parsing position: %w", err)
	}
	return p, nil
}

func Load(path string) (*Position, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

func (p *Position) Dump() ([]byte, error) {
	return yaml.Marshal(p)
}

// Apply replaces the board, the hands and the turn of g with the position.
// The board is left untouched if the position doesn't fit it.
func (p *Position) Apply(g *game.Game) error {
	b := g.Board().Copy()
	b.Clear()
	for name, coords := range p.Pieces {
		c, err := board.ColorFromString(name)
		if err != nil {
			return err
		}
		if len(coords) > b.HouseSize() {
			return fmt.Errorf("%v has %d pieces, at most %d fit", c, len(coords), b.HouseSize())
		}
		for _, s := range coords {
			co, err := board.ParseCoord(s)
			if err != nil {
				return err
			}
			if !b.InBounds(co) {
				return fmt.Errorf("%v is not on the board", co)
			}
			if b.CellAt(co).Occupied() {
				return fmt.Errorf("%v is listed twice", co)
			}
			if co.House {
				if co.Color != c {
					return fmt.Errorf("%v piece cannot be in %v", c, co)
				}
				b.HouseAt(co.Color, co.Index).SetOccupant(c)
			} else {
				b.SpotAt(co.Color, co.Index).SetOccupant(c, false)
			}
		}
	}
	for _, s := range p.Blocking {
		co, err := board.ParseCoord(s)
		if err != nil {
			return err
		}
		if co.House || co.Index != 0 || !b.InBounds(co) {
			return fmt.Errorf("only an entrance can be blocking, not %v", co)
		}
		spot := b.SpotAt(co.Color, 0)
		if spot.Occupant() != co.Color {
			return fmt.Errorf("%v must hold a %v piece to be blocking", co, co.Color)
		}
		spot.SetOccupant(co.Color, true)
	}
	if len(p.Hands) > game.NumSeats {
		return fmt.Errorf("%d hands for %d seats", len(p.Hands), game.NumSeats)
	}
	hands := make([][]cards.Card, len(p.Hands))
	for i, h := range p.Hands {
		cs, err := parseCards(h)
		if err != nil {
			return fmt.Errorf("hand %d: %w", i, err)
		}
		hands[i] = cs
	}
	if p.Onturn < 0 || p.Onturn >= game.NumSeats {
		return fmt.Errorf("no seat %d", p.Onturn)
	}

	g.Board().CopyFrom(b)
	g.RecountPieces()
	for i, cs := range hands {
		g.SetHand(i, cs)
	}
	g.SetOnturn(p.Onturn)
	return nil
}

func parseCards(ss []string) ([]cards.Card, error) {
	ret := make([]cards.Card, len(ss))
	for i, s := range ss {
		c, err := cards.FromString(s)
		if err != nil {
			return nil, err
		}
		ret[i] = c
	}
	return ret, nil
}

// FromGame captures the current position of g.
func FromGame(g *game.Game) *Position {
	b := g.Board()
	p := &Position{Onturn: g.Onturn(), Pieces: map[string][]string{}}
	for _, c := range board.Colors {
		var coords []string
		for _, s := range b.OccupiedSpotsOf(c) {
			coords = append(coords, s.String())
			if s.Blocking() {
				p.Blocking = append(p.Blocking, s.String())
			}
		}
		for _, h := range b.OccupiedHousesOf(c) {
			coords = append(coords, h.String())
		}
		if len(coords) > 0 {
			p.Pieces[c.String()] = coords
		}
	}
	sort.Strings(p.Blocking)
	for i := 0; i < game.NumSeats; i++ {
		hand := g.Hand(i)
		strs := make([]string, len(hand))
		for j, c := range hand {
			strs[j] = c.Value.String() + c.Suit.Letter()
		}
		p.Hands = append(p.Hands, strs)
	}
	return p
}

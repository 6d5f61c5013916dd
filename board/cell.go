package board

import (
	"fmt"
	"strconv"
	"strings"
)

// Coord addresses a cell on the board without pointing into it, so it can
// be stored in moves and survive a snapshot/restore.
type Coord struct {
	Color Color
	Index int
	House bool
}

func (c Coord) String() string {
	if c.House {
		return fmt.Sprintf("house-%v-%d", c.Color, c.Index)
	}
	return fmt.Sprintf("%v-%d", c.Color, c.Index)
}

// ParseCoord is the inverse of Coord.String: it reads "blue-7" or
// "house-blue-2".
func ParseCoord(s string) (Coord, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	var co Coord
	if rest, ok := strings.CutPrefix(s, "house-"); ok {
		co.House = true
		s = rest
	}
	name, idx, ok := strings.Cut(s, "-")
	if !ok {
		return Coord{}, fmt.Errorf("cannot parse coordinate %q", s)
	}
	c, err := ColorFromString(name)
	if err != nil {
		return Coord{}, err
	}
	i, err := strconv.Atoi(idx)
	if err != nil || i < 0 {
		return Coord{}, fmt.Errorf("bad index in coordinate %q", s)
	}
	co.Color = c
	co.Index = i
	return co, nil
}

// InBounds returns whether co addresses a cell of b.
func (b *Board) InBounds(co Coord) bool {
	if !co.Color.Valid() || co.Index < 0 {
		return false
	}
	if co.House {
		return co.Index < b.houseSize
	}
	return co.Index < b.regionSize
}

// Cell is an occupancy cell: either a ring Spot or a House. The two kinds
// only differ in how pieces get to them.
type Cell interface {
	Coord() Coord
	Occupant() Color
	Occupied() bool
	String() string
}

// A Spot is a single cell of the ring.
type Spot struct {
	color    Color
	index    int
	occupant Color
	// blocking is set only for a color's own entrance that was just reached
	// with an OUT move.
	blocking bool
}

func (s *Spot) Color() Color     { return s.color }
func (s *Spot) Index() int       { return s.index }
func (s *Spot) Occupant() Color  { return s.occupant }
func (s *Spot) Occupied() bool   { return s.occupant != NoColor }
func (s *Spot) Blocking() bool   { return s.blocking }
func (s *Spot) IsEntrance() bool { return s.index == 0 }
func (s *Spot) Coord() Coord     { return Coord{Color: s.color, Index: s.index} }
func (s *Spot) String() string   { return s.Coord().String() }

// SetOccupant puts a piece of color c on the spot and returns the color of
// the piece that was there before, if any. blocking may only be requested
// for the color's own entrance.
func (s *Spot) SetOccupant(c Color, blocking bool) Color {
	if blocking && (s.index != 0 || s.color != c) {
		panic(fmt.Sprintf("spot %v cannot be blocked by %v", s, c))
	}
	kicked := s.occupant
	s.occupant = c
	s.blocking = blocking
	return kicked
}

func (s *Spot) SetEmpty() {
	s.occupant = NoColor
	s.blocking = false
}

// A House is a cell of a color's private track.
type House struct {
	color    Color
	index    int
	occupant Color
}

func (h *House) Color() Color    { return h.color }
func (h *House) Index() int      { return h.index }
func (h *House) Occupant() Color { return h.occupant }
func (h *House) Occupied() bool  { return h.occupant != NoColor }
func (h *House) Coord() Coord    { return Coord{Color: h.color, Index: h.index, House: true} }
func (h *House) String() string  { return h.Coord().String() }

// SetOccupant fills the house. Nobody is ever kicked out of a house; an
// occupied house here means move generation is broken.
func (h *House) SetOccupant(c Color) {
	if h.occupant != NoColor {
		panic(fmt.Sprintf("house %v already occupied by %v", h, h.occupant))
	}
	h.occupant = c
}

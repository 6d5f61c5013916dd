// Package board holds the state of a Tock board: the ring of spots shared by
// all four colors and the four private house tracks.
package board

import (
	"fmt"
)

const (
	DefaultRegionSize = 17
	DefaultHouseSize  = 4
)

// A Board owns every Spot of the ring and every House. A spot or house
// holds at most one piece.
type Board struct {
	regionSize int
	houseSize  int

	spots  []Spot
	houses []House
}

// NewBoard creates an empty board. Ring spots are laid out color after
// color, so ring index = color*regionSize + index.
func NewBoard(regionSize, houseSize int) *Board {
	if regionSize <= houseSize || houseSize < 1 {
		panic(fmt.Sprintf("bad board dimensions: region %d, house %d", regionSize, houseSize))
	}
	b := &Board{
		regionSize: regionSize,
		houseSize:  houseSize,
		spots:      make([]Spot, regionSize*NumColors),
		houses:     make([]House, houseSize*NumColors),
	}
	for _, c := range Colors {
		for i := 0; i < regionSize; i++ {
			b.spots[b.ringIndex(c, i)] = Spot{color: c, index: i, occupant: NoColor}
		}
		for i := 0; i < houseSize; i++ {
			b.houses[int(c)*houseSize+i] = House{color: c, index: i, occupant: NoColor}
		}
	}
	return b
}

// NewDefaultBoard is the 68-spot board of the reference rules.
func NewDefaultBoard() *Board {
	return NewBoard(DefaultRegionSize, DefaultHouseSize)
}

func (b *Board) RegionSize() int { return b.regionSize }
func (b *Board) HouseSize() int  { return b.houseSize }
func (b *Board) RingLength() int { return len(b.spots) }

func (b *Board) ringIndex(c Color, idx int) int {
	return int(c)*b.regionSize + idx
}

func (b *Board) mod(i int) int {
	n := len(b.spots)
	return ((i % n) + n) % n
}

// RingIndexOf returns the position of s in the cyclic ring.
func (b *Board) RingIndexOf(s *Spot) int {
	return b.ringIndex(s.color, s.index)
}

// SpotAt looks up a ring spot. Asking for a spot that does not exist is a
// programming error.
func (b *Board) SpotAt(c Color, idx int) *Spot {
	if !c.Valid() || idx < 0 || idx >= b.regionSize {
		panic(fmt.Sprintf("no spot %v-%d", c, idx))
	}
	return &b.spots[b.ringIndex(c, idx)]
}

func (b *Board) HouseAt(c Color, idx int) *House {
	if !c.Valid() || idx < 0 || idx >= b.houseSize {
		panic(fmt.Sprintf("no house %v-%d", c, idx))
	}
	return &b.houses[int(c)*b.houseSize+idx]
}

// CellAt resolves a coordinate to its spot or house.
func (b *Board) CellAt(co Coord) Cell {
	if co.House {
		return b.HouseAt(co.Color, co.Index)
	}
	return b.SpotAt(co.Color, co.Index)
}

// EntranceSpot is the color's index-0 spot, where its pieces come out.
func (b *Board) EntranceSpot(c Color) *Spot {
	return b.SpotAt(c, 0)
}

// SpotFromDistance walks delta spots around the ring from origin. Negative
// deltas walk backwards; the walk wraps in both directions.
func (b *Board) SpotFromDistance(origin *Spot, delta int) *Spot {
	return &b.spots[b.mod(b.RingIndexOf(origin)+delta)]
}

// HouseFromDistance returns the house a piece of color player on origin
// reaches after delta steps, or nil if it cannot reach one. Only a piece in
// the region right before the player's own region, or the piece that just
// came out onto the player's entrance, may reach a house. The houseSize
// ring positions right after the player's entrance map onto houses
// 0..houseSize-1.
func (b *Board) HouseFromDistance(origin *Spot, delta int, player Color) *House {
	standard := origin.color == player.Prev()
	justExited := origin.color == player && origin.index == 0 && origin.blocking
	if !standard && !justExited {
		return nil
	}
	target := b.mod(b.RingIndexOf(origin) + delta)
	first := b.ringIndex(player, 0) + 1
	offset := b.mod(target - first)
	if offset >= b.houseSize {
		return nil
	}
	return b.HouseAt(player, offset)
}

// OccupiedSpotsOf returns the ring spots holding pieces of color c, in ring
// order.
func (b *Board) OccupiedSpotsOf(c Color) []*Spot {
	var ret []*Spot
	for i := range b.spots {
		if b.spots[i].occupant == c {
			ret = append(ret, &b.spots[i])
		}
	}
	return ret
}

// OccupiedSpotsOfOthers returns the ring spots holding pieces of any color
// other than c.
func (b *Board) OccupiedSpotsOfOthers(c Color) []*Spot {
	var ret []*Spot
	for i := range b.spots {
		if b.spots[i].Occupied() && b.spots[i].occupant != c {
			ret = append(ret, &b.spots[i])
		}
	}
	return ret
}

func (b *Board) OccupiedHousesOf(c Color) []*House {
	var ret []*House
	for i := 0; i < b.houseSize; i++ {
		h := b.HouseAt(c, i)
		if h.Occupied() {
			ret = append(ret, h)
		}
	}
	return ret
}

// PiecesOut counts the pieces of color c that have left the start area,
// i.e. those on the ring plus those in the houses.
func (b *Board) PiecesOut(c Color) int {
	return len(b.OccupiedSpotsOf(c)) + len(b.OccupiedHousesOf(c))
}

func (b *Board) AllHousesFilled(c Color) bool {
	for i := 0; i < b.houseSize; i++ {
		if !b.HouseAt(c, i).Occupied() {
			return false
		}
	}
	return true
}

// Clear empties the whole board.
func (b *Board) Clear() {
	for i := range b.spots {
		b.spots[i].SetEmpty()
	}
	for i := range b.houses {
		b.houses[i].occupant = NoColor
	}
}

// Copy returns a deep copy of the board.
func (b *Board) Copy() *Board {
	nb := &Board{
		regionSize: b.regionSize,
		houseSize:  b.houseSize,
		spots:      make([]Spot, len(b.spots)),
		houses:     make([]House, len(b.houses)),
	}
	copy(nb.spots, b.spots)
	copy(nb.houses, b.houses)
	return nb
}

// CopyFrom overwrites the occupancy of every cell with that of o, which must
// have the same geometry.
func (b *Board) CopyFrom(o *Board) {
	if b.regionSize != o.regionSize || b.houseSize != o.houseSize {
		panic("boards have different geometry")
	}
	copy(b.spots, o.spots)
	copy(b.houses, o.houses)
}

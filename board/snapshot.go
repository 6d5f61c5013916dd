package board

import (
	"encoding/binary"

	"github.com/cespare/xxhash"
)

type occupancy struct {
	occupant Color
	blocking bool
}

// A Snapshot is an independent copy of the occupancy of every cell.
type Snapshot struct {
	spots  []occupancy
	houses []Color
}

// Snapshot copies the occupancy state. It exists for the seven split, which
// previews moves on the live board and then rolls them back.
func (b *Board) Snapshot() Snapshot {
	s := Snapshot{
		spots:  make([]occupancy, len(b.spots)),
		houses: make([]Color, len(b.houses)),
	}
	for i := range b.spots {
		s.spots[i] = occupancy{b.spots[i].occupant, b.spots[i].blocking}
	}
	for i := range b.houses {
		s.houses[i] = b.houses[i].occupant
	}
	return s
}

// Restore replaces the whole occupancy state with the one in s.
func (b *Board) Restore(s Snapshot) {
	if len(s.spots) != len(b.spots) || len(s.houses) != len(b.houses) {
		panic("snapshot does not fit this board")
	}
	for i := range b.spots {
		b.spots[i].occupant = s.spots[i].occupant
		b.spots[i].blocking = s.spots[i].blocking
	}
	for i := range b.houses {
		b.houses[i].occupant = s.houses[i]
	}
}

func (s Snapshot) Equal(o Snapshot) bool {
	if len(s.spots) != len(o.spots) || len(s.houses) != len(o.houses) {
		return false
	}
	for i := range s.spots {
		if s.spots[i] != o.spots[i] {
			return false
		}
	}
	for i := range s.houses {
		if s.houses[i] != o.houses[i] {
			return false
		}
	}
	return true
}

// Fingerprint hashes the occupancy record. Two snapshots with equal
// occupancy have equal fingerprints.
func (s Snapshot) Fingerprint() uint64 {
	buf := make([]byte, 0, 2*len(s.spots)+len(s.houses)+8)
	buf = binary.LittleEndian.AppendUint32(buf, uint32(len(s.spots)))
	buf = binary.LittleEndian.AppendUint32(buf, uint32(len(s.houses)))
	for _, o := range s.spots {
		var bl byte
		if o.blocking {
			bl = 1
		}
		buf = append(buf, byte(o.occupant), bl)
	}
	for _, h := range s.houses {
		buf = append(buf, byte(h))
	}
	return xxhash.Sum64(buf)
}

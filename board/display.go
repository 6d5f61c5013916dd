package board

import (
	"fmt"
	"strings"
)

func pieceRune(c Color, blocking bool) string {
	if c == NoColor {
		return "."
	}
	r := c.String()[:1]
	if blocking {
		return strings.ToUpper(r)
	}
	return r
}

// ToDisplayText renders one line per region followed by the region's
// houses. Pieces are shown by the first letter of their color; a blocking
// piece is upper-cased.
func (b *Board) ToDisplayText() string {
	var sb strings.Builder
	for _, c := range Colors {
		fmt.Fprintf(&sb, "%-7s", c.String())
		for i := 0; i < b.regionSize; i++ {
			s := b.SpotAt(c, i)
			sb.WriteString(pieceRune(s.occupant, s.blocking))
			sb.WriteString(" ")
		}
		sb.WriteString("  [")
		for i := 0; i < b.houseSize; i++ {
			sb.WriteString(pieceRune(b.HouseAt(c, i).occupant, false))
		}
		sb.WriteString("]\n")
	}
	return sb.String()
}

// OccupancyReport lists every occupied spot, one per line.
func (b *Board) OccupancyReport() string {
	var sb strings.Builder
	for i := range b.spots {
		s := &b.spots[i]
		if !s.Occupied() {
			continue
		}
		fmt.Fprintf(&sb, "Spot %v is occupied by %v.", s, s.occupant)
		if s.blocking {
			sb.WriteString(" This spot is blocked.")
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

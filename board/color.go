package board

import (
	"fmt"
	"strings"
)

// Color is one of the four fixed colors. Each color owns one contiguous
// region of the ring and one private house track. Ring order is the order
// of the constants below.
type Color int8

const (
	NoColor Color = iota - 1
	Red
	Blue
	Green
	Yellow
)

const NumColors = 4

var colorNames = [NumColors]string{"red", "blue", "green", "yellow"}

// Colors lists every color in ring order.
var Colors = [NumColors]Color{Red, Blue, Green, Yellow}

func (c Color) String() string {
	if c < 0 || int(c) >= NumColors {
		return "none"
	}
	return colorNames[c]
}

// Next is the color whose region follows this one around the ring.
func (c Color) Next() Color {
	return (c + 1) % NumColors
}

// Prev is the color whose region precedes this one around the ring. Pieces
// of color c enter their house from the Prev region.
func (c Color) Prev() Color {
	return (c + NumColors - 1) % NumColors
}

// Valid returns whether c is one of the four playing colors.
func (c Color) Valid() bool {
	return c >= Red && c <= Yellow
}

// ColorFromString parses a color name (case-insensitive).
func ColorFromString(s string) (Color, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, n := range colorNames {
		if n == s {
			return Color(i), nil
		}
	}
	return NoColor, fmt.Errorf("unknown color %q", s)
}

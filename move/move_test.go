package move

import (
	"testing"

	"github.com/matryer/is"

	"github.com/domino14/tock/board"
	"github.com/domino14/tock/cards"
)

func card(s string) cards.Card {
	return cards.MustFromStrings(s)[0]
}

func TestRingMoveDirection(t *testing.T) {
	is := is.New(t)
	o := board.Coord{Color: board.Blue, Index: 5}
	fwd := NewRingMove(o, board.Coord{Color: board.Blue, Index: 9}, 4, card("4H"), board.Red)
	back := NewRingMove(o, board.Coord{Color: board.Blue, Index: 1}, -4, card("4H"), board.Red)
	is.Equal(fwd.Action(), MoveTypeMove)
	is.Equal(back.Action(), MoveTypeBack)
	is.Equal(back.Distance(), -4)
}

func TestMovesAreValues(t *testing.T) {
	is := is.New(t)
	o := board.Coord{Color: board.Blue, Index: 5}
	tg := board.Coord{Color: board.Blue, Index: 8}
	m1 := NewRingMove(o, tg, 3, card("3S"), board.Red)
	m2 := NewRingMove(o, tg, 3, card("3S"), board.Red)
	m3 := NewRingMove(o, tg, 3, card("3C"), board.Red)
	is.Equal(m1, m2)
	is.True(m1 != m3)

	seen := map[Move]bool{m1: true}
	is.True(seen[m2])
	is.True(!seen[m3])
	is.Equal(m1.WithPlayer(board.Green).Player(), board.Green)
	is.Equal(m1.Player(), board.Red)
}

func TestDescriptions(t *testing.T) {
	is := is.New(t)
	b := board.NewDefaultBoard()
	b.SpotAt(board.Red, 3).SetOccupant(board.Red, false)
	b.SpotAt(board.Red, 8).SetOccupant(board.Green, false)
	b.SpotAt(board.Blue, 2).SetOccupant(board.Blue, false)

	mv := NewRingMove(board.Coord{Color: board.Red, Index: 3},
		board.Coord{Color: board.Red, Index: 8}, 5, card("5H"), board.Red)
	is.Equal(mv.Description(b),
		"Play ♥5 to move piece currently in spot red-3 to spot red-8 and kick the green piece which is in the spot.")

	back := NewRingMove(board.Coord{Color: board.Red, Index: 3},
		board.Coord{Color: board.Yellow, Index: 16}, -4, card("4D"), board.Red)
	is.Equal(back.Description(b),
		"Play ♦4 to move piece currently in spot red-3 back to spot yellow-16.")

	out := NewOutMove(board.Coord{Color: board.Red}, card("KS"), board.Red)
	is.Equal(out.Description(b), "Play ♠K to take a piece out and place it in red-0.")

	sw := NewSwitchMove(board.Coord{Color: board.Red, Index: 3},
		board.Coord{Color: board.Blue, Index: 2}, card("JC"), board.Red)
	is.Equal(sw.Description(b),
		"Play ♣J to switch piece in spot red-3 with the blue piece in spot blue-2.")

	enter := NewEnterMove(board.Coord{Color: board.Yellow, Index: 16},
		board.Coord{Color: board.Red, Index: 1, House: true}, 3, card("3H"), board.Red)
	is.Equal(enter.Description(b),
		"Play ♥3 to move piece currently in spot yellow-16 to house spot house-red-1.")

	is.Equal(NewSevenMove(card("7H"), board.Red).Description(b),
		"Play ♥7 to split seven steps among your pieces.")
}

func TestShortDescription(t *testing.T) {
	is := is.New(t)
	mv := NewRingMove(board.Coord{Color: board.Red, Index: 3},
		board.Coord{Color: board.Red, Index: 8}, 5, card("5H"), board.Red)
	is.Equal(mv.ShortDescription(), "♥5 red-3 > red-8")
	is.Equal(NewOutMove(board.Coord{Color: board.Blue}, card("AS"), board.Blue).ShortDescription(),
		"♠A out blue-0")
	is.Equal(NewSevenMove(card("7C"), board.Blue).ShortDescription(), "♣7 split")
}

func TestPlanString(t *testing.T) {
	is := is.New(t)
	is.Equal(PlanString(nil), "(no steps)")
	step := NewRingMove(board.Coord{Color: board.Red, Index: 3},
		board.Coord{Color: board.Red, Index: 4}, 1, cards.StepCard(cards.Hearts), board.Red)
	is.Equal(PlanString([]Move{step}), "1: red-3 -> red-4\n")
}

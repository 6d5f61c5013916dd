package movegen

import (
	"testing"

	"github.com/matryer/is"
	"github.com/stretchr/testify/assert"

	"github.com/domino14/tock/board"
	"github.com/domino14/tock/cards"
	"github.com/domino14/tock/move"
)

func card(s string) cards.Card {
	return cards.MustFromStrings(s)[0]
}

func coord(c board.Color, i int) board.Coord {
	return board.Coord{Color: c, Index: i}
}

func house(c board.Color, i int) board.Coord {
	return board.Coord{Color: c, Index: i, House: true}
}

func TestAceWithNoPiecesOut(t *testing.T) {
	is := is.New(t)
	b := board.NewDefaultBoard()
	gen := NewGenerator(b)
	plays := gen.GenAll(board.Red, 0, card("AH"))
	is.Equal(len(plays), 1)
	is.Equal(plays[0], move.NewOutMove(coord(board.Red, 0), card("AH"), board.Red))
}

func TestFourNearHouse(t *testing.T) {
	b := board.NewDefaultBoard()
	b.SpotAt(board.Blue, 14).SetOccupant(board.Green, false)
	gen := NewGenerator(b)
	c := card("4S")
	plays := gen.GenAll(board.Green, 1, c)
	assert.ElementsMatch(t, []move.Move{
		move.NewRingMove(coord(board.Blue, 14), coord(board.Green, 1), 4, c, board.Green),
		move.NewRingMove(coord(board.Blue, 14), coord(board.Blue, 10), -4, c, board.Green),
		move.NewEnterMove(coord(board.Blue, 14), house(board.Green, 0), 4, c, board.Green),
	}, plays)
}

func TestOutGating(t *testing.T) {
	is := is.New(t)
	b := board.NewDefaultBoard()
	v := NewValidator(b)
	out := move.NewOutMove(coord(board.Red, 0), card("KH"), board.Red)
	for n := 0; n < b.HouseSize(); n++ {
		is.True(v.Valid(out, n))
	}
	is.True(!v.Valid(out, b.HouseSize()))

	b.SpotAt(board.Red, 0).SetOccupant(board.Red, true)
	is.True(!v.Valid(out, 1))
	// A piece that is not blocking gets kicked instead.
	b.SpotAt(board.Red, 0).SetOccupant(board.Blue, false)
	is.True(v.Valid(out, 1))
}

func TestPathBlocking(t *testing.T) {
	is := is.New(t)
	b := board.NewDefaultBoard()
	b.SpotAt(board.Blue, 0).SetOccupant(board.Blue, true)
	origin := b.SpotAt(board.Red, 14)
	origin.SetOccupant(board.Red, false)
	v := NewValidator(b)

	// blue-0 is 3 spots ahead of red-14.
	for d := 1; d <= 13; d++ {
		tg := b.SpotFromDistance(origin, d)
		m := move.NewRingMove(origin.Coord(), tg.Coord(), d, card("KH"), board.Red)
		is.Equal(v.Valid(m, 1), d < 3)
	}

	// and going backwards from blue-2.
	origin.SetEmpty()
	origin = b.SpotAt(board.Blue, 2)
	origin.SetOccupant(board.Red, false)
	for d := -1; d >= -4; d-- {
		tg := b.SpotFromDistance(origin, d)
		m := move.NewRingMove(origin.Coord(), tg.Coord(), d, card("4H"), board.Red)
		is.Equal(v.Valid(m, 1), d > -2)
	}
}

func TestMismatchedTarget(t *testing.T) {
	is := is.New(t)
	b := board.NewDefaultBoard()
	b.SpotAt(board.Red, 3).SetOccupant(board.Red, false)
	v := NewValidator(b)
	m := move.NewRingMove(coord(board.Red, 3), coord(board.Red, 9), 5, card("5H"), board.Red)
	is.True(!v.Valid(m, 1))
	// Not the player's piece.
	m = move.NewRingMove(coord(board.Red, 3), coord(board.Red, 8), 5, card("5H"), board.Blue)
	is.True(!v.Valid(m, 1))
}

func TestKickIsLegal(t *testing.T) {
	is := is.New(t)
	b := board.NewDefaultBoard()
	b.SpotAt(board.Red, 3).SetOccupant(board.Red, false)
	b.SpotAt(board.Red, 8).SetOccupant(board.Yellow, false)
	gen := NewGenerator(b)
	plays := gen.GenAll(board.Red, 1, card("5D"))
	is.Equal(plays, []move.Move{
		move.NewRingMove(coord(board.Red, 3), coord(board.Red, 8), 5, card("5D"), board.Red),
	})
}

func TestSwitch(t *testing.T) {
	is := is.New(t)
	b := board.NewDefaultBoard()
	b.SpotAt(board.Red, 3).SetOccupant(board.Red, false)
	b.SpotAt(board.Red, 10).SetOccupant(board.Red, false)
	b.SpotAt(board.Green, 4).SetOccupant(board.Green, false)
	b.SpotAt(board.Blue, 0).SetOccupant(board.Blue, true)
	gen := NewGenerator(b)
	plays := gen.GenAll(board.Red, 2, card("JC"))
	// blue-0 is blocking, so only the green piece can be switched with.
	is.Equal(len(plays), 2)
	for _, p := range plays {
		is.Equal(p.Action(), move.MoveTypeSwitch)
		is.Equal(p.Target(), coord(board.Green, 4))
	}

	b.Clear()
	b.SpotAt(board.Red, 3).SetOccupant(board.Red, false)
	is.Equal(len(gen.GenAll(board.Red, 1, card("JC"))), 0)
}

func TestEnterFillOrder(t *testing.T) {
	is := is.New(t)
	b := board.NewDefaultBoard()
	b.SpotAt(board.Yellow, 15).SetOccupant(board.Red, false)
	v := NewValidator(b)
	// yellow-15 + 5 is red-3, the third house position.
	enter := move.NewEnterMove(coord(board.Yellow, 15), house(board.Red, 2), 5, card("5H"), board.Red)
	is.True(v.Valid(enter, 2))

	b.HouseAt(board.Red, 3).SetOccupant(board.Red)
	is.True(v.Valid(enter, 2))

	b.HouseAt(board.Red, 2).SetOccupant(board.Red)
	is.True(!v.Valid(enter, 3))

	b.Clear()
	b.SpotAt(board.Yellow, 15).SetOccupant(board.Red, false)
	b.HouseAt(board.Red, 0).SetOccupant(board.Red)
	is.True(!v.Valid(enter, 2))

	// wrong distance for the house
	bad := move.NewEnterMove(coord(board.Yellow, 15), house(board.Red, 1), 5, card("5H"), board.Red)
	is.True(!v.Valid(bad, 2))
}

func TestEnterThroughBlockedEntrance(t *testing.T) {
	is := is.New(t)
	b := board.NewDefaultBoard()
	b.SpotAt(board.Yellow, 16).SetOccupant(board.Red, false)
	b.SpotAt(board.Red, 0).SetOccupant(board.Red, true)
	gen := NewGenerator(b)

	plays := gen.GenAll(board.Red, 2, card("3S"))
	for _, p := range plays {
		if p.Origin() == coord(board.Yellow, 16) {
			t.Errorf("piece behind a blocked entrance should not move: %v", p)
		}
	}
	is.True(len(plays) > 0)
	enter := move.NewEnterMove(coord(board.Red, 0), house(board.Red, 0), 1, card("AS"), board.Red)
	is.True(!gen.Validator().Valid(enter, 2))
}

func TestNoEnterWithoutLap(t *testing.T) {
	b := board.NewDefaultBoard()
	b.SpotAt(board.Red, 0).SetOccupant(board.Red, true)
	gen := NewGenerator(b)

	for _, c := range []string{"AH", "2H", "3H", "4H"} {
		for _, p := range gen.GenAll(board.Red, 1, card(c)) {
			assert.NotEqual(t, move.MoveTypeEnter, p.Action(), "%s offered %v", c, p)
		}
	}
	enter := move.NewEnterMove(coord(board.Red, 0), house(board.Red, 3), 4, card("4H"), board.Red)
	assert.False(t, gen.Validator().Valid(enter, 1))
}

func TestSeven(t *testing.T) {
	is := is.New(t)
	b := board.NewDefaultBoard()
	gen := NewGenerator(b)
	is.Equal(len(gen.GenAll(board.Blue, 0, card("7H"))), 0)

	b.HouseAt(board.Blue, 3).SetOccupant(board.Blue)
	is.Equal(len(gen.GenAll(board.Blue, 1, card("7H"))), 0)

	b.SpotAt(board.Blue, 5).SetOccupant(board.Blue, false)
	is.Equal(gen.GenAll(board.Blue, 2, card("7H")),
		[]move.Move{move.NewSevenMove(card("7H"), board.Blue)})
}

func TestStepCard(t *testing.T) {
	is := is.New(t)
	b := board.NewDefaultBoard()
	b.SpotAt(board.Blue, 5).SetOccupant(board.Blue, false)
	b.SpotAt(board.Red, 16).SetOccupant(board.Blue, false)
	gen := NewGenerator(b)
	step := cards.StepCard(cards.Hearts)
	plays := gen.GenAll(board.Blue, 2, step)
	assert.ElementsMatch(t, []move.Move{
		move.NewRingMove(coord(board.Red, 16), coord(board.Blue, 0), 1, step, board.Blue),
		move.NewRingMove(coord(board.Blue, 5), coord(board.Blue, 6), 1, step, board.Blue),
	}, plays)
	is.Equal(len(plays), 2)
}

func TestKingAndHand(t *testing.T) {
	is := is.New(t)
	b := board.NewDefaultBoard()
	b.SpotAt(board.Green, 2).SetOccupant(board.Green, false)
	gen := NewGenerator(b)

	plays := gen.GenAll(board.Green, 1, card("KD"))
	is.Equal(len(plays), 2)
	is.Equal(plays[0].Action(), move.MoveTypeOut)
	is.Equal(plays[1].Target(), coord(board.Green, 15))

	hand := cards.MustFromStrings("KD", "2C", "JH")
	all := gen.GenAllForHand(board.Green, 1, hand)
	// K gives 2, the 2 gives 1, nobody to switch with.
	is.Equal(len(all), 3)
}

func TestAceElevenAndEnter(t *testing.T) {
	b := board.NewDefaultBoard()
	b.SpotAt(board.Yellow, 7).SetOccupant(board.Red, false)
	gen := NewGenerator(b)
	c := card("AC")
	plays := gen.GenAll(board.Red, 1, c)
	// yellow-7 + 11 = red-1, house 0.
	assert.ElementsMatch(t, []move.Move{
		move.NewOutMove(coord(board.Red, 0), c, board.Red),
		move.NewRingMove(coord(board.Yellow, 7), coord(board.Yellow, 8), 1, c, board.Red),
		move.NewRingMove(coord(board.Yellow, 7), coord(board.Red, 1), 11, c, board.Red),
		move.NewEnterMove(coord(board.Yellow, 7), house(board.Red, 0), 11, c, board.Red),
	}, plays)
}

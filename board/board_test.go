package board

import (
	"strings"
	"testing"

	"github.com/matryer/is"
)

func TestRingBijection(t *testing.T) {
	is := is.New(t)
	b := NewDefaultBoard()
	for _, c := range Colors {
		for i := 0; i < b.RegionSize(); i++ {
			s := b.SpotAt(c, i)
			for d := -200; d <= 200; d += 7 {
				is.Equal(b.SpotFromDistance(b.SpotFromDistance(s, d), -d), s)
			}
		}
	}
}

func TestModularWrap(t *testing.T) {
	is := is.New(t)
	b := NewDefaultBoard()
	is.Equal(b.RingLength(), 68)
	for _, c := range Colors {
		is.Equal(b.SpotFromDistance(b.EntranceSpot(c), b.RingLength()), b.EntranceSpot(c))
	}
	is.Equal(b.SpotFromDistance(b.SpotAt(Red, 0), 70), b.SpotAt(Red, 2))
	is.Equal(b.SpotFromDistance(b.SpotAt(Red, 1), -4), b.SpotAt(Yellow, 14))
	is.Equal(b.SpotFromDistance(b.SpotAt(Blue, 14), 3), b.SpotAt(Green, 0))
}

func TestHouseFromDistanceStandard(t *testing.T) {
	is := is.New(t)
	b := NewDefaultBoard()
	// blue is green's predecessor. blue-14 is 3 steps from green's entrance.
	origin := b.SpotAt(Blue, 14)
	is.Equal(b.HouseFromDistance(origin, 3, Green), nil)
	is.Equal(b.HouseFromDistance(origin, 4, Green), b.HouseAt(Green, 0))
	is.Equal(b.HouseFromDistance(origin, 7, Green), b.HouseAt(Green, 3))
	is.Equal(b.HouseFromDistance(origin, 8, Green), nil)
	// red wraps around from yellow.
	is.Equal(b.HouseFromDistance(b.SpotAt(Yellow, 16), 2, Red), b.HouseAt(Red, 0))
	is.Equal(b.HouseFromDistance(b.SpotAt(Yellow, 16), 3, Red), b.HouseAt(Red, 1))
}

func TestHouseFromDistanceRejectsOtherRegions(t *testing.T) {
	is := is.New(t)
	b := NewDefaultBoard()
	for _, c := range Colors {
		for i := 0; i < b.RegionSize(); i++ {
			s := b.SpotAt(c, i)
			for d := 1; d <= 13; d++ {
				for _, player := range Colors {
					h := b.HouseFromDistance(s, d, player)
					if h == nil {
						continue
					}
					// only the predecessor region can reach a house here;
					// nothing is blocking on this board.
					is.Equal(c, player.Prev())
					is.Equal(h.Color(), player)
				}
			}
		}
	}
}

func TestHouseFromDistanceJustExited(t *testing.T) {
	is := is.New(t)
	b := NewDefaultBoard()
	e := b.EntranceSpot(Blue)
	e.SetOccupant(Blue, false)
	is.Equal(b.HouseFromDistance(e, 2, Blue), nil)
	e.SetOccupant(Blue, true)
	is.Equal(b.HouseFromDistance(e, 2, Blue), b.HouseAt(Blue, 1))
	is.Equal(b.HouseFromDistance(e, 5, Blue), nil)
	// Another player's blocking entrance is no shortcut.
	is.Equal(b.HouseFromDistance(e, 2, Green), nil)
}

func TestOccupancyQueries(t *testing.T) {
	is := is.New(t)
	b := NewDefaultBoard()
	b.SpotAt(Red, 3).SetOccupant(Red, false)
	b.SpotAt(Green, 9).SetOccupant(Red, false)
	b.SpotAt(Blue, 0).SetOccupant(Blue, true)
	b.HouseAt(Red, 3).SetOccupant(Red)

	is.Equal(len(b.OccupiedSpotsOf(Red)), 2)
	is.Equal(len(b.OccupiedSpotsOfOthers(Red)), 1)
	is.Equal(b.OccupiedSpotsOfOthers(Red)[0], b.SpotAt(Blue, 0))
	is.Equal(b.PiecesOut(Red), 3)
	is.Equal(b.PiecesOut(Yellow), 0)
	is.True(!b.AllHousesFilled(Red))
	for i := 0; i < 3; i++ {
		b.HouseAt(Red, i).SetOccupant(Red)
	}
	is.True(b.AllHousesFilled(Red))
}

func TestSetOccupantKicks(t *testing.T) {
	is := is.New(t)
	b := NewDefaultBoard()
	s := b.SpotAt(Yellow, 5)
	is.Equal(s.SetOccupant(Green, false), NoColor)
	is.Equal(s.SetOccupant(Red, false), Green)
	is.Equal(s.Occupant(), Red)
	s.SetEmpty()
	is.True(!s.Occupied())
}

func TestBlockingOnlyOnOwnEntrance(t *testing.T) {
	is := is.New(t)
	b := NewDefaultBoard()
	defer func() {
		is.True(recover() != nil)
	}()
	b.SpotAt(Red, 0).SetOccupant(Blue, true)
}

func TestSnapshotRestore(t *testing.T) {
	is := is.New(t)
	b := NewDefaultBoard()
	b.SpotAt(Red, 0).SetOccupant(Red, true)
	b.SpotAt(Blue, 7).SetOccupant(Yellow, false)
	b.HouseAt(Green, 2).SetOccupant(Green)
	snap := b.Snapshot()
	fp := snap.Fingerprint()

	b.SpotAt(Red, 0).SetEmpty()
	b.SpotAt(Blue, 8).SetOccupant(Red, false)
	b.HouseAt(Green, 1).SetOccupant(Green)
	is.True(!b.Snapshot().Equal(snap))
	is.True(b.Snapshot().Fingerprint() != fp)

	b.Restore(snap)
	is.True(b.Snapshot().Equal(snap))
	is.Equal(b.Snapshot().Fingerprint(), fp)
	is.True(b.SpotAt(Red, 0).Blocking())
	is.Equal(b.SpotAt(Blue, 8).Occupant(), NoColor)
	is.True(!b.HouseAt(Green, 1).Occupied())

	// The snapshot is independent of later mutation.
	b.SpotAt(Blue, 7).SetEmpty()
	is.Equal(snap.Fingerprint(), fp)
}

func TestCopyIsDeep(t *testing.T) {
	is := is.New(t)
	b := NewDefaultBoard()
	b.SpotAt(Red, 4).SetOccupant(Red, false)
	c := b.Copy()
	c.SpotAt(Red, 4).SetEmpty()
	is.Equal(b.SpotAt(Red, 4).Occupant(), Red)
}

func TestCopyFrom(t *testing.T) {
	is := is.New(t)
	b := NewDefaultBoard()
	b.SpotAt(Green, 9).SetOccupant(Green, false)
	o := NewDefaultBoard()
	o.EntranceSpot(Red).SetOccupant(Red, true)
	o.HouseAt(Blue, 2).SetOccupant(Blue)

	b.CopyFrom(o)
	is.True(!b.SpotAt(Green, 9).Occupied())
	is.True(b.EntranceSpot(Red).Blocking())
	is.Equal(b.HouseAt(Blue, 2).Occupant(), Blue)
	is.Equal(b.SpotAt(Red, 5).Coord(), Coord{Color: Red, Index: 5})

	// The copy stays independent of its source.
	o.Clear()
	is.Equal(b.HouseAt(Blue, 2).Occupant(), Blue)

	defer func() { is.True(recover() != nil) }()
	b.CopyFrom(NewBoard(10, 3))
}

func TestOutOfRangePanics(t *testing.T) {
	is := is.New(t)
	b := NewDefaultBoard()
	defer func() {
		is.True(recover() != nil)
	}()
	b.SpotAt(Red, 17)
}

func TestDisplay(t *testing.T) {
	is := is.New(t)
	b := NewDefaultBoard()
	b.SpotAt(Red, 0).SetOccupant(Red, true)
	b.SpotAt(Red, 2).SetOccupant(Blue, false)
	b.HouseAt(Red, 3).SetOccupant(Red)
	lines := strings.Split(b.ToDisplayText(), "\n")
	is.Equal(lines[0], "red    R . b . . . . . . . . . . . . . .   [...r]")
	is.True(strings.Contains(b.OccupancyReport(), "Spot red-0 is occupied by red. This spot is blocked."))
}

func TestColors(t *testing.T) {
	is := is.New(t)
	is.Equal(Red.Prev(), Yellow)
	is.Equal(Yellow.Next(), Red)
	c, err := ColorFromString(" Green")
	is.NoErr(err)
	is.Equal(c, Green)
	_, err = ColorFromString("purple")
	is.True(err != nil)
	is.Equal(NoColor.String(), "none")
}

func TestParseCoord(t *testing.T) {
	is := is.New(t)
	b := NewDefaultBoard()
	for _, s := range []string{"red-0", "yellow-16", "house-blue-3", "Green-4"} {
		co, err := ParseCoord(s)
		is.NoErr(err)
		is.True(b.InBounds(co))
		is.Equal(co.String(), strings.ToLower(s))
	}
	co, err := ParseCoord("house-green-4")
	is.NoErr(err)
	is.True(!b.InBounds(co))

	for _, s := range []string{"purple-3", "red", "red-x", "red--1"} {
		_, err := ParseCoord(s)
		is.True(err != nil)
	}
}

package movegen

import (
	"github.com/rs/zerolog/log"

	"github.com/domino14/tock/board"
	"github.com/domino14/tock/move"
)

// Validator decides whether a move is legal on the current board.
type Validator struct {
	board *board.Board
}

func NewValidator(b *board.Board) *Validator {
	return &Validator{board: b}
}

// Valid returns whether m may be played now. piecesOut is the number of
// pieces the moving color has out of its start area.
func (v *Validator) Valid(m move.Move, piecesOut int) bool {
	reason := v.whyInvalid(m, piecesOut)
	if reason != "" {
		log.Debug().Str("move", m.ShortDescription()).Str("reason", reason).Msg("invalid-move")
		return false
	}
	return true
}

// whyInvalid returns an empty string for a legal move, or a short reason.
func (v *Validator) whyInvalid(m move.Move, piecesOut int) string {
	b := v.board
	switch m.Action() {
	case move.MoveTypeOut:
		if piecesOut >= b.HouseSize() {
			return "all pieces already out"
		}
		if b.EntranceSpot(m.Player()).Blocking() {
			return "entrance is blocked"
		}

	case move.MoveTypeMove, move.MoveTypeBack:
		origin, ok := v.ownSpot(m)
		if !ok {
			return "origin not held by player"
		}
		d := m.Distance()
		if d == 0 {
			return "zero distance"
		}
		step := 1
		if d < 0 {
			step = -1
		}
		for i := step; i != d; i += step {
			if b.SpotFromDistance(origin, i).Blocking() {
				return "path is blocked"
			}
		}
		target := b.SpotFromDistance(origin, d)
		if target.Coord() != m.Target() {
			return "target does not match distance"
		}
		if target.Blocking() {
			return "target is blocked"
		}

	case move.MoveTypeSwitch:
		origin, ok := v.ownSpot(m)
		if !ok {
			return "origin not held by player"
		}
		if m.Target().House {
			return "cannot switch with a house"
		}
		target := b.SpotAt(m.Target().Color, m.Target().Index)
		if !target.Occupied() || target.Occupant() == m.Player() {
			return "nothing to switch with"
		}
		if origin.Blocking() || target.Blocking() {
			return "switching a blocking piece"
		}

	case move.MoveTypeEnter:
		origin, ok := v.ownSpot(m)
		if !ok {
			return "origin not held by player"
		}
		if !m.Target().House || m.Target().Color != m.Player() {
			return "target is not one of the player's houses"
		}
		h := b.HouseFromDistance(origin, m.Distance(), m.Player())
		if h == nil || h.Coord() != m.Target() {
			return "house not reachable"
		}
		// Also keeps a piece that just came out from skipping its lap.
		if b.EntranceSpot(m.Player()).Blocking() {
			return "entrance is blocked"
		}
		// A piece can't jump over another piece inside the house track.
		for i := 0; i <= h.Index(); i++ {
			if b.HouseAt(m.Player(), i).Occupied() {
				return "house track is occupied"
			}
		}

	case move.MoveTypeSeven:
		if len(b.OccupiedSpotsOf(m.Player())) == 0 {
			return "no piece on the board"
		}

	default:
		return "unknown move type"
	}
	return ""
}

func (v *Validator) ownSpot(m move.Move) (*board.Spot, bool) {
	o := m.Origin()
	if o.House || !o.Color.Valid() || o.Index < 0 || o.Index >= v.board.RegionSize() {
		return nil, false
	}
	s := v.board.SpotAt(o.Color, o.Index)
	return s, s.Occupant() == m.Player()
}

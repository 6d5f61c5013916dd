package move

import (
	"fmt"
	"strings"

	"github.com/domino14/tock/board"
	"github.com/domino14/tock/cards"
)

// MoveType is a type of move; taking a piece out, moving, switching, etc.
type MoveType uint8

const (
	MoveTypeOut MoveType = iota
	MoveTypeMove
	MoveTypeBack
	MoveTypeSwitch
	MoveTypeEnter
	// MoveTypeSeven is only a marker. What a seven actually does is decided
	// step by step while splitting it.
	MoveTypeSeven
)

var moveTypeNames = [...]string{"OUT", "MOVE", "BACK", "SWITCH", "ENTER", "SEVEN"}

func (t MoveType) String() string {
	if int(t) >= len(moveTypeNames) {
		return "UNHANDLED"
	}
	return moveTypeNames[t]
}

// Move is a value; two moves are the same move if all their fields match.
// Moves refer to cells by Coord so they stay valid across board snapshots.
type Move struct {
	action MoveType
	origin board.Coord
	target board.Coord
	// distance is the signed number of ring steps the move covers. It is 0
	// for OUT, SWITCH and SEVEN.
	distance int
	card     cards.Card
	player   board.Color
}

var noCoord = board.Coord{Color: board.NoColor}

func NewOutMove(entrance board.Coord, card cards.Card, player board.Color) Move {
	return Move{action: MoveTypeOut, origin: entrance, target: entrance,
		card: card, player: player}
}

// NewRingMove creates a MOVE, or a BACK if distance is negative.
func NewRingMove(origin, target board.Coord, distance int, card cards.Card,
	player board.Color) Move {

	action := MoveTypeMove
	if distance < 0 {
		action = MoveTypeBack
	}
	return Move{action: action, origin: origin, target: target,
		distance: distance, card: card, player: player}
}

func NewSwitchMove(origin, target board.Coord, card cards.Card, player board.Color) Move {
	return Move{action: MoveTypeSwitch, origin: origin, target: target,
		card: card, player: player}
}

// NewEnterMove creates a move from a ring spot into a house. distance is
// the number of ring steps the card covers.
func NewEnterMove(origin, house board.Coord, distance int, card cards.Card,
	player board.Color) Move {

	return Move{action: MoveTypeEnter, origin: origin, target: house,
		distance: distance, card: card, player: player}
}

func NewSevenMove(card cards.Card, player board.Color) Move {
	return Move{action: MoveTypeSeven, origin: noCoord, target: noCoord,
		card: card, player: player}
}

func (m Move) Action() MoveType    { return m.action }
func (m Move) Origin() board.Coord { return m.origin }
func (m Move) Target() board.Coord { return m.target }
func (m Move) Distance() int       { return m.distance }
func (m Move) Card() cards.Card    { return m.card }
func (m Move) Player() board.Color { return m.player }

// WithPlayer returns the same move made on behalf of another color. Used
// when a finished player moves their partner's pieces.
func (m Move) WithPlayer(c board.Color) Move {
	m.player = c
	return m
}

// String provides a string just for debugging purposes.
func (m Move) String() string {
	return fmt.Sprintf("<action: %v card: %v player: %v origin: %v target: %v dist: %d>",
		m.action, m.card, m.player, m.origin, m.target, m.distance)
}

// ShortDescription is a compact form for logs and option lists.
func (m Move) ShortDescription() string {
	switch m.action {
	case MoveTypeOut:
		return fmt.Sprintf("%v out %v", m.card, m.target)
	case MoveTypeSeven:
		return fmt.Sprintf("%v split", m.card)
	case MoveTypeSwitch:
		return fmt.Sprintf("%v %v <> %v", m.card, m.origin, m.target)
	}
	return fmt.Sprintf("%v %v > %v", m.card, m.origin, m.target)
}

// Description explains the move to a human, looking at b to tell whether a
// piece would get kicked.
func (m Move) Description(b *board.Board) string {
	kick := func() string {
		if m.target.House {
			return ""
		}
		occ := b.SpotAt(m.target.Color, m.target.Index).Occupant()
		switch occ {
		case board.NoColor:
			return ""
		case m.player:
			return " and kick your own piece which is in the spot"
		}
		return fmt.Sprintf(" and kick the %v piece which is in the spot", occ)
	}
	switch m.action {
	case MoveTypeOut:
		return fmt.Sprintf("Play %v to take a piece out and place it in %v%s.",
			m.card, m.target, kick())
	case MoveTypeMove:
		return fmt.Sprintf("Play %v to move piece currently in spot %v to spot %v%s.",
			m.card, m.origin, m.target, kick())
	case MoveTypeBack:
		return fmt.Sprintf("Play %v to move piece currently in spot %v back to spot %v%s.",
			m.card, m.origin, m.target, kick())
	case MoveTypeEnter:
		return fmt.Sprintf("Play %v to move piece currently in spot %v to house spot %v.",
			m.card, m.origin, m.target)
	case MoveTypeSwitch:
		occ := b.SpotAt(m.target.Color, m.target.Index).Occupant()
		return fmt.Sprintf("Play %v to switch piece in spot %v with the %v piece in spot %v.",
			m.card, m.origin, occ, m.target)
	case MoveTypeSeven:
		return fmt.Sprintf("Play %v to split seven steps among your pieces.", m.card)
	}
	return "UNHANDLED"
}

// PlanString renders a seven-split plan one step per line.
func PlanString(plan []Move) string {
	if len(plan) == 0 {
		return "(no steps)"
	}
	var sb strings.Builder
	for i, m := range plan {
		fmt.Fprintf(&sb, "%d: %v -> %v\n", i+1, m.origin, m.target)
	}
	return sb.String()
}

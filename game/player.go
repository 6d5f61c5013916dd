package game

import (
	"context"
	"fmt"
	"strings"

	"github.com/domino14/tock/board"
	"github.com/domino14/tock/cards"
	"github.com/domino14/tock/move"
)

// Player is whoever makes the decisions for a seat: a person at a console,
// a bot, a remote client. Every Choose method may block for as long as it
// likes; the game waits. The returned value must be one of the options.
type Player interface {
	// ChooseCard picks the card to hand to the partner at the start of a
	// round.
	ChooseCard(ctx context.Context, sit Situation, hand []cards.Card) (cards.Card, error)
	ChooseMove(ctx context.Context, sit Situation, options []move.Move) (move.Move, error)
	ChooseSevenStep(ctx context.Context, sit Situation, options []move.Move) (move.Move, error)
	// ConfirmSevenSplit returns false to throw the plan away and start
	// splitting the seven over again.
	ConfirmSevenSplit(ctx context.Context, sit Situation, plan []move.Move) (bool, error)
	// Notify is fire-and-forget.
	Notify(evt Event)
}

// PlayerInfo seats a Player at the table.
type PlayerInfo struct {
	Nickname string
	Player   Player
}

// Situation is what a Player is shown when asked for a decision. Board is
// the live board and must only be read.
type Situation struct {
	Board     *board.Board
	Seat      int
	Nickname  string
	Color     board.Color
	Hand      []cards.Card
	PiecesOut int
}

// SeatState tracks where a seat is within its turn.
type SeatState uint8

const (
	SeatAwaitingMove SeatState = iota
	SeatForcedPlay
	SeatChoiceRequested
	SeatResolved
)

func (s SeatState) String() string {
	switch s {
	case SeatAwaitingMove:
		return "awaiting-move"
	case SeatForcedPlay:
		return "forced-play"
	case SeatChoiceRequested:
		return "choice-requested"
	case SeatResolved:
		return "resolved"
	}
	return "unknown"
}

type seat struct {
	idx      int
	nickname string
	player   Player
	color    board.Color
	hand     *cards.Hand
	state    SeatState
	// folded stays set until the next deal.
	folded bool
}

func (s *seat) stateString(onturn bool, piecesOut int) string {
	marker := "   "
	if onturn {
		marker = "-> "
	}
	handStr := "(no cards)"
	if s.hand != nil && !s.hand.Empty() {
		parts := make([]string, s.hand.Size())
		for i, c := range s.hand.Cards() {
			parts[i] = c.String()
		}
		handStr = strings.Join(parts, " ")
	}
	if s.folded {
		handStr = "(folded)"
	}
	return fmt.Sprintf("%s%-10s %-6v team %d  out %d  %s", marker, s.nickname,
		s.color, TeamOf(s.color), piecesOut, handStr)
}

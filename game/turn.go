package game

import (
	"context"
	"fmt"
	"slices"

	"github.com/rs/zerolog/log"

	"github.com/domino14/tock/board"
	"github.com/domino14/tock/move"
)

// PlayTurn plays the turn of the seat on turn and passes the turn on. A
// seat without cards is skipped. A seat with no legal move folds.
func (g *Game) PlayTurn(ctx context.Context) error {
	if g.playing != PlayStatePlaying {
		return ErrGameOver
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	s := g.seats[g.onturn]
	if s.hand == nil || s.hand.Empty() {
		log.Debug().Str("player", s.nickname).Bool("folded", s.folded).Msg("skipping-seat")
		g.nextSeat()
		return nil
	}
	if g.maxTurns > 0 && g.turnnum >= g.maxTurns {
		return ErrTurnLimit
	}
	g.turnnum++

	color := g.movingColor(s)
	options := g.gen.GenAllForHand(color, g.piecesOut[color], s.hand.Cards())
	s.state = SeatAwaitingMove

	if len(options) == 0 {
		g.fold(s)
		g.nextSeat()
		return nil
	}

	var m move.Move
	if len(options) == 1 {
		s.state = SeatForcedPlay
		m = options[0]
	} else {
		s.state = SeatChoiceRequested
		var err error
		m, err = s.player.ChooseMove(ctx, g.situation(s), options)
		if err != nil {
			return fmt.Errorf("seat %d choosing move: %w", s.idx, err)
		}
		if !slices.Contains(options, m) {
			return fmt.Errorf("%w: seat %d chose %v", ErrIllegalChoice, s.idx, m)
		}
	}
	log.Debug().Str("player", s.nickname).Str("move", m.ShortDescription()).
		Stringer("state", s.state).Msg("move-chosen")

	if m.Action() == move.MoveTypeSeven {
		plan, err := g.splitSeven(ctx, s, m)
		if err != nil {
			return err
		}
		g.emit(g.moveEvent(s, m, m.Card(), m.Description(g.board)))
		for _, step := range plan {
			desc := step.Description(g.board)
			g.applyMove(step)
			g.emit(g.moveEvent(s, step, m.Card(), desc))
		}
	} else {
		desc := m.Description(g.board)
		g.applyMove(m)
		g.emit(g.moveEvent(s, m, m.Card(), desc))
	}
	if err := s.hand.Remove(m.Card()); err != nil {
		// Every option was generated from a card in this hand.
		panic(err)
	}
	g.deck.Discard(m.Card())
	s.state = SeatResolved
	if s.hand.Empty() {
		g.handsFinished++
	}
	log.Debug().Msgf("\n%s", g.board.ToDisplayText())

	g.checkWin(m.Player())
	g.nextSeat()
	return nil
}

func (g *Game) nextSeat() {
	g.onturn = (g.onturn + 1) % NumSeats
}

// fold throws away every card of a seat that cannot play. It counts as a
// finished hand.
func (g *Game) fold(s *seat) {
	for _, c := range s.hand.Fold() {
		g.deck.Discard(c)
	}
	s.folded = true
	s.state = SeatResolved
	g.handsFinished++
	log.Debug().Str("player", s.nickname).Msg("no-moves-fold")
	g.emit(Event{Kind: EventFold, Turn: g.turnnum, PlayerID: s.nickname,
		Color: s.color.String(), Team: TeamOf(s.color)})
}

// applyMove changes the board for m and keeps the pieces-out counters
// right. m must be legal; anything else is a bug in move generation.
func (g *Game) applyMove(m move.Move) {
	c := m.Player()
	if !g.gen.Validator().Valid(m, g.piecesOut[c]) {
		panic(fmt.Sprintf("applying an invalid move: %v", m))
	}
	b := g.board
	switch m.Action() {
	case move.MoveTypeOut:
		g.piecesOut[c]++
		g.kick(b.EntranceSpot(c).SetOccupant(c, true))

	case move.MoveTypeMove, move.MoveTypeBack:
		b.SpotAt(m.Origin().Color, m.Origin().Index).SetEmpty()
		g.kick(b.SpotAt(m.Target().Color, m.Target().Index).SetOccupant(c, false))

	case move.MoveTypeSwitch:
		origin := b.SpotAt(m.Origin().Color, m.Origin().Index)
		target := b.SpotAt(m.Target().Color, m.Target().Index)
		other := target.Occupant()
		target.SetOccupant(c, false)
		origin.SetOccupant(other, false)

	case move.MoveTypeEnter:
		b.SpotAt(m.Origin().Color, m.Origin().Index).SetEmpty()
		b.HouseAt(m.Target().Color, m.Target().Index).SetOccupant(c)

	default:
		panic(fmt.Sprintf("cannot apply %v directly", m))
	}
}

func (g *Game) kick(c board.Color) {
	if c == board.NoColor {
		return
	}
	g.piecesOut[c]--
	log.Debug().Stringer("color", c).Int("left", g.piecesOut[c]).Msg("kicked")
}

// checkWin ends the game if c just filled its houses, and, when partners
// have to finish together, so has its partner.
func (g *Game) checkWin(c board.Color) {
	if !g.board.AllHousesFilled(c) {
		return
	}
	if g.teamFinish && !g.board.AllHousesFilled(Partner(c)) {
		log.Debug().Stringer("color", c).Msg("houses-filled-partner-pending")
		return
	}
	g.playing = PlayStateGameOver
	g.winner = TeamOf(c)
	log.Info().Stringer("color", c).Int("team", g.winner).Int("turn", g.turnnum).Msg("game-won")
	g.emit(Event{Kind: EventWin, Turn: g.turnnum, Color: c.String(), Team: g.winner})
}

// Package game runs a game of Tock: dealing and exchanging cards, seats
// taking turns in order, splitting sevens, rotating the dealer, and
// deciding who wins. It doesn't care how it is played; the decisions come
// from Player implementations outside this package.
package game

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/domino14/tock/board"
	"github.com/domino14/tock/cards"
	"github.com/domino14/tock/config"
	"github.com/domino14/tock/movegen"
)

const (
	NumSeats       = 4
	RoundsPerCycle = 3
	SevenSteps     = 7
)

// roundHandSizes is how many cards are dealt in each round of a cycle.
var roundHandSizes = [RoundsPerCycle]int{cards.FirstHandSize, cards.HandSize, cards.HandSize}

var (
	// ErrIllegalChoice is returned when a Player picks something it was
	// not offered.
	ErrIllegalChoice = errors.New("player chose something that was not offered")
	ErrTurnLimit     = errors.New("turn limit reached")
	ErrGameOver      = errors.New("game is over")
)

// Deck is the source of cards.
type Deck interface {
	DrawHand(n int, owner string) (*cards.Hand, error)
	Discard(c cards.Card)
	// Refill gathers every card back in for the next dealer.
	Refill()
}

type PlayState uint8

const (
	PlayStatePlaying PlayState = iota
	PlayStateGameOver
)

// Game holds the whole state of one game. It must be driven from a single
// goroutine; it only fans out internally while dealing and exchanging.
type Game struct {
	uid   string
	board *board.Board
	gen   *movegen.Generator
	deck  Deck
	seats []*seat
	sinks []EventSink

	// piecesOut is indexed by color: pieces on the ring or in a house.
	piecesOut [board.NumColors]int

	teamFinish bool
	maxTurns   int

	playing PlayState
	// winner is the winning team, or -1.
	winner int

	// dealt is set while the current round's hands are out.
	dealt bool

	dealer        int
	round         int
	cycle         int
	onturn        int
	turnnum       int
	handsFinished int

	history []Event
}

// NewGame seats four players. Seat i plays color i; seats 0 and 2 are one
// team, seats 1 and 3 the other.
func NewGame(cfg *config.Config, deck Deck, players []PlayerInfo) (*Game, error) {
	if len(players) != NumSeats {
		return nil, fmt.Errorf("a game needs %d players, got %d", NumSeats, len(players))
	}
	g := &Game{
		uid:        uuid.NewString(),
		board:      board.NewBoard(cfg.RegionSize(), cfg.HouseSize()),
		deck:       deck,
		teamFinish: cfg.TeamFinish(),
		maxTurns:   cfg.MaxTurns(),
		winner:     -1,
	}
	g.gen = movegen.NewGenerator(g.board)
	g.seats = make([]*seat, NumSeats)
	for i, p := range players {
		if p.Player == nil {
			return nil, fmt.Errorf("seat %d has no player", i)
		}
		g.seats[i] = &seat{
			idx:      i,
			nickname: p.Nickname,
			player:   p.Player,
			color:    board.Colors[i],
		}
	}
	log.Debug().Str("uid", g.uid).Bool("team-finish", g.teamFinish).Int("max-turns", g.maxTurns).
		Int("ring", g.board.RingLength()).Msg("new-game")
	return g, nil
}

// AddSink registers another receiver of game events.
func (g *Game) AddSink(s EventSink) {
	g.sinks = append(g.sinks, s)
}

// Play runs rounds until a team wins, the context is done, or a Player
// fails.
func (g *Game) Play(ctx context.Context) error {
	for g.playing == PlayStatePlaying {
		if err := g.PlayRound(ctx); err != nil {
			return err
		}
	}
	return nil
}

func (g *Game) Uid() string         { return g.uid }
func (g *Game) Board() *board.Board { return g.board }
func (g *Game) Playing() PlayState  { return g.playing }
func (g *Game) Winner() int         { return g.winner }
func (g *Game) Dealer() int         { return g.dealer }
func (g *Game) Round() int          { return g.round }
func (g *Game) Cycle() int          { return g.cycle }
func (g *Game) Onturn() int         { return g.onturn }
func (g *Game) Turn() int           { return g.turnnum }
func (g *Game) History() []Event    { return g.history }
func (g *Game) HandsFinished() int  { return g.handsFinished }

func (g *Game) SeatColor(i int) board.Color {
	return g.seats[i].color
}

func (g *Game) PiecesOut(c board.Color) int {
	return g.piecesOut[c]
}

func (g *Game) SeatState(i int) SeatState {
	return g.seats[i].state
}

func (g *Game) Folded(i int) bool {
	return g.seats[i].folded
}

func (g *Game) Nickname(i int) string {
	return g.seats[i].nickname
}

// Hand returns a copy of the cards seat i holds.
func (g *Game) Hand(i int) []cards.Card {
	if g.seats[i].hand == nil {
		return nil
	}
	return g.seats[i].hand.Cards()
}

// SetHand replaces the hand of seat i. Used to set up positions: the next
// PlayRound carries on with the hands as set instead of dealing.
func (g *Game) SetHand(i int, cs []cards.Card) {
	s := g.seats[i]
	s.hand = cards.NewHand(s.nickname, cs)
	s.folded = false
	g.dealt = true
}

// SetOnturn makes seat i the next to play. Used to set up positions.
func (g *Game) SetOnturn(i int) {
	g.onturn = i
}

// RecountPieces recomputes every color's pieces-out counter from the board.
// Call it after placing pieces directly on the board.
func (g *Game) RecountPieces() {
	for _, c := range board.Colors {
		g.piecesOut[c] = g.board.PiecesOut(c)
	}
}

// movingColor is the color seat s moves this turn. In the team variant a
// seat whose houses are full moves its partner's pieces.
func (g *Game) movingColor(s *seat) board.Color {
	if g.teamFinish && g.board.AllHousesFilled(s.color) {
		return Partner(s.color)
	}
	return s.color
}

func (g *Game) situation(s *seat) Situation {
	c := g.movingColor(s)
	sit := Situation{
		Board:     g.board,
		Seat:      s.idx,
		Nickname:  s.nickname,
		Color:     c,
		PiecesOut: g.piecesOut[c],
	}
	if s.hand != nil {
		sit.Hand = s.hand.Cards()
	}
	return sit
}

// ToDisplayText renders the board with the seats next to it.
func (g *Game) ToDisplayText() string {
	var sb strings.Builder
	sb.WriteString(g.board.ToDisplayText())
	sb.WriteString("\n")
	for i, s := range g.seats {
		sb.WriteString(s.stateString(g.playing == PlayStatePlaying && g.onturn == i,
			g.piecesOut[s.color]))
		sb.WriteString("\n")
	}
	fmt.Fprintf(&sb, "\nCycle %d, round %d, turn %d. Dealer: %s\n",
		g.cycle+1, g.round+1, g.turnnum, g.seats[g.dealer].nickname)
	if g.playing == PlayStateGameOver {
		fmt.Fprintf(&sb, "Game is over. Team %d wins.\n", g.winner)
	}
	return sb.String()
}

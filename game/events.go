package game

import (
	"github.com/rs/zerolog/log"

	"github.com/domino14/tock/board"
	"github.com/domino14/tock/cards"
	"github.com/domino14/tock/move"
)

type EventKind string

const (
	EventDeal     EventKind = "deal"
	EventExchange EventKind = "exchange"
	EventMove     EventKind = "move"
	EventFold     EventKind = "fold"
	EventWin      EventKind = "win"
)

// Event is what the outside world hears about a game: one after every
// applied move, fold, deal, exchange and win. It carries only strings and
// ints so it can be serialized as is.
type Event struct {
	GameID      string    `json:"gameId" yaml:"gameId"`
	Kind        EventKind `json:"kind" yaml:"kind"`
	Turn        int       `json:"turn" yaml:"turn"`
	PlayerID    string    `json:"playerId,omitempty" yaml:"playerId,omitempty"`
	CardSuit    string    `json:"cardSuit,omitempty" yaml:"cardSuit,omitempty"`
	CardValue   string    `json:"cardValue,omitempty" yaml:"cardValue,omitempty"`
	Action      string    `json:"action,omitempty" yaml:"action,omitempty"`
	Origin      string    `json:"origin,omitempty" yaml:"origin,omitempty"`
	Target      string    `json:"target,omitempty" yaml:"target,omitempty"`
	Color       string    `json:"color,omitempty" yaml:"color,omitempty"`
	Team        int       `json:"team" yaml:"team"`
	Description string    `json:"description,omitempty" yaml:"description,omitempty"`
}

// EventSink receives every event of a game. Emit must not block for long;
// it is called from the game loop.
type EventSink interface {
	Emit(evt Event)
}

// TeamOf returns the team a color plays for. Colors facing each other
// across the ring are partners.
func TeamOf(c board.Color) int {
	return int(c) % 2
}

// Partner is the other color of c's team.
func Partner(c board.Color) board.Color {
	return c.Next().Next()
}

func (g *Game) moveEvent(s *seat, m move.Move, c cards.Card, desc string) Event {
	evt := Event{
		Kind:        EventMove,
		Turn:        g.turnnum,
		PlayerID:    s.nickname,
		CardSuit:    c.Suit.String(),
		CardValue:   c.Value.String(),
		Action:      m.Action().String(),
		Color:       m.Player().String(),
		Team:        TeamOf(s.color),
		Description: desc,
	}
	if m.Action() != move.MoveTypeSeven {
		evt.Origin = m.Origin().String()
		evt.Target = m.Target().String()
	}
	return evt
}

// emit records evt and hands it to every seat and sink.
func (g *Game) emit(evt Event) {
	evt.GameID = g.uid
	g.history = append(g.history, evt)
	log.Debug().Str("kind", string(evt.Kind)).Str("player", evt.PlayerID).
		Str("origin", evt.Origin).Str("target", evt.Target).Msg("game-event")
	for _, s := range g.seats {
		s.player.Notify(evt)
	}
	for _, sink := range g.sinks {
		sink.Emit(evt)
	}
}

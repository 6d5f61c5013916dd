// Package automatic plays bot-vs-bot Tock games, one at a time or in
// bulk, and collects what happened in them.
package automatic

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/domino14/tock/cards"
	"github.com/domino14/tock/config"
	"github.com/domino14/tock/game"
	"github.com/domino14/tock/player"
)

const (
	RandomPlayer = "random"
	LuaPlayer    = "lua"
)

// Result is the outcome of one automatic game.
type Result struct {
	GameID    int
	Winner    int
	Turns     int
	Cycles    int
	Abandoned bool
}

func (r Result) csvLine() string {
	return fmt.Sprintf("%d,%d,%d,%d,%v\n", r.GameID, r.Winner, r.Turns, r.Cycles, r.Abandoned)
}

// GameRunner sets up the seats for automatic games and plays them.
type GameRunner struct {
	config  *config.Config
	logchan chan string
	seats   []string
	script  string
}

// NewGameRunner returns a runner for the seat kinds in the config. Only
// bots may play automatic games.
func NewGameRunner(logchan chan string, cfg *config.Config) (*GameRunner, error) {
	r := &GameRunner{
		config:  cfg,
		logchan: logchan,
		seats:   cfg.Seats(),
		script:  cfg.GetString(config.ConfigLuaScript),
	}
	for i, kind := range r.seats {
		switch kind {
		case RandomPlayer:
		case LuaPlayer:
			if r.script == "" {
				return nil, fmt.Errorf("seat %d is a lua bot but no script was given", i)
			}
		default:
			return nil, fmt.Errorf("seat %d: %q cannot play automatic games", i, kind)
		}
	}
	return r, nil
}

// players builds fresh bots for one game. The returned func closes any
// script states.
func (r *GameRunner) players() ([]game.PlayerInfo, func(), error) {
	infos := make([]game.PlayerInfo, len(r.seats))
	var closers []func()
	cleanup := func() {
		for _, c := range closers {
			c()
		}
	}
	for i, kind := range r.seats {
		nick := fmt.Sprintf("%s-%d", kind, i)
		switch kind {
		case LuaPlayer:
			lp, err := player.NewLuaPlayer(nick, r.script)
			if err != nil {
				cleanup()
				return nil, nil, err
			}
			closers = append(closers, lp.Close)
			infos[i] = game.PlayerInfo{Nickname: nick, Player: lp}
		default:
			infos[i] = game.PlayerInfo{Nickname: nick, Player: player.NewRandomPlayer(nick)}
		}
	}
	return infos, cleanup, nil
}

// PlayGame plays one game to the end. Running into the turn limit is not
// an error; the result is marked abandoned.
func (r *GameRunner) PlayGame(ctx context.Context, gameID int) (Result, error) {
	infos, cleanup, err := r.players()
	if err != nil {
		return Result{}, err
	}
	defer cleanup()
	g, err := game.NewGame(r.config, cards.NewDeck(), infos)
	if err != nil {
		return Result{}, err
	}
	err = g.Play(ctx)
	res := Result{GameID: gameID, Winner: g.Winner(), Turns: g.Turn(), Cycles: g.Cycle()}
	if errors.Is(err, game.ErrTurnLimit) {
		res.Abandoned = true
		res.Winner = -1
		err = nil
	}
	if err != nil {
		return res, err
	}
	log.Debug().Int("game", gameID).Int("winner", res.Winner).Int("turns", res.Turns).
		Msg("game-over")
	if r.logchan != nil {
		r.logchan <- res.csvLine()
	}
	return res, nil
}

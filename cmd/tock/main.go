package main

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/chzyer/readline"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/domino14/tock/cards"
	"github.com/domino14/tock/config"
	"github.com/domino14/tock/game"
	"github.com/domino14/tock/notify"
	"github.com/domino14/tock/player"
	"github.com/domino14/tock/position"
	"github.com/domino14/tock/shell"
)

var (
	GitVersion string
)

//go:embed tock.txt
var tockbanner string

func setupLogging(cfg *config.Config) {
	output := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	output.FormatLevel = func(i interface{}) string {
		return strings.ToUpper(fmt.Sprintf("| %-6s|", i))
	}
	output.FormatMessage = func(i interface{}) string {
		return fmt.Sprintf("%s", i)
	}
	output.FormatFieldName = func(i interface{}) string {
		return fmt.Sprintf("%s:", i)
	}

	var logger zerolog.Logger
	if cfg.GetBool(config.ConfigDebug) {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
		logger = zerolog.New(output).Level(zerolog.DebugLevel).With().Timestamp().Logger()
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
		logger = zerolog.New(output).Level(zerolog.InfoLevel).With().Timestamp().Logger()
	}
	zerolog.DefaultContextLogger = &logger
	log.Logger = logger
	logger.Debug().Msg("Debug logging is on")
}

// seatPlayers turns the configured seat kinds into players. Only one seat
// can be driven from this terminal.
func seatPlayers(cfg *config.Config) ([]game.PlayerInfo, func(), error) {
	var infos []game.PlayerInfo
	var cleanups []func()
	cleanup := func() {
		for _, c := range cleanups {
			c()
		}
	}
	var rl *readline.Instance
	for i, kind := range cfg.Seats() {
		nick := fmt.Sprintf("%s-%d", kind, i)
		switch kind {
		case "shell":
			if rl != nil {
				cleanup()
				return nil, nil, errors.New("only one shell seat is supported")
			}
			sp, l, err := shell.NewShellPlayer(nick, cfg.GetString(config.ConfigHistoryFile))
			if err != nil {
				cleanup()
				return nil, nil, err
			}
			rl = l
			cleanups = append(cleanups, func() { l.Close() })
			infos = append(infos, game.PlayerInfo{Nickname: nick, Player: sp})
		case "random":
			infos = append(infos, game.PlayerInfo{Nickname: nick, Player: player.NewRandomPlayer(nick)})
		case "lua":
			lp, err := player.NewLuaPlayer(nick, cfg.GetString(config.ConfigLuaScript))
			if err != nil {
				cleanup()
				return nil, nil, err
			}
			cleanups = append(cleanups, lp.Close)
			infos = append(infos, game.PlayerInfo{Nickname: nick, Player: lp})
		default:
			cleanup()
			return nil, nil, fmt.Errorf("unknown seat kind %q", kind)
		}
	}
	return infos, cleanup, nil
}

func main() {
	fmt.Println(tockbanner)
	fmt.Println(GitVersion)

	cfg := &config.Config{}
	if err := cfg.Load(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	setupLogging(cfg)
	log.Info().Msgf("Loaded config: %v", cfg.SanitizedSettings())

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	infos, cleanup, err := seatPlayers(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("seating-players")
	}
	defer cleanup()

	g, err := game.NewGame(cfg, cards.NewDeck(), infos)
	if err != nil {
		log.Fatal().Err(err).Msg("new-game")
	}
	g.AddSink(notify.NewLogSink(log.Logger))

	if url := cfg.GetString(config.ConfigNatsURL); url != "" {
		nc, err := notify.Connect(ctx, url, cfg.GetInt(config.ConfigNatsRetries))
		if err != nil {
			log.Fatal().Err(err).Msg("nats-connect")
		}
		defer nc.Drain()
		g.AddSink(notify.NewNatsSink(nc, cfg.GetString(config.ConfigNatsSubject),
			cfg.GetInt(config.ConfigNatsRetries)))
	}

	if pf := cfg.GetString(config.ConfigPositionFile); pf != "" {
		pos, err := position.Load(pf)
		if err != nil {
			log.Fatal().Err(err).Msg("loading-position")
		}
		if err := pos.Apply(g); err != nil {
			log.Fatal().Err(err).Msg("applying-position")
		}
		log.Info().Str("file", pf).Msg("loaded-position")
	}

	err = g.Play(ctx)
	fmt.Println(g.ToDisplayText())
	switch {
	case err == nil:
	case errors.Is(err, shell.ErrQuit), errors.Is(err, context.Canceled):
		log.Info().Msg("game abandoned")
	default:
		log.Error().Err(err).Msg("game-ended-with-error")
	}
	log.Info().Msg("exiting")
}

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/aybabtme/uniplot/histogram"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/domino14/tock/automatic"
	"github.com/domino14/tock/config"
)

func main() {
	cfg := &config.Config{}
	args := os.Args[1:]
	// A leading non-flag argument is a log file to analyze instead of
	// playing.
	var analyze string
	if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		analyze, args = args[0], args[1:]
	}
	if err := cfg.Load(args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	output := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	lvl := zerolog.InfoLevel
	if cfg.GetBool(config.ConfigDebug) {
		lvl = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(lvl)
	log.Logger = zerolog.New(output).Level(lvl).With().Timestamp().Logger()

	if analyze != "" {
		text, err := automatic.AnalyzeLogFile(analyze)
		if err != nil {
			log.Fatal().Err(err).Msg("analyze")
		}
		fmt.Print(text)
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logfile, err := os.Create(fmt.Sprintf("/tmp/tock-autoplay-%d.csv", time.Now().Unix()))
	if err != nil {
		log.Fatal().Err(err).Msg("create-log")
	}
	defer logfile.Close()

	start := time.Now()
	summary, err := automatic.StartCompVComp(ctx, cfg,
		cfg.GetInt(config.ConfigAutoplayGames), cfg.GetInt(config.ConfigAutoplayThreads), logfile)
	if err != nil {
		log.Fatal().Err(err).Msg("autoplay")
	}
	log.Info().Str("log", logfile.Name()).Dur("elapsed", time.Since(start)).Msg("autoplay-done")

	fmt.Print(summary.ToDisplayText())
	if len(summary.Lengths) > 1 {
		fmt.Println("Game length (turns):")
		hist := histogram.Hist(15, summary.Lengths)
		if err := histogram.Fprint(os.Stdout, hist, histogram.Linear(40)); err != nil {
			log.Err(err).Msg("histogram")
		}
	}
}

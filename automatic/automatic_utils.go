package automatic

// Data collection for automatic games: many bot games, run concurrently.

import (
	"context"
	"errors"
	"expvar"
	"io"
	"sync"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/domino14/tock/config"
	"github.com/domino14/tock/stats"
)

var (
	CVCCounter *expvar.Int
	IsPlaying  *expvar.Int
)

func init() {
	CVCCounter = expvar.NewInt("cvcCounter")
	IsPlaying = expvar.NewInt("isPlaying")
}

const logHeader = "gameID,winner,turns,cycles,abandoned\n"

// Summary aggregates the results of a batch of games.
type Summary struct {
	Games     int
	Wins      [2]int
	Abandoned int
	Turns     stats.Statistic
	// Lengths has the number of turns of every finished game.
	Lengths []float64
}

func (s *Summary) add(r Result) {
	s.Games++
	if r.Abandoned {
		s.Abandoned++
		return
	}
	s.Wins[r.Winner]++
	s.Turns.Push(float64(r.Turns))
	s.Lengths = append(s.Lengths, float64(r.Turns))
}

// Team0WinRate is team 0's share of the decided games.
func (s *Summary) Team0WinRate() stats.Proportion {
	return stats.Proportion{Successes: s.Wins[0], Trials: s.Wins[0] + s.Wins[1]}
}

// StartCompVComp plays numGames games, at most threads at a time, writing
// a CSV line per game to logfile if it is not nil. It stops early, with
// what it has so far, once ctx is done.
func StartCompVComp(ctx context.Context, cfg *config.Config, numGames, threads int,
	logfile io.Writer) (*Summary, error) {

	if IsPlaying.Value() > 0 {
		return nil, errors.New("games are already being played, please wait till complete")
	}
	IsPlaying.Add(1)
	defer IsPlaying.Add(-1)
	CVCCounter.Set(0)

	var logChan chan string
	var logWg sync.WaitGroup
	if logfile != nil {
		logChan = make(chan string, 100)
		logWg.Add(1)
		go func() {
			defer logWg.Done()
			io.WriteString(logfile, logHeader)
			for msg := range logChan {
				io.WriteString(logfile, msg)
			}
		}()
	}

	r, err := NewGameRunner(logChan, cfg)
	if err != nil {
		if logChan != nil {
			close(logChan)
			logWg.Wait()
		}
		return nil, err
	}
	log.Info().Int("games", numGames).Int("threads", threads).Msg("starting-cvc")

	results := make(chan Result, threads)
	summary := &Summary{}
	var sumWg sync.WaitGroup
	sumWg.Add(1)
	go func() {
		defer sumWg.Done()
		for res := range results {
			summary.add(res)
		}
	}()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(threads)
	for i := 0; i < numGames; i++ {
		if gctx.Err() != nil {
			log.Info().Msg("got-stop-signal")
			break
		}
		i := i
		g.Go(func() error {
			res, err := r.PlayGame(gctx, i)
			if err != nil {
				return err
			}
			CVCCounter.Add(1)
			results <- res
			return nil
		})
	}
	err = g.Wait()
	close(results)
	sumWg.Wait()
	if logChan != nil {
		close(logChan)
		logWg.Wait()
	}
	log.Info().Int("played", summary.Games).Msg("finished-cvc")
	if errors.Is(err, context.Canceled) && ctx.Err() != nil {
		// Stopped by the caller; the partial summary is still good.
		err = nil
	}
	return summary, err
}

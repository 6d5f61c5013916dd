// Package notify forwards game events to places outside the game loop:
// the log, and a NATS subject other processes can subscribe to.
package notify

import (
	"context"
	"encoding/json"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/domino14/tock/game"
)

// LogSink writes every event to a zerolog logger.
type LogSink struct {
	logger zerolog.Logger
}

func NewLogSink(logger zerolog.Logger) *LogSink {
	return &LogSink{logger: logger}
}

func (s *LogSink) Emit(evt game.Event) {
	lvl := zerolog.DebugLevel
	if evt.Kind == game.EventWin {
		lvl = zerolog.InfoLevel
	}
	s.logger.WithLevel(lvl).
		Str("game", evt.GameID).
		Str("kind", string(evt.Kind)).
		Int("turn", evt.Turn).
		Str("player", evt.PlayerID).
		Str("action", evt.Action).
		Str("origin", evt.Origin).
		Str("target", evt.Target).
		Msg(evt.Description)
}

// Publisher is the part of a NATS connection the sink needs.
type Publisher interface {
	Publish(subject string, data []byte) error
}

// NatsSink publishes each event as JSON to <prefix>.<kind>. A failed
// publish is retried a few times and then dropped; the game never waits
// on the message bus for long.
type NatsSink struct {
	pub      Publisher
	prefix   string
	attempts uint
}

func NewNatsSink(pub Publisher, prefix string, attempts int) *NatsSink {
	if attempts < 1 {
		attempts = 1
	}
	return &NatsSink{pub: pub, prefix: prefix, attempts: uint(attempts)}
}

func (s *NatsSink) Subject(evt game.Event) string {
	return s.prefix + "." + string(evt.Kind)
}

func (s *NatsSink) Emit(evt game.Event) {
	data, err := json.Marshal(evt)
	if err != nil {
		log.Err(err).Msg("marshal-event")
		return
	}
	subj := s.Subject(evt)
	err = retry.Do(
		func() error { return s.pub.Publish(subj, data) },
		retry.Attempts(s.attempts),
		retry.Delay(10*time.Millisecond),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			log.Err(err).Uint("n", n).Str("subject", subj).Msg("publish-failed-try-again")
		}),
	)
	if err != nil {
		log.Err(err).Str("subject", subj).Msg("dropped-event")
	}
}

// Connect dials the NATS server at url, retrying with backoff.
func Connect(ctx context.Context, url string, attempts int) (*nats.Conn, error) {
	if attempts < 1 {
		attempts = 1
	}
	var nc *nats.Conn
	err := retry.Do(
		func() error {
			var err error
			nc, err = nats.Connect(url, nats.Name("tock"))
			return err
		},
		retry.Context(ctx),
		retry.Attempts(uint(attempts)),
		retry.DelayType(func(n uint, err error, config *retry.Config) time.Duration {
			log.Err(err).Uint("n", n).Msg("nats-connect-failed-try-again")
			return retry.BackOffDelay(n, err, config)
		}),
	)
	if err != nil {
		return nil, err
	}
	log.Info().Str("url", nc.ConnectedUrlRedacted()).Msg("connected-to-nats")
	return nc, nil
}

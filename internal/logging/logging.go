package logging

import (
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/Garsondee/Brick-Guard/internal/game"
)

// ParseLevel maps a config string to a zerolog level. Unknown names fall back
// to info.
func ParseLevel(name string) zerolog.Level {
	switch strings.ToUpper(name) {
	case "TRACE":
		return zerolog.TraceLevel
	case "DEBUG":
		return zerolog.DebugLevel
	case "INFO":
		return zerolog.InfoLevel
	case "WARN":
		return zerolog.WarnLevel
	case "ERROR":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// New builds a logger writing to w. format "json" writes one JSON object per
// line; anything else uses the colourless console writer.
func New(level, format string, w io.Writer) zerolog.Logger {
	var out io.Writer = w
	if !strings.EqualFold(format, "json") {
		out = zerolog.ConsoleWriter{
			Out:        w,
			TimeFormat: time.RFC3339,
			NoColor:    true,
		}
	}
	return zerolog.New(out).Level(ParseLevel(level)).With().Timestamp().Logger()
}

// RoundListener writes round events to a zerolog logger. Position samples
// and shots are logged at trace level, the rest at debug, and round start
// and end at info.
type RoundListener struct {
	logger zerolog.Logger
}

// NewRoundListener wraps logger.
func NewRoundListener(logger zerolog.Logger) *RoundListener {
	return &RoundListener{logger: logger.With().Str("component", "round").Logger()}
}

// OnEvent implements game.Listener.
func (l *RoundListener) OnEvent(e game.Event) {
	var ev *zerolog.Event
	switch e.Kind {
	case game.EventRoundStarted, game.EventRoundEnded, game.EventBaseDestroyed:
		ev = l.logger.Info()
	case game.EventPosition, game.EventShotFired, game.EventShotBlocked:
		ev = l.logger.Trace()
	default:
		ev = l.logger.Debug()
	}
	ev = ev.Str("event", e.Kind.String()).
		Int("tick", e.Tick).
		Int("wave", e.Stats.Wave).
		Int("score", e.Stats.Score).
		Int("lives", e.Stats.Lives)
	if e.Actor != "" {
		ev = ev.Str("actor", e.Actor)
	}
	ev.Msg(e.Value)
}

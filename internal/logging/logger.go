package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type Level zerolog.Level

const (
	DebugLevel = Level(zerolog.DebugLevel)
	InfoLevel  = Level(zerolog.InfoLevel)
)

func (l Level) toZerolog() zerolog.Level {
	return zerolog.Level(l)
}

func (l Level) String() string {
	return l.toZerolog().String()
}

// Setup replaces the global logger. Logs always go to stderr so stdout stays
// free for the console reporter.
func Setup(level Level) {
	SetupWriter(level, writerFor(level))
}

// writerFor picks a human readable console writer at debug level and plain
// JSON otherwise.
func writerFor(level Level) io.Writer {
	switch level.toZerolog() {
	case zerolog.DebugLevel, zerolog.TraceLevel:
		return zerolog.NewConsoleWriter(func(w *zerolog.ConsoleWriter) {
			w.Out = os.Stderr
			w.TimeFormat = time.RFC3339
		})
	default:
		return os.Stderr
	}
}

func SetupWriter(level Level, writer io.Writer) {
	zerolog.SetGlobalLevel(level.toZerolog())
	log.Logger = zerolog.
		New(writer).
		With().
		Timestamp().
		Caller().
		Logger()
}

func ParseLevel(lvl string) Level {
	parsedLevel, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(lvl)))
	if err != nil || parsedLevel == zerolog.NoLevel {
		return InfoLevel
	}
	return Level(parsedLevel)
}

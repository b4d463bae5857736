package logger

import (
	"os"
	"strings"
	"sync"

	"github.com/rs/zerolog"
)

var (
	global zerolog.Logger
	once   sync.Once
)

func init() {
	// Usable default before Init is called (tests, tooling).
	global = zerolog.New(os.Stdout).With().Timestamp().Logger()
}

// Init configures the global logger. Call once at server startup.
func Init(service, level string) {
	once.Do(func() {
		global = zerolog.New(os.Stdout).
			Level(parseLevel(level)).
			With().
			Timestamp().
			Str("service", service).
			Logger()
	})
}

// L returns the global logger. The pointer matters: zerolog's leveled
// methods have pointer receivers, so call sites chain straight off L().
func L() *zerolog.Logger {
	return &global
}

func parseLevel(s string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

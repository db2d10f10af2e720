package logging

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	stdlog "log"
)

// Init configures the global logger. Logs go to stderr so dry-mode
// envelope output on stdout stays machine-readable.
func Init(logLevel string) {
	log.Logger = zerolog.New(os.Stderr).
		With().
		Timestamp().Logger()

	level, err := zerolog.ParseLevel(logLevel)
	if err != nil {
		stdlog.Panicf(`logging: failed to parse log level of %s: %v`, logLevel, err)
	}
	zerolog.SetGlobalLevel(level)
}

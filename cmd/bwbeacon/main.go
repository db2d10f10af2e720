package main

import (
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"bwbeacon/internal/common/logging"
)

var logLevel string

func main() {
	root := &cobra.Command{
		Use:           "bwbeacon",
		Short:         "Stream per-interface traffic deltas to a collector",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(*cobra.Command, []string) {
			logging.Init(logLevel)
		},
	}
	root.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log verbosity level")

	root.AddCommand(newGenCommand())
	root.AddCommand(newBeaconCommand())

	if err := root.Execute(); err != nil {
		log.Error().Err(err).Msg("bwbeacon: exiting")
		os.Exit(1)
	}
}

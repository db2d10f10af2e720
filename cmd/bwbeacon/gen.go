package main

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"bwbeacon/internal/secure"
)

const (
	defaultKeyDir  = "/etc/bwbeacon"
	defaultKeyName = "client"
)

func newGenCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "gen [dir] [name]",
		Short: "Generate a key certificate pair",
		Args:  cobra.MaximumNArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			dir, name := defaultKeyDir, defaultKeyName
			if len(args) > 0 {
				dir = args[0]
			}
			if len(args) > 1 {
				name = args[1]
			}

			pair, err := secure.Generate()
			if err != nil {
				return err
			}
			publicPath, secretPath, err := secure.WriteCertificates(dir, name, pair)
			if err != nil {
				return err
			}
			log.Info().
				Str("public", publicPath).
				Str("secret", secretPath).
				Msg("gen: certificates written")
			return nil
		},
	}
}

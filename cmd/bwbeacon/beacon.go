package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"bwbeacon/internal/beacon"
	"bwbeacon/internal/channel"
	"bwbeacon/internal/common/config"
	"bwbeacon/internal/netstat"
	"bwbeacon/internal/observe"
	"bwbeacon/internal/secure"
)

func newBeaconCommand() *cobra.Command {
	cfg := config.Config{}

	cmd := &cobra.Command{
		Use:   "beacon <broker-url> <origin> [interface...]",
		Short: "Sample interface counters and publish deltas",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg.Mqtt.BrokerUrl = args[0]
			cfg.Origin = args[1]
			cfg.Interfaces = args[2:]
			return runBeacon(cmd.Context(), cfg)
		},
	}

	cmd.Flags().StringVarP(&cfg.Keys.ServerPublic, "server-key", "k", "", "server public certificate")
	cmd.Flags().StringVarP(&cfg.Keys.ClientSecret, "client-key", "c", "", "client secret certificate")
	cmd.Flags().BoolVarP(&cfg.Dry, "dry", "n", false, "print envelopes to stdout instead of publishing")
	cmd.Flags().StringVarP(&cfg.Mqtt.Topic, "topic", "t", "bwbeacon/traffic", "publish topic")
	cmd.Flags().DurationVarP(&cfg.Interval, "interval", "i", time.Second, "sampling interval")
	cmd.Flags().StringVar(&cfg.OnError, "on-error", string(beacon.Terminate), "snapshot failure policy: terminate or skip")
	cmd.Flags().StringVar(&cfg.MetricsAddr, "metrics-addr", "", "optional prometheus listen address")

	return cmd
}

func runBeacon(parent context.Context, cfg config.Config) error {
	policy, err := beacon.ParsePolicy(cfg.OnError)
	if err != nil {
		return err
	}

	sealer, err := secure.Resolve(cfg.Keys.ServerPublic, cfg.Keys.ClientSecret, cfg.Dry)
	if err != nil {
		return err
	}

	ifaces := cfg.Interfaces
	if len(ifaces) == 0 {
		ifaces, err = netstat.Discover(netstat.DefaultSysfsRoot)
		if err != nil {
			return err
		}
	}
	registry := netstat.NewRegistry(ifaces, netstat.SysfsSource{})

	var ch channel.Channel
	if cfg.Dry {
		ch = channel.Dry{Out: os.Stdout}
	} else {
		ch, err = channel.Dial(cfg.Mqtt.BrokerUrl, cfg.Origin, cfg.Mqtt.Topic, sealer)
		if err != nil {
			return err
		}
	}
	defer ch.Close()

	var metrics *observe.Metrics
	if cfg.MetricsAddr != "" {
		metrics = observe.NewMetrics()
		observe.Serve(cfg.MetricsAddr)
	}

	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Info().
		Str("origin", cfg.Origin).
		Strs("interfaces", registry.Interfaces()).
		Bool("sealed", sealer != nil).
		Msg("beacon: starting")

	b := &beacon.Beacon{
		Registry: registry,
		Channel:  ch,
		Origin:   cfg.Origin,
		Interval: cfg.Interval,
		OnError:  policy,
		Metrics:  metrics,
	}
	return b.Run(ctx)
}

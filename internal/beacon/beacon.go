// Package beacon runs the sampling loop: take a snapshot, wrap it in
// an envelope, send it, sleep, repeat. The sleep is a fixed wall-clock
// interval, not drift-corrected: the effective period is the interval
// plus snapshot and send latency, so the sampling rate degrades
// slightly under load. That is an accepted characteristic of a
// best-effort beacon.
package beacon

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"bwbeacon/internal/channel"
	"bwbeacon/internal/netstat"
	"bwbeacon/internal/observe"
	"bwbeacon/internal/wire"
)

// FailurePolicy decides what a failed snapshot does to the loop.
type FailurePolicy string

const (
	// Terminate stops the beacon on the first unreadable counter.
	Terminate FailurePolicy = "terminate"
	// Skip logs the failure, drops the cycle, and keeps running.
	Skip FailurePolicy = "skip"
)

// ParsePolicy validates a policy name from the command line.
func ParsePolicy(name string) (FailurePolicy, error) {
	switch FailurePolicy(name) {
	case Terminate, Skip:
		return FailurePolicy(name), nil
	}
	return "", fmt.Errorf("unknown failure policy %q", name)
}

// Beacon ties the registry and the channel together on a fixed
// interval. Single goroutine; the only suspend points are the
// inter-cycle sleep and a Send blocked on transport backpressure.
type Beacon struct {
	Registry *netstat.Registry
	Channel  channel.Channel
	Origin   string
	Interval time.Duration
	OnError  FailurePolicy
	Metrics  *observe.Metrics

	// Now overrides the wall clock in tests. Nil means time.Now.
	Now func() time.Time
}

func (b *Beacon) now() time.Time {
	if b.Now != nil {
		return b.Now()
	}
	return time.Now()
}

// Cycle performs one sample-and-send pass.
func (b *Beacon) Cycle() error {
	snap, err := b.Registry.Snapshot()
	if err != nil {
		return err
	}
	env := wire.New(b.Origin, b.now(), snap)
	if err := b.Channel.Send(env); err != nil {
		return err
	}
	b.Metrics.ObserveCycle(snap)
	return nil
}

// Run repeats Cycle until the context is canceled, sleeping Interval
// between cycles. Cancellation is honored between cycles only and
// returns nil. A cycle error terminates the loop unless the policy is
// Skip, in which case the cycle is dropped with a warning.
func (b *Beacon) Run(ctx context.Context) error {
	for {
		if err := b.Cycle(); err != nil {
			if b.OnError != Skip {
				return err
			}
			log.Warn().Err(err).Msg("beacon: skipping cycle")
		}
		select {
		case <-ctx.Done():
			return nil
		case <-time.After(b.Interval):
		}
	}
}

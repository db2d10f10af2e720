// Package observe exposes the beacon's own operational counters over
// an optional prometheus listener.
package observe

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"bwbeacon/internal/netstat"
)

// Metrics aggregates per-cycle beacon activity. A nil *Metrics is a
// no-op so the beacon can run with metrics disabled.
type Metrics struct {
	cycles         prometheus.Counter
	interfaceBytes *prometheus.CounterVec
}

func NewMetrics() *Metrics {
	cycles := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "bwbeacon_cycles_total",
		Help: "Completed sample-and-send cycles.",
	})
	interfaceBytes := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "bwbeacon_interface_bytes_total",
		Help: "Bytes observed per interface and direction, summed from reported deltas.",
	}, []string{"interface", "direction"})

	prometheus.MustRegister(cycles, interfaceBytes)

	return &Metrics{
		cycles:         cycles,
		interfaceBytes: interfaceBytes,
	}
}

// ObserveCycle records one completed cycle and folds the snapshot's
// deltas into the per-interface byte counters.
func (m *Metrics) ObserveCycle(snap netstat.Snapshot) {
	if m == nil {
		return
	}
	m.cycles.Inc()
	for iface, deltas := range snap {
		for counter, delta := range deltas {
			m.interfaceBytes.WithLabelValues(iface, string(counter)).Add(float64(delta))
		}
	}
}

// Serve starts the prometheus listener in the background. Listener
// failure is logged, not fatal; metrics are an aid, not a dependency.
func Serve(addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	server := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		log.Info().Str("addr", addr).Msg("metrics: listening")
		if err := server.ListenAndServe(); err != nil {
			log.Error().Err(err).Msg("metrics: listener stopped")
		}
	}()
}

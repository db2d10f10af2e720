// Package netstat reads per-interface byte counters from the kernel and
// turns the raw monotonic readings into per-interval deltas.
package netstat

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Counter names a single statistic of a network interface. The values
// match the file names under /sys/class/net/<iface>/statistics/.
type Counter string

const (
	RxBytes Counter = "rx_bytes"
	TxBytes Counter = "tx_bytes"
)

// Counters lists every statistic a tracker polls, in reporting order.
var Counters = []Counter{RxBytes, TxBytes}

// ErrUnavailableCounter reports a counter that does not exist or could
// not be read, e.g. the interface disappeared or permissions changed.
var ErrUnavailableCounter = errors.New("counter unavailable")

// Source reads the current raw value of one counter. Implementations
// must not cache; every call is a fresh read.
type Source interface {
	Read(iface string, counter Counter) (uint64, error)
}

// DefaultSysfsRoot is where the kernel exposes per-interface statistics.
const DefaultSysfsRoot = "/sys/class/net"

// SysfsSource reads counters from the kernel's sysfs tree. The zero
// value reads from DefaultSysfsRoot; Root overrides it for tests.
type SysfsSource struct {
	Root string
}

func (s SysfsSource) root() string {
	if s.Root != "" {
		return s.Root
	}
	return DefaultSysfsRoot
}

func (s SysfsSource) Read(iface string, counter Counter) (uint64, error) {
	path := filepath.Join(s.root(), iface, "statistics", string(counter))
	raw, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("%w: %s/%s: %v", ErrUnavailableCounter, iface, counter, err)
	}
	value, err := strconv.ParseUint(strings.TrimSpace(string(raw)), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s/%s: %v", ErrUnavailableCounter, iface, counter, err)
	}
	return value, nil
}

var _ Source = SysfsSource{}

// Discover enumerates the interface names present under root at the
// time of the call. Callers are expected to do this once at startup;
// interfaces appearing later are never picked up.
func Discover(root string) ([]string, error) {
	if root == "" {
		root = DefaultSysfsRoot
	}
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("listing interfaces in %s: %w", root, err)
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, entry.Name())
	}
	return names, nil
}

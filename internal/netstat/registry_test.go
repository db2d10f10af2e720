package netstat

import (
	"errors"
	"testing"
)

func TestRegistryBaselineSnapshot(t *testing.T) {
	source := &scriptedSource{readings: map[string][]uint64{
		"eth0/rx_bytes":  {1000},
		"eth0/tx_bytes":  {2000},
		"wlan0/rx_bytes": {3000},
		"wlan0/tx_bytes": {4000},
	}}
	registry := NewRegistry([]string{"eth0", "wlan0"}, source)

	snap, err := registry.Snapshot()
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	if len(snap) != 2 {
		t.Fatalf("expected 2 interfaces, got %d", len(snap))
	}
	for _, iface := range []string{"eth0", "wlan0"} {
		deltas, ok := snap[iface]
		if !ok {
			t.Fatalf("missing interface %s", iface)
		}
		if deltas[RxBytes] != 0 || deltas[TxBytes] != 0 {
			t.Fatalf("%s baseline deltas should be zero, got %v", iface, deltas)
		}
	}
}

func TestRegistrySnapshotUnchangedCountersYieldZero(t *testing.T) {
	source := &scriptedSource{readings: map[string][]uint64{
		"eth0/rx_bytes": {5555},
		"eth0/tx_bytes": {7777},
	}}
	registry := NewRegistry([]string{"eth0"}, source)

	if _, err := registry.Snapshot(); err != nil {
		t.Fatalf("first snapshot: %v", err)
	}
	snap, err := registry.Snapshot()
	if err != nil {
		t.Fatalf("second snapshot: %v", err)
	}
	if snap["eth0"][RxBytes] != 0 || snap["eth0"][TxBytes] != 0 {
		t.Fatalf("expected all-zero deltas, got %v", snap["eth0"])
	}
}

func TestRegistrySnapshotFailsWhole(t *testing.T) {
	source := &scriptedSource{
		readings: map[string][]uint64{
			"eth0/rx_bytes": {1},
			"eth0/tx_bytes": {1},
		},
		failures: map[string]int{"wlan0/rx_bytes": 1},
	}
	registry := NewRegistry([]string{"eth0", "wlan0"}, source)

	snap, err := registry.Snapshot()
	if !errors.Is(err, ErrUnavailableCounter) {
		t.Fatalf("expected ErrUnavailableCounter, got %v", err)
	}
	if snap != nil {
		t.Fatalf("partial snapshot must not be produced, got %v", snap)
	}
}

func TestRegistryInterfacesPreserveOrder(t *testing.T) {
	registry := NewRegistry([]string{"wlan0", "eth0"}, &scriptedSource{})
	names := registry.Interfaces()
	if len(names) != 2 || names[0] != "wlan0" || names[1] != "eth0" {
		t.Fatalf("unexpected interface order: %v", names)
	}
}

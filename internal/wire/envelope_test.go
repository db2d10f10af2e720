package wire

import (
	"reflect"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"bwbeacon/internal/netstat"
)

func TestEnvelopeRoundTrip(t *testing.T) {
	snap := netstat.Snapshot{
		"eth0":  {netstat.RxBytes: 500, netstat.TxBytes: 120},
		"wlan0": {netstat.RxBytes: 0, netstat.TxBytes: 0},
	}
	env := New("node-a", time.Unix(1700000000, 123456789), snap)

	raw, err := env.Encode()
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	decoded, err := Decode(raw)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	if decoded.Origin != "node-a" {
		t.Fatalf("origin %q, want node-a", decoded.Origin)
	}
	if decoded.When != 1700000000 {
		t.Fatalf("when %d, want 1700000000 (whole seconds)", decoded.When)
	}
	if !reflect.DeepEqual(decoded.Data, snap) {
		t.Fatalf("data mismatch: %v vs %v", decoded.Data, snap)
	}
}

func TestEnvelopeWireFieldNames(t *testing.T) {
	env := New("n", time.Unix(42, 0), netstat.Snapshot{
		"eth0": {netstat.RxBytes: 1, netstat.TxBytes: 2},
	})
	raw, err := env.Encode()
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	var doc map[string]json.RawMessage
	if err := json.Unmarshal(raw, &doc); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	for _, field := range []string{"origin", "when", "data"} {
		if _, ok := doc[field]; !ok {
			t.Fatalf("missing top-level field %q in %s", field, raw)
		}
	}

	var data map[string]map[string]uint64
	if err := json.Unmarshal(doc["data"], &data); err != nil {
		t.Fatalf("unmarshal data: %v", err)
	}
	if data["eth0"]["rx_bytes"] != 1 || data["eth0"]["tx_bytes"] != 2 {
		t.Fatalf("unexpected counter keys: %v", data["eth0"])
	}
}

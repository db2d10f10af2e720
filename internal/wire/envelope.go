// Package wire defines the message unit the beacon publishes and its
// JSON encoding.
package wire

import (
	"time"

	"github.com/goccy/go-json"

	"bwbeacon/internal/netstat"
)

// Envelope is the self-describing unit sent to the collector: who the
// sample came from, when it was taken, and the per-interface deltas.
// It is never mutated after construction.
type Envelope struct {
	Origin string           `json:"origin"`
	When   uint64           `json:"when"`
	Data   netstat.Snapshot `json:"data"`
}

// New wraps a snapshot with the beacon identity and a wall-clock
// timestamp truncated to whole seconds.
func New(origin string, when time.Time, data netstat.Snapshot) *Envelope {
	return &Envelope{
		Origin: origin,
		When:   uint64(when.Unix()),
		Data:   data,
	}
}

// Encode serializes the envelope to its wire form.
func (e *Envelope) Encode() ([]byte, error) {
	return json.Marshal(e)
}

// Decode parses a wire-form envelope. Collectors and tests use it;
// the beacon itself only encodes.
func Decode(raw []byte) (*Envelope, error) {
	var env Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, err
	}
	return &env, nil
}

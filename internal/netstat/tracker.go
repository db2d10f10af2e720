package netstat

import "fmt"

// Tracker owns the previous-sample memory for one interface and
// computes per-interval deltas across polls. It is not safe for
// concurrent use; the beacon loop is the only caller.
type Tracker struct {
	iface  string
	source Source
	last   map[Counter]uint64
}

func NewTracker(iface string, source Source) *Tracker {
	return &Tracker{
		iface:  iface,
		source: source,
		last:   make(map[Counter]uint64, len(Counters)),
	}
}

// Poll reads every tracked counter and returns the delta since the
// previous poll. The first poll of a counter establishes the baseline
// and reports 0. A reading below the previous one means the kernel
// counter was reset (driver reload, interface bounce) or wrapped; the
// new reading itself is reported as the delta, so deltas are never
// negative. Memory is updated to the latest raw value after every
// successful read. A read failure leaves that counter's memory intact
// and aborts the poll.
func (t *Tracker) Poll() (map[Counter]uint64, error) {
	deltas := make(map[Counter]uint64, len(Counters))
	for _, counter := range Counters {
		value, err := t.source.Read(t.iface, counter)
		if err != nil {
			return nil, fmt.Errorf("interface %s: %w", t.iface, err)
		}
		previous, seen := t.last[counter]
		switch {
		case !seen:
			deltas[counter] = 0
		case value < previous:
			// counter restarted at zero
			deltas[counter] = value
		default:
			deltas[counter] = value - previous
		}
		t.last[counter] = value
	}
	return deltas, nil
}

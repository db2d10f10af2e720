package netstat

// Snapshot maps interface name to the per-counter deltas of one poll
// cycle. It is immutable once produced.
type Snapshot map[string]map[Counter]uint64

// Registry owns one Tracker per monitored interface. The interface set
// is fixed at construction for the process lifetime.
type Registry struct {
	trackers []*Tracker
}

func NewRegistry(ifaces []string, source Source) *Registry {
	trackers := make([]*Tracker, 0, len(ifaces))
	for _, iface := range ifaces {
		trackers = append(trackers, NewTracker(iface, source))
	}
	return &Registry{trackers: trackers}
}

// Interfaces returns the monitored interface names in registration order.
func (r *Registry) Interfaces() []string {
	names := make([]string, 0, len(r.trackers))
	for _, t := range r.trackers {
		names = append(names, t.iface)
	}
	return names
}

// Snapshot polls every tracker and assembles the combined mapping.
// Any unreadable counter fails the whole snapshot; partial snapshots
// are never produced. The caller decides whether a failed cycle is
// fatal or skipped.
func (r *Registry) Snapshot() (Snapshot, error) {
	snap := make(Snapshot, len(r.trackers))
	for _, t := range r.trackers {
		deltas, err := t.Poll()
		if err != nil {
			return nil, err
		}
		snap[t.iface] = deltas
	}
	return snap, nil
}

package mqttcore

import "sync/atomic"

// Stats holds atomic, concurrency-safe counters a host can sample while
// driving the client from one or more goroutines (only the counters
// themselves are safe for concurrent access — see the package-level
// concurrency note on Client).
type Stats struct {
	packetsEnqueued atomic.Uint64
	packetsReceived atomic.Uint64
	bytesEnqueued   atomic.Uint64
}

// Snapshot is a point-in-time copy of Stats suitable for logging or
// exporting to a metrics backend.
type Snapshot struct {
	PacketsEnqueued uint64
	PacketsReceived uint64
	BytesEnqueued   uint64
}

// Load takes a consistent-enough snapshot of s for reporting purposes.
func (s *Stats) Load() Snapshot {
	return Snapshot{
		PacketsEnqueued: s.packetsEnqueued.Load(),
		PacketsReceived: s.packetsReceived.Load(),
		BytesEnqueued:   s.bytesEnqueued.Load(),
	}
}

// Package stats provides lightweight named counters for instrumenting
// the signing loop's rejection/restart behavior, in the spirit of the
// reference layer's measure.Global counter registry -- but self-contained,
// since that package's own internal counter store isn't part of this
// module's domain.
package stats

import "sync"

// Counters is a concurrency-safe set of named int64 counters.
type Counters struct {
	mu     sync.Mutex
	counts map[string]int64
}

// New returns an empty counter set.
func New() *Counters {
	return &Counters{counts: make(map[string]int64)}
}

// Add increments the named counter by delta.
func (c *Counters) Add(name string, delta int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.counts[name] += delta
}

// Snapshot returns a copy of every counter's current value.
func (c *Counters) Snapshot() map[string]int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make(map[string]int64, len(c.counts))
	for k, v := range c.counts {
		out[k] = v
	}
	return out
}

// Reset zeroes every counter.
func (c *Counters) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.counts = make(map[string]int64)
}

// Global is the process-wide counter set the signing loop reports into
// by default; cmd/mldsa-bench reads it back to plot rejection-loop
// iteration counts.
var Global = New()

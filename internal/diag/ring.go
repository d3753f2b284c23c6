package diag

import (
	"sync"
	"time"
)

// DefaultRingSize is the capacity used when NewRing is given size <= 0.
const DefaultRingSize = 256

// Ring is a fixed-size circular buffer of Events, oldest overwritten first.
// Safe for concurrent use. A nil *Ring drops pushes and reads as empty.
type Ring struct {
	mu    sync.Mutex
	buf   []Event
	head  int // next write position
	count int // valid entries, 0..len(buf)
	now   func() time.Time
}

// NewRing creates a ring holding at most size events.
func NewRing(size int) *Ring {
	if size <= 0 {
		size = DefaultRingSize
	}
	return &Ring{buf: make([]Event, size), now: time.Now}
}

// Push appends e, stamping Time if it is zero.
func (r *Ring) Push(e Event) {
	if r == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if e.Time.IsZero() {
		e.Time = r.now()
	}
	r.buf[r.head] = e
	r.head = (r.head + 1) % len(r.buf)
	if r.count < len(r.buf) {
		r.count++
	}
}

// Last returns up to n of the most recent events, oldest first.
func (r *Ring) Last(n int) []Event {
	if r == nil || n <= 0 {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	n = min(n, r.count)
	if n == 0 {
		return nil
	}
	out := make([]Event, n)
	size := len(r.buf)
	start := (r.head - n + size) % size
	for i := range out {
		out[i] = r.buf[(start+i)%size]
	}
	return out
}

// Snapshot returns every buffered event, oldest first.
func (r *Ring) Snapshot() []Event {
	return r.Last(r.Len())
}

// Len returns the number of buffered events.
func (r *Ring) Len() int {
	if r == nil {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.count
}

// Cap returns the ring capacity.
func (r *Ring) Cap() int {
	if r == nil {
		return 0
	}
	return len(r.buf)
}

// Stats counts buffered events by kind.
func (r *Ring) Stats() map[Kind]int {
	counts := make(map[Kind]int)
	for _, e := range r.Snapshot() {
		counts[e.Kind]++
	}
	return counts
}

// Package clock implements the vector clock algebra used to order and
// classify updates across replicas: increment, compare, pointwise-max
// merge, and clone.
package clock

import "github.com/google/uuid"

// VectorClock maps a node identifier to a monotone counter. Absent keys
// are semantically zero. VectorClock is not safe for concurrent use —
// callers must serialize mutations (Increment) of a given clock, and
// serialize Increment against any in-flight Compare/Merge/Clone of the
// same clock.
type VectorClock map[string]uint64

// New returns an empty vector clock.
func New() VectorClock {
	return make(VectorClock)
}

// NewNode mints an opaque, collision-resistant node identifier for callers
// that don't already have a stable node name (e.g. an ad-hoc replica
// spun up for a test or a short-lived worker).
func NewNode() string {
	return uuid.New().String()
}

// Increment sets clock[node] to its previous value plus one.
func (c VectorClock) Increment(node string) {
	c[node] = c[node] + 1
}

// Clone returns an independent copy sharing no mutable state with c.
func (c VectorClock) Clone() VectorClock {
	out := make(VectorClock, len(c))
	for k, v := range c {
		out[k] = v
	}
	return out
}

// Merge returns a new clock whose counter for each key is the pointwise
// maximum of c and other. Neither input is mutated.
func (c VectorClock) Merge(other VectorClock) VectorClock {
	out := make(VectorClock, len(c)+len(other))
	for k, v := range c {
		out[k] = v
	}
	for k, v := range other {
		if v > out[k] {
			out[k] = v
		}
	}
	return out
}

// Relation is the causal relationship between two vector clocks.
type Relation int

const (
	// Equal means the two clocks are identical.
	Equal Relation = iota
	// Before means c causally precedes other.
	Before
	// After means other causally precedes c.
	After
	// Concurrent means neither clock causally precedes the other.
	Concurrent
)

func (r Relation) String() string {
	switch r {
	case Equal:
		return "Equal"
	case Before:
		return "Before"
	case After:
		return "After"
	case Concurrent:
		return "Concurrent"
	default:
		return "Unknown"
	}
}

// Compare classifies the causal relationship between c and other with a
// single pass over their key union, short-circuiting to Concurrent as
// soon as both a "less" and a "greater" witness have been seen. Comparing
// a clock to itself yields Equal.
func (c VectorClock) Compare(other VectorClock) Relation {
	var less, greater bool

	seen := make(map[string]struct{}, len(c)+len(other))
	for k := range c {
		seen[k] = struct{}{}
	}
	for k := range other {
		seen[k] = struct{}{}
	}

	for k := range seen {
		a, b := c[k], other[k]
		switch {
		case a < b:
			less = true
		case a > b:
			greater = true
		}
		if less && greater {
			return Concurrent
		}
	}

	switch {
	case !less && !greater:
		return Equal
	case less:
		return Before
	default:
		return After
	}
}

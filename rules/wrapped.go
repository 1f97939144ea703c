package rules

import (
	"time"

	"github.com/distsys-tools/vclockmerge/clock"
)

// Stamped pairs a value with the instant it was written, for use with
// Timestamped.
type Stamped[T any] struct {
	Value T
	At    time.Time
}

// Timestamped resolves a concurrent update to whichever side's instant is
// greater-or-equal; ties favor local (remote.At is not strictly after
// local.At).
type Timestamped[T any] struct{}

// Resolve implements merge.Rule[Stamped[T]].
func (Timestamped[T]) Resolve(local, remote Stamped[T], _, _ clock.VectorClock) Stamped[T] {
	if remote.At.After(local.At) {
		return remote
	}
	return local
}

// Prioritized pairs a value with a priority, for use with Priority.
type Prioritized[T any] struct {
	Value    T
	Priority int
}

// Priority resolves a concurrent update to whichever side's priority is
// greater-or-equal; ties favor local.
type Priority[T any] struct{}

// Resolve implements merge.Rule[Prioritized[T]].
func (Priority[T]) Resolve(local, remote Prioritized[T], _, _ clock.VectorClock) Prioritized[T] {
	if remote.Priority > local.Priority {
		return remote
	}
	return local
}

// Package mergeable defines the capability every user object type must
// satisfy to participate in reconciliation, and the touch/update
// discipline by which its clock advances.
package mergeable

import (
	"github.com/distsys-tools/vclockmerge/clock"
	"github.com/distsys-tools/vclockmerge/merge"
)

// Mergeable is the capability a user object type T must implement: a way
// to reach its own Clock field. The engine does not require this
// interface (it finds the clock field by reflection), but Touch does.
type Mergeable interface {
	Clock() *clock.VectorClock
}

// Touch runs mutate and, only if it succeeds, increments the clock's
// counter for node. If mutate fails, the clock is left untouched — this
// ordering (mutate, then increment) is the only mechanism by which a
// clock advances, and it is observable by callers and tests.
//
// mutate's error is returned unchanged: Touch never wraps or swallows a
// user-supplied failure.
func Touch(m Mergeable, node string, mutate func() error) error {
	if mutate == nil {
		return &merge.NullUpdateActionError{}
	}
	if node == "" {
		return &merge.NullNodeIDError{}
	}
	if err := mutate(); err != nil {
		return err
	}
	m.Clock().Increment(node)
	return nil
}

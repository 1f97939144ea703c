// Package merge defines the MergeRule capability and the error taxonomy
// raised by rule binding and annotation resolution. The rules themselves
// live in package rules; the engine that dispatches to them lives in
// package engine.
package merge

import "github.com/distsys-tools/vclockmerge/clock"

// Rule resolves a concurrent update between two values of type V. It is
// invoked with both sides' vector clocks so that clock-shape-dependent
// rules (NodeAlwaysWins, TrustWeighted, ...) can make their decision.
type Rule[V any] interface {
	Resolve(local, remote V, localClock, remoteClock clock.VectorClock) V
}

// RuleFunc adapts a plain function to the Rule interface.
type RuleFunc[V any] func(local, remote V, localClock, remoteClock clock.VectorClock) V

// Resolve calls f.
func (f RuleFunc[V]) Resolve(local, remote V, localClock, remoteClock clock.VectorClock) V {
	return f(local, remote, localClock, remoteClock)
}

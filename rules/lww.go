package rules

import "github.com/distsys-tools/vclockmerge/clock"

// LastWriteWins reproduces the engine's own default dispatch policy: on
// Before it keeps remote, on After it keeps local, on Equal and on
// Concurrent it keeps remote. Binding a field to it explicitly is
// equivalent to leaving the field unannotated — the engine only ever
// consults a field's rule on Concurrent (§4.2), where LastWriteWins and the
// default binding both answer remote, and LastWriteWins's answers for the
// other three relations match the engine's hardcoded ones, so the two
// paths can never disagree.
type LastWriteWins[V any] struct{}

// Resolve implements merge.Rule[V].
func (LastWriteWins[V]) Resolve(local, remote V, localClock, remoteClock clock.VectorClock) V {
	switch localClock.Compare(remoteClock) {
	case clock.After:
		return local
	default: // Before, Equal, Concurrent
		return remote
	}
}

// PreferLocal always keeps the local value, regardless of relation.
type PreferLocal[V any] struct{}

// Resolve implements merge.Rule[V].
func (PreferLocal[V]) Resolve(local, remote V, _, _ clock.VectorClock) V {
	return local
}

// PreferRemote always keeps the remote value, regardless of relation.
type PreferRemote[V any] struct{}

// Resolve implements merge.Rule[V].
func (PreferRemote[V]) Resolve(local, remote V, _, _ clock.VectorClock) V {
	return remote
}

package rules

import "github.com/distsys-tools/vclockmerge/clock"

// Set is the value type SetUnion operates over: a grow-only set of E.
// There is no tombstone/remove-tag tracking (spec.md's Non-goals exclude
// observed-remove semantics) — union is the only operation.
type Set[E comparable] map[E]struct{}

// NewSet builds a Set from the given elements.
func NewSet[E comparable](elems ...E) Set[E] {
	s := make(Set[E], len(elems))
	for _, e := range elems {
		s[e] = struct{}{}
	}
	return s
}

// SetUnion resolves a concurrent update to local ∪ remote. Null-safe (a
// nil Set is treated as empty); the result never aliases either input.
type SetUnion[E comparable] struct{}

// Resolve implements merge.Rule[Set[E]].
func (SetUnion[E]) Resolve(local, remote Set[E], _, _ clock.VectorClock) Set[E] {
	out := make(Set[E], len(local)+len(remote))
	for e := range local {
		out[e] = struct{}{}
	}
	for e := range remote {
		out[e] = struct{}{}
	}
	return out
}

// AppendList resolves a concurrent update by concatenating local and
// remote, local first. Null-safe; the result never aliases either input.
type AppendList[E any] struct{}

// Resolve implements merge.Rule[[]E].
func (AppendList[E]) Resolve(local, remote []E, _, _ clock.VectorClock) []E {
	out := make([]E, 0, len(local)+len(remote))
	out = append(out, local...)
	out = append(out, remote...)
	return out
}

// UniqueAppend resolves a concurrent update to local, followed by the
// elements of remote that are not already present in local, preserving
// remote's order. Null-safe; the result never aliases either input.
type UniqueAppend[E comparable] struct{}

// Resolve implements merge.Rule[[]E].
func (UniqueAppend[E]) Resolve(local, remote []E, _, _ clock.VectorClock) []E {
	present := make(map[E]struct{}, len(local))
	out := make([]E, 0, len(local)+len(remote))
	for _, e := range local {
		present[e] = struct{}{}
		out = append(out, e)
	}
	for _, e := range remote {
		if _, ok := present[e]; ok {
			continue
		}
		present[e] = struct{}{}
		out = append(out, e)
	}
	return out
}

// innerRule is the capability DictionaryMerge needs from its inner rule;
// it has the same method set as merge.Rule[V], so any merge.Rule[V]
// satisfies it.
type innerRule[V any] interface {
	Resolve(local, remote V, localClock, remoteClock clock.VectorClock) V
}

// DictionaryMerge resolves a concurrent update key-by-key: it starts from
// local, and for each remote key inserts it if absent, or otherwise
// invokes Inner.Resolve on the two values using the same whole-object
// clocks — this data model has one clock per object, never one per key.
// Null-safe; the result never aliases either input map.
type DictionaryMerge[K comparable, V any] struct {
	Inner innerRule[V]
}

// Resolve implements merge.Rule[map[K]V].
func (d DictionaryMerge[K, V]) Resolve(local, remote map[K]V, lc, rc clock.VectorClock) map[K]V {
	out := make(map[K]V, len(local)+len(remote))
	for k, v := range local {
		out[k] = v
	}
	for k, rv := range remote {
		if lv, ok := out[k]; ok {
			out[k] = d.Inner.Resolve(lv, rv, lc, rc)
		} else {
			out[k] = rv
		}
	}
	return out
}

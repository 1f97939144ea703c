package engine

import (
	"reflect"

	"github.com/distsys-tools/vclockmerge/clock"
	"github.com/distsys-tools/vclockmerge/merge"
)

// ErasedRule hides a merge.Rule[V]'s type parameter behind reflect.Value
// so the engine can hold heterogeneously-typed rules in one slice. The
// only way to obtain one is Erase, or a rule constructor in package
// rules — there is no way for outside code to implement this interface,
// which keeps the erasure boundary in one place.
type ErasedRule interface {
	resolve(local, remote reflect.Value, localClock, remoteClock clock.VectorClock) reflect.Value
	valueType() reflect.Type
}

type ruleAdapter[V any] struct {
	rule merge.Rule[V]
}

func (a ruleAdapter[V]) resolve(local, remote reflect.Value, lc, rc clock.VectorClock) reflect.Value {
	out := a.rule.Resolve(local.Interface().(V), remote.Interface().(V), lc, rc)
	v := reflect.ValueOf(out)
	if !v.IsValid() {
		// out is a nil interface (V = any resolving to nil): reflect.ValueOf
		// loses all type information crossing that bare-interface boundary,
		// so fall back to a validly-typed zero Value instead of letting the
		// caller's FieldByIndex(...).Set panic on an invalid Value.
		return reflect.Zero(a.valueType())
	}
	return v
}

func (ruleAdapter[V]) valueType() reflect.Type {
	return reflect.TypeOf((*V)(nil)).Elem()
}

// Erase wraps a typed Rule[V] so it can be bound to a field via SetRule or
// a Resolver. The hot path (Merge/MergeInto) only ever calls the erased
// form, never re-reflecting on the rule itself.
func Erase[V any](rule merge.Rule[V]) ErasedRule {
	return ruleAdapter[V]{rule: rule}
}

// pickRemote is the engine's default binding for an unannotated
// mergeable field: it is only ever consulted on Concurrent (see
// engine.go), where it reproduces LastWriteWins's Concurrent answer.
type pickRemote struct {
	typ reflect.Type
}

func (pickRemote) resolve(_, remote reflect.Value, _, _ clock.VectorClock) reflect.Value {
	return remote
}

func (p pickRemote) valueType() reflect.Type {
	return p.typ
}

// Package engine implements the per-field merge engine: it introspects a
// mergeable object type once, binds each field to a rule, and dispatches
// merges according to the object's causal relation.
package engine

import (
	"fmt"
	"reflect"

	"github.com/distsys-tools/vclockmerge/clock"
	"github.com/distsys-tools/vclockmerge/merge"
)

var clockType = reflect.TypeOf(clock.VectorClock(nil))

// fieldAccessor is built once per mergeable field at engine construction.
// Its identity (name, index) never changes after construction; only its
// bound rule may be replaced, by SetRule or a Resolver.
type fieldAccessor struct {
	name  string
	index []int
	typ   reflect.Type
	rule  ErasedRule
}

type ignoredField struct {
	name  string
	index []int
}

// Registry maps a rule-type identifier, as named in a `merge:"rule=ID"`
// struct tag, to a constructor for the erased rule it denotes. This is
// the "user-populated registry mapping rule identifiers to factory
// functions" spec.md §9 describes as one acceptable strategy for dynamic
// rule instantiation from an annotation.
type Registry map[string]func() ErasedRule

// Resolver is an optional pluggable module whose RegisterRules callback
// runs once at engine construction, after default/tag binding, letting it
// override any field's rule programmatically. Resolver outranks both the
// default rule and a tag annotation.
type Resolver[T any] interface {
	RegisterRules(e *MergeEngine[T]) error
}

type config[T any] struct {
	registry Registry
	resolver Resolver[T]
}

// Option configures New.
type Option[T any] func(*config[T])

// WithRegistry supplies the registry New uses to resolve `merge:"rule=ID"`
// tag identifiers into bound rules. Untagged fields keep the default rule;
// a tag naming an identifier the registry does not contain makes New fail.
func WithRegistry[T any](r Registry) Option[T] {
	return func(c *config[T]) { c.registry = r }
}

// WithResolver supplies a Resolver, invoked once immediately after
// tag-based binding, so it can override any field's rule programmatically.
func WithResolver[T any](r Resolver[T]) Option[T] {
	return func(c *config[T]) { c.resolver = r }
}

// MergeEngine is a per-object-type engine: it discovers T's fields once,
// binds each to its default or declared rule, and reuses that binding for
// every subsequent Merge or MergeInto call. It is stateless beyond its
// field bindings — concurrent merges through one engine are safe;
// concurrent SetRule calls are not, and must be serialized by the caller
// against any in-flight merge.
type MergeEngine[T any] struct {
	clockIndex []int
	accessors  []*fieldAccessor
	byName     map[string]*fieldAccessor
	ignored    []ignoredField
}

// New introspects T — which must be a struct type carrying exactly one
// field of type clock.VectorClock — and builds an engine. Each other
// exported field is either ignored (if tagged `merge:"ignore"`) or bound
// to a rule: the default rule, unless the field carries a
// `merge:"rule=ID"` tag that the supplied Registry resolves, unless a
// supplied Resolver overrides the binding programmatically.
func New[T any](opts ...Option[T]) (*MergeEngine[T], error) {
	var cfg config[T]
	for _, opt := range opts {
		opt(&cfg)
	}

	typ := reflect.TypeOf((*T)(nil)).Elem()
	if typ.Kind() != reflect.Struct {
		return nil, fmt.Errorf("engine: %s is not a struct type", typ)
	}

	e := &MergeEngine[T]{byName: make(map[string]*fieldAccessor)}

	for i := 0; i < typ.NumField(); i++ {
		f := typ.Field(i)
		if !f.IsExported() {
			continue
		}
		if f.Type == clockType {
			e.clockIndex = f.Index
			continue
		}

		info := parseTag(f.Tag.Get(tagKey))
		if info.ignore {
			e.ignored = append(e.ignored, ignoredField{name: f.Name, index: f.Index})
			continue
		}

		acc := &fieldAccessor{name: f.Name, index: f.Index, typ: f.Type, rule: pickRemote{typ: f.Type}}

		if info.ruleTag && info.ruleID == "" {
			return nil, &merge.NullAnnotationError{Field: f.Name}
		}

		if info.ruleID != "" {
			if cfg.registry == nil {
				return nil, fmt.Errorf("engine: field %q annotated %q but no registry was supplied", f.Name, info.ruleID)
			}
			factory, ok := cfg.registry[info.ruleID]
			if !ok {
				return nil, fmt.Errorf("engine: field %q: unknown rule identifier %q", f.Name, info.ruleID)
			}
			rule := factory()
			if rule.valueType() != f.Type {
				return nil, &merge.TypeMismatchError{Field: f.Name, Want: f.Type, Got: rule.valueType()}
			}
			acc.rule = rule
		}

		e.accessors = append(e.accessors, acc)
		e.byName[f.Name] = acc
	}

	if e.clockIndex == nil {
		return nil, fmt.Errorf("engine: %s has no clock.VectorClock field", typ)
	}

	if cfg.resolver != nil {
		if err := cfg.resolver.RegisterRules(e); err != nil {
			return nil, err
		}
	}

	return e, nil
}

// SetRule locates the accessor for fieldName and replaces its bound rule.
// It fails with *merge.UnknownFieldError if fieldName does not name a
// mergeable field (absent, ignored, or the clock field), and with
// *merge.TypeMismatchError if rule's value type disagrees with the
// field's declared type.
//
// SetRule is a package-level function, not a method, because Go methods
// cannot introduce a type parameter beyond their receiver's.
func SetRule[T any, V any](e *MergeEngine[T], fieldName string, rule merge.Rule[V]) error {
	acc, ok := e.byName[fieldName]
	if !ok {
		return &merge.UnknownFieldError{Field: fieldName}
	}
	erased := Erase(rule)
	if erased.valueType() != acc.typ {
		return &merge.TypeMismatchError{Field: fieldName, Want: acc.typ, Got: erased.valueType()}
	}
	acc.rule = erased
	return nil
}

func (e *MergeEngine[T]) clockOf(v reflect.Value) clock.VectorClock {
	return v.FieldByIndex(e.clockIndex).Interface().(clock.VectorClock)
}

func (e *MergeEngine[T]) setClock(v reflect.Value, c clock.VectorClock) {
	v.FieldByIndex(e.clockIndex).Set(reflect.ValueOf(c))
}

// Merge reconciles local and remote into a freshly allocated T, aliasing
// neither input. If local is nil, remote is returned unchanged, and vice
// versa (§4.2's null-side shortcut) — these are semantic identities, not
// errors. Otherwise the object-level relation is computed once from the
// two clocks; for each mergeable field, Before adopts remote, After
// adopts local, Equal adopts remote, and Concurrent invokes the field's
// bound rule. Ignored fields are copied from local. The result's clock is
// the pointwise-max merge of the two input clocks.
//
// A panic or error from a user-supplied Rule is never recovered: it
// propagates to Merge's caller exactly as raised.
func (e *MergeEngine[T]) Merge(local, remote *T) *T {
	if local == nil {
		return remote
	}
	if remote == nil {
		return local
	}

	lv := reflect.ValueOf(local).Elem()
	rv := reflect.ValueOf(remote).Elem()
	lc := e.clockOf(lv)
	rc := e.clockOf(rv)
	relation := lc.Compare(rc)

	result := new(T)
	resv := reflect.ValueOf(result).Elem()

	for _, acc := range e.accessors {
		lf := lv.FieldByIndex(acc.index)
		rf := rv.FieldByIndex(acc.index)

		var chosen reflect.Value
		switch relation {
		case clock.Before:
			chosen = rf
		case clock.After:
			chosen = lf
		case clock.Equal:
			chosen = rf
		default: // Concurrent
			chosen = acc.rule.resolve(lf, rf, lc, rc)
		}
		resv.FieldByIndex(acc.index).Set(chosen)
	}

	for _, ig := range e.ignored {
		resv.FieldByIndex(ig.index).Set(lv.FieldByIndex(ig.index))
	}

	e.setClock(resv, lc.Merge(rc))
	return result
}

// MergeInto reconciles local and remote, writing resolved values back
// into local, and returns local. Ignored fields are left untouched
// (retaining their prior local value, never remote's). local's clock is
// replaced with the merged clock.
//
// If local is nil, MergeInto returns remote BY REFERENCE — this violates
// the nominal "in place" contract (spec.md §9 flags this as
// source-inherited, possibly-surprising behavior); callers that cannot
// tolerate aliasing a nil local onto the caller's remote value should
// check for nil themselves before calling MergeInto. If remote is nil,
// local is returned unchanged.
func (e *MergeEngine[T]) MergeInto(local, remote *T) *T {
	if local == nil {
		return remote
	}
	if remote == nil {
		return local
	}

	lv := reflect.ValueOf(local).Elem()
	rv := reflect.ValueOf(remote).Elem()
	lc := e.clockOf(lv)
	rc := e.clockOf(rv)
	relation := lc.Compare(rc)

	for _, acc := range e.accessors {
		lf := lv.FieldByIndex(acc.index)
		rf := rv.FieldByIndex(acc.index)

		switch relation {
		case clock.Before:
			lf.Set(rf)
		case clock.After:
			// keep local
		case clock.Equal:
			lf.Set(rf)
		default: // Concurrent
			lf.Set(acc.rule.resolve(lf, rf, lc, rc))
		}
	}

	e.setClock(lv, lc.Merge(rc))
	return local
}

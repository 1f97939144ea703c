package merge

import (
	"fmt"
	"reflect"
)

// UnknownFieldError is returned when SetRule targets a field that is not
// mergeable: absent, ignored, or the clock field itself.
type UnknownFieldError struct {
	Field string
}

func (e *UnknownFieldError) Error() string {
	return fmt.Sprintf("merge: unknown mergeable field %q", e.Field)
}

// TypeMismatchError is returned when SetRule or annotation resolution
// supplies a rule whose value type disagrees with the field's declared
// type.
type TypeMismatchError struct {
	Field string
	Want  reflect.Type
	Got   reflect.Type
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("merge: field %q wants rule over %s, got rule over %s", e.Field, e.Want, e.Got)
}

// NullAnnotationError is returned when a RuleAnnotation is constructed
// with an empty rule-type identifier.
type NullAnnotationError struct {
	Field string
}

func (e *NullAnnotationError) Error() string {
	return fmt.Sprintf("merge: field %q has an empty rule annotation", e.Field)
}

// NullUpdateActionError is returned by Touch when the mutation closure is nil.
type NullUpdateActionError struct{}

func (e *NullUpdateActionError) Error() string {
	return "merge: update action must not be nil"
}

// NullNodeIDError is returned by Touch when the node identifier is empty.
type NullNodeIDError struct{}

func (e *NullNodeIDError) Error() string {
	return "merge: node id must not be empty"
}

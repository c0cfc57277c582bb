// Package errpath defines the typed error taxonomy raised by the
// otjson transform core: malformed paths, malformed wire objects,
// traversal failures and operator/container mismatches.
package errpath

import "fmt"

// PathError reports a malformed path: empty, non-array JSON, a
// non-integer/non-string element, or a negative index.
type PathError struct {
	Reason string
}

func (e *PathError) Error() string { return "otjson: path error: " + e.Reason }

// NewPathError builds a PathError with a formatted reason.
func NewPathError(format string, args ...any) *PathError {
	return &PathError{Reason: fmt.Sprintf(format, args...)}
}

// InvalidOperation reports a wire-level or operand-level malformation:
// wrong operand type, over/under-full wire object, missing "p", an
// AddNumber target that isn't numeric, or a text sub-type delete that
// disagrees with the addressed character range.
type InvalidOperation struct {
	Reason string
}

func (e *InvalidOperation) Error() string { return "otjson: invalid operation: " + e.Reason }

// NewInvalidOperation builds an InvalidOperation with a formatted reason.
func NewInvalidOperation(format string, args ...any) *InvalidOperation {
	return &InvalidOperation{Reason: fmt.Sprintf(format, args...)}
}

// RouteError reports that a path descends through a non-container, or
// that a list index is out of bounds during descent (as opposed to the
// leaf of a list operator: an insert past the end appends, and a
// delete, replace or move past the end does nothing).
type RouteError struct {
	Reason string
}

func (e *RouteError) Error() string { return "otjson: route error: " + e.Reason }

// NewRouteError builds a RouteError with a formatted reason.
func NewRouteError(format string, args ...any) *RouteError {
	return &RouteError{Reason: fmt.Sprintf(format, args...)}
}

// ApplyOperationError reports that an operator does not match the
// container kind encountered at its path (e.g. a list operator
// against an object parent).
type ApplyOperationError struct {
	Reason string
}

func (e *ApplyOperationError) Error() string { return "otjson: apply error: " + e.Reason }

// NewApplyOperationError builds an ApplyOperationError with a formatted reason.
func NewApplyOperationError(format string, args ...any) *ApplyOperationError {
	return &ApplyOperationError{Reason: fmt.Sprintf(format, args...)}
}

// ConflictSubType reports an attempt to register a reserved sub-type
// name. Unregistering a reserved name is a silent no-op, not an error.
type ConflictSubType struct {
	Name string
}

func (e *ConflictSubType) Error() string {
	return fmt.Sprintf("otjson: sub-type %q is reserved", e.Name)
}

// NewConflictSubType builds a ConflictSubType for the given name.
func NewConflictSubType(name string) *ConflictSubType {
	return &ConflictSubType{Name: name}
}

package otjson

import (
	"sync"

	"github.com/brunoga/otjson/errpath"
)

// Side is the symmetric tie-break label the transform engine uses to
// make concurrent edits to the same location converge: the Left side
// of a transform preserves an operation's intent, the Right side
// yields the empty sequence when the two conflict.
type Side int

const (
	// Left is the tie-break winner.
	Left Side = iota
	// Right is the tie-break loser.
	Right
)

// SubType is the vtable a plug-in implements to delegate operator
// semantics to an opaque embedded type living at a JSON leaf (e.g.
// collaborative text).
type SubType interface {
	// Apply applies operand to value (which may be nil for a
	// leaf that does not yet exist) and returns the new leaf value.
	Apply(value any, operand any) (any, error)

	// Invert returns the operand that undoes operand. value is the
	// pre-image the operand was applied to when the caller has it;
	// Operation.Invert has no document and always passes nil.
	Invert(value any, operand any) (any, error)

	// Transform rebases newOperand against baseOperand and returns
	// zero or more resulting operands.
	Transform(newOperand, baseOperand any, side Side) ([]any, error)

	// Compose fuses an operand applied after base into a single
	// equivalent operand, or returns ok=false if the two cannot be
	// fused.
	Compose(base, other any) (operand any, ok bool)

	// ValidateOperand reports whether v is a well-formed operand for
	// this sub-type.
	ValidateOperand(v any) error
}

// Reserved sub-type names. Pre-installed at package init and
// immutable: Register rejects these names, Unregister is a no-op on
// them.
const (
	NumberSubType = "number"
	TextSubType   = "text"
)

// Registry is a process-wide, concurrency-safe mapping from sub-type
// name to its vtable. The zero value is an empty registry with no
// reserved names, the same as NewRegistry returns.
type Registry struct {
	vtables  sync.Map // map[string]SubType
	reserved sync.Map // map[string]struct{}
}

// NewRegistry returns an empty registry with no reserved names. Most
// callers should use the package-level Default registry instead, which
// comes with the number and text sub-types pre-installed and reserved.
func NewRegistry() *Registry {
	return &Registry{}
}

func (r *Registry) markReserved(name string) {
	r.reserved.Store(name, struct{}{})
}

func (r *Registry) isReserved(name string) bool {
	_, ok := r.reserved.Load(name)
	return ok
}

// Register installs vtable under name and returns the previous vtable
// registered under that name, if any. Registering a reserved name
// returns a ConflictSubType error and leaves the registry unchanged.
func (r *Registry) Register(name string, vtable SubType) (SubType, error) {
	if r.isReserved(name) {
		return nil, errpath.NewConflictSubType(name)
	}
	prev, _ := r.vtables.Swap(name, vtable)
	if prev == nil {
		return nil, nil
	}
	return prev.(SubType), nil
}

// Unregister removes name from the registry and returns the vtable
// that was registered under it, if any. Unregistering a reserved name
// is a no-op and returns (nil, nil).
func (r *Registry) Unregister(name string) (SubType, error) {
	if r.isReserved(name) {
		return nil, nil
	}
	prev, ok := r.vtables.LoadAndDelete(name)
	if !ok {
		return nil, nil
	}
	return prev.(SubType), nil
}

// Lookup returns the vtable registered under name, if any.
func (r *Registry) Lookup(name string) (SubType, bool) {
	v, ok := r.vtables.Load(name)
	if !ok {
		return nil, false
	}
	return v.(SubType), true
}

// registerReserved installs vtable under name and marks it reserved.
// Only used by package init.
func (r *Registry) registerReserved(name string, vtable SubType) {
	r.markReserved(name)
	r.vtables.Store(name, vtable)
}

// Default is the process-wide registry used by Operation.Apply,
// Invert, Compose and the transform engine when no explicit registry
// is supplied. It comes pre-installed with the number and text
// sub-types, which cannot be overwritten or unregistered.
var Default = newDefaultRegistry()

func newDefaultRegistry() *Registry {
	r := NewRegistry()
	r.registerReserved(NumberSubType, numberSubType{})
	r.registerReserved(TextSubType, textSubType{})
	return r
}

package otjson

import "github.com/brunoga/otjson/errpath"

// numberSubType implements the reserved "number" sub-type: an
// alternate, open-registry route to the same add-number semantics as
// the closed AddNumber operator variant. Its operand is a bare JSON
// number.
type numberSubType struct{}

func (numberSubType) ValidateOperand(v any) error {
	if _, ok := asNumber(v); !ok {
		return errpath.NewInvalidOperation("number sub-type operand must be a JSON number, got %T", v)
	}
	return nil
}

func (numberSubType) Apply(value any, operand any) (any, error) {
	n, ok := asNumber(value)
	if !ok {
		return nil, errpath.NewApplyOperationError("number sub-type target is not numeric")
	}
	d, ok := asNumber(operand)
	if !ok {
		return nil, errpath.NewInvalidOperation("number sub-type operand must be a JSON number")
	}
	return n + d, nil
}

func (numberSubType) Invert(_ any, operand any) (any, error) {
	n, ok := asNumber(operand)
	if !ok {
		return nil, errpath.NewInvalidOperation("number sub-type operand must be a JSON number")
	}
	return -n, nil
}

// Transform is commutative: two concurrent numeric deltas both survive
// unchanged regardless of side.
func (numberSubType) Transform(newOperand, _ any, _ Side) ([]any, error) {
	return []any{newOperand}, nil
}

func (numberSubType) Compose(base, other any) (any, bool) {
	b, ok1 := asNumber(base)
	o, ok2 := asNumber(other)
	if !ok1 || !ok2 {
		return nil, false
	}
	return b + o, true
}

func asNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}

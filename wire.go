package otjson

import (
	"encoding/json"

	"github.com/brunoga/otjson/errpath"
)

// wireComponent mirrors the JSON object shape of a component on the
// wire: a path plus whichever operator keys are present. json.Marshal
// only ever fills in the fields relevant to the component's Kind;
// json.Unmarshal discriminates the operator from which keys showed up
// and validates there are no stray ones.
type wireComponent struct {
	Path []json.RawMessage `json:"p"`

	Na *float64         `json:"na,omitempty"`
	Li *json.RawMessage `json:"li,omitempty"`
	Ld *json.RawMessage `json:"ld,omitempty"`
	Lm *int             `json:"lm,omitempty"`
	Oi *json.RawMessage `json:"oi,omitempty"`
	Od *json.RawMessage `json:"od,omitempty"`
	T  *string          `json:"t,omitempty"`
	O  *json.RawMessage `json:"o,omitempty"`
}

// MarshalJSON encodes a single component using the wire format
// described in the external-interfaces section: a path array plus the
// operator's discriminating keys.
func (c Component) MarshalJSON() ([]byte, error) {
	w := wireComponent{Path: make([]json.RawMessage, len(c.Path))}
	for i, e := range c.Path {
		raw, err := marshalPathElement(e)
		if err != nil {
			return nil, err
		}
		w.Path[i] = raw
	}

	switch c.Op.Kind {
	case OpNoop:
		// A literal Noop has no wire representation of its own; it
		// only ever appears transiently inside the engine.
		return nil, errpath.NewInvalidOperation("Noop has no wire representation")
	case OpAddNumber:
		n := c.Op.Number
		w.Na = &n
	case OpListInsert:
		w.Li = mustRaw(c.Op.Value)
	case OpListDelete:
		w.Ld = mustRaw(c.Op.Value)
	case OpListReplace:
		w.Li = mustRaw(c.Op.New)
		w.Ld = mustRaw(c.Op.Old)
	case OpListMove:
		to := c.Op.To
		w.Lm = &to
	case OpObjectInsert:
		w.Oi = mustRaw(c.Op.Value)
	case OpObjectDelete:
		w.Od = mustRaw(c.Op.Value)
	case OpObjectReplace:
		w.Oi = mustRaw(c.Op.New)
		w.Od = mustRaw(c.Op.Old)
	case OpSubType:
		name := c.Op.SubTypeName
		w.T = &name
		w.O = mustRaw(c.Op.Operand)
	}

	return json.Marshal(w)
}

func mustRaw(v any) *json.RawMessage {
	b, err := json.Marshal(v)
	if err != nil {
		b = []byte("null")
	}
	r := json.RawMessage(b)
	return &r
}

func marshalPathElement(e PathElement) (json.RawMessage, error) {
	if e.IsKey() {
		return json.Marshal(e.Str())
	}
	return json.Marshal(e.Int())
}

var wireComponentKeys = map[string]bool{
	"p": true, "na": true, "li": true, "ld": true, "lm": true,
	"oi": true, "od": true, "t": true, "o": true,
}

// UnmarshalJSON decodes a single component, rejecting wire objects
// whose key set doesn't exactly match one of the known operator
// shapes: any key outside the known set, or an object whose key count
// doesn't match what the discriminated operator expects, is rejected.
func (c *Component) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return errpath.NewInvalidOperation("malformed component: %v", err)
	}
	for k := range raw {
		if !wireComponentKeys[k] {
			return errpath.NewInvalidOperation("unrecognized component key %q", k)
		}
	}

	if p, ok := raw["p"]; ok {
		if t := trimLeadingSpace(p); len(t) == 0 || t[0] != '[' {
			return errpath.NewPathError("path must be a JSON array, got %s", string(p))
		}
	}

	var w wireComponent
	if err := json.Unmarshal(data, &w); err != nil {
		return errpath.NewInvalidOperation("malformed component: %v", err)
	}
	if w.Path == nil {
		return errpath.NewInvalidOperation("component missing \"p\"")
	}

	path := make(Path, len(w.Path))
	for i, raw := range w.Path {
		elem, err := unmarshalPathElement(raw)
		if err != nil {
			return err
		}
		path[i] = elem
	}
	if len(path) == 0 {
		return errEmptyPath()
	}

	op, err := unmarshalOperator(w)
	if err != nil {
		return err
	}

	c.Path = path
	c.Op = op
	return nil
}

func unmarshalPathElement(raw json.RawMessage) (PathElement, error) {
	var asInt int
	if err := json.Unmarshal(raw, &asInt); err == nil {
		if asInt < 0 {
			return PathElement{}, errpath.NewPathError("negative path index %d", asInt)
		}
		return Index(asInt), nil
	}
	var asStr string
	if err := json.Unmarshal(raw, &asStr); err == nil {
		return Key(asStr), nil
	}
	return PathElement{}, errpath.NewPathError("path element is neither an integer nor a string: %s", string(raw))
}

// unmarshalOperator discriminates the operator by which wire keys are
// present, and rejects any object whose key count doesn't exactly
// match the discriminated shape.
func unmarshalOperator(w wireComponent) (Operator, error) {
	present := 0
	if w.Na != nil {
		present++
	}
	if w.Li != nil {
		present++
	}
	if w.Ld != nil {
		present++
	}
	if w.Lm != nil {
		present++
	}
	if w.Oi != nil {
		present++
	}
	if w.Od != nil {
		present++
	}
	if w.T != nil {
		present++
	}
	if w.O != nil {
		present++
	}

	switch {
	case w.Na != nil && present == 1:
		return AddNumber(*w.Na), nil
	case w.Li != nil && w.Ld == nil && present == 1:
		return ListInsert(rawToAny(w.Li)), nil
	case w.Ld != nil && w.Li == nil && present == 1:
		return ListDelete(rawToAny(w.Ld)), nil
	case w.Li != nil && w.Ld != nil && present == 2:
		return ListReplaceOp(rawToAny(w.Li), rawToAny(w.Ld)), nil
	case w.Lm != nil && present == 1:
		if *w.Lm < 0 {
			return Operator{}, errpath.NewInvalidOperation("ListMove target %d must be non-negative", *w.Lm)
		}
		return ListMove(*w.Lm), nil
	case w.Oi != nil && w.Od == nil && present == 1:
		return ObjectInsert(rawToAny(w.Oi)), nil
	case w.Od != nil && w.Oi == nil && present == 1:
		return ObjectDelete(rawToAny(w.Od)), nil
	case w.Oi != nil && w.Od != nil && present == 2:
		return ObjectReplaceOp(rawToAny(w.Oi), rawToAny(w.Od)), nil
	case w.T != nil && w.O != nil && present == 2:
		return SubTypeOp(*w.T, rawToAny(w.O)), nil
	default:
		return Operator{}, errpath.NewInvalidOperation("component operator keys don't match a known operator shape")
	}
}

func rawToAny(raw *json.RawMessage) any {
	if raw == nil {
		return nil
	}
	var v any
	_ = json.Unmarshal(*raw, &v)
	return v
}

// MarshalJSON encodes an operation as a JSON array of components. A
// single-component operation still marshals as an array; use
// Component.MarshalJSON directly for the bare-object form.
func (op Operation) MarshalJSON() ([]byte, error) {
	components := make([]Component, len(op))
	copy(components, op)
	if components == nil {
		components = []Component{}
	}
	return json.Marshal(components)
}

// UnmarshalOperation parses data as either a JSON array of components
// or a single bare component object, per the external-interfaces wire
// contract.
func UnmarshalOperation(data []byte) (Operation, error) {
	trimmed := trimLeadingSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		var c Component
		if err := json.Unmarshal(data, &c); err != nil {
			return nil, err
		}
		return Operation{c}, nil
	}

	var components []Component
	if err := json.Unmarshal(data, &components); err != nil {
		return nil, errpath.NewInvalidOperation("malformed operation: %v", err)
	}
	return Operation(components), nil
}

func trimLeadingSpace(b []byte) []byte {
	i := 0
	for i < len(b) {
		switch b[i] {
		case ' ', '\t', '\n', '\r':
			i++
			continue
		}
		break
	}
	return b[i:]
}

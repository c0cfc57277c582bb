// Package doc provides a convenience facade over otjson for callers
// that want to hold a document and apply wire-encoded operations to it
// without managing the raw any value and registry themselves.
package doc

import (
	"encoding/json"

	"github.com/brunoga/otjson"
)

// Document wraps a decoded JSON value together with the sub-type
// registry operations against it should resolve against.
type Document struct {
	value any
	reg   *otjson.Registry
}

// New wraps an already-decoded JSON value. reg may be nil, in which
// case otjson.Default is used.
func New(value any, reg *otjson.Registry) *Document {
	if reg == nil {
		reg = otjson.Default
	}
	return &Document{value: value, reg: reg}
}

// Parse decodes raw JSON into a Document.
func Parse(raw []byte, reg *otjson.Registry) (*Document, error) {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, err
	}
	return New(v, reg), nil
}

// Value returns the document's current, decoded JSON value.
func (d *Document) Value() any {
	return d.value
}

// MarshalJSON encodes the document's current value.
func (d *Document) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.value)
}

// Apply applies op to the document in place.
func (d *Document) Apply(op otjson.Operation) error {
	return op.Apply(&d.value, d.reg)
}

// ApplyWire decodes raw as an operation (array or bare object form)
// and applies it to the document in place.
func (d *Document) ApplyWire(raw []byte) error {
	op, err := otjson.UnmarshalOperation(raw)
	if err != nil {
		return err
	}
	return d.Apply(op)
}

// Package otjson implements a JSON0-style operational transformation
// engine: an algebra of edits to an arbitrary JSON document supporting
// apply, invert, compose and the pairwise transform that reconciles
// concurrent edits made against a common ancestor.
package otjson

import (
	"fmt"
	"strconv"
)

// elemKind discriminates the two shapes a PathElement can take.
type elemKind int

const (
	elemIndex elemKind = iota
	elemKey
)

// PathElement addresses one step into a JSON value: either a
// non-negative list index or an object key. The two kinds are
// incomparable with each other; only Index-vs-Index admits an
// ordering.
type PathElement struct {
	kind  elemKind
	index int
	key   string
}

// Index builds an Index path element. It panics if n is negative,
// mirroring the invariant that every Index path element is
// non-negative.
func Index(n int) PathElement {
	if n < 0 {
		panic(fmt.Sprintf("otjson: negative path index %d", n))
	}
	return PathElement{kind: elemIndex, index: n}
}

// Key builds a Key path element.
func Key(s string) PathElement {
	return PathElement{kind: elemKey, key: s}
}

// IsIndex reports whether e addresses a list position.
func (e PathElement) IsIndex() bool { return e.kind == elemIndex }

// IsKey reports whether e addresses an object key.
func (e PathElement) IsKey() bool { return e.kind == elemKey }

// Int returns the index value. Only meaningful when IsIndex is true.
func (e PathElement) Int() int { return e.index }

// Str returns the key value. Only meaningful when IsKey is true.
func (e PathElement) Str() string { return e.key }

// withIndex returns a copy of e with a different index. Panics if e is
// not an Index element.
func (e PathElement) withIndex(n int) PathElement {
	if e.kind != elemIndex {
		panic("otjson: withIndex on a Key path element")
	}
	return Index(n)
}

func (e PathElement) String() string {
	if e.kind == elemIndex {
		return strconv.Itoa(e.index)
	}
	return e.key
}

// Equal reports whether two path elements address the same position.
// An Index never equals a Key even if their string forms coincide.
func (e PathElement) Equal(o PathElement) bool {
	if e.kind != o.kind {
		return false
	}
	if e.kind == elemIndex {
		return e.index == o.index
	}
	return e.key == o.key
}

// CompareIndex compares two path elements that are both expected to be
// Index elements. ok is false when either element is a Key, in which
// case no ordering constraint applies and callers must not collapse
// that into equality.
func CompareIndex(a, b PathElement) (cmp int, ok bool) {
	if a.kind != elemIndex || b.kind != elemIndex {
		return 0, false
	}
	switch {
	case a.index < b.index:
		return -1, true
	case a.index > b.index:
		return 1, true
	default:
		return 0, true
	}
}

// Path is a non-empty ordered sequence of PathElements identifying a
// position in a JSON tree.
type Path []PathElement

// NewPath builds a Path from elements, rejecting an empty sequence.
func NewPath(elems ...PathElement) (Path, error) {
	if len(elems) == 0 {
		return nil, errEmptyPath()
	}
	p := make(Path, len(elems))
	copy(p, elems)
	return p, nil
}

// Last returns the final element of the path.
func (p Path) Last() PathElement { return p[len(p)-1] }

// Parent returns the path with its last element removed.
func (p Path) Parent() Path { return p[:len(p)-1] }

// Clone returns an independent copy of p.
func (p Path) Clone() Path {
	c := make(Path, len(p))
	copy(c, p)
	return c
}

// WithLast returns a copy of p whose last element is replaced by idx.
func (p Path) WithLast(idx int) Path {
	c := p.Clone()
	c[len(c)-1] = c[len(c)-1].withIndex(idx)
	return c
}

// IncAt returns a copy of p with the element at position i (an Index
// element) incremented by one.
func (p Path) IncAt(i int) Path {
	c := p.Clone()
	c[i] = c[i].withIndex(c[i].index + 1)
	return c
}

// DecAt returns a copy of p with the element at position i (an Index
// element) decremented by one.
func (p Path) DecAt(i int) Path {
	c := p.Clone()
	c[i] = c[i].withIndex(c[i].index - 1)
	return c
}

// IsPrefixOf reports whether p is a (non-strict) prefix of other.
func (p Path) IsPrefixOf(other Path) bool {
	if len(p) > len(other) {
		return false
	}
	for i := range p {
		if !p[i].Equal(other[i]) {
			return false
		}
	}
	return true
}

// Equal reports whether two paths address the same position.
func (p Path) Equal(o Path) bool {
	if len(p) != len(o) {
		return false
	}
	for i := range p {
		if !p[i].Equal(o[i]) {
			return false
		}
	}
	return true
}

// Split splits p into the prefix of length k and the remaining suffix.
func (p Path) Split(k int) (Path, Path) {
	return p[:k], p[k:]
}

// CommonPrefixLen returns the length of the longest common prefix of a
// and b.
func CommonPrefixLen(a, b Path) int {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		if !a[i].Equal(b[i]) {
			return i
		}
	}
	return n
}

func (p Path) String() string {
	s := ""
	for i, e := range p {
		if i > 0 {
			s += "/"
		}
		s += e.String()
	}
	return s
}

package otjson

import "github.com/brunoga/otjson/errpath"

// slotKind discriminates the three places a mutable reference into a
// JSON document can live.
type slotKind int

const (
	slotRoot slotKind = iota
	slotMapKey
	slotSliceIndex
)

// slot is a mutable reference to one position in a JSON document: the
// whole document, a key within a map, or an index within a slice.
// Resolving a slot for a path and then Set-ing it is how the apply
// engine performs structural mutations (list insert/delete/move) that
// change a container's identity, while map mutation happens directly
// in place because Go maps are reference types.
type slot struct {
	kind slotKind

	root *any

	m   map[string]any
	key string

	s   []any
	idx int
}

func (s *slot) Get() any {
	switch s.kind {
	case slotRoot:
		return *s.root
	case slotMapKey:
		return s.m[s.key]
	case slotSliceIndex:
		return s.s[s.idx]
	}
	return nil
}

func (s *slot) Set(v any) {
	switch s.kind {
	case slotRoot:
		*s.root = v
	case slotMapKey:
		s.m[s.key] = v
	case slotSliceIndex:
		s.s[s.idx] = v
	}
}

// resolveSlot walks root along path, returning the slot addressed by
// the full path. Every element but the last is a pure descent (no
// container resize is possible there); out-of-bounds or
// wrong-container-kind failures during descent are reported as
// RouteError.
func resolveSlot(root *any, path Path) (*slot, error) {
	s := &slot{kind: slotRoot, root: root}
	for _, elem := range path {
		cur := s.Get()
		switch container := cur.(type) {
		case map[string]any:
			if !elem.IsKey() {
				return nil, errpath.NewRouteError("object parent addressed by a non-key path element %v", elem)
			}
			s = &slot{kind: slotMapKey, m: container, key: elem.Str()}
		case []any:
			if !elem.IsIndex() {
				return nil, errpath.NewRouteError("list parent addressed by a non-index path element %v", elem)
			}
			idx := elem.Int()
			if idx < 0 || idx >= len(container) {
				return nil, errpath.NewRouteError("list index %d out of bounds (len %d)", idx, len(container))
			}
			s = &slot{kind: slotSliceIndex, s: container, idx: idx}
		default:
			return nil, errpath.NewRouteError("path descends through a non-container (%T)", cur)
		}
	}
	return s, nil
}

// Apply mutates document in place according to op, using the given
// sub-type registry for any SubType components. A nil registry falls
// back to Default.
func (op Operation) Apply(document *any, reg *Registry) error {
	if reg == nil {
		reg = Default
	}
	for _, c := range op {
		if err := applyComponent(document, c, reg); err != nil {
			return err
		}
	}
	return nil
}

func applyComponent(root *any, c Component, reg *Registry) error {
	switch c.Op.Kind {
	case OpNoop:
		return nil

	case OpAddNumber:
		s, err := resolveSlot(root, c.Path)
		if err != nil {
			return err
		}
		n, ok := asNumber(s.Get())
		if !ok {
			return errpath.NewInvalidOperation("AddNumber target at %s is not a number", c.Path)
		}
		s.Set(n + c.Op.Number)
		return nil

	case OpSubType:
		s, err := resolveSlot(root, c.Path)
		if err != nil {
			return err
		}
		vt, ok := reg.Lookup(c.Op.SubTypeName)
		if !ok {
			return errpath.NewApplyOperationError("unknown sub-type %q", c.Op.SubTypeName)
		}
		newVal, err := vt.Apply(s.Get(), c.Op.Operand)
		if err != nil {
			return err
		}
		s.Set(newVal)
		return nil
	}

	parentPath := c.Path.Parent()
	s, err := resolveSlot(root, parentPath)
	if err != nil {
		return err
	}
	last := c.Path.Last()
	parent := s.Get()

	switch container := parent.(type) {
	case []any:
		if !last.IsIndex() {
			return errpath.NewApplyOperationError("list operator %s addressed by a non-index path element", c.Op.Kind)
		}
		idx := last.Int()
		return applyListOp(s, container, idx, c.Op)
	case map[string]any:
		if !last.IsKey() {
			return errpath.NewApplyOperationError("object operator %s addressed by a non-key path element", c.Op.Kind)
		}
		return applyObjectOp(container, last.Str(), c.Op)
	default:
		return errpath.NewRouteError("path descends through a non-container (%T)", parent)
	}
}

func applyListOp(s *slot, list []any, idx int, op Operator) error {
	switch op.Kind {
	case OpListInsert:
		s.Set(listInsert(list, idx, op.Value))
		return nil
	case OpListDelete:
		if idx < 0 || idx >= len(list) {
			return nil
		}
		s.Set(listRemove(list, idx))
		return nil
	case OpListReplace:
		if idx < 0 || idx >= len(list) {
			return nil
		}
		list[idx] = op.New
		return nil
	case OpListMove:
		to := op.To
		if idx == to {
			return nil
		}
		if idx < 0 || idx >= len(list) {
			return nil
		}
		s.Set(listMove(list, idx, to))
		return nil
	default:
		return errpath.NewApplyOperationError("operator %s does not match a list container", op.Kind)
	}
}

func applyObjectOp(m map[string]any, key string, op Operator) error {
	switch op.Kind {
	case OpObjectInsert:
		m[key] = op.Value
		return nil
	case OpObjectDelete:
		delete(m, key)
		return nil
	case OpObjectReplace:
		if _, exists := m[key]; exists {
			m[key] = op.New
		}
		return nil
	default:
		return errpath.NewApplyOperationError("operator %s does not match an object container", op.Kind)
	}
}

// listInsert inserts v before index idx, appending if idx is beyond
// the end of list.
func listInsert(list []any, idx int, v any) []any {
	if idx < 0 {
		idx = 0
	}
	if idx >= len(list) {
		return append(append([]any{}, list...), v)
	}
	out := make([]any, 0, len(list)+1)
	out = append(out, list[:idx]...)
	out = append(out, v)
	out = append(out, list[idx:]...)
	return out
}

// listRemove removes the element at idx.
func listRemove(list []any, idx int) []any {
	out := make([]any, 0, len(list)-1)
	out = append(out, list[:idx]...)
	out = append(out, list[idx+1:]...)
	return out
}

// listMove removes the element at from and reinserts it at index to of
// the shortened list, so the moved element ends up at index to.
func listMove(list []any, from, to int) []any {
	v := list[from]
	withoutV := listRemove(list, from)
	return listInsert(withoutV, to, v)
}

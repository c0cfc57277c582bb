package otjson

// Compose fuses other onto op, returning a new operation. Equivalent
// to appending every component of other to op one at a time via
// Append.
func (op Operation) Compose(other Operation) Operation {
	result := op.Clone()
	for _, c := range other {
		result = result.Append(c.Clone())
	}
	return result
}

// Append adds a single component to an in-progress operation,
// following the fusion rules in the component-design section: a
// ListMove whose target equals its source is dropped; otherwise the
// component is fused with the operation's last component when they
// share a path and a fusion rule applies, or simply appended.
func (op Operation) Append(c Component) Operation {
	if c.isNoopEquivalent() && c.Op.Kind == OpListMove {
		return op
	}
	if len(op) == 0 {
		return append(op, c)
	}
	last := op[len(op)-1]
	if !last.Path.Equal(c.Path) {
		return append(op, c)
	}
	fused, ok := fuse(last.Op, c.Op)
	if !ok {
		return append(op, c)
	}
	if fused.Kind == OpNoop {
		return op[:len(op)-1]
	}
	out := make(Operation, len(op))
	copy(out, op)
	out[len(out)-1] = Component{Path: last.Path, Op: fused}
	return out
}

// fuse attempts to combine last (already in the operation) with
// incoming (being appended at the same path) into a single equivalent
// operator, per the pairwise fusion table. ok is false when no rule
// applies and incoming should simply be pushed unfused.
func fuse(last, incoming Operator) (Operator, bool) {
	if incoming.Kind == OpNoop {
		return last, true
	}

	switch last.Kind {
	case OpAddNumber:
		if incoming.Kind == OpAddNumber {
			return AddNumber(last.Number + incoming.Number), true
		}

	case OpListInsert:
		switch incoming.Kind {
		case OpListDelete:
			if jsonEqual(last.Value, incoming.Value) {
				return Noop(), true
			}
		case OpListReplace:
			if jsonEqual(incoming.Old, last.Value) {
				return ListInsert(incoming.New), true
			}
		}

	case OpListReplace:
		switch incoming.Kind {
		case OpListDelete:
			if jsonEqual(incoming.Value, last.New) {
				return ListDelete(last.Old), true
			}
		case OpListReplace:
			if jsonEqual(incoming.Old, last.New) {
				return ListReplaceOp(incoming.New, last.Old), true
			}
		}

	case OpObjectInsert:
		switch incoming.Kind {
		case OpObjectDelete:
			if jsonEqual(last.Value, incoming.Value) {
				return Noop(), true
			}
		case OpObjectReplace:
			if jsonEqual(incoming.Old, last.Value) {
				return ObjectInsert(incoming.New), true
			}
		}

	case OpObjectDelete:
		if incoming.Kind == OpObjectInsert {
			return ObjectReplaceOp(incoming.Value, last.Value), true
		}

	case OpObjectReplace:
		switch incoming.Kind {
		case OpObjectDelete:
			if jsonEqual(incoming.Value, last.New) {
				return ObjectDelete(last.Old), true
			}
		case OpObjectReplace:
			if jsonEqual(incoming.Old, last.New) {
				return ObjectReplaceOp(incoming.New, last.Old), true
			}
		}

	case OpSubType:
		if incoming.Kind == OpSubType && incoming.SubTypeName == last.SubTypeName {
			vt, ok := Default.Lookup(last.SubTypeName)
			if ok {
				if composed, ok := vt.Compose(last.Operand, incoming.Operand); ok {
					return SubTypeOp(last.SubTypeName, composed), true
				}
			}
		}
	}

	return Operator{}, false
}

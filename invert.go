package otjson

// Invert returns the inverse of op: applying op then op.Invert() to
// the same document is the identity, provided each component's payload
// captures its actual pre-image. Components are inverted individually
// and the resulting sequence is reversed, since inverting a sequence
// of edits undoes the last edit first.
func (op Operation) Invert(reg *Registry) (Operation, error) {
	if reg == nil {
		reg = Default
	}
	inv := make(Operation, len(op))
	for i, c := range op {
		ic, err := invertComponent(c, reg)
		if err != nil {
			return nil, err
		}
		inv[len(op)-1-i] = ic
	}
	return inv, nil
}

func invertComponent(c Component, reg *Registry) (Component, error) {
	switch c.Op.Kind {
	case OpNoop:
		return c, nil
	case OpListInsert:
		return Component{Path: c.Path, Op: ListDelete(c.Op.Value)}, nil
	case OpListDelete:
		return Component{Path: c.Path, Op: ListInsert(c.Op.Value)}, nil
	case OpListReplace:
		return Component{Path: c.Path, Op: ListReplaceOp(c.Op.Old, c.Op.New)}, nil
	case OpObjectInsert:
		return Component{Path: c.Path, Op: ObjectDelete(c.Op.Value)}, nil
	case OpObjectDelete:
		return Component{Path: c.Path, Op: ObjectInsert(c.Op.Value)}, nil
	case OpObjectReplace:
		return Component{Path: c.Path, Op: ObjectReplaceOp(c.Op.Old, c.Op.New)}, nil
	case OpAddNumber:
		return Component{Path: c.Path, Op: AddNumber(-c.Op.Number)}, nil
	case OpListMove:
		// Swap source index (last path element) and destination.
		src := c.Path.Last().Int()
		return Component{Path: c.Path.WithLast(c.Op.To), Op: ListMove(src)}, nil
	case OpSubType:
		vt, ok := reg.Lookup(c.Op.SubTypeName)
		if !ok {
			return Component{}, errUnknownSubType(c.Op.SubTypeName)
		}
		inv, err := vt.Invert(nil, c.Op.Operand)
		if err != nil {
			return Component{}, err
		}
		return Component{Path: c.Path, Op: SubTypeOp(c.Op.SubTypeName, inv)}, nil
	}
	return c, nil
}

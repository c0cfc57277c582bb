package otjson

import (
	"strings"

	"github.com/brunoga/otjson/errpath"
)

// textSubType implements the reserved "text" sub-type: collaborative
// plain-text editing via a linear retain/insert/delete operation
// sequence, the scheme underlying most quill-delta-style editors. The
// wire form of an operand is a JSON array mixing positive integers
// (retain N), negative integers (delete N) and strings (insert S), in
// sequence order — e.g. [5, "hello", -3, 10] means
// Retain(5), Insert("hello"), Delete(3), Retain(10).
//
// This ports the scheme left unfinished in the source this engine was
// distilled from (see the sub-type registry's Open Question on
// merge/transform): rather than leave it erroring, it is implemented
// in full, following the canonical algorithm.
type textSubType struct{}

type textOpKind int

const (
	textRetain textOpKind = iota
	textInsert
	textDelete
)

type textOp struct {
	kind textOpKind
	n    int
	s    string
}

func (o textOp) runeLen() int {
	if o.kind == textInsert {
		return len([]rune(o.s))
	}
	return o.n
}

func parseTextOperand(v any) ([]textOp, error) {
	raw, ok := v.([]any)
	if !ok {
		return nil, errpath.NewInvalidOperation("text operand must be a JSON array, got %T", v)
	}
	ops := make([]textOp, 0, len(raw))
	for _, item := range raw {
		switch x := item.(type) {
		case string:
			if x == "" {
				continue
			}
			ops = append(ops, textOp{kind: textInsert, s: x})
		case float64:
			n := int(x)
			if n == 0 {
				continue
			}
			if n > 0 {
				ops = append(ops, textOp{kind: textRetain, n: n})
			} else {
				ops = append(ops, textOp{kind: textDelete, n: -n})
			}
		default:
			return nil, errpath.NewInvalidOperation("text operand element must be a string or number, got %T", item)
		}
	}
	return ops, nil
}

func encodeTextOperand(ops []textOp) []any {
	out := make([]any, 0, len(ops))
	for _, op := range ops {
		switch op.kind {
		case textRetain:
			out = append(out, float64(op.n))
		case textDelete:
			out = append(out, float64(-op.n))
		case textInsert:
			out = append(out, op.s)
		}
	}
	return out
}

func (textSubType) ValidateOperand(v any) error {
	_, err := parseTextOperand(v)
	return err
}

func (textSubType) Apply(value any, operand any) (any, error) {
	s, ok := value.(string)
	if !ok {
		if value == nil {
			s = ""
		} else {
			return nil, errpath.NewApplyOperationError("text sub-type target is not a string")
		}
	}
	ops, err := parseTextOperand(operand)
	if err != nil {
		return nil, err
	}
	runes := []rune(s)
	var b strings.Builder
	idx := 0
	for _, op := range ops {
		switch op.kind {
		case textRetain:
			if idx+op.n > len(runes) {
				return nil, errpath.NewInvalidOperation("text retain past end of string")
			}
			b.WriteString(string(runes[idx : idx+op.n]))
			idx += op.n
		case textInsert:
			b.WriteString(op.s)
		case textDelete:
			if idx+op.n > len(runes) {
				return nil, errpath.NewInvalidOperation("text delete disagrees with the character range at the offset")
			}
			idx += op.n
		}
	}
	b.WriteString(string(runes[idx:]))
	return b.String(), nil
}

func (textSubType) Invert(value any, operand any) (any, error) {
	s, _ := value.(string)
	ops, err := parseTextOperand(operand)
	if err != nil {
		return nil, err
	}
	runes := []rune(s)
	idx := 0
	inv := make([]textOp, 0, len(ops))
	for _, op := range ops {
		switch op.kind {
		case textRetain:
			inv = append(inv, textOp{kind: textRetain, n: op.n})
			idx += op.n
		case textInsert:
			inv = append(inv, textOp{kind: textDelete, n: op.runeLen()})
		case textDelete:
			if idx+op.n > len(runes) {
				return nil, errpath.NewInvalidOperation("text delete disagrees with the character range at the offset")
			}
			inv = append(inv, textOp{kind: textInsert, s: string(runes[idx : idx+op.n])})
			idx += op.n
		}
	}
	return encodeTextOperand(inv), nil
}

func (textSubType) Compose(base, other any) (any, bool) {
	a, err := parseTextOperand(base)
	if err != nil {
		return nil, false
	}
	b, err := parseTextOperand(other)
	if err != nil {
		return nil, false
	}
	composed, err := composeTextOps(a, b)
	if err != nil {
		return nil, false
	}
	return encodeTextOperand(composed), true
}

func (textSubType) Transform(newOperand, baseOperand any, side Side) ([]any, error) {
	n, err := parseTextOperand(newOperand)
	if err != nil {
		return nil, err
	}
	b, err := parseTextOperand(baseOperand)
	if err != nil {
		return nil, err
	}

	var nPrime []textOp
	if side == Left {
		nPrime, _, err = transformTextPair(n, b)
	} else {
		_, nPrime, err = transformTextPair(b, n)
	}
	if err != nil {
		return nil, err
	}
	return []any{encodeTextOperand(nPrime)}, nil
}

// appendTextOp appends op to ops, fusing it with the previous op when
// they are of the same kind (retain+retain, delete+delete,
// insert+insert), the way adjacent primitive text ops are always
// folded together.
func appendTextOp(ops []textOp, op textOp) []textOp {
	if op.kind == textRetain && op.n == 0 {
		return ops
	}
	if op.kind == textDelete && op.n == 0 {
		return ops
	}
	if op.kind == textInsert && op.s == "" {
		return ops
	}
	if len(ops) > 0 {
		last := &ops[len(ops)-1]
		if last.kind == op.kind {
			switch op.kind {
			case textRetain, textDelete:
				last.n += op.n
				return ops
			case textInsert:
				last.s += op.s
				return ops
			}
		}
	}
	return append(ops, op)
}

// textOpDone reports whether op has been fully consumed.
func textOpDone(op textOp) bool {
	if op.kind == textInsert {
		return op.s == ""
	}
	return op.n == 0
}

// composeTextOps merges two sequential operand sequences (a applied,
// then b) into one equivalent sequence.
func composeTextOps(a, b []textOp) ([]textOp, error) {
	var result []textOp
	i, j := 0, 0
	var curA, curB textOp
	var haveA, haveB bool
	nextA := func() { haveA = i < len(a); if haveA { curA = a[i]; i++ } }
	nextB := func() { haveB = j < len(b); if haveB { curB = b[j]; j++ } }
	nextA()
	nextB()

	for haveA || haveB {
		if haveA && curA.kind == textDelete {
			result = appendTextOp(result, curA)
			nextA()
			continue
		}
		if haveB && curB.kind == textInsert {
			result = appendTextOp(result, curB)
			nextB()
			continue
		}
		if !haveA || !haveB {
			if haveB {
				result = appendTextOp(result, curB)
				nextB()
				continue
			}
			if haveA {
				return nil, errpath.NewInvalidOperation("text compose: a inserts/retains past end of b")
			}
			break
		}
		switch {
		case curA.kind == textRetain && curB.kind == textRetain:
			n := min(curA.n, curB.n)
			result = appendTextOp(result, textOp{kind: textRetain, n: n})
			curA.n -= n
			curB.n -= n
		case curA.kind == textInsert && curB.kind == textRetain:
			n := min(curA.runeLen(), curB.n)
			ar := []rune(curA.s)
			result = appendTextOp(result, textOp{kind: textInsert, s: string(ar[:n])})
			curA.s = string(ar[n:])
			curB.n -= n
		case curA.kind == textInsert && curB.kind == textDelete:
			n := min(curA.runeLen(), curB.n)
			ar := []rune(curA.s)
			curA.s = string(ar[n:])
			curB.n -= n
		case curA.kind == textRetain && curB.kind == textDelete:
			n := min(curA.n, curB.n)
			result = appendTextOp(result, textOp{kind: textDelete, n: n})
			curA.n -= n
			curB.n -= n
		}
		if textOpDone(curA) {
			nextA()
		}
		if textOpDone(curB) {
			nextB()
		}
	}
	return result, nil
}

// transformTextPair transforms a and b against each other, returning
// (a', b') such that applying a then b' equals applying b then a'.
// Simultaneous inserts at the same position favor a: a's text lands
// first. Callers pick argument order to express priority.
func transformTextPair(a, b []textOp) ([]textOp, []textOp, error) {
	var aPrime, bPrime []textOp
	i, j := 0, 0
	var curA, curB textOp
	var haveA, haveB bool
	nextA := func() { haveA = i < len(a); if haveA { curA = a[i]; i++ } }
	nextB := func() { haveB = j < len(b); if haveB { curB = b[j]; j++ } }
	nextA()
	nextB()

	for haveA || haveB {
		if haveA && curA.kind == textInsert {
			aPrime = appendTextOp(aPrime, curA)
			bPrime = appendTextOp(bPrime, textOp{kind: textRetain, n: curA.runeLen()})
			nextA()
			continue
		}
		if haveB && curB.kind == textInsert {
			bPrime = appendTextOp(bPrime, curB)
			aPrime = appendTextOp(aPrime, textOp{kind: textRetain, n: curB.runeLen()})
			nextB()
			continue
		}
		// An exhausted side implicitly retains the rest of the string,
		// the same way Apply keeps the text past the operand's end.
		if !haveA {
			curA, haveA = textOp{kind: textRetain, n: curB.n}, true
		}
		if !haveB {
			curB, haveB = textOp{kind: textRetain, n: curA.n}, true
		}
		switch {
		case curA.kind == textRetain && curB.kind == textRetain:
			n := min(curA.n, curB.n)
			aPrime = appendTextOp(aPrime, textOp{kind: textRetain, n: n})
			bPrime = appendTextOp(bPrime, textOp{kind: textRetain, n: n})
			curA.n -= n
			curB.n -= n
		case curA.kind == textDelete && curB.kind == textDelete:
			n := min(curA.n, curB.n)
			curA.n -= n
			curB.n -= n
		case curA.kind == textDelete && curB.kind == textRetain:
			n := min(curA.n, curB.n)
			aPrime = appendTextOp(aPrime, textOp{kind: textDelete, n: n})
			curA.n -= n
			curB.n -= n
		case curA.kind == textRetain && curB.kind == textDelete:
			n := min(curA.n, curB.n)
			bPrime = appendTextOp(bPrime, textOp{kind: textDelete, n: n})
			curA.n -= n
			curB.n -= n
		}
		if curA.n == 0 {
			nextA()
		}
		if curB.n == 0 {
			nextB()
		}
	}
	return aPrime, bPrime, nil
}

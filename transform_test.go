package otjson

import (
	"reflect"
	"testing"
)

func opEqual(a, b Operation) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Path.Equal(b[i].Path) {
			return false
		}
		if a[i].Op.Kind != b[i].Op.Kind {
			return false
		}
		if !jsonEqual(a[i].Op.Value, b[i].Op.Value) ||
			!jsonEqual(a[i].Op.New, b[i].Op.New) ||
			!jsonEqual(a[i].Op.Old, b[i].Op.Old) ||
			a[i].Op.To != b[i].Op.To ||
			a[i].Op.Number != b[i].Op.Number {
			return false
		}
	}
	return true
}

func TestTransform_ConcreteScenarios(t *testing.T) {
	t.Run("concurrent list insert same index", func(t *testing.T) {
		a := Operation{{Path: mustPath(t, Index(1)), Op: ListInsert("x")}}
		b := Operation{{Path: mustPath(t, Index(1)), Op: ListInsert("y")}}

		aPrime, bPrime, err := Transform(a, b, Default)
		if err != nil {
			t.Fatalf("Transform: %v", err)
		}
		if !opEqual(aPrime, a) {
			t.Errorf("a' = %#v, want a unchanged", aPrime)
		}
		want := Operation{{Path: mustPath(t, Index(2)), Op: ListInsert("y")}}
		if !opEqual(bPrime, want) {
			t.Errorf("b' = %#v, want %#v", bPrime, want)
		}

		var docViaA any = []any{1.0, 2.0, 3.0}
		if err := a.Apply(&docViaA, Default); err != nil {
			t.Fatal(err)
		}
		if err := bPrime.Apply(&docViaA, Default); err != nil {
			t.Fatal(err)
		}

		var docViaB any = []any{1.0, 2.0, 3.0}
		if err := b.Apply(&docViaB, Default); err != nil {
			t.Fatal(err)
		}
		if err := aPrime.Apply(&docViaB, Default); err != nil {
			t.Fatal(err)
		}

		if !reflect.DeepEqual(docViaA, docViaB) {
			t.Errorf("orderings diverged: %#v vs %#v", docViaA, docViaB)
		}
	})

	t.Run("delete under concurrent deep edit", func(t *testing.T) {
		base := Operation{{Path: mustPath(t, Key("a")), Op: ObjectDelete(map[string]any{"b": 1.0})}}
		newOp := Operation{{Path: mustPath(t, Key("a"), Key("b")), Op: AddNumber(5)}}

		newPrime, _, err := Transform(newOp, base, Default)
		if err != nil {
			t.Fatalf("Transform: %v", err)
		}
		if len(newPrime) != 0 {
			t.Errorf("new' = %#v, want empty", newPrime)
		}
	})

	t.Run("concurrent object insert same key side left", func(t *testing.T) {
		a := Operation{{Path: mustPath(t, Key("k")), Op: ObjectInsert(1.0)}}
		b := Operation{{Path: mustPath(t, Key("k")), Op: ObjectInsert(2.0)}}

		aPrime, bPrime, err := Transform(a, b, Default)
		if err != nil {
			t.Fatalf("Transform: %v", err)
		}
		want := Operation{{Path: mustPath(t, Key("k")), Op: ObjectReplaceOp(1.0, 2.0)}}
		if !opEqual(aPrime, want) {
			t.Errorf("a' = %#v, want %#v", aPrime, want)
		}
		if len(bPrime) != 0 {
			t.Errorf("b' = %#v, want empty", bPrime)
		}
	})

	t.Run("list move past concurrent insert", func(t *testing.T) {
		base := Operation{{Path: mustPath(t, Index(3)), Op: ListInsert("z")}}
		newOp := Operation{{Path: mustPath(t, Index(0)), Op: ListMove(2)}}

		newPrime, _, err := Transform(newOp, base, Default)
		if err != nil {
			t.Fatalf("Transform: %v", err)
		}
		if !opEqual(newPrime, newOp) {
			t.Errorf("new' = %#v, want unchanged %#v", newPrime, newOp)
		}
	})

	t.Run("replace vs delete", func(t *testing.T) {
		base := Operation{{Path: mustPath(t, Index(1)), Op: ListDelete(20.0)}}
		newOp := Operation{{Path: mustPath(t, Index(1)), Op: ListReplaceOp(99.0, 20.0)}}

		newPrime, _, err := Transform(newOp, base, Default)
		if err != nil {
			t.Fatalf("Transform: %v", err)
		}
		want := Operation{{Path: mustPath(t, Index(1)), Op: ListInsert(99.0)}}
		if !opEqual(newPrime, want) {
			t.Errorf("new' = %#v, want %#v", newPrime, want)
		}

		basePrime, _, err := Transform(base, newOp, Default)
		if err != nil {
			t.Fatalf("Transform: %v", err)
		}
		if len(basePrime) != 0 {
			t.Errorf("base' = %#v, want empty", basePrime)
		}
	})

	t.Run("delete rebased past a concurrent move using the pre-decrement index", func(t *testing.T) {
		base := Operation{{Path: mustPath(t, Index(0)), Op: ListMove(1)}}
		newOp := Operation{{Path: mustPath(t, Index(2)), Op: ListDelete("c")}}

		newPrime, _, err := Transform(newOp, base, Default)
		if err != nil {
			t.Fatalf("Transform: %v", err)
		}
		want := Operation{{Path: mustPath(t, Index(2)), Op: ListDelete("c")}}
		if !opEqual(newPrime, want) {
			t.Errorf("new' = %#v, want %#v", newPrime, want)
		}

		var doc any = []any{"a", "b", "c", "d"}
		if err := base.Apply(&doc, Default); err != nil {
			t.Fatal(err)
		}
		if err := newPrime.Apply(&doc, Default); err != nil {
			t.Fatal(err)
		}
		want2 := []any{"b", "a", "d"}
		if !reflect.DeepEqual(doc, want2) {
			t.Errorf("doc = %#v, want %#v", doc, want2)
		}
	})

	t.Run("cross-container move shifts a sibling's index unconditionally", func(t *testing.T) {
		base := Operation{{Path: mustPath(t, Index(2)), Op: ListMove(5)}}
		newOp := Operation{{Path: mustPath(t, Index(3), Key("k")), Op: ObjectReplaceOp(2.0, 1.0)}}

		newPrime, _, err := Transform(newOp, base, Default)
		if err != nil {
			t.Fatalf("Transform: %v", err)
		}
		want := Operation{{Path: mustPath(t, Index(2), Key("k")), Op: ObjectReplaceOp(2.0, 1.0)}}
		if !opEqual(newPrime, want) {
			t.Errorf("new' = %#v, want %#v", newPrime, want)
		}
	})

	t.Run("cross-container delete does not touch a nested move's target index", func(t *testing.T) {
		base := Operation{{Path: mustPath(t, Index(1)), Op: ListDelete("x")}}
		newOp := Operation{{Path: mustPath(t, Index(3), Index(0)), Op: ListMove(5)}}

		newPrime, _, err := Transform(newOp, base, Default)
		if err != nil {
			t.Fatalf("Transform: %v", err)
		}
		want := Operation{{Path: mustPath(t, Index(2), Index(0)), Op: ListMove(5)}}
		if !opEqual(newPrime, want) {
			t.Errorf("new' = %#v, want %#v", newPrime, want)
		}
	})
}

func TestTransform_Convergence(t *testing.T) {
	tests := []struct {
		name string
		doc  any
		a, b Operation
	}{
		{
			name: "inserts at the same index",
			doc:  []any{1.0, 2.0, 3.0},
			a:    Operation{{Path: mustPath(t, Index(1)), Op: ListInsert("x")}},
			b:    Operation{{Path: mustPath(t, Index(1)), Op: ListInsert("y")}},
		},
		{
			name: "non-overlapping keys",
			doc:  map[string]any{"a": 1.0, "b": 2.0},
			a:    Operation{{Path: mustPath(t, Key("a")), Op: AddNumber(1)}},
			b:    Operation{{Path: mustPath(t, Key("b")), Op: AddNumber(2)}},
		},
		{
			name: "deletes at adjacent indices",
			doc:  []any{1.0, 2.0, 3.0},
			a:    Operation{{Path: mustPath(t, Index(0)), Op: ListDelete(1.0)}},
			b:    Operation{{Path: mustPath(t, Index(2)), Op: ListDelete(3.0)}},
		},
		{
			name: "concurrent moves of different elements",
			doc:  []any{"a", "b", "c", "d"},
			a:    Operation{{Path: mustPath(t, Index(0)), Op: ListMove(3)}},
			b:    Operation{{Path: mustPath(t, Index(1)), Op: ListMove(0)}},
		},
		{
			name: "insert and delete in the same list",
			doc:  []any{1.0, 2.0, 3.0},
			a:    Operation{{Path: mustPath(t, Index(1)), Op: ListInsert("x")}},
			b:    Operation{{Path: mustPath(t, Index(2)), Op: ListDelete(3.0)}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			aPrime, bPrime, err := Transform(tt.a, tt.b, Default)
			if err != nil {
				t.Fatalf("Transform(a,b): %v", err)
			}

			docViaA := cloneValue(tt.doc)
			if err := tt.a.Apply(&docViaA, Default); err != nil {
				t.Fatalf("Apply(a): %v", err)
			}
			if err := bPrime.Apply(&docViaA, Default); err != nil {
				t.Fatalf("Apply(b'): %v", err)
			}

			docViaB := cloneValue(tt.doc)
			if err := tt.b.Apply(&docViaB, Default); err != nil {
				t.Fatalf("Apply(b): %v", err)
			}
			if err := aPrime.Apply(&docViaB, Default); err != nil {
				t.Fatalf("Apply(a'): %v", err)
			}

			if !reflect.DeepEqual(docViaA, docViaB) {
				t.Errorf("did not converge: %#v vs %#v", docViaA, docViaB)
			}
		})
	}
}

func TestTransform_DisjointSubtreeInvariance(t *testing.T) {
	a := Operation{{Path: mustPath(t, Key("a"), Index(0)), Op: AddNumber(1)}}
	b := Operation{{Path: mustPath(t, Key("b"), Index(0)), Op: AddNumber(2)}}

	aPrime, bPrime, err := Transform(a, b, Default)
	if err != nil {
		t.Fatalf("Transform: %v", err)
	}
	if !opEqual(aPrime, a) || !opEqual(bPrime, b) {
		t.Errorf("disjoint subtrees should be unaffected: a'=%#v b'=%#v", aPrime, bPrime)
	}
}

func TestTransform_NoopTransparency(t *testing.T) {
	a := Operation{{Path: mustPath(t, Key("a")), Op: ObjectInsert(1.0)}}
	noop := Operation{{Path: mustPath(t, Key("x")), Op: Noop()}}

	aPrime, noopPrime, err := Transform(a, noop, Default)
	if err != nil {
		t.Fatalf("Transform(a, noop): %v", err)
	}
	if !opEqual(aPrime, a) {
		t.Errorf("a' = %#v, want a unchanged", aPrime)
	}
	if !opEqual(noopPrime, noop) {
		t.Errorf("noop' = %#v, want unchanged", noopPrime)
	}

	noopPrime2, aPrime2, err := Transform(noop, a, Default)
	if err != nil {
		t.Fatalf("Transform(noop, a): %v", err)
	}
	if !opEqual(noopPrime2, noop) {
		t.Errorf("noop' = %#v, want unchanged", noopPrime2)
	}
	if !opEqual(aPrime2, a) {
		t.Errorf("a' = %#v, want a unchanged", aPrime2)
	}
}

func TestTransform_SideSymmetry(t *testing.T) {
	doc := map[string]any{"k": 0.0}
	a := Operation{{Path: mustPath(t, Key("k")), Op: ObjectReplaceOp(1.0, 0.0)}}
	b := Operation{{Path: mustPath(t, Key("k")), Op: ObjectReplaceOp(2.0, 0.0)}}

	_, bR, err := Transform(a, b, Default)
	if err != nil {
		t.Fatalf("Transform(a,b): %v", err)
	}
	_, aR, err := Transform(b, a, Default)
	if err != nil {
		t.Fatalf("Transform(b,a): %v", err)
	}

	docViaA := cloneValue(doc)
	if err := a.Apply(&docViaA, Default); err != nil {
		t.Fatal(err)
	}
	if err := bR.Apply(&docViaA, Default); err != nil {
		t.Fatal(err)
	}

	docViaB := cloneValue(doc)
	if err := b.Apply(&docViaB, Default); err != nil {
		t.Fatal(err)
	}
	if err := aR.Apply(&docViaB, Default); err != nil {
		t.Fatal(err)
	}

	if !reflect.DeepEqual(docViaA, docViaB) {
		t.Errorf("side symmetry violated: %#v vs %#v", docViaA, docViaB)
	}
}

func TestCompose_MatchesSequentialApply(t *testing.T) {
	doc := map[string]any{"x": 1.0, "items": []any{1.0, 2.0}}
	a := Operation{{Path: mustPath(t, Key("x")), Op: AddNumber(2)}}
	b := Operation{{Path: mustPath(t, Key("items"), Index(0)), Op: ListDelete(1.0)}}

	composed := a.Compose(b)

	docViaCompose := cloneValue(doc)
	if err := composed.Apply(&docViaCompose, Default); err != nil {
		t.Fatalf("Apply(composed): %v", err)
	}

	docViaSeq := cloneValue(doc)
	if err := a.Apply(&docViaSeq, Default); err != nil {
		t.Fatal(err)
	}
	if err := b.Apply(&docViaSeq, Default); err != nil {
		t.Fatal(err)
	}

	if !reflect.DeepEqual(docViaCompose, docViaSeq) {
		t.Errorf("compose diverged from sequential apply: %#v vs %#v", docViaCompose, docViaSeq)
	}
}

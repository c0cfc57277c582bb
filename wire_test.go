package otjson

import (
	"encoding/json"
	"testing"
)

func TestComponent_MarshalUnmarshalRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		c    Component
	}{
		{"add number", Component{Path: mustPath(t, Key("n")), Op: AddNumber(3)}},
		{"list insert", Component{Path: mustPath(t, Index(1)), Op: ListInsert("x")}},
		{"list delete", Component{Path: mustPath(t, Index(1)), Op: ListDelete("x")}},
		{"list replace", Component{Path: mustPath(t, Index(1)), Op: ListReplaceOp("y", "x")}},
		{"list move", Component{Path: mustPath(t, Index(1)), Op: ListMove(3)}},
		{"object insert", Component{Path: mustPath(t, Key("a")), Op: ObjectInsert(1.0)}},
		{"object delete", Component{Path: mustPath(t, Key("a")), Op: ObjectDelete(1.0)}},
		{"object replace", Component{Path: mustPath(t, Key("a")), Op: ObjectReplaceOp(2.0, 1.0)}},
		{"sub type", Component{Path: mustPath(t, Key("a")), Op: SubTypeOp(NumberSubType, 1.0)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := json.Marshal(tt.c)
			if err != nil {
				t.Fatalf("Marshal: %v", err)
			}
			var got Component
			if err := json.Unmarshal(b, &got); err != nil {
				t.Fatalf("Unmarshal: %v", err)
			}
			if !got.Path.Equal(tt.c.Path) {
				t.Errorf("path mismatch: got %v, want %v", got.Path, tt.c.Path)
			}
			if got.Op.Kind != tt.c.Op.Kind {
				t.Errorf("kind mismatch: got %v, want %v", got.Op.Kind, tt.c.Op.Kind)
			}
		})
	}
}

func TestUnmarshalOperation_ArrayAndBareObject(t *testing.T) {
	arr := []byte(`[{"p":["a"],"oi":1}]`)
	op, err := UnmarshalOperation(arr)
	if err != nil {
		t.Fatalf("UnmarshalOperation(array): %v", err)
	}
	if len(op) != 1 || op[0].Op.Kind != OpObjectInsert {
		t.Errorf("got %#v", op)
	}

	bare := []byte(`{"p":["a"],"oi":1}`)
	op, err = UnmarshalOperation(bare)
	if err != nil {
		t.Fatalf("UnmarshalOperation(bare object): %v", err)
	}
	if len(op) != 1 || op[0].Op.Kind != OpObjectInsert {
		t.Errorf("got %#v", op)
	}
}

func TestUnmarshalComponent_RejectsOversizedObject(t *testing.T) {
	data := []byte(`{"p":["a"],"oi":1,"extra":true}`)
	var c Component
	if err := json.Unmarshal(data, &c); err == nil {
		t.Errorf("expected an error for an unrecognized extra key")
	}
}

func TestUnmarshalComponent_RejectsMissingPath(t *testing.T) {
	data := []byte(`{"oi":1}`)
	var c Component
	if err := json.Unmarshal(data, &c); err == nil {
		t.Errorf("expected an error for a missing path")
	}
}

func TestUnmarshalComponent_RejectsUnmatchedOperatorShape(t *testing.T) {
	data := []byte(`{"p":["a"],"li":1,"oi":2}`)
	var c Component
	if err := json.Unmarshal(data, &c); err == nil {
		t.Errorf("expected an error for mixed operator keys")
	}
}

func TestUnmarshalComponent_RejectsNegativeIndex(t *testing.T) {
	data := []byte(`{"p":[-1],"oi":1}`)
	var c Component
	if err := json.Unmarshal(data, &c); err == nil {
		t.Errorf("expected an error for a negative path index")
	}
}

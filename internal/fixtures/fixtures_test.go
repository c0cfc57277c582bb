package fixtures

import (
	"reflect"
	"testing"

	"github.com/brunoga/otjson"
)

func TestScenarios(t *testing.T) {
	scenarios, err := Load("../../testdata")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(scenarios) == 0 {
		t.Fatal("no scenarios loaded")
	}

	for _, s := range scenarios {
		s := s
		t.Run(s.Name, func(t *testing.T) {
			got, err := Run(s, otjson.Default)
			if err != nil {
				t.Fatalf("Run: %v", err)
			}
			if !reflect.DeepEqual(got, s.Want) {
				t.Errorf("got %#v, want %#v", got, s.Want)
			}
		})
	}
}

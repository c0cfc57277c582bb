// Package fixtures loads and runs the YAML scenario files under
// testdata/, each describing a starting document, one or two
// operations, and the expected outcome, so the concrete examples in
// the specification can be exercised as data instead of hand-written
// Go literals.
package fixtures

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"reflect"

	"github.com/mitchellh/copystructure"
	"gopkg.in/yaml.v3"

	"github.com/brunoga/otjson"
)

// Scenario is a single fixture: a document, one or two operations
// applied to it (directly, or via a transform pass first), and the
// expected resulting document(s).
type Scenario struct {
	Name string `yaml:"name"`
	Doc  any    `yaml:"doc"`

	// A is applied directly when B is absent, or transformed against B
	// (both assumed to share Doc as their common base) when B is
	// present.
	A []map[string]any `yaml:"a"`
	B []map[string]any `yaml:"b,omitempty"`

	// Want is the expected document after applying A (when B is
	// absent), or the converged document after applying A then B'
	// (and, symmetrically, B then A') when B is present.
	Want any `yaml:"want"`
}

// Load reads every *.yaml file in dir and decodes it as a Scenario.
func Load(dir string) ([]Scenario, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading fixtures dir %s: %w", dir, err)
	}

	var scenarios []Scenario
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".yaml" {
			continue
		}
		raw, err := os.ReadFile(filepath.Join(dir, e.Name()))
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", e.Name(), err)
		}
		var s Scenario
		if err := yaml.Unmarshal(raw, &s); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", e.Name(), err)
		}
		// Numbers and nested maps decoded by yaml.v3 don't match the
		// shapes otjson expects (float64 leaves, map[string]any
		// objects); round-tripping through encoding/json normalizes
		// them the same way a wire-decoded document would look.
		s.Doc = normalizeJSON(s.Doc)
		s.Want = normalizeJSON(s.Want)
		scenarios = append(scenarios, s)
	}
	return scenarios, nil
}

func normalizeJSON(v any) any {
	b, err := json.Marshal(v)
	if err != nil {
		return v
	}
	var out any
	if err := json.Unmarshal(b, &out); err != nil {
		return v
	}
	return out
}

func jsonEqual(a, b any) bool {
	return reflect.DeepEqual(a, b)
}

func cloneDoc(v any) any {
	out, err := copystructure.Copy(v)
	if err != nil || v == nil {
		return v
	}
	return out
}

func toOperation(raw []map[string]any) (otjson.Operation, error) {
	b, err := json.Marshal(raw)
	if err != nil {
		return nil, err
	}
	return otjson.UnmarshalOperation(b)
}

// Run executes a scenario against reg (otjson.Default if nil) and
// returns the resulting document, for the caller to compare against
// Want. With B present, it fails unless both orderings converge.
func Run(s Scenario, reg *otjson.Registry) (any, error) {
	a, err := toOperation(s.A)
	if err != nil {
		return nil, fmt.Errorf("scenario %s: parsing a: %w", s.Name, err)
	}

	if len(s.B) == 0 {
		doc := cloneDoc(s.Doc)
		if err := a.Apply(&doc, reg); err != nil {
			return nil, fmt.Errorf("scenario %s: apply: %w", s.Name, err)
		}
		return doc, nil
	}

	b, err := toOperation(s.B)
	if err != nil {
		return nil, fmt.Errorf("scenario %s: parsing b: %w", s.Name, err)
	}

	aPrime, bPrime, err := otjson.Transform(a, b, reg)
	if err != nil {
		return nil, fmt.Errorf("scenario %s: transform: %w", s.Name, err)
	}

	docViaA := cloneDoc(s.Doc)
	if err := a.Apply(&docViaA, reg); err != nil {
		return nil, fmt.Errorf("scenario %s: apply a: %w", s.Name, err)
	}
	if err := bPrime.Apply(&docViaA, reg); err != nil {
		return nil, fmt.Errorf("scenario %s: apply b': %w", s.Name, err)
	}

	docViaB := cloneDoc(s.Doc)
	if err := b.Apply(&docViaB, reg); err != nil {
		return nil, fmt.Errorf("scenario %s: apply b: %w", s.Name, err)
	}
	if err := aPrime.Apply(&docViaB, reg); err != nil {
		return nil, fmt.Errorf("scenario %s: apply a': %w", s.Name, err)
	}

	if !jsonEqual(docViaA, docViaB) {
		return nil, fmt.Errorf("scenario %s: orderings diverged: %#v vs %#v", s.Name, docViaA, docViaB)
	}
	return docViaA, nil
}

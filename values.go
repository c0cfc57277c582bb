package otjson

import (
	"reflect"

	"github.com/mitchellh/copystructure"
)

// jsonEqual reports whether two decoded JSON values (as produced by
// encoding/json into map[string]any / []any / string / float64 / bool
// / nil trees) are structurally equal.
func jsonEqual(a, b any) bool {
	return reflect.DeepEqual(a, b)
}

// cloneValue deep-copies an arbitrary decoded-JSON payload using
// copystructure, the clone engine this module shares with the rest of
// the corpus. A nil value, or a value copystructure cannot handle
// (which does not occur for JSON-shaped trees), is returned unchanged.
func cloneValue(v any) any {
	if v == nil {
		return nil
	}
	cp, err := copystructure.Copy(v)
	if err != nil {
		return v
	}
	return cp
}

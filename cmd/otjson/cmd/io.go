package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/brunoga/otjson"
)

// readFileOrStdin reads path, or stdin when path is "-".
func readFileOrStdin(path string) ([]byte, error) {
	if path == "-" || path == "" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}

func readDocument(path string) (any, error) {
	raw, err := readFileOrStdin(path)
	if err != nil {
		return nil, fmt.Errorf("reading document %s: %w", path, err)
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, fmt.Errorf("parsing document %s: %w", path, err)
	}
	return v, nil
}

func readOperation(path string) (otjson.Operation, error) {
	raw, err := readFileOrStdin(path)
	if err != nil {
		return nil, fmt.Errorf("reading operation %s: %w", path, err)
	}
	op, err := otjson.UnmarshalOperation(raw)
	if err != nil {
		return nil, fmt.Errorf("parsing operation %s: %w", path, err)
	}
	return op, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	return enc.Encode(v)
}

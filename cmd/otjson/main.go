// Command otjson is a CLI front-end to the otjson operational
// transformation engine: apply, transform, invert, and compose
// operations against JSON documents read from files or stdin.
package main

import (
	"os"

	"github.com/brunoga/otjson/cmd/otjson/cmd"
)

func main() {
	if err := cmd.NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

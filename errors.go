package otjson

import "github.com/brunoga/otjson/errpath"

func errEmptyPath() error {
	return errpath.NewPathError("path must not be empty")
}

func errUnknownSubType(name string) error {
	return errpath.NewApplyOperationError("unknown sub-type %q", name)
}

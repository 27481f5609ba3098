package engine

import "fmt"

// ResourceError reports a filesystem resource the render could not use:
// the scratch directory, its lock, the output directory or a frame file.
type ResourceError struct {
	Op   string
	Path string
	Err  error
}

func (e *ResourceError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *ResourceError) Unwrap() error { return e.Err }

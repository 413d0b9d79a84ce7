package lua

import (
	"fmt"
	"io/fs"

	"github.com/pkg/errors"
)

// MissingConfigError reports a required setting that was neither configured
// nor found in the environment.
type MissingConfigError struct {
	Name string
}

func (e *MissingConfigError) Error() string {
	return e.Name + " is not set"
}

// UnsupportedTargetError reports a target triple no platform rule matches.
type UnsupportedTargetError struct {
	Target string
}

func (e *UnsupportedTargetError) Error() string {
	return fmt.Sprintf("don't know how to build Lua for %s", e.Target)
}

// FilesystemError reports a failed filesystem operation on Path.
type FilesystemError struct {
	Op   string
	Path string
	Err  error
}

func (e *FilesystemError) Error() string {
	return fmt.Sprintf("cannot %s '%s': %v", e.Op, e.Path, e.Err)
}

func (e *FilesystemError) Unwrap() error { return e.Err }

// CompileError reports a failed toolchain invocation. Err carries the
// toolchain diagnostic unchanged.
type CompileError struct {
	Lib string
	Err error
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("failed to compile %s: %v", e.Lib, e.Err)
}

func (e *CompileError) Unwrap() error { return e.Err }

// fsError turns err into a *FilesystemError. When err carries its own path
// (an *fs.PathError), that path is reported instead of path.
func fsError(op, path string, err error) error {
	var pe *fs.PathError
	if errors.As(err, &pe) {
		return errors.WithStack(&FilesystemError{Op: op, Path: pe.Path, Err: pe.Err})
	}
	return errors.WithStack(&FilesystemError{Op: op, Path: path, Err: err})
}

// Package errors provides error constructors that annotate every error with
// the file and line of its origin, which is usually all the context an
// interactive CLI session needs to pinpoint a failure.
package errors

import (
	"fmt"
	"path/filepath"
	"runtime"
)

// New creates an error carrying the caller's file and line.
func New(format string, a ...interface{}) error {
	return fmt.Errorf("[%s] %s", callsite(), fmt.Sprintf(format, a...))
}

// Wrapf annotates err with a message and the caller's file and line.
// Returns nil when err is nil.
func Wrapf(err error, format string, a ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("[%s] %s: %w", callsite(), fmt.Sprintf(format, a...), err)
}

func callsite() string {
	_, file, line, ok := runtime.Caller(2)
	if !ok {
		return "???:0"
	}
	return fmt.Sprintf("%s:%d", filepath.Base(file), line)
}

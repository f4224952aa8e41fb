// Package stdio diverts the process standard output to standard error for
// the duration of a call, so native libraries that print to stdout cannot
// corrupt the JSON document the adapter writes there.
package stdio

import (
	"fmt"
	"os"
)

// Divert points standard output at standard error, both the os.Stdout
// variable and, where supported, file descriptor 1 itself. The returned
// restore function undoes the diversion; it is safe to call more than once.
// Callers must defer it immediately.
func Divert() (restore func() error, err error) {
	return divert(&os.Stdout, os.Stderr)
}

// Run calls fn with standard output diverted and restores it on every exit
// path, including a panic inside fn.
func Run(fn func() error) (err error) {
	restore, err := Divert()
	if err != nil {
		return fmt.Errorf("divert stdout: %w", err)
	}
	defer func() {
		if rerr := restore(); rerr != nil && err == nil {
			err = fmt.Errorf("restore stdout: %w", rerr)
		}
	}()
	return fn()
}

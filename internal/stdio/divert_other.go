//go:build !unix

package stdio

import (
	"os"
	"sync"
)

// divert only swaps the variable; writes made directly to the native
// handle by C code are not captured on this platform.
func divert(target **os.File, sink *os.File) (func() error, error) {
	prev := *target
	*target = sink
	var once sync.Once
	return func() error {
		once.Do(func() { *target = prev })
		return nil
	}, nil
}

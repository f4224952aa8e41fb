//go:build unix

package stdio

import (
	"os"
	"sync"

	"golang.org/x/sys/unix"
)

// divert repoints *target at sink at the descriptor level and swaps the
// variable. The original descriptor is kept in a dup until restore.
func divert(target **os.File, sink *os.File) (func() error, error) {
	prev := *target
	fd := int(prev.Fd())

	saved, err := unix.Dup(fd)
	if err != nil {
		return nil, err
	}
	if err := dup2(int(sink.Fd()), fd); err != nil {
		_ = unix.Close(saved)
		return nil, err
	}
	*target = sink

	var (
		once sync.Once
		rerr error
	)
	// restore does not flush the C stdio buffer; native code is assumed to
	// log to stderr, so nothing of its stdout is pending at this point.
	return func() error {
		once.Do(func() {
			*target = prev
			rerr = dup2(saved, fd)
			if cerr := unix.Close(saved); cerr != nil && rerr == nil {
				rerr = cerr
			}
		})
		return rerr
	}, nil
}

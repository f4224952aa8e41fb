//go:build linux

package stdio

import "golang.org/x/sys/unix"

// linux/arm64 and friends have no dup2 syscall.
func dup2(oldfd, newfd int) error {
	return unix.Dup3(oldfd, newfd, 0)
}

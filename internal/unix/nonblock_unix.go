//go:build unix

// Package unix provides platform-specific non-blocking I/O helpers.
package unix

import "golang.org/x/sys/unix"

// SetNonblock puts the descriptor into non-blocking mode so drain reads
// can never stall the control thread on a spurious readiness event.
func SetNonblock(fd int) error {
	return unix.SetNonblock(fd, true)
}

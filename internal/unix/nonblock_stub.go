//go:build !unix

// Package unix provides platform-specific non-blocking I/O helpers.
package unix

// SetNonblock is a no-op on platforms without a readiness poller.
func SetNonblock(_ int) error {
	return nil
}

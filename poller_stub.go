//go:build !linux && !darwin && !dragonfly && !freebsd && !netbsd && !openbsd

package parex

// newPoller - readiness polling is not supported on this platform
func newPoller() (poller, error) {
	return nil, ErrUnsupported
}

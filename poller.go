package parex

import "time"

// readiness classifies a ready endpoint
type readiness int

const (
	// readData indicates bytes are available to read
	readData readiness = iota
	// readHangup indicates the peer closed and no more data will ever arrive
	readHangup
)

// readyEvent pairs a ready file descriptor with its readiness classification
type readyEvent struct {
	fd   int
	kind readiness
}

// poller wraps the platform's readiness-notification facility. Wait watches
// the given descriptors for readable events, blocks until at least one is
// ready or the timeout elapses, and returns the ready subset. The watch set
// is re-submitted on every call, so a descriptor that has been closed simply
// stops being passed in; no explicit unregister is required.
type poller interface {
	Wait(fds []int, timeout time.Duration) ([]readyEvent, error)
	Close() error
}

//go:build darwin || dragonfly || freebsd || netbsd || openbsd

package parex

import (
	"time"

	"golang.org/x/sys/unix"
)

// pollPoller is the fallback readiness multiplexer for platforms without
// epoll, backed by poll(2). It holds no kernel state between calls.
type pollPoller struct{}

// newPoller creates the platform poller
func newPoller() (poller, error) {
	return &pollPoller{}, nil
}

// Wait implements poller using poll(2) with a millisecond timeout
func (p *pollPoller) Wait(fds []int, timeout time.Duration) ([]readyEvent, error) {
	if len(fds) == 0 {
		return nil, nil
	}

	pfds := make([]unix.PollFd, len(fds))
	for i, fd := range fds {
		pfds[i] = unix.PollFd{Fd: int32(fd), Events: unix.POLLIN}
	}

	for {
		_, err := unix.Poll(pfds, int(timeout.Milliseconds()))
		if err == unix.EINTR {
			continue
		}
		if err != nil {
			return nil, err
		}
		break
	}

	var ready []readyEvent
	for _, pfd := range pfds {
		switch {
		case pfd.Revents&unix.POLLIN != 0:
			// Data before hang-up, same as the epoll path
			ready = append(ready, readyEvent{fd: int(pfd.Fd), kind: readData})
		case pfd.Revents&(unix.POLLHUP|unix.POLLERR|unix.POLLNVAL) != 0:
			ready = append(ready, readyEvent{fd: int(pfd.Fd), kind: readHangup})
		}
	}

	return ready, nil
}

// Close is a no-op; poll(2) holds no persistent kernel state
func (p *pollPoller) Close() error {
	return nil
}

//go:build linux

package parex

import (
	"time"

	"golang.org/x/sys/unix"
)

// epollPoller is the Linux readiness multiplexer, backed by epoll.
// The epoll instance persists across Wait calls; the watched descriptors
// are added and removed per call.
type epollPoller struct {
	epfd int
}

// newPoller creates the platform poller
func newPoller() (poller, error) {
	epfd, err := unix.EpollCreate1(unix.EPOLL_CLOEXEC)
	if err != nil {
		return nil, err
	}
	return &epollPoller{epfd: epfd}, nil
}

// Wait implements poller using epoll_wait with a millisecond timeout.
// EPOLLRDHUP is requested so a peer close with no pending data is reported
// as a hang-up rather than a silent timeout.
func (p *epollPoller) Wait(fds []int, timeout time.Duration) ([]readyEvent, error) {
	if len(fds) == 0 {
		return nil, nil
	}

	for i, fd := range fds {
		ev := unix.EpollEvent{
			Events: unix.EPOLLIN | unix.EPOLLRDHUP,
			Fd:     int32(fd),
		}
		if err := unix.EpollCtl(p.epfd, unix.EPOLL_CTL_ADD, fd, &ev); err != nil {
			for _, added := range fds[:i] {
				_ = unix.EpollCtl(p.epfd, unix.EPOLL_CTL_DEL, added, nil)
			}
			return nil, err
		}
	}
	defer func() {
		for _, fd := range fds {
			_ = unix.EpollCtl(p.epfd, unix.EPOLL_CTL_DEL, fd, nil)
		}
	}()

	events := make([]unix.EpollEvent, len(fds))

	var n int
	for {
		var err error
		n, err = unix.EpollWait(p.epfd, events, int(timeout.Milliseconds()))
		if err == unix.EINTR {
			continue
		}
		if err != nil {
			return nil, err
		}
		break
	}

	ready := make([]readyEvent, 0, n)
	for _, ev := range events[:n] {
		// Data takes precedence: EPOLLIN and EPOLLHUP arrive together
		// when the peer closed with bytes still buffered, and those
		// bytes must be drained before the close is acted on.
		kind := readHangup
		if ev.Events&unix.EPOLLIN != 0 {
			kind = readData
		}
		ready = append(ready, readyEvent{fd: int(ev.Fd), kind: kind})
	}

	return ready, nil
}

// Close releases the epoll instance
func (p *epollPoller) Close() error {
	return unix.Close(p.epfd)
}

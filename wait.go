package parex

import (
	"errors"
	"syscall"
)

// Wait blocks until every launched process has been retired, meaning both
// its stdout and stderr endpoints reached end-of-stream. It is the only
// blocking operation; control yields solely inside the bounded readiness
// wait.
//
// Wait does not observe OS exit status to decide completion. Both pipes
// close when the process terminates, after the kernel has flushed whatever
// remained buffered, so pipe closure coincides with exit. A command that
// hands its pipes to a long-lived background child keeps Wait blocked until
// that child exits too.
//
// A failure of the readiness mechanism itself aborts Wait with a
// *MultiplexError; output captured up to that point stays available.
func (m *TaskManager) Wait() error {
	if m.closed {
		return ErrClosed
	}
	if len(m.procs) == 0 {
		return nil
	}

	if m.poller == nil {
		p, err := newPoller()
		if err != nil {
			return &MultiplexError{Err: err}
		}
		m.poller = p
	}

	buf := make([]byte, m.ReadChunkSize)

	for len(m.procs) > 0 {
		events, err := m.poller.Wait(m.watchSet(), m.PollTimeout)
		if err != nil {
			return &MultiplexError{Err: err}
		}

		for _, ev := range events {
			ep, ok := m.fds[ev.fd]
			if !ok {
				continue
			}

			if ev.kind == readData {
				n, err := ep.file.Read(buf)
				if n > 0 {
					m.appendOutput(ep.pid, buf[:n])
					continue
				}
				if err != nil && errors.Is(err, syscall.EAGAIN) {
					// Spurious wake; the endpoint is still live.
					continue
				}
				// Zero-length read: the peer closed permanently.
			}

			m.closeEndpoint(ep)
		}
	}

	return nil
}

// watchSet collects the still-registered stdout/stderr descriptors.
// Rebuilt every iteration, so retiring a process needs no unregister call.
// Stdin endpoints are never polled.
func (m *TaskManager) watchSet() []int {
	fds := make([]int, 0, len(m.fds))
	for fd, ep := range m.fds {
		if ep.role == RoleStdin {
			continue
		}
		fds = append(fds, fd)
	}
	return fds
}

// closeEndpoint handles end-of-stream for a read endpoint: drop it from the
// registry, close it, record the closure on its process, and retire the
// process once both read endpoints are gone.
func (m *TaskManager) closeEndpoint(ep endpoint) {
	delete(m.fds, ep.fd)
	_ = ep.file.Close()

	p, ok := m.procs[ep.pid]
	if !ok {
		return
	}

	p.markClosed(ep.role)
	m.logger.Debug("endpoint closed", "pid", ep.pid, "role", ep.role.String())

	if p.done() {
		m.retire(p)
	}
}

// retire removes a completed process from the tracked set and reaps it.
// Both pipes have closed, so the child has exited and the reap returns
// immediately. Exit status is deliberately discarded: a non-zero exit is
// ordinary data for the caller to interpret, not an error of the manager.
// The stdin endpoint stays registered until Close. The output buffer is
// never touched.
func (m *TaskManager) retire(p *process) {
	delete(m.procs, p.pid)
	_ = p.cmd.Wait()
	m.logger.Debug("process retired", "pid", p.pid)
}

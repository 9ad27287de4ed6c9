package parex

import (
	"os"
	"os/exec"
)

// process tracks one spawned command from spawn until both of its read
// endpoints reach end-of-stream.
type process struct {
	pid int
	cmd *exec.Cmd

	// stdin is the write end of the child's input pipe. It is registered
	// in the endpoint registry for bookkeeping but never enters the watch
	// set and is only closed by TaskManager.Close.
	stdin  *os.File
	stdout *os.File
	stderr *os.File

	// completion state, one flag per read endpoint
	stdoutClosed bool
	stderrClosed bool
}

// done reports whether both read endpoints have reached end-of-stream.
// Pipe closure coincides with process exit in practice: the kernel flushes
// buffered data before the reader observes the hang-up.
func (p *process) done() bool {
	return p.stdoutClosed && p.stderrClosed
}

// markClosed records end-of-stream for the endpoint with the given role.
// Stdin never closes through this path.
func (p *process) markClosed(role StreamRole) {
	switch role {
	case RoleStdout:
		p.stdoutClosed = true
	case RoleStderr:
		p.stderrClosed = true
	}
}

// endpoint is one registered end of a pipe connecting the manager to a
// spawned process, keyed in the registry by its file descriptor. The fd is
// captured at registration so the registry entry can still be deleted after
// the file has been closed.
type endpoint struct {
	fd   int
	file *os.File
	pid  int
	role StreamRole
}

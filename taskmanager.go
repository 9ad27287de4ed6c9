package parex

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/axondata/go-parex/internal/unix"
)

// TaskManager launches shell commands concurrently and joins on all of them
// with Wait, capturing each command's combined stdout and stderr.
//
// All mutable state is owned by the calling goroutine: the commands
// themselves run as separate OS processes, and the manager never starts a
// goroutine of its own. A TaskManager must therefore not be used from more
// than one goroutine at a time.
type TaskManager struct {
	// Workdir is the canonical working directory prefixed to every command
	Workdir string

	// Shell is the shell binary that interprets commands
	Shell string

	// PollTimeout bounds a single readiness wait inside Wait
	PollTimeout time.Duration

	// ReadChunkSize is the maximum number of bytes drained per readiness event
	ReadChunkSize int

	logger *slog.Logger

	// tracked processes, keyed by pid
	procs map[int]*process

	// endpoint registry, keyed by file descriptor
	fds map[int]endpoint

	// captured output, keyed by pid; created lazily on first byte and
	// never discarded, so results outlive their retired processes
	outputs map[int]*bytes.Buffer

	poller poller
	closed bool
}

// Option configures a TaskManager
type Option func(*TaskManager)

// WithShell sets the shell binary used to interpret commands
func WithShell(path string) Option {
	return func(m *TaskManager) {
		m.Shell = path
	}
}

// WithPollTimeout sets the bounded timeout for a single readiness wait
func WithPollTimeout(d time.Duration) Option {
	return func(m *TaskManager) {
		m.PollTimeout = d
	}
}

// WithReadChunkSize sets the maximum number of bytes drained per readiness event
func WithReadChunkSize(n int) Option {
	return func(m *TaskManager) {
		m.ReadChunkSize = n
	}
}

// WithLogger sets a structured logger for spawn and retirement events.
// The default discards everything.
func WithLogger(l *slog.Logger) Option {
	return func(m *TaskManager) {
		m.logger = l
	}
}

// New creates a TaskManager rooted at the given working directory.
// It verifies the directory exists and applies any provided options.
func New(workdir string, opts ...Option) (*TaskManager, error) {
	absPath, err := filepath.Abs(workdir)
	if err != nil {
		return nil, &ConfigError{Dir: workdir, Err: err}
	}

	m := &TaskManager{
		Workdir:       absPath,
		Shell:         DefaultShell,
		PollTimeout:   DefaultPollTimeout,
		ReadChunkSize: DefaultReadChunkSize,
		logger:        slog.New(slog.NewTextHandler(io.Discard, nil)),
		procs:         make(map[int]*process),
		fds:           make(map[int]endpoint),
		outputs:       make(map[int]*bytes.Buffer),
	}

	for _, opt := range opts {
		opt(m)
	}

	if m.PollTimeout <= 0 {
		m.PollTimeout = DefaultPollTimeout
	}
	if m.ReadChunkSize < 1 {
		m.ReadChunkSize = DefaultReadChunkSize
	}

	info, err := os.Stat(absPath)
	if err != nil {
		return nil, &ConfigError{Dir: absPath, Err: err}
	}
	if !info.IsDir() {
		return nil, &ConfigError{Dir: absPath, Err: ErrNotDirectory}
	}

	return m, nil
}

// Execute spawns the command through the shell, prefixed with a change into
// the working directory, and returns the OS pid immediately. The spawned
// process runs concurrently with the caller; Wait joins on it.
//
// Neither the directory nor the command is escaped: shell metacharacters in
// either are interpreted by the shell.
func (m *TaskManager) Execute(command string) (int, error) {
	if m.closed {
		return 0, &SpawnError{Command: command, Err: ErrClosed}
	}

	fullCmd := fmt.Sprintf("cd %s; %s", m.Workdir, command)
	m.logger.Debug("executing", "shell", m.Shell, "command", fullCmd)

	stdinR, stdinW, err := os.Pipe()
	if err != nil {
		return 0, &SpawnError{Command: command, Err: err}
	}

	stdoutR, stdoutW, err := os.Pipe()
	if err != nil {
		closeAll(stdinR, stdinW)
		return 0, &SpawnError{Command: command, Err: err}
	}

	stderrR, stderrW, err := os.Pipe()
	if err != nil {
		closeAll(stdinR, stdinW, stdoutR, stdoutW)
		return 0, &SpawnError{Command: command, Err: err}
	}

	cmd := exec.Command(m.Shell, "-c", fullCmd)
	cmd.Stdin = stdinR
	cmd.Stdout = stdoutW
	cmd.Stderr = stderrW

	if err := cmd.Start(); err != nil {
		closeAll(stdinR, stdinW, stdoutR, stdoutW, stderrR, stderrW)
		return 0, &SpawnError{Command: command, Err: err}
	}

	// The child holds duplicates of its three ends; release ours so
	// end-of-stream on stdout/stderr tracks the child alone.
	closeAll(stdinR, stdoutW, stderrW)

	// Drain reads must never block the control thread, even on a
	// spurious wake.
	_ = unix.SetNonblock(int(stdoutR.Fd()))
	_ = unix.SetNonblock(int(stderrR.Fd()))

	pid := cmd.Process.Pid

	m.procs[pid] = &process{
		pid:    pid,
		cmd:    cmd,
		stdin:  stdinW,
		stdout: stdoutR,
		stderr: stderrR,
	}

	// All three endpoints enter the registry; only stdout and stderr
	// ever enter the watch set. The stdin entry exists so the registry
	// reflects every open handle the manager owns.
	m.fds[int(stdinW.Fd())] = endpoint{fd: int(stdinW.Fd()), file: stdinW, pid: pid, role: RoleStdin}
	m.fds[int(stdoutR.Fd())] = endpoint{fd: int(stdoutR.Fd()), file: stdoutR, pid: pid, role: RoleStdout}
	m.fds[int(stderrR.Fd())] = endpoint{fd: int(stderrR.Fd()), file: stderrR, pid: pid, role: RoleStderr}

	return pid, nil
}

// Outputs returns a by-value snapshot of every captured buffer, keyed by
// pid. The snapshot is complete once Wait has returned; taken earlier it is
// a partial view of whatever has been drained so far.
func (m *TaskManager) Outputs() map[int][]byte {
	out := make(map[int][]byte, len(m.outputs))
	for pid, buf := range m.outputs {
		out[pid] = bytes.Clone(buf.Bytes())
	}
	return out
}

// Output returns the captured bytes for a single pid. The second return
// value is false if the process never produced output.
func (m *TaskManager) Output(pid int) ([]byte, bool) {
	buf, ok := m.outputs[pid]
	if !ok {
		return nil, false
	}
	return bytes.Clone(buf.Bytes()), true
}

// Running returns the number of processes not yet retired
func (m *TaskManager) Running() int {
	return len(m.procs)
}

// Close releases the poller and every endpoint still registered, including
// the stdin handles of processes that were never joined. Captured output
// remains readable. The manager is unusable afterwards.
func (m *TaskManager) Close() error {
	if m.closed {
		return nil
	}
	m.closed = true

	merr := &MultiError{}

	for _, ep := range m.fds {
		merr.Add(ep.file.Close())
	}
	m.fds = make(map[int]endpoint)

	for pid, p := range m.procs {
		delete(m.procs, pid)
		_ = p.cmd.Process.Release()
	}

	if m.poller != nil {
		merr.Add(m.poller.Close())
		m.poller = nil
	}

	return merr.Err()
}

// appendOutput appends drained bytes to the owning process's buffer,
// creating it on first use. Bytes from stdout and stderr interleave in the
// order they were observed ready.
func (m *TaskManager) appendOutput(pid int, b []byte) {
	buf, ok := m.outputs[pid]
	if !ok {
		buf = &bytes.Buffer{}
		m.outputs[pid] = buf
	}
	buf.Write(b)
}

func closeAll(files ...*os.File) {
	for _, f := range files {
		_ = f.Close()
	}
}

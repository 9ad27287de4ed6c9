package parex

import (
	"os"
	"os/exec"
	"testing"
)

func TestProcessCompletion(t *testing.T) {
	p := &process{pid: 1}

	if p.done() {
		t.Fatal("fresh process reported done")
	}

	p.markClosed(RoleStdout)
	if p.done() {
		t.Fatal("done after stdout alone")
	}

	p.markClosed(RoleStderr)
	if !p.done() {
		t.Fatal("not done after both read endpoints closed")
	}
}

func TestProcessStdinNeverCompletes(t *testing.T) {
	// Stdin closure must not count toward completion; the completion
	// test depends on only stdout and stderr ever closing.
	p := &process{pid: 1}

	p.markClosed(RoleStdin)
	p.markClosed(RoleStdin)
	if p.stdoutClosed || p.stderrClosed || p.done() {
		t.Fatal("stdin closure affected completion state")
	}
}

func TestCloseEndpointRetiresByDescriptor(t *testing.T) {
	m, err := New(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	// Wire a fake process straight into the registry: end-of-stream
	// handling must drop exactly the closed endpoint's descriptor key
	// and retire the process once both read endpoints are gone, while
	// the stdin entry stays registered.
	newEndpoint := func(pid int, role StreamRole) endpoint {
		t.Helper()
		r, w, err := os.Pipe()
		if err != nil {
			t.Fatal(err)
		}
		t.Cleanup(func() {
			_ = w.Close()
			_ = r.Close()
		})
		ep := endpoint{fd: int(r.Fd()), file: r, pid: pid, role: role}
		m.fds[ep.fd] = ep
		return ep
	}

	const pid = 4242
	stdin := newEndpoint(pid, RoleStdin)
	stdout := newEndpoint(pid, RoleStdout)
	stderr := newEndpoint(pid, RoleStderr)
	m.procs[pid] = &process{
		pid:    pid,
		cmd:    exec.Command("true"),
		stdin:  stdin.file,
		stdout: stdout.file,
		stderr: stderr.file,
	}

	m.closeEndpoint(stdout)
	if _, ok := m.fds[stdout.fd]; ok {
		t.Error("stdout descriptor still registered after close")
	}
	if _, ok := m.procs[pid]; !ok {
		t.Fatal("process retired with stderr still open")
	}

	m.closeEndpoint(stderr)
	if _, ok := m.fds[stderr.fd]; ok {
		t.Error("stderr descriptor still registered after close")
	}
	if _, ok := m.procs[pid]; ok {
		t.Error("process not retired after both read endpoints closed")
	}
	if _, ok := m.fds[stdin.fd]; !ok {
		t.Error("stdin endpoint dropped from registry by retirement")
	}
}

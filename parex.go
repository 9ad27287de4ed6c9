package parex

import "time"

// Defaults applied by New and overridable through Options
const (
	// DefaultShell is the shell used to interpret commands
	DefaultShell = "/bin/sh"

	// DefaultPollTimeout bounds a single readiness wait inside Wait.
	// A bounded timeout keeps the loop responsive as processes retire
	// and guards against a readiness mechanism missing an edge.
	DefaultPollTimeout = 500 * time.Millisecond

	// DefaultReadChunkSize is the maximum number of bytes drained from
	// an endpoint per readiness event
	DefaultReadChunkSize = 4096

	// LogFileMode is the mode for files written by WriteOutputs
	LogFileMode = 0o644
)

// StreamRole identifies which of a process's three standard streams an
// endpoint belongs to.
type StreamRole int

const (
	// RoleStdin is the process's standard input (write end held by the manager)
	RoleStdin StreamRole = iota
	// RoleStdout is the process's standard output (read end held by the manager)
	RoleStdout
	// RoleStderr is the process's standard error (read end held by the manager)
	RoleStderr
)

// Stream role string constants
const (
	roleStdinStr   = "stdin"
	roleStdoutStr  = "stdout"
	roleStderrStr  = "stderr"
	roleUnknownStr = "unknown"
)

// String returns the string representation of a StreamRole
func (r StreamRole) String() string {
	switch r {
	case RoleStdin:
		return roleStdinStr
	case RoleStdout:
		return roleStdoutStr
	case RoleStderr:
		return roleStderrStr
	default:
		return roleUnknownStr
	}
}

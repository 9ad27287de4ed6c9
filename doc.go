// Package parex executes multiple shell commands in parallel and waits for
// all of them to finish, capturing each command's combined stdout and stderr
// without deadlocking on full pipe buffers.
//
// The core is a single-threaded readiness-multiplexing loop over the raw
// pipe descriptors of every spawned process (epoll on Linux, poll on the
// BSDs and macOS). Naive sequential reads from several pipes deadlock as
// soon as one process fills a pipe the caller is not draining; the loop
// instead drains whichever pipes are ready, whatever the process count.
//
//	tm, err := parex.New(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer tm.Close()
//
//	tm.Execute("ls")
//	tm.Execute("ps auxw")
//	pid, _ := tm.Execute("who") // returns the OS pid
//
//	if err := tm.Wait(); err != nil {
//	    log.Fatal(err)
//	}
//
//	for pid, out := range tm.Outputs() {
//	    fmt.Printf("%d: %s", pid, out)
//	}
//
// # Semantics
//
// Execute never blocks on process completion: it spawns the command through
// a shell, with the working directory applied as a textual "cd <dir>; "
// prefix, and returns the pid immediately. Wait blocks until every launched
// process has closed both its stdout and stderr, which in practice
// coincides with process exit. A command's stdout and stderr bytes are
// merged into a single per-process buffer in the order they were observed
// ready; no distinction between the two streams is preserved.
//
// A non-zero exit or output on stderr is not an error of this package. It is
// ordinary data in the captured buffer, left to the caller to interpret.
//
// # Intended Use
//
// The package targets fire-off-N-commands-then-join workloads, such as
// deployment tooling running several long commands on a remote host without
// serializing on each one. For best results over SSH, combine with
// connection multiplexing (ControlMaster).
//
// It deliberately does not stream output while processes run, time out or
// cancel individual processes, or cap how many run at once. A TaskManager
// is not safe for concurrent use from multiple goroutines: concurrency
// lives in the spawned OS processes, not in the manager's own state.
package parex

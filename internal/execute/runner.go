package execute

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os/exec"
	"strings"
)

// Invocation is a fully-built external command: executable, ordered
// arguments, and the working directory to run in. Immutable once
// constructed.
type Invocation struct {
	Executable string
	Args       []string
	Dir        string
}

// CommandLine renders the invocation for the audit line at the top of
// every run log.
func (inv Invocation) CommandLine() string {
	return strings.Join(append([]string{inv.Executable}, inv.Args...), " ")
}

// Result describes how one invocation ended. Started distinguishes a
// process that ran to completion from one that could never be spawned;
// ExitCode is only meaningful when Started is true. Err holds the
// spawn error, if any.
type Result struct {
	Started  bool
	ExitCode int
	Err      error
}

// Succeeded reports whether the process ran and exited cleanly. A
// process killed by a signal reports a nonzero exit code and therefore
// fails, the same as a tool-reported error.
func (r Result) Succeeded() bool {
	return r.Started && r.ExitCode == 0
}

// Run executes the invocation with stdout and stderr merged into a
// single stream, forwarding each complete line to onLine in production
// order. It blocks until the process exits and then calls onComplete
// exactly once, strictly after the last line has been delivered. Run
// is meant to be called from a worker goroutine, never the UI thread.
//
// The sequence of lines is always: the command echo, the subprocess
// output verbatim, and a trailing exit-code summary. A spawn failure
// emits a failure line instead and completes with Started=false,
// without ever waiting on a process handle.
func Run(ctx context.Context, inv Invocation, onLine func(string), onComplete func(Result)) {
	onLine("Running: " + inv.CommandLine())

	cmd := exec.CommandContext(ctx, inv.Executable, inv.Args...) //nolint:gosec
	cmd.Dir = inv.Dir

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		onLine("Failed to start process: " + err.Error())
		onComplete(Result{Err: err})
		return
	}
	cmd.Stderr = cmd.Stdout

	if err := cmd.Start(); err != nil {
		onLine("Failed to start process: " + err.Error())
		onComplete(Result{Err: err})
		return
	}

	// A plain reader instead of a scanner: PyInstaller can emit
	// arbitrarily long lines, and a capped scanner would stop reading
	// mid-stream and leave the child blocked on a full pipe.
	reader := bufio.NewReader(stdout)
	for {
		line, err := reader.ReadString('\n')
		if len(line) > 0 {
			onLine(strings.TrimRight(line, "\r\n"))
		}
		if err != nil {
			if err != io.EOF {
				onLine("Error reading process output: " + err.Error())
				// Keep the pipe moving so Wait cannot block on an
				// unread stream.
				io.Copy(io.Discard, stdout) //nolint:errcheck
			}
			break
		}
	}

	// Wait's error for a nonzero exit is already captured by the exit
	// code; only the code drives classification.
	_ = cmd.Wait()
	code := cmd.ProcessState.ExitCode()

	onLine(fmt.Sprintf("Process finished with exit code: %d", code))
	onComplete(Result{Started: true, ExitCode: code})
}

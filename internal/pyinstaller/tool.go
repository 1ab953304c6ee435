// Package pyinstaller adapts the PyInstaller command-line tool:
// availability probing, pip installation, argument construction, and
// the build artifacts it leaves behind.
package pyinstaller

import (
	"context"
	"fmt"
	"os/exec"
	"strings"

	"pyforge/internal/execute"
	"pyforge/internal/request"
)

// Tool wraps one Python interpreter and the PyInstaller module run
// through it.
type Tool struct {
	python string
	runner func(ctx context.Context, name string, args ...string) error
}

// Option configures the tool.
type Option func(*Tool)

// WithPython overrides the interpreter used to run pip and PyInstaller.
func WithPython(python string) Option {
	return func(t *Tool) {
		if python != "" {
			t.python = python
		}
	}
}

// WithCommandRunner sets a custom command runner (for testing).
func WithCommandRunner(runner func(ctx context.Context, name string, args ...string) error) Option {
	return func(t *Tool) {
		t.runner = runner
	}
}

// New constructs a tool using the first Python interpreter found on
// PATH when none is given.
func New(opts ...Option) *Tool {
	t := &Tool{python: DefaultPython()}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// DefaultPython locates a Python interpreter on PATH, preferring
// python3. Falls back to the bare name so a later spawn failure is
// reported through the normal path.
func DefaultPython() string {
	for _, candidate := range []string{"python3", "python"} {
		if path, err := exec.LookPath(candidate); err == nil {
			return path
		}
	}
	return "python3"
}

// Python returns the interpreter path the tool was built with.
func (t *Tool) Python() string {
	return t.python
}

// BuildInvocation derives the PyInstaller command line from a
// validated request. Token order is fixed: flags, then the name
// option, then the optional icon option, then the source file as the
// final positional argument.
func (t *Tool) BuildInvocation(req *request.Request) execute.Invocation {
	args := []string{"-m", "PyInstaller"}
	if req.OneFile {
		args = append(args, "--onefile")
	}
	if req.Windowed {
		args = append(args, "--noconsole")
	}
	args = append(args, "--name", req.OutputName)
	if req.IconUsable() {
		args = append(args, "--icon", req.IconPath)
	}
	args = append(args, req.SourcePath)

	return execute.Invocation{
		Executable: t.python,
		Args:       args,
		Dir:        req.SourceDir(),
	}
}

// Ensure checks that PyInstaller is importable and installs it via pip
// when it is not. Progress is reported through the sink; the return
// value gates the rest of the workflow. Installer failures never
// escape as errors, they become a reported false.
func (t *Tool) Ensure(ctx context.Context, sink func(string)) bool {
	if err := t.run(ctx, t.python, "-m", "PyInstaller", "--version"); err == nil {
		sink("PyInstaller already installed.")
		return true
	}

	sink("PyInstaller not found. Installing via pip...")
	if err := t.run(ctx, t.python, "-m", "pip", "install", "pyinstaller"); err != nil {
		sink("Failed to install PyInstaller: " + err.Error())
		return false
	}
	sink("PyInstaller installed successfully.")
	return true
}

// run executes a command, using the custom runner if set.
func (t *Tool) run(ctx context.Context, name string, args ...string) error {
	if t.runner != nil {
		return t.runner(ctx, name, args...)
	}
	cmd := exec.CommandContext(ctx, name, args...) //nolint:gosec
	if output, err := cmd.CombinedOutput(); err != nil {
		detail := strings.TrimSpace(string(output))
		if detail == "" {
			return fmt.Errorf("%s: %w", name, err)
		}
		return fmt.Errorf("%s: %w: %s", name, err, detail)
	}
	return nil
}

package pyinstaller

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"pyforge/internal/request"
)

func validRequest(t *testing.T, name string) *request.Request {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("print('hi')\n"), 0o644); err != nil {
		t.Fatalf("write source: %v", err)
	}
	req := &request.Request{SourcePath: path}
	if err := req.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
	return req
}

func TestBuildInvocationTokenOrder(t *testing.T) {
	req := validRequest(t, "app.py")
	req.OutputName = "app"
	req.OneFile = true
	req.Windowed = false
	req.IconPath = ""

	tool := New(WithPython("python3"))
	inv := tool.BuildInvocation(req)

	want := []string{"-m", "PyInstaller", "--onefile", "--name", "app", req.SourcePath}
	if !reflect.DeepEqual(inv.Args, want) {
		t.Fatalf("expected args %v, got %v", want, inv.Args)
	}
	if inv.Executable != "python3" {
		t.Fatalf("unexpected executable: %s", inv.Executable)
	}
	if inv.Dir != req.SourceDir() {
		t.Fatalf("expected working dir %q, got %q", req.SourceDir(), inv.Dir)
	}
}

func TestBuildInvocationDefaultedNameAndWindowed(t *testing.T) {
	req := validRequest(t, "tool.py")
	req.OneFile = true
	req.Windowed = true

	tool := New(WithPython("python3"))
	inv := tool.BuildInvocation(req)

	want := []string{"-m", "PyInstaller", "--onefile", "--noconsole", "--name", "tool", req.SourcePath}
	if !reflect.DeepEqual(inv.Args, want) {
		t.Fatalf("expected args %v, got %v", want, inv.Args)
	}
	if inv.Args[len(inv.Args)-1] != req.SourcePath {
		t.Fatalf("expected source path as final argument")
	}
}

func TestBuildInvocationIncludesExistingIcon(t *testing.T) {
	req := validRequest(t, "app.py")
	icon := filepath.Join(t.TempDir(), "app.ico")
	if err := os.WriteFile(icon, []byte("ico"), 0o644); err != nil {
		t.Fatalf("write icon: %v", err)
	}
	req.IconPath = icon

	tool := New(WithPython("python3"))
	inv := tool.BuildInvocation(req)

	want := []string{"-m", "PyInstaller", "--name", "app", "--icon", icon, req.SourcePath}
	if !reflect.DeepEqual(inv.Args, want) {
		t.Fatalf("expected args %v, got %v", want, inv.Args)
	}
}

func TestBuildInvocationSkipsMissingIcon(t *testing.T) {
	req := validRequest(t, "app.py")
	req.IconPath = filepath.Join(t.TempDir(), "absent.ico")

	tool := New(WithPython("python3"))
	inv := tool.BuildInvocation(req)

	for _, arg := range inv.Args {
		if arg == "--icon" {
			t.Fatal("expected missing icon to be skipped")
		}
	}
}

func TestEnsureAlreadyInstalled(t *testing.T) {
	tool := New(WithCommandRunner(func(ctx context.Context, name string, args ...string) error {
		return nil
	}))

	var lines []string
	if !tool.Ensure(context.Background(), func(line string) { lines = append(lines, line) }) {
		t.Fatal("expected Ensure to succeed")
	}
	if len(lines) != 1 || lines[0] != "PyInstaller already installed." {
		t.Fatalf("unexpected progress lines: %v", lines)
	}
}

func TestEnsureInstallsWhenMissing(t *testing.T) {
	calls := [][]string{}
	tool := New(WithCommandRunner(func(ctx context.Context, name string, args ...string) error {
		calls = append(calls, append([]string{name}, args...))
		if len(calls) == 1 {
			return errors.New("no module named PyInstaller")
		}
		return nil
	}))

	var lines []string
	if !tool.Ensure(context.Background(), func(line string) { lines = append(lines, line) }) {
		t.Fatal("expected Ensure to succeed after install")
	}
	if len(calls) != 2 {
		t.Fatalf("expected probe then install, got %d calls", len(calls))
	}
	install := calls[1]
	want := []string{tool.Python(), "-m", "pip", "install", "pyinstaller"}
	if !reflect.DeepEqual(install, want) {
		t.Fatalf("expected install command %v, got %v", want, install)
	}
	last := lines[len(lines)-1]
	if last != "PyInstaller installed successfully." {
		t.Fatalf("unexpected final line: %q", last)
	}
}

func TestEnsureReportsInstallFailure(t *testing.T) {
	tool := New(WithCommandRunner(func(ctx context.Context, name string, args ...string) error {
		return errors.New("pip exploded")
	}))

	var lines []string
	if tool.Ensure(context.Background(), func(line string) { lines = append(lines, line) }) {
		t.Fatal("expected Ensure to fail")
	}
	last := lines[len(lines)-1]
	if last != "Failed to install PyInstaller: pip exploded" {
		t.Fatalf("unexpected failure line: %q", last)
	}
}

package workflow

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"pyforge/internal/history"
	"pyforge/internal/logging"
	"pyforge/internal/pyinstaller"
	"pyforge/internal/request"
)

// stubPython answers the PyInstaller version probe and then behaves
// like a build: prints a line per argument and exits with the code in
// the PYFORGE_TEST_EXIT file, if present.
const stubPythonScript = `#!/bin/sh
if [ "$3" = "--version" ]; then
	exit 0
fi
echo "building $@"
if [ -n "$PYFORGE_TEST_EXIT" ]; then
	exit "$PYFORGE_TEST_EXIT"
fi
exit 0
`

type harness struct {
	req   *request.Request
	orc   *Orchestrator
	store *history.Store
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	dir := t.TempDir()

	src := filepath.Join(dir, "tool.py")
	if err := os.WriteFile(src, []byte("print('hi')\n"), 0o644); err != nil {
		t.Fatalf("write source: %v", err)
	}

	stub := filepath.Join(t.TempDir(), "python3")
	if err := os.WriteFile(stub, []byte(stubPythonScript), 0o755); err != nil {
		t.Fatalf("write stub python: %v", err)
	}

	store, err := history.Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("open history: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	req := &request.Request{SourcePath: src, OneFile: true}
	if err := req.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}

	tool := pyinstaller.New(pyinstaller.WithPython(stub))
	return &harness{
		req:   req,
		orc:   New(tool, logging.Nop(), store),
		store: store,
	}
}

func (h *harness) convert(t *testing.T) (lines []string, outcomes []bool, linesAtDone int) {
	t.Helper()
	h.orc.Convert(context.Background(), h.req,
		func(line string) { lines = append(lines, line) },
		func(ok bool) {
			outcomes = append(outcomes, ok)
			linesAtDone = len(lines)
		},
	)
	return lines, outcomes, linesAtDone
}

func TestConvertSuccess(t *testing.T) {
	h := newHarness(t)

	// Stale artifacts from a previous run.
	dir := h.req.SourceDir()
	if err := os.MkdirAll(filepath.Join(dir, "build"), 0o755); err != nil {
		t.Fatalf("mkdir build: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "tool.spec"), []byte("# spec"), 0o644); err != nil {
		t.Fatalf("write spec: %v", err)
	}

	lines, outcomes, linesAtDone := h.convert(t)

	if len(outcomes) != 1 || !outcomes[0] {
		t.Fatalf("expected exactly one successful done callback, got %v", outcomes)
	}
	if linesAtDone != len(lines) {
		t.Fatalf("done fired before the last log line (%d of %d)", linesAtDone, len(lines))
	}

	joined := strings.Join(lines, "\n")
	for _, want := range []string{
		"=== Starting conversion ===",
		"PyInstaller already installed.",
		"Removed previous 'build' folder.",
		"Removed previous .spec file.",
		"Invoking PyInstaller...",
		"Process finished with exit code: 0",
		"Done. Check the executable at:",
		pyinstaller.ArtifactPath(dir, "tool"),
	} {
		if !strings.Contains(joined, want) {
			t.Fatalf("expected log to contain %q, got:\n%s", want, joined)
		}
	}

	if _, err := os.Stat(filepath.Join(dir, "build")); !os.IsNotExist(err) {
		t.Fatal("expected stale build directory to be removed")
	}

	records, err := h.store.Recent(10)
	if err != nil {
		t.Fatalf("read history: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected one history record, got %d", len(records))
	}
	rec := records[0]
	if !rec.Succeeded || rec.ExitCode != 0 || rec.OutputName != "tool" {
		t.Fatalf("unexpected history record: %#v", rec)
	}
}

func TestConvertToolFailure(t *testing.T) {
	h := newHarness(t)
	t.Setenv("PYFORGE_TEST_EXIT", "2")

	lines, outcomes, linesAtDone := h.convert(t)

	if len(outcomes) != 1 || outcomes[0] {
		t.Fatalf("expected exactly one failed done callback, got %v", outcomes)
	}
	if linesAtDone != len(lines) {
		t.Fatalf("done fired before the last log line")
	}

	joined := strings.Join(lines, "\n")
	if !strings.Contains(joined, "Process finished with exit code: 2") {
		t.Fatalf("expected exit code 2 in log, got:\n%s", joined)
	}
	if !strings.Contains(joined, "PyInstaller reported an error. See log above.") {
		t.Fatalf("expected failure notice in log, got:\n%s", joined)
	}
	if strings.Contains(joined, "Done. Check the executable at:") {
		t.Fatal("must not report an artifact path on failure")
	}

	records, err := h.store.Recent(10)
	if err != nil {
		t.Fatalf("read history: %v", err)
	}
	if len(records) != 1 || records[0].Succeeded || records[0].ExitCode != 2 {
		t.Fatalf("unexpected history records: %#v", records)
	}
}

func TestConvertEnsureFailureStopsBeforeSpawn(t *testing.T) {
	h := newHarness(t)
	tool := pyinstaller.New(
		pyinstaller.WithPython("python3"),
		pyinstaller.WithCommandRunner(func(ctx context.Context, name string, args ...string) error {
			return errors.New("no network")
		}),
	)
	h.orc = New(tool, logging.Nop(), h.store)

	lines, outcomes, _ := h.convert(t)

	if len(outcomes) != 1 || outcomes[0] {
		t.Fatalf("expected a single failed done callback, got %v", outcomes)
	}
	joined := strings.Join(lines, "\n")
	if !strings.Contains(joined, "Cannot continue without PyInstaller.") {
		t.Fatalf("expected setup failure line, got:\n%s", joined)
	}
	if strings.Contains(joined, "Running:") {
		t.Fatal("no process must be spawned after a setup failure")
	}

	records, err := h.store.Recent(10)
	if err != nil {
		t.Fatalf("read history: %v", err)
	}
	if len(records) != 1 || records[0].ExitCode != -1 {
		t.Fatalf("expected a never-started record with exit code -1, got %#v", records)
	}
}

func TestConvertReleasesLock(t *testing.T) {
	h := newHarness(t)

	_, first, _ := h.convert(t)
	_, second, _ := h.convert(t)

	if len(first) != 1 || !first[0] {
		t.Fatalf("first conversion should succeed, got %v", first)
	}
	if len(second) != 1 || !second[0] {
		t.Fatalf("second conversion should succeed after lock release, got %v", second)
	}
}

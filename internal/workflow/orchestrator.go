// Package workflow runs one conversion end to end: dependency gate,
// artifact cleanup, PyInstaller invocation, and result reporting.
package workflow

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"pyforge/internal/execute"
	"pyforge/internal/history"
	"pyforge/internal/logging"
	"pyforge/internal/pyinstaller"
	"pyforge/internal/request"
)

const lockFileName = ".pyforge.lock"

// Orchestrator composes the tool adapter and the process runner into
// the linear conversion workflow. One Convert call handles one attempt.
type Orchestrator struct {
	tool  *pyinstaller.Tool
	log   *logging.Logger
	store *history.Store
}

// New builds an orchestrator. The history store is optional; a nil
// store disables recording.
func New(tool *pyinstaller.Tool, log *logging.Logger, store *history.Store) *Orchestrator {
	return &Orchestrator{tool: tool, log: log, store: store}
}

// Convert runs one conversion attempt for an already-validated
// request. It blocks until the attempt ends and is meant to run on a
// worker goroutine; all progress goes to sink in order, and done fires
// exactly once, strictly after the last line, on every exit path.
func (o *Orchestrator) Convert(ctx context.Context, req *request.Request, sink func(string), done func(bool)) {
	jobID := uuid.NewString()
	startedAt := time.Now().UTC()

	completed := false
	finish := func(ok bool) {
		if completed {
			return
		}
		completed = true
		o.log.Info("workflow", "conversion finished", map[string]interface{}{
			"job_id":    jobID,
			"succeeded": ok,
		})
		done(ok)
	}
	defer func() {
		if r := recover(); r != nil {
			sink(fmt.Sprintf("Unexpected error: %v", r))
			o.log.Error("workflow", fmt.Errorf("conversion panic: %v", r), map[string]interface{}{
				"job_id": jobID,
			})
			finish(false)
		}
	}()

	sink("=== Starting conversion ===")
	o.log.Info("workflow", "conversion started", map[string]interface{}{
		"job_id":      jobID,
		"source":      req.SourcePath,
		"output_name": req.OutputName,
		"one_file":    req.OneFile,
		"windowed":    req.Windowed,
	})

	// Only one conversion may touch a source directory's build/ and
	// dist/ at a time.
	lock := flock.New(filepath.Join(req.SourceDir(), lockFileName))
	locked, err := lock.TryLock()
	if err != nil {
		sink(fmt.Sprintf("Warning: could not lock source directory: %v", err))
	} else if !locked {
		sink("Another conversion is already running in this directory.")
		finish(false)
		return
	} else {
		defer lock.Unlock()
	}

	if !o.tool.Ensure(ctx, sink) {
		sink("Cannot continue without PyInstaller.")
		o.record(jobID, req, execute.Result{}, startedAt)
		finish(false)
		return
	}

	inv := o.tool.BuildInvocation(req)
	pyinstaller.CleanArtifacts(req.SourceDir(), req.OutputName, sink)

	sink("Invoking PyInstaller...")
	execute.Run(ctx, inv, sink, func(res execute.Result) {
		if res.Succeeded() {
			sink("Done. Check the executable at:")
			sink(pyinstaller.ArtifactPath(req.SourceDir(), req.OutputName))
		} else {
			sink("PyInstaller reported an error. See log above.")
		}
		o.record(jobID, req, res, startedAt)
		finish(res.Succeeded())
	})
}

// record stores the attempt in the history database. Recording is
// best-effort; a store failure is logged and never affects the run.
func (o *Orchestrator) record(jobID string, req *request.Request, res execute.Result, startedAt time.Time) {
	if o.store == nil {
		return
	}
	code := res.ExitCode
	if !res.Started {
		code = -1
	}
	rec := history.Record{
		ID:         jobID,
		SourcePath: req.SourcePath,
		OutputName: req.OutputName,
		Succeeded:  res.Succeeded(),
		ExitCode:   code,
		StartedAt:  startedAt,
		FinishedAt: time.Now().UTC(),
	}
	if err := o.store.Add(rec); err != nil {
		o.log.Warning("workflow", "could not record build history", map[string]interface{}{
			"job_id": jobID,
			"error":  err.Error(),
		})
	}
}

package jobs

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"findoc/internal/analysis"
)

// Store is the part of the job store a worker needs.
type Store interface {
	Claim(ctx context.Context, workerID string) (*Job, error)
	MarkSucceeded(ctx context.Context, id string, result json.RawMessage) error
	MarkFailed(ctx context.Context, id, errMsg string) error
}

// Analyzer runs the external agent call for one job kind. The call is the
// only long-latency operation in the system and happens exclusively inside
// a worker.
type Analyzer interface {
	Analyze(ctx context.Context, kind analysis.Kind, query, path string) (analysis.Result, error)
}

type Worker struct {
	ID       string
	Store    Store
	Analyzer Analyzer

	// DataDir is where job payloads are materialized for the agent call.
	DataDir string
	Poll    time.Duration
	Logger  *slog.Logger
}

// Run claims and executes jobs until ctx is cancelled. Analysis failures
// become FAILED jobs; they never take the loop down.
func (w *Worker) Run(ctx context.Context) {
	poll := w.Poll
	if poll <= 0 {
		poll = 800 * time.Millisecond
	}
	ticker := time.NewTicker(poll)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			job, err := w.Store.Claim(ctx, w.ID)
			if err != nil {
				w.logger().Error("claim failed", "worker", w.ID, "error", err)
				continue
			}
			if job == nil {
				continue
			}
			w.Handle(ctx, job)
		}
	}
}

// Handle runs one claimed job to a terminal state.
func (w *Worker) Handle(ctx context.Context, job *Job) {
	log := w.logger().With("worker", w.ID, "job", job.ID, "kind", job.Kind)

	result, err := w.process(ctx, job)
	if err != nil {
		log.Warn("job failed", "error", err)
		if mErr := w.Store.MarkFailed(ctx, job.ID, err.Error()); mErr != nil {
			log.Error("recording failure state failed", "error", mErr)
		}
		return
	}

	raw, err := json.Marshal(result)
	if err != nil {
		_ = w.Store.MarkFailed(ctx, job.ID, "serializing result: "+err.Error())
		return
	}
	if err := w.Store.MarkSucceeded(ctx, job.ID, raw); err != nil {
		log.Error("recording success state failed", "error", err)
		return
	}
	log.Info("job succeeded")
}

// process materializes the payload and runs the agent call. A panic inside
// the external call surfaces as an ordinary error.
func (w *Worker) process(ctx context.Context, job *Job) (result analysis.Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("analysis panicked: %v", r)
		}
	}()

	kind, err := analysis.ParseKind(job.Kind)
	if err != nil {
		return analysis.Result{}, err
	}

	path, cleanup, err := w.materialize(job)
	if err != nil {
		return analysis.Result{}, err
	}
	defer cleanup()

	return w.Analyzer.Analyze(ctx, kind, job.Query, path)
}

// materialize writes the payload under a job-unique name so concurrent
// workers never collide, and returns a cleanup that always runs after the
// agent call. Cleanup failures are logged, never escalated.
func (w *Worker) materialize(job *Job) (string, func(), error) {
	if err := os.MkdirAll(w.DataDir, 0o755); err != nil {
		return "", nil, fmt.Errorf("creating data dir: %w", err)
	}
	path := filepath.Join(w.DataDir, job.ID+"_"+filepath.Base(job.Filename))
	if err := os.WriteFile(path, job.Payload, 0o600); err != nil {
		return "", nil, fmt.Errorf("writing temp document: %w", err)
	}
	cleanup := func() {
		if err := os.Remove(path); err != nil {
			w.logger().Warn("temp document cleanup failed", "path", path, "error", err)
		}
	}
	return path, cleanup, nil
}

func (w *Worker) logger() *slog.Logger {
	if w.Logger != nil {
		return w.Logger
	}
	return slog.Default()
}

package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"findoc/internal/analysis"
)

type memStore struct {
	mu        sync.Mutex
	pending   []*Job
	succeeded map[string]json.RawMessage
	failed    map[string]string
}

func newMemStore(jobs ...*Job) *memStore {
	return &memStore{
		pending:   jobs,
		succeeded: map[string]json.RawMessage{},
		failed:    map[string]string{},
	}
}

func (s *memStore) Claim(ctx context.Context, workerID string) (*Job, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.pending) == 0 {
		return nil, nil
	}
	job := s.pending[0]
	s.pending = s.pending[1:]
	job.Status = StatusRunning
	job.LockedBy = &workerID
	return job, nil
}

func (s *memStore) MarkSucceeded(ctx context.Context, id string, result json.RawMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.succeeded[id] = result
	return nil
}

func (s *memStore) MarkFailed(ctx context.Context, id, errMsg string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failed[id] = errMsg
	return nil
}

func (s *memStore) terminalCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.succeeded) + len(s.failed)
}

type fakeAnalyzer struct {
	result analysis.Result
	err    error
	panics bool

	mu    sync.Mutex
	calls []string // materialized paths seen
}

func (a *fakeAnalyzer) Analyze(ctx context.Context, kind analysis.Kind, query, path string) (analysis.Result, error) {
	a.mu.Lock()
	a.calls = append(a.calls, path)
	a.mu.Unlock()
	if a.panics {
		panic("model exploded")
	}
	if _, err := os.Stat(path); err != nil {
		return analysis.Result{}, errors.New("document not materialized: " + err.Error())
	}
	return a.result, a.err
}

func testJob(id string) *Job {
	return &Job{
		ID:       id,
		Kind:     string(analysis.KindRisk),
		Query:    "q",
		Filename: "doc.pdf",
		Payload:  []byte("%PDF-1.4 fake"),
		Status:   StatusRunning,
	}
}

func TestWorker_HandleSuccess(t *testing.T) {
	store := newMemStore()
	az := &fakeAnalyzer{result: analysis.Result{Text: "risk report"}}
	w := &Worker{ID: "w1", Store: store, Analyzer: az, DataDir: t.TempDir()}

	w.Handle(context.Background(), testJob("j1"))

	require.Contains(t, store.succeeded, "j1")
	assert.JSONEq(t, `{"text":"risk report"}`, string(store.succeeded["j1"]))
	assert.Empty(t, store.failed)

	// temp document is gone after the run
	require.Len(t, az.calls, 1)
	_, err := os.Stat(az.calls[0])
	assert.True(t, os.IsNotExist(err))
}

func TestWorker_HandleAnalyzerError(t *testing.T) {
	store := newMemStore()
	az := &fakeAnalyzer{err: errors.New("agent run: model unavailable")}
	w := &Worker{ID: "w1", Store: store, Analyzer: az, DataDir: t.TempDir()}

	w.Handle(context.Background(), testJob("j2"))

	assert.Empty(t, store.succeeded)
	require.Contains(t, store.failed, "j2")
	assert.Contains(t, store.failed["j2"], "model unavailable")

	require.Len(t, az.calls, 1)
	_, err := os.Stat(az.calls[0])
	assert.True(t, os.IsNotExist(err), "temp document must be cleaned up on failure too")
}

func TestWorker_HandlePanicBecomesFailure(t *testing.T) {
	store := newMemStore()
	w := &Worker{ID: "w1", Store: store, Analyzer: &fakeAnalyzer{panics: true}, DataDir: t.TempDir()}

	w.Handle(context.Background(), testJob("j3"))

	require.Contains(t, store.failed, "j3")
	assert.Contains(t, store.failed["j3"], "analysis panicked")
}

func TestWorker_HandleUnknownKind(t *testing.T) {
	store := newMemStore()
	w := &Worker{ID: "w1", Store: store, Analyzer: &fakeAnalyzer{}, DataDir: t.TempDir()}

	job := testJob("j4")
	job.Kind = "summarize"
	w.Handle(context.Background(), job)

	require.Contains(t, store.failed, "j4")
	assert.Contains(t, store.failed["j4"], "unknown analysis kind")
}

func TestWorker_RunDrainsQueueAndStops(t *testing.T) {
	store := newMemStore(testJob("a"), testJob("b"))
	az := &fakeAnalyzer{result: analysis.Result{Text: "ok"}}
	w := &Worker{ID: "w1", Store: store, Analyzer: az, DataDir: t.TempDir(), Poll: 5 * time.Millisecond}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		w.Run(ctx)
		close(done)
	}()

	require.Eventually(t, func() bool { return store.terminalCount() == 2 }, 2*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("worker did not stop on context cancellation")
	}
}

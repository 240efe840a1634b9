package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"findoc/internal/jobs"
)

type ResultHandler struct {
	Queue Queue
}

type resultResp struct {
	JobID  string          `json:"job_id"`
	Status string          `json:"status"`
	Result json.RawMessage `json:"result,omitempty"`
	Error  *string         `json:"error,omitempty"`
}

// Get reports the current state of a job. Polling a terminal job keeps
// returning the same terminal answer.
func (h *ResultHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "jobID")

	job, err := h.Queue.Get(r.Context(), id)
	if errors.Is(err, jobs.ErrNotFound) {
		http.Error(w, "job not found", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, "server error", http.StatusInternalServerError)
		return
	}

	resp := resultResp{JobID: job.ID}
	switch job.Status {
	case jobs.StatusPending:
		resp.Status = "pending"
	case jobs.StatusRunning:
		resp.Status = "running"
	case jobs.StatusSucceeded:
		resp.Status = "success"
		resp.Result = job.Result
	case jobs.StatusFailed:
		resp.Status = "failed"
		resp.Error = job.LastError
	default:
		resp.Status = strings.ToLower(job.Status)
	}

	writeJSON(w, http.StatusOK, resp)
}

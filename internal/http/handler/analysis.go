package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"findoc/internal/analysis"
	"findoc/internal/jobs"
)

// Queue is the job submission/status surface the gateway needs.
type Queue interface {
	Enqueue(ctx context.Context, kind analysis.Kind, query, filename string, payload []byte) (string, error)
	Get(ctx context.Context, id string) (*jobs.Job, error)
}

type AnalysisHandler struct {
	Queue Queue

	// DefaultFilePath backs submissions that carry no upload.
	DefaultFilePath string

	Logger *slog.Logger
}

type submitResp struct {
	Status           string  `json:"status"`
	JobID            string  `json:"job_id"`
	Query            string  `json:"query"`
	UsingDefaultFile bool    `json:"using_default_file"`
	UploadedFilename *string `json:"uploaded_filename"`
}

// Submit returns the handler for one analysis kind. Submission only
// validates input and enqueues; it never waits for the analysis itself.
func (h *AnalysisHandler) Submit(kind analysis.Kind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := strings.TrimSpace(r.FormValue("query"))
		if query == "" {
			query = kind.DefaultQuery()
		}

		payload, filename, uploadedName, ok := h.resolveDocument(w, r)
		if !ok {
			return
		}

		jobID, err := h.Queue.Enqueue(r.Context(), kind, query, filename, payload)
		if err != nil {
			h.logger().Error("enqueue failed", "kind", kind, "error", err)
			http.Error(w, "server error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, submitResp{
			Status:           "submitted",
			JobID:            jobID,
			Query:            query,
			UsingDefaultFile: uploadedName == nil,
			UploadedFilename: uploadedName,
		})
	}
}

// resolveDocument reads the uploaded file, or falls back to the configured
// default document when the form carries none. Uploads get a fresh unique
// filename so concurrent jobs never collide on disk.
func (h *AnalysisHandler) resolveDocument(w http.ResponseWriter, r *http.Request) (payload []byte, filename string, uploadedName *string, ok bool) {
	file, header, err := r.FormFile("file")
	switch {
	case err == nil:
		defer file.Close()
		content, readErr := io.ReadAll(file)
		if readErr != nil {
			http.Error(w, "error reading uploaded file", http.StatusInternalServerError)
			return nil, "", nil, false
		}
		if len(content) == 0 {
			http.Error(w, "uploaded file is empty", http.StatusBadRequest)
			return nil, "", nil, false
		}
		name := header.Filename
		return content, "financial_document_" + uuid.NewString() + ".pdf", &name, true

	case errors.Is(err, http.ErrMissingFile), errors.Is(err, http.ErrNotMultipart):
		content, readErr := os.ReadFile(h.DefaultFilePath)
		if errors.Is(readErr, fs.ErrNotExist) {
			http.Error(w, "default file not found at "+h.DefaultFilePath, http.StatusNotFound)
			return nil, "", nil, false
		}
		if readErr != nil {
			http.Error(w, "error reading default file", http.StatusInternalServerError)
			return nil, "", nil, false
		}
		return content, filepath.Base(h.DefaultFilePath), nil, true

	default:
		http.Error(w, "invalid upload", http.StatusBadRequest)
		return nil, "", nil, false
	}
}

func (h *AnalysisHandler) logger() *slog.Logger {
	if h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

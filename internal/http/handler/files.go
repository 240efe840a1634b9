package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"findoc/internal/analysis"
	"findoc/internal/document"
)

// DocumentStore is the stored-upload surface the files API needs.
type DocumentStore interface {
	Create(ctx context.Context, in document.CreateInput) (*document.Document, error)
	List(ctx context.Context) ([]document.Document, error)
	Get(ctx context.Context, id string) (*document.Document, error)
	Delete(ctx context.Context, id string) error
	AppendJobIDs(ctx context.Context, id string, jobIDs ...string) error
}

type FilesHandler struct {
	Docs  DocumentStore
	Queue Queue
}

type documentDTO struct {
	FileID      string    `json:"file_id"`
	Name        string    `json:"name"`
	Size        int64     `json:"size"`
	ContentType string    `json:"content_type,omitempty"`
	JobIDs      []string  `json:"job_ids"`
	UploadedAt  time.Time `json:"uploaded_at"`
}

func toDocumentDTO(d document.Document) documentDTO {
	return documentDTO{
		FileID:      d.ID,
		Name:        d.Name,
		Size:        d.Size,
		ContentType: d.ContentType,
		JobIDs:      d.JobIDs,
		UploadedAt:  d.UploadedAt,
	}
}

func (h *FilesHandler) Upload(w http.ResponseWriter, r *http.Request) {
	file, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "no file uploaded", http.StatusBadRequest)
		return
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		http.Error(w, "error reading uploaded file", http.StatusInternalServerError)
		return
	}
	if len(content) == 0 {
		http.Error(w, "uploaded file is empty", http.StatusBadRequest)
		return
	}

	doc, err := h.Docs.Create(r.Context(), document.CreateInput{
		Name:        header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Content:     content,
	})
	if err != nil {
		http.Error(w, "server error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"message": "File uploaded",
		"file":    toDocumentDTO(*doc),
	})
}

func (h *FilesHandler) List(w http.ResponseWriter, r *http.Request) {
	docs, err := h.Docs.List(r.Context())
	if err != nil {
		http.Error(w, "server error", http.StatusInternalServerError)
		return
	}

	out := make([]documentDTO, 0, len(docs))
	for _, d := range docs {
		out = append(out, toDocumentDTO(d))
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *FilesHandler) Get(w http.ResponseWriter, r *http.Request) {
	doc, err := h.Docs.Get(r.Context(), chi.URLParam(r, "fileID"))
	if errors.Is(err, document.ErrNotFound) {
		http.Error(w, "file not found", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, "server error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, toDocumentDTO(*doc))
}

func (h *FilesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	err := h.Docs.Delete(r.Context(), chi.URLParam(r, "fileID"))
	if errors.Is(err, document.ErrNotFound) {
		http.Error(w, "file not found", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, "server error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "File deleted"})
}

type analyzeAllReq struct {
	Query string `json:"query"`
}

type analyzeAllItem struct {
	Kind   string `json:"kind"`
	Status string `json:"status"`
	JobID  string `json:"job_id"`
	Query  string `json:"query"`
}

// Analyze fans out one job of every kind over a stored document.
func (h *FilesHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	fileID := chi.URLParam(r, "fileID")

	doc, err := h.Docs.Get(r.Context(), fileID)
	if errors.Is(err, document.ErrNotFound) {
		http.Error(w, "file not found", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, "server error", http.StatusInternalServerError)
		return
	}

	var req analyzeAllReq
	if r.Body != nil {
		// an empty or absent body means per-kind default queries
		_ = json.NewDecoder(r.Body).Decode(&req)
	}
	req.Query = strings.TrimSpace(req.Query)

	items := make([]analyzeAllItem, 0, len(analysis.Kinds))
	jobIDs := make([]string, 0, len(analysis.Kinds))
	for _, kind := range analysis.Kinds {
		query := req.Query
		if query == "" {
			query = kind.DefaultQuery()
		}
		filename := "financial_document_" + uuid.NewString() + ".pdf"
		jobID, err := h.Queue.Enqueue(r.Context(), kind, query, filename, doc.Content)
		if err != nil {
			http.Error(w, "server error", http.StatusInternalServerError)
			return
		}
		jobIDs = append(jobIDs, jobID)
		items = append(items, analyzeAllItem{
			Kind:   string(kind),
			Status: "submitted",
			JobID:  jobID,
			Query:  query,
		})
	}

	if err := h.Docs.AppendJobIDs(r.Context(), fileID, jobIDs...); err != nil {
		// jobs are already queued; the linkage is best effort
		slog.Warn("append job ids failed", "file", fileID, "error", err)
	}

	writeJSON(w, http.StatusOK, map[string]any{"results": items})
}

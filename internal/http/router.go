package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"findoc/internal/analysis"
	"findoc/internal/config"
	"findoc/internal/http/handler"
	mw "findoc/internal/http/middleware"
)

func NewRouter(cfg config.Config, queue handler.Queue, docs handler.DocumentStore) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)

	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(mw.CORS(cfg.CORSAllowedOrigins, cfg.CORSAllowCredentials))
	}

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"message":"Financial Document Analyzer API is running"}`))
	})
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	ah := &handler.AnalysisHandler{Queue: queue, DefaultFilePath: cfg.DefaultFilePath}
	r.Post("/analyze", ah.Submit(analysis.KindAnalyze))
	r.Post("/investment", ah.Submit(analysis.KindInvestment))
	r.Post("/risk", ah.Submit(analysis.KindRisk))
	r.Post("/verify", ah.Submit(analysis.KindVerify))

	rh := &handler.ResultHandler{Queue: queue}
	r.Get("/result/{jobID}", rh.Get)

	fh := &handler.FilesHandler{Docs: docs, Queue: queue}
	r.Route("/api", func(r chi.Router) {
		r.Use(mw.RequireToken(cfg.APIToken))

		r.Post("/files", fh.Upload)
		r.Get("/files", fh.List)
		r.Get("/files/{fileID}", fh.Get)
		r.Delete("/files/{fileID}", fh.Delete)
		r.Post("/files/{fileID}/analyze", fh.Analyze)
	})

	return r
}

package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"findoc/internal/analysis"
	"findoc/internal/config"
	"findoc/internal/db"
	"findoc/internal/document"
	httpx "findoc/internal/http"
	"findoc/internal/jobs"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		logger.Error("config load failed", "error", err)
		os.Exit(1)
	}

	gdb, err := db.Connect(cfg.DatabaseURL)
	if err != nil {
		logger.Error("db connect failed", "error", err)
		os.Exit(1)
	}
	if err := db.AutoMigrateAndIndexes(gdb); err != nil {
		logger.Error("db migrate failed", "error", err)
		os.Exit(1)
	}

	jobsRepo := &jobs.Repo{DB: gdb, Lease: cfg.JobLease}
	docsRepo := &document.Repo{DB: gdb}
	analyzer := analysis.NewService(cfg.AnalyzerModel)

	r := httpx.NewRouter(cfg, jobsRepo, docsRepo)

	ctx, cancel := context.WithCancel(context.Background())
	for i := 0; i < cfg.WorkerCount; i++ {
		w := &jobs.Worker{
			ID:       fmt.Sprintf("worker-%d", i+1),
			Store:    jobsRepo,
			Analyzer: analyzer,
			DataDir:  cfg.DataDir,
			Poll:     cfg.WorkerPollInterval,
			Logger:   logger,
		}
		go w.Run(ctx)
	}

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("listening", "addr", cfg.HTTPAddr, "workers", cfg.WorkerCount)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	// graceful shutdown
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	<-ch

	cancel()
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	_ = srv.Shutdown(shutdownCtx)
}

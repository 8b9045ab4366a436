package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/transudeck/transudeck/internal/api"
	"github.com/transudeck/transudeck/internal/config"
	"github.com/transudeck/transudeck/internal/genai"
	"github.com/transudeck/transudeck/internal/outstore"
	"github.com/transudeck/transudeck/internal/pipeline"
)

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg := config.Load()
	if found, err := cfg.LoadEnvFile(); err != nil {
		log.Warn("env file load failed", "path", cfg.EnvFilePath(), "error", err)
	} else if found {
		log.Info("loaded credentials from env file", "path", cfg.EnvFilePath())
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Output store with background expiry of old presentations.
	store, err := outstore.New(cfg.OutputDir, log)
	if err != nil {
		log.Error("output store init failed", "dir", cfg.OutputDir, "error", err)
		os.Exit(1)
	}
	store.StartCleanup(ctx, cfg.CleanupInterval, cfg.OutputTTL)

	// GenAI client holder. Credentials may also arrive later via the
	// config endpoint.
	stats := genai.NewStatsRegistry(time.Hour)
	holder := genai.NewHolder(stats)
	if cfg.GenAIConfigured() {
		holder.Configure(cfg.GenAIAPIURL, cfg.GenAIAPIKey)
		log.Info("genai client configured at startup")
	}

	// Import pipeline.
	orch := pipeline.NewOrchestrator(cfg, holder.Client, log)
	orch.Start(ctx)

	srv := api.NewServer(&cfg, orch, store, holder, log)

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      srv,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown.
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down...")

		// Stop accepting requests before closing the job queue, so no
		// in-flight import submits to a closed pipeline.
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		httpServer.Shutdown(shutdownCtx)

		orch.Stop()
		holder.Close()
	}()

	log.Info("starting transudeck", "port", cfg.Port)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
}

// Package api is the HTTP surface: deck generation and download, document
// import, GenAI configuration, translation and stats.
package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/transudeck/transudeck/internal/config"
	"github.com/transudeck/transudeck/internal/deck"
	"github.com/transudeck/transudeck/internal/genai"
	"github.com/transudeck/transudeck/internal/outstore"
	"github.com/transudeck/transudeck/internal/pipeline"
)

// Server is the HTTP API server.
type Server struct {
	router       chi.Router
	orchestrator *pipeline.Orchestrator
	store        *outstore.Store
	renderer     *deck.Renderer
	genai        *genai.Holder
	log          *slog.Logger

	// cfg carries runtime-mutable GenAI credentials, so access goes
	// through the mutex.
	cfgMu sync.Mutex
	cfg   *config.Config
}

// NewServer creates and configures the HTTP server.
func NewServer(cfg *config.Config, orch *pipeline.Orchestrator, store *outstore.Store, holder *genai.Holder, log *slog.Logger) *Server {
	s := &Server{
		orchestrator: orch,
		store:        store,
		renderer:     deck.NewRenderer(log),
		genai:        holder,
		log:          log,
		cfg:          cfg,
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))

	// Public endpoints.
	r.Get("/health", s.handleHealth)

	r.Group(func(r chi.Router) {
		// Auth is optional: with no key configured the API is open.
		if key := s.cfg.APIKey; key != "" {
			r.Use(AuthMiddleware(key, s.log))
		}

		r.Post("/api/config", s.handleSetConfig)
		r.Get("/api/config/status", s.handleConfigStatus)
		r.Get("/api/models", s.handleModels)
		r.Post("/api/translate", s.handleTranslate)
		r.Get("/api/stats/llm", s.handleLLMStats)

		r.Post("/api/pptx/generate", s.handleGeneratePPTX)
		r.Get("/api/pptx/download/{filename}", s.handleDownloadPPTX)
		r.Get("/api/pptx/files", s.handleListFiles)
		r.Delete("/api/pptx/files/{filename}", s.handleDeleteFile)

		r.Post("/api/import", s.handleImport)
		r.Get("/api/import/{jobID}/status", s.handleImportStatus)
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":     "healthy",
		"configured": s.genai.Configured(),
	})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	writeJSON(w, code, map[string]string{"error": msg})
}

package api

import (
	"encoding/json"
	"net/http"
	"os"
	"strings"

	"github.com/transudeck/transudeck/internal/chunker"
	"github.com/transudeck/transudeck/internal/genai"
)

// APIConfigRequest sets the GenAI provider credentials.
type APIConfigRequest struct {
	APIKey string `json:"api_key"`
	APIURL string `json:"api_url"`
}

// TranslateRequest asks for a translation plus a slide-ready summary.
type TranslateRequest struct {
	Text                   string `json:"text"`
	SourceLang             string `json:"source_lang"`
	TargetLang             string `json:"target_lang"`
	AdditionalInstructions string `json:"additional_instructions"`
	NumSlides              int    `json:"num_slides"`
	Model                  string `json:"model"`
}

func (s *Server) handleSetConfig(w http.ResponseWriter, r *http.Request) {
	var req APIConfigRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if req.APIKey == "" || req.APIURL == "" {
		jsonError(w, "api_key and api_url are required", http.StatusBadRequest)
		return
	}

	if !validateCredentials(r, req.APIURL, req.APIKey) {
		jsonError(w, "invalid API credentials, check your API key and URL", http.StatusBadRequest)
		return
	}

	s.cfgMu.Lock()
	err := s.cfg.SaveEnvFile(req.APIKey, req.APIURL)
	s.cfgMu.Unlock()
	if err != nil {
		s.log.Error("config save failed", "error", err)
		jsonError(w, "failed to save configuration", http.StatusInternalServerError)
		return
	}

	s.genai.Configure(req.APIURL, req.APIKey)
	s.log.Info("genai configuration updated")

	writeJSON(w, http.StatusOK, map[string]any{
		"status":     "success",
		"message":    "Configuration saved successfully",
		"configured": true,
	})
}

func (s *Server) handleConfigStatus(w http.ResponseWriter, r *http.Request) {
	s.cfgMu.Lock()
	// Pick up credentials written to .env outside this process.
	if _, err := s.cfg.LoadEnvFile(); err != nil {
		s.log.Warn("env file reload failed", "error", err)
	}
	if s.cfg.GenAIConfigured() && !s.genai.Configured() {
		s.genai.Configure(s.cfg.GenAIAPIURL, s.cfg.GenAIAPIKey)
	}
	envPath := s.cfg.EnvFilePath()
	urlSet := strings.TrimSpace(s.cfg.GenAIAPIURL) != ""
	s.cfgMu.Unlock()

	_, statErr := os.Stat(envPath)

	writeJSON(w, http.StatusOK, map[string]any{
		"configured":   s.genai.Configured(),
		"has_env_file": statErr == nil,
		"api_url_set":  urlSet,
	})
}

func (s *Server) handleModels(w http.ResponseWriter, r *http.Request) {
	client := s.genai.Client()
	if client == nil {
		jsonError(w, "API not configured. Please configure API settings first.", http.StatusBadRequest)
		return
	}

	models, err := client.AvailableModels(r.Context())
	if err != nil {
		s.log.Error("model listing failed", "error", err)
		jsonError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"models": models,
		"count":  len(models),
	})
}

func (s *Server) handleTranslate(w http.ResponseWriter, r *http.Request) {
	client := s.genai.Client()
	if client == nil {
		jsonError(w, "API not configured. Please configure API settings first.", http.StatusBadRequest)
		return
	}

	var req TranslateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if req.Text == "" || req.Model == "" {
		jsonError(w, "text and model are required", http.StatusBadRequest)
		return
	}
	if req.NumSlides < 1 {
		req.NumSlides = 1
	}

	ctx := r.Context()
	chunkCfg := s.chunkConfig()

	// Same language in and out means translation is a no-op. Long inputs
	// go through the model chunk by chunk to stay under its input limits.
	translated := req.Text
	if req.SourceLang != req.TargetLang {
		parts := chunker.Split(req.Text, chunkCfg)
		out := make([]string, 0, len(parts))
		for _, part := range parts {
			t, err := client.Translate(ctx, part, req.SourceLang, req.TargetLang, req.Model)
			if err != nil {
				s.log.Error("translation failed", "error", err)
				jsonError(w, err.Error(), http.StatusInternalServerError)
				return
			}
			out = append(out, t)
		}
		translated = strings.Join(out, "\n\n")
	}

	opts := genaiSummarizeOptions(req)
	parts := chunker.Split(translated, chunkCfg)
	if len(parts) == 0 {
		jsonError(w, "nothing to summarize", http.StatusInternalServerError)
		return
	}
	sums := make([]string, 0, len(parts))
	for _, part := range parts {
		chunkOpts := opts
		if len(parts) > 1 {
			// One slide per chunk keeps the requested total roughly intact.
			chunkOpts.NumSlides = 1
		}
		sum, err := client.Summarize(ctx, part, req.Model, chunkOpts)
		if err != nil {
			s.log.Error("summarization failed", "error", err)
			jsonError(w, err.Error(), http.StatusInternalServerError)
			return
		}
		sums = append(sums, sum)
	}
	summary := strings.Join(sums, "\n\n---\n\n")

	writeJSON(w, http.StatusOK, map[string]any{
		"translation": translated,
		"summary":     summary,
		"num_slides":  req.NumSlides,
	})
}

func validateCredentials(r *http.Request, apiURL, apiKey string) bool {
	return genai.ValidateCredentials(r.Context(), apiURL, apiKey)
}

func (s *Server) chunkConfig() chunker.Config {
	return chunker.Config{
		ChunkSize:    s.cfg.DefaultChunkSize,
		ChunkOverlap: s.cfg.DefaultChunkOverlap,
		MinChunk:     100,
	}
}

func genaiSummarizeOptions(req TranslateRequest) genai.SummarizeOptions {
	return genai.SummarizeOptions{
		NumSlides:              req.NumSlides,
		AdditionalInstructions: req.AdditionalInstructions,
		TargetLang:             req.TargetLang,
	}
}

func (s *Server) handleLLMStats(w http.ResponseWriter, r *http.Request) {
	stats := s.genai.Stats()
	if stats == nil {
		jsonError(w, "llm stats unavailable", http.StatusServiceUnavailable)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"operations": stats.Snapshot(),
	})
}

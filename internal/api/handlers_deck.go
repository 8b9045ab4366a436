package api

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/transudeck/transudeck/internal/deck"
	"github.com/transudeck/transudeck/internal/outstore"
	"github.com/transudeck/transudeck/internal/pptx"
)

const pptxContentType = "application/vnd.openxmlformats-officedocument.presentationml.presentation"

// SlideData is one slide's markdown content as submitted by the client.
type SlideData struct {
	ID      string `json:"id"`
	Content string `json:"content"`
	Order   int    `json:"order"`
}

// PPTXRequest is the body for the generate endpoint.
type PPTXRequest struct {
	Slides []SlideData `json:"slides"`
}

func (s *Server) handleGeneratePPTX(w http.ResponseWriter, r *http.Request) {
	var req PPTXRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if len(req.Slides) == 0 {
		jsonError(w, "at least one slide is required", http.StatusBadRequest)
		return
	}

	inputs := make([]deck.Input, 0, len(req.Slides))
	for _, sl := range req.Slides {
		inputs = append(inputs, deck.Input{ID: sl.ID, Content: sl.Content, Order: sl.Order})
	}

	d := s.renderer.Render(inputs)

	filename := s.store.GenerateFilename(time.Now())
	path, err := s.store.Resolve(filename)
	if err != nil {
		jsonError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if err := pptx.Write(d, path); err != nil {
		s.log.Error("presentation write failed", "filename", filename, "error", err)
		jsonError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	s.log.Info("presentation generated", "filename", filename, "slides", len(d.Slides))
	writeJSON(w, http.StatusOK, map[string]any{
		"status":       "success",
		"filename":     filename,
		"download_url": "/api/pptx/download/" + filename,
	})
}

func (s *Server) handleDownloadPPTX(w http.ResponseWriter, r *http.Request) {
	filename := chi.URLParam(r, "filename")

	f, info, err := s.store.Open(filename)
	if err != nil {
		if os.IsNotExist(err) {
			jsonError(w, "file not found", http.StatusNotFound)
		} else {
			jsonError(w, err.Error(), http.StatusBadRequest)
		}
		return
	}
	defer f.Close()

	w.Header().Set("Content-Type", pptxContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", info.Name))
	w.Header().Set("Content-Length", fmt.Sprintf("%d", info.Size))
	io.Copy(w, f)
}

func (s *Server) handleListFiles(w http.ResponseWriter, r *http.Request) {
	files, err := s.store.List()
	if err != nil {
		jsonError(w, "failed to list files: "+err.Error(), http.StatusInternalServerError)
		return
	}
	if files == nil {
		files = []outstore.FileInfo{}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"files": files,
		"count": len(files),
	})
}

func (s *Server) handleDeleteFile(w http.ResponseWriter, r *http.Request) {
	filename := chi.URLParam(r, "filename")
	if err := s.store.Delete(filename); err != nil {
		if os.IsNotExist(err) {
			jsonError(w, "file not found", http.StatusNotFound)
		} else {
			jsonError(w, err.Error(), http.StatusBadRequest)
		}
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted", "filename": filename})
}

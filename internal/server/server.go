// Package server exposes the editor's mesh over HTTP for external tools:
// the raw save document, derived render buffers, validation results, and a
// rendered preview image.
package server

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/Faultbox/fairway/internal/mesh"
	"github.com/Faultbox/fairway/internal/preview"
)

// Server serves one mesh. The mesh may be swapped while serving; all
// handlers take the read lock, SetMesh the write lock.
type Server struct {
	log *zap.Logger

	mu sync.RWMutex
	m  *mesh.Mesh

	http *http.Server
}

// New builds a server for the given listen address.
func New(addr string, m *mesh.Mesh, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Server{log: log, m: m}
	s.http = &http.Server{
		Addr:         addr,
		Handler:      s.Router(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
	return s
}

// SetMesh swaps the served mesh.
func (s *Server) SetMesh(m *mesh.Mesh) {
	s.mu.Lock()
	s.m = m
	s.mu.Unlock()
}

// Router returns the HTTP route table.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/mesh", s.handleMesh).Methods(http.MethodGet)
	r.HandleFunc("/buffers", s.handleBuffers).Methods(http.MethodGet)
	r.HandleFunc("/stats", s.handleStats).Methods(http.MethodGet)
	r.HandleFunc("/validate", s.handleValidate).Methods(http.MethodGet)
	r.HandleFunc("/preview.png", s.handlePreview).Methods(http.MethodGet)
	return r
}

// Start serves until Shutdown or a listener error.
func (s *Server) Start() error {
	s.log.Info("debug server listening", zap.String("addr", s.http.Addr))
	err := s.http.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// Shutdown stops the server gracefully.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}

func (s *Server) handleMesh(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	w.Header().Set("Content-Type", "application/json")
	if err := s.m.Save(w); err != nil {
		s.log.Error("serving mesh", zap.Error(err))
	}
}

func (s *Server) handleBuffers(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	buffers := mesh.BuildBuffers(s.m)
	s.mu.RUnlock()

	s.writeJSON(w, buffers)
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	stats := struct {
		Vertices  int     `json:"vertices"`
		Edges     int     `json:"edges"`
		Triangles int     `json:"triangles"`
		Width     float32 `json:"worldWidth"`
		Height    float32 `json:"worldHeight"`
	}{
		Vertices:  s.m.VertexCount(),
		Edges:     s.m.EdgeCount(),
		Triangles: s.m.TriangleCount(),
		Width:     s.m.Width,
		Height:    s.m.Height,
	}
	s.mu.RUnlock()

	s.writeJSON(w, stats)
}

func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	err := s.m.Validate()
	s.mu.RUnlock()

	result := struct {
		Valid bool   `json:"valid"`
		Error string `json:"error,omitempty"`
	}{Valid: err == nil}
	if err != nil {
		result.Error = err.Error()
	}
	s.writeJSON(w, result)
}

func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	opts := preview.Options{
		Width:     queryInt(r, "w", 512),
		Height:    queryInt(r, "h", 512),
		Wireframe: r.URL.Query().Get("wire") == "1",
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	w.Header().Set("Content-Type", "image/png")
	if err := preview.Encode(w, s.m, opts); err != nil {
		s.log.Error("rendering preview", zap.Error(err))
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Error("encoding response", zap.Error(err))
	}
}

func queryInt(r *http.Request, key string, def int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return def
	}
	return n
}

// Package api serves the pad's vector and version over HTTP so an external
// classifier (or anything else) can read what was drawn.
package api

import (
	"log"
	"net/http"
	"sync"
	"time"

	"inkpad/grid"
	"inkpad/internal/httputil"
)

// VectorSource is what the server reads from: the pad widget on the host.
type VectorSource interface {
	// Values returns the 784-element row-major intensity vector.
	Values() []float64
	// Clear resets every cell to zero.
	Clear()
}

// Server exposes the pad over HTTP.
//
// The source is attached after construction (the window may come up later
// than the listener); until then /api/grid serves a zero-filled vector and
// /api/clear is a no-op, mirroring the "queried before mount" behaviour of
// the widget itself.
type Server struct {
	mu      sync.RWMutex
	src     VectorSource
	version string
}

// NewServer returns a server reporting the given version string.
func NewServer(version string) *Server {
	return &Server{version: version}
}

// SetSource attaches (or replaces) the vector source.
func (s *Server) SetSource(src VectorSource) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.src = src
}

func (s *Server) source() VectorSource {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.src
}

// LoggingMiddleware logs each request with method, path and duration.
func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("%s %s (%s)", r.Method, r.URL.Path, time.Since(start))
	})
}

// Routes returns the HTTP handler for the API.
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/version", s.handleVersion)
	mux.HandleFunc("/api/grid", s.handleGrid)
	mux.HandleFunc("/api/clear", s.handleClear)
	return LoggingMiddleware(mux)
}

// ListenAndServe blocks serving the API on addr.
func (s *Server) ListenAndServe(addr string) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.Routes(),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 5 * time.Second,
	}
	return srv.ListenAndServe()
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httputil.MethodNotAllowed(w)
		return
	}
	httputil.WriteJSONOK(w, map[string]string{"version": s.version})
}

func (s *Server) handleGrid(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httputil.MethodNotAllowed(w)
		return
	}
	var vals []float64
	if src := s.source(); src != nil {
		vals = src.Values()
	} else {
		vals = make([]float64, grid.Cells)
	}
	httputil.WriteJSONOK(w, map[string][]float64{"values": vals})
}

func (s *Server) handleClear(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		httputil.MethodNotAllowed(w)
		return
	}
	if src := s.source(); src != nil {
		src.Clear()
	}
	w.WriteHeader(http.StatusNoContent)
}

package ui

import (
	"encoding/json"
	"log"
	"net/http"
	"net/http/pprof"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// OpsServer is the small operational sidecar: liveness/readiness plus pprof,
// kept off the public dashboard port.
type OpsServer struct {
	router  *chi.Mux
	started time.Time
	ready   func() bool
}

// NewOpsServer builds the ops router. ready reports whether the reference
// data finished loading.
func NewOpsServer(ready func() bool) *OpsServer {
	s := &OpsServer{
		router:  chi.NewRouter(),
		started: time.Now(),
		ready:   ready,
	}
	s.setupRoutes()
	return s
}

func (s *OpsServer) setupRoutes() {
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)

	s.router.Get("/healthz", s.handleHealth)
	s.router.Get("/readyz", s.handleReady)

	s.router.HandleFunc("/debug/pprof/", pprof.Index)
	s.router.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
	s.router.HandleFunc("/debug/pprof/profile", pprof.Profile)
	s.router.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
	s.router.HandleFunc("/debug/pprof/trace", pprof.Trace)
}

func (s *OpsServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"status": "ok",
		"uptime": time.Since(s.started).String(),
	})
}

func (s *OpsServer) handleReady(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if s.ready != nil && !s.ready() {
		w.WriteHeader(http.StatusServiceUnavailable)
		json.NewEncoder(w).Encode(map[string]string{"status": "loading"})
		return
	}
	json.NewEncoder(w).Encode(map[string]string{"status": "ready"})
}

// Serve runs the ops server; it is not drained on shutdown since it only
// answers probes.
func (s *OpsServer) Serve(addr string) {
	go func() {
		log.Printf("[Ops] listening on %s", addr)
		if err := http.ListenAndServe(addr, s.router); err != nil && err != http.ErrServerClosed {
			log.Printf("[Ops] server stopped: %v", err)
		}
	}()
}

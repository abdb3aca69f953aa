// Package api is the HTTP boundary: it validates the shared API key,
// marshals run requests into the pipeline's configuration and the pipeline's
// result back into the response body.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/boriloo/pythonScriptV2/internal/config"
	"github.com/boriloo/pythonScriptV2/internal/logging"
	"github.com/boriloo/pythonScriptV2/internal/models"
	"github.com/boriloo/pythonScriptV2/internal/store"
)

// RunFunc executes one outreach pass. Swappable so handler tests never need
// a live browser.
type RunFunc func(ctx context.Context, cfg models.RunConfig) (models.RunResult, error)

type Server struct {
	cfg *config.Config
	st  *store.Store
	run RunFunc
	log *logging.Logger
}

func New(cfg *config.Config, st *store.Store, run RunFunc) *Server {
	return &Server{
		cfg: cfg,
		st:  st,
		run: run,
		log: logging.New(cfg.Logging.Level).With("module", "api"),
	}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Get("/", s.handleHealth)
	r.Group(func(r chi.Router) {
		r.Use(s.requireAPIKey)
		r.Post("/run", s.handleRun)
		r.Get("/runs", s.handleRecentRuns)
	})
	return r
}

// requireAPIKey rejects callers presenting a wrong shared secret before the
// pipeline is ever invoked.
func (s *Server) requireAPIKey(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-API-Key") != s.cfg.Server.APIKey {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"detail": "API Key invalida"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

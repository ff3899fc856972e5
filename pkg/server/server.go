// Package server exposes the analysis pipeline over HTTP.
//
// Routes:
//
//	POST /analyze         {"url": "..."} → {"words": [{"word", "weight"}, ...]}
//	GET  /health          {"status": "ok"}
//	GET  /analyses        recent history, newest first (?limit=N)
//	GET  /analyses/{id}   one history record
//
// Errors are returned as text/plain bodies. Browser clients show the body
// verbatim, so messages are written for people.
package server

import (
	"context"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/matzehuels/wordsphere/pkg/keyword"
	"github.com/matzehuels/wordsphere/pkg/store"
)

// Analyzer runs one analysis. *pipeline.Runner implements it.
type Analyzer interface {
	Analyze(ctx context.Context, url string, refresh bool) (*keyword.Result, bool, error)
}

// Server routes HTTP requests to an Analyzer and a history Store.
type Server struct {
	analyzer Analyzer
	history  store.Store
	logger   *log.Logger
	router   chi.Router
}

// New builds a Server. A nil logger uses log.Default().
func New(analyzer Analyzer, history store.Store, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{
		analyzer: analyzer,
		history:  history,
		logger:   logger,
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(logger))
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(corsOptions))

	r.Post("/analyze", s.handleAnalyze)
	r.Get("/health", s.handleHealth)
	r.Route("/analyses", func(r chi.Router) {
		r.Get("/", s.handleRecent)
		r.Get("/{id}", s.handleGet)
	})
	s.router = r
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Package api serves the catalog, transcripts, summaries and search index
// over HTTP.
package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/nguyentantai21042004/transcript-flow/internal/catalog"
	"github.com/nguyentantai21042004/transcript-flow/internal/search"
)

// VideoStore is the part of the catalog the API reads.
type VideoStore interface {
	List(ctx context.Context, limit int) ([]*catalog.Video, error)
	GetByStem(ctx context.Context, stem string) (*catalog.Video, error)
}

// Searcher runs full-text queries.
type Searcher interface {
	Search(ctx context.Context, q string, limit int) (*search.Result, error)
}

// Options configures the server.
type Options struct {
	Catalog        VideoStore
	Index          Searcher
	TranscriptsDir string
	SummariesDir   string
	AllowedOrigins []string
	// Token, when set, is required as a bearer token on /api routes.
	Token string
}

// Server is the read-only HTTP API.
type Server struct {
	router chi.Router
	opts   Options
	log    *slog.Logger
}

// NewServer creates and configures the HTTP server.
func NewServer(opts Options, log *slog.Logger) *Server {
	s := &Server{opts: opts, log: log}
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

	if len(s.opts.AllowedOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: s.opts.AllowedOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodOptions},
			AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
			MaxAge:         300,
		}))
	}

	r.Get("/health", s.handleHealth)

	r.Group(func(r chi.Router) {
		if s.opts.Token != "" {
			r.Use(AuthMiddleware(s.opts.Token))
		}

		r.Get("/api/videos", s.handleListVideos)
		r.Get("/api/videos/{stem}", s.handleGetVideo)
		r.Get("/api/summaries", s.handleListSummaries)
		r.Get("/api/search", s.handleSearch)
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}

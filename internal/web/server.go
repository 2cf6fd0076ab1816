// Package web serves the notes page as server-rendered HTML. Every action is
// a form post that runs through the application controller and redirects
// back to the page.
package web

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rpggio/noteboard/internal/app"
	"github.com/rpggio/noteboard/internal/notify"
)

// Config wires a Server.
type Config struct {
	Controller *app.Controller
	// BackendURL is reported by the health endpoint.
	BackendURL string
	PageTTL    time.Duration
	NoticeTTL  time.Duration
	Logger     *slog.Logger
}

// Server handles the web front end.
type Server struct {
	controller *app.Controller
	backendURL string
	pages      *pageStore
	views      *templates
	logger     *slog.Logger
}

// NewServer creates a web server.
func NewServer(cfg Config) *Server {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	noticeTTL := cfg.NoticeTTL
	if noticeTTL <= 0 {
		noticeTTL = notify.DefaultTTL
	}
	return &Server{
		controller: cfg.Controller,
		backendURL: cfg.BackendURL,
		pages:      newPageStore(cfg.PageTTL, noticeTTL),
		views:      mustParseTemplates(),
		logger:     logger,
	}
}

// Handler returns the router with middleware.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(s.logger))
	r.Use(middleware.Recoverer)
	r.Use(withSecurityHeaders)

	r.Get("/health", s.handleHealth)
	r.Get("/static/app.css", s.handleCSS)

	r.Group(func(r chi.Router) {
		r.Use(s.pages.PageMiddleware)

		r.Get("/", s.handleIndex)
		r.Post("/search", s.handleSearch)
		r.Post("/search/reset", s.handleResetSearch)
		r.Post("/notes/new", s.handleNewNote)
		r.Post("/notes/submit", s.handleSubmit)
		r.Post("/notes/{id}/edit", s.handleEditNote)
		r.Get("/notes/{id}/delete", s.handleConfirmDelete)
		r.Post("/notes/{id}/delete", s.handleDelete)
		r.Post("/dialog/close", s.handleCloseDialog)
		r.Post("/dialog/dismiss", s.handleDismiss)
	})

	return r
}

// Package server exposes the catalog, progress and session stores over HTTP.
package server

import (
	"bufio"
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/p-n-ai/dsa-sheet/internal/catalog"
	"github.com/p-n-ai/dsa-sheet/internal/export"
	"github.com/p-n-ai/dsa-sheet/internal/organizer"
	"github.com/p-n-ai/dsa-sheet/internal/platform/metrics"
	"github.com/p-n-ai/dsa-sheet/internal/progress"
	"github.com/p-n-ai/dsa-sheet/internal/search"
	"github.com/p-n-ai/dsa-sheet/internal/session"
)

const readyTimeout = 2 * time.Second

// HealthChecker reports whether a dependency is reachable.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// Deps are the collaborators a Server needs. Catalog, Progress, Session and
// Theme are required.
type Deps struct {
	Catalog  *catalog.Catalog
	Progress *progress.Store
	Session  *session.Store
	Theme    *session.ThemeStore
	Quotes   *catalog.Rotator
	Options  search.FilterOptions
	Storage  HealthChecker
	Metrics  *metrics.Metrics
	Hub      *Hub
}

// Server holds the HTTP handlers.
type Server struct {
	catalog  *catalog.Catalog
	topics   []catalog.Topic
	progress *progress.Store
	session  *session.Store
	theme    *session.ThemeStore
	quotes   *catalog.Rotator
	options  search.FilterOptions
	storage  HealthChecker
	metrics  *metrics.Metrics
	hub      *Hub
	validate *validator.Validate

	writeWorkbook func(io.Writer, *catalog.Catalog, progress.Reader) error
}

// New builds a server. The organized topic list is computed once here.
func New(d Deps) *Server {
	quotes := d.Quotes
	if quotes == nil {
		quotes = catalog.NewRotator(d.Catalog.Header.Quotes)
	}
	hub := d.Hub
	if hub == nil {
		hub = NewHub(d.Metrics)
	}
	return &Server{
		catalog:  d.Catalog,
		topics:   organizer.Organize(d.Catalog),
		progress: d.Progress,
		session:  d.Session,
		theme:    d.Theme,
		quotes:   quotes,
		options:  d.Options,
		storage:  d.Storage,
		metrics:  d.Metrics,
		hub:      hub,
		validate: validator.New(validator.WithRequiredStructEnabled()),

		writeWorkbook: export.Write,
	}
}

// Handler returns the routed, instrumented handler.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", s.handleHealthz)
	mux.HandleFunc("GET /readyz", s.handleReadyz)

	mux.HandleFunc("GET /api/topics", s.handleTopics)
	mux.HandleFunc("GET /api/topics/{slug}", s.handleTopic)
	mux.HandleFunc("GET /api/search", s.handleSearch)
	mux.HandleFunc("GET /api/bookmarks", s.handleBookmarks)
	mux.HandleFunc("GET /api/stats", s.handleStats)

	mux.HandleFunc("GET /api/progress/{id}", s.handleProgress)
	mux.HandleFunc("POST /api/progress/{id}/complete", s.handleToggleComplete)
	mux.HandleFunc("POST /api/progress/{id}/bookmark", s.handleToggleBookmark)
	mux.HandleFunc("PUT /api/progress/{id}/note", s.handleSetNote)

	mux.HandleFunc("GET /api/session", s.handleSession)
	mux.HandleFunc("POST /api/session/login", s.handleLogin)
	mux.HandleFunc("POST /api/session/logout", s.handleLogout)

	mux.HandleFunc("GET /api/theme", s.handleTheme)
	mux.HandleFunc("PUT /api/theme", s.handleSetTheme)
	mux.HandleFunc("POST /api/theme/toggle", s.handleToggleTheme)

	mux.HandleFunc("GET /api/quotes/{action}", s.handleQuote)
	mux.HandleFunc("GET /api/export", s.handleExport)

	mux.Handle("GET /ws", s.hub)
	if s.metrics != nil {
		mux.Handle("GET /metrics", s.metrics.Handler())
	}

	return s.instrument(mux)
}

// Hub returns the change feed hub.
func (s *Server) Hub() *Hub {
	return s.hub
}

// Quotes returns the quote rotator shared with the auto-advance job.
func (s *Server) Quotes() *catalog.Rotator {
	return s.quotes
}

func (s *Server) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		route := r.Pattern
		if route == "" {
			route = "unmatched"
		}
		s.metrics.ObserveRequest(route, rec.status, time.Since(start))
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (r *statusRecorder) Flush() {
	if f, ok := r.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// Hijack lets the websocket handler take over the connection.
func (r *statusRecorder) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	h, ok := r.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, errors.New("response writer does not support hijacking")
	}
	r.status = http.StatusSwitchingProtocols
	return h.Hijack()
}

func (r *statusRecorder) Unwrap() http.ResponseWriter {
	return r.ResponseWriter
}

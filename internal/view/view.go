// Package view renders the catalog UI from record store state and maps user
// actions onto store operations.
package view

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/yosssi/gohtml"

	"prism/internal/core"
	"prism/pkg/domain"
)

//go:embed templates/*.html
var templateFS embed.FS

// Placeholder is the preview card shown while the catalog is empty and no
// search is active. It is never stored, selected or deleted.
var Placeholder = domain.Startup{
	ID: "placeholder",
	StartupFields: domain.StartupFields{
		Name:          "Your Startup Name",
		Description:   `This is how your startup will appear after you add it. Click the "Add Startup" button above to get started.`,
		Industry:      "Technology",
		FundingStage:  domain.StageSeed,
		FundingAmount: 1000000,
		FoundedDate:   "2024-01-01",
		TeamSize:      10,
		Status:        domain.StatusActive,
	},
}

// Handler serves the HTML pages and JSON API over one record store.
type Handler struct {
	store   *core.Store
	format  *Formatter
	pages   map[string]*template.Template
	pretty  bool
	logger  core.Logger
	metrics http.Handler
}

// Option configures a Handler.
type Option func(*Handler)

// WithLogger logs requests and failures.
func WithLogger(logger core.Logger) Option {
	return func(h *Handler) {
		if logger != nil {
			h.logger = logger
		}
	}
}

// WithPrettyHTML indents rendered pages.
func WithPrettyHTML(enabled bool) Option {
	return func(h *Handler) { h.pretty = enabled }
}

// WithMetricsHandler mounts handler at /metrics.
func WithMetricsHandler(handler http.Handler) Option {
	return func(h *Handler) { h.metrics = handler }
}

// New parses the embedded templates and returns a handler over store.
func New(store *core.Store, format *Formatter, opts ...Option) (*Handler, error) {
	base, err := template.ParseFS(templateFS, "templates/layout.html")
	if err != nil {
		return nil, err
	}
	pages := make(map[string]*template.Template)
	for _, name := range []string{"index", "form"} {
		clone, err := base.Clone()
		if err != nil {
			return nil, err
		}
		if _, err := clone.ParseFS(templateFS, "templates/"+name+".html"); err != nil {
			return nil, err
		}
		pages[name] = clone
	}
	h := &Handler{store: store, format: format, pages: pages, logger: nopLogger{}}
	for _, opt := range opts {
		opt(h)
	}
	return h, nil
}

// Routes returns the router for the UI, the JSON API and health endpoints.
func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(h.requestLog)

	r.Get("/", h.handleIndex)
	r.Get("/startups/new", h.handleNewForm)
	r.Post("/startups", h.handleCreate)
	r.Get("/startups/{id}", h.handleDetail)
	r.Post("/startups/{id}/delete", h.handleDelete)
	r.Post("/detail/close", h.handleCloseDetail)

	r.Route("/api/startups", func(r chi.Router) {
		r.Get("/", h.apiList)
		r.Post("/", h.apiCreate)
		r.Get("/{id}", h.apiGet)
		r.Delete("/{id}", h.apiDelete)
	})

	r.Get("/healthz", h.handleHealth)
	if h.metrics != nil {
		r.Method(http.MethodGet, "/metrics", h.metrics)
	}
	return r
}

func (h *Handler) requestLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		h.logger.Debug("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}

func (h *Handler) render(w http.ResponseWriter, status int, page string, data pageData) {
	var buf bytes.Buffer
	if err := h.pages[page].ExecuteTemplate(&buf, "layout", data); err != nil {
		h.logger.Error("render page failed", "page", page, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	out := buf.Bytes()
	if h.pretty {
		out = gohtml.FormatBytes(out)
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(out)
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Info(string, ...any)  {}
func (nopLogger) Warn(string, ...any)  {}
func (nopLogger) Error(string, ...any) {}

package httpadapter

import (
	"context"
	"encoding/json"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"tgscope/internal/ports"
)

// Lookup is the single core entry point the transport calls.
type Lookup interface {
	Handle(ctx context.Context, handle string) (string, error)
}

type Server struct {
	lookup    Lookup
	audit     ports.AuditRepository
	staticDir string
	logger    *zap.Logger
}

func New(lookup Lookup, audit ports.AuditRepository, staticDir string, logger *zap.Logger) *Server {
	return &Server{lookup: lookup, audit: audit, staticDir: staticDir, logger: logger}
}

// Routes returns the chi router for the whole HTTP surface.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/get_user_info", s.getUserInfo)
	r.Get("/healthz", s.healthz)
	r.Get("/recent_lookups", s.recentLookups)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())
	r.Get("/", s.index)
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.Dir(s.staticDir))))
	return r
}

// Handles are constrained to 4-32 characters; a leading @ is stripped
// before the constraint applies.
const (
	minHandleLen = 4
	maxHandleLen = 32
)

func (s *Server) getUserInfo(w http.ResponseWriter, r *http.Request) {
	handle := strings.TrimPrefix(strings.TrimSpace(r.URL.Query().Get("username")), "@")
	if len(handle) < minHandleLen || len(handle) > maxHandleLen {
		writeText(w, http.StatusBadRequest, "Error: username must be 4-32 characters")
		return
	}

	text, err := s.lookup.Handle(r.Context(), handle)
	if err != nil {
		// The error message already carries the "Error: " prefix the
		// response contract requires.
		writeText(w, http.StatusNotFound, err.Error())
		return
	}
	writeText(w, http.StatusOK, text)
}

func (s *Server) healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

const recentLookupLimit = 50

func (s *Server) recentLookups(w http.ResponseWriter, r *http.Request) {
	events, err := s.audit.Recent(r.Context(), recentLookupLimit)
	if err != nil {
		s.logger.Error("recent lookups query failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "audit query failed"})
		return
	}
	out := make([]lookupView, 0, len(events))
	for _, ev := range events {
		out = append(out, lookupView{
			ID:         ev.ID,
			Handle:     ev.Handle,
			Kind:       ev.Kind,
			OK:         ev.OK,
			Error:      ev.Error,
			DurationMS: ev.Duration.Milliseconds(),
			At:         ev.At.Format(time.RFC3339),
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{"lookups": out})
}

type lookupView struct {
	ID         string `json:"id"`
	Handle     string `json:"handle"`
	Kind       string `json:"kind"`
	OK         bool   `json:"ok"`
	Error      string `json:"error,omitempty"`
	DurationMS int64  `json:"duration_ms"`
	At         string `json:"at"`
}

func (s *Server) index(w http.ResponseWriter, r *http.Request) {
	http.ServeFile(w, r, filepath.Join(s.staticDir, "index.html"))
}

func writeText(w http.ResponseWriter, code int, body string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(code)
	_, _ = w.Write([]byte(body))
}

func writeJSON(w http.ResponseWriter, code int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(body)
}

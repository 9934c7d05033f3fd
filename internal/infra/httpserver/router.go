package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	appai "github.com/unireport/viewer/internal/application/ai"
	"github.com/unireport/viewer/internal/application/session"
	domai "github.com/unireport/viewer/internal/domain/ai"
	"github.com/unireport/viewer/internal/domain/audit"
	"github.com/unireport/viewer/internal/domain/scans"
	"github.com/unireport/viewer/internal/middleware"
)

// Options carries the HTTP-surface knobs the router wires itself with.
type Options struct {
	CORSOrigins  []string
	APIKeys      map[string]string
	RateCapacity int
	RateRefill   int

	// Health checks: failing critical dependencies take /health and
	// /ready down, optional ones only degrade /health.
	Health         map[string]middleware.HealthChecker
	OptionalHealth map[string]middleware.HealthChecker
}

type Router struct {
	sessions *session.Service
	aiSvc    *appai.Service
	audit    audit.Store
}

func NewRouter(sessions *session.Service, aiSvc *appai.Service, auditStore audit.Store, opts Options) http.Handler {
	rt := &Router{sessions: sessions, aiSvc: aiSvc, audit: auditStore}
	mux := chi.NewRouter()

	mux.Use(middleware.LoggingMiddleware)
	mux.Use(middleware.MetricsMiddleware)
	if len(opts.CORSOrigins) > 0 {
		mux.Use(cors.Handler(cors.Options{
			AllowedOrigins: opts.CORSOrigins,
			AllowedMethods: []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders: []string{"Authorization", "Content-Type"},
			MaxAge:         300,
		}))
	}
	if len(opts.APIKeys) > 0 {
		mux.Use(middleware.APIKeyAuth(opts.APIKeys))
	}
	if opts.RateCapacity > 0 {
		mux.Use(middleware.RateLimitMiddleware(opts.RateCapacity, opts.RateRefill))
	}

	mux.Get("/health", middleware.HealthHandler(opts.Health, opts.OptionalHealth))
	mux.Get("/ready", middleware.ReadinessHandler(opts.Health))
	mux.Get("/live", middleware.LivenessHandler)
	mux.Get("/metrics", rt.handleMetrics)

	mux.Route("/v1/sessions", func(r chi.Router) {
		r.Post("/", rt.wrap(rt.handleCreateSession))
		r.Get("/{sid}", rt.wrap(rt.handleSession))
		r.Post("/{sid}/user", rt.wrap(rt.handleUser))
		r.Get("/{sid}/scans", rt.wrap(rt.handleScans))
		r.Post("/{sid}/select", rt.wrap(rt.handleSelect))
		r.Post("/{sid}/load", rt.wrap(rt.handleLoad))
		r.Get("/{sid}/overview", rt.wrap(rt.handleOverview))
		r.Get("/{sid}/sections", rt.wrap(rt.handleSections))
		r.Get("/{sid}/sections/{section}", rt.wrap(rt.handleSection))
		r.Get("/{sid}/sections/{section}/rows/{row}", rt.wrap(rt.handleRow))
		r.Get("/{sid}/sections/{section}/rows/{row}/archive", rt.wrap(rt.handleRowArchive))
		r.Get("/{sid}/sections/processes/pid/{pid}", rt.wrap(rt.handleProcess))
		r.Post("/{sid}/sections/{section}/summarize", rt.wrap(rt.handleSummarize))
	})

	mux.Get("/v1/audit", rt.wrap(rt.handleAudit))

	return mux
}

type handlerFunc func(http.ResponseWriter, *http.Request) error

// validationError marks input errors so wrap can answer 400 instead of 500.
type validationError struct {
	err error
}

func (e validationError) Error() string { return e.err.Error() }

var notFoundErrs = []error{
	session.ErrNotFound,
	session.ErrProcessNotFound,
	scans.ErrNotFound,
}

var badRequestErrs = []error{
	session.ErrEmptyUsername,
	session.ErrNoUsername,
	session.ErrNotListed,
	session.ErrUnknownFile,
	session.ErrNoSelection,
	session.ErrNotLoaded,
	session.ErrUnknownSection,
	session.ErrUnknownTable,
	session.ErrRowOutOfRange,
}

func isAny(err error, targets []error) bool {
	for _, t := range targets {
		if errors.Is(err, t) {
			return true
		}
	}
	return false
}

func (rt *Router) wrap(h handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		err := h(w, req)
		if err == nil {
			return
		}

		var ve validationError
		var te *scans.TransientError
		switch {
		case isAny(err, notFoundErrs):
			writeError(w, http.StatusNotFound, err, false)
		case isAny(err, badRequestErrs) || errors.As(err, &ve):
			writeError(w, http.StatusBadRequest, err, false)
		case errors.Is(err, domai.ErrQuotaExceeded):
			writeError(w, http.StatusTooManyRequests, err, true)
		case errors.Is(err, domai.ErrDisabled):
			writeError(w, http.StatusNotImplemented, err, false)
		case errors.As(err, &te):
			writeError(w, http.StatusBadGateway, err, true)
		default:
			writeError(w, http.StatusInternalServerError, err, false)
		}
	}
}

func writeError(w http.ResponseWriter, code int, err error, retryable bool) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]any{
		"error":     err.Error(),
		"retryable": retryable,
	})
}

func writeJSON(w http.ResponseWriter, v any) error {
	w.Header().Set("Content-Type", "application/json")
	return json.NewEncoder(w).Encode(v)
}

func sessionID(req *http.Request) (string, error) {
	sid := chi.URLParam(req, "sid")
	if err := middleware.ValidateSessionID(sid); err != nil {
		return "", validationError{err}
	}
	return sid, nil
}

// GET /metrics
func (rt *Router) handleMetrics(w http.ResponseWriter, req *http.Request) {
	m := middleware.GetMetrics()
	m["sessions_active"] = rt.sessions.Sessions.Count()
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(m)
}

// POST /v1/sessions
func (rt *Router) handleCreateSession(w http.ResponseWriter, req *http.Request) error {
	info := rt.sessions.Create()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	return json.NewEncoder(w).Encode(info)
}

// GET /v1/sessions/{sid}
func (rt *Router) handleSession(w http.ResponseWriter, req *http.Request) error {
	sid, err := sessionID(req)
	if err != nil {
		return err
	}
	info, err := rt.sessions.Get(sid)
	if err != nil {
		return err
	}
	return writeJSON(w, info)
}

// POST /v1/sessions/{sid}/user
func (rt *Router) handleUser(w http.ResponseWriter, req *http.Request) error {
	sid, err := sessionID(req)
	if err != nil {
		return err
	}

	var body struct {
		Username string `json:"username"`
	}
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		return validationError{err}
	}
	if err := middleware.ValidateUsername(body.Username); err != nil {
		return validationError{err}
	}

	info, err := rt.sessions.SetUser(req.Context(), sid, body.Username)
	if err != nil {
		return err
	}
	return writeJSON(w, info)
}

// GET /v1/sessions/{sid}/scans
func (rt *Router) handleScans(w http.ResponseWriter, req *http.Request) error {
	sid, err := sessionID(req)
	if err != nil {
		return err
	}

	listing, err := rt.sessions.Scans(req.Context(), sid)
	if err != nil {
		return err
	}
	middleware.IncrementListings()
	return writeJSON(w, listing)
}

// POST /v1/sessions/{sid}/select
func (rt *Router) handleSelect(w http.ResponseWriter, req *http.Request) error {
	sid, err := sessionID(req)
	if err != nil {
		return err
	}

	var body struct {
		FileName string `json:"file_name"`
	}
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		return validationError{err}
	}
	if err := middleware.ValidateFileName(body.FileName); err != nil {
		return validationError{err}
	}

	info, err := rt.sessions.Select(req.Context(), sid, body.FileName)
	if err != nil {
		return err
	}
	return writeJSON(w, info)
}

// POST /v1/sessions/{sid}/load
func (rt *Router) handleLoad(w http.ResponseWriter, req *http.Request) error {
	sid, err := sessionID(req)
	if err != nil {
		return err
	}

	info, err := rt.sessions.Load(req.Context(), sid)
	if err != nil {
		return err
	}
	middleware.IncrementDownloads()
	return writeJSON(w, info)
}

// GET /v1/sessions/{sid}/overview
func (rt *Router) handleOverview(w http.ResponseWriter, req *http.Request) error {
	sid, err := sessionID(req)
	if err != nil {
		return err
	}

	o, err := rt.sessions.Overview(req.Context(), sid)
	if err != nil {
		return err
	}
	return writeJSON(w, o)
}

// GET /v1/sessions/{sid}/sections
func (rt *Router) handleSections(w http.ResponseWriter, req *http.Request) error {
	if _, err := sessionID(req); err != nil {
		return err
	}
	return writeJSON(w, rt.sessions.SectionList())
}

// GET /v1/sessions/{sid}/sections/{section}?q=
func (rt *Router) handleSection(w http.ResponseWriter, req *http.Request) error {
	sid, err := sessionID(req)
	if err != nil {
		return err
	}

	q := middleware.SanitizeQuery(req.URL.Query().Get("q"))
	view, err := rt.sessions.Section(req.Context(), sid, chi.URLParam(req, "section"), q)
	if err != nil {
		return err
	}
	return writeJSON(w, view)
}

func rowParams(req *http.Request) (row, table int, err error) {
	row, err = strconv.Atoi(chi.URLParam(req, "row"))
	if err != nil {
		return 0, 0, validationError{err}
	}
	if t := req.URL.Query().Get("table"); t != "" {
		table, err = strconv.Atoi(t)
		if err != nil {
			return 0, 0, validationError{err}
		}
	}
	return row, table, nil
}

// GET /v1/sessions/{sid}/sections/{section}/rows/{row}?q=&table=
func (rt *Router) handleRow(w http.ResponseWriter, req *http.Request) error {
	sid, err := sessionID(req)
	if err != nil {
		return err
	}
	row, table, err := rowParams(req)
	if err != nil {
		return err
	}

	q := middleware.SanitizeQuery(req.URL.Query().Get("q"))
	detail, err := rt.sessions.RowDetail(req.Context(), sid, chi.URLParam(req, "section"), q, table, row)
	if err != nil {
		return err
	}
	return writeJSON(w, detail)
}

// GET /v1/sessions/{sid}/sections/{section}/rows/{row}/archive?q=&table=
func (rt *Router) handleRowArchive(w http.ResponseWriter, req *http.Request) error {
	sid, err := sessionID(req)
	if err != nil {
		return err
	}
	row, table, err := rowParams(req)
	if err != nil {
		return err
	}

	q := middleware.SanitizeQuery(req.URL.Query().Get("q"))
	nodes, err := rt.sessions.RowArchive(req.Context(), sid, chi.URLParam(req, "section"), q, table, row)
	if err != nil {
		return err
	}
	return writeJSON(w, map[string]any{"nodes": nodes})
}

// GET /v1/sessions/{sid}/sections/processes/pid/{pid}
func (rt *Router) handleProcess(w http.ResponseWriter, req *http.Request) error {
	sid, err := sessionID(req)
	if err != nil {
		return err
	}
	pid, err := strconv.ParseInt(chi.URLParam(req, "pid"), 10, 64)
	if err != nil {
		return validationError{err}
	}

	rec, err := rt.sessions.ProcessByPID(req.Context(), sid, pid)
	if err != nil {
		return err
	}
	return writeJSON(w, rec)
}

// GET /v1/audit?limit=20
func (rt *Router) handleAudit(w http.ResponseWriter, req *http.Request) error {
	limit, _ := strconv.Atoi(req.URL.Query().Get("limit"))

	events, err := rt.audit.Latest(req.Context(), middleware.ValidateLimit(limit))
	if err != nil {
		return err
	}
	return writeJSON(w, events)
}

// POST /v1/sessions/{sid}/sections/{section}/summarize?q=&table=
func (rt *Router) handleSummarize(w http.ResponseWriter, req *http.Request) error {
	sid, err := sessionID(req)
	if err != nil {
		return err
	}

	var table int
	if t := req.URL.Query().Get("table"); t != "" {
		table, err = strconv.Atoi(t)
		if err != nil {
			return validationError{err}
		}
	}

	section := chi.URLParam(req, "section")
	q := middleware.SanitizeQuery(req.URL.Query().Get("q"))

	tbl, err := rt.sessions.SectionTable(req.Context(), sid, section, q, table)
	if err != nil {
		return err
	}
	summary, err := rt.aiSvc.SummarizeTable(req.Context(), section, tbl)
	if err != nil {
		return err
	}
	middleware.IncrementSummaries()
	rt.sessions.RecordEvent(req.Context(), sid, audit.ActionSummarize, section, q)

	return writeJSON(w, map[string]any{
		"section": section,
		"summary": summary,
	})
}

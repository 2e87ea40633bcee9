package httpx

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Anduamlakalehegne/Project-Manager/internal/service/auth"
	"github.com/Anduamlakalehegne/Project-Manager/internal/service/project"
	"github.com/Anduamlakalehegne/Project-Manager/internal/service/task"
)

// Router wires HTTP endpoints to services.
type Router struct {
	mux      *http.ServeMux
	logger   *slog.Logger
	auth     auth.Service
	project  project.Service
	task     task.Service
	limiter  RateLimiter
	dbHealth func(context.Context) error

	metricsOnce        sync.Once
	metricsInitialized bool
	requestTotal       *prometheus.CounterVec
	requestLatency     *prometheus.HistogramVec
	rateLimitHits      *prometheus.CounterVec
}

const (
	rateWindowDefault   = time.Minute
	rateLimitAuthSignup = 5
	rateLimitAuthLogin  = 12
	rateLimitUserWrite  = 60
	rateLimitUserRead   = 120
	healthCheckTimeout  = 2 * time.Second
)

// NewRouter assembles routes with dependencies.
func NewRouter(logger *slog.Logger, authSvc auth.Service, projectSvc project.Service, taskSvc task.Service, limiter RateLimiter, dbHealth func(context.Context) error) *Router {
	r := &Router{
		mux:      http.NewServeMux(),
		logger:   logger,
		auth:     authSvc,
		project:  projectSvc,
		task:     taskSvc,
		limiter:  limiter,
		dbHealth: dbHealth,
	}
	if r.limiter == nil {
		r.limiter = NewMemoryRateLimiter()
	}
	r.initMetrics()
	r.register()
	return r
}

// ServeHTTP delegates to the underlying mux.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.mux.ServeHTTP(w, req)
}

// Close releases background resources.
func (r *Router) Close() {
	if r.limiter != nil {
		r.limiter.Close()
	}
}

func (r *Router) register() {
	r.mux.HandleFunc("/healthz", r.audit("healthz", r.handleHealthz))
	r.mux.Handle("/metrics", promhttp.Handler())
	r.mux.HandleFunc("/auth", r.audit("auth", r.handleAuth))
	r.mux.HandleFunc("/projects", r.audit("projects", r.handlerAuthRate("projects", r.handleProjects)))
	r.mux.HandleFunc("/projects/", r.audit("projects", r.handlerAuthRate("projects", r.handleProjectSubroutes)))
}

func (r *Router) handleAuth(w http.ResponseWriter, req *http.Request) {
	if req.Method != http.MethodPost {
		r.methodNotAllowed(w)
		return
	}
	var payload struct {
		Action   string `json:"action"`
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
		Token    string `json:"token"`
	}
	if err := json.NewDecoder(req.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	limit, known := authActionLimit(payload.Action)
	if !known {
		writeError(w, http.StatusBadRequest, "invalid action")
		return
	}
	// Signup is limited separately from login/verify, so abuse of one
	// action cannot drain the budget of the other.
	if !r.allowRate(w, "auth", rateLimitKeyIP(req)+":"+payload.Action, limit, rateWindowDefault) {
		return
	}
	switch payload.Action {
	case "signup":
		token, profile, err := r.auth.Signup(req.Context(), payload.Name, payload.Email, payload.Password)
		if err != nil {
			r.writeServiceError(w, req, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"token": token, "user": profile})
	case "login":
		token, profile, err := r.auth.Login(req.Context(), payload.Email, payload.Password)
		if err != nil {
			r.writeServiceError(w, req, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"token": token, "user": profile})
	case "verify":
		profile, err := r.auth.Verify(req.Context(), payload.Token)
		if err != nil {
			r.writeServiceError(w, req, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"user": profile})
	}
}

func authActionLimit(action string) (int, bool) {
	switch action {
	case "signup":
		return rateLimitAuthSignup, true
	case "login", "verify":
		return rateLimitAuthLogin, true
	default:
		return 0, false
	}
}

// ownerID resolves the acting user. The bearer token is authoritative;
// a userId sent in the query or body must agree with it, and a mismatch
// reads as not found rather than forbidden.
func (r *Router) ownerID(w http.ResponseWriter, req *http.Request, claimed string) (string, bool) {
	info, ok := authInfoFromContext(req.Context())
	if !ok {
		r.logger.Error("auth context missing", "path", req.URL.Path)
		writeError(w, http.StatusInternalServerError, "authorization context missing")
		return "", false
	}
	if claimed == "" {
		claimed = strings.TrimSpace(req.URL.Query().Get("userId"))
	}
	if claimed != "" && claimed != info.UserID {
		writeError(w, http.StatusNotFound, "not found")
		return "", false
	}
	return info.UserID, true
}

func (r *Router) handleProjects(w http.ResponseWriter, req *http.Request) {
	switch req.Method {
	case http.MethodGet:
		ownerID, ok := r.ownerID(w, req, "")
		if !ok {
			return
		}
		projects, err := r.project.List(req.Context(), ownerID)
		if err != nil {
			r.writeServiceError(w, req, err)
			return
		}
		writeJSON(w, http.StatusOK, projects)
	case http.MethodPost:
		var payload struct {
			project.CreateInput
			UserID string `json:"userId"`
		}
		if err := json.NewDecoder(req.Body).Decode(&payload); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		ownerID, ok := r.ownerID(w, req, payload.UserID)
		if !ok {
			return
		}
		proj, err := r.project.Create(req.Context(), ownerID, payload.CreateInput)
		if err != nil {
			r.writeServiceError(w, req, err)
			return
		}
		writeJSON(w, http.StatusCreated, proj)
	default:
		r.methodNotAllowed(w)
	}
}

func (r *Router) handleProjectSubroutes(w http.ResponseWriter, req *http.Request) {
	trimmed := strings.TrimPrefix(req.URL.Path, "/projects/")
	parts := strings.Split(strings.Trim(trimmed, "/"), "/")
	if len(parts) == 0 || parts[0] == "" {
		r.notFound(w)
		return
	}
	projectID := parts[0]
	switch {
	case len(parts) == 1:
		r.handleProject(w, req, projectID)
	case len(parts) == 2 && parts[1] == "tasks":
		r.handleTasks(w, req, projectID)
	case len(parts) == 3 && parts[1] == "tasks":
		r.handleTask(w, req, projectID, parts[2])
	default:
		r.notFound(w)
	}
}

func (r *Router) handleProject(w http.ResponseWriter, req *http.Request, projectID string) {
	switch req.Method {
	case http.MethodGet:
		ownerID, ok := r.ownerID(w, req, "")
		if !ok {
			return
		}
		proj, err := r.project.Get(req.Context(), projectID, ownerID)
		if err != nil {
			r.writeServiceError(w, req, err)
			return
		}
		writeJSON(w, http.StatusOK, proj)
	case http.MethodPut:
		var payload struct {
			project.UpdateInput
			UserID string `json:"userId"`
		}
		if err := json.NewDecoder(req.Body).Decode(&payload); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		ownerID, ok := r.ownerID(w, req, payload.UserID)
		if !ok {
			return
		}
		proj, err := r.project.Update(req.Context(), projectID, ownerID, payload.UpdateInput)
		if err != nil {
			r.writeServiceError(w, req, err)
			return
		}
		writeJSON(w, http.StatusOK, proj)
	case http.MethodDelete:
		ownerID, ok := r.ownerID(w, req, "")
		if !ok {
			return
		}
		if err := r.project.Delete(req.Context(), projectID, ownerID); err != nil {
			r.writeServiceError(w, req, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		r.methodNotAllowed(w)
	}
}

func (r *Router) handleTasks(w http.ResponseWriter, req *http.Request, projectID string) {
	switch req.Method {
	case http.MethodGet:
		ownerID, ok := r.ownerID(w, req, "")
		if !ok {
			return
		}
		tasks, err := r.task.List(req.Context(), projectID, ownerID)
		if err != nil {
			r.writeServiceError(w, req, err)
			return
		}
		writeJSON(w, http.StatusOK, tasks)
	case http.MethodPost:
		var payload struct {
			task.CreateInput
			UserID string `json:"userId"`
		}
		if err := json.NewDecoder(req.Body).Decode(&payload); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		ownerID, ok := r.ownerID(w, req, payload.UserID)
		if !ok {
			return
		}
		created, err := r.task.Create(req.Context(), projectID, ownerID, payload.CreateInput)
		if err != nil {
			r.writeServiceError(w, req, err)
			return
		}
		writeJSON(w, http.StatusCreated, created)
	default:
		r.methodNotAllowed(w)
	}
}

func (r *Router) handleTask(w http.ResponseWriter, req *http.Request, projectID, taskID string) {
	switch req.Method {
	case http.MethodGet:
		ownerID, ok := r.ownerID(w, req, "")
		if !ok {
			return
		}
		found, err := r.task.Get(req.Context(), taskID, projectID, ownerID)
		if err != nil {
			r.writeServiceError(w, req, err)
			return
		}
		writeJSON(w, http.StatusOK, found)
	case http.MethodPut:
		var payload struct {
			task.UpdateInput
			UserID string `json:"userId"`
		}
		if err := json.NewDecoder(req.Body).Decode(&payload); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		ownerID, ok := r.ownerID(w, req, payload.UserID)
		if !ok {
			return
		}
		updated, err := r.task.Update(req.Context(), taskID, projectID, ownerID, payload.UpdateInput)
		if err != nil {
			r.writeServiceError(w, req, err)
			return
		}
		writeJSON(w, http.StatusOK, updated)
	case http.MethodDelete:
		ownerID, ok := r.ownerID(w, req, "")
		if !ok {
			return
		}
		if err := r.task.Delete(req.Context(), taskID, projectID, ownerID); err != nil {
			r.writeServiceError(w, req, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		r.methodNotAllowed(w)
	}
}

func (r *Router) handleHealthz(w http.ResponseWriter, req *http.Request) {
	if req.Method != http.MethodGet {
		r.methodNotAllowed(w)
		return
	}
	components := make(map[string]any)
	status := "ok"
	if r.dbHealth != nil {
		ctx, cancel := context.WithTimeout(req.Context(), healthCheckTimeout)
		defer cancel()
		if err := r.dbHealth(ctx); err != nil {
			status = "degraded"
			components["database"] = map[string]any{
				"status": "down",
				"error":  err.Error(),
			}
		} else {
			components["database"] = map[string]any{"status": "up"}
		}
	}
	payload := map[string]any{
		"status":     status,
		"components": components,
		"timestamp":  time.Now().UTC().Format(time.RFC3339Nano),
	}
	code := http.StatusOK
	if status != "ok" {
		code = http.StatusServiceUnavailable
	}
	writeJSON(w, code, payload)
}

func (r *Router) audit(route string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		recorder := &statusRecorder{ResponseWriter: w}
		start := time.Now()
		next(recorder, req)

		status := recorder.status
		if status == 0 {
			status = http.StatusOK
		}
		ctx := recorder.ctx
		if ctx == nil {
			ctx = req.Context()
		}
		duration := time.Since(start)
		r.recordRequestMetrics(req.Method, route, status, duration)

		fields := []any{
			"method", req.Method,
			"path", req.URL.Path,
			"status", status,
			"bytes", recorder.bytes,
			"duration_ms", duration.Milliseconds(),
		}
		if ip := clientIP(req); ip != "" {
			fields = append(fields, "ip", ip)
		}
		if reqID := strings.TrimSpace(req.Header.Get("X-Request-ID")); reqID != "" {
			fields = append(fields, "request_id", reqID)
		}
		if info, ok := authInfoFromContext(ctx); ok {
			fields = append(fields, "user_id", info.UserID)
		}

		switch {
		case status >= http.StatusInternalServerError:
			r.logger.Error("http_request", fields...)
		case status >= http.StatusBadRequest:
			r.logger.Warn("http_request", fields...)
		default:
			r.logger.Info("http_request", fields...)
		}
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
	bytes  int
	ctx    context.Context
}

func (sr *statusRecorder) WriteHeader(code int) {
	sr.status = code
	sr.ResponseWriter.WriteHeader(code)
}

func (sr *statusRecorder) Write(b []byte) (int, error) {
	if sr.status == 0 {
		sr.status = http.StatusOK
	}
	n, err := sr.ResponseWriter.Write(b)
	sr.bytes += n
	return n, err
}

func (sr *statusRecorder) SetContext(ctx context.Context) {
	sr.ctx = ctx
}

func (sr *statusRecorder) Flush() {
	if f, ok := sr.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

func (sr *statusRecorder) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	if h, ok := sr.ResponseWriter.(http.Hijacker); ok {
		return h.Hijack()
	}
	return nil, nil, errors.New("hijacker not supported")
}

func clientIP(req *http.Request) string {
	if forwarded := strings.TrimSpace(req.Header.Get("X-Forwarded-For")); forwarded != "" {
		parts := strings.Split(forwarded, ",")
		if len(parts) > 0 {
			ip := strings.TrimSpace(parts[0])
			if ip != "" {
				return ip
			}
		}
	}
	host, _, err := net.SplitHostPort(strings.TrimSpace(req.RemoteAddr))
	if err != nil {
		return strings.TrimSpace(req.RemoteAddr)
	}
	return host
}

func (r *Router) methodNotAllowed(w http.ResponseWriter) {
	writeError(w, http.StatusMethodNotAllowed, "method not allowed")
}

func (r *Router) notFound(w http.ResponseWriter) {
	writeError(w, http.StatusNotFound, "not found")
}

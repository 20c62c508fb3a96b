package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"evalbank/internal/app"
	"evalbank/internal/ratelimit"
	"evalbank/internal/session"
	"evalbank/internal/store"
	"evalbank/internal/util"
)

// Config wires required dependencies for the HTTP server.
type Config struct {
	App            *app.App
	Selections     session.SelectionStore
	APIToken       string
	WriteLimiter   *ratelimit.FixedWindowLimiter
	TrustedProxies *util.TrustedProxies
}

// Server exposes the evaluation bank HTTP API.
type Server struct {
	app          *app.App
	selections   session.SelectionStore
	apiToken     string
	writeLimiter *ratelimit.FixedWindowLimiter
	proxies      *util.TrustedProxies
	mux          *http.ServeMux
}

// New constructs the server with routes configured.
func New(cfg Config) (*Server, error) {
	if cfg.App == nil {
		return nil, errors.New("server: app is required")
	}
	if strings.TrimSpace(cfg.APIToken) == "" {
		return nil, errors.New("server: api token is required")
	}
	selections := cfg.Selections
	if selections == nil {
		selections = session.NewMemorySelectionStore()
	}
	s := &Server{
		app:          cfg.App,
		selections:   selections,
		apiToken:     strings.TrimSpace(cfg.APIToken),
		writeLimiter: cfg.WriteLimiter,
		proxies:      cfg.TrustedProxies,
		mux:          http.NewServeMux(),
	}
	s.routes()
	return s, nil
}

// Router returns the configured handler wrapped with the ambient middleware.
func (s *Server) Router() http.Handler {
	return util.WithRequestID(util.WithRequestLog("evalbank", util.WithSecurityHeaders(util.WithCORS(s.mux))))
}

func (s *Server) routes() {
	s.mux.HandleFunc("/healthz", s.handleHealth)

	s.mux.Handle("/personas", s.withAuth(s.handlePersonas))
	s.mux.Handle("/personas/", s.withAuth(s.handlePersonaByID))
	s.mux.Handle("/categories", s.withAuth(s.handleCategories))
	s.mux.Handle("/categories/", s.withAuth(s.handleCategoryByID))
	s.mux.Handle("/threads", s.withAuth(s.handleThreads))
	s.mux.Handle("/threads/", s.withAuth(s.handleThreadByID))
	s.mux.Handle("/questions", s.withAuth(s.handleQuestions))
	s.mux.Handle("/questions/", s.withAuth(s.handleQuestionByID))
	s.mux.Handle("/answers", s.withAuth(s.handleAnswers))
	s.mux.Handle("/answers/", s.withAuth(s.handleAnswerByID))
	s.mux.Handle("/evaluations", s.withAuth(s.handleEvaluations))
	s.mux.Handle("/evaluations/", s.withAuth(s.handleEvaluationByID))
	s.mux.Handle("/dimensions", s.withAuth(s.handleDimensions))

	s.mux.Handle("/session", s.withAuth(s.handleSession))
	s.mux.Handle("/session/selection", s.withAuth(s.handleSelection))
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// withAuth enforces the static bearer credential and, for mutating
// methods, the write rate limit.
func (s *Server) withAuth(next http.HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := bearerToken(r)
		if !ok || token != s.apiToken {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		if s.writeLimiter != nil && isMutating(r.Method) {
			if !s.writeLimiter.Allow(util.ClientIP(r, s.proxies)) {
				writeError(w, http.StatusTooManyRequests, "rate limit exceeded")
				return
			}
		}
		next(w, r)
	})
}

func isMutating(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		return true
	default:
		return false
	}
}

func bearerToken(r *http.Request) (string, bool) {
	authHeader := r.Header.Get("Authorization")
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return "", false
	}
	token := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
	if token == "" {
		return "", false
	}
	return token, true
}

// pathID extracts the trailing id (plus optional action) from a path like
// /threads/{id} or /threads/{id}/resequence.
func pathID(r *http.Request, prefix string) (int64, string, bool) {
	rest := strings.TrimPrefix(r.URL.Path, prefix)
	parts := strings.SplitN(rest, "/", 2)
	id, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil || id <= 0 {
		return 0, "", false
	}
	action := ""
	if len(parts) == 2 {
		action = parts[1]
	}
	return id, action, true
}

func parentIDParam(r *http.Request, name string) (int64, bool) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return 0, false
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20)).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return false
	}
	return true
}

func writeList[T any](w http.ResponseWriter, items []T) {
	if items == nil {
		items = []T{}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"items": items,
		"count": len(items),
	})
}

// writeAppError maps domain validation failures to 400s and everything
// else to a 500.
func writeAppError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, app.ErrInvalidDimension),
		errors.Is(err, app.ErrScoreOutOfRange),
		errors.Is(err, app.ErrNameRequired),
		errors.Is(err, app.ErrContentRequired),
		errors.Is(err, store.ErrMissingFilter):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, app.ErrParentNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func methodNotAllowed(w http.ResponseWriter) {
	writeError(w, http.StatusMethodNotAllowed, "method not allowed")
}

func notFound(w http.ResponseWriter, msg string) {
	writeError(w, http.StatusNotFound, msg)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

type errorResponse struct {
	Error     string `json:"error"`
	Code      string `json:"code"`
	RequestID string `json:"requestId,omitempty"`
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{
		Error:     msg,
		Code:      errorCode(status, msg),
		RequestID: strings.TrimSpace(w.Header().Get("X-Request-Id")),
	})
}

func errorCode(status int, msg string) string {
	message := strings.ToLower(strings.TrimSpace(msg))
	switch {
	case message == "unauthorized":
		return "AUTH_INVALID_TOKEN"
	case message == "rate limit exceeded":
		return "REQUEST_RATE_LIMITED"
	case strings.Contains(message, "invalid dimension"):
		return "EVAL_INVALID_DIMENSION"
	case strings.Contains(message, "score out of range"):
		return "EVAL_SCORE_OUT_OF_RANGE"
	case strings.Contains(message, "name is required"):
		return "RECORD_NAME_REQUIRED"
	case strings.Contains(message, "content is required"):
		return "RECORD_CONTENT_REQUIRED"
	case strings.Contains(message, "parent record not found"):
		return "RECORD_PARENT_NOT_FOUND"
	case strings.Contains(message, "id filter"):
		return "RECORD_MISSING_FILTER"
	case strings.Contains(message, "query parameter is required"):
		return "RECORD_MISSING_PARENT_FILTER"
	case message == "session id header required":
		return "SESSION_HEADER_REQUIRED"
	case message == "invalid json body":
		return "RECORD_INVALID_REQUEST"
	case message == "method not allowed":
		return "SYSTEM_METHOD_NOT_ALLOWED"
	}

	switch status {
	case http.StatusBadRequest:
		return "RECORD_INVALID_REQUEST"
	case http.StatusUnauthorized:
		return "AUTH_INVALID_TOKEN"
	case http.StatusNotFound:
		return "RECORD_NOT_FOUND"
	case http.StatusMethodNotAllowed:
		return "SYSTEM_METHOD_NOT_ALLOWED"
	case http.StatusTooManyRequests:
		return "REQUEST_RATE_LIMITED"
	default:
		if status >= http.StatusInternalServerError {
			return "SYSTEM_INTERNAL_ERROR"
		}
		return "REQUEST_ERROR"
	}
}

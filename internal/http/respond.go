package httpx

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Anduamlakalehegne/Project-Manager/internal/domain"
	"github.com/Anduamlakalehegne/Project-Manager/internal/repository"
	"github.com/Anduamlakalehegne/Project-Manager/internal/service/auth"
)

// writeJSON writes a JSON response with status code.
func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// writeError sends an error message body.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeServiceError maps a service failure onto the wire. Known error
// kinds get their status; anything else is an internal error whose
// detail is logged server-side only.
func (r *Router) writeServiceError(w http.ResponseWriter, req *http.Request, err error) {
	var verr domain.ValidationError
	switch {
	case errors.As(err, &verr):
		writeError(w, http.StatusBadRequest, verr.Error())
	case errors.Is(err, repository.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
	case errors.Is(err, auth.ErrUserNotFound):
		writeError(w, http.StatusNotFound, "user not found")
	case errors.Is(err, auth.ErrEmailTaken), errors.Is(err, repository.ErrConflict):
		writeError(w, http.StatusConflict, "email already exists")
	case errors.Is(err, auth.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, "invalid password")
	case errors.Is(err, auth.ErrInvalidToken):
		writeError(w, http.StatusUnauthorized, "invalid token")
	default:
		r.logger.Error("request failed", "method", req.Method, "path", req.URL.Path, "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

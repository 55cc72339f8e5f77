package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/R3gret/ITPM-Backend/internal/common"
	"github.com/R3gret/ITPM-Backend/internal/logging"
)

// maxBodyBytes caps JSON request bodies.
const maxBodyBytes = 10 << 10

const (
	msgMissingToken     = "Authorization token required (Bearer token)"
	msgTokenExpired     = "Token expired"
	msgTokenMalformed   = "Malformed token"
	msgForbidden        = "You do not have permission to perform this action"
	msgTooManyAttempts  = "Too many attempts, please try again later"
	msgInvalidCreds     = "Invalid username or password"
	msgConflict         = "Username or email already exists"
	msgValidationFailed = "Validation failed"
	msgInvalidBody      = "Invalid JSON body"
	msgNotFound         = "Not found"
	msgInternal         = "Internal server error"
)

type messageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type validationResponse struct {
	Success bool                `json:"success"`
	Message string              `json:"message"`
	Errors  []common.FieldError `json:"errors"`
}

type internalErrorResponse struct {
	Success   bool   `json:"success"`
	Error     string `json:"error"`
	Message   string `json:"message,omitempty"`
	Timestamp string `json:"timestamp"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, messageResponse{Success: false, Message: message})
}

// decodeJSON reads a size-limited JSON body into dst.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeMessage(w, http.StatusBadRequest, msgInvalidBody)
		return false
	}
	return true
}

// errorWriter turns service errors into HTTP responses. Unexpected errors are
// logged and their detail is only returned in development.
type errorWriter struct {
	logger      logging.Logger
	development bool
	now         func() time.Time
}

func (e *errorWriter) write(w http.ResponseWriter, r *http.Request, err error) {
	var verr *common.ValidationError
	switch {
	case errors.As(err, &verr):
		writeJSON(w, http.StatusBadRequest, validationResponse{
			Success: false,
			Message: msgValidationFailed,
			Errors:  verr.Fields,
		})
	case errors.Is(err, common.ErrConflict):
		writeMessage(w, http.StatusConflict, msgConflict)
	case errors.Is(err, common.ErrInvalidCredentials):
		writeMessage(w, http.StatusUnauthorized, msgInvalidCreds)
	case errors.Is(err, common.ErrMissingCredential):
		writeMessage(w, http.StatusUnauthorized, msgMissingToken)
	case errors.Is(err, common.ErrTokenExpired):
		writeMessage(w, http.StatusUnauthorized, msgTokenExpired)
	case errors.Is(err, common.ErrTokenMalformed):
		writeMessage(w, http.StatusUnauthorized, msgTokenMalformed)
	case errors.Is(err, common.ErrForbidden):
		writeMessage(w, http.StatusForbidden, msgForbidden)
	case errors.Is(err, common.ErrRateLimited):
		writeMessage(w, http.StatusTooManyRequests, msgTooManyAttempts)
	case errors.Is(err, common.ErrorNotFound):
		writeMessage(w, http.StatusNotFound, msgNotFound)
	default:
		e.internal(w, r, err)
	}
}

func (e *errorWriter) internal(w http.ResponseWriter, r *http.Request, err error) {
	ts := e.now().UTC().Format(time.RFC3339)
	e.logger.Error(r.Context(), "request failed",
		"error", err.Error(),
		"path", r.URL.Path,
		"method", r.Method,
		"timestamp", ts,
	)

	body := internalErrorResponse{Success: false, Error: msgInternal, Timestamp: ts}
	if e.development {
		body.Message = err.Error()
	}
	writeJSON(w, http.StatusInternalServerError, body)
}

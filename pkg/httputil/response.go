package httputil

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	apperrors "github.com/petdailykit/catalog/pkg/errors"
	"github.com/petdailykit/catalog/pkg/logger"
	"github.com/petdailykit/catalog/pkg/validator"
)

// ErrorBody is the error response shape: a single "error" field carrying
// either a client-safe message or, for internal failures, the backing error.
type ErrorBody struct {
	Error string `json:"error"`
}

// WriteJSON writes v as a JSON response with the given status code.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	// Headers are already sent; nothing meaningful can be done if encoding fails.
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError writes an error response derived from the error type. AppErrors
// map to their own status and message; anything else is a 500 carrying the
// raw error message. Internal errors are logged with method and path, using
// the request-scoped logger from context when one has been mounted.
func WriteError(w http.ResponseWriter, r *http.Request, err error, fallback *slog.Logger) {
	l := logger.FromContext(r.Context())
	if l == slog.Default() {
		l = fallback
	}

	status := apperrors.HTTPStatus(err)
	message := err.Error()

	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		message = appErr.Message
	}

	if status == http.StatusInternalServerError {
		l.ErrorContext(r.Context(), "internal error",
			slog.String("error", err.Error()),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
		)
	}

	WriteJSON(w, status, ErrorBody{Error: message})
}

// WriteValidationError writes a 400 response for a failed request validation.
func WriteValidationError(w http.ResponseWriter, err error) {
	var valErr *validator.ValidationError
	if errors.As(err, &valErr) {
		WriteJSON(w, http.StatusBadRequest, ErrorBody{Error: valErr.Error()})
		return
	}
	WriteJSON(w, http.StatusBadRequest, ErrorBody{Error: err.Error()})
}

// ParseID validates that the given route parameter is a positive integer
// identifier. On failure it writes a 400 response and returns false.
func ParseID(w http.ResponseWriter, param string) (int64, bool) {
	id, err := strconv.ParseInt(param, 10, 64)
	if err != nil || id < 1 {
		WriteJSON(w, http.StatusBadRequest, ErrorBody{Error: "invalid product id: " + param})
		return 0, false
	}
	return id, true
}

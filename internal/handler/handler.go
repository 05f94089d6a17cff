package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"tradestreet-api/internal/auth"
	"tradestreet-api/internal/middleware"
	"tradestreet-api/internal/model"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

// maxJSONBody caps the size of decoded request bodies.
const maxJSONBody = 1 << 20

// MessageResponse is a success body carrying only a message.
type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		// Log the error but don't expose it to the client
		return
	}
}

// writeError writes an error response with the given status code, code and message.
func writeError(w http.ResponseWriter, r *http.Request, status int, code, message string, logger zerolog.Logger) {
	requestID := chimw.GetReqID(r.Context())
	logger.Warn().
		Str("code", code).
		Str("error", message).
		Int("status", status).
		Str("request_id", requestID).
		Msg("handler error")
	writeJSON(w, status, model.ErrorResponse{
		Success:       false,
		Error:         code,
		Message:       message,
		CorrelationID: requestID,
	})
}

// statusForKind maps a domain error kind to an HTTP status.
func statusForKind(kind model.ErrorKind) int {
	switch kind {
	case model.KindNotFound:
		return http.StatusNotFound
	case model.KindInvalidInput, model.KindInvalidState, model.KindConflict:
		return http.StatusBadRequest
	case model.KindUnauthorised:
		return http.StatusUnauthorized
	case model.KindForbidden:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// writeServiceError writes a domain error with its mapped status. Any other
// error is logged and reported as a generic failure with fallback as message.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error, fallback string, logger zerolog.Logger) {
	var domainErr *model.DomainError
	if errors.As(err, &domainErr) {
		writeError(w, r, statusForKind(domainErr.Kind), domainErr.Code, domainErr.Message, logger)
		return
	}

	logger.Error().
		Err(err).
		Str("method", r.Method).
		Str("path", r.URL.Path).
		Str("request_id", chimw.GetReqID(r.Context())).
		Msg(fallback)
	writeError(w, r, http.StatusInternalServerError, model.ErrCodeInternalError, fallback, logger)
}

// decodeJSON decodes the request body into dst.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBody)
	return json.NewDecoder(r.Body).Decode(dst)
}

// principal returns the authenticated caller. Routes using it sit behind
// middleware.Authenticate; a missing principal is reported as unauthorised.
func principal(w http.ResponseWriter, r *http.Request, logger zerolog.Logger) (auth.Principal, bool) {
	p, ok := middleware.PrincipalFrom(r.Context())
	if !ok {
		writeServiceError(w, r, model.ErrInvalidToken, "", logger)
	}
	return p, ok
}

package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"schoolhub-backend/internal/domain"
	"schoolhub-backend/internal/logger"
)

// errorResponse is the JSON body of every non-2xx response
type errorResponse struct {
	Error  string `json:"error"`
	Reason string `json:"reason,omitempty"`
}

// writeJSON writes a JSON response with the given status code
func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Error("Failed to encode response body", "error", err)
	}
}

// writeError maps domain errors onto HTTP status codes
func writeError(w http.ResponseWriter, err error) {
	var notFound *domain.NotFoundError
	var invalid *domain.InvalidArgumentError
	var rule *domain.BusinessRuleError

	switch {
	case errors.As(err, &notFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: notFound.Error()})
	case errors.As(err, &invalid):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: invalid.Error()})
	case errors.As(err, &rule):
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{
			Error:  rule.Message,
			Reason: string(rule.Reason),
		})
	case errors.Is(err, domain.ErrRetryExhausted):
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: err.Error()})
	default:
		logger.Error("Unhandled error in HTTP handler", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal server error"})
	}
}

package ui

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"regimen/domain/core"
	"regimen/internal/errors"
)

// respondJSON writes a JSON response with the given status code
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		json.NewEncoder(w).Encode(payload)
	}
}

// respondError maps application errors to HTTP status codes. Unrecognized
// errors become 500s and are the only ones logged at error level.
func (a *App) respondError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	message := "internal server error"

	switch {
	case core.IsNotFoundError(err):
		status = http.StatusNotFound
		message = err.Error()
	default:
		switch errors.GetCode(err) {
		case errors.CodeValidationError, errors.CodeInvalidInput:
			status = http.StatusBadRequest
			message = err.Error()
		case errors.CodeImportFailed, errors.CodeLayoutInvalid:
			status = http.StatusUnprocessableEntity
			message = err.Error()
		case errors.CodeNotFound:
			status = http.StatusNotFound
			message = err.Error()
		}
	}

	if status == http.StatusInternalServerError {
		a.logger.Error("Request failed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(err))
	}

	respondJSON(w, status, map[string]interface{}{"error": message})
}

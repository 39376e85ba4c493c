package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/xela07ax/blytz-console/internal/domain"
	"github.com/xela07ax/blytz-console/internal/engine"
	"go.uber.org/zap"
)

// errorBody: единый формат ошибки API
type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError раскладывает доменные ошибки по HTTP-статусам.
func writeError(w http.ResponseWriter, logger *zap.Logger, err error) {
	switch {
	case errors.Is(err, domain.ErrViewNotFound):
		writeJSON(w, http.StatusNotFound, errorBody{Error: "view_not_found", Message: "The page state has expired. Reload the page."})
	case errors.Is(err, domain.ErrActionPending):
		writeJSON(w, http.StatusConflict, errorBody{Error: "action_pending", Message: "Action already in progress."})
	case errors.Is(err, domain.ErrValidation), errors.Is(err, domain.ErrUnknownField), errors.Is(err, domain.ErrInvalidStatus):
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "validation_error", Message: err.Error()})
	case errors.Is(err, engine.ErrRunnerStopped):
		writeJSON(w, http.StatusServiceUnavailable, errorBody{Error: "shutting_down", Message: "Server is shutting down."})
	default:
		logger.Error("request failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, errorBody{Error: "internal_error", Message: "Internal server error."})
	}
}

func badRequest(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusBadRequest, errorBody{Error: "bad_request", Message: msg})
}

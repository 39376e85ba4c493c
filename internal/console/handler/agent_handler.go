package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/xela07ax/blytz-console/internal/domain"
	"go.uber.org/zap"
)

// AgentService Описываем, что нам нужно от сервиса
type AgentService interface {
	GetAgent(ctx context.Context, viewID string) (*domain.AgentView, error)
	ToggleAgent(ctx context.Context, viewID string) (*domain.AgentView, error)
}

type AgentHandler struct {
	service AgentService
	logger  *zap.Logger
}

func NewAgentHandler(s AgentService, logger *zap.Logger) *AgentHandler {
	return &AgentHandler{service: s, logger: logger.Named("agent-handler")}
}

// Routes монтируется под /api/views/{viewID}
func (h *AgentHandler) Routes(r chi.Router) {
	r.Get("/agent", h.Get)
	r.Post("/agent/toggle", h.Toggle)
}

func (h *AgentHandler) Get(w http.ResponseWriter, r *http.Request) {
	view, err := h.service.GetAgent(r.Context(), chi.URLParam(r, "viewID"))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// Toggle отвечает 202 сразу: переключение закончится через симулированную задержку.
func (h *AgentHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	view, err := h.service.ToggleAgent(r.Context(), chi.URLParam(r, "viewID"))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusAccepted, view)
}

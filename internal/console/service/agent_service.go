package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/xela07ax/blytz-console/internal/audit"
	"github.com/xela07ax/blytz-console/internal/domain"
	"github.com/xela07ax/blytz-console/internal/engine"
	"github.com/xela07ax/blytz-console/internal/viewstore"
	"go.uber.org/zap"
	"k8s.io/utils/clock"
)

// Текст, который видит пользователь, если бэкенд не смог переключить агента
const msgToggleFailed = "Failed to update agent status. Please try again."

// ActionExecutor запускает действие в фоне и зовёт done по завершении (engine.ActionRunner).
type ActionExecutor interface {
	Go(traceID, action string, payload []byte, done engine.CompletionFunc) error
}

type AgentService struct {
	store   viewstore.Store
	exec    ActionExecutor
	journal actionJournal
	clock   clock.PassiveClock
	logger  *zap.Logger
}

func NewAgentService(store viewstore.Store, exec ActionExecutor, journal audit.Recorder, clk clock.PassiveClock, logger *zap.Logger) *AgentService {
	if clk == nil {
		clk = clock.RealClock{}
	}
	logger = logger.Named("agent-service")
	return &AgentService{
		store:   store,
		exec:    exec,
		journal: newActionJournal(journal, clk, logger),
		clock:   clk,
		logger:  logger,
	}
}

func (s *AgentService) GetAgent(ctx context.Context, viewID string) (*domain.AgentView, error) {
	v, err := s.store.Get(ctx, viewID)
	if err != nil {
		return nil, err
	}
	return agentView(v), nil
}

// ToggleAgent ставит флаг pending и запускает симулированное переключение.
// Пока флаг стоит, повторный вызов получает ErrActionPending: очереди нет.
func (s *AgentService) ToggleAgent(ctx context.Context, viewID string) (*domain.AgentView, error) {
	v, err := s.store.Update(ctx, viewID, func(v *domain.ViewState) error {
		if v.AgentPending {
			return domain.ErrActionPending
		}
		v.AgentPending = true
		v.LastError = ""
		return nil
	})
	if err != nil {
		return nil, err
	}

	from := v.Agent.Status
	payload := map[string]any{
		"agent_id": v.Agent.ID,
		"from":     string(from),
		"to":       string(from.Toggled()),
	}
	body, _ := json.Marshal(payload)

	traceID := engine.TraceID(ctx)
	started := s.clock.Now()

	err = s.exec.Go(traceID, domain.ActionAgentToggle, body, func(cbCtx context.Context, _ []byte, callErr error) {
		_, upErr := s.store.Update(cbCtx, viewID, func(v *domain.ViewState) error {
			v.AgentPending = false
			if callErr != nil {
				v.LastError = msgToggleFailed
				return nil
			}
			v.Agent.Status = v.Agent.Status.Toggled()
			return nil
		})
		s.journal.record(traceID, viewID, domain.ActionAgentToggle, payload, started, callErr, upErr)
	})
	if err != nil {
		s.rollback(ctx, viewID)
		return nil, fmt.Errorf("agent toggle: %w", err)
	}

	s.logger.Info("agent toggle started",
		zap.String("view_id", viewID),
		zap.String("agent_id", v.Agent.ID),
		zap.String("from", string(from)))
	return agentView(v), nil
}

// rollback снимает pending, если действие так и не стартовало.
func (s *AgentService) rollback(ctx context.Context, viewID string) {
	_, err := s.store.Update(ctx, viewID, func(v *domain.ViewState) error {
		v.AgentPending = false
		return nil
	})
	if err != nil && !errors.Is(err, domain.ErrViewNotFound) {
		s.logger.Error("failed to clear pending flag", zap.String("view_id", viewID), zap.Error(err))
	}
}

func agentView(v *domain.ViewState) *domain.AgentView {
	return &domain.AgentView{
		Agent:   v.Agent,
		Pending: v.AgentPending,
		Error:   v.LastError,
	}
}

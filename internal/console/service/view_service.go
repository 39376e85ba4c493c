package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/xela07ax/blytz-console/internal/domain"
	"github.com/xela07ax/blytz-console/internal/engine"
	"github.com/xela07ax/blytz-console/internal/mockdata"
	"github.com/xela07ax/blytz-console/internal/viewstore"
	"go.uber.org/zap"
	"k8s.io/utils/clock"
)

// ViewService управляет жизненным циклом страниц: монтирование сеет состояние
// из mock-констант, размонтирование его выбрасывает.
type ViewService struct {
	store   viewstore.Store
	metrics *engine.Metrics
	clock   clock.PassiveClock
	logger  *zap.Logger
}

func NewViewService(store viewstore.Store, metrics *engine.Metrics, clk clock.PassiveClock, logger *zap.Logger) *ViewService {
	if clk == nil {
		clk = clock.RealClock{}
	}
	return &ViewService{
		store:   store,
		metrics: metrics,
		clock:   clk,
		logger:  logger.Named("view-service"),
	}
}

// Mount создаёт свежий view. Перезагрузка страницы = новый Mount.
func (s *ViewService) Mount(ctx context.Context, page domain.Page) (*domain.ViewState, error) {
	now := s.clock.Now()
	v := &domain.ViewState{
		ID:        uuid.NewString(),
		Page:      page,
		Agent:     mockdata.Agent(),
		Settings:  mockdata.Settings(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.store.Create(ctx, v); err != nil {
		s.logger.Error("failed to mount view", zap.String("page", string(page)), zap.Error(err))
		return nil, fmt.Errorf("mount %s: %w", page, err)
	}
	if s.metrics != nil {
		s.metrics.ViewsMounted.WithLabelValues(string(page)).Inc()
	}
	s.logger.Debug("view mounted", zap.String("view_id", v.ID), zap.String("page", string(page)))
	return v, nil
}

// Unmount идемпотентен: повторный вызов и неизвестный id не ошибка.
func (s *ViewService) Unmount(ctx context.Context, viewID string) error {
	if err := s.store.Delete(ctx, viewID); err != nil {
		return fmt.Errorf("unmount %s: %w", viewID, err)
	}
	s.logger.Debug("view unmounted", zap.String("view_id", viewID))
	return nil
}

// Overview: данные главной дашборда; агент берётся из view, чтобы видеть переключения.
func (s *ViewService) Overview(v *domain.ViewState) domain.Overview {
	return domain.Overview{
		Agent:    v.Agent,
		Pending:  v.AgentPending,
		Activity: mockdata.Activity(),
		Plan:     mockdata.Plan(),
	}
}

func (s *ViewService) Billing() domain.Billing {
	return mockdata.Billing()
}

func (s *ViewService) Marketplace() []domain.MarketplaceTemplate {
	return mockdata.Templates()
}

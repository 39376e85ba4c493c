package viewstore

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/xela07ax/blytz-console/internal/domain"
	"go.uber.org/zap"
	"k8s.io/utils/clock"
)

type memoryEntry struct {
	state     *domain.ViewState
	expiresAt time.Time
}

// MemoryStore держит view в мапе под RWMutex. TTL продлевается при каждом обращении.
type MemoryStore struct {
	mu     sync.RWMutex
	views  map[string]*memoryEntry
	ttl    time.Duration
	clock  clock.WithTicker
	logger *zap.Logger
}

func NewMemoryStore(clk clock.WithTicker, ttl time.Duration, logger *zap.Logger) *MemoryStore {
	if clk == nil {
		clk = clock.RealClock{}
	}
	return &MemoryStore{
		views:  make(map[string]*memoryEntry),
		ttl:    ttl,
		clock:  clk,
		logger: logger.Named("viewstore"),
	}
}

func (m *MemoryStore) Create(_ context.Context, v *domain.ViewState) error {
	if v.ID == "" {
		return fmt.Errorf("viewstore: empty view id")
	}
	now := m.clock.Now()

	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.views[v.ID]; exists {
		return fmt.Errorf("viewstore: view %s already exists", v.ID)
	}
	m.views[v.ID] = &memoryEntry{state: clone(v), expiresAt: now.Add(m.ttl)}
	return nil
}

func (m *MemoryStore) Get(_ context.Context, id string) (*domain.ViewState, error) {
	now := m.clock.Now()

	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.views[id]
	if !ok || !now.Before(e.expiresAt) {
		return nil, domain.ErrViewNotFound
	}
	e.expiresAt = now.Add(m.ttl)
	return clone(e.state), nil
}

func (m *MemoryStore) Update(_ context.Context, id string, fn UpdateFunc) (*domain.ViewState, error) {
	now := m.clock.Now()

	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.views[id]
	if !ok || !now.Before(e.expiresAt) {
		return nil, domain.ErrViewNotFound
	}

	next := clone(e.state)
	if err := fn(next); err != nil {
		return nil, err
	}
	next.UpdatedAt = now
	e.state = next
	e.expiresAt = now.Add(m.ttl)
	return clone(next), nil
}

func (m *MemoryStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.views, id)
	return nil
}

// Len — число живых view, для метрик и тестов.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.views)
}

// RunSweeper выкидывает протухшие view каждые interval, пока жив ctx.
func (m *MemoryStore) RunSweeper(ctx context.Context, interval time.Duration) {
	ticker := m.clock.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C():
			if n := m.sweep(); n > 0 {
				m.logger.Debug("expired views removed", zap.Int("count", n))
			}
		case <-ctx.Done():
			m.logger.Info("view sweeper stopped")
			return
		}
	}
}

func (m *MemoryStore) sweep() int {
	now := m.clock.Now()

	m.mu.Lock()
	defer m.mu.Unlock()
	removed := 0
	for id, e := range m.views {
		if !now.Before(e.expiresAt) {
			delete(m.views, id)
			removed++
		}
	}
	return removed
}

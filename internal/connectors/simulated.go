package connectors

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/xela07ax/blytz-console/internal/domain"
	"k8s.io/utils/clock"
)

// SimulatedBackend стоит на месте реального API: выжидает фиксированную задержку
// и всегда отвечает успехом. Отменяется только через контекст.
type SimulatedBackend struct {
	clock     clock.Clock
	latencies map[string]time.Duration
}

func NewSimulatedBackend(c clock.Clock, latencies map[string]time.Duration) *SimulatedBackend {
	if c == nil {
		c = clock.RealClock{}
	}
	return &SimulatedBackend{clock: c, latencies: latencies}
}

// Latency возвращает задержку действия. Неизвестные действия не поддерживаются.
func (b *SimulatedBackend) Latency(action string) (time.Duration, bool) {
	d, ok := b.latencies[action]
	return d, ok
}

func (b *SimulatedBackend) Call(ctx context.Context, action string, payload []byte) ([]byte, error) {
	latency, ok := b.latencies[action]
	if !ok {
		return nil, fmt.Errorf("action %s not supported by backend", action)
	}

	if latency > 0 {
		select {
		case <-b.clock.After(latency):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	resp := map[string]any{"status": "ok", "action": action}
	switch action {
	case domain.ActionAgentToggle:
		resp["accepted"] = true
	case domain.ActionSignupSubmit:
		resp["redirect"] = domain.RouteDashboard
	case domain.ActionSettingsSave:
		resp["saved"] = true
	}
	return json.Marshal(resp)
}

package main

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"github.com/xela07ax/blytz-console/internal/audit"
	"github.com/xela07ax/blytz-console/internal/connectors"
	"github.com/xela07ax/blytz-console/internal/console/handler"
	"github.com/xela07ax/blytz-console/internal/console/server"
	"github.com/xela07ax/blytz-console/internal/console/service"
	"github.com/xela07ax/blytz-console/internal/console/view"
	"github.com/xela07ax/blytz-console/internal/domain"
	"github.com/xela07ax/blytz-console/internal/effects"
	"github.com/xela07ax/blytz-console/internal/engine"
	"github.com/xela07ax/blytz-console/internal/infra"
	"github.com/xela07ax/blytz-console/internal/viewstore"
	"go.uber.org/zap"
	"k8s.io/utils/clock"
)

// app — собранное приложение и всё, что нужно остановить при выходе.
type app struct {
	server  *server.ConsoleServer
	runner  *engine.ActionRunner
	journal *audit.Journal
	memory  *viewstore.MemoryStore // nil, если view живут в Redis
	rdb     *redis.Client
}

func buildApp(cfg *infra.Config, logger *zap.Logger) (*app, error) {
	clk := clock.RealClock{}

	// Метрики
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics := engine.NewMetrics(reg)

	a := &app{}

	// 1. Хранилище view
	var store viewstore.Store
	switch cfg.Views.Store {
	case "redis":
		a.rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		store = viewstore.NewRedisStore(a.rdb, cfg.Views.TTL, clk)
	default:
		a.memory = viewstore.NewMemoryStore(clk, cfg.Views.TTL, logger)
		store = a.memory
	}

	// 2. Журнал действий
	a.journal = audit.NewJournal(audit.NewLogSink(logger), audit.JournalOptions{
		Gauge: metrics.JournalBufferFill,
	}, logger)

	// 3. Execution Layer: симулятор задержки под Reliability (Retries, Circuit Breaker)
	backend := connectors.NewSimulatedBackend(clk, map[string]time.Duration{
		domain.ActionAgentToggle:  cfg.Simulation.AgentToggleLatency,
		domain.ActionSignupSubmit: cfg.Simulation.SignupLatency,
		domain.ActionSettingsSave: cfg.Simulation.SettingsLatency,
	})
	safeExecutor := engine.NewReliabilityWrapper(backend, cfg.Reliability, metrics)
	a.runner = engine.NewActionRunner(safeExecutor, metrics, logger)

	// 4. Сервисы и хендлеры
	renderer, err := view.NewRenderer()
	if err != nil {
		return nil, fmt.Errorf("init renderer: %w", err)
	}
	gen := effects.NewGenerator(nil)

	views := service.NewViewService(store, metrics, clk, logger)
	agents := service.NewAgentService(store, a.runner, a.journal, clk, logger)
	forms := service.NewFormService(store, a.runner, a.journal, clk, logger)

	a.server = server.NewConsoleServer(cfg, logger, metrics, reg,
		handler.NewPageHandler(views, renderer, gen, cfg.Simulation.SparkleInterval, logger),
		handler.NewAgentHandler(agents, logger),
		handler.NewFormHandler(forms, logger),
		handler.NewEffectsHandler(gen),
	)
	return a, nil
}

// start поднимает фоновые воркеры. Redis проверяем сразу, чтобы не упасть на первом запросе.
func (a *app) start(ctx context.Context, cfg *infra.Config) error {
	if a.rdb != nil {
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := a.rdb.Ping(pingCtx).Err(); err != nil {
			return fmt.Errorf("redis unreachable: %w", err)
		}
	}
	a.journal.Start()
	if a.memory != nil {
		go a.memory.RunSweeper(ctx, cfg.Views.SweepInterval)
	}
	return nil
}

// stop: сначала дожидаемся действий в полёте, потом сливаем журнал с их итогами.
func (a *app) stop(ctx context.Context, logger *zap.Logger) {
	if err := a.runner.Shutdown(ctx); err != nil {
		logger.Warn("action runner did not stop in time", zap.Error(err))
	}
	a.journal.Stop()
	if a.rdb != nil {
		if err := a.rdb.Close(); err != nil {
			logger.Warn("redis close failed", zap.Error(err))
		}
	}
}

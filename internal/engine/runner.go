package engine

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"
)

// ErrRunnerStopped — новые действия после Shutdown не принимаются.
var ErrRunnerStopped = errors.New("action runner stopped")

// CompletionFunc получает результат действия. Вызывается ровно один раз,
// с собственным контекстом: контекст HTTP-запроса к этому моменту уже мёртв.
type CompletionFunc func(ctx context.Context, resp []byte, err error)

// ActionRunner исполняет действия в фоне. Живёт столько же, сколько приложение,
// Shutdown отменяет незавершённые вызовы и дожидается их колбэков.
type ActionRunner struct {
	exec    ExecutionProvider
	metrics *Metrics
	logger  *zap.Logger

	ctx    context.Context
	cancel context.CancelFunc

	mu      sync.Mutex
	stopped bool
	wg      sync.WaitGroup
}

func NewActionRunner(exec ExecutionProvider, metrics *Metrics, logger *zap.Logger) *ActionRunner {
	ctx, cancel := context.WithCancel(context.Background())
	return &ActionRunner{
		exec:    exec,
		metrics: metrics,
		logger:  logger.Named("action-runner"),
		ctx:     ctx,
		cancel:  cancel,
	}
}

func (r *ActionRunner) Go(traceID, action string, payload []byte, done CompletionFunc) error {
	r.mu.Lock()
	if r.stopped {
		r.mu.Unlock()
		return ErrRunnerStopped
	}
	r.wg.Add(1)
	r.mu.Unlock()

	go func() {
		defer r.wg.Done()

		start := time.Now()
		ctx := WithTraceID(r.ctx, traceID)
		resp, err := r.exec.Call(ctx, action, payload)

		outcome := "success"
		if err != nil {
			outcome = "failure"
			r.logger.Warn("action failed",
				zap.String("action", action),
				zap.String("trace_id", traceID),
				zap.Error(err))
		} else {
			r.logger.Debug("action completed",
				zap.String("action", action),
				zap.String("trace_id", traceID),
				zap.Duration("took", time.Since(start)))
		}
		if r.metrics != nil {
			r.metrics.ActionsTotal.WithLabelValues(action, outcome).Inc()
			r.metrics.ActionDuration.WithLabelValues(action).Observe(time.Since(start).Seconds())
		}

		// Колбэк обновляет хранилище даже во время остановки
		cbCtx, cancel := context.WithTimeout(WithTraceID(context.Background(), traceID), 5*time.Second)
		defer cancel()
		done(cbCtx, resp, err)
	}()
	return nil
}

// Shutdown отменяет все действия в полёте и ждёт их завершения.
func (r *ActionRunner) Shutdown(ctx context.Context) error {
	r.mu.Lock()
	r.stopped = true
	r.mu.Unlock()

	r.cancel()

	finished := make(chan struct{})
	go func() {
		r.wg.Wait()
		close(finished)
	}()

	select {
	case <-finished:
		r.logger.Info("action runner stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

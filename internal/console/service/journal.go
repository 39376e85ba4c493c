package service

import (
	"errors"
	"time"

	"github.com/xela07ax/blytz-console/internal/audit"
	"github.com/xela07ax/blytz-console/internal/domain"
	"go.uber.org/zap"
	"k8s.io/utils/clock"
)

// actionJournal пишет итог каждого действия в журнал. Общий для всех сервисов.
type actionJournal struct {
	rec    audit.Recorder
	clock  clock.PassiveClock
	logger *zap.Logger
}

func newActionJournal(rec audit.Recorder, clk clock.PassiveClock, logger *zap.Logger) actionJournal {
	if clk == nil {
		clk = clock.RealClock{}
	}
	return actionJournal{rec: rec, clock: clk, logger: logger}
}

// record вызывается из колбэка действия. upErr: ошибка записи результата во view.
func (j actionJournal) record(traceID, viewID, action string, payload map[string]any, started time.Time, callErr, upErr error) {
	status := audit.StatusSuccess
	errText := ""
	if callErr != nil {
		status = audit.StatusFailed
		errText = callErr.Error()
	}

	switch {
	case upErr == nil:
	case errors.Is(upErr, domain.ErrViewNotFound):
		// Страницу закрыли раньше, чем закончилось действие: результат некуда показывать
		j.logger.Debug("view gone before action completed",
			zap.String("view_id", viewID),
			zap.String("action", action))
	default:
		j.logger.Error("failed to store action result",
			zap.String("view_id", viewID),
			zap.String("action", action),
			zap.Error(upErr))
	}

	if j.rec == nil {
		return
	}
	j.rec.Log(audit.ActionEvent{
		TraceID:    traceID,
		ViewID:     viewID,
		Action:     action,
		Payload:    payload,
		Status:     status,
		Timestamp:  j.clock.Now(),
		DurationMs: j.clock.Since(started).Milliseconds(),
		Error:      errText,
	})
}

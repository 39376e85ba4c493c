package audit

import (
	"context"

	"go.uber.org/zap"
)

// LogSink печатает каждое событие структурированной строкой zap.
// Хранилища у консоли нет, лог и есть журнал.
type LogSink struct {
	logger *zap.Logger
}

func NewLogSink(logger *zap.Logger) *LogSink {
	return &LogSink{logger: logger.Named("journal")}
}

func (s *LogSink) WriteBatch(_ context.Context, events []ActionEvent) error {
	for _, e := range events {
		s.logger.Info("action",
			zap.String("id", e.ID),
			zap.String("trace_id", e.TraceID),
			zap.String("view_id", e.ViewID),
			zap.String("action", e.Action),
			zap.String("status", e.Status),
			zap.Any("payload", e.Payload),
			zap.Int64("duration_ms", e.DurationMs),
			zap.String("error", e.Error),
			zap.Time("timestamp", e.Timestamp),
		)
	}
	return nil
}

package audit

/*
Журнал действий консоли. Сабмиты форм и переключения агента складываются
сюда вместо "console.log": событие уходит в канал, воркер копит пачку и
сбрасывает её в Sink по таймеру или при заполнении. Stop закрывает вход и
дожидается финального flush, так что при остановке ничего не теряется.
*/

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Sink определяет, куда физически уходят события
type Sink interface {
	// WriteBatch сохраняет пачку событий за один раз
	WriteBatch(ctx context.Context, events []ActionEvent) error
}

type Recorder interface {
	Log(event ActionEvent)
}

// BufferGauge — куда отдавать заполненность очереди (prometheus gauge подходит).
type BufferGauge interface {
	Set(float64)
}

type JournalOptions struct {
	BufferSize    int
	BatchSize     int
	FlushInterval time.Duration
	Gauge         BufferGauge
}

func (o *JournalOptions) applyDefaults() {
	if o.BufferSize <= 0 {
		o.BufferSize = 10000
	}
	if o.BatchSize <= 0 {
		o.BatchSize = 100
	}
	if o.FlushInterval <= 0 {
		o.FlushInterval = 500 * time.Millisecond
	}
}

type Journal struct {
	ch     chan ActionEvent
	sink   Sink
	opts   JournalOptions
	logger *zap.Logger
	wg     sync.WaitGroup

	// Log после Stop не должен паниковать на закрытом канале
	mu       sync.RWMutex
	isClosed atomic.Bool
}

func NewJournal(sink Sink, opts JournalOptions, logger *zap.Logger) *Journal {
	opts.applyDefaults()
	return &Journal{
		ch:     make(chan ActionEvent, opts.BufferSize),
		sink:   sink,
		opts:   opts,
		logger: logger.With(zap.String("mod", "journal")),
	}
}

func (j *Journal) Start() {
	j.wg.Add(1)
	go j.worker()
}

// Stop запирает вход в канал и ждёт, пока воркер всё допишет.
func (j *Journal) Stop() {
	j.mu.Lock()
	if j.isClosed.Swap(true) {
		j.mu.Unlock()
		return
	}
	j.logger.Info("stopping journal: closing channel and flushing buffer...")
	close(j.ch)
	j.mu.Unlock()

	j.wg.Wait()
	j.logger.Info("journal stopped gracefully")
}

func (j *Journal) Log(event ActionEvent) {
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	j.mu.RLock()
	defer j.mu.RUnlock()
	if j.isClosed.Load() {
		j.logger.Warn("journal event dropped: journal is stopping", zap.String("id", event.ID))
		return
	}

	// Load shedding: очередь полна, запрос не ждёт
	select {
	case j.ch <- event:
		j.reportFill()
	default:
		j.logger.Error("journal_buffer_overflow",
			zap.String("view_id", event.ViewID),
			zap.String("action", event.Action),
			zap.String("trace_id", event.TraceID),
		)
	}
}

func (j *Journal) reportFill() {
	if j.opts.Gauge != nil {
		j.opts.Gauge.Set(float64(len(j.ch)) / float64(cap(j.ch)))
	}
}

func (j *Journal) worker() {
	defer j.wg.Done()

	batch := make([]ActionEvent, 0, j.opts.BatchSize)
	ticker := time.NewTicker(j.opts.FlushInterval)
	defer ticker.Stop()

	flush := func() {
		if len(batch) == 0 {
			return
		}
		// Background: к моменту flush контекст запроса уже мёртв
		if err := j.sink.WriteBatch(context.Background(), batch); err != nil {
			j.logger.Error("journal flush failed", zap.Error(err), zap.Int("events", len(batch)))
		}
		batch = batch[:0]
		j.reportFill()
	}

	for {
		select {
		case event, ok := <-j.ch:
			if !ok {
				// Канал закрыт в Stop: остатки уже вычитаны, финальный сброс
				flush()
				j.logger.Info("journal worker finished")
				return
			}
			batch = append(batch, event)
			if len(batch) >= j.opts.BatchSize {
				flush()
			}
		case <-ticker.C:
			flush()
		}
	}
}

package engine

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	// Latency: время обработки HTTP-запроса консоли
	RequestDuration *prometheus.HistogramVec

	// Имитируемые действия: сколько запущено и чем закончились
	ActionsTotal   *prometheus.CounterVec
	ActionDuration *prometheus.HistogramVec

	// Saturation: состояние Circuit Breaker (0 - closed, 1 - half-open, 2 - open)
	CircuitBreakerState *prometheus.GaugeVec

	// Монтирования страниц (создание view)
	ViewsMounted *prometheus.CounterVec

	// Journal: заполненность буфера (backpressure)
	JournalBufferFill prometheus.Gauge

	// Отказы лимитера сабмитов
	RateLimited *prometheus.CounterVec
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	// Null Object Pattern - Если рег не передан, используем локальный, который никуда не подключен
	if reg == nil {
		reg = prometheus.NewRegistry()
	}

	return &Metrics{
		RequestDuration: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Name:    "console_request_duration_seconds",
			Help:    "Histogram of HTTP request latencies.",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		}, []string{"route", "method", "status"}),

		ActionsTotal: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "console_actions_total",
			Help: "Total number of simulated actions by outcome.",
		}, []string{"action", "outcome"}), // outcome: success, failure, rejected

		ActionDuration: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Name:    "console_action_duration_seconds",
			Help:    "Time from action start to completion.",
			Buckets: []float64{.1, .25, .5, .8, 1, 1.5, 2, 5},
		}, []string{"action"}),

		CircuitBreakerState: promauto.With(reg).NewGaugeVec(prometheus.GaugeOpts{
			Name: "console_circuit_breaker_state",
			Help: "Current state of the circuit breaker (0=closed, 1=half-open, 2=open).",
		}, []string{"breaker"}),

		ViewsMounted: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "console_views_mounted_total",
			Help: "Number of page mounts by page.",
		}, []string{"page"}),

		JournalBufferFill: promauto.With(reg).NewGauge(prometheus.GaugeOpts{
			Name: "console_journal_buffer_utilization",
			Help: "Fraction of the journal buffer currently in use.",
		}),

		RateLimited: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "console_rate_limited_total",
			Help: "Requests rejected by the per-client rate limiter.",
		}, []string{"route"}),
	}
}

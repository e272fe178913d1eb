package metrics

import (
	"errors"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/JoeShih716/go-mem-point/internal/app/point/domain"
	"github.com/JoeShih716/go-mem-point/internal/app/point/usecase"
)

const (
	OutcomeOK       = "ok"
	OutcomeRejected = "rejected" // 參數或業務規則拒絕
	OutcomeError    = "error"    // 其他失敗，例如 Sequencer 已停止
)

var (
	// 點數操作
	OperationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "point_operations_total",
			Help: "Total point operations by outcome",
		},
		[]string{"op", "outcome"}, // get_point|charge|use|history
	)
	OperationDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "point_operation_duration_seconds",
			Help:    "Latency of point operations including guard wait.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"op"},
	)

	// Journal 佇列
	JournalQueueDepth = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "point_journal_queue_depth",
			Help: "Current journal queue depth",
		},
	)
	JournalDropped = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "point_journal_dropped_total",
			Help: "Ledger entries dropped because the journal queue was full",
		},
	)
	JournalWriteErrors = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "point_journal_write_errors_total",
			Help: "Failed journal sink writes",
		},
	)

	// HTTP
	HTTPLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_requests_latency_seconds",
			Help:    "Latency of HTTP requests.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)

	initOnce sync.Once
)

// Handler /metrics endpoint
var Handler = promhttp.Handler

// Init 註冊所有 collector，重複呼叫無副作用
func Init() {
	initOnce.Do(func() {
		prometheus.MustRegister(OperationsTotal)
		prometheus.MustRegister(OperationDuration)
		prometheus.MustRegister(JournalQueueDepth)
		prometheus.MustRegister(JournalDropped)
		prometheus.MustRegister(JournalWriteErrors)
		prometheus.MustRegister(HTTPLatency)
	})
}

// OperationObserver 把 PointUseCase 的操作結果寫入 Prometheus
type OperationObserver struct{}

func (OperationObserver) Observe(op string, err error, elapsed time.Duration) {
	outcome := OutcomeOK
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrValidation):
		outcome = OutcomeRejected
	default:
		outcome = OutcomeError
	}
	OperationsTotal.WithLabelValues(op, outcome).Inc()
	OperationDuration.WithLabelValues(op).Observe(elapsed.Seconds())
}

var _ usecase.Observer = OperationObserver{}

package container

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/jsamuelsen/go-container-controller/internal/ports"
)

const (
	saveResultSuccess = "success"
	saveResultError   = "error"
	saveResultNoop    = "noop"
)

// Metrics holds the controller's Prometheus collectors.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	contextsCreated   prometheus.Counter
	contextsReclaimed prometheus.Counter
	saves             *prometheus.CounterVec
	saveDuration      prometheus.Histogram
	rollbacks         prometheus.Counter
	lifecycleFlushes  *prometheus.CounterVec
	storeLoads        *prometheus.CounterVec
	queueDepth        prometheus.Gauge
}

// NewMetrics registers the controller collectors with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		contextsCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "container_contexts_created_total",
			Help: "Total number of background work contexts created",
		}),
		contextsReclaimed: factory.NewCounter(prometheus.CounterOpts{
			Name: "container_contexts_reclaimed_total",
			Help: "Total number of background work contexts reclaimed by the garbage collector",
		}),
		saves: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "container_saves_total",
				Help: "Total number of work context saves by result",
			},
			[]string{"result"}, // "success", "error", "noop"
		),
		saveDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name: "container_save_duration_seconds",
			Help: "Duration of work context saves that reached the storage engine",
			Buckets: []float64{
				0.0005, // 500us - memory stores
				0.001,
				0.005,
				0.01,
				0.05,
				0.1,
				0.5,
				1, // slow network database
			},
		}),
		rollbacks: factory.NewCounter(prometheus.CounterOpts{
			Name: "container_rollbacks_total",
			Help: "Total number of work contexts rolled back after a failed save",
		}),
		lifecycleFlushes: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "container_lifecycle_flushes_total",
				Help: "Total number of main context saves triggered by lifecycle events",
			},
			[]string{"event", "result"},
		),
		storeLoads: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "container_store_loads_total",
				Help: "Total number of store loads by result",
			},
			[]string{"result"}, // "success", "error"
		),
		queueDepth: factory.NewGauge(prometheus.GaugeOpts{
			Name: "container_queue_depth",
			Help: "Number of jobs waiting across all work context queues",
		}),
	}
}

func (m *Metrics) contextCreated() {
	if m == nil {
		return
	}
	m.contextsCreated.Inc()
}

func (m *Metrics) contextReclaimed() {
	if m == nil {
		return
	}
	m.contextsReclaimed.Inc()
}

func (m *Metrics) saved(result string, d time.Duration) {
	if m == nil {
		return
	}
	m.saves.WithLabelValues(result).Inc()
	if result != saveResultNoop {
		m.saveDuration.Observe(d.Seconds())
	}
}

func (m *Metrics) rolledBack() {
	if m == nil {
		return
	}
	m.rollbacks.Inc()
}

func (m *Metrics) lifecycleFlushed(event ports.LifecycleEvent, result string) {
	if m == nil {
		return
	}
	m.lifecycleFlushes.WithLabelValues(string(event), result).Inc()
}

func (m *Metrics) storeLoaded(err error) {
	if m == nil {
		return
	}
	result := saveResultSuccess
	if err != nil {
		result = saveResultError
	}
	m.storeLoads.WithLabelValues(result).Inc()
}

func (m *Metrics) queued() {
	if m == nil {
		return
	}
	m.queueDepth.Inc()
}

func (m *Metrics) dequeued() {
	if m == nil {
		return
	}
	m.queueDepth.Dec()
}

// resultLabel maps a SaveResult to its metric label.
func resultLabel(r SaveResult) string {
	if _, ok := r.(SaveError); ok {
		return saveResultError
	}
	return saveResultSuccess
}

// Package metrics exposes Prometheus counters for reply composition and batches.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/sevigo/reply-warden/internal/core"
)

const namespace = "reply_warden"

// Path labels distinguish the two invocation modes.
const (
	PathSingle = "single"
	PathBatch  = "batch"
)

// Metrics groups the collectors on a private registry. All methods are safe on
// a nil receiver so callers can run without metrics.
type Metrics struct {
	registry          *prometheus.Registry
	repliesPosted     *prometheus.CounterVec
	generationFailure prometheus.Counter
	batchRuns         prometheus.Counter
	batchItems        *prometheus.CounterVec
	singleOutcomes    *prometheus.CounterVec
}

// New registers the reply collectors together with the Go runtime collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		repliesPosted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "replies_posted_total",
			Help:      "Replies persisted, by invocation path and text source.",
		}, []string{"path", "source"}),
		generationFailure: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "generation_failures_total",
			Help:      "Generation attempts that fell back to a template reply.",
		}),
		batchRuns: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "batch_runs_total",
			Help:      "Completed batch runs.",
		}),
		batchItems: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "batch_items_total",
			Help:      "Batch candidates processed, by outcome.",
		}, []string{"outcome"}),
		singleOutcomes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "single_requests_total",
			Help:      "Single-review reply requests, by outcome.",
		}, []string{"outcome"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.repliesPosted,
		m.generationFailure,
		m.batchRuns,
		m.batchItems,
		m.singleOutcomes,
	)
	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) ReplyPosted(path string, source core.DraftSource) {
	if m == nil {
		return
	}
	m.repliesPosted.WithLabelValues(path, string(source)).Inc()
}

func (m *Metrics) GenerationFailed() {
	if m == nil {
		return
	}
	m.generationFailure.Inc()
}

func (m *Metrics) SingleOutcome(o core.Outcome) {
	if m == nil {
		return
	}
	m.singleOutcomes.WithLabelValues(string(o)).Inc()
}

// BatchCompleted records one finished run and the outcome of each item.
func (m *Metrics) BatchCompleted(res core.BatchResult) {
	if m == nil {
		return
	}
	m.batchRuns.Inc()
	for _, item := range res.Items {
		m.batchItems.WithLabelValues(string(item.Outcome)).Inc()
	}
}

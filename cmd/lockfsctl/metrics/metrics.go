// Package metrics exposes lockfsctl's operation counts and latencies as
// Prometheus collectors, the way gcsfuse's go.mod pulls in
// prometheus/client_golang for its own operation metrics.
package metrics

import (
	"time"

	"github.com/lockfs/lockfs/tree"
	"github.com/prometheus/client_golang/prometheus"
)

// Recorder tracks per-operation counts (by kind and resulting status)
// and a latency histogram, registered against a private registry so
// multiple lockfsctl runs in the same process (as in tests) never
// collide on Prometheus's default global registry.
type Recorder struct {
	Registry *prometheus.Registry
	ops      *prometheus.CounterVec
	latency  *prometheus.HistogramVec
}

// NewRecorder builds a Recorder with its own registry and registers
// every collector on it.
func NewRecorder() *Recorder {
	r := &Recorder{
		Registry: prometheus.NewRegistry(),
		ops: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "lockfs",
			Name:      "operations_total",
			Help:      "Number of tree operations processed, by kind and status.",
		}, []string{"kind", "status"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "lockfs",
			Name:      "operation_duration_seconds",
			Help:      "Time taken to execute one tree operation.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"kind"}),
	}
	r.Registry.MustRegister(r.ops, r.latency)
	return r
}

// Observe records one completed operation.
func (r *Recorder) Observe(kind string, status tree.Status, elapsed time.Duration) {
	r.ops.WithLabelValues(kind, status.String()).Inc()
	r.latency.WithLabelValues(kind).Observe(elapsed.Seconds())
}

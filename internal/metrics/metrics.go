// Package metrics records synthesis activity as Prometheus metrics.
//
// Metrics exported:
//
//   - qsurf_synthesis_circuits_total: counter by distance
//   - qsurf_synthesis_logical_ops_total: counter by axis
//   - qsurf_synthesis_rejections_total: counter by reason
//   - qsurf_synthesis_circuit_depth: histogram of circuit depth
//   - qsurf_synthesis_circuit_ops: histogram of op counts
//
// A Recorder owns its registry, so several recorders can coexist in one
// process (tests, batch runs).
package metrics

import (
	"errors"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/roach88/qsurf/internal/circuit"
	"github.com/roach88/qsurf/internal/lattice"
	"github.com/roach88/qsurf/internal/synth"
)

const (
	namespace = "qsurf"
	subsystem = "synthesis"
)

// Rejection reasons.
const (
	ReasonInvalidDistance  = "invalid_distance"
	ReasonInvalidOperation = "invalid_operation"
	ReasonOther            = "other"
)

// Recorder implements synth.Observer on top of a private registry.
type Recorder struct {
	registry   *prometheus.Registry
	circuits   *prometheus.CounterVec
	logical    *prometheus.CounterVec
	rejections *prometheus.CounterVec
	depth      prometheus.Histogram
	ops        prometheus.Histogram
}

var _ synth.Observer = (*Recorder)(nil)

// NewRecorder creates a Recorder with all metrics registered.
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		circuits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "circuits_total",
			Help:      "Circuits synthesized, by code distance.",
		}, []string{"distance"}),
		logical: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "logical_ops_total",
			Help:      "Logical operators applied, by axis.",
		}, []string{"axis"}),
		rejections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "rejections_total",
			Help:      "Requests rejected, by reason.",
		}, []string{"reason"}),
		depth: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "circuit_depth",
			Help:      "Depth of synthesized circuits.",
			Buckets:   prometheus.ExponentialBuckets(8, 2, 10),
		}),
		ops: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "circuit_ops",
			Help:      "Operation count of synthesized circuits.",
			Buckets:   prometheus.ExponentialBuckets(32, 4, 8),
		}),
	}
	r.registry.MustRegister(r.circuits, r.logical, r.rejections, r.depth, r.ops)
	return r
}

// Registry returns the registry backing the recorder.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// Synthesized implements synth.Observer.
func (r *Recorder) Synthesized(l *lattice.Lattice, c *circuit.Circuit) {
	r.circuits.WithLabelValues(strconv.Itoa(l.Distance())).Inc()
	r.depth.Observe(float64(c.Depth()))
	r.ops.Observe(float64(c.Len()))
}

// LogicalApplied implements synth.Observer.
func (r *Recorder) LogicalApplied(axis synth.Axis, _ *lattice.Lattice, _ int) {
	r.logical.WithLabelValues(string(axis)).Inc()
}

// Rejected implements synth.Observer.
func (r *Recorder) Rejected(err error) {
	r.rejections.WithLabelValues(Reason(err)).Inc()
}

// Reason maps an error to its rejection label.
func Reason(err error) string {
	switch {
	case errors.Is(err, lattice.ErrInvalidDistance):
		return ReasonInvalidDistance
	case errors.Is(err, synth.ErrInvalidOperation):
		return ReasonInvalidOperation
	default:
		return ReasonOther
	}
}

// WriteTextfile writes the current metrics in the Prometheus text format,
// suitable for the node_exporter textfile collector.
func (r *Recorder) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, r.registry)
}

// Package metrics exposes Prometheus collectors for ffav writers.
package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type SplitReason string

const (
	SplitReasonOverrun  = SplitReason("overrun")
	SplitReasonOverflow = SplitReason("overflow")
	SplitReasonKeyFrame = SplitReason("keyframe")
)

// Metrics is a set of writer collectors. All methods are safe on a nil
// *Metrics, which turns instrumentation off.
type Metrics struct {
	PacketsWritten  *prometheus.CounterVec
	BytesWritten    *prometheus.CounterVec
	SegmentsOpened  prometheus.Counter
	SegmentsRemoved prometheus.Counter
	Splits          *prometheus.CounterVec
}

// New creates the collectors and registers them on reg; a nil reg leaves
// them unregistered.
func New(reg prometheus.Registerer, namespace string) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		PacketsWritten: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "packets_written_total",
			Help:      "Packets handed to the muxer, by stream index",
		}, []string{"stream"}),
		BytesWritten: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bytes_written_total",
			Help:      "Payload bytes handed to the muxer, by stream index",
		}, []string{"stream"}),
		SegmentsOpened: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "segments_opened_total",
			Help:      "Output files opened by split writers",
		}),
		SegmentsRemoved: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "segments_removed_total",
			Help:      "Old output files removed to honor the max files limit",
		}),
		Splits: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "splits_total",
			Help:      "Segment splits by reason",
		}, []string{"reason"}),
	}
}

func (m *Metrics) ObservePacket(streamIndex int, size int) {
	if m == nil {
		return
	}
	stream := strconv.Itoa(streamIndex)
	m.PacketsWritten.WithLabelValues(stream).Inc()
	m.BytesWritten.WithLabelValues(stream).Add(float64(size))
}

func (m *Metrics) ObserveSegmentOpened() {
	if m == nil {
		return
	}
	m.SegmentsOpened.Inc()
}

func (m *Metrics) ObserveSegmentRemoved() {
	if m == nil {
		return
	}
	m.SegmentsRemoved.Inc()
}

func (m *Metrics) ObserveSplit(reason SplitReason) {
	if m == nil {
		return
	}
	m.Splits.WithLabelValues(string(reason)).Inc()
}

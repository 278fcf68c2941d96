package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg, "ffav")

	m.ObservePacket(0, 100)
	m.ObservePacket(0, 50)
	m.ObservePacket(1, 7)
	m.ObserveSegmentOpened()
	m.ObserveSegmentOpened()
	m.ObserveSegmentRemoved()
	m.ObserveSplit(SplitReasonOverflow)
	m.ObserveSplit(SplitReasonKeyFrame)
	m.ObserveSplit(SplitReasonKeyFrame)

	require.Equal(t, 2.0, testutil.ToFloat64(m.PacketsWritten.WithLabelValues("0")))
	require.Equal(t, 150.0, testutil.ToFloat64(m.BytesWritten.WithLabelValues("0")))
	require.Equal(t, 7.0, testutil.ToFloat64(m.BytesWritten.WithLabelValues("1")))
	require.Equal(t, 2.0, testutil.ToFloat64(m.SegmentsOpened))
	require.Equal(t, 1.0, testutil.ToFloat64(m.SegmentsRemoved))
	require.Equal(t, 2.0, testutil.ToFloat64(m.Splits.WithLabelValues("keyframe")))
	require.Equal(t, 1.0, testutil.ToFloat64(m.Splits.WithLabelValues("overflow")))

	count, err := testutil.GatherAndCount(reg)
	require.NoError(t, err)
	require.Equal(t, 8, count)
}

func TestNilMetrics(t *testing.T) {
	var m *Metrics
	m.ObservePacket(0, 1)
	m.ObserveSegmentOpened()
	m.ObserveSegmentRemoved()
	m.ObserveSplit(SplitReasonOverrun)
}

func TestUnregistered(t *testing.T) {
	m := New(nil, "")
	m.ObserveSegmentOpened()
	require.Equal(t, 1.0, testutil.ToFloat64(m.SegmentsOpened))
}

package muxer

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
	"github.com/xaionaro-go/ffav/extradata"
	"github.com/xaionaro-go/ffav/media"
	"github.com/xaionaro-go/ffav/metrics"
	"github.com/xaionaro-go/ffav/segment"
	"github.com/xaionaro-go/ffav/types"
)

var (
	accessUnitKey   = []byte{0, 0, 0, 1, 0x09, 0xf0, 0, 0, 0, 1, 0x65, 0x88, 0x84, 0x00, 0x33}
	accessUnitInter = []byte{0, 0, 0, 1, 0x09, 0xf0, 0, 0, 0, 1, 0x41, 0x9a, 0x02, 0x04}
)

func testDescs() []media.Desc {
	return []media.Desc{
		media.NewAudioDesc(),
		media.NewH264VideoDesc(320, 240, 500000, 1000000),
	}
}

func writeGOP(t *testing.T, ctx context.Context, w segment.Writer, pts *int64, n int) {
	for i := 0; i < n; i++ {
		data := accessUnitInter
		if i == 0 {
			data = accessUnitKey
		}
		require.NoError(t, w.WriteBytes(ctx, data, *pts, 40000, i == 0, 0))
		*pts += 40000
	}
}

func TestSimpleWriter(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "out.ts")

	reg := prometheus.NewRegistry()
	m := metrics.New(reg, "test")
	w, err := NewSimpleWriter(ctx, path, testDescs(), "", nil, WriterOptionMetrics{m})
	require.NoError(t, err)
	require.Equal(t, 1, w.StreamCount())
	require.NoError(t, w.WriteHeader(ctx))
	require.Zero(t, w.Size())

	var pts int64
	writeGOP(t, ctx, w, &pts, 5)
	require.Equal(t, uint64(5), w.PacketsWritten())
	require.Equal(t, 5.0, testutil.ToFloat64(m.PacketsWritten.WithLabelValues("0")))

	require.NoError(t, w.Flush(ctx))
	require.NoError(t, w.WriteTrailer(ctx))
	require.NoError(t, w.WriteTrailer(ctx))
	require.NoError(t, w.Close(ctx))
	require.NoError(t, w.Close(ctx))

	st, err := os.Stat(path)
	require.NoError(t, err)
	require.NotZero(t, st.Size())
	require.Zero(t, st.Size()%188)

	require.ErrorIs(t, w.WriteBytes(ctx, accessUnitKey, pts, 40000, true, 0), ErrClosed)
}

func TestSimpleWriterStreamIndexOutOfRange(t *testing.T) {
	ctx := context.Background()
	w, err := NewSimpleWriter(ctx, filepath.Join(t.TempDir(), "out.ts"), testDescs(), "mpegts", nil)
	require.NoError(t, err)
	defer w.Close(ctx)

	err = w.WriteBytes(ctx, accessUnitKey, 0, 40000, true, 1)
	require.ErrorAs(t, err, &ErrStreamIndexOutOfRange{})
}

func TestSimpleWriterCloseWithoutPackets(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "out.ts")
	w, err := NewSimpleWriter(ctx, path, testDescs(), "mpegts", types.DictionaryItems{{Key: "mpegts_flags", Value: "resend_headers"}})
	require.NoError(t, err)
	require.NoError(t, w.WriteTrailer(ctx))
	require.NoError(t, w.Close(ctx))

	st, err := os.Stat(path)
	require.NoError(t, err)
	require.Zero(t, st.Size())
}

func TestSimpleWriterUnknownFormat(t *testing.T) {
	ctx := context.Background()
	_, err := NewSimpleWriter(ctx, filepath.Join(t.TempDir(), "out.no-such-ext"), testDescs(), "", nil)
	require.Error(t, err)

	_, err = NewSimpleWriter(ctx, "", testDescs(), "mpegts", nil)
	require.Error(t, err)
}

func TestOptionsOpenSimple(t *testing.T) {
	ctx := context.Background()
	opts := NewOptions().
		Media(media.NewH264VideoDesc(320, 240, 500000, 1000000)).
		Format("mpegts")
	require.False(t, opts.IsSplit())

	w, err := opts.Open(ctx, filepath.Join(t.TempDir(), "out.ts"))
	require.NoError(t, err)
	defer w.Close(ctx)
	_, ok := w.(*SimpleWriter)
	require.True(t, ok)
}

func TestOptionsOpenSplit(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	var opened []int
	opts := NewOptions().
		Media(media.NewH264VideoDesc(320, 240, 500000, 1000000)).
		Format("mpegts").
		MaxFiles(2).
		MaxSizeBytes(1).
		MaxOverhead(1000000).
		AfterSplit(func(_ context.Context, index int) { opened = append(opened, index) })
	_, err := opts.FormatOptionsString("mpegts_flags=resend_headers")
	require.NoError(t, err)
	require.True(t, opts.IsSplit())

	w, err := opts.Open(ctx, dir)
	require.NoError(t, err)
	sw, ok := w.(*segment.SplitWriter)
	require.True(t, ok)

	var pts int64
	for range 4 {
		writeGOP(t, ctx, w, &pts, 2)
	}
	require.NoError(t, w.Close(ctx))

	require.Equal(t, []int{1, 2, 3}, opened)
	require.Equal(t, uint64(4), sw.SegmentsOpened())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	require.Equal(t, []string{"MED000002.ts", "MED000003.ts"}, names)
}

func TestSimpleWriterMP4ExtraData(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "out.mp4")
	w, err := NewSimpleWriter(ctx, path, testDescs(), "", nil)
	require.NoError(t, err)

	sps := []byte{0x67, 0x42, 0xc0, 0x1e, 0xda, 0x02, 0x80}
	pps := []byte{0x68, 0xce, 0x3c, 0x80}
	key := extradata.ToAnnexB(sps, pps, []byte{0x65, 0x88, 0x84, 0x00, 0x33})
	require.NoError(t, w.WriteBytes(ctx, key, 0, 40000, true, 0))
	require.Equal(t, extradata.ToAnnexB(sps, pps), w.streams[0].CodecParameters().ExtraData())
	require.NoError(t, w.WriteBytes(ctx, accessUnitInter, 40000, 40000, false, 0))
	require.NoError(t, w.Close(ctx))

	st, err := os.Stat(path)
	require.NoError(t, err)
	require.NotZero(t, st.Size())
}

func TestSimpleWriterMP4ExtraDataPerStream(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "out.mp4")
	descs := []media.Desc{
		media.NewH264VideoDesc(320, 240, 500000, 1000000),
		media.NewH264VideoDesc(640, 480, 1000000, 1000000),
	}
	w, err := NewSimpleWriter(ctx, path, descs, "", nil)
	require.NoError(t, err)
	require.Equal(t, 2, w.StreamCount())

	pps := []byte{0x68, 0xce, 0x3c, 0x80}
	idr := []byte{0x65, 0x88, 0x84, 0x00, 0x33}
	sps0 := []byte{0x67, 0x42, 0xc0, 0x1e, 0xda, 0x02, 0x80}
	sps1 := []byte{0x67, 0x42, 0xc0, 0x1f, 0xda, 0x02, 0x80}

	require.NoError(t, w.WriteBytes(ctx, extradata.ToAnnexB(sps0, pps, idr), 0, 40000, true, 0))
	require.NoError(t, w.WriteBytes(ctx, accessUnitInter, 40000, 40000, false, 0))
	require.False(t, w.headerWritten, "the header waits for the first packet of stream #1")
	require.Len(t, w.pending, 2)
	require.Zero(t, w.PacketsWritten())

	require.NoError(t, w.WriteBytes(ctx, extradata.ToAnnexB(sps1, pps, idr), 0, 40000, true, 1))
	require.True(t, w.headerWritten)
	require.Empty(t, w.pending)
	require.Equal(t, uint64(3), w.PacketsWritten())
	require.Equal(t, extradata.ToAnnexB(sps0, pps), w.streams[0].CodecParameters().ExtraData())
	require.Equal(t, extradata.ToAnnexB(sps1, pps), w.streams[1].CodecParameters().ExtraData())

	require.NoError(t, w.Close(ctx))
	st, err := os.Stat(path)
	require.NoError(t, err)
	require.NotZero(t, st.Size())
}

func TestSimpleWriterCloseWritesHeldBackPackets(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "out.mp4")
	descs := []media.Desc{
		media.NewH264VideoDesc(320, 240, 500000, 1000000),
		media.NewH264VideoDesc(320, 240, 500000, 1000000),
	}
	w, err := NewSimpleWriter(ctx, path, descs, "", nil)
	require.NoError(t, err)

	sps := []byte{0x67, 0x42, 0xc0, 0x1e, 0xda, 0x02, 0x80}
	pps := []byte{0x68, 0xce, 0x3c, 0x80}
	require.NoError(t, w.WriteBytes(ctx, extradata.ToAnnexB(sps, pps, []byte{0x65, 0x88, 0x84, 0x00, 0x33}), 0, 40000, true, 0))
	require.Zero(t, w.PacketsWritten())

	require.NoError(t, w.Close(ctx))
	require.Equal(t, uint64(1), w.PacketsWritten())
	st, err := os.Stat(path)
	require.NoError(t, err)
	require.NotZero(t, st.Size())
}

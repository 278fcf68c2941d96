package demuxer

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xaionaro-go/ffav/avconv"
	"github.com/xaionaro-go/ffav/avffi"
	"github.com/xaionaro-go/ffav/media"
	"github.com/xaionaro-go/ffav/muxer"
	"github.com/xaionaro-go/ffav/types"
)

var (
	accessUnitKey   = []byte{0, 0, 0, 1, 0x09, 0xf0, 0, 0, 0, 1, 0x65, 0x88, 0x84, 0x00, 0x33}
	accessUnitInter = []byte{0, 0, 0, 1, 0x09, 0xf0, 0, 0, 0, 1, 0x41, 0x9a, 0x02, 0x04}
)

const (
	testTimeUnit = 1000000
	testPTSStep  = 40000
)

func writeTestFile(t *testing.T, ctx context.Context, packets int) string {
	path := filepath.Join(t.TempDir(), "in.ts")
	w, err := muxer.NewSimpleWriter(ctx, path, []media.Desc{
		media.NewH264VideoDesc(320, 240, 500000, testTimeUnit),
	}, "mpegts", nil)
	require.NoError(t, err)
	for i := 0; i < packets; i++ {
		data := accessUnitInter
		isKey := i%5 == 0
		if isKey {
			data = accessUnitKey
		}
		require.NoError(t, w.WriteBytes(ctx, data, int64(i)*testPTSStep, testPTSStep, isKey, 0))
	}
	require.NoError(t, w.Close(ctx))
	return path
}

func TestReader(t *testing.T) {
	ctx := context.Background()
	path := writeTestFile(t, ctx, 10)

	r, err := Open(ctx, path, Config{
		FormatOptions: types.DictionaryItems{{Key: "f", Value: "mpegts"}},
		TimeUnit:      testTimeUnit,
	})
	require.NoError(t, err)
	defer r.Close(ctx)

	require.Len(t, r.Streams(), 1)
	require.NotNil(t, r.Stream(0))
	require.Nil(t, r.Stream(1))
	infos := r.FrameInfos()
	require.Len(t, infos, 1)
	require.Equal(t, media.CodecIDH264, infos[0].CodecID)
	require.Equal(t, media.MediaTypeVideo, infos[0].MediaType)
	require.Equal(t, avffi.NewRational(1, testTimeUnit).String(), r.StreamTimeBase(0).String())

	var ptss []int64
	keyFrames := 0
	for {
		pkt, info, err := r.ReadPacket(ctx)
		if errors.Is(err, io.EOF) {
			break
		}
		require.NoError(t, err)
		require.Equal(t, media.CodecIDH264, info.CodecID)
		require.Equal(t, 0, pkt.StreamIndex())
		require.NotZero(t, pkt.Size())
		if pkt.IsKeyFrame() {
			keyFrames++
		}
		ptss = append(ptss, pkt.Pts())
		avffi.PacketPool.Put(pkt)
	}
	require.Len(t, ptss, 10)
	require.Equal(t, uint64(10), r.PacketsRead())
	require.NotZero(t, keyFrames)
	for i := 1; i < len(ptss); i++ {
		require.Equal(t, int64(testPTSStep), ptss[i]-ptss[i-1])
	}

	_, _, err = r.ReadPacket(ctx)
	require.ErrorIs(t, err, io.EOF)
}

func TestReaderPackets(t *testing.T) {
	ctx := context.Background()
	path := writeTestFile(t, ctx, 7)

	r, err := Open(ctx, path, Config{})
	require.NoError(t, err)
	defer r.Close(ctx)

	count := 0
	for pkt := range r.Packets(ctx) {
		count++
		avffi.PacketPool.Put(pkt)
	}
	require.Equal(t, 7, count)
	require.Equal(t, uint64(count), r.PacketsRead())
	require.NoError(t, r.Err())
}

func TestReaderPacketsErr(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	path := writeTestFile(t, ctx, 5)

	r, err := Open(ctx, path, Config{})
	require.NoError(t, err)
	defer r.Close(context.Background())

	count := 0
	for pkt := range r.Packets(ctx) {
		count++
		avffi.PacketPool.Put(pkt)
		cancel()
	}
	require.Equal(t, 1, count)
	require.ErrorIs(t, r.Err(), context.Canceled)
}

func TestReaderClose(t *testing.T) {
	ctx := context.Background()
	r, err := Open(ctx, writeTestFile(t, ctx, 3), Config{})
	require.NoError(t, err)

	require.NoError(t, r.Close(ctx))
	require.NoError(t, r.Close(ctx))
	_, _, err = r.ReadPacket(ctx)
	require.ErrorIs(t, err, io.EOF)

	require.Zero(t, r.BitRate())
	require.Equal(t, int64(avffi.NoPTSValue), r.Duration())
	require.Equal(t, int64(avffi.NoPTSValue), r.StartTime())
	require.Equal(t, avconv.NoDuration, r.DurationAsTime())
	require.Empty(t, r.Streams())
	require.Nil(t, r.Stream(0))
}

func TestOpenErrors(t *testing.T) {
	ctx := context.Background()

	_, err := Open(ctx, "", Config{})
	require.Error(t, err)

	_, err = Open(ctx, filepath.Join(t.TempDir(), "missing.ts"), Config{})
	require.Error(t, err)

	_, err = Open(ctx, writeTestFile(t, ctx, 1), Config{
		FormatOptions: types.DictionaryItems{{Key: "f", Value: "no-such-format"}},
	})
	require.ErrorIs(t, err, avffi.ErrDemuxerNotFound)
}

package media

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xaionaro-go/ffav/types"
)

func TestCodecIDNames(t *testing.T) {
	for _, id := range CodecIDs() {
		parsed, err := ParseCodecID(id.String())
		require.NoError(t, err)
		require.Equal(t, id, parsed)
		require.NotEqual(t, MediaTypeUnknown, id.MediaType(), id.String())
	}

	id, err := ParseCodecID("H265")
	require.NoError(t, err)
	require.Equal(t, CodecIDHEVC, id)

	_, err = ParseCodecID("theora")
	require.Error(t, err)
}

func TestCodecIDHasGOP(t *testing.T) {
	require.True(t, CodecIDH264.HasGOP())
	require.True(t, CodecIDHEVC.HasGOP())
	require.False(t, CodecIDAAC.HasGOP())
	require.False(t, CodecIDMJPEG.HasGOP())
	require.False(t, CodecIDNone.HasGOP())
}

func TestCodecTag(t *testing.T) {
	// MKTAG('a','v','c','1')
	require.Equal(t, CodecTag(0x31637661), CodecTagAVC1)
	require.Equal(t, "avc1", CodecTagAVC1.String())
	require.Equal(t, "hvc1", CodecTagHVC1.String())
	require.Equal(t, "none", CodecTag(0).String())
	require.Equal(t, "...1", MakeCodecTag(0, 1, 2, '1').String())
}

func TestVideoDescConstructors(t *testing.T) {
	d := NewH264VideoDesc(352, 288, 4000, 1000000)
	require.Equal(t, CodecIDH264, d.CodecID())
	require.Equal(t, types.NewRational(1, 1000000), d.TimeBase)
	require.Equal(t, 12, d.GOPSize)
	require.Equal(t, PixelFormatYUV420P, d.PixelFormat)

	v, ok := d.AsVideo()
	require.True(t, ok)
	require.Same(t, d, v)
	_, ok = d.AsAudio()
	require.False(t, ok)

	require.Equal(t, CodecIDHEVC, NewHEVCVideoDesc(1920, 1080, 0, 90000).CodecID())
}

func TestStreamDescs(t *testing.T) {
	audio := NewAudioDesc()
	h264 := NewH264VideoDesc(352, 288, 4000, 1000000)
	vp9 := &VideoDesc{Codec: CodecIDVP9}
	hevc := NewHEVCVideoDesc(640, 480, 0, 1000)

	require.False(t, ProducesStream(audio))
	require.False(t, ProducesStream(vp9))
	require.True(t, ProducesStream(h264))

	require.Equal(t, []Desc{h264, hevc}, StreamDescs([]Desc{audio, h264, nil, vp9, hevc}))
	require.Empty(t, StreamDescs([]Desc{audio}))
}

package extradata

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xaionaro-go/ffav/media"
)

var (
	testSPS = []byte{0x67, 0x42, 0xc0, 0x1e, 0xda, 0x02, 0x80}
	testPPS = []byte{0x68, 0xce, 0x3c, 0x80}
	testIDR = []byte{0x65, 0x88, 0x84, 0x00}
)

func TestNALUnits(t *testing.T) {
	inter := []byte{0, 0, 0, 1, 0x09, 0xf0, 0, 0, 1, 0x41, 0x9a, 0x02}
	require.Equal(t, [][]byte{{0x09, 0xf0}, {0x41, 0x9a, 0x02}}, SplitAnnexB(inter))
	require.Empty(t, SplitAnnexB(nil))
	require.Empty(t, SplitAnnexB([]byte{0, 0, 1}))

	au := ToAnnexB(testSPS, testPPS, testIDR)
	require.Equal(t, [][]byte{testSPS, testPPS, testIDR}, SplitAnnexB(au))
}

func TestIsKeyFrame(t *testing.T) {
	idr := ToAnnexB([]byte{0x09, 0xf0}, testIDR)
	inter := ToAnnexB([]byte{0x09, 0xf0}, []byte{0x41, 0x9a, 0x02})
	require.True(t, IsKeyFrame(media.CodecIDH264, idr))
	require.False(t, IsKeyFrame(media.CodecIDH264, inter))
	require.False(t, IsKeyFrame(media.CodecIDAAC, idr))
	require.False(t, IsKeyFrame(media.CodecIDH264, nil))

	// IDR_W_RADL
	require.True(t, IsKeyFrame(media.CodecIDHEVC, []byte{0, 0, 1, 0x26, 0x01, 0xaf}))
	// TRAIL_R
	require.False(t, IsKeyFrame(media.CodecIDHEVC, []byte{0, 0, 1, 0x02, 0x01, 0xd0}))
}

func TestH264AVCC(t *testing.T) {
	_, err := H264AVCCFromAnnexB(ToAnnexB(testIDR))
	require.ErrorIs(t, err, ErrNoParameterSets)

	cfg, err := H264AVCCFromAnnexB(ToAnnexB([]byte{0x09, 0xf0}, testSPS, testPPS, testIDR))
	require.NoError(t, err)
	require.Equal(t, uint8(0x42), cfg.Profile)
	require.Equal(t, uint8(0xc0), cfg.Compatibility)
	require.Equal(t, uint8(0x1e), cfg.Level)

	b := cfg.Bytes()
	require.Equal(t, []byte{1, 0x42, 0xc0, 0x1e, 0xff, 0xe1, 0, 7}, b[:8])

	parsed, err := ParseH264AVCC(b)
	require.NoError(t, err)
	require.Equal(t, cfg, parsed)
	require.Equal(t, 4, parsed.NALLengthSize)

	_, err = ParseH264AVCC(b[:10])
	require.Error(t, err)
	_, err = ParseH264AVCC([]byte{2, 0, 0, 0, 0xff, 0xe1, 0})
	require.Error(t, err)
}

func TestParseAACASC(t *testing.T) {
	// AAC LC, 44100Hz, stereo
	asc, err := ParseAACASC([]byte{0x12, 0x10})
	require.NoError(t, err)
	require.Equal(t, 2, asc.AudioObjectType)
	require.Equal(t, 44100, asc.SampleRate)
	require.Equal(t, 2, asc.ChannelConfig)
	require.Contains(t, asc.String(), "LC")

	_, err = ParseAACASC([]byte{0x12})
	require.Error(t, err)
}

func TestParseAV1C(t *testing.T) {
	c, err := ParseAV1C([]byte{0x81, 0x05, 0x4c, 0x00, 0x0a})
	require.NoError(t, err)
	require.Equal(t, uint8(1), c.Version)
	require.Equal(t, uint8(5), c.SeqLevelIdx0)
	require.Equal(t, 10, c.BitDepth())
	require.Len(t, c.ConfigOBUs, 1)

	_, err = ParseAV1C([]byte{0x01, 0, 0, 0})
	require.Error(t, err)
}

func TestRawParse(t *testing.T) {
	avcc, err := H264AVCCFromAnnexB(ToAnnexB(testSPS, testPPS))
	require.NoError(t, err)

	require.IsType(t, &H264AVCC{}, Raw(avcc.Bytes()).Parse(media.CodecIDH264))
	require.IsType(t, &AnnexB{}, Raw(ToAnnexB(testSPS, testPPS)).Parse(media.CodecIDH264))
	require.IsType(t, &AACASC{}, Raw([]byte{0x12, 0x10}).Parse(media.CodecIDAAC))
	require.IsType(t, Unknown(nil), Raw([]byte{0xff}).Parse(media.CodecIDVP9))
	require.Equal(t, "<empty>", Raw(nil).String())
	require.True(t, Raw{1, 2}.Equal(Raw{1, 2}))
}

func TestParameterSets(t *testing.T) {
	au := ToAnnexB([]byte{0x09, 0xf0}, testSPS, testPPS, testIDR)
	require.Equal(t, [][]byte{testSPS, testPPS}, ParameterSets(media.CodecIDH264, au))
	require.Empty(t, ParameterSets(media.CodecIDH264, ToAnnexB(testIDR)))
	require.Empty(t, ParameterSets(media.CodecIDVP9, au))

	vps := []byte{0x40, 0x01, 0x0c}
	sps := []byte{0x42, 0x01, 0x01}
	pps := []byte{0x44, 0x01, 0xc1}
	idr := []byte{0x26, 0x01, 0xaf}
	require.Equal(t, [][]byte{vps, sps, pps}, ParameterSets(media.CodecIDHEVC, ToAnnexB(vps, sps, pps, idr)))
}

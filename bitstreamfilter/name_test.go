package bitstreamfilter

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xaionaro-go/ffav/media"
)

func TestNameForCodecTag(t *testing.T) {
	require.Equal(t, NameH264MP4toAnnexB, NameForCodecTag(media.CodecTagAVC1))
	require.Equal(t, NameHEVCMP4toAnnexB, NameForCodecTag(media.CodecTagHEV1))
	require.Equal(t, NameHEVCMP4toAnnexB, NameForCodecTag(media.CodecTagHVC1))
	require.Equal(t, NameNull, NameForCodecTag(media.MakeCodecTag('m', 'p', '4', 'a')))
	require.Equal(t, NameNull, NameForCodecTag(0))
}

func TestNameMP4ToAnnexB(t *testing.T) {
	require.Equal(t, NameH264MP4toAnnexB, NameMP4ToAnnexB(media.CodecIDH264))
	require.Equal(t, NameHEVCMP4toAnnexB, NameMP4ToAnnexB(media.CodecIDHEVC))
	require.Equal(t, NameNull, NameMP4ToAnnexB(media.CodecIDAAC))
}

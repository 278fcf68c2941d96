// Package bitstreamfilter names the FFmpeg bitstream filters ffav applies
// and decides which one a demuxed stream needs.
package bitstreamfilter

import (
	"github.com/xaionaro-go/ffav/media"
)

type Name string

const (
	NameAACADTSToASC       = Name("aac_adtstoasc")
	NameDumpExtra          = Name("dump_extra")
	NameExtractExtradata   = Name("extract_extradata")
	NameH264Metadata       = Name("h264_metadata")
	NameH264MP4toAnnexB    = Name("h264_mp4toannexb")
	NameHEVCMetadata       = Name("hevc_metadata")
	NameHEVCMP4toAnnexB    = Name("hevc_mp4toannexb")
	NameMPEG4UnpackBFrames = Name("mpeg4_unpack_bframes")
	NameNull               = Name("null")
	NameRemoveExtra        = Name("remove_extra")
	NameVP9Superframe      = Name("vp9_superframe")
	NameVP9SuperframeSplit = Name("vp9_superframe_split")
)

func (n Name) String() string {
	return string(n)
}

// NameMP4ToAnnexB returns the filter converting a length-prefixed (MP4
// style) stream of the codec into Annex B, or NameNull.
func NameMP4ToAnnexB(codecID media.CodecID) Name {
	switch codecID {
	case media.CodecIDH264:
		return NameH264MP4toAnnexB
	case media.CodecIDHEVC:
		return NameHEVCMP4toAnnexB
	}
	return NameNull
}

// NameForCodecTag picks the filter by the container FourCC: only streams
// stored as avc1/hev1/hvc1 are length-prefixed and need conversion; other
// streams pass through the null filter.
func NameForCodecTag(tag media.CodecTag) Name {
	switch tag {
	case media.CodecTagAVC1:
		return NameH264MP4toAnnexB
	case media.CodecTagHEV1, media.CodecTagHVC1:
		return NameHEVCMP4toAnnexB
	}
	return NameNull
}

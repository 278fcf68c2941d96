package extradata

import (
	"fmt"
	"strings"

	"github.com/xaionaro-go/ffav/media"
)

type H264NALUnitType uint8

const (
	H264NALUnitTypeNonIDR H264NALUnitType = 1
	H264NALUnitTypeIDR    H264NALUnitType = 5
	H264NALUnitTypeSEI    H264NALUnitType = 6
	H264NALUnitTypeSPS    H264NALUnitType = 7
	H264NALUnitTypePPS    H264NALUnitType = 8
	H264NALUnitTypeAUD    H264NALUnitType = 9
)

func H264NALUnitTypeOf(nalu []byte) H264NALUnitType {
	if len(nalu) == 0 {
		return 0
	}
	return H264NALUnitType(nalu[0] & 0x1f)
}

func (t H264NALUnitType) String() string {
	switch t {
	case H264NALUnitTypeNonIDR:
		return "non-IDR slice"
	case H264NALUnitTypeIDR:
		return "IDR slice"
	case H264NALUnitTypeSEI:
		return "SEI"
	case H264NALUnitTypeSPS:
		return "SPS"
	case H264NALUnitTypePPS:
		return "PPS"
	case H264NALUnitTypeAUD:
		return "AUD"
	default:
		return fmt.Sprintf("type %d", uint8(t))
	}
}

type HEVCNALUnitType uint8

const (
	HEVCNALUnitTypeBLAWLP    HEVCNALUnitType = 16
	HEVCNALUnitTypeCRA       HEVCNALUnitType = 21
	HEVCNALUnitTypeIRAPMax   HEVCNALUnitType = 23
	HEVCNALUnitTypeVPS       HEVCNALUnitType = 32
	HEVCNALUnitTypeSPS       HEVCNALUnitType = 33
	HEVCNALUnitTypePPS       HEVCNALUnitType = 34
	HEVCNALUnitTypeAUD       HEVCNALUnitType = 35
	HEVCNALUnitTypePrefixSEI HEVCNALUnitType = 39
)

func HEVCNALUnitTypeOf(nalu []byte) HEVCNALUnitType {
	if len(nalu) == 0 {
		return 0
	}
	return HEVCNALUnitType((nalu[0] >> 1) & 0x3f)
}

// IsIRAP reports a random access point (BLA, IDR or CRA).
func (t HEVCNALUnitType) IsIRAP() bool {
	return t >= HEVCNALUnitTypeBLAWLP && t <= HEVCNALUnitTypeIRAPMax
}

func (t HEVCNALUnitType) String() string {
	switch {
	case t.IsIRAP():
		return fmt.Sprintf("IRAP slice (type %d)", uint8(t))
	case t == HEVCNALUnitTypeVPS:
		return "VPS"
	case t == HEVCNALUnitTypeSPS:
		return "SPS"
	case t == HEVCNALUnitTypePPS:
		return "PPS"
	case t == HEVCNALUnitTypeAUD:
		return "AUD"
	case t == HEVCNALUnitTypePrefixSEI:
		return "prefix SEI"
	default:
		return fmt.Sprintf("type %d", uint8(t))
	}
}

// AnnexB is an H.264 or HEVC byte stream split into NAL units.
type AnnexB struct {
	CodecID media.CodecID
	NALUs   [][]byte
}

func ParseAnnexB(codecID media.CodecID, b []byte) (*AnnexB, error) {
	nalus := SplitAnnexB(b)
	if len(nalus) == 0 {
		return nil, fmt.Errorf("no NAL units found")
	}
	return &AnnexB{
		CodecID: codecID,
		NALUs:   nalus,
	}, nil
}

func (s *AnnexB) typeName(nalu []byte) string {
	if s.CodecID == media.CodecIDHEVC {
		return HEVCNALUnitTypeOf(nalu).String()
	}
	return H264NALUnitTypeOf(nalu).String()
}

func (s *AnnexB) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s Annex B, %d NAL units", s.CodecID, len(s.NALUs))
	for i, nalu := range s.NALUs {
		fmt.Fprintf(&sb, "; #%d %s len=%d % X", i, s.typeName(nalu), len(nalu), preview(nalu, 8))
	}
	return sb.String()
}

// IsKeyFrame reports whether an Annex B access unit carries an IDR slice
// (H.264) or an IRAP slice (HEVC). Other codecs report false.
func IsKeyFrame(codecID media.CodecID, accessUnit []byte) bool {
	for nalu := range NALUnits(accessUnit) {
		switch codecID {
		case media.CodecIDH264:
			if H264NALUnitTypeOf(nalu) == H264NALUnitTypeIDR {
				return true
			}
		case media.CodecIDHEVC:
			if HEVCNALUnitTypeOf(nalu).IsIRAP() {
				return true
			}
		default:
			return false
		}
	}
	return false
}

// ParameterSets returns the SPS and PPS (H.264) or VPS, SPS and PPS (HEVC)
// units of an Annex B access unit, in stream order.
func ParameterSets(codecID media.CodecID, accessUnit []byte) [][]byte {
	var result [][]byte
	for nalu := range NALUnits(accessUnit) {
		isParameterSet := false
		switch codecID {
		case media.CodecIDH264:
			switch H264NALUnitTypeOf(nalu) {
			case H264NALUnitTypeSPS, H264NALUnitTypePPS:
				isParameterSet = true
			}
		case media.CodecIDHEVC:
			switch HEVCNALUnitTypeOf(nalu) {
			case HEVCNALUnitTypeVPS, HEVCNALUnitTypeSPS, HEVCNALUnitTypePPS:
				isParameterSet = true
			}
		}
		if isParameterSet {
			result = append(result, append([]byte(nil), nalu...))
		}
	}
	return result
}

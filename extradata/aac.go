package extradata

import (
	"fmt"
)

var aacSampleRates = [...]int{
	96000, 88200, 64000, 48000, 44100, 32000,
	24000, 22050, 16000, 12000, 11025, 8000, 7350,
}

const aacSampleRateIndexExplicit = 0x0f

// AACASC is the head of an MPEG-4 AudioSpecificConfig.
type AACASC struct {
	AudioObjectType int
	SampleRateIndex int
	SampleRate      int
	ChannelConfig   int
}

func ParseAACASC(b []byte) (*AACASC, error) {
	if len(b) < 2 {
		return nil, fmt.Errorf("input too short (%d bytes)", len(b))
	}

	// [5 bits AOT][4 bits sample rate index][4 bits channel config]
	v := uint16(b[0])<<8 | uint16(b[1])
	asc := &AACASC{
		AudioObjectType: int((v >> 11) & 0x1f),
		SampleRateIndex: int((v >> 7) & 0x0f),
		ChannelConfig:   int((v >> 3) & 0x0f),
	}
	switch asc.AudioObjectType {
	case 1, 2, 3, 4, 5, 17:
	default:
		return nil, fmt.Errorf("unsupported audio object type %d", asc.AudioObjectType)
	}
	switch {
	case asc.SampleRateIndex < len(aacSampleRates):
		asc.SampleRate = aacSampleRates[asc.SampleRateIndex]
	case asc.SampleRateIndex != aacSampleRateIndexExplicit:
		return nil, fmt.Errorf("invalid sample rate index %d", asc.SampleRateIndex)
	}
	return asc, nil
}

func (a *AACASC) String() string {
	rate := "explicit"
	if a.SampleRate > 0 {
		rate = fmt.Sprintf("%dHz", a.SampleRate)
	}
	return fmt.Sprintf("AAC ASC object_type=%d (%s) rate=%s channel_config=%d",
		a.AudioObjectType, aacObjectTypeName(a.AudioObjectType), rate, a.ChannelConfig)
}

func aacObjectTypeName(aot int) string {
	switch aot {
	case 1:
		return "Main"
	case 2:
		return "LC"
	case 3:
		return "SSR"
	case 4:
		return "LTP"
	case 5:
		return "SBR"
	case 17:
		return "ER LC"
	default:
		return "unknown"
	}
}

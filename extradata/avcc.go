package extradata

import (
	"encoding/binary"
	"errors"
	"fmt"
	"strings"
)

var ErrNoParameterSets = errors.New("no SPS/PPS found")

// H264AVCC is an AVCDecoderConfigurationRecord, the H.264 extradata of
// MP4-family containers.
type H264AVCC struct {
	Profile       uint8
	Compatibility uint8
	Level         uint8
	NALLengthSize int
	SPS           [][]byte
	PPS           [][]byte
}

func ParseH264AVCC(b []byte) (*H264AVCC, error) {
	if len(b) < 7 {
		return nil, fmt.Errorf("data too short (%d bytes)", len(b))
	}
	if b[0] != 1 {
		return nil, fmt.Errorf("unsupported configurationVersion (%d)", b[0])
	}
	if b[4]&0xfc != 0xfc {
		return nil, fmt.Errorf("invalid reserved bits in byte 4 (0x%02X)", b[4])
	}

	cfg := &H264AVCC{
		Profile:       b[1],
		Compatibility: b[2],
		Level:         b[3],
		NALLengthSize: int(b[4]&0x03) + 1,
	}

	var err error
	rest := b[6:]
	cfg.SPS, rest, err = readParameterSets(rest, int(b[5]&0x1f))
	if err != nil {
		return nil, fmt.Errorf("unable to read SPS: %w", err)
	}
	if len(rest) == 0 {
		return cfg, nil
	}
	cfg.PPS, _, err = readParameterSets(rest[1:], int(rest[0]))
	if err != nil {
		return nil, fmt.Errorf("unable to read PPS: %w", err)
	}
	return cfg, nil
}

func readParameterSets(b []byte, count int) ([][]byte, []byte, error) {
	var result [][]byte
	for i := 0; i < count; i++ {
		if len(b) < 2 {
			return nil, nil, fmt.Errorf("truncated length of set #%d", i)
		}
		size := int(binary.BigEndian.Uint16(b))
		b = b[2:]
		if size > len(b) {
			return nil, nil, fmt.Errorf("set #%d is truncated: %d > %d", i, size, len(b))
		}
		result = append(result, append([]byte(nil), b[:size]...))
		b = b[size:]
	}
	return result, b, nil
}

// Bytes serializes the record with 4-byte NAL lengths.
func (c *H264AVCC) Bytes() []byte {
	result := []byte{1, c.Profile, c.Compatibility, c.Level, 0xfc | 0x03, 0xe0 | uint8(len(c.SPS))}
	for _, sps := range c.SPS {
		result = binary.BigEndian.AppendUint16(result, uint16(len(sps)))
		result = append(result, sps...)
	}
	result = append(result, uint8(len(c.PPS)))
	for _, pps := range c.PPS {
		result = binary.BigEndian.AppendUint16(result, uint16(len(pps)))
		result = append(result, pps...)
	}
	return result
}

// H264AVCCFromAnnexB collects the SPS and PPS units of an Annex B access
// unit into an avcC record. Profile, compatibility and level come from
// the first SPS.
func H264AVCCFromAnnexB(accessUnit []byte) (*H264AVCC, error) {
	cfg := &H264AVCC{NALLengthSize: 4}
	for nalu := range NALUnits(accessUnit) {
		switch H264NALUnitTypeOf(nalu) {
		case H264NALUnitTypeSPS:
			if len(nalu) < 4 {
				return nil, fmt.Errorf("SPS too short (%d bytes)", len(nalu))
			}
			cfg.SPS = append(cfg.SPS, append([]byte(nil), nalu...))
		case H264NALUnitTypePPS:
			cfg.PPS = append(cfg.PPS, append([]byte(nil), nalu...))
		}
	}
	if len(cfg.SPS) == 0 || len(cfg.PPS) == 0 {
		return nil, ErrNoParameterSets
	}
	cfg.Profile = cfg.SPS[0][1]
	cfg.Compatibility = cfg.SPS[0][2]
	cfg.Level = cfg.SPS[0][3]
	return cfg, nil
}

func (c *H264AVCC) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "avcC profile=0x%02X compat=0x%02X level=0x%02X nal_length_size=%d",
		c.Profile, c.Compatibility, c.Level, c.NALLengthSize)
	for i, sps := range c.SPS {
		fmt.Fprintf(&sb, "; SPS#%d len=%d % X", i, len(sps), preview(sps, 8))
	}
	for i, pps := range c.PPS {
		fmt.Fprintf(&sb, "; PPS#%d len=%d % X", i, len(pps), preview(pps, 8))
	}
	return sb.String()
}

package extradata

import (
	"fmt"
)

// AV1C is the fixed header of an AV1CodecConfigurationRecord.
type AV1C struct {
	Version              uint8
	SeqProfile           uint8
	SeqLevelIdx0         uint8
	SeqTier0             uint8
	HighBitDepth         bool
	TwelveBit            bool
	Monochrome           bool
	ChromaSubsamplingX   uint8
	ChromaSubsamplingY   uint8
	ChromaSamplePosition uint8
	ConfigOBUs           []byte
}

func ParseAV1C(b []byte) (*AV1C, error) {
	if len(b) < 4 {
		return nil, fmt.Errorf("data too short (%d bytes)", len(b))
	}
	if b[0]>>7 != 1 {
		return nil, fmt.Errorf("invalid marker bit")
	}
	return &AV1C{
		Version:              b[0] & 0x7f,
		SeqProfile:           b[1] >> 5,
		SeqLevelIdx0:         b[1] & 0x1f,
		SeqTier0:             b[2] >> 7,
		HighBitDepth:         b[2]&0x40 != 0,
		TwelveBit:            b[2]&0x20 != 0,
		Monochrome:           b[2]&0x10 != 0,
		ChromaSubsamplingX:   (b[2] >> 3) & 0x01,
		ChromaSubsamplingY:   (b[2] >> 2) & 0x01,
		ChromaSamplePosition: b[2] & 0x03,
		ConfigOBUs:           append([]byte(nil), b[4:]...),
	}, nil
}

func (c *AV1C) BitDepth() int {
	switch {
	case !c.HighBitDepth:
		return 8
	case c.SeqProfile == 2 && c.TwelveBit:
		return 12
	default:
		return 10
	}
}

func (c *AV1C) String() string {
	return fmt.Sprintf(
		"av1C version=%d profile=%d level=%d tier=%d bit_depth=%d mono=%t subsampling=%d,%d config_obus=%d bytes",
		c.Version, c.SeqProfile, c.SeqLevelIdx0, c.SeqTier0, c.BitDepth(), c.Monochrome,
		c.ChromaSubsamplingX, c.ChromaSubsamplingY, len(c.ConfigOBUs),
	)
}

package media

// CodecTag is a container FourCC as stored in AVCodecParameters.codec_tag
// (little-endian, like FFmpeg's MKTAG).
type CodecTag uint32

func MakeCodecTag(a, b, c, d byte) CodecTag {
	return CodecTag(uint32(a) | uint32(b)<<8 | uint32(c)<<16 | uint32(d)<<24)
}

var (
	CodecTagAVC1 = MakeCodecTag('a', 'v', 'c', '1')
	CodecTagHEV1 = MakeCodecTag('h', 'e', 'v', '1')
	CodecTagHVC1 = MakeCodecTag('h', 'v', 'c', '1')
)

func (t CodecTag) String() string {
	if t == 0 {
		return "none"
	}
	b := []byte{byte(t), byte(t >> 8), byte(t >> 16), byte(t >> 24)}
	for idx, c := range b {
		if c < 0x20 || c > 0x7e {
			b[idx] = '.'
		}
	}
	return string(b)
}

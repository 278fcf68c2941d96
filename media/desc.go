package media

import (
	"fmt"

	"github.com/xaionaro-go/ffav/types"
)

// Desc describes an elementary stream fed into a writer.
type Desc interface {
	fmt.Stringer
	CodecID() CodecID
	AsAudio() (*AudioDesc, bool)
	AsVideo() (*VideoDesc, bool)
}

type AudioDesc struct {
	Codec        CodecID
	SampleFormat SampleFormat
	BitRate      int64
	SampleRate   int
	Channels     int
}

var _ Desc = (*AudioDesc)(nil)

// NewAudioDesc returns an empty audio description. Writers do not create a
// stream for it.
func NewAudioDesc() *AudioDesc {
	return &AudioDesc{}
}

func (d *AudioDesc) CodecID() CodecID            { return d.Codec }
func (d *AudioDesc) AsAudio() (*AudioDesc, bool) { return d, true }
func (d *AudioDesc) AsVideo() (*VideoDesc, bool) { return nil, false }

func (d *AudioDesc) String() string {
	return fmt.Sprintf("AudioDesc{codec:%s, rate:%d, channels:%d}", d.Codec, d.SampleRate, d.Channels)
}

type VideoDesc struct {
	Codec       CodecID
	Width       int
	Height      int
	BitRate     int64
	TimeBase    types.Rational
	GOPSize     int
	PixelFormat PixelFormat
}

var _ Desc = (*VideoDesc)(nil)

func NewVideoDesc() *VideoDesc {
	return &VideoDesc{}
}

// NewH264VideoDesc describes an H.264 stream whose timestamps are expressed
// in 1/timeUnit seconds (e.g. timeUnit=1000000 for microseconds).
func NewH264VideoDesc(width, height int, bitRate int64, timeUnit int) *VideoDesc {
	return newVideoDesc(CodecIDH264, width, height, bitRate, timeUnit)
}

// NewHEVCVideoDesc is the H.265 counterpart of NewH264VideoDesc.
func NewHEVCVideoDesc(width, height int, bitRate int64, timeUnit int) *VideoDesc {
	return newVideoDesc(CodecIDHEVC, width, height, bitRate, timeUnit)
}

const defaultGOPSize = 12

func newVideoDesc(codecID CodecID, width, height int, bitRate int64, timeUnit int) *VideoDesc {
	return &VideoDesc{
		Codec:       codecID,
		Width:       width,
		Height:      height,
		BitRate:     bitRate,
		TimeBase:    types.TimeBaseFromUnit(timeUnit),
		GOPSize:     defaultGOPSize,
		PixelFormat: PixelFormatYUV420P,
	}
}

func (d *VideoDesc) CodecID() CodecID            { return d.Codec }
func (d *VideoDesc) AsAudio() (*AudioDesc, bool) { return nil, false }
func (d *VideoDesc) AsVideo() (*VideoDesc, bool) { return d, true }

func (d *VideoDesc) String() string {
	return fmt.Sprintf("VideoDesc{codec:%s, %dx%d, bitrate:%d, time_base:%s}", d.Codec, d.Width, d.Height, d.BitRate, d.TimeBase)
}

// ProducesStream reports whether writers create an output stream for the
// description. Only H.264 and HEVC video is muxed; other descriptions are
// accepted and skipped without taking a stream index.
func ProducesStream(d Desc) bool {
	if _, ok := d.AsVideo(); !ok {
		return false
	}
	switch d.CodecID() {
	case CodecIDH264, CodecIDHEVC:
		return true
	default:
		return false
	}
}

// StreamDescs returns the descriptions that produce output streams, indexed
// by output stream index.
func StreamDescs(descs []Desc) []Desc {
	var result []Desc
	for _, d := range descs {
		if d == nil || !ProducesStream(d) {
			continue
		}
		result = append(result, d)
	}
	return result
}

// FrameInfo describes the packets of one demuxed stream.
type FrameInfo struct {
	CodecID   CodecID
	CodecTag  CodecTag
	MediaType MediaType
}

func (i FrameInfo) String() string {
	return fmt.Sprintf("%s/%s", i.MediaType, i.CodecID)
}

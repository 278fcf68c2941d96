package media

type MediaType int

const (
	MediaTypeUnknown = MediaType(iota)
	MediaTypeVideo
	MediaTypeAudio
	MediaTypeData
	MediaTypeSubtitle
)

func (t MediaType) String() string {
	switch t {
	case MediaTypeVideo:
		return "video"
	case MediaTypeAudio:
		return "audio"
	case MediaTypeData:
		return "data"
	case MediaTypeSubtitle:
		return "subtitle"
	default:
		return "unknown"
	}
}

type PixelFormat int

const (
	PixelFormatNone = PixelFormat(iota)
	PixelFormatYUV420P
	PixelFormatNV12
)

func (f PixelFormat) String() string {
	switch f {
	case PixelFormatYUV420P:
		return "yuv420p"
	case PixelFormatNV12:
		return "nv12"
	default:
		return "none"
	}
}

type SampleFormat int

const (
	SampleFormatNone = SampleFormat(iota)
	SampleFormatS16
	SampleFormatFLTP
)

func (f SampleFormat) String() string {
	switch f {
	case SampleFormatS16:
		return "s16"
	case SampleFormatFLTP:
		return "fltp"
	default:
		return "none"
	}
}

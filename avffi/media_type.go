package avffi

/*
#include <libavcodec/avcodec.h>
#include <libavutil/pixfmt.h>
#include <libavutil/samplefmt.h>
*/
import "C"

import (
	"github.com/xaionaro-go/ffav/media"
)

// MediaType mirrors enum AVMediaType.
type MediaType C.enum_AVMediaType

const (
	MediaTypeUnknown  = MediaType(C.AVMEDIA_TYPE_UNKNOWN)
	MediaTypeVideo    = MediaType(C.AVMEDIA_TYPE_VIDEO)
	MediaTypeAudio    = MediaType(C.AVMEDIA_TYPE_AUDIO)
	MediaTypeData     = MediaType(C.AVMEDIA_TYPE_DATA)
	MediaTypeSubtitle = MediaType(C.AVMEDIA_TYPE_SUBTITLE)
)

func MediaTypeFromMedia(t media.MediaType) MediaType {
	switch t {
	case media.MediaTypeVideo:
		return MediaTypeVideo
	case media.MediaTypeAudio:
		return MediaTypeAudio
	case media.MediaTypeData:
		return MediaTypeData
	case media.MediaTypeSubtitle:
		return MediaTypeSubtitle
	default:
		return MediaTypeUnknown
	}
}

func (t MediaType) Media() media.MediaType {
	switch t {
	case MediaTypeVideo:
		return media.MediaTypeVideo
	case MediaTypeAudio:
		return media.MediaTypeAudio
	case MediaTypeData:
		return media.MediaTypeData
	case MediaTypeSubtitle:
		return media.MediaTypeSubtitle
	default:
		return media.MediaTypeUnknown
	}
}

func (t MediaType) String() string {
	return t.Media().String()
}

// PixelFormat mirrors enum AVPixelFormat.
type PixelFormat C.enum_AVPixelFormat

const (
	PixelFormatNone    = PixelFormat(C.AV_PIX_FMT_NONE)
	PixelFormatYUV420P = PixelFormat(C.AV_PIX_FMT_YUV420P)
	PixelFormatNV12    = PixelFormat(C.AV_PIX_FMT_NV12)
)

func PixelFormatFromMedia(f media.PixelFormat) PixelFormat {
	switch f {
	case media.PixelFormatYUV420P:
		return PixelFormatYUV420P
	case media.PixelFormatNV12:
		return PixelFormatNV12
	default:
		return PixelFormatNone
	}
}

func (f PixelFormat) Media() media.PixelFormat {
	switch f {
	case PixelFormatYUV420P:
		return media.PixelFormatYUV420P
	case PixelFormatNV12:
		return media.PixelFormatNV12
	default:
		return media.PixelFormatNone
	}
}

// SampleFormat mirrors enum AVSampleFormat.
type SampleFormat C.enum_AVSampleFormat

const (
	SampleFormatNone = SampleFormat(C.AV_SAMPLE_FMT_NONE)
	SampleFormatS16  = SampleFormat(C.AV_SAMPLE_FMT_S16)
	SampleFormatFLTP = SampleFormat(C.AV_SAMPLE_FMT_FLTP)
)

func SampleFormatFromMedia(f media.SampleFormat) SampleFormat {
	switch f {
	case media.SampleFormatS16:
		return SampleFormatS16
	case media.SampleFormatFLTP:
		return SampleFormatFLTP
	default:
		return SampleFormatNone
	}
}

func (f SampleFormat) Media() media.SampleFormat {
	switch f {
	case SampleFormatS16:
		return media.SampleFormatS16
	case SampleFormatFLTP:
		return media.SampleFormatFLTP
	default:
		return media.SampleFormatNone
	}
}

// FieldOrder mirrors enum AVFieldOrder.
type FieldOrder C.enum_AVFieldOrder

const (
	FieldOrderUnknown     = FieldOrder(C.AV_FIELD_UNKNOWN)
	FieldOrderProgressive = FieldOrder(C.AV_FIELD_PROGRESSIVE)
)

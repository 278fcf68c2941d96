package avffi

/*
#include <libavcodec/avcodec.h>

static enum AVCodecID ffav_codec_id_av1(void) {
#if LIBAVCODEC_VERSION_MAJOR >= 58
	return AV_CODEC_ID_AV1;
#else
	return AV_CODEC_ID_NONE;
#endif
}
*/
import "C"

import (
	"fmt"

	"github.com/xaionaro-go/ffav/media"
)

// CodecID mirrors enum AVCodecID.
type CodecID C.enum_AVCodecID

const (
	CodecIDNone     = CodecID(C.AV_CODEC_ID_NONE)
	CodecIDH264     = CodecID(C.AV_CODEC_ID_H264)
	CodecIDHEVC     = CodecID(C.AV_CODEC_ID_HEVC)
	CodecIDVP8      = CodecID(C.AV_CODEC_ID_VP8)
	CodecIDVP9      = CodecID(C.AV_CODEC_ID_VP9)
	CodecIDMJPEG    = CodecID(C.AV_CODEC_ID_MJPEG)
	CodecIDAAC      = CodecID(C.AV_CODEC_ID_AAC)
	CodecIDMP3      = CodecID(C.AV_CODEC_ID_MP3)
	CodecIDOpus     = CodecID(C.AV_CODEC_ID_OPUS)
	CodecIDPCMS16LE = CodecID(C.AV_CODEC_ID_PCM_S16LE)
)

// CodecIDAV1 is CodecIDNone on the 3.4 profile.
var CodecIDAV1 = CodecID(C.ffav_codec_id_av1())

func codecIDsByMedia() map[media.CodecID]CodecID {
	m := map[media.CodecID]CodecID{
		media.CodecIDNone:     CodecIDNone,
		media.CodecIDH264:     CodecIDH264,
		media.CodecIDHEVC:     CodecIDHEVC,
		media.CodecIDVP8:      CodecIDVP8,
		media.CodecIDVP9:      CodecIDVP9,
		media.CodecIDMJPEG:    CodecIDMJPEG,
		media.CodecIDAAC:      CodecIDAAC,
		media.CodecIDMP3:      CodecIDMP3,
		media.CodecIDOpus:     CodecIDOpus,
		media.CodecIDPCMS16LE: CodecIDPCMS16LE,
	}
	if CodecIDAV1 != CodecIDNone {
		m[media.CodecIDAV1] = CodecIDAV1
	}
	return m
}

var (
	mediaToCodecID = codecIDsByMedia()
	codecIDToMedia = func() map[CodecID]media.CodecID {
		m := make(map[CodecID]media.CodecID, len(mediaToCodecID))
		for k, v := range mediaToCodecID {
			m[v] = k
		}
		return m
	}()
)

// CodecIDFromMedia returns CodecIDNone for codecs this build cannot name.
func CodecIDFromMedia(id media.CodecID) CodecID {
	return mediaToCodecID[id]
}

// Media returns media.CodecIDNone for codecs outside media's list.
func (id CodecID) Media() media.CodecID {
	return codecIDToMedia[id]
}

func (id CodecID) String() string {
	return C.GoString(C.avcodec_get_name(C.enum_AVCodecID(id)))
}

// Codec wraps a registered AVCodec; it is static and never freed.
type Codec struct {
	c *C.AVCodec
}

func FindEncoder(id CodecID) (*Codec, error) {
	c := C.avcodec_find_encoder(C.enum_AVCodecID(id))
	if c == nil {
		return nil, fmt.Errorf("no encoder for codec '%s': %w", id, ErrEncoderNotFound)
	}
	return &Codec{c: c}, nil
}

func (c *Codec) Name() string {
	return C.GoString(c.c.name)
}

func (c *Codec) ID() CodecID {
	return CodecID(c.c.id)
}

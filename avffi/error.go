package avffi

/*
#include <errno.h>
#include <libavutil/error.h>

static int ffav_averror(int e) { return AVERROR(e); }
*/
import "C"

import (
	"bytes"
	"fmt"
	"unsafe"
)

// Error is a negative AVERROR code returned by FFmpeg.
type Error int

var (
	ErrEOF             = Error(C.AVERROR_EOF)
	ErrEAGAIN          = Error(C.ffav_averror(C.EAGAIN))
	ErrEINVAL          = Error(C.ffav_averror(C.EINVAL))
	ErrEIO             = Error(C.ffav_averror(C.EIO))
	ErrENOMEM          = Error(C.ffav_averror(C.ENOMEM))
	ErrBSFNotFound     = Error(C.AVERROR_BSF_NOT_FOUND)
	ErrDemuxerNotFound = Error(C.AVERROR_DEMUXER_NOT_FOUND)
	ErrEncoderNotFound = Error(C.AVERROR_ENCODER_NOT_FOUND)
	ErrMuxerNotFound   = Error(C.AVERROR_MUXER_NOT_FOUND)
)

func newError(ret C.int) error {
	if ret >= 0 {
		return nil
	}
	return Error(ret)
}

func (e Error) Code() int {
	return int(e)
}

func (e Error) Error() string {
	buf := make([]byte, C.AV_ERROR_MAX_STRING_SIZE)
	if C.av_strerror(C.int(e), (*C.char)(unsafe.Pointer(&buf[0])), C.size_t(len(buf))) < 0 {
		return fmt.Sprintf("unknown FFmpeg error %d", int(e))
	}
	if idx := bytes.IndexByte(buf, 0); idx >= 0 {
		buf = buf[:idx]
	}
	return string(buf)
}

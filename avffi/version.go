package avffi

/*
#include <libavcodec/avcodec.h>
#include <libavformat/avformat.h>
#include <libavutil/avutil.h>

static unsigned ffav_header_libavcodec_version(void) { return LIBAVCODEC_VERSION_INT; }
*/
import "C"

import (
	"github.com/xaionaro-go/ffav/profile"
)

// LibAVCodecVersion is the version of the libavcodec loaded at runtime.
func LibAVCodecVersion() profile.Version {
	return profile.VersionFromInt(uint32(C.avcodec_version()))
}

func LibAVFormatVersion() profile.Version {
	return profile.VersionFromInt(uint32(C.avformat_version()))
}

func LibAVUtilVersion() profile.Version {
	return profile.VersionFromInt(uint32(C.avutil_version()))
}

// HeaderLibAVCodecVersion is the libavcodec version of the headers this
// package was compiled against.
func HeaderLibAVCodecVersion() profile.Version {
	return profile.VersionFromInt(uint32(C.ffav_header_libavcodec_version()))
}

// FFmpegVersion is the release string of the linked libavutil, e.g. "4.3.1".
func FFmpegVersion() string {
	return C.GoString(C.av_version_info())
}

// CheckLinkedVersion verifies that the libavcodec loaded at runtime is
// ABI-compatible with the build profile and belongs to its release series.
func CheckLinkedVersion() error {
	return profile.Current().CheckLinked(LibAVCodecVersion())
}

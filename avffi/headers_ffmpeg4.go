//go:build ffmpeg4

package avffi

/*
#include <libavcodec/version.h>

#if LIBAVCODEC_VERSION_MAJOR != 58 || LIBAVCODEC_VERSION_MINOR < 18 || LIBAVCODEC_VERSION_MINOR >= 35
#error "the ffmpeg4 build needs FFmpeg 4.0.x headers (libavcodec 58.18 up to 58.35)"
#endif
*/
import "C"

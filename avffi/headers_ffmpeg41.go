//go:build ffmpeg41

package avffi

/*
#include <libavcodec/version.h>

#if LIBAVCODEC_VERSION_MAJOR != 58 || LIBAVCODEC_VERSION_MINOR < 35 || LIBAVCODEC_VERSION_MINOR >= 54
#error "the ffmpeg41 build needs FFmpeg 4.1.x headers (libavcodec 58.35 up to 58.54)"
#endif
*/
import "C"

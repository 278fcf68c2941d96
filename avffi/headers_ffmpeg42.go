//go:build ffmpeg42

package avffi

/*
#include <libavcodec/version.h>

#if LIBAVCODEC_VERSION_MAJOR != 58 || LIBAVCODEC_VERSION_MINOR < 54 || LIBAVCODEC_VERSION_MINOR >= 91
#error "the ffmpeg42 build needs FFmpeg 4.2.x headers (libavcodec 58.54 up to 58.91)"
#endif
*/
import "C"

//go:build ffmpeg43 || !(ffmpeg42 || ffmpeg41 || ffmpeg4 || ffmpeg34)

package avffi

/*
#include <libavcodec/version.h>

#if LIBAVCODEC_VERSION_MAJOR != 58 || LIBAVCODEC_VERSION_MINOR < 91
#error "the ffmpeg43 build needs FFmpeg 4.3.x headers (libavcodec 58.x, minor >= 91)"
#endif
*/
import "C"

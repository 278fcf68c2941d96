//go:build ffmpeg34

package avffi

/*
#include <libavcodec/version.h>
#include <libavformat/avformat.h>

#if LIBAVCODEC_VERSION_MAJOR != 57 || LIBAVCODEC_VERSION_MINOR < 107
#error "the ffmpeg34 build needs FFmpeg 3.4.x headers (libavcodec 57.x, minor >= 107)"
#endif
*/
import "C"

// FFmpeg 3.x only knows the muxers, demuxers and protocols registered here.
func init() {
	C.av_register_all()
	C.avformat_network_init()
}

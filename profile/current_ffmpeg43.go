//go:build ffmpeg43 || !(ffmpeg42 || ffmpeg41 || ffmpeg4 || ffmpeg34)

package profile

// FFmpeg 4.3.x is also the default when no profile tag is given.
const currentTag = TagFFmpeg43

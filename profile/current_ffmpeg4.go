//go:build ffmpeg4

package profile

const currentTag = TagFFmpeg4

//go:build ffmpeg41

package profile

const currentTag = TagFFmpeg41

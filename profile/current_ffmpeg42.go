//go:build ffmpeg42

package profile

const currentTag = TagFFmpeg42

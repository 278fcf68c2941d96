//go:build ffmpeg34

package profile

const currentTag = TagFFmpeg34

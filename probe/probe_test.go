package probe

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xaionaro-go/ffav/profile"
)

func TestCandidatePaths(t *testing.T) {
	noEnv := func(string) string { return "" }

	linux := CandidatePaths("linux", noEnv)
	require.Equal(t, []string{"libavcodec.so.58", "libavcodec.so.57", "libavcodec.so"}, linux)

	darwin := CandidatePaths("darwin", noEnv)
	require.Equal(t, "libavcodec.58.dylib", darwin[0])
	require.Contains(t, darwin, "/opt/homebrew/lib/libavcodec.57.dylib")

	override := CandidatePaths("linux", func(key string) string {
		if key == EnvLibAVCodecPath {
			return "/opt/ffmpeg/lib/libavcodec.so.58"
		}
		return ""
	})
	require.Equal(t, []string{"/opt/ffmpeg/lib/libavcodec.so.58"}, override)
}

func TestResult(t *testing.T) {
	r := newResult("libavcodec.so.58", profile.MustParseVersion("58.54.100"))
	require.True(t, r.Profile.IsSet())
	require.Equal(t, profile.TagFFmpeg42, r.Profile.Get().Tag)
	require.Contains(t, r.String(), "ffmpeg42")

	r = newResult("libavcodec.so.59", profile.MustParseVersion("59.37.100"))
	require.False(t, r.Profile.IsSet())
	require.Contains(t, r.String(), "no matching build profile")
}

func TestDetectFromMissing(t *testing.T) {
	_, err := DetectFrom(context.Background(), []string{filepath.Join(t.TempDir(), "libavcodec.so.58")})
	require.ErrorIs(t, err, ErrNotFound)

	_, err = DetectFrom(context.Background(), nil)
	require.ErrorIs(t, err, ErrNotFound)
}

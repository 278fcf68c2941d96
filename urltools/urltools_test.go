package urltools

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFormatFromURL(t *testing.T) {
	for urlString, format := range map[string]string{
		"/tmp/out.mp4":             "mp4",
		"out.TS":                   "mpegts",
		"file:///tmp/a.mkv":        "matroska",
		"rtmp://host/app/key":      "flv",
		"srt://host:9000":          "mpegts",
		"rtsp://host/stream":       "rtsp",
		"/tmp/out.xyz":             "",
		"https://host/playlist.ts": "",
	} {
		require.Equal(t, format, FormatFromURL(urlString), urlString)
	}
}

func TestIsFile(t *testing.T) {
	require.True(t, IsFile("/tmp/out.ts"))
	require.True(t, IsFile("file:///tmp/out.ts"))
	require.True(t, IsFile(`C:\out.ts`))
	require.False(t, IsFile("srt://host:9000"))
	require.False(t, IsFile("rtmp://host/app"))
}

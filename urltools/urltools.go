// Package urltools guesses container formats from output locations.
package urltools

import (
	"net/url"
	"path/filepath"
	"strings"
)

// FormatFromURL returns the muxer name implied by the scheme or the file
// extension of urlString, or "" if there is no obvious choice.
func FormatFromURL(urlString string) string {
	u, err := url.Parse(urlString)
	if err != nil {
		return FormatFromFileExtension(urlString)
	}
	switch strings.ToLower(u.Scheme) {
	case "", "file":
		if u.Path == "" {
			return FormatFromFileExtension(urlString)
		}
		return FormatFromFileExtension(u.Path)
	case "rtmp", "rtmps":
		return "flv"
	case "srt", "udp", "tcp":
		return "mpegts"
	case "rtsp":
		return "rtsp"
	default:
		return ""
	}
}

func FormatFromFileExtension(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".mp4", ".m4v", ".mov":
		return "mp4"
	case ".mkv":
		return "matroska"
	case ".webm":
		return "webm"
	case ".flv":
		return "flv"
	case ".ts", ".mts", ".m2ts":
		return "mpegts"
	case ".h264", ".264":
		return "h264"
	case ".hevc", ".h265", ".265":
		return "hevc"
	default:
		return ""
	}
}

// IsFile reports whether urlString refers to the local file system. Unknown
// schemes on Windows-like paths ("C:\...") count as files.
func IsFile(urlString string) bool {
	u, err := url.Parse(urlString)
	if err != nil {
		return true
	}
	switch strings.ToLower(u.Scheme) {
	case "", "file":
		return true
	case "rtmp", "rtmps", "srt", "udp", "tcp", "http", "https", "rtsp":
		return false
	default:
		return len(u.Scheme) == 1
	}
}

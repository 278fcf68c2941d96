package segment

import (
	"fmt"
)

// ExtOfFormat returns the file extension (with the dot) used for segments
// of the given muxer format.
func ExtOfFormat(format string) string {
	switch format {
	case "mp4":
		return ".mp4"
	case "mpegts":
		return ".ts"
	default:
		return ".dat"
	}
}

// DefaultFormatLocation names segments MED000000.ts, MED000001.ts, ...
func DefaultFormatLocation(format string) FormatLocationFunc {
	ext := ExtOfFormat(format)
	return func(index int) string {
		return fmt.Sprintf("MED%06d%s", index, ext)
	}
}

// Package media describes the elementary streams ffav muxes and demuxes,
// independently of the FFmpeg headers the binding is built against.
package media

import (
	"fmt"
	"strings"
)

type CodecID int

const (
	CodecIDNone = CodecID(iota)
	CodecIDH264
	CodecIDHEVC
	CodecIDVP8
	CodecIDVP9
	CodecIDAV1
	CodecIDMJPEG
	CodecIDAAC
	CodecIDMP3
	CodecIDOpus
	CodecIDPCMS16LE
	endOfCodecID
)

var codecNames = map[CodecID]string{
	CodecIDNone:     "none",
	CodecIDH264:     "h264",
	CodecIDHEVC:     "hevc",
	CodecIDVP8:      "vp8",
	CodecIDVP9:      "vp9",
	CodecIDAV1:      "av1",
	CodecIDMJPEG:    "mjpeg",
	CodecIDAAC:      "aac",
	CodecIDMP3:      "mp3",
	CodecIDOpus:     "opus",
	CodecIDPCMS16LE: "pcm_s16le",
}

// CodecIDs returns every known codec except CodecIDNone.
func CodecIDs() []CodecID {
	result := make([]CodecID, 0, int(endOfCodecID)-1)
	for id := CodecIDNone + 1; id < endOfCodecID; id++ {
		result = append(result, id)
	}
	return result
}

func (id CodecID) String() string {
	if name, ok := codecNames[id]; ok {
		return name
	}
	return fmt.Sprintf("unknown_codec_%d", int(id))
}

func ParseCodecID(s string) (CodecID, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case "h265":
		return CodecIDHEVC, nil
	case "avc":
		return CodecIDH264, nil
	}
	for id, name := range codecNames {
		if name == s {
			return id, nil
		}
	}
	return CodecIDNone, fmt.Errorf("unknown codec %q", s)
}

func (id CodecID) MediaType() MediaType {
	switch id {
	case CodecIDH264, CodecIDHEVC, CodecIDVP8, CodecIDVP9, CodecIDAV1, CodecIDMJPEG:
		return MediaTypeVideo
	case CodecIDAAC, CodecIDMP3, CodecIDOpus, CodecIDPCMS16LE:
		return MediaTypeAudio
	default:
		return MediaTypeUnknown
	}
}

// HasGOP is true for inter-frame codecs, whose streams can only be cut at
// key frames.
func (id CodecID) HasGOP() bool {
	switch id {
	case CodecIDH264, CodecIDHEVC, CodecIDVP8, CodecIDVP9, CodecIDAV1:
		return true
	default:
		return false
	}
}

func (id CodecID) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

func (id *CodecID) UnmarshalText(b []byte) error {
	v, err := ParseCodecID(string(b))
	if err != nil {
		return err
	}
	*id = v
	return nil
}

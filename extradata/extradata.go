// extradata.go describes codec extradata for logs.

// Package extradata parses and builds codec extradata: H.264 avcC records,
// Annex B parameter sets, AAC AudioSpecificConfig and AV1 av1C records.
package extradata

import (
	"bytes"
	"fmt"

	"github.com/xaionaro-go/ffav/media"
)

type Raw []byte

func (b Raw) Equal(cmp Raw) bool {
	return bytes.Equal(b, cmp)
}

func (b Raw) String() string {
	if len(b) == 0 {
		return "<empty>"
	}
	return b.Parse(media.CodecIDNone).String()
}

type Parsed interface {
	fmt.Stringer
}

// Parse decodes b as the extradata of the given codec. With
// media.CodecIDNone every known layout is tried in turn. Whatever is not
// recognized comes back as Unknown.
func (b Raw) Parse(codecID media.CodecID) Parsed {
	if len(b) == 0 {
		return Unknown(nil)
	}

	switch codecID {
	case media.CodecIDH264:
		if avcc, err := ParseH264AVCC(b); err == nil {
			return avcc
		}
		if seq, err := ParseAnnexB(codecID, b); err == nil {
			return seq
		}
	case media.CodecIDHEVC:
		if seq, err := ParseAnnexB(codecID, b); err == nil {
			return seq
		}
	case media.CodecIDAAC:
		if asc, err := ParseAACASC(b); err == nil {
			return asc
		}
	case media.CodecIDAV1:
		if av1c, err := ParseAV1C(b); err == nil {
			return av1c
		}
	case media.CodecIDNone:
		if avcc, err := ParseH264AVCC(b); err == nil {
			return avcc
		}
		if asc, err := ParseAACASC(b); err == nil {
			return asc
		}
		if seq, err := ParseAnnexB(media.CodecIDH264, b); err == nil {
			return seq
		}
		if av1c, err := ParseAV1C(b); err == nil {
			return av1c
		}
	}
	return Unknown(b)
}

type Unknown []byte

func (b Unknown) String() string {
	return fmt.Sprintf("<unknown extradata, %d bytes>", len(b))
}

func preview(b []byte, max int) []byte {
	if len(b) > max {
		return b[:max]
	}
	return b
}

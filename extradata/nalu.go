package extradata

import (
	"iter"
)

// NALUnits iterates over the NAL units of an Annex B byte stream. The
// yielded slices alias b; empty units are skipped.
func NALUnits(b []byte) iter.Seq[[]byte] {
	return func(yield func([]byte) bool) {
		start := -1
		for i := 0; i+2 < len(b); i++ {
			if b[i] != 0 || b[i+1] != 0 || b[i+2] != 1 {
				continue
			}
			if start >= 0 {
				end := i
				if end > start && b[end-1] == 0 {
					end--
				}
				if end > start && !yield(b[start:end]) {
					return
				}
			}
			start = i + 3
			i += 2
		}
		if start >= 0 && start < len(b) {
			yield(b[start:])
		}
	}
}

// SplitAnnexB copies every NAL unit of b.
func SplitAnnexB(b []byte) [][]byte {
	var result [][]byte
	for nalu := range NALUnits(b) {
		result = append(result, append([]byte(nil), nalu...))
	}
	return result
}

// ToAnnexB joins NAL units with 4-byte start codes.
func ToAnnexB(nalus ...[]byte) []byte {
	var result []byte
	for _, nalu := range nalus {
		result = append(result, 0, 0, 0, 1)
		result = append(result, nalu...)
	}
	return result
}

// duration.go converts between FFmpeg timestamps and time.Duration.

// Package avconv provides conversion utilities for timestamps.
package avconv

import (
	"math"
	"time"

	"github.com/xaionaro-go/ffav/types"
)

const (
	// see https://ffmpeg.org/doxygen/trunk/group__lavu__time.html#ga2eaefe702f95f619ea6f2d08afa01be1
	avNoPTSValue = uint64(0x8000000000000000)

	// NoPTSValue is AV_NOPTS_VALUE.
	NoPTSValue = int64(math.MinInt64)
)

const (
	NoDuration = time.Duration(math.MinInt64)
)

func init() {
	if avNoPTSValue != uint64(any(NoPTSValue).(int64)) { // to bypass the compiler check
		panic("avNoPTSValue changed")
	}
}

// Duration converts a timestamp in timeBase units to time.Duration.
// AV_NOPTS_VALUE maps to NoDuration.
func Duration(t int64, timeBase types.Rational) time.Duration {
	if uint64(t) == avNoPTSValue {
		return NoDuration
	}
	if timeBase.Den == 0 {
		return NoDuration
	}

	return time.Duration(float64(t) * timeBase.Float64() * float64(time.Second))
}

// FromDuration is the reverse of Duration.
func FromDuration(d time.Duration, timeBase types.Rational) int64 {
	if d == NoDuration {
		return NoPTSValue
	}

	return int64(math.Round(d.Seconds() / timeBase.Float64()))
}

package avffi

/*
#include <libavutil/mathematics.h>
#include <libavutil/rational.h>
*/
import "C"

import (
	"fmt"

	"github.com/xaionaro-go/ffav/avconv"
	"github.com/xaionaro-go/ffav/types"
)

// NoPTSValue is AV_NOPTS_VALUE.
const NoPTSValue = avconv.NoPTSValue

type Rational struct {
	c C.AVRational
}

func NewRational(num, den int) Rational {
	return Rational{c: C.AVRational{num: C.int(num), den: C.int(den)}}
}

func RationalFromTypes(r types.Rational) Rational {
	return NewRational(r.Num, r.Den)
}

func (r Rational) Num() int {
	return int(r.c.num)
}

func (r Rational) Den() int {
	return int(r.c.den)
}

func (r Rational) Types() types.Rational {
	return types.NewRational(r.Num(), r.Den())
}

func (r Rational) Float64() float64 {
	if r.c.den == 0 {
		return 0
	}
	return float64(r.c.num) / float64(r.c.den)
}

func (r Rational) String() string {
	return fmt.Sprintf("%d/%d", r.Num(), r.Den())
}

// Rounding mirrors enum AVRounding; values may be OR-ed with
// RoundingPassMinMax.
type Rounding int

const (
	RoundingZero       = Rounding(C.AV_ROUND_ZERO)
	RoundingInf        = Rounding(C.AV_ROUND_INF)
	RoundingDown       = Rounding(C.AV_ROUND_DOWN)
	RoundingUp         = Rounding(C.AV_ROUND_UP)
	RoundingNearInf    = Rounding(C.AV_ROUND_NEAR_INF)
	RoundingPassMinMax = Rounding(C.AV_ROUND_PASS_MINMAX)
)

// RescaleQ rescales a from time base b to time base c (av_rescale_q).
func RescaleQ(a int64, b, c Rational) int64 {
	return int64(C.av_rescale_q(C.int64_t(a), b.c, c.c))
}

// RescaleQRnd is RescaleQ with explicit rounding (av_rescale_q_rnd). With
// RoundingPassMinMax, AV_NOPTS_VALUE passes through unchanged.
func RescaleQRnd(a int64, b, c Rational, rounding Rounding) int64 {
	return int64(C.av_rescale_q_rnd(C.int64_t(a), b.c, c.c, C.enum_AVRounding(rounding)))
}

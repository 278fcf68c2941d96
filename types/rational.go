package types

import (
	"encoding/json"
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"
)

// Rational is a time base or frame rate, independent of the FFmpeg headers
// in use.
type Rational struct {
	Num int
	Den int
}

func NewRational(num, den int) Rational {
	return Rational{Num: num, Den: den}
}

// TimeBaseFromUnit returns the time base 1/unit, e.g. 1/1000000 for
// microsecond timestamps.
func TimeBaseFromUnit(unit int) Rational {
	return Rational{Num: 1, Den: unit}
}

func (r Rational) Reverse() Rational {
	return Rational{
		Num: r.Den,
		Den: r.Num,
	}
}

func (r Rational) IsZero() bool {
	return r.Num == 0 || r.Den == 0
}

func newNTSCRationalFromFloat64(f float64) *big.Rat {
	den := 1001 // common denominator for NTSC frame rates
	num := math.Ceil(f) * 1000
	r := big.NewRat(int64(num), int64(den))
	confirmValue, _ := r.Float64()
	if math.Abs(f-confirmValue) < 1e-2 {
		return r
	}
	return nil
}

func RationalFromApproxFloat64(fps float64) (r Rational) {
	if float64(int(fps)) == fps {
		r.Num = int(fps)
		r.Den = 1
		return
	}

	rat := newNTSCRationalFromFloat64(fps)
	if rat != nil {
		r.Num = int(rat.Num().Int64())
		r.Den = int(rat.Denom().Int64())
		return
	}

	r.Num = int(math.Round(fps * 1000000))
	r.Den = 1000000

	gcd := big.NewInt(0).GCD(nil, nil, big.NewInt(int64(r.Num)), big.NewInt(int64(r.Den))).Int64()
	r.Num /= int(gcd)
	r.Den /= int(gcd)
	return
}

func RationalFromString(s string) (*Rational, error) {
	var r Rational
	switch {
	case len(s) == 0:
		return nil, fmt.Errorf("unable to parse Rational from empty string")
	case strings.Contains(s, "/"):
		if _, err := fmt.Sscanf(s, "%d/%d", &r.Num, &r.Den); err != nil {
			return nil, fmt.Errorf("unable to parse Rational from %q: %w", s, err)
		}
	case s[0] == '~':
		fps, err := strconv.ParseFloat(s[1:], 64)
		if err != nil {
			return nil, fmt.Errorf("unable to parse Rational from %q: %w", s, err)
		}
		r = RationalFromApproxFloat64(fps)
	default:
		n, err := strconv.Atoi(s)
		if err != nil {
			return nil, fmt.Errorf("unable to parse Rational from %q: %w", s, err)
		}
		r = Rational{Num: n, Den: 1}
	}
	if r.Den == 0 {
		return nil, fmt.Errorf("denominator cannot be zero")
	}
	return &r, nil
}

func (r Rational) Float64() float64 {
	return float64(r.Num) / float64(r.Den)
}

func (r Rational) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.String())
}

func (r *Rational) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("unable to unmarshal Rational from JSON '%s': %w", b, err)
	}
	v, err := RationalFromString(s)
	if err != nil {
		return fmt.Errorf("unable to unmarshal Rational from string %q: %w", s, err)
	}
	*r = *v
	return nil
}

// UnmarshalText makes Rational usable in YAML configs and flags.
func (r *Rational) UnmarshalText(b []byte) error {
	v, err := RationalFromString(string(b))
	if err != nil {
		return err
	}
	*r = *v
	return nil
}

func (r Rational) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

func (r Rational) String() string {
	return fmt.Sprintf("%d/%d", r.Num, r.Den)
}

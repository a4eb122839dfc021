package timecode

import (
	"fmt"
	"math"
	"strconv"
)

// Rate is a broadcast frame rate: a rounded integer frame base plus a
// drop-frame flag. The exact nominal rate is base/1 for non-drop rates
// and base*1000/1001 for drop rates, so a Rate of {30, drop} denotes
// 29.97 fps. Rate is a comparable value type; two rates parsed from
// different spellings of the same rate compare equal.
type Rate struct {
	base uint32
	drop bool
}

// Parse epsilon for decimal rate text. 23.976 and 23.98 both land on
// the same rate, and 25.00 collapses to 25.
const rateEpsilon = 0.01

// Compact all-digit spellings of the NTSC-family rates. Everything
// else that parses as an integer is taken at face value.
var compactRates = map[string]Rate{
	"2398": {base: 24},
	"4795": {base: 48},
	"4796": {base: 48},
	"2997": {base: 30, drop: true},
	"5994": {base: 60, drop: true},
}

// NTSC rates that are not multiples of 29.97 and therefore cannot be
// drop-frame. They round up to the neighboring integer base.
var ntscNonDrop = []struct {
	value float64
	rate  Rate
}{
	{23.98, Rate{base: 24}},
	{47.95, Rate{base: 48}},
}

// NewRate constructs a Rate from an integer frame base and a drop
// flag. Drop-frame only exists for multiples of 30 (29.97, 59.94, ...),
// so any other base with drop set is rejected.
func NewRate(base int, drop bool) (Rate, error) {
	if base <= 0 {
		return Rate{}, fmt.Errorf("%w: frame base %d", ErrInvalidRate, base)
	}
	if drop && base%30 != 0 {
		return Rate{}, fmt.Errorf("%w: drop-frame base %d is not a multiple of 30", ErrInvalidRate, base)
	}
	return Rate{base: uint32(base), drop: drop}, nil
}

// ParseRate parses framerate text into a canonical Rate.
//
// Accepted spellings:
//   - bare integers: "24", "25", "50"
//   - decimal text: "29.97", "59.94", "23.98", "23.976", "25.00"
//   - compact NTSC shorthand: "2997", "2398", "5994"
//
// Decimal text within 0.01 of a whole number collapses to the integer
// non-drop rate. Multiples of 29.97 become drop-frame; the remaining
// NTSC rates (23.98 family, 47.95 family) are non-drop because only
// multiples of 30 can drop frames.
func ParseRate(s string) (Rate, error) {
	if n, err := strconv.ParseUint(s, 10, 32); err == nil {
		if r, ok := compactRates[s]; ok {
			return r, nil
		}
		if n == 0 {
			return Rate{}, fmt.Errorf("%w: %q", ErrInvalidRate, s)
		}
		return Rate{base: uint32(n)}, nil
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f <= 0 {
		return Rate{}, fmt.Errorf("%w: %q", ErrInvalidRate, s)
	}

	if r := math.Round(f); math.Abs(f-r) < rateEpsilon {
		if r > math.MaxUint32 {
			return Rate{}, fmt.Errorf("%w: %q", ErrInvalidRate, s)
		}
		return Rate{base: uint32(r)}, nil
	}

	for _, sp := range ntscNonDrop {
		if math.Abs(f-sp.value) < rateEpsilon {
			return sp.rate, nil
		}
	}

	// Multiples of 29.97 are drop-frame: 29.97, 59.94, 239.76, ...
	k := f / 29.97
	if math.Abs(k-math.Round(k)) < rateEpsilon && k >= 1 {
		if math.Round(k) > math.MaxUint32/30 {
			return Rate{}, fmt.Errorf("%w: %q", ErrInvalidRate, s)
		}
		return Rate{base: uint32(math.Round(k)) * 30, drop: true}, nil
	}

	return Rate{}, fmt.Errorf("%w: %q", ErrInvalidRate, s)
}

// MustRate is ParseRate that panics on error, for constants and tests.
func MustRate(s string) Rate {
	r, err := ParseRate(s)
	if err != nil {
		panic(err)
	}
	return r
}

// String returns the canonical spelling: the two-decimal NTSC form for
// drop rates ("29.97", "59.94") and the bare integer for the rest.
// The round trip through ParseRate preserves the value, not the
// original spelling.
func (r Rate) String() string {
	if r.drop {
		return strconv.FormatFloat(float64(r.base)*1000/1001, 'f', 2, 64)
	}
	return strconv.FormatUint(uint64(r.base), 10)
}

// IsDrop reports whether the rate drops frame numbers.
func (r Rate) IsDrop() bool {
	return r.drop
}

// FrameBase returns the rounded frames-per-second value. Frame fields
// in a timecode at this rate range over [0, FrameBase).
func (r Rate) FrameBase() int {
	return int(r.base)
}

// Fraction returns the exact nominal rate as a rational number of
// frames per second.
func (r Rate) Fraction() (num, den uint64) {
	if r.drop {
		return uint64(r.base) * 1000, 1001
	}
	return uint64(r.base), 1
}

// FPS returns the nominal rate as a float, for display only. All
// conversion arithmetic uses Fraction.
func (r Rate) FPS() float64 {
	num, den := r.Fraction()
	return float64(num) / float64(den)
}

// Separator returns the character written before the frame field:
// ';' for drop-frame rates, ':' otherwise.
func (r Rate) Separator() byte {
	if r.drop {
		return ';'
	}
	return ':'
}

// DropPerMinute is the number of frame numbers skipped at the start of
// each non-tenth minute: 2 at 29.97, 4 at 59.94, scaling with the base.
// Zero for non-drop rates.
func (r Rate) DropPerMinute() uint64 {
	if !r.drop {
		return 0
	}
	return uint64(r.base) / 15
}

// MarshalText implements encoding.TextMarshaler using the canonical
// spelling, so a Rate embeds in JSON as its text form.
func (r Rate) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler via ParseRate.
func (r *Rate) UnmarshalText(p []byte) error {
	parsed, err := ParseRate(string(p))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

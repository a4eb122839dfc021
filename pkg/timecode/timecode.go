package timecode

import (
	"fmt"
	"strconv"
	"strings"
)

// Timecode is an absolute frame count bound to a Rate, viewable as the
// broadcast HH:MM:SS:FF fields. The zero value is 00:00:00:00 at the
// zero Rate and is not useful; construct timecodes with Parse, New or
// FromFrames. Timecode is comparable: two timecodes are equal when
// they hold the same count at the same rate.
type Timecode struct {
	frames uint64
	rate   Rate
}

// Warning is a non-fatal observation made while parsing.
type Warning string

// WarnSeparatorMismatch is reported when the separator before the
// frame field does not match the drop flag of the supplied rate. The
// rate is authoritative; the separator is only a hint.
const WarnSeparatorMismatch Warning = "separator mismatch"

// New builds a Timecode from timecode text and framerate text. The
// timecode argument may also be a bare frame count, which is decoded
// at the given rate.
func New(text, rate string) (Timecode, error) {
	r, err := ParseRate(rate)
	if err != nil {
		return Timecode{}, err
	}
	tc, err := Parse(text, r)
	if err == nil {
		return tc, nil
	}
	if n, numErr := strconv.ParseUint(text, 10, 64); numErr == nil {
		return FromFrames(n, r), nil
	}
	return Timecode{}, err
}

// FromFrames builds a Timecode from an absolute frame count.
func FromFrames(n uint64, r Rate) Timecode {
	return Timecode{frames: n, rate: r}
}

// Parse parses HH:MM:SS:FF or HH:MM:SS;FF text at the given rate,
// dropping any warnings.
func Parse(s string, r Rate) (Timecode, error) {
	tc, _, err := ParseWithWarnings(s, r)
	return tc, err
}

// ParseWithWarnings parses timecode text at the given rate.
//
// The grammar takes four numeric fields: hours and frames of two or
// three digits, minutes and seconds of exactly two. The separator
// before the frame field may be ':' or ';'; it does not override the
// supplied rate, but a mismatch is reported as a warning. Minutes and
// seconds must be below 60, frames below the rate's frame base, and at
// drop-frame rates the skipped frame numbers are rejected at second 0
// of non-tenth minutes.
func ParseWithWarnings(s string, r Rate) (Timecode, []Warning, error) {
	sepIdx := strings.LastIndexAny(s, ":;")
	if sepIdx < 0 {
		return Timecode{}, nil, fmt.Errorf("%w: %q", ErrMalformedTimecode, s)
	}
	sep := s[sepIdx]

	head := strings.Split(s[:sepIdx], ":")
	if len(head) != 3 {
		return Timecode{}, nil, fmt.Errorf("%w: %q has %d fields, want 4", ErrMalformedTimecode, s, len(head)+1)
	}

	h, err := parseField(head[0], 3)
	if err != nil {
		return Timecode{}, nil, fmt.Errorf("%w: %q: hours: %v", ErrMalformedTimecode, s, err)
	}
	m, err := parseField(head[1], 2)
	if err != nil {
		return Timecode{}, nil, fmt.Errorf("%w: %q: minutes: %v", ErrMalformedTimecode, s, err)
	}
	sec, err := parseField(head[2], 2)
	if err != nil {
		return Timecode{}, nil, fmt.Errorf("%w: %q: seconds: %v", ErrMalformedTimecode, s, err)
	}
	f, err := parseField(s[sepIdx+1:], 3)
	if err != nil {
		return Timecode{}, nil, fmt.Errorf("%w: %q: frames: %v", ErrMalformedTimecode, s, err)
	}

	if m >= 60 {
		return Timecode{}, nil, fmt.Errorf("%w: %q: minutes %d out of range", ErrMalformedTimecode, s, m)
	}
	if sec >= 60 {
		return Timecode{}, nil, fmt.Errorf("%w: %q: seconds %d out of range", ErrMalformedTimecode, s, sec)
	}
	if f >= r.FrameBase() {
		return Timecode{}, nil, fmt.Errorf("%w: %q: frame %d out of range for %s fps", ErrMalformedTimecode, s, f, r)
	}
	if d := int(r.DropPerMinute()); d > 0 && m%10 != 0 && sec == 0 && f < d {
		return Timecode{}, nil, fmt.Errorf("%w: %q: frame %d is dropped at %s fps", ErrMalformedTimecode, s, f, r)
	}

	var warnings []Warning
	if sep != r.Separator() {
		warnings = append(warnings, WarnSeparatorMismatch)
	}

	return Timecode{frames: compose(h, m, sec, f, r), rate: r}, warnings, nil
}

// parseField parses a zero-padded numeric field of 2 to maxDigits
// digits.
func parseField(s string, maxDigits int) (int, error) {
	if len(s) < 2 || len(s) > maxDigits {
		return 0, fmt.Errorf("field %q has %d digits", s, len(s))
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0, fmt.Errorf("field %q is not numeric", s)
		}
	}
	return strconv.Atoi(s)
}

// String formats the timecode with zero-padded two-digit fields and
// the separator implied by the rate's drop flag. Hours display modulo
// 24.
func (t Timecode) String() string {
	h, m, s, f := decompose(t.frames, t.rate)
	return fmt.Sprintf("%02d:%02d:%02d%c%02d", h, m, s, t.rate.Separator(), f)
}

// Components returns the display fields. Hours wrap at 24; the
// underlying frame count is unaffected by the wrap.
func (t Timecode) Components() (hours, minutes, seconds, frames int) {
	return decompose(t.frames, t.rate)
}

// Hours returns the display hour field (0-23).
func (t Timecode) Hours() int {
	h, _, _, _ := decompose(t.frames, t.rate)
	return h
}

// Minutes returns the minute field (0-59).
func (t Timecode) Minutes() int {
	_, m, _, _ := decompose(t.frames, t.rate)
	return m
}

// Seconds returns the second field (0-59).
func (t Timecode) Seconds() int {
	_, _, s, _ := decompose(t.frames, t.rate)
	return s
}

// Frames returns the frame field (0 to FrameBase-1).
func (t Timecode) Frames() int {
	_, _, _, f := decompose(t.frames, t.rate)
	return f
}

// FrameCount returns the absolute frame count since 00:00:00:00.
func (t Timecode) FrameCount() uint64 {
	return t.frames
}

// Rate returns the timecode's frame rate.
func (t Timecode) Rate() Rate {
	return t.rate
}

// AddFrames returns the timecode advanced by n frames. The count is
// unbounded upward; past 24 hours only the displayed hour wraps.
func (t Timecode) AddFrames(n uint64) Timecode {
	return Timecode{frames: t.frames + n, rate: t.rate}
}

// SubFrames returns the timecode moved back by n frames, or
// ErrFrameUnderflow if that would cross 00:00:00:00.
func (t Timecode) SubFrames(n uint64) (Timecode, error) {
	if n > t.frames {
		return Timecode{}, fmt.Errorf("%w: %d frames from %s (%d)", ErrFrameUnderflow, n, t, t.frames)
	}
	return Timecode{frames: t.frames - n, rate: t.rate}, nil
}

// Add sums two timecodes of the same rate. Operands at different
// rates are rejected with ErrRateMismatch; convert one side explicitly
// instead.
func (t Timecode) Add(o Timecode) (Timecode, error) {
	if t.rate != o.rate {
		return Timecode{}, fmt.Errorf("%w: %s vs %s", ErrRateMismatch, t.rate, o.rate)
	}
	return Timecode{frames: t.frames + o.frames, rate: t.rate}, nil
}

// ConvertTo re-bases the timecode at another rate, preserving the
// wall-clock duration since zero. The target count is the exact
// rational product floored, so results never overshoot the source
// duration and repeated conversion can lose up to one frame.
func (t Timecode) ConvertTo(r Rate) Timecode {
	return Timecode{frames: rescale(t.frames, t.rate, r), rate: r}
}

// ConvertWithStart re-bases only the offset from start, then anchors
// it at start converted to the new rate. Editorial durations measured
// from a program start stay frame-accurate this way, instead of
// absorbing the rounding of the whole time-of-day address. Start must
// run at the timecode's own rate and must not lie after it.
func (t Timecode) ConvertWithStart(r Rate, start Timecode) (Timecode, error) {
	if start.rate != t.rate {
		return Timecode{}, fmt.Errorf("%w: start %s vs %s", ErrRateMismatch, start.rate, t.rate)
	}
	if start.frames > t.frames {
		return Timecode{}, fmt.Errorf("%w: start %s is after %s", ErrFrameUnderflow, start, t)
	}
	anchor := rescale(start.frames, start.rate, r)
	offset := rescale(t.frames-start.frames, t.rate, r)
	return Timecode{frames: anchor + offset, rate: r}, nil
}

// rescale converts a frame count between rates through the exact
// rational wall-clock duration, flooring the result. uint64 holds the
// intermediate product with room to spare for multi-day counts.
func rescale(frames uint64, from, to Rate) uint64 {
	srcNum, srcDen := from.Fraction()
	dstNum, dstDen := to.Fraction()
	return frames * dstNum * srcDen / (srcNum * dstDen)
}

// MarshalText implements encoding.TextMarshaler. The rate is not part
// of the text form; unmarshalling requires the rate out of band, so
// Timecode deliberately has no UnmarshalText.
func (t Timecode) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

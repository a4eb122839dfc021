package timecode

import "errors"

// Sentinel errors returned by this package. Callers match them with
// errors.Is; the wrapped message carries the offending input.
var (
	// ErrInvalidRate is returned when framerate text does not denote a
	// supported broadcast rate.
	ErrInvalidRate = errors.New("invalid framerate")

	// ErrMalformedTimecode is returned when timecode text does not
	// parse, or when a field is out of range for the target rate.
	ErrMalformedTimecode = errors.New("malformed timecode")

	// ErrFrameUnderflow is returned when a subtraction would produce a
	// negative frame count.
	ErrFrameUnderflow = errors.New("frame underflow")

	// ErrRateMismatch is returned when two timecodes with different
	// rates are combined without an explicit conversion.
	ErrRateMismatch = errors.New("framerate mismatch")
)

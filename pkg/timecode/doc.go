// Package timecode implements SMPTE timecode parsing, formatting and
// frame-accurate arithmetic. The two primary types in this package are:
//
//	type Rate
//
//	and
//
//	type Timecode
//
// A Rate is a broadcast frame rate (an integer frame base plus a
// drop-frame flag), and a Timecode is an absolute frame count bound to
// a Rate, viewable as the familiar HH:MM:SS:FF fields.
//
// Both types are immutable values. Every operation returns a new value,
// so they are safe to share between goroutines without locking.
//
// Drop-frame rates follow the NTSC convention: at 29.97 fps, frame
// numbers 0 and 1 are skipped at the start of every minute that is not
// a multiple of ten, so that the timecode readout tracks wall-clock
// time despite the 1000/1001 rate. Higher drop rates scale the skip
// proportionally (four frames at 59.94, and so on).
package timecode

package timecode

// Drop-frame compensation between field-wise H:M:S:F and the absolute
// frame count. The skipped frame numbers (0 and 1 at 29.97, scaled for
// higher bases) exist only in the textual representation; the absolute
// count is contiguous.

// compose converts field values into an absolute frame count. Fields
// must already be validated against the rate.
func compose(h, m, s, f int, r Rate) uint64 {
	base := uint64(r.base)
	totalMinutes := uint64(h)*60 + uint64(m)
	raw := (totalMinutes*60+uint64(s))*base + uint64(f)
	if d := r.DropPerMinute(); d > 0 {
		raw -= d * (totalMinutes - totalMinutes/10)
	}
	return raw
}

// decompose converts an absolute frame count into display fields. The
// hour field wraps at 24; counts beyond a day stay exact in the count
// itself and only the display wraps.
func decompose(frames uint64, r Rate) (h, m, s, f int) {
	base := uint64(r.base)
	if d := r.DropPerMinute(); d > 0 {
		// Re-insert the skipped frame numbers. A full ten-minute block
		// holds 600*base - 9*d real frames (the tenth minute does not
		// drop); each further complete minute inside the block drops d
		// more. The first d frames of a block belong to the exempt
		// minute, hence the rem > d guard.
		perMinute := 60*base - d
		perBlock := 600*base - 9*d
		blocks := frames / perBlock
		rem := frames % perBlock
		var minutes uint64
		if rem > d {
			minutes = (rem - d) / perMinute
		}
		frames += 9 * d * blocks
		frames += d * minutes
	}
	f = int(frames % base)
	seconds := frames / base
	s = int(seconds % 60)
	m = int(seconds / 60 % 60)
	h = int(seconds / 3600 % 24)
	return h, m, s, f
}

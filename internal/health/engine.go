package health

import (
	"context"
	"fmt"

	"github.com/zsiec/telecine/pkg/timecode"
)

// EngineChecker verifies the timecode engine by running a known
// drop-frame round trip. A failure here indicates a broken build
// rather than a transient condition.
type EngineChecker struct{}

// NewEngineChecker creates a new engine self-check.
func NewEngineChecker() *EngineChecker {
	return &EngineChecker{}
}

// Name returns the checker name.
func (c *EngineChecker) Name() string {
	return "engine"
}

// Check runs the self-check.
func (c *EngineChecker) Check(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	// One hour of drop-frame video drops 108 frame numbers.
	tc, err := timecode.New("01:00:00;00", "29.97")
	if err != nil {
		return fmt.Errorf("engine self-check parse: %w", err)
	}
	if got := tc.FrameCount(); got != 107892 {
		return fmt.Errorf("engine self-check: frame count %d, want 107892", got)
	}

	// Minute 60 is a tenth minute with all 1800 frames; the next
	// boundary must skip frame numbers 0 and 1.
	next := tc.AddFrames(1800)
	if got := next.String(); got != "01:01:00;02" {
		return fmt.Errorf("engine self-check: boundary %s, want 01:01:00;02", got)
	}

	return nil
}

package health

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubChecker reports a fixed result after an optional delay.
type stubChecker struct {
	name  string
	err   error
	delay time.Duration
}

func (s *stubChecker) Name() string { return s.name }

func (s *stubChecker) Check(ctx context.Context) error {
	if s.delay > 0 {
		select {
		case <-time.After(s.delay):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return s.err
}

func newTestManager() *Manager {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return NewManager(logger)
}

func TestManagerRunChecks(t *testing.T) {
	manager := newTestManager()
	manager.Register(NewEngineChecker())
	manager.Register(&stubChecker{name: "config", err: nil})
	manager.Register(&stubChecker{name: "clock", err: errors.New("clock drift out of range")})

	results := manager.RunChecks(context.Background())
	require.Len(t, results, 3)

	engine := results["engine"]
	require.NotNil(t, engine)
	assert.Equal(t, StatusOK, engine.Status)
	assert.Empty(t, engine.Message)

	clock := results["clock"]
	require.NotNil(t, clock)
	assert.Equal(t, StatusDown, clock.Status)
	assert.Contains(t, clock.Message, "clock drift")
	assert.GreaterOrEqual(t, clock.DurationMS, float64(0))
}

func TestManagerOverallStatus(t *testing.T) {
	tests := []struct {
		name     string
		checkers []Checker
		want     Status
	}{
		{
			name: "all passing",
			checkers: []Checker{
				NewEngineChecker(),
				&stubChecker{name: "config", err: nil},
			},
			want: StatusOK,
		},
		{
			name: "one failing",
			checkers: []Checker{
				NewEngineChecker(),
				&stubChecker{name: "config", err: errors.New("missing rate table")},
			},
			want: StatusDown,
		},
		{
			// No results yet means not ready, not healthy.
			name:     "nothing registered",
			checkers: nil,
			want:     StatusDown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			manager := newTestManager()
			for _, c := range tt.checkers {
				manager.Register(c)
			}
			if len(tt.checkers) > 0 {
				manager.RunChecks(context.Background())
			}
			assert.Equal(t, tt.want, manager.GetOverallStatus())
		})
	}
}

func TestManagerCheckTimeout(t *testing.T) {
	manager := newTestManager()
	manager.Register(&stubChecker{name: "stuck", delay: 10 * time.Second})

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	start := time.Now()
	results := manager.RunChecks(ctx)
	assert.Less(t, time.Since(start), 6*time.Second)

	check := results["stuck"]
	require.NotNil(t, check)
	assert.Equal(t, StatusDown, check.Status)
	assert.Contains(t, check.Message, "timed out")
}

func TestManagerResultsAreCopies(t *testing.T) {
	manager := newTestManager()
	manager.Register(NewEngineChecker())
	manager.RunChecks(context.Background())

	results := manager.GetResults()
	require.Contains(t, results, "engine")
	results["engine"].Status = StatusDown

	assert.Equal(t, StatusOK, manager.GetResults()["engine"].Status)
	assert.Equal(t, StatusOK, manager.GetOverallStatus())
}

func TestStartPeriodicChecks(t *testing.T) {
	manager := newTestManager()
	manager.Register(NewEngineChecker())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		manager.StartPeriodicChecks(ctx, 20*time.Millisecond)
		close(done)
	}()

	// The first run is immediate, so a result shows up well before
	// the first tick.
	require.Eventually(t, func() bool {
		return manager.GetOverallStatus() == StatusOK
	}, 2*time.Second, 5*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("periodic checks did not stop on cancel")
	}
}

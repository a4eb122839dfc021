package health

import (
	"context"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEngineChecker(t *testing.T) {
	checker := NewEngineChecker()

	assert.Equal(t, "engine", checker.Name())

	t.Run("passes round trip", func(t *testing.T) {
		err := checker.Check(context.Background())
		assert.NoError(t, err)
	})

	t.Run("respects cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		err := checker.Check(ctx)
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestEngineCheckerWithManager(t *testing.T) {
	logger := logrus.New()
	manager := NewManager(logger)
	manager.Register(NewEngineChecker())

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	results := manager.RunChecks(ctx)
	require.Contains(t, results, "engine")
	assert.Equal(t, StatusOK, results["engine"].Status)
	assert.Equal(t, StatusOK, manager.GetOverallStatus())
}

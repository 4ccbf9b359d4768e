package reconcile

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestConfig_SeedSettings(t *testing.T) {
	t.Run("Values", func(t *testing.T) {
		cfg := Config{TickMillis: 250, DefaultLimit: 500, BatchEnabled: false, BatchSize: 5, CleanupIntervalSeconds: 1.5}
		s := cfg.SeedSettings()

		assert.Equal(t, 250*time.Millisecond, cfg.TickInterval())
		assert.Equal(t, 500, s.DefaultLimit)
		assert.False(t, s.BatchEnabled)
		assert.Equal(t, 5, s.BatchSize)
		assert.Equal(t, 1500*time.Millisecond, s.CleanupInterval)
		assert.NoError(t, s.Validate())
	})

	t.Run("Zero values fall back to defaults", func(t *testing.T) {
		cfg := Config{}
		s := cfg.SeedSettings()

		assert.Equal(t, DefaultTickInterval, cfg.TickInterval())
		assert.Equal(t, DefaultLimit, s.DefaultLimit)
		assert.Equal(t, DefaultBatchSize, s.BatchSize)
		assert.Equal(t, time.Duration(0), s.CleanupInterval)
	})
}

package reconcile

import "time"

// Config holds process-level settings for the reconcile loop.
// The seed values are only used when the settings store is empty.
type Config struct {
	// TickMillis is the scheduler period in milliseconds.
	TickMillis int `mapstructure:"tick_millis" default:"100"`
	// DefaultLimit seeds the global default stack limit.
	DefaultLimit int `mapstructure:"default_limit" default:"1000"`
	// BatchEnabled seeds the batch-scanning flag.
	BatchEnabled bool `mapstructure:"batch_enabled" default:"true"`
	// BatchSize seeds the number of generators applied per tick.
	BatchSize int `mapstructure:"batch_size" default:"20"`
	// CleanupIntervalSeconds seeds the sweep interval. 0 disables sweeping.
	CleanupIntervalSeconds float64 `mapstructure:"cleanup_interval_seconds" default:"60"`
}

// TickInterval returns the scheduler period.
func (c Config) TickInterval() time.Duration {
	if c.TickMillis <= 0 {
		return DefaultTickInterval
	}
	return time.Duration(c.TickMillis) * time.Millisecond
}

// SeedSettings returns the settings used to initialize an empty store.
func (c Config) SeedSettings() Settings {
	s := DefaultSettings()
	if c.DefaultLimit > 0 {
		s.DefaultLimit = c.DefaultLimit
	}
	s.BatchEnabled = c.BatchEnabled
	if c.BatchSize > 0 {
		s.BatchSize = c.BatchSize
	}
	if c.CleanupIntervalSeconds >= 0 {
		s.CleanupInterval = SecondsToDuration(c.CleanupIntervalSeconds)
	}
	return s
}

// SecondsToDuration converts a fractional number of seconds to a Duration.
func SecondsToDuration(seconds float64) time.Duration {
	return time.Duration(seconds * float64(time.Second))
}

package update

import "github.com/pebbleos/bootcore/corelog"

// Config holds the engine configuration.
type Config struct {
	// ProgressCallback is called as the update advances (optional).
	ProgressCallback ProgressCallback

	// Logger is used for logging operations (optional).
	Logger corelog.Logger

	// NewWorldBase is FIRMWARE_BASE for boards on the current internal
	// flash layout.
	NewWorldBase uint32

	// OldWorldBase is FIRMWARE_BASE_OLD_WORLD for boards that still
	// recognize the legacy layout (spec §4.7's old-world/new-world
	// edge case). Zero if the board never shipped the legacy layout.
	OldWorldBase uint32
}

// Option is a functional option for configuring an Engine.
type Option func(*Config)

func defaultConfig() Config {
	return Config{}
}

// WithProgressCallback sets a callback invoked as the update advances.
func WithProgressCallback(cb ProgressCallback) Option {
	return func(c *Config) { c.ProgressCallback = cb }
}

// WithLogger sets the logger used during the update.
func WithLogger(l corelog.Logger) Option {
	return func(c *Config) { c.Logger = l }
}

// WithLayoutBases sets the internal-flash base addresses for the
// new-world and old-world layouts. Pass the same value twice on boards
// that never shipped the old layout.
func WithLayoutBases(newWorld, oldWorld uint32) Option {
	return func(c *Config) {
		c.NewWorldBase = newWorld
		c.OldWorldBase = oldWorld
	}
}

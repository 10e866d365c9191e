package bootpolicy

import (
	"time"

	"github.com/pebbleos/bootcore/corelog"
	"github.com/pebbleos/bootcore/hal"
)

// Config holds board-specific parameters and addresses the policy needs.
type Config struct {
	// FirmwareBase is the internal-flash address of the currently
	// active normal-firmware slot.
	FirmwareBase uint32
	// UpdateSlotAddr is the external-flash descriptor address of a
	// staged normal-firmware update.
	UpdateSlotAddr uint32
	// RecoverySlotAddr is the external-flash descriptor address of the
	// recovery (PRF) image.
	RecoverySlotAddr uint32
	// ForceRecoveryHold is how long UP+BACK must be held to force
	// recovery. Defaults to 5 seconds.
	ForceRecoveryHold time.Duration
	// ForceRecoveryPoll is the polling interval used while checking the
	// hold. Defaults to 50ms.
	ForceRecoveryPoll time.Duration
}

func (c Config) withDefaults() Config {
	if c.ForceRecoveryHold <= 0 {
		c.ForceRecoveryHold = 5 * time.Second
	}
	if c.ForceRecoveryPoll <= 0 {
		c.ForceRecoveryPoll = 50 * time.Millisecond
	}
	return c
}

// Option configures a Policy beyond its required constructor arguments.
type Option func(*Policy)

// WithLogger sets the logger used during boot policy evaluation.
func WithLogger(l corelog.Logger) Option {
	return func(p *Policy) { p.logger = l }
}

// WithStuckButtonCheck overrides the default stuck-button self-test. The
// default reports stuck when every button simultaneously reads pressed.
func WithStuckButtonCheck(check func(hal.Buttons) bool) Option {
	return func(p *Policy) { p.stuckButtonCheck = check }
}

// WithResumingFromStandby overrides the default "resuming from standby?"
// check, which otherwise always reports false (no standby support).
func WithResumingFromStandby(check func() bool) Option {
	return func(p *Policy) { p.resumingFromStandby = check }
}

func defaultStuckButtonCheck(b hal.Buttons) bool {
	for _, btn := range []hal.Button{hal.ButtonBack, hal.ButtonUp, hal.ButtonSelect, hal.ButtonDown} {
		if !b.IsPressed(btn) {
			return false
		}
	}
	return true
}

func defaultResumingFromStandby() bool {
	return false
}

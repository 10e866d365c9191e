package strike

import "github.com/pebbleos/bootcore/bootbits"

// Counter is a two-boot-bit saturating counter: {} -> 1 -> {one} ->
// {one, two}. The third observation is "strike three": the caller
// consumes it, both bits are cleared, and fallback action is expected.
type Counter struct {
	bb  *bootbits.Store
	one bootbits.Bit
	two bootbits.Bit
}

// NewFWStart returns the strike counter for normal-firmware start
// failures.
func NewFWStart(bb *bootbits.Store) *Counter {
	return &Counter{bb: bb, one: bootbits.FWStartFailStrikeOne, two: bootbits.FWStartFailStrikeTwo}
}

// NewRecoveryLoad returns the strike counter for recovery-firmware load
// failures.
func NewRecoveryLoad(bb *bootbits.Store) *Counter {
	return &Counter{bb: bb, one: bootbits.RecoveryLoadFailStrikeOne, two: bootbits.RecoveryLoadFailStrikeTwo}
}

// ObserveFailure records one failure. It returns fatal=true on the third
// observation (strike three), having already cleared both bits; the
// caller is expected to take fallback action (switch to recovery, or
// brick-screen if recovery itself just struck out). At most one of the
// two underlying bits changes per call, per spec §8's atomic-strike-advance
// invariant.
func (c *Counter) ObserveFailure() (fatal bool) {
	one := c.bb.Test(c.one)
	two := c.bb.Test(c.two)

	switch {
	case !one && !two:
		c.bb.Set(c.one)
		return false
	case one && !two:
		c.bb.Set(c.two)
		return false
	default:
		c.Clear()
		return true
	}
}

// Clear resets both strike bits, e.g. when the corresponding firmware is
// declared stable.
func (c *Counter) Clear() {
	c.bb.Clear(c.one)
	c.bb.Clear(c.two)
}

// ForceSaturated sets both strike bits directly, without going through
// ObserveFailure, so that the very next ObserveFailure call reports
// fatal=true. Used when an event off the normal failure path (an
// internal-flash mangling during update, say) must still force the next
// boot straight to the fallback action.
func (c *Counter) ForceSaturated() {
	c.bb.Set(c.one)
	c.bb.Set(c.two)
}

// Count returns the number of strikes currently recorded (0, 1, or 2;
// never observed at 3 because ObserveFailure clears on the third call).
func (c *Counter) Count() int {
	n := 0
	if c.bb.Test(c.one) {
		n++
	}
	if c.bb.Test(c.two) {
		n++
	}
	return n
}

// Package resetloop implements the reset-loop detector (RL): a 3-bit
// Gray-coded counter packed into three boot bits, counting 0..7 and
// tripping when it would wrap past 7 (spec §3.5, §4.5).
//
// # Why Gray-coded
//
// Incrementing a Gray-coded counter toggles exactly one bit, which
// minimises the window of corruption if a reset lands mid-write to the
// retained register. This package uses the standard binary-reflected Gray
// code (g = n ^ (n>>1)); see DESIGN.md for why this standard sequence was
// chosen — any 3-bit Gray code with the one-bit-per-step property is
// spec-compliant (spec §3.5).
//
// # Usage
//
//	rl := resetloop.New(bb) // bb is a *bootbits.Store
//	tripped, err := rl.ObserveAndIncrement()
//	if err != nil {
//	    // corrupted counter state; brick-screen
//	}
//	if tripped {
//	    // counter reached 7; it has been cleared. SAD(RESET_LOOP).
//	}
//
// A normal-running firmware is expected to clear the counter when it
// reaches steady state by setting bootbits.FWStable; bootpolicy does this
// clearing on its behalf at the top of the next boot.
package resetloop

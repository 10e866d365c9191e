// Package strike implements the three-strikes fault counters (SC): two
// independent two-boot-bit saturating counters, one for normal-firmware
// start failures and one for recovery-firmware load failures (spec §3.6,
// §4.6).
//
// # Usage
//
//	fwStrikes := strike.NewFWStart(bb)
//	if fwStrikes.ObserveFailure() {
//	    // third strike: ObserveFailure has already cleared both bits;
//	    // the caller must fall back (switch to recovery)
//	}
//	fwStrikes.Clear() // called when FWStable is observed
package strike

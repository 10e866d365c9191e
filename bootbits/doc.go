// Package bootbits implements the boot-bits facade (BB): a closed set of
// named flags packed into the BOOTBIT retained-register word (spec §3.2,
// §4.2).
//
// # Usage
//
//	bb := bootbits.New(store) // store is a hal.RetainedStore
//	bb.Init()                 // sets Initialized with the rest zero on first boot
//	bb.Set(bootbits.NewFWAvailable)
//	if bb.Test(bootbits.NewFWAvailable) {
//	    ...
//	}
//	bb.Clear(bootbits.NewFWAvailable)
//
// Bits are grouped by purpose (identity, update intent, fault history,
// operator intent, reset-loop counter) purely for documentation; all of
// them live in the same word and are independent single-bit flags except
// the three RESET_LOOP_DETECT bits, which package resetloop interprets as
// a 3-bit Gray-coded counter.
package bootbits

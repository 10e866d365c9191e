// Package bootpolicy implements the boot policy (BP): the top-level
// state machine that runs at every power-on, deciding whether to resume
// from standby, recover from a failed boot, stage a pending update, or
// jump straight to the installed firmware (spec §4.8).
//
// Run is the single entry point; everything else is private orchestration
// over the retained-register, boot-bits, reset-loop, strike-counter, and
// update-engine packages, matching the shape of bootloader.Programmer's
// top-level Program orchestration in the teacher package.
package bootpolicy

// Package handoff implements the handoff (HO) step: the final transition
// from bootloader to firmware (spec §4.9).
//
// A real MCU performs this by reading the vector table, disabling every
// interrupt source, resetting the peripherals the bootloader touched,
// restoring MSP and the interrupt masks, and branching to the reset
// handler with LR poisoned. None of that has a literal Go equivalent —
// there is no vector table or MSP in a hosted Go process — so this
// package simulates the contract against the hal.Board interfaces: it
// runs every step the spec describes as an operation against the
// simulated peripherals, and returns the firmware's reset-handler address
// in place of actually branching to it.
package handoff

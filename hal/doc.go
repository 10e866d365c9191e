// Package hal declares the narrow hardware interfaces the bootloader core
// consumes. Every interface here is a contract, not an implementation: the
// production binary for a given board wires in its own drivers, and the
// sim package wires in in-memory fakes for tests and the operator CLI.
//
// # Overview
//
// The bootloader never talks to silicon directly. It talks to:
//
//	RetainedStore  - word-addressed memory that survives reset
//	ExternalFlash  - staging NOR holding update/recovery images
//	InternalFlash  - the MCU's own code flash
//	Display        - splash/progress/error-code rendering
//	Buttons        - physical button sampling
//	Watchdog       - independent reset timer
//	PMIC           - power management IC control
//	DebugSerial    - UART debug log sink
//	Delay          - busy-wait timing
//	Resetter       - system reset triggers
//
// A Board aggregates exactly one implementation of each, and is the single
// value threaded through bootpolicy.Run.
//
// # Failure policy
//
// Per the platform contract, every HAL call here is infallible except
// InternalFlash.Erase/Write (which report over-range writes) and
// ExternalFlash.SanityCheck / Buttons self-test style checks (which
// report hardware degradation so bootpolicy can brick-screen instead of
// silently corrupting flash).
package hal

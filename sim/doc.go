// Package sim implements in-memory stand-ins for every hal interface, so
// the boot policy and update engine can run against a simulated board
// instead of real silicon. It is grounded on the teacher package's
// examples/mock_device/main.go, which simulates a Cypress bootloader
// device behind the same io.ReadWriter interface the real programmer
// uses; this package generalizes that approach to the full hal.Board
// surface (retained registers, two flash parts, display, buttons,
// watchdog, PMIC, debug serial, delay, reset).
package sim

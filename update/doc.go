// Package update implements the update engine (UE): stages a firmware
// image from external flash into the internal firmware slot, reporting
// progress and reconciling CRC at every step (spec §4.7).
//
// The engine never leaves internal flash partially written without a
// clear signal: any failure before the erase begins is reported as
// UntouchedFailure, and any failure afterward is reported as
// ManglingFailure so the caller knows whether the existing image is
// still trustworthy.
package update

// Package firmware implements the image descriptor (ID): the 12-byte
// little-endian header that precedes every staged firmware image in
// external flash, plus the fixed-width metadata trailer carried at the
// tail of the image body (spec §3.3, §4.4).
//
// Descriptor validity is intentionally shallow — description_length == 12
// is a sentinel proving the descriptor was fully written, nothing more.
// The deep check is a CRC-32 over the image body, done by package
// integrity and orchestrated by package update.
package firmware

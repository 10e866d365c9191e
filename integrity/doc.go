// Package integrity implements the integrity engine (IE): CRC-32 over a RAM
// buffer or a flash address range, and an 8-bit checksum variant.
//
// # Overview
//
// Three entry points, matching spec §4.3:
//
//	CRC32(data []byte) uint32                     // RAM buffer
//	CRC32Flash(r FlashReader, addr, length uint32) (uint32, error) // flash range
//	CRC8(data []byte) uint8                        // 8-bit variant
//
// CRC32 uses the standard IEEE 802.3 polynomial so descriptors signed by
// the build tooling verify against this engine. CRC8 intentionally does
// NOT use the common SMBus/ATM polynomial (0x07) — see the package-level
// Crc8Params doc comment for the polynomial this engine uses and why.
//
// The engine is built on github.com/snksoft/crc's parameterized CRC
// computation rather than a hand-rolled table, so both variants share one
// audited implementation and only their Parameters differ.
package integrity

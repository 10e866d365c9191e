package integrity

import (
	"fmt"

	"github.com/snksoft/crc"
)

// Crc8Params defines the 8-bit checksum variant computed by CRC8; no other
// package in this module calls CRC8. It deliberately differs from the common CRC-8/SMBUS
// polynomial (0x07): the firmware this core descends from used its own
// polynomial for this check, and preserving the exact bit pattern matters
// for binary compatibility with devices already in the field (spec §4.3,
// §9). Width/Init/RefIn/RefOut/FinalXor were chosen to match that source
// and must not be "fixed" to a standard CRC-8 table.
var Crc8Params = &crc.Parameters{
	Width:      8,
	Polynomial: 0x9B,
	Init:       0xFF,
	ReflectIn:  true,
	ReflectOut: true,
	FinalXor:   0x00,
}

// FlashReader is the minimal read capability integrity needs from a flash
// HAL (hal.ExternalFlash and hal.InternalFlash both satisfy this).
type FlashReader interface {
	Read(addr uint32, dst []byte) error
}

// chunkSize bounds the scratch buffer used by CRC32Flash so large ranges
// never require a single giant allocation — mirrors the "static ~64 KiB
// chunking buffer" contract from spec §4.7.
const chunkSize = 64 * 1024

// CRC32 computes the IEEE 802.3 CRC-32 over a RAM buffer.
func CRC32(data []byte) uint32 {
	return uint32(crc.CalculateCRC(crc.CRC32, data))
}

// CRC32Flash computes the IEEE 802.3 CRC-32 over a flash address range,
// reading through a fixed-size chunk buffer so the whole range is never
// held in memory at once.
func CRC32Flash(r FlashReader, addr, length uint32) (uint32, error) {
	h := crc.NewHash(crc.CRC32)
	buf := make([]byte, chunkSize)

	remaining := length
	offset := addr
	for remaining > 0 {
		n := remaining
		if n > chunkSize {
			n = chunkSize
		}
		chunk := buf[:n]
		if err := r.Read(offset, chunk); err != nil {
			return 0, fmt.Errorf("crc32 flash read at 0x%08X: %w", offset, err)
		}
		if _, err := h.Update(chunk); err != nil {
			return 0, fmt.Errorf("crc32 flash update: %w", err)
		}
		offset += n
		remaining -= n
	}
	return uint32(h.CRC32()), nil
}

// CRC8 computes the non-standard 8-bit checksum described by Crc8Params.
func CRC8(data []byte) uint8 {
	return uint8(crc.CalculateCRC(Crc8Params, data))
}

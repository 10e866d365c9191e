package firmware

import (
	"encoding/binary"
	"fmt"

	"github.com/pebbleos/bootcore/hal"
	"github.com/pebbleos/bootcore/integrity"
)

// DescriptorSize is the on-flash size in bytes of Description.
const DescriptorSize = 12

// validDescriptionLength is the sole proof of a fully-written descriptor.
const validDescriptionLength = DescriptorSize

// Description is the 12-byte little-endian header at the start of a
// staged image.
type Description struct {
	// DescriptionLength must equal DescriptorSize for the descriptor to
	// be considered written.
	DescriptionLength uint32
	// FirmwareLength is the size in bytes of the image body that
	// immediately follows the descriptor.
	FirmwareLength uint32
	// Checksum is the CRC-32 (IEEE 802.3) over exactly FirmwareLength
	// bytes starting right after the descriptor.
	Checksum uint32
}

// ReadDescription reads and decodes the descriptor at flashAddr.
func ReadDescription(flash hal.ExternalFlash, flashAddr uint32) (Description, error) {
	var buf [DescriptorSize]byte
	if err := flash.Read(flashAddr, buf[:]); err != nil {
		return Description{}, fmt.Errorf("firmware: reading descriptor at 0x%08X: %w", flashAddr, err)
	}
	return Description{
		DescriptionLength: binary.LittleEndian.Uint32(buf[0:4]),
		FirmwareLength:    binary.LittleEndian.Uint32(buf[4:8]),
		Checksum:          binary.LittleEndian.Uint32(buf[8:12]),
	}, nil
}

// IsValid reports whether d looks like a fully-written descriptor. This
// is intentionally shallow: it proves the descriptor was written, not
// that the image body is intact. The deep check is a CRC-32 over the
// body (see package integrity / package update).
func IsValid(d Description) bool {
	return d.DescriptionLength == validDescriptionLength
}

// BodyAddr returns the flash address of the image body that follows the
// descriptor at flashAddr.
func BodyAddr(flashAddr uint32) uint32 {
	return flashAddr + DescriptorSize
}

// Encode serializes d into its 12-byte on-flash representation, as the
// build tooling would when staging an image.
func (d Description) Encode() []byte {
	buf := make([]byte, DescriptorSize)
	binary.LittleEndian.PutUint32(buf[0:4], d.DescriptionLength)
	binary.LittleEndian.PutUint32(buf[4:8], d.FirmwareLength)
	binary.LittleEndian.PutUint32(buf[8:12], d.Checksum)
	return buf
}

// NewDescription builds a valid Description for a body of the given
// bytes, computing its CRC-32.
func NewDescription(body []byte) Description {
	return Description{
		DescriptionLength: validDescriptionLength,
		FirmwareLength:    uint32(len(body)),
		Checksum:          integrity.CRC32(body),
	}
}

// Stage assembles a complete staged image (descriptor + body) for body,
// as build tooling would before writing it to external flash.
func Stage(body []byte) []byte {
	desc := NewDescription(body)
	return append(desc.Encode(), body...)
}

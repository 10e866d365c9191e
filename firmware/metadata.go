package firmware

import (
	"encoding/binary"
	"fmt"
)

// Metadata is the fixed-width trailer carried at the tail of the image
// body, at offset FirmwareLength-MetadataSize from the body's start
// (spec §3.3).
type Metadata struct {
	// BuildTimestamp is a Unix time recorded by the build tooling.
	BuildTimestamp uint32
	// GitTag is the release tag, null-padded to GitTagSize bytes.
	GitTag string
	// GitShortHash is the abbreviated commit hash, null-padded to
	// GitShortHashSize bytes.
	GitShortHash string
	// IsRecoveryImage marks this image as the recovery (PRF) firmware
	// rather than normal firmware.
	IsRecoveryImage bool
	// HardwarePlatform identifies the board this image targets, used to
	// refuse cross-flashing onto the wrong hardware revision.
	HardwarePlatform uint8
}

const (
	gitTagSize       = 16
	gitShortHashSize = 8

	// MetadataSize is the fixed on-flash size of Metadata.
	MetadataSize = 4 + gitTagSize + gitShortHashSize + 1 + 1
)

// ReadMetadata decodes the trailer from a raw MetadataSize-byte buffer.
func ReadMetadata(buf []byte) (Metadata, error) {
	if len(buf) < MetadataSize {
		return Metadata{}, fmt.Errorf("firmware: metadata buffer too short: got %d, want %d", len(buf), MetadataSize)
	}
	off := 0
	ts := binary.LittleEndian.Uint32(buf[off : off+4])
	off += 4
	tag := cString(buf[off : off+gitTagSize])
	off += gitTagSize
	hash := cString(buf[off : off+gitShortHashSize])
	off += gitShortHashSize
	recovery := buf[off] != 0
	off++
	platform := buf[off]

	return Metadata{
		BuildTimestamp:   ts,
		GitTag:           tag,
		GitShortHash:     hash,
		IsRecoveryImage:  recovery,
		HardwarePlatform: platform,
	}, nil
}

// Encode serializes m into a MetadataSize-byte buffer, as the build
// tooling would append it to an image.
func (m Metadata) Encode() []byte {
	buf := make([]byte, MetadataSize)
	off := 0
	binary.LittleEndian.PutUint32(buf[off:off+4], m.BuildTimestamp)
	off += 4
	copy(buf[off:off+gitTagSize], m.GitTag)
	off += gitTagSize
	copy(buf[off:off+gitShortHashSize], m.GitShortHash)
	off += gitShortHashSize
	if m.IsRecoveryImage {
		buf[off] = 1
	}
	off++
	buf[off] = m.HardwarePlatform
	return buf
}

// TrailerAddr returns the flash address of the metadata trailer within an
// image body that starts at bodyAddr and is firmwareLength bytes long.
func TrailerAddr(bodyAddr, firmwareLength uint32) uint32 {
	return bodyAddr + firmwareLength - MetadataSize
}

func cString(b []byte) string {
	for i, c := range b {
		if c == 0 {
			return string(b[:i])
		}
	}
	return string(b)
}

package extflash

import (
	"fmt"

	"github.com/pebbleos/bootcore/hal"
)

// chunkSize is the size of the static scratch buffer used to stage reads
// from non-memory-mapped parts (spec §4.7).
const chunkSize = 64 * 1024

// Reader wraps a hal.ExternalFlash, adding the chunked-read path required
// when the underlying part is not memory-mapped.
type Reader struct {
	flash hal.ExternalFlash
	buf   [chunkSize]byte
}

// New wraps flash. SanityCheck should be called once at boot before any
// Read.
func New(flash hal.ExternalFlash) *Reader {
	return &Reader{flash: flash}
}

// SanityCheck runs the flash's CFI/identification check. A false result
// means the part did not answer as expected and the caller should SAD.
func (r *Reader) SanityCheck() bool {
	return r.flash.SanityCheck()
}

// Read fills dst from addr with a single read of the underlying part,
// whether or not it is memory-mapped; it does not use the chunking buffer.
// Callers that only need to process a stream (e.g. CRC) without sizing dst
// to the whole region use ReadChunked instead.
func (r *Reader) Read(addr uint32, dst []byte) error {
	if err := r.flash.Read(addr, dst); err != nil {
		return fmt.Errorf("extflash: read 0x%08X (%d bytes): %w", addr, len(dst), err)
	}
	return nil
}

// ReadChunked streams length bytes starting at addr through the static
// chunking buffer, calling visit once per chunk. It chunks the same way
// whether or not the part is memory-mapped.
func (r *Reader) ReadChunked(addr, length uint32, visit func(chunk []byte) error) error {
	remaining := length
	offset := addr
	for remaining > 0 {
		n := remaining
		if n > chunkSize {
			n = chunkSize
		}
		chunk := r.buf[:n]
		if err := r.Read(offset, chunk); err != nil {
			return err
		}
		if err := visit(chunk); err != nil {
			return err
		}
		offset += n
		remaining -= n
	}
	return nil
}

// MemoryMapped reports whether the underlying part can be read directly
// without staging through the chunking buffer.
func (r *Reader) MemoryMapped() bool {
	return r.flash.MemoryMapped()
}

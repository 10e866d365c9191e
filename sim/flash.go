package sim

import (
	"fmt"
)

// ExternalFlash is an in-memory stand-in for a SPI/parallel NOR part.
// Unlike real flash it fails a read only when the read runs past the end
// of the part, and requires no erase-before-write discipline, making it
// suitable for staging test images directly.
type ExternalFlash struct {
	data         []byte
	sane         bool
	memoryMapped bool
}

// NewExternalFlash creates a size-byte simulated external flash. sane
// controls what SanityCheck reports, letting tests exercise the
// BAD_FLASH path.
func NewExternalFlash(size int, sane, memoryMapped bool) *ExternalFlash {
	data := make([]byte, size)
	for i := range data {
		data[i] = 0xFF
	}
	return &ExternalFlash{data: data, sane: sane, memoryMapped: memoryMapped}
}

func (f *ExternalFlash) Read(addr uint32, dst []byte) error {
	if int(addr)+len(dst) > len(f.data) {
		return fmt.Errorf("sim: external flash read out of range: addr=0x%08X len=%d size=%d", addr, len(dst), len(f.data))
	}
	copy(dst, f.data[addr:])
	return nil
}

func (f *ExternalFlash) SanityCheck() bool  { return f.sane }
func (f *ExternalFlash) MemoryMapped() bool { return f.memoryMapped }

// StageAt writes image directly into the simulated part at addr, as a
// test harness or operator tool would when staging an update.
func (f *ExternalFlash) StageAt(addr uint32, image []byte) {
	copy(f.data[addr:], image)
}

// InternalFlash is an in-memory stand-in for the MCU's own flash.
type InternalFlash struct {
	sectorSize uint32
	data       []byte
}

// NewInternalFlash creates a size-byte simulated internal flash with the
// given erase granularity.
func NewInternalFlash(size int, sectorSize uint32) *InternalFlash {
	data := make([]byte, size)
	for i := range data {
		data[i] = 0xFF
	}
	return &InternalFlash{sectorSize: sectorSize, data: data}
}

func (f *InternalFlash) SectorSize() uint32 { return f.sectorSize }

func (f *InternalFlash) Read(addr uint32, dst []byte) error {
	if int(addr)+len(dst) > len(f.data) {
		return fmt.Errorf("sim: internal flash read out of range: addr=0x%08X len=%d size=%d", addr, len(dst), len(f.data))
	}
	copy(dst, f.data[addr:])
	return nil
}

func (f *InternalFlash) Erase(base, length uint32, progress func(done, total uint32)) error {
	if int(base)+int(length) > len(f.data) {
		return fmt.Errorf("sim: internal flash erase out of range: base=0x%08X len=%d size=%d", base, length, len(f.data))
	}
	sector := f.sectorSize
	for done := uint32(0); done < length; done += sector {
		n := sector
		if done+n > length {
			n = length - done
		}
		for i := uint32(0); i < n; i++ {
			f.data[base+done+i] = 0xFF
		}
		if progress != nil {
			progress(done+n, length)
		}
	}
	return nil
}

func (f *InternalFlash) Write(base uint32, data []byte, progress func(done, total uint32)) error {
	if int(base)+len(data) > len(f.data) {
		return fmt.Errorf("sim: internal flash write out of range: base=0x%08X len=%d size=%d", base, len(data), len(f.data))
	}
	sector := f.sectorSize
	total := uint32(len(data))
	for done := uint32(0); done < total; done += sector {
		n := sector
		if done+n > total {
			n = total - done
		}
		copy(f.data[base+done:], data[done:done+n])
		if progress != nil {
			progress(done+n, total)
		}
	}
	return nil
}

// InstallVectorTable writes a plausible [initial_sp, reset_handler] pair
// at base, marking the slot as holding firmware.
func (f *InternalFlash) InstallVectorTable(base, initialSP, resetHandler uint32) {
	putLE32(f.data[base:], initialSP)
	putLE32(f.data[base+4:], resetHandler)
}

// EraseRegion fills [base, base+length) with 0xFF directly, bypassing the
// sector-progress loop, useful for test setup ("firmware slot erased").
func (f *InternalFlash) EraseRegion(base, length uint32) {
	for i := uint32(0); i < length; i++ {
		f.data[base+i] = 0xFF
	}
}

func putLE32(b []byte, v uint32) {
	b[0] = byte(v)
	b[1] = byte(v >> 8)
	b[2] = byte(v >> 16)
	b[3] = byte(v >> 24)
}

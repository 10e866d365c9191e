package intflash

import (
	"fmt"

	"github.com/pebbleos/bootcore/hal"
)

// ErrOutOfRange is returned when an erase or write would extend past the
// caller-declared region size. The spec treats this as a panic-grade
// condition (contract violation by the caller, not a runtime fault), but
// this package returns an error instead so callers can unwind and SAD
// cleanly rather than aborting the whole process.
type ErrOutOfRange struct {
	Base, Length, RegionSize uint32
}

func (e *ErrOutOfRange) Error() string {
	return fmt.Sprintf("intflash: range [0x%08X, 0x%08X) exceeds region size 0x%08X", e.Base, e.Base+e.Length, e.RegionSize)
}

// Writer drives a hal.InternalFlash, feeding a watchdog at every sector
// boundary during long erase/write loops (spec §4.7, §5).
type Writer struct {
	flash      hal.InternalFlash
	watchdog   hal.Watchdog
	regionSize uint32
}

// New wraps flash, feeding watchdog once per sector during Erase and
// Write. regionSize bounds every operation's base+length.
func New(flash hal.InternalFlash, watchdog hal.Watchdog, regionSize uint32) *Writer {
	return &Writer{flash: flash, watchdog: watchdog, regionSize: regionSize}
}

// Erase clears [base, base+length) a sector at a time, invoking progress
// after each sector and feeding the watchdog at every sector boundary
// regardless of whether progress itself was called (spec §4.7, §5).
func (w *Writer) Erase(base, length uint32, progress hal.ProgressFunc) error {
	if err := w.checkRange(base, length); err != nil {
		return err
	}
	sector := w.flash.SectorSize()
	return w.flash.Erase(base, length, func(done, total uint32) {
		if w.watchdog != nil && done%sector == 0 {
			w.watchdog.Feed()
		}
		if progress != nil {
			progress(done, total)
		}
	})
}

// Write programs data starting at base, invoking progress and feeding the
// watchdog at every sector boundary.
func (w *Writer) Write(base uint32, data []byte, progress hal.ProgressFunc) error {
	if err := w.checkRange(base, uint32(len(data))); err != nil {
		return err
	}
	sector := w.flash.SectorSize()
	return w.flash.Write(base, data, func(done, total uint32) {
		if w.watchdog != nil && done%sector == 0 {
			w.watchdog.Feed()
		}
		if progress != nil {
			progress(done, total)
		}
	})
}

// Read reads length bytes starting at base directly (internal flash is
// always memory-mapped from the core's perspective).
func (w *Writer) Read(base uint32, dst []byte) error {
	if err := w.checkRange(base, uint32(len(dst))); err != nil {
		return err
	}
	return w.flash.Read(base, dst)
}

// SectorSize returns the underlying part's erase granularity.
func (w *Writer) SectorSize() uint32 {
	return w.flash.SectorSize()
}

func (w *Writer) checkRange(base, length uint32) error {
	if base+length > w.regionSize || base+length < base {
		return &ErrOutOfRange{Base: base, Length: length, RegionSize: w.regionSize}
	}
	return nil
}

// VectorTableErased reports whether the first two words at base (the
// initial stack pointer and reset handler address) both read as the
// erased-flash pattern 0xFFFFFFFF, meaning no firmware is installed
// (spec §3.4, §4.9).
func VectorTableErased(r interface {
	Read(base uint32, dst []byte) error
}, base uint32) (bool, error) {
	var buf [8]byte
	if err := r.Read(base, buf[:]); err != nil {
		return false, fmt.Errorf("intflash: reading vector table: %w", err)
	}
	sp := le32(buf[0:4])
	handler := le32(buf[4:8])
	return sp == 0xFFFFFFFF && handler == 0xFFFFFFFF, nil
}

func le32(b []byte) uint32 {
	return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
}

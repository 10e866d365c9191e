package update

import (
	"fmt"

	"github.com/pebbleos/bootcore/bootbits"
	"github.com/pebbleos/bootcore/corelog"
	"github.com/pebbleos/bootcore/extflash"
	"github.com/pebbleos/bootcore/firmware"
	"github.com/pebbleos/bootcore/integrity"
	"github.com/pebbleos/bootcore/intflash"
)

// Engine orchestrates a single staged-image install: descriptor
// validation, source CRC, erase, copy, and post-write CRC (spec §4.7).
//
// Example:
//
//	eng := update.New(ext, intf, bb,
//	    update.WithLayoutBases(cfg.FirmwareBase, cfg.FirmwareBaseOldWorld),
//	    update.WithProgressCallback(func(p update.Progress) {
//	        display.Progress(p.Done, p.Total)
//	    }),
//	)
//	outcome, err := eng.Run(cfg.UpdateSlotAddr)
type Engine struct {
	ext    *extflash.Reader
	intf   *intflash.Writer
	bb     *bootbits.Store
	config Config
}

// New creates an Engine reading staged images through ext and writing the
// internal firmware slot through intf.
func New(ext *extflash.Reader, intf *intflash.Writer, bb *bootbits.Store, opts ...Option) *Engine {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Engine{ext: ext, intf: intf, bb: bb, config: cfg}
}

// Run installs the staged image at sourceAddr (the descriptor's flash
// address) into internal flash, returning how the attempt ended.
func (e *Engine) Run(sourceAddr uint32) (Outcome, error) {
	e.bb.Set(bootbits.NewFWUpdateInProgress)
	e.reportProgress(Progress{Phase: PhaseValidating, Done: 0, Total: 1})

	desc, err := firmware.ReadDescription(e.ext, sourceAddr)
	if err != nil {
		corelog.Error(e.config.Logger, "update: failed reading descriptor", "err", err)
		return UntouchedFailure, err
	}
	if !firmware.IsValid(desc) {
		corelog.Error(e.config.Logger, "update: invalid descriptor", "description_length", desc.DescriptionLength)
		return UntouchedFailure, &DescriptorInvalidError{DescriptionLength: desc.DescriptionLength}
	}

	bodyAddr := firmware.BodyAddr(sourceAddr)

	sourceCRC, err := integrity.CRC32Flash(e.ext, bodyAddr, desc.FirmwareLength)
	if err != nil {
		return UntouchedFailure, fmt.Errorf("update: computing source crc: %w", err)
	}
	if sourceCRC != desc.Checksum {
		corelog.Error(e.config.Logger, "update: source crc mismatch", "expected", desc.Checksum, "actual", sourceCRC)
		return UntouchedFailure, &SourceChecksumMismatchError{Expected: desc.Checksum, Actual: sourceCRC}
	}

	base, err := e.chooseBase(bodyAddr)
	if err != nil {
		return UntouchedFailure, err
	}

	total := 2 * desc.FirmwareLength

	eraseLen := desc.FirmwareLength
	if base == e.config.OldWorldBase && e.config.NewWorldBase > e.config.OldWorldBase {
		// Downgrading to the old layout: erase the larger new-world span
		// too, so no residue of the new-layout vector table remains.
		eraseLen = desc.FirmwareLength + (e.config.NewWorldBase - e.config.OldWorldBase)
	}

	corelog.Info(e.config.Logger, "update: erasing internal flash", "base", base, "length", eraseLen)
	err = e.intf.Erase(base, eraseLen, func(done, _ uint32) {
		// Scale the erased span onto the first half of the bar, so a
		// larger downgrade erase never runs past desc.FirmwareLength.
		scaled := desc.FirmwareLength
		if eraseLen > 0 {
			scaled = uint32(uint64(done) * uint64(desc.FirmwareLength) / uint64(eraseLen))
		}
		e.reportProgress(Progress{Phase: PhaseErasing, Done: scaled, Total: total})
	})
	if err != nil {
		return ManglingFailure, fmt.Errorf("update: erase failed: %w", err)
	}

	var copied uint32
	err = e.ext.ReadChunked(bodyAddr, desc.FirmwareLength, func(chunk []byte) error {
		if werr := e.intf.Write(base+copied, chunk, nil); werr != nil {
			return werr
		}
		copied += uint32(len(chunk))
		e.reportProgress(Progress{Phase: PhaseCopying, Done: desc.FirmwareLength + copied, Total: total})
		return nil
	})
	if err != nil {
		return ManglingFailure, fmt.Errorf("update: copy failed: %w", err)
	}

	e.reportProgress(Progress{Phase: PhaseVerifying, Done: total, Total: total})
	writtenCRC, err := integrity.CRC32Flash(e.intf, base, desc.FirmwareLength)
	if err != nil {
		return ManglingFailure, fmt.Errorf("update: computing post-write crc: %w", err)
	}
	if writtenCRC != desc.Checksum {
		corelog.Error(e.config.Logger, "update: post-write crc mismatch", "expected", desc.Checksum, "actual", writtenCRC)
		return ManglingFailure, &WrittenChecksumMismatchError{Expected: desc.Checksum, Actual: writtenCRC}
	}

	e.reportProgress(Progress{Phase: PhaseComplete, Done: total, Total: total})
	corelog.Info(e.config.Logger, "update: install succeeded")
	return Success, nil
}

// chooseBase peeks at the image's layout identifier and resolves it to a
// concrete internal-flash base address.
func (e *Engine) chooseBase(bodyAddr uint32) (uint32, error) {
	layout, err := firmware.DetectLayout(e.ext, bodyAddr)
	if err != nil {
		return 0, fmt.Errorf("update: detecting layout: %w", err)
	}
	if layout == firmware.LayoutOldWorld {
		return e.config.OldWorldBase, nil
	}
	return e.config.NewWorldBase, nil
}

func (e *Engine) reportProgress(p Progress) {
	if e.config.ProgressCallback != nil {
		e.config.ProgressCallback(p)
	}
}

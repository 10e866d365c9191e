package handoff

import (
	"fmt"

	"github.com/pebbleos/bootcore/corelog"
	"github.com/pebbleos/bootcore/hal"
)

const erasedWord = 0xFFFFFFFF

// VectorTable is the pair of 32-bit words every Cortex-M-style image
// carries at its base.
type VectorTable struct {
	InitialSP    uint32
	ResetHandler uint32
}

// Erased reports whether both words read as erased flash.
func (v VectorTable) Erased() bool {
	return v.InitialSP == erasedWord && v.ResetHandler == erasedWord
}

// Hooks lets callers (chiefly tests and the simulator) observe the steps
// of Jump that have no literal effect in a hosted Go process. Every field
// is optional; a nil hook is simply skipped.
type Hooks struct {
	DisableInterrupts     func()
	ResetPeripheralClocks func()
	ResetPeripherals      func()
}

// Jump performs the handoff sequence described in spec §4.9: it reads the
// vector table at base, guards against an erased slot, quiesces the
// simulated peripherals, and returns the entry point the caller should
// treat as "now running firmware". There is no literal branch: a hosted
// process cannot jump into an arbitrary address, so the caller is
// expected to stop driving the boot policy and hand control to whatever
// stands in for firmware in its environment (the sim package, in tests).
func Jump(board *hal.Board, base uint32, hooks Hooks, logger corelog.Logger) (VectorTable, error) {
	vt, err := readVectorTable(board.IntFlash, base)
	if err != nil {
		return VectorTable{}, fmt.Errorf("handoff: reading vector table: %w", err)
	}
	if vt.Erased() {
		return VectorTable{}, &FirmwareErasedError{Base: base}
	}

	board.Display.PrepareForReset()

	callHook(hooks.DisableInterrupts)
	callHook(hooks.ResetPeripheralClocks)
	callHook(hooks.ResetPeripherals)

	corelog.Info(logger, "handoff: jumping to firmware", "initial_sp", vt.InitialSP, "reset_handler", vt.ResetHandler)
	return vt, nil
}

func readVectorTable(flash hal.InternalFlash, base uint32) (VectorTable, error) {
	var buf [8]byte
	if err := flash.Read(base, buf[:]); err != nil {
		return VectorTable{}, err
	}
	return VectorTable{
		InitialSP:    le32(buf[0:4]),
		ResetHandler: le32(buf[4:8]),
	}, nil
}

func le32(b []byte) uint32 {
	return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
}

func callHook(h func()) {
	if h != nil {
		h()
	}
}

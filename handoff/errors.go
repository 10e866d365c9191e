package handoff

import "fmt"

// FirmwareErasedError indicates the vector table at the firmware base
// reads as erased flash (all words 0xFFFFFFFF), meaning no firmware is
// installed there.
type FirmwareErasedError struct {
	Base uint32
}

func (e *FirmwareErasedError) Error() string {
	return fmt.Sprintf("handoff: vector table at 0x%08X is erased, no firmware installed", e.Base)
}

var _ error = (*FirmwareErasedError)(nil)

package bootpolicy

import (
	"errors"
	"fmt"
)

// ErrResetRequested is returned by Run when the correct response is an
// immediate system reset rather than a jump to firmware or a SAD
// terminal state — e.g. a recovery-engine attempt that struck once or
// twice, or a normal-firmware update that mangled internal flash.
var ErrResetRequested = errors.New("bootpolicy: reset requested")

// SADCode names one of the "show an error code and wait" terminal
// states (spec §4.8's SAD(code)).
type SADCode int

const (
	SADStuckButton SADCode = iota
	SADBadFlash
	SADCantLoadFW
	SADResetLoop
	SADCorruptCounter
)

func (c SADCode) String() string {
	switch c {
	case SADStuckButton:
		return "STUCK_BUTTON"
	case SADBadFlash:
		return "BAD_FLASH"
	case SADCantLoadFW:
		return "CANT_LOAD_FW"
	case SADResetLoop:
		return "RESET_LOOP"
	case SADCorruptCounter:
		return "CORRUPT_COUNTER"
	default:
		return fmt.Sprintf("SADCode(%d)", int(c))
	}
}

// SADError is a terminal boot-policy failure: display the code, wait for
// the button pattern to change, then reset.
type SADError struct {
	Code SADCode
}

func (e *SADError) Error() string {
	return fmt.Sprintf("bootpolicy: SAD(%s)", e.Code)
}

package sim

import "github.com/pebbleos/bootcore/hal"

// BoardOptions configures NewBoard's simulated part sizes.
type BoardOptions struct {
	ExternalFlashSize int
	InternalFlashSize int
	InternalSectorSize uint32
	ExternalFlashSane  bool
	WatchdogResetFlag  bool
}

// DefaultBoardOptions returns sensible sizes for a unit test or
// interactive simulation: a healthy 1 MiB external part and a 256 KiB
// internal part with 4 KiB sectors.
func DefaultBoardOptions() BoardOptions {
	return BoardOptions{
		ExternalFlashSize:  1 << 20,
		InternalFlashSize:  256 << 10,
		InternalSectorSize: 4096,
		ExternalFlashSane:  true,
	}
}

// NewBoard assembles a complete hal.Board from simulated peripherals, the
// way examples/mock_device/main.go assembles one simulated device to
// stand in for an entire physical Cypress bootloader target.
func NewBoard(opts BoardOptions) *hal.Board {
	return &hal.Board{
		Retained:    NewRetained(),
		ExtFlash:    NewExternalFlash(opts.ExternalFlashSize, opts.ExternalFlashSane, false),
		IntFlash:    NewInternalFlash(opts.InternalFlashSize, opts.InternalSectorSize),
		Display:     &Display{},
		Buttons:     NewButtons(),
		Watchdog:    NewWatchdog(opts.WatchdogResetFlag),
		PMIC:        NewPMIC(),
		DebugSerial: NewDebugSerial(),
		Delay:       NewDelay(),
		Reset:       NewResetter(),
	}
}

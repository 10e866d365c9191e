package firmware

import (
	"fmt"

	"github.com/pebbleos/bootcore/hal"
)

// Layout identifies which internal-flash base address an image targets.
// Boards that migrated their internal flash map carry both constants so
// the update engine can tell an old image from a new one before
// committing to an erase span (spec §4.7).
type Layout uint8

const (
	LayoutNewWorld Layout = iota
	LayoutOldWorld
)

// layoutIdentifierOffset is the byte offset, relative to the start of the
// image body, of the single layout-identifier byte the build tooling
// stamps into every image.
const layoutIdentifierOffset = 8

// DetectLayout peeks at the layout-identifier byte of the image body
// starting at bodyAddr and reports which internal-flash base it targets.
// Any value other than 0 is treated as LayoutOldWorld, so that an
// unrecognized future encoding still degrades to the conservative
// (larger-erase) choice rather than silently assuming new-world.
func DetectLayout(flash hal.ExternalFlash, bodyAddr uint32) (Layout, error) {
	var b [1]byte
	if err := flash.Read(bodyAddr+layoutIdentifierOffset, b[:]); err != nil {
		return 0, fmt.Errorf("firmware: reading layout identifier at 0x%08X: %w", bodyAddr+layoutIdentifierOffset, err)
	}
	if b[0] == 0 {
		return LayoutNewWorld, nil
	}
	return LayoutOldWorld, nil
}

package sim

import "github.com/pebbleos/bootcore/hal"

// Buttons is an in-memory button-state stand-in. Press/Release let a
// test or operator CLI script a hold sequence.
type Buttons struct {
	pressed map[hal.Button]bool
}

// NewButtons creates a Buttons with every button released.
func NewButtons() *Buttons {
	return &Buttons{pressed: map[hal.Button]bool{}}
}

func (b *Buttons) IsPressed(button hal.Button) bool { return b.pressed[button] }

func (b *Buttons) StateBits() uint8 {
	var bits uint8
	for btn, p := range b.pressed {
		if p {
			bits |= 1 << uint(btn)
		}
	}
	return bits
}

// Press marks button as held down.
func (b *Buttons) Press(button hal.Button) { b.pressed[button] = true }

// Release marks button as no longer held.
func (b *Buttons) Release(button hal.Button) { b.pressed[button] = false }

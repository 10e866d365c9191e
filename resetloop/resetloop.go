package resetloop

import (
	"errors"

	"github.com/pebbleos/bootcore/bootbits"
)

// ErrCorruptCounter is returned when the stored Gray-code pattern cannot
// be decoded to a value in 0..7. With three dedicated bits every pattern
// decodes to a valid value, so this is unreachable in practice and exists
// only as a defensive guard, matching spec §4.5's note that a decoded
// counter outside 0..7 indicates corruption and must abort rather than
// silently continue.
var ErrCorruptCounter = errors.New("resetloop: counter pattern out of range")

var bits = [3]bootbits.Bit{
	bootbits.ResetLoopDetectOne,
	bootbits.ResetLoopDetectTwo,
	bootbits.ResetLoopDetectThree,
}

// Detector drives the 3-bit Gray-coded reset-loop counter.
type Detector struct {
	bb *bootbits.Store
}

// New wraps the boot-bits store holding the reset-loop bits.
func New(bb *bootbits.Store) *Detector {
	return &Detector{bb: bb}
}

// ObserveAndIncrement decodes the current counter, and either trips (at 7,
// clearing all three bits and reporting tripped=true) or advances to the
// next Gray-coded pattern (reporting tripped=false). Called once per boot,
// after the boot policy has decided how to proceed and before jumping
// (spec §4.5).
func (d *Detector) ObserveAndIncrement() (tripped bool, err error) {
	pattern := d.readPattern()
	value, ok := grayToBinary(pattern)
	if !ok {
		return false, ErrCorruptCounter
	}

	if value == 7 {
		d.writePattern(0)
		return true, nil
	}

	d.writePattern(binaryToGray(value + 1))
	return false, nil
}

// Value returns the counter's current decoded value without advancing it.
func (d *Detector) Value() (int, error) {
	value, ok := grayToBinary(d.readPattern())
	if !ok {
		return 0, ErrCorruptCounter
	}
	return value, nil
}

func (d *Detector) readPattern() int {
	p := 0
	for i, bit := range bits {
		if d.bb.Test(bit) {
			p |= 1 << i
		}
	}
	return p
}

func (d *Detector) writePattern(p int) {
	for i, bit := range bits {
		if p&(1<<i) != 0 {
			d.bb.Set(bit)
		} else {
			d.bb.Clear(bit)
		}
	}
}

// binaryToGray converts a 3-bit binary value to its Gray-coded pattern.
func binaryToGray(n int) int {
	return (n ^ (n >> 1)) & 0x7
}

// grayToBinary inverts binaryToGray for 3-bit patterns. ok is false only
// for patterns outside 0..7, which cannot occur with a 3-bit input but is
// checked anyway per spec §4.5.
func grayToBinary(g int) (int, bool) {
	if g < 0 || g > 7 {
		return 0, false
	}
	n := g
	for shift := 1; shift < 3; shift <<= 1 {
		n ^= n >> shift
	}
	return n & 0x7, true
}

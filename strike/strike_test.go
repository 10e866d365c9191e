package strike

import (
	"testing"

	"github.com/pebbleos/bootcore/bootbits"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memStore struct {
	slots map[uint32]uint32
}

func newMemStore() *memStore { return &memStore{slots: map[uint32]uint32{}} }

func (m *memStore) Read(slot uint32) uint32 { return m.slots[slot] }
func (m *memStore) Write(slot, v uint32)    { m.slots[slot] = v }

func TestFWStartSaturatesOnThirdStrike(t *testing.T) {
	bb := bootbits.New(newMemStore())
	c := NewFWStart(bb)

	require.Equal(t, 0, c.Count())

	fatal := c.ObserveFailure()
	assert.False(t, fatal)
	assert.Equal(t, 1, c.Count())
	assert.True(t, bb.Test(bootbits.FWStartFailStrikeOne))
	assert.False(t, bb.Test(bootbits.FWStartFailStrikeTwo))

	fatal = c.ObserveFailure()
	assert.False(t, fatal)
	assert.Equal(t, 2, c.Count())
	assert.True(t, bb.Test(bootbits.FWStartFailStrikeOne))
	assert.True(t, bb.Test(bootbits.FWStartFailStrikeTwo))

	fatal = c.ObserveFailure()
	assert.True(t, fatal)
	assert.Equal(t, 0, c.Count())
	assert.False(t, bb.Test(bootbits.FWStartFailStrikeOne))
	assert.False(t, bb.Test(bootbits.FWStartFailStrikeTwo))
}

func TestObserveFailureChangesAtMostOneBitPerCall(t *testing.T) {
	bb := bootbits.New(newMemStore())
	c := NewFWStart(bb)

	before := bb.Word()
	c.ObserveFailure()
	after := bb.Word()
	assert.Equal(t, 1, popcount(before^after), "first strike should toggle exactly one bit")

	before = bb.Word()
	c.ObserveFailure()
	after = bb.Word()
	assert.Equal(t, 1, popcount(before^after), "second strike should toggle exactly one bit")
}

func TestClearResetsBothBits(t *testing.T) {
	bb := bootbits.New(newMemStore())
	c := NewFWStart(bb)

	c.ObserveFailure()
	c.ObserveFailure()
	require.Equal(t, 2, c.Count())

	c.Clear()
	assert.Equal(t, 0, c.Count())
	assert.False(t, bb.Test(bootbits.FWStartFailStrikeOne))
	assert.False(t, bb.Test(bootbits.FWStartFailStrikeTwo))
}

func TestFWStartAndRecoveryLoadCountersAreIndependent(t *testing.T) {
	bb := bootbits.New(newMemStore())
	fw := NewFWStart(bb)
	rec := NewRecoveryLoad(bb)

	fw.ObserveFailure()
	assert.Equal(t, 1, fw.Count())
	assert.Equal(t, 0, rec.Count())

	rec.ObserveFailure()
	rec.ObserveFailure()
	assert.Equal(t, 1, fw.Count())
	assert.Equal(t, 2, rec.Count())

	fatal := rec.ObserveFailure()
	assert.True(t, fatal)
	assert.Equal(t, 0, rec.Count())
	assert.Equal(t, 1, fw.Count(), "clearing the recovery counter must not disturb the fw-start counter")
}

func TestForceSaturatedMakesNextObserveFatal(t *testing.T) {
	bb := bootbits.New(newMemStore())
	c := NewFWStart(bb)

	c.ForceSaturated()
	assert.Equal(t, 2, c.Count())

	fatal := c.ObserveFailure()
	assert.True(t, fatal)
	assert.Equal(t, 0, c.Count())
}

func popcount(v uint32) int {
	n := 0
	for v != 0 {
		n += int(v & 1)
		v >>= 1
	}
	return n
}

package bootbits

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memStore struct {
	slots map[uint32]uint32
}

func newMemStore() *memStore {
	return &memStore{slots: map[uint32]uint32{}}
}

func (m *memStore) Read(slot uint32) uint32  { return m.slots[slot] }
func (m *memStore) Write(slot, v uint32)     { m.slots[slot] = v }

func TestInitFirstBootSetsOnlySentinel(t *testing.T) {
	bb := New(newMemStore())
	bb.Init()

	assert.True(t, bb.Test(Initialized))
	assert.Equal(t, uint32(Initialized), bb.Word())
}

func TestInitIsIdempotentAfterHistoryAccumulates(t *testing.T) {
	bb := New(newMemStore())
	bb.Init()
	bb.Set(NewFWAvailable)
	bb.Set(FWStable)

	bb.Init() // should not clobber accumulated bits
	assert.True(t, bb.Test(NewFWAvailable))
	assert.True(t, bb.Test(FWStable))
}

func TestSetClearTestRoundTrip(t *testing.T) {
	bb := New(newMemStore())
	bb.Set(ForcePRF)
	bb.Set(ForcePRF)
	assert.True(t, bb.Test(ForcePRF))

	bb.Clear(ForcePRF)
	assert.False(t, bb.Test(ForcePRF))
}

func TestBitsAreIndependent(t *testing.T) {
	bb := New(newMemStore())
	bb.Set(FWStartFailStrikeOne)
	assert.True(t, bb.Test(FWStartFailStrikeOne))
	assert.False(t, bb.Test(FWStartFailStrikeTwo))
	assert.False(t, bb.Test(RecoveryStartInProgress))
}

func TestAllBitsAreDistinctPowersOfTwo(t *testing.T) {
	all := []Bit{
		Initialized, NewFWAvailable, NewFWUpdateInProgress, NewFWInstalled,
		NewSystemResourcesAvailable, NewPRFAvailable, FWStartFailStrikeOne,
		FWStartFailStrikeTwo, RecoveryLoadFailStrikeOne, RecoveryLoadFailStrikeTwo,
		RecoveryStartInProgress, SoftwareFailureOccurred, FWStable, ForcePRF,
		StandbyModeRequested, StandbyModeEntered, ShutdownRequested,
		ResetLoopDetectOne, ResetLoopDetectTwo, ResetLoopDetectThree,
	}
	seen := map[Bit]bool{}
	for _, b := range all {
		require.False(t, seen[b], "duplicate bit value for %s", b)
		seen[b] = true
		require.Equal(t, 1, popcount(uint32(b)), "%s is not a single bit", b)
	}
}

func popcount(v uint32) int {
	n := 0
	for v != 0 {
		n += int(v & 1)
		v >>= 1
	}
	return n
}

func TestStringUnknownBit(t *testing.T) {
	assert.Contains(t, Bit(0).String(), "Bit(0x")
}

func TestDumpLogsSetBitsOnly(t *testing.T) {
	bb := New(newMemStore())
	bb.Set(FWStable)

	var logged []string
	bb.Dump(func(format string, args ...interface{}) {
		logged = append(logged, format)
	})
	require.Len(t, logged, 1)
	assert.Contains(t, logged[0], "%s")
}

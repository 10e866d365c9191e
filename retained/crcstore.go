package retained

import (
	"encoding/binary"

	"github.com/pebbleos/bootcore/hal"
	"github.com/pebbleos/bootcore/integrity"
)

// CRCStore is a hal.RetainedStore backed by a linker-placed retained-SRAM
// region whose integrity is guarded by a CRC slot, per spec §4.1. It is
// the variant used by boards without a dedicated backup-register
// peripheral.
type CRCStore struct {
	words [numSlots]uint32
}

var _ hal.RetainedStore = (*CRCStore)(nil)

// NewCRCStore constructs a CRCStore over a fresh, zeroed backing array.
// Call Init once the board's retained SRAM has been mapped in, so a
// battery-backed region that survived reset is validated rather than
// silently treated as fresh.
func NewCRCStore() *CRCStore {
	return &CRCStore{}
}

// Init recomputes the guard CRC over every slot except the guard itself.
// On mismatch (including a never-initialised, power-on-reset region) it
// zeroes every slot and rewrites the guard so a subsequent Init is stable.
func (s *CRCStore) Init() {
	want := s.guardCRC()
	if s.words[slotCRCGuard] != want {
		for i := range s.words {
			s.words[i] = 0
		}
		s.words[slotCRCGuard] = s.guardCRC()
	}
}

// Read returns the last value successfully written after the most recent
// full-power boot, or zero if the store was never initialised.
func (s *CRCStore) Read(slot uint32) uint32 {
	if Slot(slot) >= numSlots || Slot(slot) == slotCRCGuard {
		return 0
	}
	return s.words[slot]
}

// Write is atomic with respect to any reset that does not lose power to
// the store: the guard CRC is recomputed and written in the same call.
func (s *CRCStore) Write(slot uint32, value uint32) {
	if Slot(slot) >= numSlots || Slot(slot) == slotCRCGuard {
		return
	}
	s.words[slot] = value
	s.words[slotCRCGuard] = s.guardCRC()
}

// LoadFromBackup replaces the backing words wholesale, simulating a
// battery-backed region that survived reset with prior content. Intended
// for tests and the simulator; production boards back this store with
// real retained SRAM instead.
func (s *CRCStore) LoadFromBackup(words [numSlots]uint32) {
	s.words = words
}

// Snapshot returns a copy of the backing words, for persistence by the
// simulator between simulated power cycles.
func (s *CRCStore) Snapshot() [numSlots]uint32 {
	return s.words
}

func (s *CRCStore) guardCRC() uint32 {
	buf := make([]byte, 0, (numSlots-1)*4)
	for i, w := range s.words {
		if Slot(i) == slotCRCGuard {
			continue
		}
		var b [4]byte
		binary.LittleEndian.PutUint32(b[:], w)
		buf = append(buf, b[:]...)
	}
	return integrity.CRC32(buf)
}

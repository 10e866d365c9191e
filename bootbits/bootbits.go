package bootbits

import (
	"fmt"

	"github.com/pebbleos/bootcore/hal"
	"github.com/pebbleos/bootcore/retained"
)

// Bit identifies one named flag within the BOOTBIT word.
type Bit uint32

const (
	// Identity.
	Initialized Bit = 1 << iota

	// Update intent.
	NewFWAvailable
	NewFWUpdateInProgress
	NewFWInstalled
	NewSystemResourcesAvailable
	NewPRFAvailable

	// Fault history.
	FWStartFailStrikeOne
	FWStartFailStrikeTwo
	RecoveryLoadFailStrikeOne
	RecoveryLoadFailStrikeTwo
	RecoveryStartInProgress
	SoftwareFailureOccurred
	FWStable

	// Operator intent.
	ForcePRF
	StandbyModeRequested
	StandbyModeEntered
	ShutdownRequested

	// Reset-loop counter (interpreted by package resetloop as a 3-bit
	// Gray code, not as independent flags).
	ResetLoopDetectOne
	ResetLoopDetectTwo
	ResetLoopDetectThree
)

var names = map[Bit]string{
	Initialized:                 "INITIALIZED",
	NewFWAvailable:              "NEW_FW_AVAILABLE",
	NewFWUpdateInProgress:       "NEW_FW_UPDATE_IN_PROGRESS",
	NewFWInstalled:              "NEW_FW_INSTALLED",
	NewSystemResourcesAvailable: "NEW_SYSTEM_RESOURCES_AVAILABLE",
	NewPRFAvailable:             "NEW_PRF_AVAILABLE",
	FWStartFailStrikeOne:        "FW_START_FAIL_STRIKE_ONE",
	FWStartFailStrikeTwo:        "FW_START_FAIL_STRIKE_TWO",
	RecoveryLoadFailStrikeOne:   "RECOVERY_LOAD_FAIL_STRIKE_ONE",
	RecoveryLoadFailStrikeTwo:   "RECOVERY_LOAD_FAIL_STRIKE_TWO",
	RecoveryStartInProgress:     "RECOVERY_START_IN_PROGRESS",
	SoftwareFailureOccurred:     "SOFTWARE_FAILURE_OCCURRED",
	FWStable:                    "FW_STABLE",
	ForcePRF:                    "FORCE_PRF",
	StandbyModeRequested:        "STANDBY_MODE_REQUESTED",
	StandbyModeEntered:          "STANDBY_MODE_ENTERED",
	ShutdownRequested:           "SHUTDOWN_REQUESTED",
	ResetLoopDetectOne:          "RESET_LOOP_DETECT_ONE",
	ResetLoopDetectTwo:          "RESET_LOOP_DETECT_TWO",
	ResetLoopDetectThree:        "RESET_LOOP_DETECT_THREE",
}

func (b Bit) String() string {
	if n, ok := names[b]; ok {
		return n
	}
	return fmt.Sprintf("Bit(0x%08X)", uint32(b))
}

// Store is a thin façade over one retained-register slot.
type Store struct {
	rr   hal.RetainedStore
	slot uint32
}

// New wraps the BOOTBIT slot of rr.
func New(rr hal.RetainedStore) *Store {
	return &Store{rr: rr, slot: uint32(retained.SlotBootBit)}
}

// Init detects the missing INITIALIZED sentinel (meaning this is the
// first boot after battery install, or the retained store was lost) and
// sets it with the rest of the word zeroed. On any subsequent boot the
// sentinel stays set and bits accumulate history.
func (s *Store) Init() {
	if !s.Test(Initialized) {
		s.rr.Write(s.slot, uint32(Initialized))
	}
}

// Set atomically sets one bit.
func (s *Store) Set(bit Bit) {
	s.rr.Write(s.slot, s.rr.Read(s.slot)|uint32(bit))
}

// Clear atomically clears one bit.
func (s *Store) Clear(bit Bit) {
	s.rr.Write(s.slot, s.rr.Read(s.slot)&^uint32(bit))
}

// Test reports whether one bit is set.
func (s *Store) Test(bit Bit) bool {
	return s.rr.Read(s.slot)&uint32(bit) != 0
}

// Word returns the raw BOOTBIT word, as Dump reads it. The reset-loop and
// strike packages do not use it; they go through Test, Set and Clear.
func (s *Store) Word() uint32 {
	return s.rr.Read(s.slot)
}

// SetWord overwrites the raw BOOTBIT word.
func (s *Store) SetWord(v uint32) {
	s.rr.Write(s.slot, v)
}

// Dump logs every set bit, for debug serial output.
func (s *Store) Dump(logf func(string, ...interface{})) {
	if logf == nil {
		return
	}
	word := s.Word()
	for bit, name := range names {
		if word&uint32(bit) != 0 {
			logf("bootbit set: %s", name)
		}
	}
}

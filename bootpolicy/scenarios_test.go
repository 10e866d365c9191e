package bootpolicy

import (
	"errors"
	"testing"
	"time"

	"github.com/pebbleos/bootcore/bootbits"
	"github.com/pebbleos/bootcore/extflash"
	"github.com/pebbleos/bootcore/firmware"
	"github.com/pebbleos/bootcore/hal"
	"github.com/pebbleos/bootcore/intflash"
	"github.com/pebbleos/bootcore/resetloop"
	"github.com/pebbleos/bootcore/sim"
	"github.com/pebbleos/bootcore/strike"
	"github.com/pebbleos/bootcore/update"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The eight concrete end-to-end scenarios, built on the sim package's
// in-memory HAL so each runs under plain `go test` with no real hardware.

const (
	scenExtFlashSize = 0x8000
	scenIntFlashSize = 0x8000
	scenSectorSize   = 4096
	scenFirmwareBase = 0x2000
	scenUpdateAddr   = 0x0000
	scenRecoveryAddr = 0x2000
	scenForceHold    = 10 * time.Millisecond
	scenForcePoll    = time.Millisecond
)

type scenarioRig struct {
	board  *hal.Board
	bb     *bootbits.Store
	policy *Policy
}

// newScenarioRig assembles a simulated board with firmware already
// installed at scenFirmwareBase. extFlashSane lets scenario 3 exercise
// the BAD_FLASH path; intFlash lets scenario 4 substitute a
// fault-injecting decorator around the simulated internal flash part.
func newScenarioRig(t *testing.T, extFlashSane bool, intFlash hal.InternalFlash) *scenarioRig {
	t.Helper()

	board := sim.NewBoard(sim.BoardOptions{
		ExternalFlashSize:  scenExtFlashSize,
		InternalFlashSize:  scenIntFlashSize,
		InternalSectorSize: scenSectorSize,
		ExternalFlashSane:  extFlashSane,
	})
	simIntFlash := board.IntFlash.(*sim.InternalFlash)
	simIntFlash.InstallVectorTable(scenFirmwareBase, 0x20001000, scenFirmwareBase+1)
	if intFlash != nil {
		board.IntFlash = intFlash
	}

	bb := bootbits.New(board.Retained)
	rl := resetloop.New(bb)
	fwStrikes := strike.NewFWStart(bb)
	recoveryStrikes := strike.NewRecoveryLoad(bb)

	extReader := extflash.New(board.ExtFlash)
	intWriter := intflash.New(board.IntFlash, board.Watchdog, scenIntFlashSize)

	engine := update.New(extReader, intWriter, bb, update.WithLayoutBases(scenFirmwareBase, scenFirmwareBase))

	cfg := Config{
		FirmwareBase:      scenFirmwareBase,
		UpdateSlotAddr:    scenUpdateAddr,
		RecoverySlotAddr:  scenRecoveryAddr,
		ForceRecoveryHold: scenForceHold,
		ForceRecoveryPoll: scenForcePoll,
	}

	policy := New(board, bb, rl, fwStrikes, recoveryStrikes, engine, engine, cfg)
	return &scenarioRig{board: board, bb: bb, policy: policy}
}

func (r *scenarioRig) stageRecoveryImage(t *testing.T) {
	t.Helper()
	staged := firmware.Stage([]byte("a complete recovery firmware image body"))
	r.board.ExtFlash.(*sim.ExternalFlash).StageAt(scenRecoveryAddr, staged)
}

// corruptingIntFlash wraps a hal.InternalFlash and flips the last byte of
// every Write immediately after it lands, simulating a flash part that
// silently mangles a word during programming. This is the only way to
// reach update.ManglingFailure in a test: the plain sim.InternalFlash
// writes faithfully, so a post-write CRC mismatch needs fault injection.
type corruptingIntFlash struct {
	hal.InternalFlash
}

func (f *corruptingIntFlash) Write(base uint32, data []byte, progress hal.ProgressFunc) error {
	if err := f.InternalFlash.Write(base, data, progress); err != nil {
		return err
	}
	if len(data) == 0 {
		return nil
	}
	last := data[len(data)-1] ^ 0xFF
	return f.InternalFlash.Write(base+uint32(len(data))-1, []byte{last}, nil)
}

// Scenario 1: a clean boot with no pending work jumps straight to firmware.
func TestScenarioCleanBootJumpsToFirmware(t *testing.T) {
	rig := newScenarioRig(t, true, nil)
	base, err := rig.policy.Run()
	require.NoError(t, err)
	assert.Equal(t, uint32(scenFirmwareBase), base)
	assert.True(t, rig.board.Watchdog.(*sim.Watchdog).Started())
}

// Scenario 2: every button reading pressed simultaneously is a stuck-button
// fault, reported as SAD(STUCK_BUTTON) before any flash is touched.
func TestScenarioStuckButtonsReportSAD(t *testing.T) {
	rig := newScenarioRig(t, true, nil)
	buttons := rig.board.Buttons.(*sim.Buttons)
	for _, b := range []hal.Button{hal.ButtonBack, hal.ButtonUp, hal.ButtonSelect, hal.ButtonDown} {
		buttons.Press(b)
	}

	_, err := rig.policy.Run()
	var sad *SADError
	require.ErrorAs(t, err, &sad)
	assert.Equal(t, SADStuckButton, sad.Code)
}

// Scenario 3: external flash failing its sanity check is SAD(BAD_FLASH).
func TestScenarioBadExternalFlashReportsSAD(t *testing.T) {
	rig := newScenarioRig(t, false, nil)
	_, err := rig.policy.Run()
	var sad *SADError
	require.ErrorAs(t, err, &sad)
	assert.Equal(t, SADBadFlash, sad.Code)
}

// Scenario 4: an update that mangles internal flash (post-write CRC
// mismatch) forces the normal-firmware strike counter to saturation, so
// Run reports a reset request rather than jumping into a half-written
// image on the very next boot.
func TestScenarioMangledUpdateForcesStrikeSaturationAndResetRequest(t *testing.T) {
	simBoard := sim.NewBoard(sim.BoardOptions{
		ExternalFlashSize:  scenExtFlashSize,
		InternalFlashSize:  scenIntFlashSize,
		InternalSectorSize: scenSectorSize,
		ExternalFlashSane:  true,
	})
	simBoard.IntFlash.(*sim.InternalFlash).InstallVectorTable(scenFirmwareBase, 0x20001000, scenFirmwareBase+1)
	corrupting := &corruptingIntFlash{InternalFlash: simBoard.IntFlash}
	rig := newScenarioRig(t, true, corrupting)
	rig.bb.Init()

	body := []byte("a staged normal-firmware update body")
	rig.board.ExtFlash.(*sim.ExternalFlash).StageAt(scenUpdateAddr, firmware.Stage(body))
	rig.bb.Set(bootbits.NewFWAvailable)

	_, err := rig.policy.Run()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrResetRequested))
	assert.Equal(t, 2, rig.policy.fwStrikes.Count())
}

// Scenario 5: FORCE_PRF set in retained memory forces a switch to recovery,
// which succeeds and then continues on to boot normal firmware.
func TestScenarioForcePRFBitSwitchesToRecoveryThenBoots(t *testing.T) {
	rig := newScenarioRig(t, true, nil)
	rig.stageRecoveryImage(t)
	rig.bb.Init()
	rig.bb.Set(bootbits.ForcePRF)

	base, err := rig.policy.Run()
	require.NoError(t, err)
	assert.Equal(t, uint32(scenFirmwareBase), base)
	assert.False(t, rig.bb.Test(bootbits.RecoveryStartInProgress))
}

// Scenario 6: holding UP+BACK for the configured duration forces recovery,
// exercising forceRecoveryCondition's hal.ButtonHoldFor path directly (no
// FORCE_PRF bit, no erased vector table).
func TestScenarioButtonHoldForcesRecovery(t *testing.T) {
	rig := newScenarioRig(t, true, nil)
	rig.stageRecoveryImage(t)
	rig.bb.Init()

	buttons := rig.board.Buttons.(*sim.Buttons)
	buttons.Press(hal.ButtonUp)
	buttons.Press(hal.ButtonBack)

	base, err := rig.policy.Run()
	require.NoError(t, err)
	assert.Equal(t, uint32(scenFirmwareBase), base)
	assert.False(t, rig.bb.Test(bootbits.RecoveryStartInProgress))
}

// Scenario 6b: a combo that is not held (only UP pressed) does not force
// recovery; ButtonHoldFor gives up at its first poll, as it does when the
// combo is released, and Run proceeds as a normal clean boot.
func TestScenarioButtonHoldReleasedDoesNotForceRecovery(t *testing.T) {
	rig := newScenarioRig(t, true, nil)

	buttons := rig.board.Buttons.(*sim.Buttons)
	buttons.Press(hal.ButtonUp)
	// ButtonBack never pressed: the combo is incomplete from the first poll.

	base, err := rig.policy.Run()
	require.NoError(t, err)
	assert.Equal(t, uint32(scenFirmwareBase), base)
}

// Scenario 7: an erased firmware slot (no installed image at all) forces
// recovery via forceRecoveryCondition's VectorTableErased path.
func TestScenarioErasedFirmwareSlotForcesRecovery(t *testing.T) {
	rig := newScenarioRig(t, true, nil)
	rig.stageRecoveryImage(t)
	rig.board.IntFlash.(*sim.InternalFlash).EraseRegion(scenFirmwareBase, 8)

	base, err := rig.policy.Run()
	require.NoError(t, err)
	assert.Equal(t, uint32(scenFirmwareBase), base)
}

// Scenario 8: eight consecutive clean boots with no intervening FW_STABLE
// trips the Gray-coded reset-loop counter.
func TestScenarioResetLoopTripsAfterEightCleanBoots(t *testing.T) {
	rig := newScenarioRig(t, true, nil)
	for i := 0; i < 7; i++ {
		_, err := rig.policy.Run()
		require.NoError(t, err)
	}

	_, err := rig.policy.Run()
	var sad *SADError
	require.ErrorAs(t, err, &sad)
	assert.Equal(t, SADResetLoop, sad.Code)
}

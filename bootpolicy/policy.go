package bootpolicy

import (
	"errors"

	"github.com/pebbleos/bootcore/bootbits"
	"github.com/pebbleos/bootcore/corelog"
	"github.com/pebbleos/bootcore/hal"
	"github.com/pebbleos/bootcore/intflash"
	"github.com/pebbleos/bootcore/resetloop"
	"github.com/pebbleos/bootcore/strike"
	"github.com/pebbleos/bootcore/update"
)

// forceRecoveryCombo is the button combination that, held for
// Config.ForceRecoveryHold, forces a switch to recovery (spec §4.8).
var forceRecoveryCombo = []hal.Button{hal.ButtonUp, hal.ButtonBack}

// Policy runs the top-level boot decision described in spec §4.8.
type Policy struct {
	board *hal.Board
	bb    *bootbits.Store
	rl    *resetloop.Detector

	fwStrikes       *strike.Counter
	recoveryStrikes *strike.Counter

	updateEngine   *update.Engine
	recoveryEngine *update.Engine

	cfg Config

	logger              corelog.Logger
	stuckButtonCheck    func(hal.Buttons) bool
	resumingFromStandby func() bool
}

// New builds a Policy. updateEngine and recoveryEngine are configured to
// read the update and recovery staging areas respectively, typically
// sharing one extflash.Reader and intflash.Writer but constructed with
// different default behavior is not required — callers usually pass the
// same *update.Engine for both if the only difference is the descriptor
// address, since Engine.Run takes the source address as a parameter.
func New(board *hal.Board, bb *bootbits.Store, rl *resetloop.Detector, fwStrikes, recoveryStrikes *strike.Counter, updateEngine, recoveryEngine *update.Engine, cfg Config, opts ...Option) *Policy {
	p := &Policy{
		board:               board,
		bb:                  bb,
		rl:                  rl,
		fwStrikes:           fwStrikes,
		recoveryStrikes:     recoveryStrikes,
		updateEngine:        updateEngine,
		recoveryEngine:      recoveryEngine,
		cfg:                 cfg.withDefaults(),
		stuckButtonCheck:    defaultStuckButtonCheck,
		resumingFromStandby: defaultResumingFromStandby,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run evaluates the full boot policy and returns the internal-flash
// address to hand off to, or an error. Three error shapes are possible:
//
//   - *SADError: a terminal condition; the caller should display the
//     code, wait for the button pattern to change, then reset.
//   - ErrResetRequested (via errors.Is): the caller should reset
//     immediately with no display needed.
//   - any other error: unexpected failure reading a HAL dependency.
func (p *Policy) Run() (uint32, error) {
	p.bb.Init()

	if p.resumingFromStandby() {
		return p.cfg.FirmwareBase, nil
	}

	if p.bb.Test(bootbits.FWStable) {
		p.fwStrikes.Clear()
		p.recoveryStrikes.Clear()
		p.bb.Clear(bootbits.ResetLoopDetectOne)
		p.bb.Clear(bootbits.ResetLoopDetectTwo)
		p.bb.Clear(bootbits.ResetLoopDetectThree)
	}

	if p.stuckButtonCheck(p.board.Buttons) {
		return 0, &SADError{Code: SADStuckButton}
	}
	if !p.board.ExtFlash.SanityCheck() {
		return 0, &SADError{Code: SADBadFlash}
	}

	if p.bb.Test(bootbits.RecoveryStartInProgress) {
		p.bb.Clear(bootbits.RecoveryStartInProgress)
		return 0, &SADError{Code: SADCantLoadFW}
	}

	forceRecovery, err := p.forceRecoveryCondition()
	if err != nil {
		return 0, err
	}
	if forceRecovery {
		if err := p.doSwitchToRecovery(); err != nil {
			return 0, err
		}
	}

	if p.board.Watchdog.CheckResetFlag() || p.bb.Test(bootbits.SoftwareFailureOccurred) {
		p.bb.Clear(bootbits.SoftwareFailureOccurred)
		if p.fwStrikes.ObserveFailure() {
			if err := p.doSwitchToRecovery(); err != nil {
				return 0, err
			}
		}
	} else {
		p.fwStrikes.Clear()
		if err := p.checkUpdateFW(); err != nil {
			return 0, err
		}
	}

	tripped, err := p.rl.ObserveAndIncrement()
	if err != nil {
		return 0, &SADError{Code: SADCorruptCounter}
	}
	if tripped {
		return 0, &SADError{Code: SADResetLoop}
	}

	p.board.Watchdog.Start()
	return p.cfg.FirmwareBase, nil
}

// forceRecoveryCondition reports whether FORCE_PRF is set, the operator
// is holding UP+BACK for the configured duration, or the firmware slot
// is erased.
func (p *Policy) forceRecoveryCondition() (bool, error) {
	if p.bb.Test(bootbits.ForcePRF) {
		return true, nil
	}
	if hal.ButtonHoldFor(p.board.Buttons, p.board.Delay, forceRecoveryCombo, p.cfg.ForceRecoveryHold, p.cfg.ForceRecoveryPoll) {
		return true, nil
	}
	erased, err := intflash.VectorTableErased(p.board.IntFlash, p.cfg.FirmwareBase)
	if err != nil {
		return false, err
	}
	return erased, nil
}

// doSwitchToRecovery runs switchToRecovery and translates its result into
// Run's error contract.
func (p *Policy) doSwitchToRecovery() error {
	ok, err := p.switchToRecovery()
	if ok {
		return nil
	}
	if errors.Is(err, ErrResetRequested) {
		return ErrResetRequested
	}
	return &SADError{Code: SADCantLoadFW}
}

// switchToRecovery runs the update engine against the recovery slot. Its
// three outcomes per spec §4.8: success (ok=true); strike one or two
// against the recovery SC (ok=false, ErrResetRequested — caller resets
// and retries); strike three (ok=false, the underlying error — caller
// SAD-watches).
func (p *Policy) switchToRecovery() (ok bool, err error) {
	p.bb.Set(bootbits.RecoveryStartInProgress)
	corelog.Info(p.logger, "bootpolicy: switching to recovery")

	outcome, runErr := p.recoveryEngine.Run(p.cfg.RecoverySlotAddr)
	if outcome == update.Success {
		p.bb.Clear(bootbits.RecoveryStartInProgress)
		p.recoveryStrikes.Clear()
		return true, nil
	}

	if p.recoveryStrikes.ObserveFailure() {
		corelog.Error(p.logger, "bootpolicy: recovery struck out", "err", runErr)
		return false, runErr
	}
	return false, ErrResetRequested
}

// checkUpdateFW stages a pending normal-firmware update (spec §4.8).
func (p *Policy) checkUpdateFW() error {
	if !p.bb.Test(bootbits.NewFWAvailable) {
		return nil
	}

	if p.bb.Test(bootbits.NewFWUpdateInProgress) {
		// Previous update was interrupted; we cannot tell whether
		// internal flash survived, so clear intent and boot whatever is
		// there (best-effort).
		p.bb.Clear(bootbits.NewFWAvailable)
		p.bb.Clear(bootbits.NewFWUpdateInProgress)
		return nil
	}

	outcome, err := p.updateEngine.Run(p.cfg.UpdateSlotAddr)
	switch outcome {
	case update.Success:
		p.bb.Clear(bootbits.NewFWAvailable)
		p.bb.Clear(bootbits.NewFWUpdateInProgress)
		p.bb.Set(bootbits.NewFWInstalled)
		return nil
	case update.UntouchedFailure:
		corelog.Error(p.logger, "bootpolicy: update rejected, internal flash untouched", "err", err)
		p.bb.Clear(bootbits.NewFWAvailable)
		p.bb.Clear(bootbits.NewFWUpdateInProgress)
		return nil
	default: // update.ManglingFailure
		corelog.Error(p.logger, "bootpolicy: update mangled internal flash", "err", err)
		p.fwStrikes.ForceSaturated()
		return ErrResetRequested
	}
}

package main

import (
	"fmt"
	"os"

	"github.com/pebbleos/bootcore/bootbits"
	"github.com/pebbleos/bootcore/bootpolicy"
	"github.com/pebbleos/bootcore/config"
	"github.com/pebbleos/bootcore/corelog"
	"github.com/pebbleos/bootcore/extflash"
	"github.com/pebbleos/bootcore/hal"
	"github.com/pebbleos/bootcore/intflash"
	"github.com/pebbleos/bootcore/resetloop"
	"github.com/pebbleos/bootcore/sim"
	"github.com/pebbleos/bootcore/strike"
	"github.com/pebbleos/bootcore/update"
)

// rig bundles a simulated board with every core component wired against
// one board descriptor, for the lifetime of a single pbctl invocation.
type rig struct {
	cfg    config.Board
	board  *hal.Board
	bb     *bootbits.Store
	policy *bootpolicy.Policy
}

func loadBoardConfig(boardPath string) (config.Board, error) {
	if boardPath == "" {
		return config.Board{}, fmt.Errorf("pbctl: --board is required")
	}
	if _, err := os.Stat(boardPath); err != nil {
		return config.Board{}, fmt.Errorf("pbctl: board descriptor: %w", err)
	}
	return config.Load(boardPath)
}

// buildRig loads the board descriptor at boardPath and assembles a fresh
// simulated board plus the policy built from it.
func buildRig(boardPath string, logger corelog.Logger) (*rig, error) {
	cfg, err := loadBoardConfig(boardPath)
	if err != nil {
		return nil, err
	}

	board := sim.NewBoard(sim.BoardOptions{
		ExternalFlashSize:  int(cfg.ExternalFlashSize),
		InternalFlashSize:  int(cfg.InternalFlashSize),
		InternalSectorSize: cfg.InternalSectorSize,
		ExternalFlashSane:  true,
	})

	bb := bootbits.New(board.Retained)
	rl := resetloop.New(bb)
	fwStrikes := strike.NewFWStart(bb)
	recoveryStrikes := strike.NewRecoveryLoad(bb)

	extReader := extflash.New(board.ExtFlash)
	intWriter := intflash.New(board.IntFlash, board.Watchdog, cfg.InternalFlashSize)

	updateEngine := update.New(extReader, intWriter, bb,
		update.WithLayoutBases(cfg.FirmwareBase, cfg.FirmwareBaseOldWorld),
		update.WithLogger(logger),
	)

	policyCfg := bootpolicy.Config{
		FirmwareBase:      cfg.FirmwareBase,
		UpdateSlotAddr:    cfg.UpdateSlotAddr,
		RecoverySlotAddr:  cfg.RecoverySlotAddr,
		ForceRecoveryHold: cfg.ForceRecoveryHold,
		ForceRecoveryPoll: cfg.ForceRecoveryPoll,
	}
	policy := bootpolicy.New(board, bb, rl, fwStrikes, recoveryStrikes, updateEngine, updateEngine, policyCfg,
		bootpolicy.WithLogger(logger),
	)

	return &rig{cfg: cfg, board: board, bb: bb, policy: policy}, nil
}

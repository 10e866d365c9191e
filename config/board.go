package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Board is a board's fixed parameters, loaded from YAML rather than
// compiled in, so one binary can drive the simulator against any board
// profile (spec §3.7).
type Board struct {
	Name string `yaml:"name"`

	// FirmwareBase is FIRMWARE_BASE: the internal-flash address of the
	// normal-firmware slot.
	FirmwareBase uint32 `yaml:"firmware_base"`
	// FirmwareBaseOldWorld is FIRMWARE_BASE_OLD_WORLD, for boards that
	// still recognize a legacy internal-flash layout. Zero if the board
	// never shipped one.
	FirmwareBaseOldWorld uint32 `yaml:"firmware_base_old_world"`
	// FirmwareSlotSize is the size of the normal-firmware slot starting at
	// FirmwareBase; Parse rejects a slot that extends past
	// InternalFlashSize. Staged image sizes are not checked against it.
	FirmwareSlotSize uint32 `yaml:"firmware_slot_size"`

	// InternalFlashSize is the total addressable size of internal flash.
	InternalFlashSize uint32 `yaml:"internal_flash_size"`
	// InternalSectorSize is the erase granularity of internal flash.
	InternalSectorSize uint32 `yaml:"internal_sector_size"`

	// ExternalFlashSize is the total addressable size of external flash.
	ExternalFlashSize uint32 `yaml:"external_flash_size"`
	// ExternalFlashMemoryMapped reports whether the part can be read
	// directly instead of through the chunking buffer.
	ExternalFlashMemoryMapped bool `yaml:"external_flash_memory_mapped"`
	// UpdateSlotAddr is FLASH_REGION_FIRMWARE_SCRATCH_BEGIN: the staged
	// update's descriptor address in external flash.
	UpdateSlotAddr uint32 `yaml:"update_slot_addr"`
	// RecoverySlotAddr is FLASH_REGION_SAFE_FIRMWARE_BEGIN: the recovery
	// image's descriptor address in external flash.
	RecoverySlotAddr uint32 `yaml:"recovery_slot_addr"`

	// ForceRecoveryHold is how long UP+BACK must be held to force
	// recovery.
	ForceRecoveryHold time.Duration `yaml:"force_recovery_hold"`
	// ForceRecoveryPoll is the polling interval used while checking the
	// hold.
	ForceRecoveryPoll time.Duration `yaml:"force_recovery_poll"`

	// RetainedSlots maps the named retained-register slots this board
	// uses to communicate with its running firmware, as read from the
	// descriptor. The core packages do not consult it: they key off the
	// compiled retained.Slot constants.
	RetainedSlots map[string]uint32 `yaml:"retained_slots"`
}

// Load reads and parses a board descriptor from path.
func Load(path string) (Board, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Board{}, fmt.Errorf("config: reading board descriptor %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes a board descriptor from raw YAML bytes.
func Parse(data []byte) (Board, error) {
	var b Board
	if err := yaml.Unmarshal(data, &b); err != nil {
		return Board{}, fmt.Errorf("config: parsing board descriptor: %w", err)
	}
	if err := b.validate(); err != nil {
		return Board{}, err
	}
	return b, nil
}

func (b Board) validate() error {
	if b.Name == "" {
		return fmt.Errorf("config: board descriptor missing required field %q", "name")
	}
	if b.InternalFlashSize == 0 {
		return fmt.Errorf("config: board %s: internal_flash_size must be nonzero", b.Name)
	}
	if b.InternalSectorSize == 0 {
		return fmt.Errorf("config: board %s: internal_sector_size must be nonzero", b.Name)
	}
	if b.FirmwareBase+b.FirmwareSlotSize > b.InternalFlashSize {
		return fmt.Errorf("config: board %s: firmware slot [0x%08X, 0x%08X) exceeds internal flash size 0x%08X",
			b.Name, b.FirmwareBase, b.FirmwareBase+b.FirmwareSlotSize, b.InternalFlashSize)
	}
	return nil
}

package retained

// Slot identifies one 32-bit retained-register word. The specific ids are
// an implementation constant, not a wire-visible contract (spec §3.1) —
// only the BootBit slot id and bit layout are a compatibility point with
// running firmware (spec §6.1).
type Slot uint32

const (
	// SlotBootBit holds the 32-bit BootBit bitfield (see package bootbits).
	SlotBootBit Slot = iota

	// SlotBootloaderVersion holds a monotonic timestamp of the installed
	// bootloader. Neither bootbits nor bootpolicy writes this slot.
	SlotBootloaderVersion

	// SlotStuckButton holds 4 bytes packed into one word, one saturating
	// 8-bit stuck-press counter per button.
	SlotStuckButton

	// SlotRebootReason0..SlotRebootReason5 carry the last fatal event for
	// telemetry. The core only needs to not clobber these; populating
	// them is a running-firmware concern (spec §9).
	SlotRebootReason0
	SlotRebootReason1
	SlotRebootReason2
	SlotRebootReason3
	SlotRebootReason4
	SlotRebootReason5

	// slotCRCGuard is the hidden slot holding the guard CRC for
	// CRCStore.Init and is never exposed through Read/Write.
	slotCRCGuard

	// numSlots bounds the backing array. Keep this last.
	numSlots
)

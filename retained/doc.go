// Package retained implements the retained-register store (RR): a small
// word-addressed array of 32-bit slots that survives reset and shallow
// sleep but not battery removal.
//
// # Overview
//
// The bootloader uses a fixed enumeration of slot ids (Slot). The store
// itself is a hal.RetainedStore; this package supplies the CRC-guarded
// variant described in spec §4.1 for boards whose retained memory is a
// linker-placed SRAM region rather than a dedicated backup-register
// peripheral, plus the Slot enumeration every other package keys off of.
//
// # Usage
//
//	store := retained.NewCRCStore() // zeroed in-memory backing words
//	store.Init()                    // recomputes guard CRC, zeroes on mismatch
//	store.Write(uint32(retained.SlotBootBit), 0)
package retained

// Package intflash implements the internal-flash writer (IF): sector
// erase and byte programming of the MCU's own flash, the destination of
// every firmware update (spec §3.4, §4.7). The erase/write progress loop
// is grounded on the row-by-row programming loop in
// bootloader.Programmer.Program, generalized from USB rows to flash
// sectors.
package intflash

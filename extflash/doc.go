// Package extflash implements the external-flash reader (XF): byte
// addressable reads from the staging and recovery regions, through a
// static chunking buffer when the underlying part is not memory-mapped
// (spec §4.7's chunking-buffer edge case).
package extflash

// Package corelog defines the small logging interface shared by update,
// bootpolicy, and the operator CLI. It is identical in shape to
// bootloader.Logger from the teacher package: Debug/Info/Error taking a
// message and optional key-value pairs, with a nil Logger silencing
// output entirely rather than panicking.
package corelog

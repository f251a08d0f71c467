/*
Copyright 2024 Tim St. Pierre
*/

// Package encoder turns panel commands into the byte frames the panel
// firmware expects.
//
// A frame is the start byte 0xFF, one command code, a fixed number of
// payload bytes for that command, and a trailing checksum:
//
//	RawDisplay        ff 80 <80 bytes line1> <80 bytes line2> cs
//	ButtonControl     ff b0 id 14 state cs
//	Scroll            ff 88 mode 0a 01 cs
//	LampTest          ff 54 f0 32 32 cs
//	SoftReset         ff 00 cs
//	JumpToBootloader  ff 30 cs
//	DisplayVersion    ff 50 cs
//
// Everything here is pure. Each call returns a new Frame and is safe for
// concurrent use. Sending frames is the job of the panel package.
package encoder

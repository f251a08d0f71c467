/*
Copyright 2024 Tim St. Pierre
Checksum used by the panel firmware to accept or reject a frame
*/
package encoder

import (
	"fmt"
)

// Checksum returns the trailing checksum byte for data.
//
// The running sum folds every carry back into the low byte as soon as it
// happens, so each overflow adds exactly one. The result is the two's
// complement of the final sum. data must not be empty.
func Checksum(data []byte) byte {
	if len(data) == 0 {
		panic(ErrEmptyInput)
	}
	var acc uint16
	for _, b := range data {
		acc += uint16(b)
		if acc > 0xFF {
			acc = acc - 0x100 + 1
		}
	}
	return byte((0x100 - acc) & 0xFF)
}

// AppendChecksum returns a new frame holding data followed by its checksum.
// data is left untouched.
func AppendChecksum(data []byte) Frame {
	sum := Checksum(data)
	f := make(Frame, len(data), len(data)+1)
	copy(f, data)
	return append(f, sum)
}

// Verify checks that frame starts with the start byte and ends with the
// checksum of everything before it.
func Verify(frame []byte) error {
	if len(frame) < 2 {
		return fmt.Errorf("%w: %d bytes", ErrMalformedFrame, len(frame))
	}
	if frame[0] != StartByte {
		return fmt.Errorf("%w: start byte 0x%02x", ErrMalformedFrame, frame[0])
	}
	last := len(frame) - 1
	if want := Checksum(frame[:last]); frame[last] != want {
		return fmt.Errorf("%w: got 0x%02x want 0x%02x", ErrBadChecksum, frame[last], want)
	}
	return nil
}

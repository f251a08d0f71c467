/*
Copyright 2024 Tim St. Pierre
Errors returned by the frame encoder
*/
package encoder

import "errors"

var (
	// ErrInvalidParameter is returned when a command parameter does not fit in one byte.
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrEmptyInput is the panic value of Checksum when called with no bytes.
	ErrEmptyInput = errors.New("checksum of empty input")

	ErrBadChecksum    = errors.New("bad checksum")
	ErrMalformedFrame = errors.New("malformed frame")
)

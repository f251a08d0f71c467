/*
Copyright 2024 Tim St. Pierre
Options for the I2C character-display panel
*/
package panel

import (
	"errors"
	"time"
)

type Opts struct {
	// The I²C slave address
	I2CAddr uint16
	// How many times a failed frame write is retried
	Retries    int
	RetryDelay time.Duration
	// Pause after each frame so the firmware can process it
	FrameDelay time.Duration
	// Check every frame's checksum before it goes on the wire
	VerifyFrames bool
}

var DefaultOpts = Opts{
	I2CAddr:      0x20,
	Retries:      2,
	RetryDelay:   10 * time.Millisecond,
	FrameDelay:   5 * time.Millisecond,
	VerifyFrames: true,
}

func (o *Opts) i2cAddr() (uint16, error) {
	switch {
	case o.I2CAddr == 0:
		// Default address.
		return DefaultOpts.I2CAddr, nil
	case o.I2CAddr >= 0x08 && o.I2CAddr <= 0x77:
		return o.I2CAddr, nil
	default:
		return 0, errors.New("given address is not a 7-bit device address")
	}
}

func (o *Opts) retries() int {
	if o.Retries < 0 {
		return 0
	}
	return o.Retries
}

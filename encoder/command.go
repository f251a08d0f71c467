/*
Copyright 2024 Tim St. Pierre
Commands understood by the panel firmware
*/
package encoder

import (
	"fmt"
	"strconv"
)

// Command is one of RawDisplay, ButtonControl, Scroll, LampTest, SoftReset,
// JumpToBootloader or DisplayVersion. The set is closed.
type Command interface {
	Code() byte
	command()
}

type RawDisplay struct {
	Line1 string
	Line2 string
}

type ButtonControl struct {
	ButtonID byte
	State    byte
}

type Scroll struct {
	Mode byte
}

type LampTest struct{}

type SoftReset struct{}

type JumpToBootloader struct{}

type DisplayVersion struct{}

func (RawDisplay) Code() byte       { return CodeRawDisplay }
func (ButtonControl) Code() byte    { return CodeButtonControl }
func (Scroll) Code() byte           { return CodeScroll }
func (LampTest) Code() byte         { return CodeLampTest }
func (SoftReset) Code() byte        { return CodeSoftReset }
func (JumpToBootloader) Code() byte { return CodeJumpToBootloader }
func (DisplayVersion) Code() byte   { return CodeDisplayVersion }

func (RawDisplay) command()       {}
func (ButtonControl) command()    {}
func (Scroll) command()           {}
func (LampTest) command()         {}
func (SoftReset) command()        {}
func (JumpToBootloader) command() {}
func (DisplayVersion) command()   {}

// Encode builds the frame for cmd. A nil cmd returns nil.
func Encode(cmd Command) Frame {
	switch c := cmd.(type) {
	case RawDisplay:
		return RawDisplayFrame(c.Line1, c.Line2)
	case ButtonControl:
		return ButtonControlFrame(c.ButtonID, c.State)
	case Scroll:
		return ScrollFrame(c.Mode)
	case LampTest:
		return LampTestFrame()
	case SoftReset:
		return SoftResetFrame()
	case JumpToBootloader:
		return JumpToBootloaderFrame()
	case DisplayVersion:
		return DisplayVersionFrame()
	default:
		return nil
	}
}

// NewButtonControl validates id and state before building the command.
func NewButtonControl(id, state int) (ButtonControl, error) {
	b, err := toByte("button id", id)
	if err != nil {
		return ButtonControl{}, err
	}
	s, err := toByte("button state", state)
	if err != nil {
		return ButtonControl{}, err
	}
	return ButtonControl{ButtonID: b, State: s}, nil
}

func NewScroll(mode int) (Scroll, error) {
	m, err := toByte("scroll mode", mode)
	if err != nil {
		return Scroll{}, err
	}
	return Scroll{Mode: m}, nil
}

// ParseByte parses a decimal, 0x hex, 0o octal or 0b binary value in 0-255.
func ParseByte(name, s string) (byte, error) {
	v, err := strconv.ParseInt(s, 0, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s %q is not a number", ErrInvalidParameter, name, s)
	}
	if v < 0 || v > 0xFF {
		return 0, fmt.Errorf("%w: %s %s out of range 0-255", ErrInvalidParameter, name, s)
	}
	return byte(v), nil
}

func toByte(name string, v int) (byte, error) {
	if v < 0 || v > 0xFF {
		return 0, fmt.Errorf("%w: %s %d out of range 0-255", ErrInvalidParameter, name, v)
	}
	return byte(v), nil
}

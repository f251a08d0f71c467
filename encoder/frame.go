/*
Copyright 2024 Tim St. Pierre
Frame layouts for the I2C character-display panel
*/
package encoder

import (
	"encoding/hex"
	"strings"
)

const (
	// Every frame starts with this byte
	StartByte = 0xFF

	// Command codes
	CodeSoftReset        = 0x00
	CodeJumpToBootloader = 0x30
	CodeDisplayVersion   = 0x50
	CodeLampTest         = 0x54
	CodeRawDisplay       = 0x80
	CodeScroll           = 0x88
	CodeButtonControl    = 0xB0

	// Fixed payload bytes
	buttonControlMarker = 0x14
	scrollRate          = 0x0A
	scrollRepeat        = 0x01
	lampTestPattern     = 0xF0
	lampTestOnTime      = 0x32
	lampTestOffTime     = 0x32

	// Each display line is packed to exactly this many bytes
	LineWidth = 80
	padByte   = ' '

	RawDisplayFrameLen = 2 + 2*LineWidth + 1
)

// Frame is one encoded command, start byte through checksum.
type Frame []byte

// String renders the frame as dash separated hex, e.g. "ff-00-01".
func (f Frame) String() string {
	hexDigits := hex.EncodeToString(f)
	var builder strings.Builder
	for i, r := range hexDigits {
		if i > 0 && i%2 == 0 {
			builder.WriteString("-")
		}
		builder.WriteRune(r)
	}
	return builder.String()
}

// FrameLen returns the total frame length for a command code.
func FrameLen(code byte) (int, bool) {
	switch code {
	case CodeRawDisplay:
		return RawDisplayFrameLen, true
	case CodeButtonControl, CodeScroll, CodeLampTest:
		return 6, true
	case CodeSoftReset, CodeJumpToBootloader, CodeDisplayVersion:
		return 3, true
	default:
		return 0, false
	}
}

// PackLine cuts line to LineWidth bytes or pads it on the right with spaces.
// Bytes are taken as-is, no character encoding is applied.
func PackLine(line string) []byte {
	b := make([]byte, LineWidth)
	n := copy(b, line)
	for i := n; i < LineWidth; i++ {
		b[i] = padByte
	}
	return b
}

// Truncated reports whether PackLine drops any bytes of line.
func Truncated(line string) bool {
	return len(line) > LineWidth
}

// RawDisplayFrame writes line1 and line2 to the two display rows.
//
//	[0]       0xFF  start byte
//	[1]       0x80  command code
//	[2-81]    line1 packed to 80 bytes
//	[82-161]  line2 packed to 80 bytes
//	[162]     checksum
func RawDisplayFrame(line1, line2 string) Frame {
	b := make([]byte, 0, RawDisplayFrameLen-1)
	b = append(b, StartByte, CodeRawDisplay)
	b = append(b, PackLine(line1)...)
	b = append(b, PackLine(line2)...)
	return AppendChecksum(b)
}

// ButtonControlFrame sets the state of one button.
func ButtonControlFrame(buttonID, state byte) Frame {
	return AppendChecksum([]byte{StartByte, CodeButtonControl, buttonID, buttonControlMarker, state})
}

// ScrollFrame selects the scroll mode.
func ScrollFrame(mode byte) Frame {
	return AppendChecksum([]byte{StartByte, CodeScroll, mode, scrollRate, scrollRepeat})
}

func LampTestFrame() Frame {
	return AppendChecksum([]byte{StartByte, CodeLampTest, lampTestPattern, lampTestOnTime, lampTestOffTime})
}

func SoftResetFrame() Frame {
	return AppendChecksum([]byte{StartByte, CodeSoftReset})
}

func JumpToBootloaderFrame() Frame {
	return AppendChecksum([]byte{StartByte, CodeJumpToBootloader})
}

// DisplayVersionFrame asks the panel to report its firmware version.
func DisplayVersionFrame() Frame {
	return AppendChecksum([]byte{StartByte, CodeDisplayVersion})
}

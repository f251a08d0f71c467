/*
Copyright 2024 Tim St. Pierre
Drives the two line character-display panel over I2C
Frames are built by the encoder package, this file only puts them on the bus
*/
package panel

import (
	"bytes"
	"errors"
	"fmt"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/i2c"

	"github.com/tstpierre-tc/panel/encoder"
)

type Dev struct {
	mu   sync.Mutex
	c    conn.Conn
	opts Opts
}

func (d *Dev) String() string {
	return fmt.Sprintf("panel{%s}", d.c)
}

// NewI2C returns a new device that communicates over I²C
//
// Use default options if nil is used.
func NewI2C(b i2c.Bus, opts *Opts) (*Dev, error) {
	if opts == nil {
		opts = &DefaultOpts
	}
	addr, err := opts.i2cAddr()
	if err != nil {
		return nil, fmt.Errorf("panel %x: %v", opts.I2CAddr, err)
	}
	return makeDev(&i2c.Dev{Bus: b, Addr: addr}, opts), nil
}

// New returns a device that writes frames to an already addressed connection,
// such as a serial bridge.
func New(c conn.Conn, opts *Opts) (*Dev, error) {
	if c == nil {
		return nil, errors.New("panel: nil connection")
	}
	if opts == nil {
		opts = &DefaultOpts
	}
	return makeDev(c, opts), nil
}

func makeDev(c conn.Conn, opts *Opts) *Dev {
	return &Dev{c: c, opts: *opts}
}

// Halt blanks both lines.
func (d *Dev) Halt() error {
	return d.Clear()
}

func (d *Dev) Clear() error {
	return d.WriteLines("", "")
}

// WriteLines shows line1 and line2. Lines longer than the panel are cut.
func (d *Dev) WriteLines(line1, line2 string) error {
	return d.Send(encoder.RawDisplay{Line1: line1, Line2: line2})
}

// Write shows buf with the first newline splitting the two lines.
func (d *Dev) Write(buf []byte) (int, error) {
	line1, line2, _ := bytes.Cut(buf, []byte{'\n'})
	line2 = bytes.TrimSuffix(line2, []byte{'\n'})
	if err := d.WriteLines(string(line1), string(line2)); err != nil {
		return 0, err
	}
	return len(buf), nil
}

func (d *Dev) SetButton(id, state byte) error {
	return d.Send(encoder.ButtonControl{ButtonID: id, State: state})
}

func (d *Dev) SetScroll(mode byte) error {
	return d.Send(encoder.Scroll{Mode: mode})
}

func (d *Dev) LampTest() error {
	return d.Send(encoder.LampTest{})
}

func (d *Dev) SoftReset() error {
	return d.Send(encoder.SoftReset{})
}

// JumpToBootloader leaves the application firmware. The panel stops
// accepting display frames until it is reflashed or power cycled.
func (d *Dev) JumpToBootloader() error {
	return d.Send(encoder.JumpToBootloader{})
}

// RequestVersion asks the panel to show its firmware version. The reply is
// not read back.
func (d *Dev) RequestVersion() error {
	return d.Send(encoder.DisplayVersion{})
}

// Send encodes cmd and writes it as a single frame.
func (d *Dev) Send(cmd encoder.Command) error {
	f := encoder.Encode(cmd)
	if f == nil {
		return fmt.Errorf("panel: %w: unknown command %T", encoder.ErrInvalidParameter, cmd)
	}
	if rd, ok := cmd.(encoder.RawDisplay); ok {
		warnTruncated(1, rd.Line1)
		warnTruncated(2, rd.Line2)
	}
	if d.opts.VerifyFrames {
		if err := encoder.Verify(f); err != nil {
			return fmt.Errorf("panel: refusing to send frame %s: %w", f, err)
		}
	}
	return d.write(f)
}

func (d *Dev) write(f encoder.Frame) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	attempts := d.opts.retries() + 1
	var err error
	for i := 0; i < attempts; i++ {
		if i > 0 {
			time.Sleep(d.opts.RetryDelay)
		}
		log.Debugf("Writing frame %s", f)
		if err = d.c.Tx(f, nil); err == nil {
			time.Sleep(d.opts.FrameDelay)
			return nil
		}
		log.Warnf("panel: write attempt %d/%d failed: %v", i+1, attempts, err)
	}
	return fmt.Errorf("panel %s: write failed after %d attempts: %w", d.c, attempts, err)
}

func warnTruncated(n int, line string) {
	if encoder.Truncated(line) {
		log.Warnf("panel: line %d is %d bytes, only the first %d are shown", n, len(line), encoder.LineWidth)
	}
}

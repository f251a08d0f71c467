package panel

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2ctest"

	"github.com/tstpierre-tc/panel/encoder"
)

var testOpts = Opts{I2CAddr: 0x21, Retries: 2}

func newTestDev(t *testing.T) (*Dev, *i2ctest.Record) {
	t.Helper()
	bus := &i2ctest.Record{}
	opts := testOpts
	d, err := NewI2C(bus, &opts)
	require.NoError(t, err)
	return d, bus
}

// flakyBus fails the first fails transactions and records the rest.
type flakyBus struct {
	i2ctest.Record
	fails int
	calls int
}

func (f *flakyBus) Tx(addr uint16, w, r []byte) error {
	f.calls++
	if f.calls <= f.fails {
		return errors.New("nack")
	}
	return f.Record.Tx(addr, w, r)
}

func TestNewI2C(t *testing.T) {
	tests := []struct {
		name     string
		addr     uint16
		wantAddr uint16
		wantErr  bool
	}{
		{name: "default", addr: 0, wantAddr: DefaultOpts.I2CAddr},
		{name: "explicit", addr: 0x3C, wantAddr: 0x3C},
		{name: "lowest", addr: 0x08, wantAddr: 0x08},
		{name: "reserved", addr: 0x03, wantErr: true},
		{name: "ten bit", addr: 0x278, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bus := &i2ctest.Record{}
			d, err := NewI2C(bus, &Opts{I2CAddr: tt.addr})
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.NoError(t, d.SoftReset())
			require.Len(t, bus.Ops, 1)
			assert.Equal(t, tt.wantAddr, bus.Ops[0].Addr)
		})
	}
}

func TestNewNilOpts(t *testing.T) {
	bus := &i2ctest.Record{}
	d, err := NewI2C(bus, nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultOpts, d.opts)

	_, err = New(nil, nil)
	assert.Error(t, err)
}

func TestCommands(t *testing.T) {
	tests := []struct {
		name string
		run  func(d *Dev) error
		want []byte
	}{
		{name: "set button", run: func(d *Dev) error { return d.SetButton(0x02, 0x01) }, want: []byte{0xFF, 0xB0, 0x02, 0x14, 0x01, 57}},
		{name: "set scroll", run: func(d *Dev) error { return d.SetScroll(0x23) }, want: []byte{0xFF, 0x88, 0x23, 0x0A, 0x01, 74}},
		{name: "lamp test", run: (*Dev).LampTest, want: []byte{0xFF, 0x54, 240, 50, 50, 87}},
		{name: "soft reset", run: (*Dev).SoftReset, want: []byte{0xFF, 0x00, 1}},
		{name: "bootloader", run: (*Dev).JumpToBootloader, want: []byte{0xFF, 0x30, 208}},
		{name: "version", run: (*Dev).RequestVersion, want: []byte{0xFF, 0x50, 176}},
		{name: "write lines", run: func(d *Dev) error { return d.WriteLines("abcdefg", "1234567890abcd") }, want: encoder.RawDisplayFrame("abcdefg", "1234567890abcd")},
		{name: "clear", run: (*Dev).Clear, want: encoder.RawDisplayFrame("", "")},
		{name: "halt", run: (*Dev).Halt, want: encoder.RawDisplayFrame("", "")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, bus := newTestDev(t)
			require.NoError(t, tt.run(d))
			require.Len(t, bus.Ops, 1)
			assert.Equal(t, uint16(0x21), bus.Ops[0].Addr)
			assert.Equal(t, tt.want, bus.Ops[0].W)
			assert.Empty(t, bus.Ops[0].R)
		})
	}
}

func TestWriteLongLine(t *testing.T) {
	d, bus := newTestDev(t)
	long := strings.Repeat("x", 200)

	require.NoError(t, d.WriteLines(long, "ok"))
	require.Len(t, bus.Ops, 1)
	assert.Len(t, bus.Ops[0].W, encoder.RawDisplayFrameLen)
	assert.Equal(t, []byte(encoder.RawDisplayFrame(long, "ok")), bus.Ops[0].W)
}

func TestWriter(t *testing.T) {
	d, bus := newTestDev(t)

	n, err := fmt.Fprintf(d, "temp %d\nstatus %s\n", 21, "ok")
	require.NoError(t, err)
	assert.Equal(t, len("temp 21\nstatus ok\n"), n)

	n, err = d.Write([]byte("single"))
	require.NoError(t, err)
	assert.Equal(t, 6, n)

	require.Len(t, bus.Ops, 2)
	assert.Equal(t, []byte(encoder.RawDisplayFrame("temp 21", "status ok")), bus.Ops[0].W)
	assert.Equal(t, []byte(encoder.RawDisplayFrame("single", "")), bus.Ops[1].W)
}

func TestSendRetries(t *testing.T) {
	bus := &flakyBus{fails: 2}
	d, err := NewI2C(bus, &Opts{I2CAddr: 0x21, Retries: 2})
	require.NoError(t, err)

	require.NoError(t, d.SoftReset())
	assert.Equal(t, 3, bus.calls)
	require.Len(t, bus.Ops, 1)
	assert.Equal(t, []byte{0xFF, 0x00, 1}, bus.Ops[0].W)
}

func TestSendGivesUp(t *testing.T) {
	bus := &flakyBus{fails: 10}
	d, err := NewI2C(bus, &Opts{I2CAddr: 0x21, Retries: 1})
	require.NoError(t, err)

	err = d.LampTest()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "after 2 attempts")
	assert.Equal(t, 2, bus.calls)
	assert.Empty(t, bus.Ops)
}

func TestSendNegativeRetries(t *testing.T) {
	bus := &flakyBus{fails: 1}
	d, err := NewI2C(bus, &Opts{I2CAddr: 0x21, Retries: -5})
	require.NoError(t, err)

	assert.Error(t, d.SoftReset())
	assert.Equal(t, 1, bus.calls)
}

func TestSendNilCommand(t *testing.T) {
	d, bus := newTestDev(t)

	err := d.Send(nil)
	assert.ErrorIs(t, err, encoder.ErrInvalidParameter)
	assert.Empty(t, bus.Ops)
}

func TestNewConn(t *testing.T) {
	bus := &i2ctest.Record{}
	d, err := New(&i2c.Dev{Bus: bus, Addr: 0x50}, &Opts{VerifyFrames: true})
	require.NoError(t, err)

	require.NoError(t, d.Send(encoder.Scroll{Mode: 0}))
	require.Len(t, bus.Ops, 1)
	assert.Equal(t, uint16(0x50), bus.Ops[0].Addr)
	assert.Equal(t, []byte{0xFF, 0x88, 0x00, 0x0A, 0x01, 109}, bus.Ops[0].W)
	assert.Contains(t, d.String(), "panel{")
}

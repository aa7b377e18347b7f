// Package spibus connects an ST7735R over 4-wire SPI.
//
// SCK, MOSI and CS belong to the SPI controller; D/C, reset and backlight
// are GPIOs. Bytes written between BeginTransfer and EndTransfer are
// buffered and sent as few transactions as the D/C changes allow.
package spibus

import (
	"errors"
	"fmt"
	"time"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
)

// DefaultFreq is the write clock used when Opts.Freq is zero. The
// controller's write cycle is 66ns, about 15MHz.
const DefaultFreq = 15 * physic.MegaHertz

// defaultMaxTxSize is used when the connection does not report a limit.
const defaultMaxTxSize = 4096

// Opts is the configuration for the SPI bus.
type Opts struct {
	Freq physic.Frequency // Default DefaultFreq.
	RST  gpio.PinOut      // Reset, active low. Optional.
	LED  gpio.PinOut      // Backlight, active high. Optional.
}

// Bus is a st7735r.Bus over a periph SPI port.
type Bus struct {
	c   conn.Conn
	dc  gpio.PinOut
	rst gpio.PinOut
	led gpio.PinOut

	maxTxSize int
	buf       []byte

	sleep func(time.Duration)
}

// New connects to p in mode 0 and drives dc low. The backlight, if any,
// starts off.
func New(p spi.Port, dc gpio.PinOut, opts *Opts) (*Bus, error) {
	if dc == nil {
		return nil, errors.New("spibus: dc pin is required")
	}
	o := Opts{}
	if opts != nil {
		o = *opts
	}
	if o.Freq == 0 {
		o.Freq = DefaultFreq
	}
	c, err := p.Connect(o.Freq, spi.Mode0, 8)
	if err != nil {
		return nil, fmt.Errorf("spibus: connect: %w", err)
	}

	maxTxSize := 0
	if limits, ok := c.(conn.Limits); ok {
		maxTxSize = limits.MaxTxSize()
	}
	if maxTxSize <= 0 {
		maxTxSize = defaultMaxTxSize
	}

	b := &Bus{
		c:         c,
		dc:        dc,
		rst:       o.RST,
		led:       o.LED,
		maxTxSize: maxTxSize,
		buf:       make([]byte, 0, maxTxSize),
		sleep:     time.Sleep,
	}
	if err := b.dc.Out(gpio.Low); err != nil {
		return nil, fmt.Errorf("spibus: dc: %w", err)
	}
	if err := b.SetBacklight(false); err != nil {
		return nil, err
	}
	if b.rst != nil {
		if err := b.rst.Out(gpio.High); err != nil {
			return nil, fmt.Errorf("spibus: rst: %w", err)
		}
	}
	return b, nil
}

func (b *Bus) String() string {
	return fmt.Sprintf("spibus{%s}", b.c)
}

// flush sends the buffered bytes with the current D/C level.
func (b *Bus) flush() error {
	defer func() { b.buf = b.buf[:0] }()
	for w := b.buf; len(w) != 0; {
		n := min(len(w), b.maxTxSize)
		if err := b.c.Tx(w[:n], nil); err != nil {
			return fmt.Errorf("spibus: tx: %w", err)
		}
		w = w[n:]
	}
	return nil
}

func (b *Bus) setDC(l gpio.Level) error {
	if err := b.flush(); err != nil {
		return err
	}
	if err := b.dc.Out(l); err != nil {
		return fmt.Errorf("spibus: dc: %w", err)
	}
	return nil
}

// SetCommandMode drives D/C low.
func (b *Bus) SetCommandMode() error {
	return b.setDC(gpio.Low)
}

// SetDataMode drives D/C high.
func (b *Bus) SetDataMode() error {
	return b.setDC(gpio.High)
}

// BeginTransfer starts buffering. Chip select is asserted by the SPI
// controller for each transaction.
func (b *Bus) BeginTransfer() error {
	return nil
}

// EndTransfer sends whatever is buffered.
func (b *Bus) EndTransfer() error {
	return b.flush()
}

// WriteByte buffers c.
func (b *Bus) WriteByte(c byte) error {
	b.buf = append(b.buf, c)
	if len(b.buf) >= b.maxTxSize {
		return b.flush()
	}
	return nil
}

// ReadByte clocks one byte in on MISO. Modules that do not wire MISO read
// garbage.
func (b *Bus) ReadByte() (byte, error) {
	if err := b.flush(); err != nil {
		return 0, err
	}
	var r [1]byte
	if err := b.c.Tx([]byte{0}, r[:]); err != nil {
		return 0, fmt.Errorf("spibus: rx: %w", err)
	}
	return r[0], nil
}

// Delay sleeps for d.
func (b *Bus) Delay(d time.Duration) {
	b.sleep(d)
}

// SetBacklight drives the LED pin. It is a no-op without one.
func (b *Bus) SetBacklight(on bool) error {
	if b.led == nil {
		return nil
	}
	if err := b.led.Out(gpio.Level(on)); err != nil {
		return fmt.Errorf("spibus: led: %w", err)
	}
	return nil
}

// HardwareReset pulses RST low for 100ms and waits another 100ms. It is a
// no-op without a reset pin.
func (b *Bus) HardwareReset() error {
	if b.rst == nil {
		return nil
	}
	if err := b.rst.Out(gpio.Low); err != nil {
		return fmt.Errorf("spibus: failed to pull RST low: %w", err)
	}
	b.sleep(100 * time.Millisecond)
	if err := b.rst.Out(gpio.High); err != nil {
		return fmt.Errorf("spibus: failed to pull RST high: %w", err)
	}
	b.sleep(100 * time.Millisecond)
	return nil
}

// Package tinybus connects an ST7735R to a TinyGo SPI controller.
//
// The bus is a drivers.SPI; D/C, reset and backlight are any pin with a
// Set(bool) method, which machine.Pin satisfies. Nothing here imports
// machine, so the package builds and tests with the standard toolchain.
package tinybus

import (
	"errors"
	"fmt"
	"time"

	"tinygo.org/x/drivers"
)

// Pin is an output line.
type Pin interface {
	Set(high bool)
}

// Config holds the optional lines of the bus.
type Config struct {
	RST Pin // Reset, active low
	LED Pin // Backlight, active high

	// BufferSize bounds a single Tx. Default 512.
	BufferSize int
}

// Bus is a st7735r.Bus over a TinyGo SPI.
type Bus struct {
	spi drivers.SPI
	dc  Pin
	rst Pin
	led Pin

	buf []byte

	sleep func(time.Duration)
}

// New returns a Bus with D/C low, reset released and the backlight off.
func New(spi drivers.SPI, dc Pin, cfg Config) (*Bus, error) {
	if spi == nil || dc == nil {
		return nil, errors.New("tinybus: spi and dc are required")
	}
	if cfg.BufferSize <= 0 {
		cfg.BufferSize = 512
	}
	b := &Bus{
		spi:   spi,
		dc:    dc,
		rst:   cfg.RST,
		led:   cfg.LED,
		buf:   make([]byte, 0, cfg.BufferSize),
		sleep: time.Sleep,
	}
	dc.Set(false)
	if b.rst != nil {
		b.rst.Set(true)
	}
	if b.led != nil {
		b.led.Set(false)
	}
	return b, nil
}

func (b *Bus) flush() error {
	if len(b.buf) == 0 {
		return nil
	}
	err := b.spi.Tx(b.buf, nil)
	b.buf = b.buf[:0]
	if err != nil {
		return fmt.Errorf("tinybus: tx: %w", err)
	}
	return nil
}

// SetCommandMode drives D/C low.
func (b *Bus) SetCommandMode() error {
	if err := b.flush(); err != nil {
		return err
	}
	b.dc.Set(false)
	return nil
}

// SetDataMode drives D/C high.
func (b *Bus) SetDataMode() error {
	if err := b.flush(); err != nil {
		return err
	}
	b.dc.Set(true)
	return nil
}

// BeginTransfer is a no-op; CS is owned by the controller or tied low.
func (b *Bus) BeginTransfer() error {
	return nil
}

// EndTransfer sends the buffered bytes.
func (b *Bus) EndTransfer() error {
	return b.flush()
}

// WriteByte buffers c and sends the buffer once it is full.
func (b *Bus) WriteByte(c byte) error {
	b.buf = append(b.buf, c)
	if len(b.buf) == cap(b.buf) {
		return b.flush()
	}
	return nil
}

// ReadByte clocks in one byte.
func (b *Bus) ReadByte() (byte, error) {
	if err := b.flush(); err != nil {
		return 0, err
	}
	c, err := b.spi.Transfer(0)
	if err != nil {
		return 0, fmt.Errorf("tinybus: rx: %w", err)
	}
	return c, nil
}

// Delay sleeps for d.
func (b *Bus) Delay(d time.Duration) {
	b.sleep(d)
}

// SetBacklight drives LED if present.
func (b *Bus) SetBacklight(on bool) error {
	if b.led != nil {
		b.led.Set(on)
	}
	return nil
}

// HardwareReset pulses RST low for 100ms and waits another 100ms.
func (b *Bus) HardwareReset() error {
	if b.rst == nil {
		return nil
	}
	b.rst.Set(false)
	b.sleep(100 * time.Millisecond)
	b.rst.Set(true)
	b.sleep(100 * time.Millisecond)
	return nil
}

// Package parallel drives an ST7735R over its 8-bit 8080 interface using
// plain GPIO lines.
//
// Writes latch on the rising edge of WR, reads sample while RD is low. Only
// data lines whose level changes are toggled, which matters on hosts where
// each GPIO write is a syscall.
package parallel

import (
	"errors"
	"fmt"
	"time"

	"periph.io/x/conn/v3/gpio"
)

// Pins lists the lines of the interface. RST and LED are optional.
type Pins struct {
	CS  gpio.PinOut // Chip select, active low
	DC  gpio.PinOut // Data/command, low for commands
	WR  gpio.PinOut // Write strobe, active low
	RD  gpio.PinOut // Read strobe, active low
	RST gpio.PinOut // Reset, active low
	LED gpio.PinOut // Backlight, active high
	D   [8]gpio.PinIO
}

// Bus is a st7735r.Bus over GPIO.
type Bus struct {
	p Pins

	// Last byte driven on D0-D7, -1 when unknown.
	last int

	sleep func(time.Duration)
}

// New puts every line in its idle state: CS, WR and RD high, DC low, reset
// released and backlight off.
func New(p *Pins) (*Bus, error) {
	if p == nil || p.CS == nil || p.DC == nil || p.WR == nil || p.RD == nil {
		return nil, errors.New("parallel: CS, DC, WR and RD are required")
	}
	for i, d := range p.D {
		if d == nil {
			return nil, fmt.Errorf("parallel: D%d is required", i)
		}
	}
	b := &Bus{p: *p, last: -1, sleep: time.Sleep}
	idle := []struct {
		name string
		pin  gpio.PinOut
		l    gpio.Level
	}{
		{"CS", p.CS, gpio.High},
		{"WR", p.WR, gpio.High},
		{"RD", p.RD, gpio.High},
		{"DC", p.DC, gpio.Low},
		{"RST", p.RST, gpio.High},
		{"LED", p.LED, gpio.Low},
	}
	for _, s := range idle {
		if s.pin == nil {
			continue
		}
		if err := s.pin.Out(s.l); err != nil {
			return nil, fmt.Errorf("parallel: %s: %w", s.name, err)
		}
	}
	return b, nil
}

func (b *Bus) String() string {
	return fmt.Sprintf("parallel{CS:%s DC:%s WR:%s RD:%s}", b.p.CS, b.p.DC, b.p.WR, b.p.RD)
}

func out(name string, p gpio.PinOut, l gpio.Level) error {
	if err := p.Out(l); err != nil {
		return fmt.Errorf("parallel: %s: %w", name, err)
	}
	return nil
}

// SetCommandMode drives DC low.
func (b *Bus) SetCommandMode() error {
	return out("DC", b.p.DC, gpio.Low)
}

// SetDataMode drives DC high.
func (b *Bus) SetDataMode() error {
	return out("DC", b.p.DC, gpio.High)
}

// BeginTransfer asserts CS.
func (b *Bus) BeginTransfer() error {
	return out("CS", b.p.CS, gpio.Low)
}

// EndTransfer releases CS.
func (b *Bus) EndTransfer() error {
	return out("CS", b.p.CS, gpio.High)
}

// WriteByte drives c on D0-D7 and strobes WR. WR is released even when a
// data line fails.
func (b *Bus) WriteByte(c byte) (err error) {
	if err := out("WR", b.p.WR, gpio.Low); err != nil {
		return err
	}
	defer func() {
		if e := out("WR", b.p.WR, gpio.High); err == nil {
			err = e
		}
	}()
	for i, d := range b.p.D {
		bit := c>>i&1 != 0
		if b.last >= 0 && (b.last>>i&1 != 0) == bit {
			continue
		}
		if err := d.Out(gpio.Level(bit)); err != nil {
			b.last = -1
			return fmt.Errorf("parallel: D%d: %w", i, err)
		}
	}
	b.last = int(c)
	return nil
}

// ReadByte turns D0-D7 into inputs and samples them while RD is low. The
// next WriteByte turns them back into outputs.
func (b *Bus) ReadByte() (byte, error) {
	b.last = -1
	for i, d := range b.p.D {
		if err := d.In(gpio.PullNoChange, gpio.NoEdge); err != nil {
			return 0, fmt.Errorf("parallel: D%d: %w", i, err)
		}
	}
	if err := out("RD", b.p.RD, gpio.Low); err != nil {
		return 0, err
	}
	var c byte
	for i, d := range b.p.D {
		if d.Read() == gpio.High {
			c |= 1 << i
		}
	}
	return c, out("RD", b.p.RD, gpio.High)
}

// Delay sleeps for d.
func (b *Bus) Delay(d time.Duration) {
	b.sleep(d)
}

// SetBacklight drives LED. It is a no-op without one.
func (b *Bus) SetBacklight(on bool) error {
	if b.p.LED == nil {
		return nil
	}
	return out("LED", b.p.LED, gpio.Level(on))
}

// HardwareReset pulses RST low for 100ms and waits another 100ms. It is a
// no-op without a reset line.
func (b *Bus) HardwareReset() error {
	if b.p.RST == nil {
		return nil
	}
	if err := out("RST", b.p.RST, gpio.Low); err != nil {
		return err
	}
	b.sleep(100 * time.Millisecond)
	if err := out("RST", b.p.RST, gpio.High); err != nil {
		return err
	}
	b.sleep(100 * time.Millisecond)
	return nil
}

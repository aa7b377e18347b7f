package parallel

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpiotest"
)

// strobe samples D0-D7 on each rising edge of WR.
type strobe struct {
	*gpiotest.Pin
	data    []*gpiotest.Pin
	latched []byte
}

func (s *strobe) Out(l gpio.Level) error {
	if l == gpio.High && s.Pin.Read() == gpio.Low {
		var c byte
		for i, d := range s.data {
			if d.Read() == gpio.High {
				c |= 1 << i
			}
		}
		s.latched = append(s.latched, c)
	}
	return s.Pin.Out(l)
}

// counting counts level changes driven on a pin.
type counting struct {
	*gpiotest.Pin
	writes int
}

func (c *counting) Out(l gpio.Level) error {
	c.writes++
	return c.Pin.Out(l)
}

// broken fails every write.
type broken struct {
	*gpiotest.Pin
}

func (b *broken) Out(gpio.Level) error {
	return errors.New("line stuck")
}

type rig struct {
	pins       Pins
	cs, dc, rd *gpiotest.Pin
	rst, led   *gpiotest.Pin
	wr         *strobe
	data       []*gpiotest.Pin
	d0         *counting
}

func newRig() *rig {
	r := &rig{
		cs:  &gpiotest.Pin{N: "CS"},
		dc:  &gpiotest.Pin{N: "DC", L: gpio.High},
		rd:  &gpiotest.Pin{N: "RD"},
		rst: &gpiotest.Pin{N: "RST"},
		led: &gpiotest.Pin{N: "LED", L: gpio.High},
	}
	for i := range 8 {
		r.data = append(r.data, &gpiotest.Pin{N: "D", Num: i})
	}
	r.wr = &strobe{Pin: &gpiotest.Pin{N: "WR", L: gpio.High}, data: r.data}
	r.d0 = &counting{Pin: r.data[0]}
	r.pins = Pins{CS: r.cs, DC: r.dc, WR: r.wr, RD: r.rd, RST: r.rst, LED: r.led}
	r.pins.D[0] = r.d0
	for i := 1; i < 8; i++ {
		r.pins.D[i] = r.data[i]
	}
	return r
}

func newBus(t *testing.T, r *rig) *Bus {
	t.Helper()
	b, err := New(&r.pins)
	if err != nil {
		t.Fatal(err)
	}
	b.sleep = func(time.Duration) {}
	return b
}

func TestNewIdleLevels(t *testing.T) {
	r := newRig()
	newBus(t, r)
	checks := []struct {
		name string
		got  gpio.Level
		want gpio.Level
	}{
		{"CS", r.cs.L, gpio.High},
		{"WR", r.wr.Pin.L, gpio.High},
		{"RD", r.rd.L, gpio.High},
		{"DC", r.dc.L, gpio.Low},
		{"RST", r.rst.L, gpio.High},
		{"LED", r.led.L, gpio.Low},
	}
	for _, c := range checks {
		if c.got != c.want {
			t.Errorf("%s = %v, want %v", c.name, c.got, c.want)
		}
	}
}

func TestNewMissingPins(t *testing.T) {
	if _, err := New(nil); err == nil {
		t.Error("New(nil) should fail")
	}
	r := newRig()
	r.pins.WR = nil
	if _, err := New(&r.pins); err == nil {
		t.Error("New without WR should fail")
	}
	r = newRig()
	r.pins.D[5] = nil
	if _, err := New(&r.pins); err == nil {
		t.Error("New without D5 should fail")
	}
	// RST and LED are optional.
	r = newRig()
	r.pins.RST, r.pins.LED = nil, nil
	b := newBus(t, r)
	if err := b.HardwareReset(); err != nil {
		t.Errorf("HardwareReset without RST = %v", err)
	}
	if err := b.SetBacklight(true); err != nil {
		t.Errorf("SetBacklight without LED = %v", err)
	}
}

func TestWriteBytes(t *testing.T) {
	r := newRig()
	b := newBus(t, r)
	want := []byte{0x00, 0xFF, 0xA5, 0x5A, 0x01, 0x80}
	if err := b.BeginTransfer(); err != nil {
		t.Fatal(err)
	}
	if r.cs.L != gpio.Low {
		t.Error("BeginTransfer did not assert CS")
	}
	for _, c := range want {
		if err := b.WriteByte(c); err != nil {
			t.Fatal(err)
		}
	}
	if err := b.EndTransfer(); err != nil {
		t.Fatal(err)
	}
	if r.cs.L != gpio.High {
		t.Error("EndTransfer did not release CS")
	}
	if !bytes.Equal(r.wr.latched, want) {
		t.Errorf("latched % X, want % X", r.wr.latched, want)
	}
}

func TestWriteSkipsUnchangedLines(t *testing.T) {
	r := newRig()
	b := newBus(t, r)
	for range 4 {
		if err := b.WriteByte(0x01); err != nil {
			t.Fatal(err)
		}
	}
	if r.d0.writes != 1 {
		t.Errorf("D0 driven %d times for a repeated byte, want 1", r.d0.writes)
	}
	if err := b.WriteByte(0x00); err != nil {
		t.Fatal(err)
	}
	if r.d0.writes != 2 {
		t.Errorf("D0 driven %d times, want 2", r.d0.writes)
	}
}

func TestWriteReleasesWROnError(t *testing.T) {
	r := newRig()
	b := newBus(t, r)
	r.pins.D[3] = &broken{Pin: r.data[3]}
	b.p.D[3] = r.pins.D[3]
	if err := b.WriteByte(0xFF); err == nil {
		t.Fatal("WriteByte should fail on a stuck data line")
	}
	if r.wr.Pin.L != gpio.High {
		t.Error("WR left low after a failed write")
	}
	// The next write drives every line again.
	b.p.D[3] = r.data[3]
	if err := b.WriteByte(0x08); err != nil {
		t.Fatal(err)
	}
	if r.data[3].L != gpio.High {
		t.Error("D3 not driven after recovery")
	}
}

func TestDataCommandMode(t *testing.T) {
	r := newRig()
	b := newBus(t, r)
	if err := b.SetDataMode(); err != nil {
		t.Fatal(err)
	}
	if r.dc.L != gpio.High {
		t.Error("SetDataMode left DC low")
	}
	if err := b.SetCommandMode(); err != nil {
		t.Fatal(err)
	}
	if r.dc.L != gpio.Low {
		t.Error("SetCommandMode left DC high")
	}
}

func TestReadByte(t *testing.T) {
	r := newRig()
	b := newBus(t, r)
	if err := b.WriteByte(0xFF); err != nil {
		t.Fatal(err)
	}
	// The panel drives 0x7C.
	for i, d := range r.data {
		d.L = gpio.Level(0x7C>>i&1 != 0)
	}
	got, err := b.ReadByte()
	if err != nil {
		t.Fatal(err)
	}
	if got != 0x7C {
		t.Errorf("ReadByte() = 0x%02X, want 0x7C", got)
	}
	if r.rd.L != gpio.High {
		t.Error("RD not released after read")
	}

	// After a read every line is driven again.
	r.d0.writes = 0
	if err := b.WriteByte(0xFF); err != nil {
		t.Fatal(err)
	}
	if r.d0.writes != 1 {
		t.Error("D0 not driven after a read")
	}
}

func TestHardwareReset(t *testing.T) {
	r := newRig()
	b := newBus(t, r)
	var levels []gpio.Level
	var slept time.Duration
	b.sleep = func(d time.Duration) {
		slept += d
		levels = append(levels, r.rst.L)
	}
	if err := b.HardwareReset(); err != nil {
		t.Fatal(err)
	}
	if len(levels) != 2 || levels[0] != gpio.Low || levels[1] != gpio.High {
		t.Errorf("RST levels during reset = %v, want low then high", levels)
	}
	if slept != 200*time.Millisecond {
		t.Errorf("slept %v, want 200ms", slept)
	}
}

func TestBacklight(t *testing.T) {
	r := newRig()
	b := newBus(t, r)
	if err := b.SetBacklight(true); err != nil {
		t.Fatal(err)
	}
	if r.led.L != gpio.High {
		t.Error("SetBacklight(true) left LED low")
	}
}

package spibus

import (
	"bytes"
	"testing"
	"time"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpiotest"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/conn/v3/spi/spitest"
)

// dcRecord records the D/C level seen by each transaction.
type dcRecord struct {
	spitest.Record
	dc     *gpiotest.Pin
	levels []gpio.Level
	freq   physic.Frequency
}

func (r *dcRecord) Connect(f physic.Frequency, mode spi.Mode, bits int) (spi.Conn, error) {
	r.freq = f
	c, err := r.Record.Connect(f, mode, bits)
	if err != nil {
		return nil, err
	}
	return &dcConn{Conn: c, r: r}, nil
}

// dcConn samples the D/C pin before handing each Tx to the recorder.
type dcConn struct {
	spi.Conn
	r *dcRecord
}

func (c *dcConn) Tx(w, read []byte) error {
	c.r.levels = append(c.r.levels, c.r.dc.Read())
	return c.Conn.Tx(w, read)
}

func newBus(t *testing.T, opts *Opts) (*Bus, *dcRecord) {
	t.Helper()
	dc := &gpiotest.Pin{N: "DC"}
	r := &dcRecord{dc: dc}
	b, err := New(r, dc, opts)
	if err != nil {
		t.Fatal(err)
	}
	b.sleep = func(time.Duration) {}
	return b, r
}

func TestNew(t *testing.T) {
	led := &gpiotest.Pin{N: "LED", L: gpio.High}
	rst := &gpiotest.Pin{N: "RST"}
	_, r := newBus(t, &Opts{LED: led, RST: rst})
	if led.L != gpio.Low {
		t.Error("backlight should start off")
	}
	if rst.L != gpio.High {
		t.Error("reset should be released")
	}
	if r.freq != DefaultFreq {
		t.Errorf("connected at %s, want %s", r.freq, DefaultFreq)
	}
}

func TestNewRequiresDC(t *testing.T) {
	if _, err := New(&spitest.Record{}, nil, nil); err == nil {
		t.Error("New without dc should fail")
	}
}

func TestCommandWithParams(t *testing.T) {
	b, r := newBus(t, nil)

	// Command 0x2A with four parameters.
	steps := []func() error{
		b.BeginTransfer,
		b.SetCommandMode,
		func() error { return b.WriteByte(0x2A) },
		b.SetDataMode,
		func() error { return b.WriteByte(0x00) },
		func() error { return b.WriteByte(0x01) },
		func() error { return b.WriteByte(0x00) },
		func() error { return b.WriteByte(0x7F) },
		b.EndTransfer,
	}
	for i, s := range steps {
		if err := s(); err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
	}

	if len(r.Ops) != 2 {
		t.Fatalf("got %d transactions, want 2: %v", len(r.Ops), r.Ops)
	}
	if !bytes.Equal(r.Ops[0].W, []byte{0x2A}) || r.levels[0] != gpio.Low {
		t.Errorf("first tx = % X with dc %v, want 2A with dc low", r.Ops[0].W, r.levels[0])
	}
	if !bytes.Equal(r.Ops[1].W, []byte{0x00, 0x01, 0x00, 0x7F}) || r.levels[1] != gpio.High {
		t.Errorf("second tx = % X with dc %v, want params with dc high", r.Ops[1].W, r.levels[1])
	}
}

func TestEmptyTransfer(t *testing.T) {
	b, r := newBus(t, nil)
	if err := b.BeginTransfer(); err != nil {
		t.Fatal(err)
	}
	if err := b.EndTransfer(); err != nil {
		t.Fatal(err)
	}
	if len(r.Ops) != 0 {
		t.Errorf("empty transfer sent %v", r.Ops)
	}
}

func TestChunking(t *testing.T) {
	b, r := newBus(t, nil)
	b.maxTxSize = 4
	if err := b.SetDataMode(); err != nil {
		t.Fatal(err)
	}
	for i := range 10 {
		if err := b.WriteByte(byte(i)); err != nil {
			t.Fatal(err)
		}
	}
	if err := b.EndTransfer(); err != nil {
		t.Fatal(err)
	}
	var got []byte
	for i, op := range r.Ops {
		if len(op.W) > 4 {
			t.Errorf("tx %d is %d bytes, limit is 4", i, len(op.W))
		}
		got = append(got, op.W...)
	}
	if want := []byte{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}; !bytes.Equal(got, want) {
		t.Errorf("sent % X, want % X", got, want)
	}
	if len(r.Ops) != 3 {
		t.Errorf("got %d transactions, want 3", len(r.Ops))
	}
}

func TestReadByteUnsupported(t *testing.T) {
	// spitest.Record without a backing port cannot read.
	b, _ := newBus(t, nil)
	if _, err := b.ReadByte(); err == nil {
		t.Error("ReadByte should fail without MISO")
	}
}

func TestBacklight(t *testing.T) {
	led := &gpiotest.Pin{N: "LED"}
	b, _ := newBus(t, &Opts{LED: led})
	if err := b.SetBacklight(true); err != nil {
		t.Fatal(err)
	}
	if led.L != gpio.High {
		t.Error("SetBacklight(true) left LED low")
	}
	if err := b.SetBacklight(false); err != nil {
		t.Fatal(err)
	}
	if led.L != gpio.Low {
		t.Error("SetBacklight(false) left LED high")
	}

	// No pin, no error.
	b, _ = newBus(t, nil)
	if err := b.SetBacklight(true); err != nil {
		t.Errorf("SetBacklight without LED = %v", err)
	}
}

func TestHardwareReset(t *testing.T) {
	rst := &gpiotest.Pin{N: "RST"}
	b, _ := newBus(t, &Opts{RST: rst})
	var slept []time.Duration
	var levels []gpio.Level
	b.sleep = func(d time.Duration) {
		slept = append(slept, d)
		levels = append(levels, rst.Read())
	}
	if err := b.HardwareReset(); err != nil {
		t.Fatal(err)
	}
	if len(slept) != 2 || slept[0] != 100*time.Millisecond || slept[1] != 100*time.Millisecond {
		t.Errorf("slept %v, want 100ms twice", slept)
	}
	if levels[0] != gpio.Low || levels[1] != gpio.High || rst.L != gpio.High {
		t.Errorf("reset levels %v, want low then high", levels)
	}

	b, _ = newBus(t, nil)
	if err := b.HardwareReset(); err != nil {
		t.Errorf("HardwareReset without RST = %v", err)
	}
}

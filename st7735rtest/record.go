// Package st7735rtest provides fakes of the st7735r bus for unit tests.
//
// Record logs every bus call. Panel additionally decodes the command stream
// the way an ST7735R controller would and keeps the resulting frame memory,
// so tests can assert on pixels instead of bytes.
package st7735rtest

import (
	"fmt"
	"time"
)

// Op identifies a bus call.
type Op uint8

// Bus calls recorded by Record.
const (
	OpBegin Op = iota
	OpEnd
	OpCommandMode
	OpDataMode
	OpWrite
	OpRead
	OpDelay
	OpBacklight
	OpReset
)

var opNames = [...]string{"Begin", "End", "CommandMode", "DataMode", "Write", "Read", "Delay", "Backlight", "Reset"}

func (o Op) String() string {
	if int(o) < len(opNames) {
		return opNames[o]
	}
	return fmt.Sprintf("Op(%d)", uint8(o))
}

// Event is one recorded bus call.
type Event struct {
	Op Op
	B  byte          // Byte written or read; 1/0 for Backlight.
	D  time.Duration // Delay length.
}

func (e Event) String() string {
	switch e.Op {
	case OpWrite, OpRead, OpBacklight:
		return fmt.Sprintf("%s(0x%02X)", e.Op, e.B)
	case OpDelay:
		return fmt.Sprintf("Delay(%s)", e.D)
	}
	return e.Op.String()
}

// Transaction is a command byte followed by the data bytes written after it.
type Transaction struct {
	Cmd    byte
	Params []byte
}

// Record implements the st7735r.Bus method set and records every call.
//
// Writes and reads made while the chip is not selected are counted in
// Unselected; a correct driver never makes any.
type Record struct {
	Events     []Event
	ReadData   []byte // Bytes returned by ReadByte, in order; 0 once exhausted.
	Fail       error  // When set every call returns Fail and records nothing.
	Unselected int

	selected bool
	data     bool
}

// BeginTransfer asserts chip select.
func (r *Record) BeginTransfer() error {
	if r.Fail != nil {
		return r.Fail
	}
	r.selected = true
	r.Events = append(r.Events, Event{Op: OpBegin})
	return nil
}

// EndTransfer releases chip select.
func (r *Record) EndTransfer() error {
	if r.Fail != nil {
		return r.Fail
	}
	r.selected = false
	r.Events = append(r.Events, Event{Op: OpEnd})
	return nil
}

// SetCommandMode drives D/C low.
func (r *Record) SetCommandMode() error {
	if r.Fail != nil {
		return r.Fail
	}
	r.data = false
	r.Events = append(r.Events, Event{Op: OpCommandMode})
	return nil
}

// SetDataMode drives D/C high.
func (r *Record) SetDataMode() error {
	if r.Fail != nil {
		return r.Fail
	}
	r.data = true
	r.Events = append(r.Events, Event{Op: OpDataMode})
	return nil
}

// WriteByte records b.
func (r *Record) WriteByte(b byte) error {
	if r.Fail != nil {
		return r.Fail
	}
	if !r.selected {
		r.Unselected++
	}
	r.Events = append(r.Events, Event{Op: OpWrite, B: b})
	return nil
}

// ReadByte returns the next byte of ReadData.
func (r *Record) ReadByte() (byte, error) {
	if r.Fail != nil {
		return 0, r.Fail
	}
	if !r.selected {
		r.Unselected++
	}
	var b byte
	if len(r.ReadData) != 0 {
		b, r.ReadData = r.ReadData[0], r.ReadData[1:]
	}
	r.Events = append(r.Events, Event{Op: OpRead, B: b})
	return b, nil
}

// Delay records d without sleeping.
func (r *Record) Delay(d time.Duration) {
	r.Events = append(r.Events, Event{Op: OpDelay, D: d})
}

// SetBacklight records the backlight level.
func (r *Record) SetBacklight(on bool) error {
	if r.Fail != nil {
		return r.Fail
	}
	var b byte
	if on {
		b = 1
	}
	r.Events = append(r.Events, Event{Op: OpBacklight, B: b})
	return nil
}

// HardwareReset records a reset pulse.
func (r *Record) HardwareReset() error {
	if r.Fail != nil {
		return r.Fail
	}
	r.Events = append(r.Events, Event{Op: OpReset})
	return nil
}

// Clear drops every recorded event.
func (r *Record) Clear() {
	r.Events = nil
	r.Unselected = 0
}

// Written returns every byte written, in order, regardless of mode.
func (r *Record) Written() []byte {
	var out []byte
	for _, e := range r.Events {
		if e.Op == OpWrite {
			out = append(out, e.B)
		}
	}
	return out
}

// Transactions groups the written bytes by command. Data bytes written
// before any command are attributed to a transaction with Cmd 0.
func (r *Record) Transactions() []Transaction {
	var out []Transaction
	data := false
	for _, e := range r.Events {
		switch e.Op {
		case OpCommandMode:
			data = false
		case OpDataMode:
			data = true
		case OpWrite:
			if !data || len(out) == 0 {
				if !data {
					out = append(out, Transaction{Cmd: e.B})
					continue
				}
				out = append(out, Transaction{})
			}
			t := &out[len(out)-1]
			t.Params = append(t.Params, e.B)
		}
	}
	return out
}

// Commands returns the command bytes in order.
func (r *Record) Commands() []byte {
	var out []byte
	for _, t := range r.Transactions() {
		out = append(out, t.Cmd)
	}
	return out
}

// Delays returns every recorded delay in order.
func (r *Record) Delays() []time.Duration {
	var out []time.Duration
	for _, e := range r.Events {
		if e.Op == OpDelay {
			out = append(out, e.D)
		}
	}
	return out
}

// Count returns how many events of kind op were recorded.
func (r *Record) Count(op Op) int {
	n := 0
	for _, e := range r.Events {
		if e.Op == op {
			n++
		}
	}
	return n
}

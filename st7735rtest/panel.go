package st7735rtest

import (
	"image"

	"periph.io/x/devices/v3/st7735r/rgb565"
)

// Controller opcodes understood by Panel.
const (
	cmdSWRESET = 0x01
	cmdRDDID   = 0x04
	cmdSLPIN   = 0x10
	cmdSLPOUT  = 0x11
	cmdINVOFF  = 0x20
	cmdINVON   = 0x21
	cmdDISPOFF = 0x28
	cmdDISPON  = 0x29
	cmdCASET   = 0x2A
	cmdRASET   = 0x2B
	cmdRAMWR   = 0x2C
	cmdMADCTL  = 0x36
	cmdCOLMOD  = 0x3A
)

// DefaultID is the RDDID answer of a Panel: manufacturer, version, driver.
var DefaultID = [3]byte{0x7C, 0x89, 0xF0}

// Panel emulates the subset of an ST7735R controller the driver uses.
//
// It records every call like Record and decodes the byte stream: column and
// row address sets, memory writes into an RGB565 frame, sleep, display and
// inversion state. MADCTL and COLMOD are stored but not applied; pixels land
// at the logical coordinates the driver addressed.
type Panel struct {
	Record

	Frame     *rgb565.Image
	ID        [3]byte
	Asleep    bool
	DisplayOn bool
	Inverted  bool
	Backlight bool
	MADCTL    byte
	COLMOD    byte
	Resets    int // Hardware and software resets seen.

	cmd        byte
	params     []byte
	x0, x1     int
	y0, y1     int
	x, y       int
	hi         byte
	haveHi     bool
	readQueue  []byte
	dataActive bool
}

// NewPanel returns a Panel with w×h pixels of frame memory, in the state
// the controller has after power on.
func NewPanel(w, h int) *Panel {
	p := &Panel{
		Frame: rgb565.NewImage(image.Rect(0, 0, w, h)),
		ID:    DefaultID,
	}
	p.reset()
	return p
}

func (p *Panel) reset() {
	p.Asleep = true
	p.DisplayOn = false
	p.Inverted = false
	p.MADCTL = 0
	p.COLMOD = 0x06
	p.x0, p.x1 = 0, p.Frame.Rect.Dx()-1
	p.y0, p.y1 = 0, p.Frame.Rect.Dy()-1
	p.cmd = 0
	p.params = nil
	p.readQueue = nil
}

// Window returns the current column and row address range as a rectangle.
func (p *Panel) Window() image.Rectangle {
	return image.Rect(p.x0, p.y0, p.x1+1, p.y1+1)
}

// At returns the frame pixel at (x, y).
func (p *Panel) At(x, y int) rgb565.Color {
	return p.Frame.RGB565At(x, y)
}

// CountColor returns how many frame pixels equal c.
func (p *Panel) CountColor(c rgb565.Color) int {
	n := 0
	for _, v := range p.Frame.Colors(p.Frame.Rect) {
		if v == c {
			n++
		}
	}
	return n
}

// SetCommandMode drives D/C low.
func (p *Panel) SetCommandMode() error {
	if err := p.Record.SetCommandMode(); err != nil {
		return err
	}
	p.dataActive = false
	return nil
}

// SetDataMode drives D/C high.
func (p *Panel) SetDataMode() error {
	if err := p.Record.SetDataMode(); err != nil {
		return err
	}
	p.dataActive = true
	return nil
}

// SetBacklight records and tracks the backlight.
func (p *Panel) SetBacklight(on bool) error {
	if err := p.Record.SetBacklight(on); err != nil {
		return err
	}
	p.Backlight = on
	return nil
}

// HardwareReset returns the controller to its power-on state. Frame memory
// is left untouched.
func (p *Panel) HardwareReset() error {
	if err := p.Record.HardwareReset(); err != nil {
		return err
	}
	p.Resets++
	p.reset()
	return nil
}

// WriteByte records b and feeds it to the command decoder.
func (p *Panel) WriteByte(b byte) error {
	if err := p.Record.WriteByte(b); err != nil {
		return err
	}
	if p.dataActive {
		p.data(b)
	} else {
		p.command(b)
	}
	return nil
}

// ReadByte answers pending reads, falling back to Record.ReadData.
func (p *Panel) ReadByte() (byte, error) {
	if len(p.readQueue) == 0 {
		return p.Record.ReadByte()
	}
	if p.Fail != nil {
		return 0, p.Fail
	}
	if !p.selected {
		p.Unselected++
	}
	b := p.readQueue[0]
	p.readQueue = p.readQueue[1:]
	p.Events = append(p.Events, Event{Op: OpRead, B: b})
	return b, nil
}

func (p *Panel) command(b byte) {
	p.cmd = b
	p.params = p.params[:0]
	p.haveHi = false
	switch b {
	case cmdSWRESET:
		p.Resets++
		p.reset()
	case cmdRDDID:
		p.readQueue = []byte{0, p.ID[0], p.ID[1], p.ID[2]}
	case cmdSLPIN:
		p.Asleep = true
	case cmdSLPOUT:
		p.Asleep = false
	case cmdINVOFF:
		p.Inverted = false
	case cmdINVON:
		p.Inverted = true
	case cmdDISPOFF:
		p.DisplayOn = false
	case cmdDISPON:
		p.DisplayOn = true
	case cmdRAMWR:
		p.x, p.y = p.x0, p.y0
	}
}

func (p *Panel) data(b byte) {
	switch p.cmd {
	case cmdCASET, cmdRASET:
		p.params = append(p.params, b)
		if len(p.params) != 4 {
			return
		}
		lo := int(p.params[0])<<8 | int(p.params[1])
		hi := int(p.params[2])<<8 | int(p.params[3])
		if p.cmd == cmdCASET {
			p.x0, p.x1 = lo, hi
		} else {
			p.y0, p.y1 = lo, hi
		}
		p.params = p.params[:0]
	case cmdMADCTL:
		p.MADCTL = b
	case cmdCOLMOD:
		p.COLMOD = b
	case cmdRAMWR:
		if !p.haveHi {
			p.hi, p.haveHi = b, true
			return
		}
		p.haveHi = false
		p.Frame.SetRGB565(p.x, p.y, rgb565.Color(uint16(p.hi)<<8|uint16(b)))
		p.x++
		if p.x > p.x1 {
			p.x = p.x0
			p.y++
			if p.y > p.y1 {
				p.y = p.y0
			}
		}
	}
}

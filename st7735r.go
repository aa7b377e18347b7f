package st7735r

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"github.com/rs/zerolog"
	"periph.io/x/conn/v3/display"

	"periph.io/x/devices/v3/st7735r/font"
	"periph.io/x/devices/v3/st7735r/geom"
	"periph.io/x/devices/v3/st7735r/rgb565"
)

// MaxSize is the largest frame memory dimension of the controller.
const MaxSize = 162

var (
	// ErrPixelCount is returned when a pixel stream is longer than the data
	// supplied or than the addressing window.
	ErrPixelCount = errors.New("st7735r: pixel count exceeds data or window")
	// ErrMaskSize is returned for 1-bit masks whose area is not a multiple of
	// 8 or whose data is too short.
	ErrMaskSize = errors.New("st7735r: invalid mask size")
	// ErrUnsupportedChar is returned when text contains a character the
	// font does not cover.
	ErrUnsupportedChar = errors.New("st7735r: unsupported character")
	// ErrIconTooLarge is returned when an icon does not fit its frame.
	ErrIconTooLarge = errors.New("st7735r: icon larger than frame")
	// ErrAsleep is returned by drawing calls while the panel sleeps.
	ErrAsleep = errors.New("st7735r: panel asleep")
	// ErrHalted is returned by every call after Halt.
	ErrHalted = errors.New("st7735r: halted")
)

// PowerState is the tracked sleep state of the panel.
type PowerState uint8

// Power states. A new Dev starts Asleep.
const (
	Asleep PowerState = iota
	Awake
)

func (p PowerState) String() string {
	if p == Awake {
		return "awake"
	}
	return "asleep"
}

// Opts is the configuration for the display.
type Opts struct {
	// Panel dimensions in pixels. Default 128x160.
	W int
	H int

	// Origin of the visible area in controller memory. Modules that do not
	// use the full 132x162 memory offset their glass, e.g. (2, 1).
	Origin geom.Point

	// MADCTL value. Zero selects DefaultAccess.
	Access MemoryAccess

	// Fonts used by DrawNumber and DrawString. Default font.Digits5x8 and
	// font.ASCII8x12.
	Digits *font.Font
	Text   *font.Font

	// SoftwareReset issues SWRESET after the hardware reset.
	SoftwareReset bool

	// Logger receives debug events. nil disables logging.
	Logger *zerolog.Logger
}

var _ display.Drawer = (*Dev)(nil)

// Dev is a handle to an ST7735R panel.
type Dev struct {
	bus    Bus
	frame  geom.Rect
	origin geom.Point
	digits *font.Font
	text   *font.Font
	log    zerolog.Logger

	power  PowerState
	halted bool

	// Pixels left in the current addressing window.
	window int

	// Staging frame for SetPixel/Display, allocated on first use.
	staging *rgb565.Image
}

// New resets the panel on bus and loads its register setup.
//
// The panel is left asleep with the backlight off; call ExitSleep before
// drawing. opts can be nil to use defaults.
func New(bus Bus, opts *Opts) (*Dev, error) {
	if bus == nil {
		return nil, errors.New("st7735r: nil bus")
	}
	o := Opts{}
	if opts != nil {
		o = *opts
	}
	if o.W == 0 && o.H == 0 {
		o.W, o.H = 128, 160
	}
	if o.W <= 0 || o.W > MaxSize || o.H <= 0 || o.H > MaxSize {
		return nil, fmt.Errorf("st7735r: size %dx%d must be between 1x1 and %dx%d", o.W, o.H, MaxSize, MaxSize)
	}
	if int(o.Origin.X)+o.W > MaxSize || int(o.Origin.Y)+o.H > MaxSize {
		return nil, fmt.Errorf("st7735r: origin %v puts %dx%d outside frame memory", o.Origin, o.W, o.H)
	}
	if o.Access == 0 {
		o.Access = DefaultAccess
	}
	if o.Digits == nil {
		o.Digits = font.Digits5x8
	}
	if o.Text == nil {
		o.Text = font.ASCII8x12
	}
	for _, f := range []*font.Font{o.Digits, o.Text} {
		if err := f.Validate(); err != nil {
			return nil, fmt.Errorf("st7735r: %w", err)
		}
	}
	for c := byte('0'); c <= '9'; c++ {
		if !o.Digits.Has(c) {
			return nil, fmt.Errorf("st7735r: digit font %s lacks %q", o.Digits.Name, c)
		}
	}

	d := &Dev{
		bus:    bus,
		frame:  geom.R(0, 0, uint8(o.W), uint8(o.H)),
		origin: o.Origin,
		digits: o.Digits,
		text:   o.Text,
		log:    zerolog.Nop(),
		power:  Asleep,
	}
	if o.Logger != nil {
		d.log = o.Logger.With().Str("dev", "st7735r").Logger()
	}
	if err := d.init(&o); err != nil {
		return nil, err
	}
	return d, nil
}

// init resets the controller and runs the register script.
func (d *Dev) init(o *Opts) error {
	if err := d.bus.HardwareReset(); err != nil {
		return fmt.Errorf("st7735r: hardware reset: %w", err)
	}
	if o.SoftwareReset {
		if err := d.sendCommand(cmdSWRESET); err != nil {
			return err
		}
		d.bus.Delay(resetDelay)
	}
	for _, c := range initScript(o.Access) {
		if err := d.sendCommand(c.cmd, c.data...); err != nil {
			return err
		}
		if c.delay != 0 {
			d.bus.Delay(c.delay)
		}
	}
	if err := d.bus.SetBacklight(false); err != nil {
		return fmt.Errorf("st7735r: backlight: %w", err)
	}
	d.log.Debug().
		Int("w", o.W).Int("h", o.H).
		Stringer("origin", o.Origin).
		Uint8("madctl", uint8(o.Access)).
		Msg("initialized")
	return nil
}

// live fails once the device is halted.
func (d *Dev) live() error {
	if d.halted {
		return ErrHalted
	}
	return nil
}

// ready fails unless the device can draw.
func (d *Dev) ready() error {
	if d.halted {
		return ErrHalted
	}
	if d.power == Asleep {
		return ErrAsleep
	}
	return nil
}

// EnterSleep turns the backlight off and puts the panel to sleep.
//
// The command is sent even if the panel is already asleep.
func (d *Dev) EnterSleep() error {
	if err := d.live(); err != nil {
		return err
	}
	if err := d.bus.SetBacklight(false); err != nil {
		return fmt.Errorf("st7735r: backlight: %w", err)
	}
	if err := d.sendCommand(cmdSLPIN); err != nil {
		return err
	}
	d.bus.Delay(sleepDelay)
	d.power = Asleep
	d.log.Debug().Msg("sleep in")
	return nil
}

// ExitSleep turns the backlight on and wakes the panel.
//
// The command is sent even if the panel is already awake.
func (d *Dev) ExitSleep() error {
	if err := d.live(); err != nil {
		return err
	}
	if err := d.bus.SetBacklight(true); err != nil {
		return fmt.Errorf("st7735r: backlight: %w", err)
	}
	if err := d.sendCommand(cmdSLPOUT); err != nil {
		return err
	}
	d.bus.Delay(sleepDelay)
	d.power = Awake
	d.log.Debug().Msg("sleep out")
	return nil
}

// Power returns the tracked power state.
func (d *Dev) Power() PowerState {
	return d.power
}

// Invert inverts the display colors.
func (d *Dev) Invert(invert bool) error {
	if err := d.live(); err != nil {
		return err
	}
	cmd := byte(cmdINVOFF)
	if invert {
		cmd = cmdINVON
	}
	return d.sendCommand(cmd)
}

// ReadID returns the manufacturer, version and driver ID bytes.
//
// It needs a bus that can read; write-only SPI wiring returns an error.
func (d *Dev) ReadID() ([3]byte, error) {
	var id [3]byte
	if err := d.live(); err != nil {
		return id, err
	}
	err := d.transfer(func() error {
		if err := d.bus.SetCommandMode(); err != nil {
			return err
		}
		if err := d.bus.WriteByte(cmdRDDID); err != nil {
			return err
		}
		if err := d.bus.SetDataMode(); err != nil {
			return err
		}
		// The first byte clocked out is a dummy.
		if _, err := d.bus.ReadByte(); err != nil {
			return err
		}
		for i := range id {
			b, err := d.bus.ReadByte()
			if err != nil {
				return err
			}
			id[i] = b
		}
		return nil
	})
	if err != nil {
		return [3]byte{}, fmt.Errorf("st7735r: read id: %w", err)
	}
	return id, nil
}

// Halt turns the display and backlight off. After Halt every call returns
// ErrHalted.
func (d *Dev) Halt() error {
	if d.halted {
		return nil
	}
	d.halted = true
	if err := d.bus.SetBacklight(false); err != nil {
		return fmt.Errorf("st7735r: backlight: %w", err)
	}
	d.log.Debug().Msg("halt")
	return d.sendCommand(cmdDISPOFF)
}

// String returns a string representation of the device.
func (d *Dev) String() string {
	return fmt.Sprintf("st7735r.Dev{%dx%d}", d.frame.Size.W, d.frame.Size.H)
}

// Frame returns the panel rectangle.
func (d *Dev) Frame() geom.Rect {
	return d.frame
}

// ColorModel returns the color model of the display.
func (d *Dev) ColorModel() color.Model {
	return rgb565.Model
}

// Bounds returns the image bounds of the display.
func (d *Dev) Bounds() image.Rectangle {
	return d.frame.Image()
}

// Draw implements display.Drawer. src is converted to RGB565 and written to
// the part of dst inside the panel in a single window.
func (d *Dev) Draw(dst image.Rectangle, src image.Image, sp image.Point) error {
	if err := d.ready(); err != nil {
		return err
	}
	r := dst.Intersect(d.Bounds())
	if r.Empty() {
		return nil
	}
	sr := r.Sub(dst.Min).Add(sp)
	var colors []rgb565.Color
	if img, ok := src.(*rgb565.Image); ok {
		colors = img.Colors(sr)
	} else {
		colors = make([]rgb565.Color, 0, r.Dx()*r.Dy())
		for y := sr.Min.Y; y < sr.Max.Y; y++ {
			for x := sr.Min.X; x < sr.Max.X; x++ {
				colors = append(colors, rgb565.Model.Convert(src.At(x, y)).(rgb565.Color))
			}
		}
	}
	return d.DrawBitmap(colors, geom.FromImage(r))
}

// Write writes a full frame of raw RGB565 pixels, high byte first.
// The data must be exactly W*H*2 bytes.
func (d *Dev) Write(pixels []byte) (int, error) {
	if err := d.ready(); err != nil {
		return 0, err
	}
	if len(pixels) != 2*d.frame.Size.Area() {
		return 0, errors.New("st7735r: invalid buffer size")
	}
	if _, err := d.setWindow(d.frame); err != nil {
		return 0, err
	}
	err := d.stream(d.frame.Size.Area(), func(i int) rgb565.Color {
		return rgb565.Color(uint16(pixels[2*i])<<8 | uint16(pixels[2*i+1]))
	})
	if err != nil {
		return 0, err
	}
	return len(pixels), nil
}

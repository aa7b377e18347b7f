// Package scene describes a list of drawing operations in a YAML, JSON or
// TOML file and replays them on a display.
//
//	ops:
//	  - op: fill
//	    color: navy
//	  - op: rect
//	    rect: [8, 8, 112, 40]
//	    color: "#FFFF00"
//	    fill: false
//	  - op: text
//	    at: [12, 20]
//	    text: Hello
//	    color: white
//	    bg: navy
//	    scale: 1
package scene

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"periph.io/x/devices/v3/st7735r"
	"periph.io/x/devices/v3/st7735r/geom"
	"periph.io/x/devices/v3/st7735r/rgb565"
)

// Drawer is the part of *st7735r.Dev a scene uses.
type Drawer interface {
	FillScreen(c rgb565.Color) error
	DrawLine(start, end geom.Point, c rgb565.Color) error
	DrawRect(frame geom.Rect, c rgb565.Color, fill bool) error
	DrawBitmap(colors []rgb565.Color, frame geom.Rect) error
	DrawBinaryImage(mask []byte, frame geom.Rect, fg, bg rgb565.Color) error
	DrawMenuIcon(icon *st7735r.MenuIcon, highlighted bool) error
	DrawBinaryIcon(icon *st7735r.MenuIcon) error
	DrawNumber(origin geom.Point, value uint16, fg, bg rgb565.Color, scale uint8) error
	DrawString(origin geom.Point, text string, fg, bg rgb565.Color, scale uint8) error
}

var _ Drawer = (*st7735r.Dev)(nil)

// Op is one operation as written in the file. Which fields apply depends
// on Kind.
type Op struct {
	Kind      string `mapstructure:"op"`
	At        []int  `mapstructure:"at"`
	To        []int  `mapstructure:"to"`
	Rect      []int  `mapstructure:"rect"`
	Size      []int  `mapstructure:"size"`
	Color     string `mapstructure:"color"`
	BG        string `mapstructure:"bg"`
	Fill      bool   `mapstructure:"fill"`
	Value     int    `mapstructure:"value"`
	Text      string `mapstructure:"text"`
	Scale     int    `mapstructure:"scale"`
	Bits      string `mapstructure:"bits"` // hex; a 1-bit mask or RGB565 pairs for sprites
	Highlight bool   `mapstructure:"highlight"`
}

// Scene is a parsed scene file.
type Scene struct {
	Ops []Op `mapstructure:"ops"`

	steps []step
}

type step func(Drawer) error

// Load reads and compiles the scene in path.
func Load(path string) (*Scene, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read scene: %w", err)
	}
	s := &Scene{}
	if err := v.Unmarshal(s); err != nil {
		return nil, fmt.Errorf("failed to decode scene: %w", err)
	}
	if err := s.Compile(); err != nil {
		return nil, err
	}
	return s, nil
}

// Compile checks every op and prepares it for Render.
func (s *Scene) Compile() error {
	s.steps = s.steps[:0]
	for i, op := range s.Ops {
		st, err := op.compile()
		if err != nil {
			return fmt.Errorf("op %d (%s): %w", i, op.Kind, err)
		}
		s.steps = append(s.steps, st)
	}
	return nil
}

// Render replays the scene on d. It stops at the first failing op.
func (s *Scene) Render(d Drawer) error {
	if len(s.steps) != len(s.Ops) {
		if err := s.Compile(); err != nil {
			return err
		}
	}
	for i, st := range s.steps {
		if err := st(d); err != nil {
			return fmt.Errorf("op %d (%s): %w", i, s.Ops[i].Kind, err)
		}
	}
	return nil
}

func (op *Op) compile() (step, error) {
	fg, err := ParseColor(op.Color, rgb565.White)
	if err != nil {
		return nil, err
	}
	bg, err := ParseColor(op.BG, rgb565.Black)
	if err != nil {
		return nil, err
	}

	switch strings.ToLower(op.Kind) {
	case "fill":
		return func(d Drawer) error { return d.FillScreen(fg) }, nil

	case "line":
		from, err := point(op.At, "at")
		if err != nil {
			return nil, err
		}
		to, err := point(op.To, "to")
		if err != nil {
			return nil, err
		}
		return func(d Drawer) error { return d.DrawLine(from, to, fg) }, nil

	case "rect":
		r, err := rect(op.Rect, "rect")
		if err != nil {
			return nil, err
		}
		fill := op.Fill
		return func(d Drawer) error { return d.DrawRect(r, fg, fill) }, nil

	case "number":
		at, err := point(op.At, "at")
		if err != nil {
			return nil, err
		}
		scale, err := scaleOf(op.Scale)
		if err != nil {
			return nil, err
		}
		if op.Value < 0 || op.Value > 0xFFFF {
			return nil, fmt.Errorf("value %d out of range", op.Value)
		}
		v := uint16(op.Value)
		return func(d Drawer) error { return d.DrawNumber(at, v, fg, bg, scale) }, nil

	case "text":
		at, err := point(op.At, "at")
		if err != nil {
			return nil, err
		}
		scale, err := scaleOf(op.Scale)
		if err != nil {
			return nil, err
		}
		text := op.Text
		return func(d Drawer) error { return d.DrawString(at, text, fg, bg, scale) }, nil

	case "mask":
		r, err := rect(op.Rect, "rect")
		if err != nil {
			return nil, err
		}
		bits, err := decodeBits(op.Bits)
		if err != nil {
			return nil, err
		}
		return func(d Drawer) error { return d.DrawBinaryImage(bits, r, fg, bg) }, nil

	case "icon":
		frame, err := rect(op.Rect, "rect")
		if err != nil {
			return nil, err
		}
		size, err := uint8s(op.Size, "size", 2)
		if err != nil {
			return nil, err
		}
		bits, err := decodeBits(op.Bits)
		if err != nil {
			return nil, err
		}
		icon := &st7735r.MenuIcon{
			Frame:      frame,
			Size:       geom.Sz(size[0], size[1]),
			Pixels:     bits,
			Foreground: fg,
			Background: bg,
		}
		if op.Highlight {
			// A highlighted binary icon swaps its colours.
			icon.Foreground, icon.Background = bg, fg
		}
		return func(d Drawer) error { return d.DrawBinaryIcon(icon) }, nil

	case "sprite":
		frame, err := rect(op.Rect, "rect")
		if err != nil {
			return nil, err
		}
		size, err := uint8s(op.Size, "size", 2)
		if err != nil {
			return nil, err
		}
		pixels, err := decodeBits(op.Bits)
		if err != nil {
			return nil, err
		}
		icon := &st7735r.MenuIcon{
			Frame:      frame,
			Size:       geom.Sz(size[0], size[1]),
			Pixels:     pixels,
			Foreground: fg,
			Background: bg,
		}
		highlight := op.Highlight
		return func(d Drawer) error { return d.DrawMenuIcon(icon, highlight) }, nil

	case "gradient":
		r, err := rect(op.Rect, "rect")
		if err != nil {
			return nil, err
		}
		colors := gradient(r.Size, fg, bg)
		return func(d Drawer) error { return d.DrawBitmap(colors, r) }, nil

	case "":
		return nil, errors.New("missing op")
	}
	return nil, fmt.Errorf("unknown op %q", op.Kind)
}

func uint8s(v []int, name string, n int) ([]uint8, error) {
	if len(v) != n {
		return nil, fmt.Errorf("%s needs %d values, got %d", name, n, len(v))
	}
	b := make([]uint8, n)
	for i, x := range v {
		if x < 0 || x > 255 {
			return nil, fmt.Errorf("%s[%d] = %d out of range 0..255", name, i, x)
		}
		b[i] = uint8(x)
	}
	return b, nil
}

func point(v []int, name string) (geom.Point, error) {
	b, err := uint8s(v, name, 2)
	if err != nil {
		return geom.Point{}, err
	}
	return geom.Pt(b[0], b[1]), nil
}

func rect(v []int, name string) (geom.Rect, error) {
	b, err := uint8s(v, name, 4)
	if err != nil {
		return geom.Rect{}, err
	}
	return geom.R(b[0], b[1], b[2], b[3]), nil
}

func scaleOf(n int) (uint8, error) {
	if n == 0 {
		return 1, nil
	}
	if n < 0 || n > 255 {
		return 0, fmt.Errorf("scale %d out of range", n)
	}
	return uint8(n), nil
}

func decodeBits(s string) ([]byte, error) {
	s = strings.Join(strings.Fields(s), "")
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("bits: %w", err)
	}
	return b, nil
}

// gradient blends from a at the left edge to b at the right.
func gradient(s geom.Size, a, b rgb565.Color) []rgb565.Color {
	ar, ag, ab := a.Components()
	br, bg, bb := b.Components()
	w, h := int(s.W), int(s.H)
	n := max(w-1, 1)
	lerp := func(x, y uint8, i int) rgb565.Color {
		return rgb565.Color((int(x)*(n-i) + int(y)*i) / n)
	}
	row := make([]rgb565.Color, w)
	for i := range w {
		row[i] = lerp(ar, br, i)<<11 | lerp(ag, bg, i)<<5 | lerp(ab, bb, i)
	}
	out := make([]rgb565.Color, 0, w*h)
	for range h {
		out = append(out, row...)
	}
	return out
}

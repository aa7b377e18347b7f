package rgb565

import (
	"fmt"
	"image"
	"image/color"
)

// Color is a 16-bit RGB565 colour: bits 15-11 red, 10-5 green, 4-0 blue.
type Color uint16

// Common colours.
const (
	Black   Color = 0x0000
	White   Color = 0xFFFF
	Red     Color = 0xF800
	Green   Color = 0x07E0
	Blue    Color = 0x001F
	Yellow  Color = Red | Green
	Cyan    Color = Green | Blue
	Magenta Color = Red | Blue
)

// New packs 8-bit red, green and blue components into a Color, dropping the
// low bits of each.
func New(r, g, b uint8) Color {
	return Color(uint16(r>>3)<<11 | uint16(g>>2)<<5 | uint16(b>>3))
}

// Components returns the raw 5-, 6- and 5-bit channels.
func (c Color) Components() (r, g, b uint8) {
	return uint8(c>>11) & 0x1F, uint8(c>>5) & 0x3F, uint8(c) & 0x1F
}

// Bytes returns c in wire order, high byte first.
func (c Color) Bytes() (hi, lo byte) {
	return byte(c >> 8), byte(c)
}

// RGBA implements color.Color. Each channel is scaled to the full 16-bit
// range so that 0x1F and 0x3F both map to 0xFFFF.
func (c Color) RGBA() (r, g, b, a uint32) {
	r5, g6, b5 := c.Components()
	r = uint32(r5) * 0xFFFF / 0x1F
	g = uint32(g6) * 0xFFFF / 0x3F
	b = uint32(b5) * 0xFFFF / 0x1F
	return r, g, b, 0xFFFF
}

func (c Color) String() string {
	return fmt.Sprintf("0x%04X", uint16(c))
}

// toRGB565 converts any color.Color to Color, rounding to the nearest level.
func toRGB565(c color.Color) color.Color {
	if v, ok := c.(Color); ok {
		return v
	}
	r, g, b, _ := c.RGBA()
	return Color(uint16((r*0x1F+0x7FFF)/0xFFFF)<<11 |
		uint16((g*0x3F+0x7FFF)/0xFFFF)<<5 |
		uint16((b*0x1F+0x7FFF)/0xFFFF))
}

// Model converts colors to Color.
var Model = color.ModelFunc(toRGB565)

// Image is an RGB565 image whose pixels are stored high byte first, exactly
// as the controller expects them on the wire.
type Image struct {
	Pix    []byte          // Pixel data (2 bytes per pixel)
	Stride int             // Bytes per row
	Rect   image.Rectangle // Image bounds
}

// NewImage creates a new Image with the specified bounds.
func NewImage(r image.Rectangle) *Image {
	w, h := r.Dx(), r.Dy()
	if w <= 0 || h <= 0 {
		return &Image{Rect: r}
	}
	return &Image{
		Pix:    make([]byte, 2*w*h),
		Stride: 2 * w,
		Rect:   r,
	}
}

// ColorModel returns the color model of the image.
func (p *Image) ColorModel() color.Model {
	return Model
}

// Bounds returns the image bounds.
func (p *Image) Bounds() image.Rectangle {
	return p.Rect
}

// At returns the color of the pixel at (x, y).
// It implements the image.Image interface.
func (p *Image) At(x, y int) color.Color {
	return p.RGB565At(x, y)
}

// RGB565At returns the Color of the pixel at (x, y).
func (p *Image) RGB565At(x, y int) Color {
	if !(image.Point{X: x, Y: y}.In(p.Rect)) {
		return Black
	}
	i := p.PixOffset(x, y)
	return Color(uint16(p.Pix[i])<<8 | uint16(p.Pix[i+1]))
}

// Set sets the color of the pixel at (x, y).
func (p *Image) Set(x, y int, c color.Color) {
	p.SetRGB565(x, y, Model.Convert(c).(Color))
}

// SetRGB565 sets the Color of the pixel at (x, y).
// This is faster than Set() as it doesn't require color conversion.
func (p *Image) SetRGB565(x, y int, c Color) {
	if !(image.Point{X: x, Y: y}.In(p.Rect)) {
		return
	}
	i := p.PixOffset(x, y)
	p.Pix[i], p.Pix[i+1] = c.Bytes()
}

// PixOffset returns the index of the high byte of the pixel at (x, y).
func (p *Image) PixOffset(x, y int) int {
	return (y-p.Rect.Min.Y)*p.Stride + (x-p.Rect.Min.X)*2
}

// Colors returns the pixels of r, row-major, as a flat slice. Pixels outside
// the image bounds are Black.
func (p *Image) Colors(r image.Rectangle) []Color {
	out := make([]Color, 0, max(r.Dx(), 0)*max(r.Dy(), 0))
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			out = append(out, p.RGB565At(x, y))
		}
	}
	return out
}

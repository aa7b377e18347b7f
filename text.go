package st7735r

import (
	"fmt"

	"periph.io/x/devices/v3/st7735r/font"
	"periph.io/x/devices/v3/st7735r/geom"
	"periph.io/x/devices/v3/st7735r/rgb565"
)

// DrawNumber draws value modulo 1000 as three digits, leading zeros
// included, with its top left corner at origin. Every font pixel becomes a
// scale×scale block; a zero scale draws nothing.
func (d *Dev) DrawNumber(origin geom.Point, value uint16, fg, bg rgb565.Color, scale uint8) error {
	if err := d.ready(); err != nil {
		return err
	}
	if scale == 0 {
		return nil
	}
	cell, err := scaledCell(d.digits, scale)
	if err != nil {
		return err
	}
	value %= 1000
	digits := [3]byte{byte('0' + value/100), byte('0' + value/10%10), byte('0' + value%10)}
	return d.drawGlyphs(d.digits, digits[:], geom.Rect{Origin: origin, Size: cell}, fg, bg, scale)
}

// DrawString draws text starting at origin, one cell per byte. Every
// character must be covered by the text font; otherwise ErrUnsupportedChar
// is returned and nothing is drawn.
func (d *Dev) DrawString(origin geom.Point, text string, fg, bg rgb565.Color, scale uint8) error {
	if err := d.ready(); err != nil {
		return err
	}
	for i := 0; i < len(text); i++ {
		if !d.text.Has(text[i]) {
			return fmt.Errorf("%w %q at offset %d", ErrUnsupportedChar, text[i], i)
		}
	}
	if scale == 0 || len(text) == 0 {
		return nil
	}
	cell, err := scaledCell(d.text, scale)
	if err != nil {
		return err
	}
	return d.drawGlyphs(d.text, []byte(text), geom.Rect{Origin: origin, Size: cell}, fg, bg, scale)
}

func scaledCell(f *font.Font, scale uint8) (geom.Size, error) {
	w, h := int(f.Cell.W)*int(scale), int(f.Cell.H)*int(scale)
	if w > 0xFF || h > 0xFF {
		return geom.Size{}, fmt.Errorf("st7735r: scale %d too large for %s", scale, f.Name)
	}
	return geom.Sz(uint8(w), uint8(h)), nil
}

// drawGlyphs draws each character of s in its own window, advancing the cell
// rightwards.
func (d *Dev) drawGlyphs(f *font.Font, s []byte, cell geom.Rect, fg, bg rgb565.Color, scale uint8) error {
	for _, c := range s {
		g, err := f.Glyph(c)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrUnsupportedChar, err)
		}
		if err := d.drawGlyph(g, cell, fg, bg, int(scale)); err != nil {
			return err
		}
		cell.Origin.X += cell.Size.W
	}
	return nil
}

func (d *Dev) drawGlyph(g font.Glyph, cell geom.Rect, fg, bg rgb565.Color, scale int) error {
	if ok, err := d.setWindow(cell); !ok {
		return err
	}
	w := int(cell.Size.W)
	return d.stream(cell.Size.Area(), func(i int) rgb565.Color {
		if g.Set(i%w/scale, i/w/scale) {
			return fg
		}
		return bg
	})
}

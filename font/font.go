// Package font holds the fixed bitmap fonts drawn by the st7735r driver.
//
// A Font is an immutable table of equally sized glyphs. Two layouts exist:
// ColumnMajor tables store one byte per glyph column with bit n holding row
// n, RowMajor tables store one byte per glyph row with bit 7-c holding column
// c. Neither layout pads glyphs.
package font

import (
	"errors"
	"fmt"

	"periph.io/x/devices/v3/st7735r/geom"
)

// ErrUnsupported is returned for characters outside a font's range.
var ErrUnsupported = errors.New("font: unsupported character")

// Layout describes how glyph bits are packed.
type Layout uint8

const (
	// ColumnMajor stores a byte per column, bit n = row n. Glyphs are at most
	// 8 rows tall.
	ColumnMajor Layout = iota
	// RowMajor stores a byte per row, bit 7-c = column c. Glyphs are at most
	// 8 columns wide.
	RowMajor
)

// Font is a fixed-cell bitmap font covering the contiguous character range
// [First, First+N).
type Font struct {
	Name   string
	Cell   geom.Size
	First  byte
	Layout Layout
	Data   []byte
}

// Glyph is the bitmap of one character.
type Glyph struct {
	cell   geom.Size
	layout Layout
	bits   []byte
}

// bytesPerGlyph returns the number of table bytes one glyph occupies.
func (f *Font) bytesPerGlyph() int {
	if f.Layout == ColumnMajor {
		return int(f.Cell.W)
	}
	return int(f.Cell.H)
}

// Len returns the number of glyphs in the table.
func (f *Font) Len() int {
	n := f.bytesPerGlyph()
	if n == 0 {
		return 0
	}
	return len(f.Data) / n
}

// Has reports whether c can be drawn with f.
func (f *Font) Has(c byte) bool {
	return c >= f.First && int(c-f.First) < f.Len()
}

// Glyph returns the bitmap for c.
func (f *Font) Glyph(c byte) (Glyph, error) {
	if !f.Has(c) {
		return Glyph{}, fmt.Errorf("%w %q in %s", ErrUnsupported, c, f.Name)
	}
	n := f.bytesPerGlyph()
	i := int(c-f.First) * n
	return Glyph{cell: f.Cell, layout: f.Layout, bits: f.Data[i : i+n]}, nil
}

// Validate checks that the table is consistent with its layout.
func (f *Font) Validate() error {
	switch {
	case f.Cell.W == 0 || f.Cell.H == 0:
		return fmt.Errorf("font: %s: empty cell %v", f.Name, f.Cell)
	case f.Layout == ColumnMajor && f.Cell.H > 8:
		return fmt.Errorf("font: %s: column-major glyphs must be at most 8 rows", f.Name)
	case f.Layout == RowMajor && f.Cell.W > 8:
		return fmt.Errorf("font: %s: row-major glyphs must be at most 8 columns", f.Name)
	case len(f.Data)%f.bytesPerGlyph() != 0:
		return fmt.Errorf("font: %s: table length %d is not a whole number of glyphs", f.Name, len(f.Data))
	}
	return nil
}

// Cell returns the glyph cell size.
func (g Glyph) Cell() geom.Size {
	return g.cell
}

// Set reports whether the pixel at column col, row row is inked.
func (g Glyph) Set(col, row int) bool {
	if g.layout == ColumnMajor {
		return g.bits[col]&(1<<row) != 0
	}
	return g.bits[row]&(0x80>>col) != 0
}

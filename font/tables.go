package font

import (
	"image"

	xfont "golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"periph.io/x/devices/v3/st7735r/geom"
)

// Digits5x8 covers '0' to '9', 5 columns by 8 rows, column-major.
var Digits5x8 = &Font{
	Name:   "digits5x8",
	Cell:   geom.Sz(5, 8),
	First:  '0',
	Layout: ColumnMajor,
	Data: []byte{
		0x3E, 0x51, 0x49, 0x45, 0x3E, // 0
		0x00, 0x42, 0x7F, 0x40, 0x00, // 1
		0x72, 0x49, 0x49, 0x49, 0x46, // 2
		0x21, 0x41, 0x49, 0x4D, 0x33, // 3
		0x18, 0x14, 0x12, 0x7F, 0x10, // 4
		0x27, 0x45, 0x45, 0x45, 0x39, // 5
		0x3C, 0x4A, 0x49, 0x49, 0x31, // 6
		0x41, 0x21, 0x11, 0x09, 0x07, // 7
		0x36, 0x49, 0x49, 0x49, 0x36, // 8
		0x46, 0x49, 0x49, 0x29, 0x1E, // 9
	},
}

// ASCII8x12 covers printable ASCII, ' ' to '~', 8 columns by 12 rows,
// row-major.
var ASCII8x12 = rasterize("ascii8x12", basicfont.Face7x13, geom.Sz(8, 12), 10, ' ', '~')

// rasterize renders the characters [first, last] of face into a row-major
// table. baseline is the row the face's dot sits on; rows above 0 and below
// the cell are clipped.
func rasterize(name string, face xfont.Face, cell geom.Size, baseline int, first, last byte) *Font {
	f := &Font{Name: name, Cell: cell, First: first, Layout: RowMajor}
	f.Data = make([]byte, 0, int(last-first+1)*int(cell.H))
	for c := int(first); c <= int(last); c++ {
		dst := image.NewAlpha(image.Rect(0, 0, int(cell.W), int(cell.H)))
		d := xfont.Drawer{
			Dst:  dst,
			Src:  image.Opaque,
			Face: face,
			Dot:  fixed.P(0, baseline),
		}
		d.DrawString(string(rune(c)))
		for y := 0; y < int(cell.H); y++ {
			var row byte
			for x := 0; x < int(cell.W); x++ {
				if dst.AlphaAt(x, y).A >= 0x80 {
					row |= 0x80 >> x
				}
			}
			f.Data = append(f.Data, row)
		}
	}
	return f
}

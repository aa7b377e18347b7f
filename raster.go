package st7735r

import (
	"periph.io/x/devices/v3/st7735r/geom"
	"periph.io/x/devices/v3/st7735r/rgb565"
)

// DrawLine draws from start towards end in color c. The end point itself is
// not drawn, so a line whose ends coincide draws nothing.
//
// Horizontal and vertical lines are written as a single window. Other lines
// are walked with Bresenham's algorithm one pixel window at a time.
func (d *Dev) DrawLine(start, end geom.Point, c rgb565.Color) error {
	if err := d.ready(); err != nil {
		return err
	}
	switch {
	case start.X == end.X:
		y0, y1 := min(start.Y, end.Y), max(start.Y, end.Y)
		return d.fill(geom.R(start.X, y0, 1, y1-y0), c)
	case start.Y == end.Y:
		x0, x1 := min(start.X, end.X), max(start.X, end.X)
		return d.fill(geom.R(x0, start.Y, x1-x0, 1), c)
	}
	x, y := int(start.X), int(start.Y)
	x1, y1 := int(end.X), int(end.Y)
	dx, sx := x1-x, 1
	if dx < 0 {
		dx, sx = -dx, -1
	}
	dy, sy := y-y1, 1
	if dy > 0 {
		dy, sy = -dy, -1
	}
	e := dx + dy
	for x != x1 || y != y1 {
		if err := d.fill(geom.R(uint8(x), uint8(y), 1, 1), c); err != nil {
			return err
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x += sx
		}
		if e2 <= dx {
			e += dx
			y += sy
		}
	}
	return nil
}

// DrawRect draws frame in c, filled or as a one pixel outline. Outline
// corners are written once.
func (d *Dev) DrawRect(frame geom.Rect, c rgb565.Color, fill bool) error {
	if err := d.ready(); err != nil {
		return err
	}
	w, h := frame.Size.W, frame.Size.H
	if fill || w <= 2 || h <= 2 {
		return d.fill(frame, c)
	}
	x, y := frame.Origin.X, frame.Origin.Y
	edges := [...]geom.Rect{
		geom.R(x, y, w, 1),         // top, both corners
		geom.R(x+w-1, y+1, 1, h-1), // right, bottom-right corner
		geom.R(x, y+h-1, w-1, 1),   // bottom, bottom-left corner
		geom.R(x, y+1, 1, h-2),     // left
	}
	for _, r := range edges {
		if err := d.fill(r, c); err != nil {
			return err
		}
	}
	return nil
}

// FillScreen paints the whole panel in c.
func (d *Dev) FillScreen(c rgb565.Color) error {
	return d.DrawRect(d.frame, c, true)
}

// DrawBitmap copies colors into frame, row by row. colors must hold at
// least as many pixels as frame.
func (d *Dev) DrawBitmap(colors []rgb565.Color, frame geom.Rect) error {
	if err := d.ready(); err != nil {
		return err
	}
	if frame.Empty() {
		return nil
	}
	n := frame.Size.Area()
	if len(colors) < n {
		return ErrPixelCount
	}
	if _, err := d.setWindow(frame); err != nil {
		return err
	}
	return d.stream(n, func(i int) rgb565.Color { return colors[i] })
}

// DrawBinaryImage draws a packed 1-bit mask into frame: fg where a bit is
// set, bg elsewhere. Bits are MSB first, row-major, and rows are not padded,
// so the frame area must be a multiple of 8.
func (d *Dev) DrawBinaryImage(mask []byte, frame geom.Rect, fg, bg rgb565.Color) error {
	if err := d.ready(); err != nil {
		return err
	}
	if frame.Empty() {
		return nil
	}
	if err := checkMask(mask, frame.Size); err != nil {
		return err
	}
	return d.binaryImage(mask, frame, fg, bg)
}

func checkMask(mask []byte, s geom.Size) error {
	n := s.Area()
	if n%8 != 0 || len(mask) < n/8 {
		return ErrMaskSize
	}
	return nil
}

func (d *Dev) binaryImage(mask []byte, frame geom.Rect, fg, bg rgb565.Color) error {
	if _, err := d.setWindow(frame); err != nil {
		return err
	}
	return d.stream(frame.Size.Area(), func(i int) rgb565.Color {
		if mask[i>>3]&(0x80>>(i&7)) != 0 {
			return fg
		}
		return bg
	})
}

package st7735r

import (
	"periph.io/x/devices/v3/st7735r/geom"
	"periph.io/x/devices/v3/st7735r/rgb565"
)

// MenuIcon is a bitmap centered and padded inside a larger frame.
//
// Pixels holds either RGB565 pairs, high byte first (DrawMenuIcon), or a
// packed MSB-first mask (DrawBinaryIcon). Both are row-major over Size.
type MenuIcon struct {
	Frame      geom.Rect
	Size       geom.Size
	Pixels     []byte
	Foreground rgb565.Color
	Background rgb565.Color
}

// inner returns the rectangle the icon occupies once centered in its frame.
func (ic *MenuIcon) inner() (geom.Rect, error) {
	f := ic.Frame.Size
	if ic.Size.W > f.W || ic.Size.H > f.H {
		return geom.Rect{}, ErrIconTooLarge
	}
	off := geom.Vec((f.W-ic.Size.W)/2, (f.H-ic.Size.H)/2)
	return geom.Rect{Origin: ic.Frame.Origin.Add(off), Size: ic.Size}, nil
}

// DrawMenuIcon draws a color icon centered in its frame with a single
// window.
//
// The padding around the icon is Background. When highlighted it is
// Foreground instead, so a selected menu entry stands out by its frame. A
// nil icon draws nothing.
func (d *Dev) DrawMenuIcon(icon *MenuIcon, highlighted bool) error {
	if err := d.ready(); err != nil {
		return err
	}
	if icon == nil || icon.Frame.Empty() {
		return nil
	}
	in, err := icon.inner()
	if err != nil {
		return err
	}
	if len(icon.Pixels) < 2*icon.Size.Area() {
		return ErrPixelCount
	}
	pad := icon.Background
	if highlighted {
		pad = icon.Foreground
	}
	fw := int(icon.Frame.Size.W)
	ox, oy := int(in.Origin.X-icon.Frame.Origin.X), int(in.Origin.Y-icon.Frame.Origin.Y)
	iw, ih := int(icon.Size.W), int(icon.Size.H)
	if _, err := d.setWindow(icon.Frame); err != nil {
		return err
	}
	// Top band, then each icon row between its side pads, then bottom band.
	return d.stream(icon.Frame.Size.Area(), func(i int) rgb565.Color {
		row, col := i/fw-oy, i%fw-ox
		if row < 0 || row >= ih || col < 0 || col >= iw {
			return pad
		}
		j := 2 * (row*iw + col)
		return rgb565.Color(uint16(icon.Pixels[j])<<8 | uint16(icon.Pixels[j+1]))
	})
}

// DrawBinaryIcon draws a 1-bit icon centered in its frame: the four padding
// bands are filled with Background, then the mask is drawn with Foreground
// on Background. A nil icon draws nothing.
func (d *Dev) DrawBinaryIcon(icon *MenuIcon) error {
	if err := d.ready(); err != nil {
		return err
	}
	if icon == nil || icon.Frame.Empty() {
		return nil
	}
	in, err := icon.inner()
	if err != nil {
		return err
	}
	if !in.Empty() {
		if err := checkMask(icon.Pixels, icon.Size); err != nil {
			return err
		}
	}
	f := icon.Frame
	// Padding above, left of, right of and below the icon.
	bands := [...]geom.Rect{
		geom.R(f.MinX(), f.MinY(), f.Size.W, in.MinY()-f.MinY()),
		geom.R(f.MinX(), in.MinY(), in.MinX()-f.MinX(), in.Size.H),
		geom.R(in.MaxX(), in.MinY(), f.MaxX()-in.MaxX(), in.Size.H),
		geom.R(f.MinX(), in.MaxY(), f.Size.W, f.MaxY()-in.MaxY()),
	}
	for _, r := range bands {
		if err := d.fill(r, icon.Background); err != nil {
			return err
		}
	}
	if in.Empty() {
		return nil
	}
	return d.binaryImage(icon.Pixels, in, icon.Foreground, icon.Background)
}

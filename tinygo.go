package st7735r

import (
	"image/color"

	"tinygo.org/x/drivers"

	"periph.io/x/devices/v3/st7735r/rgb565"
)

var _ drivers.Displayer = (*Dev)(nil)

// Size returns the panel size in pixels.
func (d *Dev) Size() (x, y int16) {
	return int16(d.frame.Size.W), int16(d.frame.Size.H)
}

// SetPixel sets a pixel of the staging frame. Nothing reaches the panel
// until Display is called. Pixels outside the panel are ignored.
func (d *Dev) SetPixel(x, y int16, c color.RGBA) {
	if d.staging == nil {
		d.staging = rgb565.NewImage(d.Bounds())
	}
	d.staging.SetRGB565(int(x), int(y), rgb565.New(c.R, c.G, c.B))
}

// Display writes the staging frame to the panel.
func (d *Dev) Display() error {
	if d.staging == nil {
		d.staging = rgb565.NewImage(d.Bounds())
	}
	_, err := d.Write(d.staging.Pix)
	return err
}

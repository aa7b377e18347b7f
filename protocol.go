package st7735r

import (
	"fmt"

	"periph.io/x/devices/v3/st7735r/geom"
	"periph.io/x/devices/v3/st7735r/rgb565"
)

// transfer runs fn between BeginTransfer and EndTransfer. EndTransfer is
// always called; the first error wins.
func (d *Dev) transfer(fn func() error) error {
	if err := d.bus.BeginTransfer(); err != nil {
		return err
	}
	err := fn()
	if e := d.bus.EndTransfer(); err == nil {
		err = e
	}
	return err
}

// sendCommand writes cmd and its parameters in one transfer.
func (d *Dev) sendCommand(cmd byte, data ...byte) error {
	err := d.transfer(func() error {
		if err := d.bus.SetCommandMode(); err != nil {
			return err
		}
		if err := d.bus.WriteByte(cmd); err != nil {
			return err
		}
		if len(data) == 0 {
			return nil
		}
		if err := d.bus.SetDataMode(); err != nil {
			return err
		}
		for _, b := range data {
			if err := d.bus.WriteByte(b); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("st7735r: command 0x%02X: %w", cmd, err)
	}
	return nil
}

// SetWindow selects the region filled by the next StreamPixels call.
//
// It returns false without touching the bus when r is empty. Coordinates
// are relative to the panel; Opts.Origin is added before they are sent.
func (d *Dev) SetWindow(r geom.Rect) (bool, error) {
	if err := d.ready(); err != nil {
		return false, err
	}
	return d.setWindow(r)
}

func (d *Dev) setWindow(r geom.Rect) (bool, error) {
	d.window = 0
	if r.Empty() {
		d.log.Trace().Stringer("rect", r).Msg("skip empty window")
		return false, nil
	}
	x0 := d.origin.X + r.Origin.X
	x1 := x0 + r.Size.W - 1
	y0 := d.origin.Y + r.Origin.Y
	y1 := y0 + r.Size.H - 1
	if err := d.sendCommand(cmdCASET, 0x00, x0, 0x00, x1); err != nil {
		return false, err
	}
	if err := d.sendCommand(cmdRASET, 0x00, y0, 0x00, y1); err != nil {
		return false, err
	}
	d.window = r.Size.Area()
	return true, nil
}

// StreamPixels writes the first count colors into the current window, high
// byte first, after a single memory write command.
//
// count must not exceed len(colors) nor the window set by SetWindow; the
// window is consumed by the call.
func (d *Dev) StreamPixels(colors []rgb565.Color, count int) error {
	if err := d.ready(); err != nil {
		return err
	}
	if count < 0 || count > len(colors) {
		return ErrPixelCount
	}
	return d.stream(count, func(i int) rgb565.Color { return colors[i] })
}

// stream issues RAMWR and writes n pixels produced by next in one transfer.
func (d *Dev) stream(n int, next func(i int) rgb565.Color) error {
	if n > d.window {
		return ErrPixelCount
	}
	d.window = 0
	if n == 0 {
		return nil
	}
	if err := d.sendCommand(cmdRAMWR); err != nil {
		return err
	}
	if err := d.bus.SetDataMode(); err != nil {
		return fmt.Errorf("st7735r: memory write: %w", err)
	}
	err := d.transfer(func() error {
		for i := range n {
			hi, lo := next(i).Bytes()
			if err := d.bus.WriteByte(hi); err != nil {
				return err
			}
			if err := d.bus.WriteByte(lo); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("st7735r: memory write: %w", err)
	}
	return nil
}

// fill writes c over r. Empty rectangles are skipped.
func (d *Dev) fill(r geom.Rect, c rgb565.Color) error {
	if ok, err := d.setWindow(r); !ok {
		return err
	}
	return d.stream(r.Size.Area(), func(int) rgb565.Color { return c })
}

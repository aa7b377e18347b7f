package config

import (
	"errors"
	"fmt"
)

// validate applies the same limits as st7735r.New.
func validate(c *Config) error {
	p := c.Panel
	if p.Width < 1 || p.Height < 1 || p.Width > 162 || p.Height > 162 {
		return fmt.Errorf("panel size %dx%d out of range 1..162", p.Width, p.Height)
	}
	if p.OriginX < 0 || p.OriginY < 0 || p.OriginX+p.Width > 162 || p.OriginY+p.Height > 162 {
		return fmt.Errorf("panel origin (%d,%d) puts the frame outside controller memory", p.OriginX, p.OriginY)
	}
	if p.MADCTL < 0 || p.MADCTL > 0xFF {
		return fmt.Errorf("madctl 0x%X is not a byte", p.MADCTL)
	}

	switch c.Bus.Kind {
	case "spi":
		if c.Bus.Hz <= 0 {
			return fmt.Errorf("bus.hz must be positive, got %d", c.Bus.Hz)
		}
		if c.Bus.DC == "" {
			return errors.New("bus.dc is required")
		}
	case "parallel":
		if c.Bus.CS == "" || c.Bus.DC == "" || c.Bus.WR == "" || c.Bus.RD == "" {
			return errors.New("parallel bus needs cs, dc, wr and rd")
		}
		if len(c.Bus.Data) != 8 {
			return fmt.Errorf("parallel bus needs 8 data pins, got %d", len(c.Bus.Data))
		}
	default:
		return fmt.Errorf("unknown bus kind %q", c.Bus.Kind)
	}

	switch c.Log.Format {
	case "console", "json":
	default:
		return fmt.Errorf("unknown log format %q", c.Log.Format)
	}

	if c.Sim.Scale < 1 || c.Sim.Scale > 16 {
		return fmt.Errorf("sim.scale %d out of range 1..16", c.Sim.Scale)
	}
	return nil
}

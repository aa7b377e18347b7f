package config

import (
	"github.com/spf13/viper"
)

// DefaultConfig matches the common 1.8" 128x160 module on a Raspberry Pi.
func DefaultConfig() *Config {
	return &Config{
		Panel: PanelConfig{
			Width:  128,
			Height: 160,
			MADCTL: 0xC8,
		},
		Bus: BusConfig{
			Kind: "spi",
			Hz:   15_000_000,
			DC:   "GPIO25",
			RST:  "GPIO24",
			LED:  "GPIO18",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
		Sim: SimConfig{
			Scale: 3,
		},
	}
}

func setDefaults(v *viper.Viper) {
	d := DefaultConfig()

	v.SetDefault("panel.width", d.Panel.Width)
	v.SetDefault("panel.height", d.Panel.Height)
	v.SetDefault("panel.origin_x", d.Panel.OriginX)
	v.SetDefault("panel.origin_y", d.Panel.OriginY)
	v.SetDefault("panel.madctl", d.Panel.MADCTL)
	v.SetDefault("panel.software_reset", d.Panel.SoftwareReset)

	v.SetDefault("bus.kind", d.Bus.Kind)
	v.SetDefault("bus.spi", d.Bus.SPI)
	v.SetDefault("bus.hz", d.Bus.Hz)
	v.SetDefault("bus.dc", d.Bus.DC)
	v.SetDefault("bus.rst", d.Bus.RST)
	v.SetDefault("bus.led", d.Bus.LED)
	v.SetDefault("bus.cs", d.Bus.CS)
	v.SetDefault("bus.wr", d.Bus.WR)
	v.SetDefault("bus.rd", d.Bus.RD)
	v.SetDefault("bus.data", d.Bus.Data)

	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)

	v.SetDefault("sim.scene", d.Sim.Scene)
	v.SetDefault("sim.out", d.Sim.Out)
	v.SetDefault("sim.scale", d.Sim.Scale)
	v.SetDefault("sim.window", d.Sim.Window)
	v.SetDefault("sim.watch", d.Sim.Watch)
}

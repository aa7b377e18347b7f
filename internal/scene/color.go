package scene

import (
	"fmt"
	"strconv"
	"strings"

	"periph.io/x/devices/v3/st7735r/rgb565"
)

var named = map[string]rgb565.Color{
	"black":   rgb565.Black,
	"white":   rgb565.White,
	"red":     rgb565.Red,
	"green":   rgb565.Green,
	"blue":    rgb565.Blue,
	"yellow":  rgb565.Yellow,
	"cyan":    rgb565.Cyan,
	"magenta": rgb565.Magenta,
	"navy":    rgb565.New(0, 0, 0x80),
	"gray":    rgb565.New(0x80, 0x80, 0x80),
	"orange":  rgb565.New(0xFF, 0xA5, 0),
}

// ParseColor accepts a colour name, "#RRGGBB" or a raw RGB565 value such as
// "0xF800". An empty string yields def.
func ParseColor(s string, def rgb565.Color) (rgb565.Color, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return def, nil
	}
	if c, ok := named[s]; ok {
		return c, nil
	}
	if rgb, ok := strings.CutPrefix(s, "#"); ok {
		if len(rgb) != 6 {
			return 0, fmt.Errorf("colour %q: want #RRGGBB", s)
		}
		v, err := strconv.ParseUint(rgb, 16, 32)
		if err != nil {
			return 0, fmt.Errorf("colour %q: %w", s, err)
		}
		return rgb565.New(uint8(v>>16), uint8(v>>8), uint8(v)), nil
	}
	v, err := strconv.ParseUint(s, 0, 16)
	if err != nil {
		return 0, fmt.Errorf("colour %q: %w", s, err)
	}
	return rgb565.Color(v), nil
}

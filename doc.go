// Package st7735r controls an ST7735R 16-bit colour TFT panel.
//
// The ST7735R is a 132×162 RGB565 controller found on the ubiquitous 1.8"
// 128×160 modules. The driver speaks the controller's windowed memory-write
// protocol: every primitive selects an addressing window with CASET/RASET,
// issues RAMWR and streams two bytes per pixel, high byte first. Nothing is
// buffered on the host side; each call writes straight to the panel.
//
// # Display Characteristics
//
// - 16-bit RGB565 colour (rgb565.Color)
// - Up to 132×162 pixels of frame memory, commonly 128×160 visible
// - Hardware sleep, display inversion and scan direction (MADCTL)
//
// # Buses
//
// The driver only needs the Bus interface. Three implementations exist:
//
//	parallel  8-bit 8080 bus on periph GPIO pins (CS, DC, WR, RD, RST, LED, D0-D7)
//	spibus    4-wire SPI on a periph spi.Port plus a DC pin
//	tinybus   SPI on TinyGo (tinygo.org/x/drivers)
//
// st7735rtest provides a recording bus and a controller emulator for tests.
//
// # Basic Usage
//
//	package main
//
//	import (
//		"periph.io/x/conn/v3/gpio/gpioreg"
//		"periph.io/x/conn/v3/spi/spireg"
//		"periph.io/x/devices/v3/st7735r"
//		"periph.io/x/devices/v3/st7735r/geom"
//		"periph.io/x/devices/v3/st7735r/rgb565"
//		"periph.io/x/devices/v3/st7735r/spibus"
//		"periph.io/x/host/v3"
//	)
//
//	func main() {
//		host.Init()
//		port, _ := spireg.Open("")
//		bus, _ := spibus.New(port, gpioreg.ByName("GPIO25"), &spibus.Opts{
//			RST: gpioreg.ByName("GPIO24"),
//			LED: gpioreg.ByName("GPIO18"),
//		})
//		dev, _ := st7735r.New(bus, nil)
//		defer dev.Halt()
//
//		dev.ExitSleep()
//		dev.FillScreen(rgb565.Black)
//		dev.DrawString(geom.Pt(4, 4), "Hello", rgb565.White, rgb565.Black, 1)
//		dev.DrawNumber(geom.Pt(4, 20), 42, rgb565.Green, rgb565.Black, 2)
//	}
//
// # Power
//
// New leaves the panel asleep with the backlight off. ExitSleep and
// EnterSleep switch the backlight and send SLPOUT/SLPIN followed by a 20ms
// settling delay, every time they are called. Drawing while asleep returns
// ErrAsleep.
//
// # Errors
//
// Zero-sized regions are skipped silently. Requests that would corrupt the
// pixel stream (short bitmaps, masks whose area is not a multiple of 8,
// characters missing from the font, icons larger than their frame) fail
// before any byte is sent. Bus errors are wrapped and returned; the
// controller itself reports nothing, so a disconnected panel goes unnoticed.
//
// # Compatibility
//
// Dev implements display.Drawer from periph.io and drivers.Displayer from
// TinyGo.
package st7735r

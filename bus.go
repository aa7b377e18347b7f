package st7735r

import "time"

// Bus is the wire between the driver and an ST7735R controller.
//
// The controller distinguishes commands from parameters and pixel data with
// the D/C line; SetCommandMode and SetDataMode select it. BeginTransfer and
// EndTransfer bracket every transaction with chip select. Implementations
// exist for an 8-bit 8080 parallel bus (package parallel), 4-wire SPI on
// periph (package spibus) and TinyGo SPI (package tinybus).
//
// Errors returned are host-side failures, a GPIO or SPI driver refusing a
// call. A missing or stuck panel cannot be detected.
type Bus interface {
	SetCommandMode() error
	SetDataMode() error
	BeginTransfer() error
	EndTransfer() error
	WriteByte(b byte) error
	ReadByte() (byte, error)
	Delay(d time.Duration)
	SetBacklight(on bool) error
	HardwareReset() error
}

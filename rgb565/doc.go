// Package rgb565 provides the 16-bit colour type and image format used by the
// ST7735R controller.
//
// Each pixel is 5 bits of red, 6 bits of green and 5 bits of blue packed into
// a uint16 and sent high byte first. Image stores pixels in that same wire
// order so a row can be handed to the controller without conversion.
//
// Memory layout example for a 2-pixel row:
//
//	Pixels: red     green
//	Colors: 0xF800  0x07E0
//	Bytes:  F8 00   07 E0
//
// This package provides:
//
// - Color: a uint16 RGB565 colour implementing color.Color
// - Model: a color.Model converting any colour to Color
// - Image: an image.Image (and draw.Image) backed by big-endian RGB565 pairs
//
// Example usage:
//
//	img := rgb565.NewImage(image.Rect(0, 0, 128, 160))
//	img.SetRGB565(10, 20, rgb565.Red)
//	c := img.RGB565At(10, 20) // 0xF800
//	draw.Draw(img, img.Bounds(), image.NewUniform(rgb565.Blue), image.Point{}, draw.Src)
package rgb565

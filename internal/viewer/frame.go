// Package viewer shows an emulated panel in a desktop window.
//
// The window needs ebiten and a display; build with -tags headless to leave
// it out, in which case Run fails with ErrHeadless.
package viewer

import (
	"errors"
	"image"
	"sync"

	"periph.io/x/devices/v3/st7735r/rgb565"
)

// ErrHeadless is returned by Run in headless builds.
var ErrHeadless = errors.New("viewer: built without a window backend")

// Frame is an RGBA copy of the panel, safe to update from one goroutine
// while the window reads it from another.
type Frame struct {
	mu      sync.RWMutex
	rgba    *image.RGBA
	version uint64
}

// NewFrame returns a black frame of w x h pixels.
func NewFrame(w, h int) *Frame {
	return &Frame{rgba: image.NewRGBA(image.Rect(0, 0, w, h))}
}

// Bounds returns the frame size.
func (f *Frame) Bounds() image.Rectangle {
	return f.rgba.Rect
}

// Set copies src, expanding each RGB565 pixel to 8 bits per channel. Pixels
// outside the frame are ignored.
func (f *Frame) Set(src *rgb565.Image) {
	f.mu.Lock()
	defer f.mu.Unlock()

	r := f.rgba.Rect.Intersect(src.Bounds())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			cr, cg, cb, _ := src.RGB565At(x, y).RGBA()
			i := f.rgba.PixOffset(x, y)
			f.rgba.Pix[i+0] = uint8(cr >> 8)
			f.rgba.Pix[i+1] = uint8(cg >> 8)
			f.rgba.Pix[i+2] = uint8(cb >> 8)
			f.rgba.Pix[i+3] = 0xFF
		}
	}
	f.version++
}

// Snapshot copies the pixels into dst if they changed since version and
// returns the current version.
func (f *Frame) Snapshot(dst []byte, version uint64) uint64 {
	f.mu.RLock()
	defer f.mu.RUnlock()

	if version != f.version {
		copy(dst, f.rgba.Pix)
	}
	return f.version
}

// Image returns a copy of the frame.
func (f *Frame) Image() *image.RGBA {
	f.mu.RLock()
	defer f.mu.RUnlock()

	c := *f.rgba
	c.Pix = append([]uint8(nil), f.rgba.Pix...)
	return &c
}

// Options configure the window.
type Options struct {
	Title string
	Scale int
}

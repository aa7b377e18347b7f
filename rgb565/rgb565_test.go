package rgb565

import (
	"image"
	"image/color"
	"testing"
)

func TestColorRGBA(t *testing.T) {
	tests := []struct {
		name       string
		c          Color
		r, g, b, a uint32
	}{
		{"black", Black, 0, 0, 0, 0xFFFF},
		{"white", White, 0xFFFF, 0xFFFF, 0xFFFF, 0xFFFF},
		{"red", Red, 0xFFFF, 0, 0, 0xFFFF},
		{"green", Green, 0, 0xFFFF, 0, 0xFFFF},
		{"blue", Blue, 0, 0, 0xFFFF, 0xFFFF},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, g, b, a := tt.c.RGBA()
			if r != tt.r || g != tt.g || b != tt.b || a != tt.a {
				t.Errorf("RGBA() = (%x, %x, %x, %x), want (%x, %x, %x, %x)",
					r, g, b, a, tt.r, tt.g, tt.b, tt.a)
			}
		})
	}
}

func TestColorBytes(t *testing.T) {
	hi, lo := Color(0xF81F).Bytes()
	if hi != 0xF8 || lo != 0x1F {
		t.Errorf("Bytes() = (0x%02X, 0x%02X), want (0xF8, 0x1F)", hi, lo)
	}
}

func TestNew(t *testing.T) {
	tests := []struct {
		r, g, b uint8
		want    Color
	}{
		{0xFF, 0x00, 0x00, Red},
		{0x00, 0xFF, 0x00, Green},
		{0x00, 0x00, 0xFF, Blue},
		{0xFF, 0xFF, 0xFF, White},
		{0x07, 0x03, 0x07, Black}, // below one step of each channel
	}
	for _, tt := range tests {
		if got := New(tt.r, tt.g, tt.b); got != tt.want {
			t.Errorf("New(%d, %d, %d) = %v, want %v", tt.r, tt.g, tt.b, got, tt.want)
		}
	}
}

func TestModelConvert(t *testing.T) {
	tests := []struct {
		name  string
		input color.Color
		want  Color
	}{
		{"passthrough", Color(0x1234), 0x1234},
		{"black", color.Black, Black},
		{"white", color.White, White},
		{"red", color.RGBA{0xFF, 0, 0, 0xFF}, Red},
		{"cyan", color.RGBA{0, 0xFF, 0xFF, 0xFF}, Cyan},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Model.Convert(tt.input).(Color); got != tt.want {
				t.Errorf("Model.Convert(%v) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestNewImage(t *testing.T) {
	tests := []struct {
		name       string
		rect       image.Rectangle
		wantStride int
		wantPixLen int
	}{
		{"128x160", image.Rect(0, 0, 128, 160), 256, 128 * 160 * 2},
		{"1x1", image.Rect(0, 0, 1, 1), 2, 2},
		{"offset rect", image.Rect(10, 20, 13, 22), 6, 12},
		{"empty", image.Rect(0, 0, 0, 5), 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img := NewImage(tt.rect)
			if img.Rect != tt.rect {
				t.Errorf("Rect = %v, want %v", img.Rect, tt.rect)
			}
			if img.Stride != tt.wantStride {
				t.Errorf("Stride = %d, want %d", img.Stride, tt.wantStride)
			}
			if len(img.Pix) != tt.wantPixLen {
				t.Errorf("len(Pix) = %d, want %d", len(img.Pix), tt.wantPixLen)
			}
		})
	}
}

func TestImageWireOrder(t *testing.T) {
	img := NewImage(image.Rect(0, 0, 2, 1))
	img.SetRGB565(0, 0, Red)
	img.SetRGB565(1, 0, Green)

	want := []byte{0xF8, 0x00, 0x07, 0xE0}
	for i, b := range want {
		if img.Pix[i] != b {
			t.Errorf("Pix[%d] = 0x%02X, want 0x%02X", i, img.Pix[i], b)
		}
	}
}

func TestImageSetGet(t *testing.T) {
	img := NewImage(image.Rect(0, 0, 3, 2))
	rows := [][3]Color{
		{Red, Green, Blue},
		{White, Black, Magenta},
	}
	for y, row := range rows {
		for x, c := range row {
			img.SetRGB565(x, y, c)
		}
	}
	for y, row := range rows {
		for x, want := range row {
			if got := img.RGB565At(x, y); got != want {
				t.Errorf("RGB565At(%d, %d) = %v, want %v", x, y, got, want)
			}
		}
	}

	img.Set(0, 0, color.White)
	if got := img.At(0, 0); got != White {
		t.Errorf("After Set(0, 0, color.White), At(0, 0) = %v, want %v", got, White)
	}
}

func TestImageOutOfBounds(t *testing.T) {
	img := NewImage(image.Rect(0, 0, 4, 4))
	img.SetRGB565(-1, 0, White)
	img.SetRGB565(4, 0, White)
	img.SetRGB565(0, 4, White)

	for i, b := range img.Pix {
		if b != 0 {
			t.Fatalf("Pix[%d] = 0x%02X after out-of-bounds writes, want 0", i, b)
		}
	}
	if got := img.RGB565At(-1, 0); got != Black {
		t.Errorf("RGB565At(-1, 0) = %v, want Black", got)
	}
}

func TestImageOffsetRect(t *testing.T) {
	img := NewImage(image.Rect(100, 50, 104, 52))
	img.SetRGB565(100, 50, Blue)
	if got := img.RGB565At(100, 50); got != Blue {
		t.Errorf("RGB565At(100, 50) = %v, want Blue", got)
	}
	if img.Pix[0] != 0x00 || img.Pix[1] != 0x1F {
		t.Errorf("Pix[0:2] = %X, want 001F", img.Pix[0:2])
	}
	if got := img.PixOffset(101, 51); got != 10 {
		t.Errorf("PixOffset(101, 51) = %d, want 10", got)
	}
}

func TestImageColors(t *testing.T) {
	img := NewImage(image.Rect(0, 0, 2, 2))
	img.SetRGB565(1, 1, Yellow)
	got := img.Colors(image.Rect(1, 0, 3, 2))
	want := []Color{Black, Black, Yellow, Black}
	if len(got) != len(want) {
		t.Fatalf("len(Colors()) = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Colors()[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestImageColorModel(t *testing.T) {
	img := NewImage(image.Rect(0, 0, 4, 4))
	if img.ColorModel() != Model {
		t.Error("ColorModel() did not return Model")
	}
}

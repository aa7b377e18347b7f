package font

import (
	"errors"
	"testing"

	"periph.io/x/devices/v3/st7735r/geom"
)

func TestTablesValidate(t *testing.T) {
	for _, f := range []*Font{Digits5x8, ASCII8x12} {
		if err := f.Validate(); err != nil {
			t.Errorf("%s.Validate() = %v", f.Name, err)
		}
	}
}

func TestTableLengths(t *testing.T) {
	if got := Digits5x8.Len(); got != 10 {
		t.Errorf("Digits5x8.Len() = %d, want 10", got)
	}
	if got := ASCII8x12.Len(); got != 95 {
		t.Errorf("ASCII8x12.Len() = %d, want 95", got)
	}
	if got := len(ASCII8x12.Data); got != 95*12 {
		t.Errorf("len(ASCII8x12.Data) = %d, want %d", got, 95*12)
	}
}

func TestDigitGlyph(t *testing.T) {
	g, err := Digits5x8.Glyph('1')
	if err != nil {
		t.Fatal(err)
	}
	// Column 2 of '1' is 0x7F: rows 0-6 inked, row 7 clear.
	for row := 0; row < 7; row++ {
		if !g.Set(2, row) {
			t.Errorf("'1' column 2 row %d not set", row)
		}
	}
	if g.Set(2, 7) {
		t.Error("'1' column 2 row 7 set")
	}
	// Column 0 of '1' is blank.
	for row := 0; row < 8; row++ {
		if g.Set(0, row) {
			t.Errorf("'1' column 0 row %d set", row)
		}
	}
	if g.Cell() != geom.Sz(5, 8) {
		t.Errorf("Cell() = %v, want 5x8", g.Cell())
	}
}

func TestRowMajorGlyph(t *testing.T) {
	f := &Font{
		Name:   "test",
		Cell:   geom.Sz(8, 2),
		First:  'A',
		Layout: RowMajor,
		Data:   []byte{0x80, 0x01},
	}
	g, err := f.Glyph('A')
	if err != nil {
		t.Fatal(err)
	}
	if !g.Set(0, 0) || g.Set(1, 0) {
		t.Error("row 0 should only have column 0 set")
	}
	if !g.Set(7, 1) || g.Set(0, 1) {
		t.Error("row 1 should only have column 7 set")
	}
}

func TestASCIISpaceIsBlank(t *testing.T) {
	g, err := ASCII8x12.Glyph(' ')
	if err != nil {
		t.Fatal(err)
	}
	for row := 0; row < 12; row++ {
		for col := 0; col < 8; col++ {
			if g.Set(col, row) {
				t.Fatalf("' ' has pixel set at (%d, %d)", col, row)
			}
		}
	}
}

func TestASCIIPrintableInked(t *testing.T) {
	for _, c := range []byte("AZaz09#~") {
		g, err := ASCII8x12.Glyph(c)
		if err != nil {
			t.Fatal(err)
		}
		inked := 0
		for row := 0; row < 12; row++ {
			for col := 0; col < 8; col++ {
				if g.Set(col, row) {
					inked++
				}
			}
		}
		if inked == 0 {
			t.Errorf("%q has no pixels set", c)
		}
	}
}

func TestGlyphUnsupported(t *testing.T) {
	tests := []struct {
		f *Font
		c byte
	}{
		{Digits5x8, 'a'},
		{Digits5x8, '/'},
		{ASCII8x12, 0x1F},
		{ASCII8x12, 0x7F},
		{ASCII8x12, 0xC3},
	}
	for _, tt := range tests {
		if tt.f.Has(tt.c) {
			t.Errorf("%s.Has(%q) = true", tt.f.Name, tt.c)
		}
		if _, err := tt.f.Glyph(tt.c); !errors.Is(err, ErrUnsupported) {
			t.Errorf("%s.Glyph(%q) error = %v, want ErrUnsupported", tt.f.Name, tt.c, err)
		}
	}
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name string
		f    *Font
	}{
		{"empty cell", &Font{Name: "x", Cell: geom.Sz(0, 8)}},
		{"tall column-major", &Font{Name: "x", Cell: geom.Sz(5, 9), Layout: ColumnMajor, Data: make([]byte, 5)}},
		{"wide row-major", &Font{Name: "x", Cell: geom.Sz(9, 12), Layout: RowMajor, Data: make([]byte, 12)}},
		{"ragged table", &Font{Name: "x", Cell: geom.Sz(5, 8), Layout: ColumnMajor, Data: make([]byte, 7)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.f.Validate(); err == nil {
				t.Error("Validate() = nil, want error")
			}
		})
	}
}

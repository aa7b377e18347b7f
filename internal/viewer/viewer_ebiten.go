//go:build !headless

package viewer

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

type window struct {
	f       *Frame
	img     *ebiten.Image
	pix     []byte
	version uint64
}

// Run opens a window showing f and blocks until it is closed or Escape is
// pressed. It must be called from the main goroutine.
func Run(f *Frame, opts Options) error {
	b := f.Bounds()
	scale := max(opts.Scale, 1)
	ebiten.SetWindowSize(b.Dx()*scale, b.Dy()*scale)
	ebiten.SetWindowTitle(opts.Title)
	ebiten.SetWindowResizable(true)
	ebiten.SetRunnableOnUnfocused(true)

	w := &window{f: f, pix: make([]byte, 4*b.Dx()*b.Dy()), version: ^uint64(0)}
	if err := ebiten.RunGame(w); err != nil {
		return fmt.Errorf("viewer: %w", err)
	}
	return nil
}

func (w *window) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	return nil
}

func (w *window) Draw(screen *ebiten.Image) {
	if w.img == nil {
		b := w.f.Bounds()
		w.img = ebiten.NewImage(b.Dx(), b.Dy())
	}
	if v := w.f.Snapshot(w.pix, w.version); v != w.version {
		w.version = v
		w.img.WritePixels(w.pix)
	}
	screen.DrawImage(w.img, nil)
}

func (w *window) Layout(_, _ int) (int, int) {
	b := w.f.Bounds()
	return b.Dx(), b.Dy()
}

//go:build !headless

package visualize

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// EbitenBackend renders the heatmap in a regular window via Ebiten's
// immediate-mode game loop, the same engine video_backend_ebiten.go
// drives its own frame buffer through.
type EbitenBackend struct {
	h       *heatmap
	window  *ebiten.Image
	started bool
}

func newEbitenBackend(size int) *EbitenBackend {
	return &EbitenBackend{h: newHeatmap(size)}
}

func (b *EbitenBackend) Start() error {
	cols, rows := b.h.cols, b.h.rows
	ebiten.SetWindowSize(cols*8, rows*8)
	ebiten.SetWindowTitle("dramdiag heatmap")
	b.started = true
	go func() { _ = ebiten.RunGame(b) }()
	return nil
}

func (b *EbitenBackend) Stop() error {
	b.started = false
	return nil
}

func (b *EbitenBackend) UpdateBlock(idx, width int, mismatches uint64) {
	b.h.update(idx, width, mismatches)
}

func (b *EbitenBackend) Snapshot() ([]byte, int, int) {
	return b.h.rgba(1)
}

// Update and Draw implement ebiten.Game.

func (b *EbitenBackend) Update() error { return nil }

func (b *EbitenBackend) Draw(screen *ebiten.Image) {
	pixels, cols, rows := b.h.rgba(4)
	if b.window == nil {
		b.window = ebiten.NewImage(cols, rows)
	}
	b.window.WritePixels(pixels)
	screen.DrawImage(b.window, nil)
}

func (b *EbitenBackend) Layout(outsideWidth, outsideHeight int) (int, int) {
	return b.h.cols * 8, b.h.rows * 8
}

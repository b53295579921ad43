package visualize

import "testing"

func TestDimensionsNeverZero(t *testing.T) {
	for _, size := range []int{0, 1, 4096, 1 << 20, 1 << 30} {
		cols, rows := Dimensions(size)
		if cols < 1 || rows < 1 {
			t.Fatalf("Dimensions(%d) = (%d, %d), want both >= 1", size, cols, rows)
		}
	}
}

func TestHeatmapUpdateAndRGBA(t *testing.T) {
	h := newHeatmap(1 << 20)
	h.update(0, 32, 5)
	pixels, cols, rows := h.rgba(5)
	if len(pixels) != cols*rows*4 {
		t.Fatalf("rgba pixel buffer len = %d, want %d", len(pixels), cols*rows*4)
	}
	// The saturated cell should render fully red (frac == 1).
	if pixels[0] != 255 || pixels[1] != 0 {
		t.Fatalf("saturated cell = (%d,%d,%d,%d), want fully red", pixels[0], pixels[1], pixels[2], pixels[3])
	}
}

func TestHeatmapZeroMismatchesIsGreen(t *testing.T) {
	h := newHeatmap(4096 * 4)
	pixels, _, _ := h.rgba(5)
	if pixels[0] != 0 || pixels[1] != 255 {
		t.Fatalf("untouched cell = (%d,%d,%d,%d), want fully green", pixels[0], pixels[1], pixels[2], pixels[3])
	}
}

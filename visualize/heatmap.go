package visualize

import "sync"

// heatmap is the shared pixel-buffer bookkeeping both the Ebiten and
// Vulkan backends build on: a density grid updated from UpdateBlock and
// converted to RGBA on Snapshot. Kept independent of either GPU API so
// the render path is identical and only the presentation differs.
type heatmap struct {
	mu     sync.Mutex
	cols   int
	rows   int
	blockB int
	counts []uint32
}

func newHeatmap(size int) *heatmap {
	cols, rows := Dimensions(size)
	return &heatmap{
		cols:   cols,
		rows:   rows,
		blockB: size / (cols * rows),
		counts: make([]uint32, cols*rows),
	}
}

func (h *heatmap) update(idx, width int, mismatches uint64) {
	if h.blockB == 0 {
		return
	}
	cell := idx / h.blockB
	h.mu.Lock()
	defer h.mu.Unlock()
	if cell >= 0 && cell < len(h.counts) {
		h.counts[cell] += uint32(mismatches)
	}
}

// rgba renders the current counts as a green-to-red heat ramp: zero
// mismatches is green, saturating to red at saturateAt or more.
func (h *heatmap) rgba(saturateAt uint32) ([]byte, int, int) {
	h.mu.Lock()
	defer h.mu.Unlock()

	pixels := make([]byte, len(h.counts)*4)
	for i, c := range h.counts {
		if c > saturateAt {
			c = saturateAt
		}
		var frac float64
		if saturateAt > 0 {
			frac = float64(c) / float64(saturateAt)
		}
		r := byte(frac * 255)
		g := byte((1 - frac) * 255)
		pixels[i*4+0] = r
		pixels[i*4+1] = g
		pixels[i*4+2] = 0
		pixels[i*4+3] = 255
	}
	return pixels, h.cols, h.rows
}

package visualize

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"

	xdraw "golang.org/x/image/draw"
)

// SnapshotPNG scales a Backend's current heatmap up to outW x outH with
// nearest-neighbor interpolation (golang.org/x/image/draw, the same
// package other ebiten/x-image based tools in the pack use for
// resampling) and writes it to w as a PNG.
func SnapshotPNG(b Backend, outW, outH int, w io.Writer) error {
	pixels, cols, rows := b.Snapshot()
	if cols == 0 || rows == 0 {
		return fmt.Errorf("visualize: empty snapshot")
	}

	src := image.NewRGBA(image.Rect(0, 0, cols, rows))
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			i := (y*cols + x) * 4
			src.Set(x, y, color.RGBA{pixels[i], pixels[i+1], pixels[i+2], pixels[i+3]})
		}
	}

	dst := image.NewRGBA(image.Rect(0, 0, outW, outH))
	xdraw.NearestNeighbor.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Over, nil)

	return png.Encode(w, dst)
}

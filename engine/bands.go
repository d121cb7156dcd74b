package engine

import (
	"image"
	"runtime"
	"sync"

	"github.com/pthm-cable/staticfield/field"
)

// parallelThreshold is the minimum row count to split across workers.
// Below this, a single band is faster due to goroutine overhead.
const parallelThreshold = 32

// shadePixels evaluates v for every pixel of img. Rows are split into
// contiguous bands, one per worker, and all bands finish before it returns.
func shadePixels(img *image.RGBA, v field.PixelVariant, f *field.Frame, workers int) {
	h := img.Bounds().Dy()
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers == 1 || h < parallelThreshold {
		shadeRows(img, v, f, 0, h)
		return
	}
	if workers > h {
		workers = h
	}

	var wg sync.WaitGroup
	band := (h + workers - 1) / workers
	for start := 0; start < h; start += band {
		end := min(start+band, h)
		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			shadeRows(img, v, f, start, end)
		}(start, end)
	}
	wg.Wait()
}

func shadeRows(img *image.RGBA, v field.PixelVariant, f *field.Frame, y0, y1 int) {
	w := img.Bounds().Dx()
	for y := y0; y < y1; y++ {
		off := img.PixOffset(0, y)
		for x := 0; x < w; x++ {
			c := v.Shade(x, y, f)
			p := img.Pix[off : off+4 : off+4]
			p[0], p[1], p[2], p[3] = c.R, c.G, c.B, c.A
			off += 4
		}
	}
}

/*
Package feature locates the high-texture anchor pixel (C3) used to seed
the chaos position generator when the caller supplies none.

The gradient-magnitude / sliding-window scoring is grounded directly on
the original source's extract_chaos_parameters (zk_proof_generator.py),
generalized from "take the single argmax pixel" to "score a window of
side w and return its centre", per the distilled spec's §4.3.
*/
package feature

import (
	"github.com/Saudadeeee/zk-snark-X-Steganography/raster"
)

// ExtractAnchor returns the (x0, y0) anchor for r, deterministically.
// windowMax caps the sliding window's side (the effective side is
// min(windowMax, width/4, height/4)).
func ExtractAnchor(r *raster.Raster, windowMax int) (x0, y0 uint16) {
	gray := r.Gray()
	grad := gradientMagnitude(gray, r.Width, r.Height)

	w := windowMax
	if q := r.Width / 4; q < w {
		w = q
	}
	if q := r.Height / 4; q < w {
		w = q
	}
	if w < 1 {
		w = 1
	}

	step := w / 4
	if step < 1 {
		step = 1
	}

	bestScore := -1
	bestY, bestX := 0, 0

	for top := 0; top+w <= r.Height; top += step {
		for left := 0; left+w <= r.Width; left += step {
			score := windowScore(grad, left, top, w)
			if score > bestScore || (score == bestScore && lexLess(top, left, bestY, bestX)) {
				bestScore = score
				bestY, bestX = top, left
			}
		}
	}

	cx := bestX + w/2
	cy := bestY + w/2
	return uint16(cx), uint16(cy)
}

func lexLess(y1, x1, y2, x2 int) bool {
	if y1 != y2 {
		return y1 < y2
	}
	return x1 < x2
}

func gradientMagnitude(gray [][]int, width, height int) [][]int {
	grad := make([][]int, height)
	for y := 0; y < height; y++ {
		row := make([]int, width)
		for x := 0; x < width; x++ {
			var gx, gy int
			if x+1 < width {
				gx = abs(gray[y][x+1] - gray[y][x])
			}
			if y+1 < height {
				gy = abs(gray[y+1][x] - gray[y][x])
			}
			row[x] = gx + gy
		}
		grad[y] = row
	}
	return grad
}

func windowScore(grad [][]int, left, top, side int) int {
	sum := 0
	for y := top; y < top+side; y++ {
		row := grad[y]
		for x := left; x < left+side; x++ {
			sum += row[x]
		}
	}
	return sum
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

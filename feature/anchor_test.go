package feature

import (
	"testing"

	"github.com/Saudadeeee/zk-snark-X-Steganography/raster"
)

func syntheticRaster(width, height int) *raster.Raster {
	pix := make([]byte, width*height*3)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			for c := 0; c < 3; c++ {
				pix[(y*width+x)*3+c] = byte((17*y + 31*x + 7*c) % 256)
			}
		}
	}
	return &raster.Raster{Width: width, Height: height, Pix: pix}
}

func TestExtractAnchorIsDeterministic(t *testing.T) {
	r := syntheticRaster(64, 64)
	x1, y1 := ExtractAnchor(r, 16)
	x2, y2 := ExtractAnchor(r, 16)
	if x1 != x2 || y1 != y2 {
		t.Errorf("ExtractAnchor is not deterministic: (%d,%d) != (%d,%d)", x1, y1, x2, y2)
	}
}

func TestExtractAnchorInBounds(t *testing.T) {
	r := syntheticRaster(64, 64)
	x, y := ExtractAnchor(r, 16)
	if int(x) >= r.Width || int(y) >= r.Height {
		t.Errorf("anchor (%d,%d) out of a %dx%d image", x, y, r.Width, r.Height)
	}
}

func TestExtractAnchorOnFlatImageIsStillDeterministic(t *testing.T) {
	pix := make([]byte, 32*32*3)
	for i := range pix {
		pix[i] = 128 // zero gradient everywhere: every window ties
	}
	r := &raster.Raster{Width: 32, Height: 32, Pix: pix}
	x1, y1 := ExtractAnchor(r, 8)
	x2, y2 := ExtractAnchor(r, 8)
	if x1 != x2 || y1 != y2 {
		t.Errorf("tie-break is not deterministic: (%d,%d) != (%d,%d)", x1, y1, x2, y2)
	}
	// on an all-tied field the lexicographically smallest window wins,
	// so the anchor should sit near the top-left corner.
	if x1 > 16 || y1 > 16 {
		t.Errorf("expected the top-left-most window to win ties, got (%d,%d)", x1, y1)
	}
}

func TestExtractAnchorWindowShrinksForSmallImages(t *testing.T) {
	r := syntheticRaster(8, 8)
	x, y := ExtractAnchor(r, 16) // windowMax exceeds width/4, height/4
	if int(x) >= r.Width || int(y) >= r.Height {
		t.Errorf("anchor (%d,%d) out of an %dx%d image", x, y, r.Width, r.Height)
	}
}

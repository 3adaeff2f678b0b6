package chaos

import (
	"errors"
	"math"
	"math/big"
)

// ErrCapacityExceeded is returned by GeneratePositions when n exceeds
// the raster's total channel count, making n unique positions
// impossible regardless of retry budget.
var ErrCapacityExceeded = errors.New("chaos: requested position count exceeds the raster's channel count")

// ErrCapacityExhausted is returned when the collision-retry loop fails
// to find a fresh position within retryBound consecutive attempts.
var ErrCapacityExhausted = errors.New("chaos: position generator exhausted its retry budget")

// Position is a single (x, y, channel) slot in the raster. Two
// Positions are equal iff all three components match.
type Position struct {
	X, Y int
	Ch   int
}

// arnoldStep applies one iteration of the Arnold cat map
// (x, y) -> ((2x+y) mod width, (x+y) mod height) on the discrete torus.
func arnoldStep(x, y, width, height int) (int, int) {
	return mod(2*x+y, width), mod(x+y, height)
}

func mod(a, n int) int {
	m := a % n
	if m < 0 {
		m += n
	}
	return m
}

// logisticStep advances the logistic map x <- r*x*(1-x). The arithmetic
// is plain float64 multiplication and subtraction. Go never reassociates
// floating point expressions, but on architectures with a fused
// multiply-add (arm64, ppc64, s390x) it may fuse a product with a
// following addition or subtraction; the explicit float64 conversion
// rounds the result first, so the inlined call cannot be fused with the
// caller's next step. This keeps the sequence bit-identical across
// platforms for a fixed (r, x0), satisfying I1 without resorting to a
// fixed-point emulation.
func logisticStep(x, r float64) float64 {
	return float64(r * x * (1 - x))
}

// GeneratePositions emits n unique Positions inside a width x height x 3
// raster, deterministic for a fixed (params, anchor, width, height, n).
// retryBoundMinimum is the floor for the per-bit collision retry budget
// (the effective bound is max(retryBoundMinimum, n), per §4.2).
func GeneratePositions(params Params, anchorX, anchorY, width, height, n, retryBoundMinimum int) ([]Position, error) {
	// The distilled source bounds n at 0.9 of the raster's total channel
	// count, purely as a heuristic on expected rejection iterations. That
	// number is stricter than the envelope-aware capacity_bits contract
	// callers are held to (see the root package), so it is not enforced
	// here as a hard gate; n > total channel count is the only case that
	// makes n unique positions outright impossible.
	capacity := width * height * 3
	if n > capacity {
		return nil, ErrCapacityExceeded
	}

	retryBound := retryBoundMinimum
	if n > retryBound {
		retryBound = n
	}

	positions := make([]Position, 0, n)
	seen := make(map[Position]struct{}, n)

	cx, cy := anchorX, anchorY
	x := params.LogisticX0
	r := params.LogisticR
	ctr := new(big.Int).Set(params.ChannelSeed)
	three := big.NewInt(3)

	for len(positions) < n {
		found := false
		for attempt := 0; attempt < retryBound; attempt++ {
			for i := 0; i < params.ArnoldIterations; i++ {
				cx, cy = arnoldStep(cx, cy, width, height)
			}

			x = logisticStep(x, r)
			dx := int(math.Floor(10*x)) - 5

			yPrime := logisticStep(x, r)
			dy := int(math.Floor(10*yPrime)) - 5
			x = yPrime

			px := mod(cx+dx, width)
			py := mod(cy+dy, height)

			ch := int(new(big.Int).Mod(ctr, three).Int64())
			ctr.Add(ctr, big.NewInt(1))

			cand := Position{X: px, Y: py, Ch: ch}
			if _, dup := seen[cand]; !dup {
				seen[cand] = struct{}{}
				positions = append(positions, cand)
				found = true
				break
			}
		}
		if !found {
			return nil, ErrCapacityExhausted
		}
	}

	return positions, nil
}

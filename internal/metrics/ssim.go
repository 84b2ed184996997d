package metrics

import (
	"fmt"

	"github.com/vqcheck/vqcheck/internal/frame"
)

// SSIM stabilization constants for a data range of 1.0.
const (
	ssimK1 = 0.01
	ssimK2 = 0.03
)

// SSIM computes the mean structural similarity between two frames of
// identical dimensions.
//
// Pixel values are normalized to [0, 1] and each RGB channel is scored
// independently with a uniform window x window local window; the three
// channel scores are averaged into one value. Frames smaller than the window
// in either dimension are too small to assess structure and score exactly
// 1.0 so they never penalize an aggregate.
func SSIM(ref, cand *frame.Frame, window int) (float64, error) {
	if ref.Width != cand.Width || ref.Height != cand.Height {
		return 0, fmt.Errorf("frame dimensions differ: %dx%d vs %dx%d",
			ref.Width, ref.Height, cand.Width, cand.Height)
	}
	if window < 1 || window%2 == 0 {
		return 0, fmt.Errorf("SSIM window must be odd and positive, got %d", window)
	}

	if ref.Width < window || ref.Height < window {
		return 1.0, nil
	}

	var total float64
	for ch := 0; ch < frame.Channels; ch++ {
		total += ssimChannel(ref, cand, ch, window)
	}
	return total / frame.Channels, nil
}

// ssimChannel scores one color channel over every valid window position.
// Local sums come from summed-area tables so cost is independent of window
// size. Variance and covariance use the unbiased estimator.
func ssimChannel(ref, cand *frame.Frame, channel, window int) float64 {
	w, h := ref.Width, ref.Height

	// Summed-area tables for x, y, x^2, y^2 and x*y, with a zero border row
	// and column so lookups need no bounds handling.
	stride := w + 1
	sx := make([]float64, stride*(h+1))
	sy := make([]float64, stride*(h+1))
	sxx := make([]float64, stride*(h+1))
	syy := make([]float64, stride*(h+1))
	sxy := make([]float64, stride*(h+1))

	for row := 0; row < h; row++ {
		base := (row*w)*frame.Channels + channel
		ti := (row + 1) * stride
		pi := row * stride
		for col := 0; col < w; col++ {
			x := float64(ref.Pix[base+col*frame.Channels]) / peakValue
			y := float64(cand.Pix[base+col*frame.Channels]) / peakValue

			sx[ti+col+1] = x + sx[ti+col] + sx[pi+col+1] - sx[pi+col]
			sy[ti+col+1] = y + sy[ti+col] + sy[pi+col+1] - sy[pi+col]
			sxx[ti+col+1] = x*x + sxx[ti+col] + sxx[pi+col+1] - sxx[pi+col]
			syy[ti+col+1] = y*y + syy[ti+col] + syy[pi+col+1] - syy[pi+col]
			sxy[ti+col+1] = x*y + sxy[ti+col] + sxy[pi+col+1] - sxy[pi+col]
		}
	}

	boxSum := func(t []float64, x0, y0 int) float64 {
		x1, y1 := x0+window, y0+window
		return t[y1*stride+x1] - t[y0*stride+x1] - t[y1*stride+x0] + t[y0*stride+x0]
	}

	np := float64(window * window)
	covNorm := np / (np - 1)
	c1 := ssimK1 * ssimK1 // data range 1.0
	c2 := ssimK2 * ssimK2

	var sum float64
	positions := 0
	for y0 := 0; y0+window <= h; y0++ {
		for x0 := 0; x0+window <= w; x0++ {
			ux := boxSum(sx, x0, y0) / np
			uy := boxSum(sy, x0, y0) / np
			vx := covNorm * (boxSum(sxx, x0, y0)/np - ux*ux)
			vy := covNorm * (boxSum(syy, x0, y0)/np - uy*uy)
			vxy := covNorm * (boxSum(sxy, x0, y0)/np - ux*uy)

			a1 := 2*ux*uy + c1
			a2 := 2*vxy + c2
			b1 := ux*ux + uy*uy + c1
			b2 := vx + vy + c2

			sum += (a1 * a2) / (b1 * b2)
			positions++
		}
	}

	return sum / float64(positions)
}

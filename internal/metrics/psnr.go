// Package metrics implements the objective quality metrics computed per
// sampled frame pair: PSNR and SSIM.
package metrics

import (
	"fmt"
	"math"

	"github.com/vqcheck/vqcheck/internal/frame"
)

// peakValue is the maximum 8-bit channel value used in the PSNR definition.
const peakValue = 255.0

// PSNR computes the peak signal-to-noise ratio in dB between two frames of
// identical dimensions. The mean squared error is taken over all pixels and
// channels on the 0-255 integer scale. Identical frames yield +Inf, which is
// the excellent-quality sentinel rather than an error.
func PSNR(ref, cand *frame.Frame) (float64, error) {
	if ref.Width != cand.Width || ref.Height != cand.Height {
		return 0, fmt.Errorf("frame dimensions differ: %dx%d vs %dx%d",
			ref.Width, ref.Height, cand.Width, cand.Height)
	}

	var sum float64
	for i := range ref.Pix {
		d := float64(ref.Pix[i]) - float64(cand.Pix[i])
		sum += d * d
	}

	mse := sum / float64(len(ref.Pix))
	if mse == 0 {
		return math.Inf(1), nil
	}
	return 10 * math.Log10(peakValue*peakValue/mse), nil
}

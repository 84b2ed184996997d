package metrics

// Qualitative band labels. These are part of the user-visible contract: the
// same thresholds drive the terminal and JSON reporters.
const (
	PSNRExcellent = "excellent"
	PSNRGood      = "good"
	PSNRLow       = "low"

	SSIMVeryHigh = "very high similarity"
	SSIMGood     = "good structural preservation"
	SSIMDegraded = "degraded structure"
)

// PSNRBand maps a PSNR value in dB to its qualitative label.
// +Inf (identical frames) falls in the excellent band.
func PSNRBand(psnr float64) string {
	switch {
	case psnr > 40:
		return PSNRExcellent
	case psnr > 30:
		return PSNRGood
	default:
		return PSNRLow
	}
}

// SSIMBand maps a mean SSIM value to its qualitative label.
func SSIMBand(ssim float64) string {
	switch {
	case ssim > 0.95:
		return SSIMVeryHigh
	case ssim > 0.85:
		return SSIMGood
	default:
		return SSIMDegraded
	}
}

package metrics

import (
	"math"
	"testing"

	"github.com/vqcheck/vqcheck/internal/frame"
)

// fillFrame creates a frame with every channel set to the given value.
func fillFrame(width, height int, value uint8) *frame.Frame {
	f := frame.New(width, height)
	for i := range f.Pix {
		f.Pix[i] = value
	}
	return f
}

func TestPSNR_IdenticalFramesAreInfinite(t *testing.T) {
	ref := fillFrame(16, 16, 128)
	cand := fillFrame(16, 16, 128)

	psnr, err := PSNR(ref, cand)
	if err != nil {
		t.Fatalf("PSNR() error = %v", err)
	}
	if !math.IsInf(psnr, 1) {
		t.Errorf("PSNR() = %v, want +Inf", psnr)
	}
}

func TestPSNR_KnownValues(t *testing.T) {
	tests := []struct {
		name string
		ref  uint8
		cand uint8
		want float64
	}{
		// MSE = d^2 for uniform frames, so PSNR = 10*log10(255^2/d^2).
		{"off by one", 100, 101, 10 * math.Log10(255*255)},
		{"off by ten", 100, 110, 10 * math.Log10(255*255/100.0)},
		{"maximum error", 0, 255, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ref := fillFrame(8, 8, tt.ref)
			cand := fillFrame(8, 8, tt.cand)

			psnr, err := PSNR(ref, cand)
			if err != nil {
				t.Fatalf("PSNR() error = %v", err)
			}
			if math.Abs(psnr-tt.want) > 1e-9 {
				t.Errorf("PSNR() = %v, want %v", psnr, tt.want)
			}
		})
	}
}

func TestPSNR_SingleChannelError(t *testing.T) {
	// One channel of one pixel off by one in a 2x2 frame:
	// MSE = 1 / (2*2*3).
	ref := fillFrame(2, 2, 50)
	cand := fillFrame(2, 2, 50)
	cand.Pix[0] = 51

	psnr, err := PSNR(ref, cand)
	if err != nil {
		t.Fatalf("PSNR() error = %v", err)
	}
	want := 10 * math.Log10(255*255*12)
	if math.Abs(psnr-want) > 1e-9 {
		t.Errorf("PSNR() = %v, want %v", psnr, want)
	}
}

func TestPSNR_Symmetric(t *testing.T) {
	ref := fillFrame(8, 8, 40)
	cand := fillFrame(8, 8, 90)

	forward, err := PSNR(ref, cand)
	if err != nil {
		t.Fatalf("PSNR() error = %v", err)
	}
	backward, err := PSNR(cand, ref)
	if err != nil {
		t.Fatalf("PSNR() error = %v", err)
	}
	if forward != backward {
		t.Errorf("PSNR not symmetric: %v vs %v", forward, backward)
	}
}

func TestPSNR_DimensionMismatch(t *testing.T) {
	ref := fillFrame(8, 8, 0)
	cand := fillFrame(8, 4, 0)

	if _, err := PSNR(ref, cand); err == nil {
		t.Error("PSNR() expected error for mismatched dimensions, got nil")
	}
}

func TestPSNR_MoreDistortionScoresLower(t *testing.T) {
	ref := fillFrame(8, 8, 100)
	slight := fillFrame(8, 8, 102)
	heavy := fillFrame(8, 8, 140)

	slightPSNR, err := PSNR(ref, slight)
	if err != nil {
		t.Fatalf("PSNR() error = %v", err)
	}
	heavyPSNR, err := PSNR(ref, heavy)
	if err != nil {
		t.Fatalf("PSNR() error = %v", err)
	}
	if slightPSNR <= heavyPSNR {
		t.Errorf("slight distortion %v should score above heavy distortion %v", slightPSNR, heavyPSNR)
	}
}

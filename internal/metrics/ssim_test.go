package metrics

import (
	"math"
	"testing"

	"github.com/vqcheck/vqcheck/internal/frame"
)

// gradientFrame creates a frame with distinct structure: a diagonal gradient
// differing per channel.
func gradientFrame(width, height int) *frame.Frame {
	f := frame.New(width, height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			v := uint8((x*7 + y*13) % 256)
			f.SetRGB(x, y, v, v/2, 255-v)
		}
	}
	return f
}

// perturbFrame returns a copy with the given value added to every other pixel,
// clamped to 255.
func perturbFrame(src *frame.Frame, delta int) *frame.Frame {
	out := frame.New(src.Width, src.Height)
	copy(out.Pix, src.Pix)
	for i := 0; i < len(out.Pix); i += 2 * frame.Channels {
		for c := 0; c < frame.Channels; c++ {
			v := int(out.Pix[i+c]) + delta
			if v > 255 {
				v = 255
			}
			out.Pix[i+c] = uint8(v)
		}
	}
	return out
}

func TestSSIM_IdenticalFrames(t *testing.T) {
	ref := gradientFrame(32, 24)

	ssim, err := SSIM(ref, ref, 7)
	if err != nil {
		t.Fatalf("SSIM() error = %v", err)
	}
	if math.Abs(ssim-1.0) > 1e-9 {
		t.Errorf("SSIM() = %v, want 1.0", ssim)
	}
}

func TestSSIM_FrameSmallerThanWindow(t *testing.T) {
	tests := []struct {
		name   string
		width  int
		height int
	}{
		{"both dimensions small", 4, 4},
		{"narrow", 4, 100},
		{"short", 100, 4},
		{"one short of window", 6, 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ref := fillFrame(tt.width, tt.height, 0)
			cand := fillFrame(tt.width, tt.height, 255)

			// Too small to assess structure: scores 1.0 regardless of content.
			ssim, err := SSIM(ref, cand, 7)
			if err != nil {
				t.Fatalf("SSIM() error = %v", err)
			}
			if ssim != 1.0 {
				t.Errorf("SSIM() = %v, want exactly 1.0", ssim)
			}
		})
	}
}

func TestSSIM_InvalidWindow(t *testing.T) {
	ref := gradientFrame(16, 16)

	for _, window := range []int{0, -1, 2, 4, 8} {
		if _, err := SSIM(ref, ref, window); err == nil {
			t.Errorf("SSIM() with window %d expected error, got nil", window)
		}
	}
}

func TestSSIM_DimensionMismatch(t *testing.T) {
	ref := gradientFrame(16, 16)
	cand := gradientFrame(16, 8)

	if _, err := SSIM(ref, cand, 7); err == nil {
		t.Error("SSIM() expected error for mismatched dimensions, got nil")
	}
}

func TestSSIM_Symmetric(t *testing.T) {
	ref := gradientFrame(32, 32)
	cand := perturbFrame(ref, 20)

	forward, err := SSIM(ref, cand, 7)
	if err != nil {
		t.Fatalf("SSIM() error = %v", err)
	}
	backward, err := SSIM(cand, ref, 7)
	if err != nil {
		t.Fatalf("SSIM() error = %v", err)
	}
	if math.Abs(forward-backward) > 1e-9 {
		t.Errorf("SSIM not symmetric: %v vs %v", forward, backward)
	}
}

func TestSSIM_DistortionLowersScore(t *testing.T) {
	ref := gradientFrame(48, 48)
	mild := perturbFrame(ref, 5)
	heavy := perturbFrame(ref, 80)

	mildSSIM, err := SSIM(ref, mild, 7)
	if err != nil {
		t.Fatalf("SSIM() error = %v", err)
	}
	heavySSIM, err := SSIM(ref, heavy, 7)
	if err != nil {
		t.Fatalf("SSIM() error = %v", err)
	}

	if mildSSIM >= 1.0 {
		t.Errorf("mild distortion SSIM = %v, want < 1.0", mildSSIM)
	}
	if heavySSIM >= mildSSIM {
		t.Errorf("heavy distortion %v should score below mild distortion %v", heavySSIM, mildSSIM)
	}
}

func TestSSIM_BoundedRange(t *testing.T) {
	ref := gradientFrame(32, 32)
	tests := []*frame.Frame{
		ref,
		perturbFrame(ref, 40),
		fillFrame(32, 32, 0),
		fillFrame(32, 32, 255),
	}

	for i, cand := range tests {
		ssim, err := SSIM(ref, cand, 7)
		if err != nil {
			t.Fatalf("SSIM() error = %v", err)
		}
		if ssim < -1.0-1e-9 || ssim > 1.0+1e-9 {
			t.Errorf("case %d: SSIM() = %v, outside [-1, 1]", i, ssim)
		}
	}
}

func TestSSIM_SmallestWindow(t *testing.T) {
	ref := gradientFrame(16, 16)
	cand := perturbFrame(ref, 10)

	ssim, err := SSIM(ref, cand, 3)
	if err != nil {
		t.Fatalf("SSIM() error = %v", err)
	}
	if ssim >= 1.0 || ssim <= 0 {
		t.Errorf("SSIM() = %v, want value in (0, 1) for mildly distorted frames", ssim)
	}
}

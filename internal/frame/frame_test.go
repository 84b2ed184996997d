package frame

import (
	"image"
	"image/color"
	"testing"
)

func TestFromRaw(t *testing.T) {
	tests := []struct {
		name    string
		width   int
		height  int
		bufLen  int
		wantErr bool
	}{
		{"exact length", 4, 2, 4 * 2 * Channels, false},
		{"single pixel", 1, 1, Channels, false},
		{"buffer too short", 4, 2, 4*2*Channels - 1, true},
		{"buffer too long", 4, 2, 4*2*Channels + 3, true},
		{"empty buffer nonzero dims", 2, 2, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := FromRaw(tt.width, tt.height, make([]uint8, tt.bufLen))
			if tt.wantErr {
				if err == nil {
					t.Error("FromRaw() expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("FromRaw() error = %v", err)
			}
			if f.Width != tt.width || f.Height != tt.height {
				t.Errorf("dimensions = %dx%d, want %dx%d", f.Width, f.Height, tt.width, tt.height)
			}
		})
	}
}

func TestRGBRoundTrip(t *testing.T) {
	f := New(4, 3)
	f.SetRGB(2, 1, 10, 20, 30)

	r, g, b := f.RGB(2, 1)
	if r != 10 || g != 20 || b != 30 {
		t.Errorf("RGB(2, 1) = (%d, %d, %d), want (10, 20, 30)", r, g, b)
	}

	// Neighbors stay zero
	if r, g, b := f.RGB(1, 1); r != 0 || g != 0 || b != 0 {
		t.Errorf("RGB(1, 1) = (%d, %d, %d), want zeros", r, g, b)
	}
}

func TestFromImage(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 3, 2))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	img.Set(2, 1, color.RGBA{G: 128, B: 64, A: 255})

	f := FromImage(img)
	if f.Width != 3 || f.Height != 2 {
		t.Fatalf("dimensions = %dx%d, want 3x2", f.Width, f.Height)
	}
	if r, g, b := f.RGB(0, 0); r != 255 || g != 0 || b != 0 {
		t.Errorf("RGB(0, 0) = (%d, %d, %d), want (255, 0, 0)", r, g, b)
	}
	if r, g, b := f.RGB(2, 1); r != 0 || g != 128 || b != 64 {
		t.Errorf("RGB(2, 1) = (%d, %d, %d), want (0, 128, 64)", r, g, b)
	}
}

func TestResize_NoopReturnsReceiver(t *testing.T) {
	f := New(640, 360)
	if got := f.Resize(640, 360); got != f {
		t.Error("Resize() to same dimensions should return the receiver")
	}
}

func TestResize_ChangesDimensions(t *testing.T) {
	f := New(1920, 1080)
	got := f.Resize(640, 360)

	if got.Width != 640 || got.Height != 360 {
		t.Errorf("dimensions = %dx%d, want 640x360", got.Width, got.Height)
	}
	if len(got.Pix) != 640*360*Channels {
		t.Errorf("len(Pix) = %d, want %d", len(got.Pix), 640*360*Channels)
	}
}

func TestResize_PreservesConstantColor(t *testing.T) {
	f := New(64, 48)
	for i := range f.Pix {
		f.Pix[i] = 200
	}

	got := f.Resize(20, 15)
	for i, v := range got.Pix {
		if v != 200 {
			t.Fatalf("Pix[%d] = %d, want 200", i, v)
		}
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name       string
		refW, refH int
		candW      int
		candH      int
		targetW    int
		targetH    int
	}{
		{"already at target", 640, 360, 640, 360, 640, 360},
		{"downscale both", 1920, 1080, 1280, 720, 640, 360},
		{"upscale candidate", 640, 360, 320, 180, 640, 360},
		{"mixed aspect ratios", 1920, 1080, 720, 576, 640, 360},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ref := New(tt.refW, tt.refH)
			cand := New(tt.candW, tt.candH)

			gotRef, gotCand := Normalize(ref, cand, tt.targetW, tt.targetH)

			if gotRef.Width != tt.targetW || gotRef.Height != tt.targetH {
				t.Errorf("reference = %dx%d, want %dx%d", gotRef.Width, gotRef.Height, tt.targetW, tt.targetH)
			}
			if gotCand.Width != gotRef.Width || gotCand.Height != gotRef.Height {
				t.Errorf("candidate %dx%d does not match reference %dx%d",
					gotCand.Width, gotCand.Height, gotRef.Width, gotRef.Height)
			}
		})
	}
}

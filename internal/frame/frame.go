// Package frame provides the raw frame representation and normalization
// used by the quality evaluator.
package frame

import (
	"fmt"
	"image"

	"golang.org/x/image/draw"
)

// Channels is the number of color channels per pixel (RGB).
const Channels = 3

// Frame is a decoded video frame: 8-bit RGB, row-major, no padding.
type Frame struct {
	Width  int
	Height int
	Pix    []uint8 // len = Width * Height * Channels
}

// New allocates a zeroed frame of the given dimensions.
func New(width, height int) *Frame {
	return &Frame{
		Width:  width,
		Height: height,
		Pix:    make([]uint8, width*height*Channels),
	}
}

// FromRaw wraps a raw RGB24 buffer as a Frame. The buffer length must match
// the dimensions exactly.
func FromRaw(width, height int, pix []uint8) (*Frame, error) {
	want := width * height * Channels
	if len(pix) != want {
		return nil, fmt.Errorf("raw frame buffer is %d bytes, want %d for %dx%d", len(pix), want, width, height)
	}
	return &Frame{Width: width, Height: height, Pix: pix}, nil
}

// FromImage converts any image.Image into an RGB frame.
func FromImage(img image.Image) *Frame {
	bounds := img.Bounds()
	f := New(bounds.Dx(), bounds.Dy())
	i := 0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			f.Pix[i] = uint8(r >> 8)
			f.Pix[i+1] = uint8(g >> 8)
			f.Pix[i+2] = uint8(b >> 8)
			i += Channels
		}
	}
	return f
}

// RGB returns the channel values of the pixel at (x, y).
func (f *Frame) RGB(x, y int) (r, g, b uint8) {
	i := (y*f.Width + x) * Channels
	return f.Pix[i], f.Pix[i+1], f.Pix[i+2]
}

// SetRGB sets the pixel at (x, y).
func (f *Frame) SetRGB(x, y int, r, g, b uint8) {
	i := (y*f.Width + x) * Channels
	f.Pix[i] = r
	f.Pix[i+1] = g
	f.Pix[i+2] = b
}

// toRGBA converts the frame to an image.RGBA for scaling.
func (f *Frame) toRGBA() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, f.Width, f.Height))
	si := 0
	for y := 0; y < f.Height; y++ {
		di := y * img.Stride
		for x := 0; x < f.Width; x++ {
			img.Pix[di] = f.Pix[si]
			img.Pix[di+1] = f.Pix[si+1]
			img.Pix[di+2] = f.Pix[si+2]
			img.Pix[di+3] = 255
			si += Channels
			di += 4
		}
	}
	return img
}

// Resize scales the frame to the given dimensions. The receiver is returned
// unchanged when it already matches.
func (f *Frame) Resize(width, height int) *Frame {
	if f.Width == width && f.Height == height {
		return f
	}

	src := f.toRGBA()
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)

	out := New(width, height)
	di := 0
	for y := 0; y < height; y++ {
		si := y * dst.Stride
		for x := 0; x < width; x++ {
			out.Pix[di] = dst.Pix[si]
			out.Pix[di+1] = dst.Pix[si+1]
			out.Pix[di+2] = dst.Pix[si+2]
			di += Channels
			si += 4
		}
	}
	return out
}

// Normalize brings a reference/candidate pair to identical dimensions for
// metric computation. Both frames are resized to the target resolution; if
// the shapes still disagree afterwards the candidate is forced to the
// reference's dimensions, since the metric functions require equal shapes.
func Normalize(ref, cand *Frame, targetWidth, targetHeight int) (*Frame, *Frame) {
	ref = ref.Resize(targetWidth, targetHeight)
	cand = cand.Resize(targetWidth, targetHeight)
	if cand.Width != ref.Width || cand.Height != ref.Height {
		cand = cand.Resize(ref.Width, ref.Height)
	}
	return ref, cand
}

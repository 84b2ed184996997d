// Package source abstracts frame-indexed video decoding. The evaluator only
// needs a frame count and seek-and-decode by index; how frames are produced
// (ffmpeg subprocess, in-memory fixtures) is an implementation detail.
package source

import (
	"context"
	"errors"

	"github.com/vqcheck/vqcheck/internal/frame"
)

// ErrFrameUnavailable reports that a frame index could not be decoded, for
// example because the stream ends earlier than the container metadata
// implied. Evaluation treats it as the end of usable samples, not a failure.
var ErrFrameUnavailable = errors.New("frame unavailable")

// Source is a frame-indexed decodable video.
//
// A Source is owned exclusively by one evaluation call at a time: DecodeFrame
// seeks, so concurrent decodes on the same Source require the implementation
// to serialize or be stateless per call.
type Source interface {
	// Path identifies the source for diagnostics.
	Path() string

	// FrameCount returns the total frame count according to container
	// metadata. The actual stream may be shorter.
	FrameCount() int

	// DecodeFrame seeks to the zero-based frame index and decodes it.
	// Returns ErrFrameUnavailable when the index cannot be produced.
	DecodeFrame(ctx context.Context, index int) (*frame.Frame, error)

	// Close releases any resources held by the source.
	Close() error
}

package source

import (
	"context"
	"fmt"

	"github.com/vqcheck/vqcheck/internal/frame"
)

// MemorySource serves already-decoded frames. It backs evaluations of frames
// produced outside any container (the engine is container-agnostic) and the
// test suite.
type MemorySource struct {
	name     string
	frames   []*frame.Frame
	reported int
}

// NewMemorySource creates a source over the given frames.
func NewMemorySource(name string, frames []*frame.Frame) *MemorySource {
	return &MemorySource{name: name, frames: frames, reported: len(frames)}
}

// NewTruncatedMemorySource creates a source whose metadata claims
// reportedCount frames while only the given frames actually decode. Indices
// past the real frames fail with ErrFrameUnavailable, mirroring a truncated
// file with overstated container metadata.
func NewTruncatedMemorySource(name string, frames []*frame.Frame, reportedCount int) *MemorySource {
	return &MemorySource{name: name, frames: frames, reported: reportedCount}
}

// Path returns the source name.
func (s *MemorySource) Path() string { return s.name }

// FrameCount returns the reported frame count.
func (s *MemorySource) FrameCount() int { return s.reported }

// DecodeFrame returns the frame at index.
func (s *MemorySource) DecodeFrame(_ context.Context, index int) (*frame.Frame, error) {
	if index < 0 || index >= s.reported {
		return nil, fmt.Errorf("frame %d out of range [0, %d): %w", index, s.reported, ErrFrameUnavailable)
	}
	if index >= len(s.frames) {
		return nil, fmt.Errorf("frame %d past end of stream: %w", index, ErrFrameUnavailable)
	}
	return s.frames[index], nil
}

// Close is a no-op for memory sources.
func (s *MemorySource) Close() error { return nil }

// Package vqcheck provides a Go library for objective video quality
// comparison with PSNR and SSIM.
//
// Vqcheck compares a compressed candidate video against its reference by
// sampling a bounded set of evenly-spaced frame pairs, normalizing both
// frames to a common resolution, and aggregating per-pair metrics into mean
// scores with qualitative bands.
//
// Basic usage:
//
//	comparer, err := vqcheck.New(
//	    vqcheck.WithProfile(vqcheck.ProfileStandard),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	result, err := comparer.Compare(ctx, "original.mp4", "compressed.mp4")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Printf("PSNR %.2f dB (%s), SSIM %.4f (%s)\n",
//	    result.MeanPSNR, result.PSNRBand,
//	    result.MeanSSIM, result.SSIMBand)
package vqcheck

import (
	"context"

	"github.com/vqcheck/vqcheck/internal/config"
	"github.com/vqcheck/vqcheck/internal/discovery"
	"github.com/vqcheck/vqcheck/internal/evaluate"
	"github.com/vqcheck/vqcheck/internal/ffprobe"
	"github.com/vqcheck/vqcheck/internal/frame"
	"github.com/vqcheck/vqcheck/internal/source"
)

// Re-export profile types
type Profile = config.Profile

const (
	ProfileQuick      = config.ProfileQuick
	ProfileStandard   = config.ProfileStandard
	ProfileExhaustive = config.ProfileExhaustive
)

// ParseProfile converts a profile string to a Profile value.
// Valid values are "quick", "standard", and "exhaustive" (case-insensitive).
func ParseProfile(s string) (Profile, error) {
	return config.ParseProfile(s)
}

// Source is a frame-indexed decodable video. OpenVideo returns the
// ffmpeg-backed implementation; NewFrameSource wraps in-memory frames.
type Source = source.Source

// Frame is a decoded 8-bit RGB video frame.
type Frame = frame.Frame

// MediaInfo contains container and video stream metadata.
type MediaInfo = ffprobe.MediaInfo

// Comparer is the main entry point for quality comparison.
type Comparer struct {
	config *config.Config
}

// Result contains the result of a single reference/candidate comparison.
type Result struct {
	MeanPSNR      float64 // dB; +Inf when all compared pairs were identical
	MeanSSIM      float64
	PSNRBand      string
	SSIMBand      string
	ComparedPairs int
	PlannedPairs  int
}

// BatchResult contains the result of comparing several candidates against
// one reference.
type BatchResult struct {
	Results         []Result
	SuccessfulCount int
	TotalFiles      int
}

// Option configures the comparer.
type Option func(*config.Config)

// New creates a new Comparer with the given options.
func New(opts ...Option) (*Comparer, error) {
	cfg := config.NewConfig()

	for _, opt := range opts {
		opt(cfg)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &Comparer{config: cfg}, nil
}

// WithProfile applies a vqcheck profile.
func WithProfile(p Profile) Option {
	return func(c *config.Config) {
		c.ApplyProfile(p)
	}
}

// WithMaxSamples caps the number of frame pairs compared. Zero disables the
// cap so every frame of the shorter stream is compared.
func WithMaxSamples(n int) Option {
	return func(c *config.Config) {
		c.MaxSamples = n
	}
}

// WithTargetResolution sets the normalization resolution applied to both
// frames before scoring.
func WithTargetResolution(width, height int) Option {
	return func(c *config.Config) {
		c.TargetWidth = width
		c.TargetHeight = height
	}
}

// WithSSIMWindow sets the side of the square local SSIM window.
func WithSSIMWindow(n int) Option {
	return func(c *config.Config) {
		c.SSIMWindow = n
	}
}

// WithWorkers sets the number of parallel sample workers. Zero selects one
// worker per physical core.
func WithWorkers(n int) Option {
	return func(c *config.Config) {
		c.Workers = n
	}
}

// OpenVideo opens a video file as a frame-indexed source backed by ffmpeg
// and ffprobe. The caller owns the source and must Close it.
func OpenVideo(path string) (Source, error) {
	return source.OpenFFmpegSource(path)
}

// NewFrameSource wraps already-decoded frames as a Source, for callers that
// obtain frames outside any container.
func NewFrameSource(name string, frames []*Frame) Source {
	return source.NewMemorySource(name, frames)
}

// Inspect probes container and video stream metadata for a file.
func Inspect(path string) (*MediaInfo, error) {
	return ffprobe.GetMediaInfo(path)
}

// FindVideos finds video files in a directory.
func FindVideos(dir string) ([]string, error) {
	return discovery.FindVideoFiles(dir)
}

// Compare evaluates the candidate file against the reference file.
func (c *Comparer) Compare(ctx context.Context, referencePath, candidatePath string) (*Result, error) {
	ref, err := source.OpenFFmpegSource(referencePath)
	if err != nil {
		return nil, err
	}
	defer func() { _ = ref.Close() }()

	cand, err := source.OpenFFmpegSource(candidatePath)
	if err != nil {
		return nil, err
	}
	defer func() { _ = cand.Close() }()

	return c.CompareSources(ctx, ref, cand)
}

// CompareSources evaluates a candidate source against a reference source.
// Both sources are owned by the caller for the duration of the call and
// must not be seeked concurrently by anything else.
func (c *Comparer) CompareSources(ctx context.Context, ref, cand Source) (*Result, error) {
	eval, err := evaluate.New(c.config, nil)
	if err != nil {
		return nil, err
	}

	res, err := eval.Evaluate(ctx, ref, cand)
	if err != nil {
		return nil, err
	}

	return &Result{
		MeanPSNR:      res.MeanPSNR,
		MeanSSIM:      res.MeanSSIM,
		PSNRBand:      res.PSNRBand(),
		SSIMBand:      res.SSIMBand(),
		ComparedPairs: res.ComparedPairs,
		PlannedPairs:  res.PlannedPairs,
	}, nil
}

// CompareBatch evaluates several candidate files against one reference.
// Candidates that fail to open or evaluate are skipped; the batch fails only
// when the reference cannot be opened.
func (c *Comparer) CompareBatch(ctx context.Context, referencePath string, candidatePaths []string) (*BatchResult, error) {
	ref, err := source.OpenFFmpegSource(referencePath)
	if err != nil {
		return nil, err
	}
	defer func() { _ = ref.Close() }()

	batch := &BatchResult{TotalFiles: len(candidatePaths)}
	for _, candidatePath := range candidatePaths {
		cand, err := source.OpenFFmpegSource(candidatePath)
		if err != nil {
			continue
		}

		result, err := c.CompareSources(ctx, ref, cand)
		_ = cand.Close()
		if err != nil {
			if ctx.Err() != nil {
				return nil, err
			}
			continue
		}

		batch.Results = append(batch.Results, *result)
		batch.SuccessfulCount++
	}

	return batch, nil
}

package config

import (
	"fmt"
	"strings"
)

// Default constants
const (
	// DefaultMaxSamples caps the number of frame pairs compared per evaluation.
	// Zero means no cap: every frame up to the shorter stream is compared.
	DefaultMaxSamples int = 50

	// DefaultTargetWidth is the width both frames are resized to before scoring.
	DefaultTargetWidth int = 640

	// DefaultTargetHeight is the height both frames are resized to before scoring.
	DefaultTargetHeight int = 360

	// DefaultSSIMWindow is the side of the square local SSIM window.
	DefaultSSIMWindow int = 7

	// DefaultWorkers is the number of parallel sample workers.
	// Zero selects a worker per physical core.
	DefaultWorkers int = 1

	// MinSSIMWindow is the smallest usable SSIM window side.
	MinSSIMWindow int = 3

	// QuickProfileMaxSamples is the sample cap for the quick profile.
	QuickProfileMaxSamples int = 20

	// QuickProfileTargetWidth is the normalization width for the quick profile.
	QuickProfileTargetWidth int = 480

	// QuickProfileTargetHeight is the normalization height for the quick profile.
	QuickProfileTargetHeight int = 270
)

// Profile represents a vqcheck sampling profile grouping.
type Profile string

const (
	// ProfileQuick trades accuracy for speed: fewer samples, smaller frames.
	ProfileQuick Profile = "quick"
	// ProfileStandard is the default sampling density.
	ProfileStandard Profile = "standard"
	// ProfileExhaustive compares every frame of the shorter stream.
	ProfileExhaustive Profile = "exhaustive"
)

// ParseProfile parses a string into a Profile.
func ParseProfile(s string) (Profile, error) {
	switch strings.ToLower(s) {
	case "quick":
		return ProfileQuick, nil
	case "standard":
		return ProfileStandard, nil
	case "exhaustive":
		return ProfileExhaustive, nil
	default:
		return "", fmt.Errorf("%w: '%s', valid options: quick, standard, exhaustive", ErrInvalidProfile, s)
	}
}

// String returns the string representation of the profile.
func (p Profile) String() string {
	return string(p)
}

// ProfileValues contains bundled parameter values for a profile.
type ProfileValues struct {
	MaxSamples   int
	TargetWidth  int
	TargetHeight int
}

// GetProfileValues returns the values for a given profile.
func GetProfileValues(p Profile) ProfileValues {
	switch p {
	case ProfileQuick:
		return ProfileValues{
			MaxSamples:   QuickProfileMaxSamples,
			TargetWidth:  QuickProfileTargetWidth,
			TargetHeight: QuickProfileTargetHeight,
		}
	case ProfileExhaustive:
		return ProfileValues{
			MaxSamples:   0,
			TargetWidth:  DefaultTargetWidth,
			TargetHeight: DefaultTargetHeight,
		}
	default:
		return ProfileValues{
			MaxSamples:   DefaultMaxSamples,
			TargetWidth:  DefaultTargetWidth,
			TargetHeight: DefaultTargetHeight,
		}
	}
}

// Config holds all configuration for quality evaluation.
type Config struct {
	// Sampling
	MaxSamples int // 0 = compare every frame of the shorter stream

	// Normalization target resolution
	TargetWidth  int
	TargetHeight int

	// SSIM local window side (odd, >= MinSSIMWindow)
	SSIMWindow int

	// Parallel sample workers (0 = one per physical core)
	Workers int

	// Selected profile (optional)
	VQProfile *Profile
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		MaxSamples:   DefaultMaxSamples,
		TargetWidth:  DefaultTargetWidth,
		TargetHeight: DefaultTargetHeight,
		SSIMWindow:   DefaultSSIMWindow,
		Workers:      DefaultWorkers,
	}
}

// ApplyProfile applies the given profile to the config.
func (c *Config) ApplyProfile(p Profile) {
	values := GetProfileValues(p)
	c.VQProfile = &p
	c.MaxSamples = values.MaxSamples
	c.TargetWidth = values.TargetWidth
	c.TargetHeight = values.TargetHeight
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.MaxSamples < 0 {
		return fmt.Errorf("%w: must be >= 0, got %d", ErrInvalidSamples, c.MaxSamples)
	}

	if c.TargetWidth <= 0 || c.TargetHeight <= 0 {
		return fmt.Errorf("%w: got %dx%d", ErrInvalidTarget, c.TargetWidth, c.TargetHeight)
	}

	if c.SSIMWindow < MinSSIMWindow || c.SSIMWindow%2 == 0 {
		return fmt.Errorf("%w: must be odd and >= %d, got %d", ErrInvalidWindow, MinSSIMWindow, c.SSIMWindow)
	}

	if c.Workers < 0 {
		return fmt.Errorf("%w: must be >= 0, got %d", ErrInvalidWorkers, c.Workers)
	}

	return nil
}

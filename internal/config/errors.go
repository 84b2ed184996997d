// Package config provides configuration types and defaults for vqcheck.
package config

import "errors"

// Sentinel errors for configuration validation.
var (
	// ErrInvalidProfile indicates an unknown profile name was provided.
	ErrInvalidProfile = errors.New("invalid profile")

	// ErrInvalidSamples indicates a negative sample cap.
	ErrInvalidSamples = errors.New("sample cap out of range")

	// ErrInvalidTarget indicates a non-positive normalization target dimension.
	ErrInvalidTarget = errors.New("target resolution out of range")

	// ErrInvalidWindow indicates an SSIM window that is even or too small.
	ErrInvalidWindow = errors.New("SSIM window invalid")

	// ErrInvalidWorkers indicates a negative worker count.
	ErrInvalidWorkers = errors.New("worker count out of range")
)

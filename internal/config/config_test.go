package config

import (
	"errors"
	"testing"
)

func TestNewConfigDefaults(t *testing.T) {
	cfg := NewConfig()

	if cfg.MaxSamples != DefaultMaxSamples {
		t.Errorf("MaxSamples = %d, want %d", cfg.MaxSamples, DefaultMaxSamples)
	}
	if cfg.TargetWidth != DefaultTargetWidth || cfg.TargetHeight != DefaultTargetHeight {
		t.Errorf("target = %dx%d, want %dx%d",
			cfg.TargetWidth, cfg.TargetHeight, DefaultTargetWidth, DefaultTargetHeight)
	}
	if cfg.SSIMWindow != DefaultSSIMWindow {
		t.Errorf("SSIMWindow = %d, want %d", cfg.SSIMWindow, DefaultSSIMWindow)
	}
	if cfg.Workers != DefaultWorkers {
		t.Errorf("Workers = %d, want %d", cfg.Workers, DefaultWorkers)
	}
	if cfg.VQProfile != nil {
		t.Errorf("VQProfile = %v, want nil", *cfg.VQProfile)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate, got %v", err)
	}
}

func TestParseProfile(t *testing.T) {
	tests := []struct {
		input   string
		want    Profile
		wantErr bool
	}{
		{"quick", ProfileQuick, false},
		{"standard", ProfileStandard, false},
		{"exhaustive", ProfileExhaustive, false},
		{"QUICK", ProfileQuick, false},
		{"Standard", ProfileStandard, false},
		{"", "", true},
		{"thorough", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseProfile(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Errorf("ParseProfile(%q) expected error, got nil", tt.input)
				} else if !errors.Is(err, ErrInvalidProfile) {
					t.Errorf("ParseProfile(%q) error = %v, want ErrInvalidProfile", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseProfile(%q) error = %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseProfile(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestApplyProfile(t *testing.T) {
	tests := []struct {
		profile      Profile
		wantSamples  int
		wantWidth    int
		wantHeight   int
	}{
		{ProfileQuick, QuickProfileMaxSamples, QuickProfileTargetWidth, QuickProfileTargetHeight},
		{ProfileStandard, DefaultMaxSamples, DefaultTargetWidth, DefaultTargetHeight},
		{ProfileExhaustive, 0, DefaultTargetWidth, DefaultTargetHeight},
	}

	for _, tt := range tests {
		t.Run(tt.profile.String(), func(t *testing.T) {
			cfg := NewConfig()
			cfg.ApplyProfile(tt.profile)

			if cfg.MaxSamples != tt.wantSamples {
				t.Errorf("MaxSamples = %d, want %d", cfg.MaxSamples, tt.wantSamples)
			}
			if cfg.TargetWidth != tt.wantWidth || cfg.TargetHeight != tt.wantHeight {
				t.Errorf("target = %dx%d, want %dx%d",
					cfg.TargetWidth, cfg.TargetHeight, tt.wantWidth, tt.wantHeight)
			}
			if cfg.VQProfile == nil || *cfg.VQProfile != tt.profile {
				t.Errorf("VQProfile = %v, want %v", cfg.VQProfile, tt.profile)
			}
			if err := cfg.Validate(); err != nil {
				t.Errorf("profile config should validate, got %v", err)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{"valid defaults", func(*Config) {}, nil},
		{"zero samples is exhaustive", func(c *Config) { c.MaxSamples = 0 }, nil},
		{"negative samples", func(c *Config) { c.MaxSamples = -1 }, ErrInvalidSamples},
		{"zero width", func(c *Config) { c.TargetWidth = 0 }, ErrInvalidTarget},
		{"negative height", func(c *Config) { c.TargetHeight = -360 }, ErrInvalidTarget},
		{"even window", func(c *Config) { c.SSIMWindow = 8 }, ErrInvalidWindow},
		{"window below minimum", func(c *Config) { c.SSIMWindow = 1 }, ErrInvalidWindow},
		{"minimum window", func(c *Config) { c.SSIMWindow = MinSSIMWindow }, nil},
		{"zero workers auto-detects", func(c *Config) { c.Workers = 0 }, nil},
		{"negative workers", func(c *Config) { c.Workers = -2 }, ErrInvalidWorkers},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("Validate() error = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

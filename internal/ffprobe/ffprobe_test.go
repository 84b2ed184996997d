package ffprobe

import (
	"os"
	"path/filepath"
	"testing"
)

// loadTestData loads a JSON fixture from the testdata directory.
func loadTestData(t *testing.T, filename string) []byte {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", filename))
	if err != nil {
		t.Fatalf("failed to load test data %s: %v", filename, err)
	}
	return data
}

func TestParseFFprobeOutput_Valid1080p(t *testing.T) {
	data := loadTestData(t, "video_1080p.json")

	probe, err := parseFFprobeOutput(data)
	if err != nil {
		t.Fatalf("parseFFprobeOutput() error = %v", err)
	}

	if probe.Format.Duration != "120.500000" {
		t.Errorf("Duration = %q, want %q", probe.Format.Duration, "120.500000")
	}
	if len(probe.Streams) != 2 {
		t.Fatalf("len(Streams) = %d, want 2", len(probe.Streams))
	}

	video := probe.Streams[0]
	if video.CodecType != "video" {
		t.Errorf("video.CodecType = %q, want %q", video.CodecType, "video")
	}
	if video.Width != 1920 {
		t.Errorf("video.Width = %d, want 1920", video.Width)
	}
	if video.Height != 1080 {
		t.Errorf("video.Height = %d, want 1080", video.Height)
	}
	if video.NbFrames != "2892" {
		t.Errorf("video.NbFrames = %q, want %q", video.NbFrames, "2892")
	}
}

func TestParseFFprobeOutput_MalformedJSON(t *testing.T) {
	data := []byte(`{"format": {"duration": "120.5"}, "streams": [}`)

	_, err := parseFFprobeOutput(data)
	if err == nil {
		t.Error("parseFFprobeOutput() expected error for malformed JSON, got nil")
	}
}

func TestParseMediaInfo_1080p(t *testing.T) {
	data := loadTestData(t, "video_1080p.json")
	probe, err := parseFFprobeOutput(data)
	if err != nil {
		t.Fatalf("parseFFprobeOutput() error = %v", err)
	}

	info, err := parseMediaInfo(probe, "test.mp4")
	if err != nil {
		t.Fatalf("parseMediaInfo() error = %v", err)
	}

	if info.Duration != 120.5 {
		t.Errorf("Duration = %f, want 120.5", info.Duration)
	}
	if info.SizeBytes != 52428800 {
		t.Errorf("SizeBytes = %d, want 52428800", info.SizeBytes)
	}
	if info.Width != 1920 {
		t.Errorf("Width = %d, want 1920", info.Width)
	}
	if info.Height != 1080 {
		t.Errorf("Height = %d, want 1080", info.Height)
	}
	if info.FPS != 24 {
		t.Errorf("FPS = %f, want 24", info.FPS)
	}
	if info.TotalFrames != 2892 {
		t.Errorf("TotalFrames = %d, want 2892", info.TotalFrames)
	}
	if info.CodecName != "h264" {
		t.Errorf("CodecName = %q, want %q", info.CodecName, "h264")
	}
}

func TestParseMediaInfo_FrameCountFallback(t *testing.T) {
	data := loadTestData(t, "video_no_nb_frames.json")
	probe, err := parseFFprobeOutput(data)
	if err != nil {
		t.Fatalf("parseFFprobeOutput() error = %v", err)
	}

	info, err := parseMediaInfo(probe, "remux.avi")
	if err != nil {
		t.Fatalf("parseMediaInfo() error = %v", err)
	}

	// nb_frames is absent: the count derives from duration and frame rate.
	// 10.01 s at 30000/1001 fps is exactly 300 frames.
	if info.TotalFrames != 300 {
		t.Errorf("TotalFrames = %d, want 300", info.TotalFrames)
	}
}

func TestParseMediaInfo_NoVideoStream(t *testing.T) {
	data := loadTestData(t, "audio_only.json")
	probe, err := parseFFprobeOutput(data)
	if err != nil {
		t.Fatalf("parseFFprobeOutput() error = %v", err)
	}

	if _, err := parseMediaInfo(probe, "music.flac"); err == nil {
		t.Error("parseMediaInfo() expected error for missing video stream, got nil")
	}
}

func TestParseMediaInfo_InvalidDimensions(t *testing.T) {
	probe := &ffprobeOutput{
		Streams: []ffprobeStream{
			{CodecType: "video", Width: 0, Height: 1080},
		},
	}

	if _, err := parseMediaInfo(probe, "broken.mkv"); err == nil {
		t.Error("parseMediaInfo() expected error for zero width, got nil")
	}
}

func TestParseFrameRate(t *testing.T) {
	tests := []struct {
		input string
		want  float64
	}{
		{"24/1", 24},
		{"30000/1001", 30000.0 / 1001.0},
		{"25", 25},
		{"0/0", 0},
		{"", 0},
		{"abc/def", 0},
		{"30/0", 0},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := parseFrameRate(tt.input); got != tt.want {
				t.Errorf("parseFrameRate(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

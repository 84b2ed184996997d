// Package ffprobe provides functions for extracting media information using ffprobe.
package ffprobe

import (
	"encoding/json"
	"fmt"
	"math"
	"os/exec"
	"strconv"
	"strings"

	"github.com/vqcheck/vqcheck/internal/errors"
)

// MediaInfo contains container and video stream information.
type MediaInfo struct {
	FormatName  string
	Duration    float64
	SizeBytes   uint64
	Width       int
	Height      int
	FPS         float64
	TotalFrames int
	CodecName   string
}

// ffprobeOutput represents the JSON output from ffprobe.
type ffprobeOutput struct {
	Format  ffprobeFormat   `json:"format"`
	Streams []ffprobeStream `json:"streams"`
}

type ffprobeFormat struct {
	FormatName string `json:"format_name"`
	Duration   string `json:"duration"`
	Size       string `json:"size"`
}

type ffprobeStream struct {
	CodecType    string `json:"codec_type"`
	CodecName    string `json:"codec_name"`
	Width        int    `json:"width"`
	Height       int    `json:"height"`
	NbFrames     string `json:"nb_frames"`
	AvgFrameRate string `json:"avg_frame_rate"`
	RFrameRate   string `json:"r_frame_rate"`
}

// runFFprobe executes ffprobe and returns the parsed output.
func runFFprobe(inputPath string) (*ffprobeOutput, error) {
	cmd := exec.Command("ffprobe",
		"-v", "quiet",
		"-print_format", "json",
		"-show_format",
		"-show_streams",
		inputPath,
	)

	output, err := cmd.Output()
	if err != nil {
		var stderr string
		if exitErr, ok := err.(*exec.ExitError); ok {
			stderr = strings.TrimSpace(string(exitErr.Stderr))
		}
		return nil, errors.WrapExecError("ffprobe", err, stderr)
	}

	return parseFFprobeOutput(output)
}

// parseFFprobeOutput unmarshals raw ffprobe JSON.
func parseFFprobeOutput(data []byte) (*ffprobeOutput, error) {
	var result ffprobeOutput
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, errors.NewJSONParseError("failed to parse ffprobe output", err)
	}
	return &result, nil
}

// GetMediaInfo returns container and video stream information for a file.
func GetMediaInfo(inputPath string) (*MediaInfo, error) {
	probe, err := runFFprobe(inputPath)
	if err != nil {
		return nil, err
	}
	return parseMediaInfo(probe, inputPath)
}

// parseMediaInfo extracts MediaInfo from parsed ffprobe output.
func parseMediaInfo(probe *ffprobeOutput, inputPath string) (*MediaInfo, error) {
	info := &MediaInfo{FormatName: probe.Format.FormatName}

	if probe.Format.Duration != "" {
		if d, err := strconv.ParseFloat(probe.Format.Duration, 64); err == nil {
			info.Duration = d
		}
	}
	if probe.Format.Size != "" {
		if s, err := strconv.ParseUint(probe.Format.Size, 10, 64); err == nil {
			info.SizeBytes = s
		}
	}

	// Find the first video stream
	var videoStream *ffprobeStream
	for i := range probe.Streams {
		if probe.Streams[i].CodecType == "video" {
			videoStream = &probe.Streams[i]
			break
		}
	}
	if videoStream == nil {
		return nil, errors.NewProbeParseError(fmt.Sprintf("no video stream found in %s", inputPath))
	}
	if videoStream.Width <= 0 || videoStream.Height <= 0 {
		return nil, errors.NewProbeParseError(
			fmt.Sprintf("invalid dimensions in %s: %dx%d", inputPath, videoStream.Width, videoStream.Height))
	}

	info.Width = videoStream.Width
	info.Height = videoStream.Height
	info.CodecName = videoStream.CodecName
	info.FPS = parseFrameRate(videoStream.AvgFrameRate)
	if info.FPS == 0 {
		info.FPS = parseFrameRate(videoStream.RFrameRate)
	}

	if videoStream.NbFrames != "" {
		if frames, err := strconv.ParseInt(videoStream.NbFrames, 10, 64); err == nil {
			info.TotalFrames = int(frames)
		}
	}

	// Some containers (notably AVI remuxes and stream copies) omit nb_frames.
	// Derive the count from duration and frame rate.
	if info.TotalFrames == 0 && info.Duration > 0 && info.FPS > 0 {
		info.TotalFrames = int(math.Round(info.Duration * info.FPS))
	}

	return info, nil
}

// parseFrameRate parses ffprobe's rational frame rate notation ("30000/1001").
// Returns 0 for missing or degenerate values.
func parseFrameRate(s string) float64 {
	if s == "" || s == "0/0" {
		return 0
	}

	parts := strings.SplitN(s, "/", 2)
	num, err := strconv.ParseFloat(parts[0], 64)
	if err != nil {
		return 0
	}
	if len(parts) == 1 {
		return num
	}

	den, err := strconv.ParseFloat(parts[1], 64)
	if err != nil || den == 0 {
		return 0
	}
	return num / den
}

package source

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
	"sync"

	"github.com/vqcheck/vqcheck/internal/errors"
	"github.com/vqcheck/vqcheck/internal/ffprobe"
	"github.com/vqcheck/vqcheck/internal/frame"
	"github.com/vqcheck/vqcheck/internal/util"
)

// FFmpegSource decodes frames from a video file by running ffmpeg per
// sampled index: an accurate output seek to the frame's timestamp, one frame
// of rawvideo RGB24 on stdout. Output seeking decodes up to the target
// instead of snapping to the nearest keyframe, so the same index maps to the
// same picture in differently keyframed encodes of one clip.
type FFmpegSource struct {
	path string
	info *ffprobe.MediaInfo

	// DecodeFrame seeks, so decodes on one source are serialized.
	mu sync.Mutex
}

// OpenFFmpegSource probes the file and prepares it for frame decoding.
func OpenFFmpegSource(path string) (*FFmpegSource, error) {
	if !util.FileExists(path) {
		return nil, errors.NewSourceUnavailableError(path, fmt.Errorf("file does not exist"))
	}

	info, err := ffprobe.GetMediaInfo(path)
	if err != nil {
		return nil, errors.NewSourceUnavailableError(path, err)
	}
	if info.TotalFrames > 0 && info.FPS <= 0 {
		return nil, errors.NewVideoInfoError(
			fmt.Sprintf("cannot map frame indices for %s: unknown frame rate", path))
	}

	return &FFmpegSource{path: path, info: info}, nil
}

// Path returns the file path.
func (s *FFmpegSource) Path() string { return s.path }

// FrameCount returns the probed frame count.
func (s *FFmpegSource) FrameCount() int { return s.info.TotalFrames }

// Info returns the probed media information.
func (s *FFmpegSource) Info() *ffprobe.MediaInfo { return s.info }

// DecodeFrame decodes the frame at the given zero-based index.
func (s *FFmpegSource) DecodeFrame(ctx context.Context, index int) (*frame.Frame, error) {
	if index < 0 || index >= s.info.TotalFrames {
		return nil, fmt.Errorf("frame %d out of range [0, %d): %w", index, s.info.TotalFrames, ErrFrameUnavailable)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	timestamp := float64(index) / s.info.FPS

	cmd := exec.CommandContext(ctx, "ffmpeg",
		"-nostdin",
		"-v", "error",
		"-i", s.path,
		"-ss", fmt.Sprintf("%.6f", timestamp),
		"-map", "0:v:0",
		"-frames:v", "1",
		"-f", "rawvideo",
		"-pix_fmt", "rgb24",
		"pipe:1",
	)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return nil, errors.NewCancelledError()
		}
		return nil, errors.WrapExecError("ffmpeg", err, strings.TrimSpace(stderr.String()))
	}

	raw := stdout.Bytes()
	if len(raw) == 0 {
		// ffmpeg exits zero when the seek lands past the last frame
		return nil, fmt.Errorf("no data for frame %d of %s: %w", index, s.path, ErrFrameUnavailable)
	}

	f, err := frame.FromRaw(s.info.Width, s.info.Height, raw)
	if err != nil {
		return nil, fmt.Errorf("decoding frame %d of %s: %w", index, s.path, err)
	}
	return f, nil
}

// Close releases the source. FFmpeg runs per decode, so there is no
// persistent process to tear down.
func (s *FFmpegSource) Close() error { return nil }

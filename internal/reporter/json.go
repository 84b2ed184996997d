package reporter

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"sync"
	"time"
)

// JSONReporter outputs NDJSON events for machine consumption.
type JSONReporter struct {
	writer io.Writer
	mu     sync.Mutex
}

// NewJSONReporter creates a new JSON reporter that writes to stdout.
func NewJSONReporter() *JSONReporter {
	return &JSONReporter{writer: os.Stdout}
}

// NewJSONReporterWithWriter creates a JSON reporter with a custom writer.
func NewJSONReporterWithWriter(w io.Writer) *JSONReporter {
	return &JSONReporter{writer: w}
}

func (r *JSONReporter) timestamp() int64 {
	return time.Now().Unix()
}

func (r *JSONReporter) write(v interface{}) {
	r.mu.Lock()
	defer r.mu.Unlock()

	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	_, _ = fmt.Fprintln(r.writer, string(data))
}

// jsonPSNR renders PSNR for JSON output. encoding/json cannot marshal +Inf,
// so identical-frame comparisons emit the string "inf".
func jsonPSNR(psnr float64) interface{} {
	if math.IsInf(psnr, 1) {
		return "inf"
	}
	return psnr
}

func (r *JSONReporter) SourceInfo(summary SourceSummary) {
	r.write(map[string]interface{}{
		"type":        "source_info",
		"label":       summary.Label,
		"path":        summary.Path,
		"container":   summary.FormatName,
		"codec":       summary.Codec,
		"duration":    summary.Duration,
		"resolution":  summary.Resolution,
		"fps":         summary.FPS,
		"frame_count": summary.FrameCount,
		"size":        summary.Size,
		"timestamp":   r.timestamp(),
	})
}

func (r *JSONReporter) EvaluationStarted(start EvaluationStart) {
	r.write(map[string]interface{}{
		"type":            "evaluation_started",
		"reference":       start.ReferencePath,
		"candidate":       start.CandidatePath,
		"planned_samples": start.PlannedSamples,
		"workers":         start.Workers,
		"timestamp":       r.timestamp(),
	})
}

func (r *JSONReporter) SampleCompared(done, total int) {
	// Per-sample events are noise in NDJSON output; final counts are in
	// evaluation_complete.
}

func (r *JSONReporter) EvaluationComplete(outcome EvaluationOutcome) {
	r.write(map[string]interface{}{
		"type":            "evaluation_complete",
		"reference":       outcome.ReferencePath,
		"candidate":       outcome.CandidatePath,
		"mean_psnr_db":    jsonPSNR(outcome.MeanPSNR),
		"mean_ssim":       outcome.MeanSSIM,
		"psnr_band":       outcome.PSNRBand,
		"ssim_band":       outcome.SSIMBand,
		"compared_pairs":  outcome.ComparedPairs,
		"planned_pairs":   outcome.PlannedPairs,
		"elapsed_seconds": outcome.Elapsed.Seconds(),
		"timestamp":       r.timestamp(),
	})
}

func (r *JSONReporter) BatchStarted(info BatchStartInfo) {
	r.write(map[string]interface{}{
		"type":        "batch_started",
		"reference":   info.ReferencePath,
		"total_files": info.TotalFiles,
		"files":       info.FileList,
		"timestamp":   r.timestamp(),
	})
}

func (r *JSONReporter) BatchComplete(summary BatchSummary) {
	r.write(map[string]interface{}{
		"type":             "batch_complete",
		"total_files":      summary.TotalFiles,
		"successful_count": summary.SuccessfulCount,
		"elapsed_seconds":  summary.TotalDuration.Seconds(),
		"timestamp":        r.timestamp(),
	})
}

func (r *JSONReporter) Warning(message string) {
	r.write(map[string]interface{}{
		"type":      "warning",
		"message":   message,
		"timestamp": r.timestamp(),
	})
}

func (r *JSONReporter) Error(err ReporterError) {
	r.write(map[string]interface{}{
		"type":       "error",
		"title":      err.Title,
		"message":    err.Message,
		"context":    err.Context,
		"suggestion": err.Suggestion,
		"timestamp":  r.timestamp(),
	})
}

func (r *JSONReporter) Verbose(message string) {
	r.write(map[string]interface{}{
		"type":      "verbose",
		"message":   message,
		"timestamp": r.timestamp(),
	})
}

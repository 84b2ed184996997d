// Package reporter provides progress reporting interfaces and implementations.
package reporter

import "time"

// SourceSummary describes one probed video file.
type SourceSummary struct {
	Label      string // "Reference" or "Candidate"
	Path       string
	FormatName string
	Duration   string
	Resolution string
	FPS        float64
	FrameCount int
	Codec      string
	Size       string
}

// EvaluationStart describes a comparison about to run.
type EvaluationStart struct {
	ReferencePath  string
	CandidatePath  string
	PlannedSamples int
	Workers        int
}

// EvaluationOutcome contains the final scores for one comparison.
type EvaluationOutcome struct {
	ReferencePath string
	CandidatePath string
	MeanPSNR      float64 // dB, may be +Inf
	MeanSSIM      float64
	PSNRBand      string
	SSIMBand      string
	ComparedPairs int
	PlannedPairs  int
	Elapsed       time.Duration
}

// BatchStartInfo describes a multi-candidate comparison run.
type BatchStartInfo struct {
	ReferencePath string
	TotalFiles    int
	FileList      []string
}

// BatchSummary aggregates a multi-candidate run.
type BatchSummary struct {
	TotalFiles      int
	SuccessfulCount int
	TotalDuration   time.Duration
	Outcomes        []EvaluationOutcome
}

// ReporterError contains structured error information for display.
type ReporterError struct {
	Title      string
	Message    string
	Context    string
	Suggestion string
}

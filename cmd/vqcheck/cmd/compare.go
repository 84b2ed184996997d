package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vqcheck/vqcheck/internal/config"
	"github.com/vqcheck/vqcheck/internal/discovery"
	"github.com/vqcheck/vqcheck/internal/errors"
	"github.com/vqcheck/vqcheck/internal/evaluate"
	"github.com/vqcheck/vqcheck/internal/ffprobe"
	"github.com/vqcheck/vqcheck/internal/reporter"
	"github.com/vqcheck/vqcheck/internal/source"
	"github.com/vqcheck/vqcheck/internal/util"
)

// compareArgs holds the parsed flags for the compare command.
type compareArgs struct {
	referencePath string
	profile       string
	samples       int
	width         int
	height        int
	window        int
	workers       int
}

var compareFlags compareArgs

var compareCmd = &cobra.Command{
	Use:   "compare -r <reference> <candidate>...",
	Short: "Compare candidate videos against a reference",
	Long: `Compare one or more candidate videos against a reference video.

Each candidate argument may be a video file or a directory; a directory
contributes every video file it directly contains. Candidates are scored
independently against the same reference.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCompare,
}

func init() {
	compareCmd.Flags().StringVarP(&compareFlags.referencePath, "reference", "r", "", "reference video file (required)")
	compareCmd.Flags().StringVarP(&compareFlags.profile, "profile", "p", "", "comparison profile (quick, standard, exhaustive)")
	compareCmd.Flags().IntVarP(&compareFlags.samples, "samples", "n", config.DefaultMaxSamples, "maximum frame pairs to compare (0 = every frame)")
	compareCmd.Flags().IntVar(&compareFlags.width, "width", config.DefaultTargetWidth, "normalization width")
	compareCmd.Flags().IntVar(&compareFlags.height, "height", config.DefaultTargetHeight, "normalization height")
	compareCmd.Flags().IntVar(&compareFlags.window, "window", config.DefaultSSIMWindow, "SSIM window side, odd and >= 3")
	compareCmd.Flags().IntVarP(&compareFlags.workers, "workers", "w", config.DefaultWorkers, "parallel sample workers (0 = one per physical core)")
	_ = compareCmd.MarkFlagRequired("reference")

	rootCmd.AddCommand(compareCmd)
}

// buildConfig turns the compare flags into a validated config. Profile values
// apply first so explicit flags win over profile defaults.
func buildConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.NewConfig()

	if compareFlags.profile != "" {
		profile, err := config.ParseProfile(compareFlags.profile)
		if err != nil {
			return nil, err
		}
		cfg.ApplyProfile(profile)
	}

	if cmd.Flags().Changed("samples") {
		cfg.MaxSamples = compareFlags.samples
	}
	if cmd.Flags().Changed("width") {
		cfg.TargetWidth = compareFlags.width
	}
	if cmd.Flags().Changed("height") {
		cfg.TargetHeight = compareFlags.height
	}
	if cmd.Flags().Changed("window") {
		cfg.SSIMWindow = compareFlags.window
	}
	if cmd.Flags().Changed("workers") {
		cfg.Workers = compareFlags.workers
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runCompare(cmd *cobra.Command, args []string) error {
	rep := newReporter()

	cfg, err := buildConfig(cmd)
	if err != nil {
		reportError(rep, "Invalid configuration", err)
		return err
	}

	if verbose {
		rep.Verbose(fmt.Sprintf("samples=%d target=%dx%d window=%d workers=%d",
			cfg.MaxSamples, cfg.TargetWidth, cfg.TargetHeight, cfg.SSIMWindow, cfg.Workers))
	}

	candidates, err := discovery.ExpandCandidates(args)
	if err != nil {
		reportError(rep, "Candidate discovery failed", err)
		return err
	}

	ref, err := source.OpenFFmpegSource(compareFlags.referencePath)
	if err != nil {
		reportError(rep, "Cannot open reference", err)
		return err
	}
	defer func() { _ = ref.Close() }()

	reportSource(rep, "REFERENCE", compareFlags.referencePath)

	eval, err := evaluate.New(cfg, rep)
	if err != nil {
		return err
	}

	if len(candidates) > 1 {
		rep.BatchStarted(reporter.BatchStartInfo{
			ReferencePath: compareFlags.referencePath,
			TotalFiles:    len(candidates),
			FileList:      baseNames(candidates),
		})
	}

	batchStart := time.Now()
	var outcomes []reporter.EvaluationOutcome
	var firstErr error

	for _, candidatePath := range candidates {
		outcome, err := compareOne(cmd, eval, rep, ref, candidatePath)
		if err != nil {
			if errors.IsCancelled(err) {
				return err
			}
			reportError(rep, fmt.Sprintf("Comparison failed for %s", util.GetFilename(candidatePath)), err)
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		outcomes = append(outcomes, *outcome)
	}

	if len(candidates) > 1 {
		rep.BatchComplete(reporter.BatchSummary{
			TotalFiles:      len(candidates),
			SuccessfulCount: len(outcomes),
			TotalDuration:   time.Since(batchStart),
			Outcomes:        outcomes,
		})
	}

	if len(outcomes) == 0 {
		return firstErr
	}
	return nil
}

// compareOne scores a single candidate against the already-open reference.
func compareOne(cmd *cobra.Command, eval *evaluate.Evaluator, rep reporter.Reporter, ref source.Source, candidatePath string) (*reporter.EvaluationOutcome, error) {
	cand, err := source.OpenFFmpegSource(candidatePath)
	if err != nil {
		return nil, err
	}
	defer func() { _ = cand.Close() }()

	reportSource(rep, "CANDIDATE", candidatePath)

	start := time.Now()
	result, err := eval.Evaluate(cmd.Context(), ref, cand)
	if err != nil {
		return nil, err
	}

	outcome := reporter.EvaluationOutcome{
		ReferencePath: ref.Path(),
		CandidatePath: candidatePath,
		MeanPSNR:      result.MeanPSNR,
		MeanSSIM:      result.MeanSSIM,
		PSNRBand:      result.PSNRBand(),
		SSIMBand:      result.SSIMBand(),
		ComparedPairs: result.ComparedPairs,
		PlannedPairs:  result.PlannedPairs,
		Elapsed:       time.Since(start),
	}
	rep.EvaluationComplete(outcome)
	return &outcome, nil
}

// reportSource probes a file and emits its summary. Probe failures are not
// fatal here; opening the source is where they bite.
func reportSource(rep reporter.Reporter, label, path string) {
	info, err := ffprobe.GetMediaInfo(path)
	if err != nil {
		return
	}
	rep.SourceInfo(sourceSummary(label, path, info))
}

func sourceSummary(label, path string, info *ffprobe.MediaInfo) reporter.SourceSummary {
	return reporter.SourceSummary{
		Label:      label,
		Path:       path,
		FormatName: info.FormatName,
		Duration:   util.FormatDuration(info.Duration),
		Resolution: util.FormatResolution(info.Width, info.Height),
		FPS:        info.FPS,
		FrameCount: info.TotalFrames,
		Codec:      info.CodecName,
		Size:       util.FormatBytes(info.SizeBytes),
	}
}

func baseNames(paths []string) []string {
	names := make([]string, len(paths))
	for i, p := range paths {
		names[i] = util.GetFilename(p)
	}
	return names
}

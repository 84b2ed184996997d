package reporter

import (
	"fmt"
	"math"
	"os"
	"sync"

	"github.com/fatih/color"
	"github.com/schollz/progressbar/v3"

	"github.com/vqcheck/vqcheck/internal/util"
)

// TerminalReporter outputs human-friendly text to the terminal.
type TerminalReporter struct {
	mu       sync.Mutex
	progress *progressbar.ProgressBar
	cyan     *color.Color
	green    *color.Color
	yellow   *color.Color
	red      *color.Color
	magenta  *color.Color
	bold     *color.Color
}

// NewTerminalReporter creates a new terminal reporter.
func NewTerminalReporter() *TerminalReporter {
	return &TerminalReporter{
		cyan:    color.New(color.FgCyan, color.Bold),
		green:   color.New(color.FgGreen),
		yellow:  color.New(color.FgYellow, color.Bold),
		red:     color.New(color.FgRed, color.Bold),
		magenta: color.New(color.FgMagenta),
		bold:    color.New(color.Bold),
	}
}

func (r *TerminalReporter) finishProgress() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.progress != nil {
		_ = r.progress.Finish()
		r.progress = nil
	}
}

// printLabel prints a bold label with fixed width padding followed by a value.
// Width is applied to the plain text before styling to ensure proper alignment.
func (r *TerminalReporter) printLabel(width int, label, value string) {
	paddedLabel := fmt.Sprintf("%-*s", width, label)
	fmt.Printf("  %s %s\n", r.bold.Sprint(paddedLabel), value)
}

func (r *TerminalReporter) SourceInfo(summary SourceSummary) {
	fmt.Println()
	_, _ = r.cyan.Println(summary.Label)
	const w = 11
	r.printLabel(w, "File:", summary.Path)
	r.printLabel(w, "Container:", summary.FormatName)
	r.printLabel(w, "Codec:", summary.Codec)
	r.printLabel(w, "Duration:", summary.Duration)
	r.printLabel(w, "Resolution:", summary.Resolution)
	r.printLabel(w, "Rate:", fmt.Sprintf("%.3f fps", summary.FPS))
	r.printLabel(w, "Frames:", fmt.Sprintf("%d", summary.FrameCount))
	r.printLabel(w, "Size:", summary.Size)
}

func (r *TerminalReporter) EvaluationStarted(start EvaluationStart) {
	fmt.Println()
	_, _ = r.cyan.Println("COMPARISON")
	r.printLabel(11, "Reference:", util.GetFilename(start.ReferencePath))
	r.printLabel(11, "Candidate:", util.GetFilename(start.CandidatePath))
	r.printLabel(11, "Samples:", fmt.Sprintf("%d", start.PlannedSamples))
	if start.Workers > 1 {
		r.printLabel(11, "Workers:", fmt.Sprintf("%d", start.Workers))
	}

	r.finishProgress()

	r.mu.Lock()
	defer r.mu.Unlock()
	r.progress = progressbar.NewOptions(
		start.PlannedSamples,
		progressbar.OptionSetDescription(""),
		progressbar.OptionSetWidth(40),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetPredictTime(false),
		progressbar.OptionShowDescriptionAtLineEnd(),
		progressbar.OptionSetElapsedTime(false),
		progressbar.OptionClearOnFinish(),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "=",
			SaucerHead:    ">",
			SaucerPadding: " ",
			BarStart:      "Comparing [",
			BarEnd:        "]",
		}),
	)
}

func (r *TerminalReporter) SampleCompared(done, total int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.progress == nil {
		return
	}
	_ = r.progress.Set(done)
	r.progress.Describe(fmt.Sprintf("%d/%d pairs", done, total))
}

func (r *TerminalReporter) EvaluationComplete(outcome EvaluationOutcome) {
	r.finishProgress()

	fmt.Println()
	_, _ = r.cyan.Println("RESULTS")
	const w = 9
	r.printLabel(w, "Candidate:", util.GetFilename(outcome.CandidatePath))
	fmt.Printf("  %s %s (%s)\n", r.bold.Sprint(fmt.Sprintf("%-*s", w, "PSNR:")),
		formatPSNR(outcome.MeanPSNR), r.bandColor(outcome.PSNRBand, PSNRIsGood(outcome.MeanPSNR)))
	fmt.Printf("  %s %.4f (%s)\n", r.bold.Sprint(fmt.Sprintf("%-*s", w, "SSIM:")),
		outcome.MeanSSIM, r.bandColor(outcome.SSIMBand, outcome.MeanSSIM > 0.85))

	pairs := fmt.Sprintf("%d of %d planned", outcome.ComparedPairs, outcome.PlannedPairs)
	if outcome.ComparedPairs < outcome.PlannedPairs {
		pairs = r.yellow.Sprint(pairs)
	}
	r.printLabel(w, "Pairs:", pairs)
	r.printLabel(w, "Time:", util.FormatDuration(outcome.Elapsed.Seconds()))

	if outcome.ComparedPairs < outcome.PlannedPairs {
		fmt.Printf("  %s scores reflect only the decodable prefix of the streams\n",
			r.yellow.Sprint("note:"))
	}
}

func (r *TerminalReporter) bandColor(band string, good bool) string {
	if good {
		return r.green.Sprint(band)
	}
	return r.yellow.Sprint(band)
}

// PSNRIsGood reports whether the value colors green in the terminal.
func PSNRIsGood(psnr float64) bool {
	return psnr > 30
}

// formatPSNR renders a PSNR value, including the +Inf identical-frames sentinel.
func formatPSNR(psnr float64) string {
	if math.IsInf(psnr, 1) {
		return "inf dB (identical frames)"
	}
	return fmt.Sprintf("%.2f dB", psnr)
}

func (r *TerminalReporter) BatchStarted(info BatchStartInfo) {
	fmt.Println()
	_, _ = r.cyan.Println("BATCH")
	fmt.Printf("  Comparing %d candidates against %s\n",
		info.TotalFiles, r.bold.Sprint(util.GetFilename(info.ReferencePath)))
	for i, name := range info.FileList {
		fmt.Printf("  %d. %s\n", i+1, name)
	}
}

func (r *TerminalReporter) BatchComplete(summary BatchSummary) {
	r.finishProgress()

	fmt.Println()
	_, _ = r.cyan.Println("BATCH SUMMARY")
	fmt.Printf("  %s\n", r.bold.Sprintf("%d of %d compared", summary.SuccessfulCount, summary.TotalFiles))
	fmt.Printf("  Time: %s\n", util.FormatDuration(summary.TotalDuration.Seconds()))

	for _, outcome := range summary.Outcomes {
		fmt.Printf("  - %s: %s / SSIM %.4f (%d pairs)\n",
			util.GetFilename(outcome.CandidatePath),
			formatPSNR(outcome.MeanPSNR),
			outcome.MeanSSIM,
			outcome.ComparedPairs)
	}
}

func (r *TerminalReporter) Warning(message string) {
	fmt.Println()
	_, _ = r.yellow.Printf("WARN: %s\n", message)
}

func (r *TerminalReporter) Error(err ReporterError) {
	_, _ = fmt.Fprintln(os.Stderr)
	_, _ = r.red.Fprintf(os.Stderr, "ERROR %s\n", err.Title)
	_, _ = fmt.Fprintf(os.Stderr, "  %s\n", err.Message)
	if err.Context != "" {
		_, _ = fmt.Fprintf(os.Stderr, "  Context: %s\n", err.Context)
	}
	if err.Suggestion != "" {
		_, _ = fmt.Fprintf(os.Stderr, "  Suggestion: %s\n", err.Suggestion)
	}
}

func (r *TerminalReporter) Verbose(message string) {
	fmt.Printf("  %s %s\n", r.magenta.Sprint("›"), message)
}

// Package cmd implements the CLI commands for vqcheck.
package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vqcheck/vqcheck/internal/logging"
	"github.com/vqcheck/vqcheck/internal/reporter"
	"github.com/vqcheck/vqcheck/internal/util"
)

var (
	verbose    bool
	jsonOutput bool
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:     "vqcheck",
	Short:   "Objective video quality comparison with PSNR and SSIM",
	Version: versionString(),
	Long: `vqcheck compares compressed video files against their reference by
sampling evenly-spaced frame pairs, normalizing both frames to a common
resolution, and reporting mean PSNR and SSIM with qualitative bands.

Decoding is delegated to ffmpeg and ffprobe, which must be on PATH.

Example:
  # Compare one candidate against its reference
  vqcheck compare -r original.mp4 compressed.mp4

  # Compare every video in a directory, quick profile
  vqcheck compare -r original.mp4 --profile quick encodes/`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command with the given context.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentPreRun = func(_ *cobra.Command, _ []string) {
		initLogging()
	}

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "emit NDJSON events instead of terminal output")
}

// initLogging configures the global slog logger from the persistent flags.
func initLogging() {
	level := logging.LevelInfo
	if verbose {
		level = logging.LevelDebug
	}
	logging.Init(level, os.Stderr)

	sys := util.GetSystemInfo()
	logging.Debug("starting",
		"host", sys.Hostname,
		"os", sys.OS,
		"arch", sys.Arch,
		"cpus", sys.NumCPU)
}

// newReporter selects the output reporter from the persistent flags.
func newReporter() reporter.Reporter {
	if jsonOutput {
		return reporter.NewJSONReporter()
	}
	return reporter.NewTerminalReporter()
}

// reportError renders an error through the active reporter before the
// process exits non-zero.
func reportError(rep reporter.Reporter, title string, err error) {
	rep.Error(reporter.ReporterError{
		Title:   title,
		Message: err.Error(),
	})
}

func versionString() string {
	return fmt.Sprintf("%s (%s)", appVersion, appCommit)
}

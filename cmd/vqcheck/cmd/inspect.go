package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/vqcheck/vqcheck/internal/ffprobe"
	"github.com/vqcheck/vqcheck/internal/util"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <video>...",
	Short: "Print container and video stream metadata",
	Long: `Probe one or more video files with ffprobe and print their container
format, codec, duration, resolution, frame rate, frame count and size.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runInspect,
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}

func runInspect(_ *cobra.Command, args []string) error {
	rep := newReporter()

	var firstErr error
	for _, path := range args {
		info, err := ffprobe.GetMediaInfo(path)
		if err != nil {
			reportError(rep, "Probe failed", err)
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		label := strings.ToUpper(util.GetFileStem(path))
		rep.SourceInfo(sourceSummary(label, path, info))
	}
	return firstErr
}

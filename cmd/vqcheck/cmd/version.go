package cmd

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/vqcheck/vqcheck/internal/util"
)

// Build metadata, overridable at link time with -ldflags.
var (
	appVersion = "0.3.0"
	appCommit  = "dev"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(_ *cobra.Command, _ []string) {
		fmt.Printf("vqcheck %s\n", versionString())
		fmt.Printf("  go:       %s\n", runtime.Version())
		fmt.Printf("  platform: %s/%s\n", runtime.GOOS, runtime.GOARCH)
		fmt.Printf("  cpu:      %d logical / %d physical cores\n",
			util.LogicalCores(), util.PhysicalCores())
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

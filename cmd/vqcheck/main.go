// Package main provides the CLI entry point for vqcheck.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/vqcheck/vqcheck/cmd/vqcheck/cmd"
)

func main() {
	// Cancel the context on SIGINT/SIGTERM so in-flight ffmpeg decodes are
	// killed and the evaluation unwinds cleanly.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := cmd.Execute(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

package sampledata

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/okian/podium/pkg/logger"
)

// Run writes the sample tables and, when cfg.BaseURL is set, verifies a
// service that serves them.
func Run(ctx context.Context, cfg *Config) error {
	start := time.Now()
	logger.Get().Info(ctx, "starting podium sample-data run",
		logger.String("outDir", cfg.OutDir),
		logger.Int("rows", cfg.Rows),
		logger.Any("seed", cfg.Seed),
		logger.String("baseURL", cfg.BaseURL))

	res, err := Write(ctx, cfg)
	if err != nil {
		return fmt.Errorf("sample data generation failed: %w", err)
	}
	if cfg.BaseURL == "" {
		return nil
	}

	stats, err := Verify(ctx, cfg, res)
	logger.Get().Info(ctx, "verification finished",
		logger.Int("probes", stats.Probes),
		logger.Int("succeeded", stats.Succeeded),
		logger.Int("failed", stats.Failed),
		logger.String("duration", stats.Duration.String()),
		logger.String("total", time.Since(start).String()))
	if err != nil {
		return fmt.Errorf("verification failed: %w", err)
	}
	return nil
}

// ShowHelp prints usage information for the sample-data tool.
func ShowHelp() {
	_, _ = os.Stdout.WriteString(`Podium Sample Data Tool
=======================

Generates synthetic participation and coordinate tables and optionally
checks a running service that was started on them.

Usage:
  go run ./cmd/sample-data [options]

Options:
  -out string
        Output directory (default ".")
  -rows int
        Number of participation rows (default 5000)
  -seed uint
        Generator seed; equal seeds give equal files (default 1)
  -url string
        Service base URL to verify, e.g. http://localhost:9080 (default: skip)
  -workers int
        Concurrent verification requests (default 4)
  -timeout duration
        HTTP request timeout (default 10s)
  -verbose
        Log every passing probe
  -help
        Show this help message

Examples:
  # Write jjoo.csv and noc_coordinates.csv into ./data
  go run ./cmd/sample-data -out data -rows 20000

  # Verify a service started with PODIUM_DATA_PATH=data/jjoo.csv
  go run ./cmd/sample-data -out data -rows 20000 -url http://localhost:9080
`)
}

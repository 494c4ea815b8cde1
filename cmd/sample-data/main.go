package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/okian/podium/internal/sampledata"
	"github.com/okian/podium/pkg/logger"
)

// Default configuration constants.
const (
	defaultRows       = 5000
	defaultSeed       = 1
	defaultWorkers    = 4
	defaultTimeout    = 10 * time.Second
	defaultRunTimeout = 5 * time.Minute
)

func main() {
	var (
		outDir  = flag.String("out", ".", "Directory for the generated CSV files")
		rows    = flag.Int("rows", defaultRows, "Number of participation rows to generate")
		seed    = flag.Uint64("seed", defaultSeed, "Generator seed")
		baseURL = flag.String("url", "", "Base URL of a service started on the generated files (skips verification when empty)")
		workers = flag.Int("workers", defaultWorkers, "Number of concurrent verification requests")
		timeout = flag.Duration("timeout", defaultTimeout, "HTTP request timeout")
		verbose = flag.Bool("verbose", false, "Enable verbose logging")
		help    = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		sampledata.ShowHelp()
		return
	}

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	if *verbose {
		_ = logger.SetLevelString("debug")
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultRunTimeout)
	defer cancel()

	cfg := &sampledata.Config{
		OutDir:  *outDir,
		Rows:    *rows,
		Seed:    *seed,
		BaseURL: *baseURL,
		Workers: *workers,
		Timeout: *timeout,
		Verbose: *verbose,
	}
	if err := sampledata.Run(ctx, cfg); err != nil {
		os.Stderr.WriteString("sample-data failed: " + err.Error() + "\n")
		os.Exit(1)
	}
}

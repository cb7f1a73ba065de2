package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/joseph-ayodele/policy-intake/internal/common"
	"github.com/joseph-ayodele/policy-intake/internal/export"
	"github.com/joseph-ayodele/policy-intake/internal/ingest"
	"github.com/joseph-ayodele/policy-intake/internal/pipeline"
	"github.com/joseph-ayodele/policy-intake/internal/services/intake"
)

// printError prints an error message to stderr, falling back to stdout if stderr fails
func printError(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		fmt.Printf(format, args...)
	}
}

func main() {
	var (
		dir      = flag.String("dir", "", "directory to process policies from (required)")
		out      = flag.String("out", "", "output XLSX file path (optional, defaults to parent directory)")
		exts     = flag.String("ext", "", "comma separated extensions (default pdf,jpg,jpeg,png)")
		workers  = flag.Int("workers", 0, "parallel workflows (default BATCH_WORKERS)")
		fallback = flag.Bool("fallback", false, "skip the issuer modules and use the LLM fallback")
		watch    = flag.Bool("watch", false, "keep running and process new files as they arrive")
	)
	flag.Parse()

	if *dir == "" {
		printError("Error: --dir is required\n")
		os.Exit(1)
	}
	if *out == "" {
		*out = filepath.Join(filepath.Dir(filepath.Clean(*dir)), "policies.xlsx")
	}
	var include []string
	if *exts != "" {
		include = strings.Split(*exts, ",")
	}

	cfg, err := common.LoadConfig()
	if err != nil {
		printError("Error: %v\n", err)
		os.Exit(2)
	}
	if *workers > 0 {
		cfg.Batch.Workers = *workers
	}
	logger := common.NewLogger(cfg.Log, os.Stdout)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	svc, err := intake.New(ctx, cfg, logger, intake.Options{})
	if err != nil {
		printError("Error: %v\n", err)
		os.Exit(1)
	}
	defer svc.Close()

	runner := ingest.NewRunner(svc.Processor, logger, ingest.WithWorkers(cfg.Batch.Workers))
	opts := pipeline.Options{ForceFallback: *fallback}
	exporter := export.NewService(logger)

	if *watch {
		events, _, err := ingest.Watch(ctx, ingest.WatchConfig{
			Roots:       []string{*dir},
			IncludeExts: include,
			InitialScan: true,
			Debounce:    2 * time.Second,
		}, logger)
		if err != nil {
			printError("Error: watch: %v\n", err)
			os.Exit(1)
		}
		var all []ingest.FileResult
		for path := range events {
			results, _, _ := runner.Run(ctx, []string{path}, opts)
			all = append(all, results...)
			if err := writeReport(exporter, all, *out); err != nil {
				logger.Error("batch.report.failed", "out", *out, "error", err)
			}
		}
		return
	}

	paths, scan, err := ingest.Collect(*dir, include, true)
	if err != nil {
		printError("Error: %v\n", err)
		os.Exit(1)
	}
	results, stats, err := runner.Run(ctx, paths, opts)
	if err != nil {
		logger.Warn("batch.interrupted", "error", err)
	}
	if err := writeReport(exporter, results, *out); err != nil {
		printError("Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("scanned=%d matched=%d succeeded=%d failed=%d structured=%d fallback=%d report=%s\n",
		scan.Scanned, scan.Matched, stats.Succeeded, stats.Failed, stats.Structured, stats.Fallback, *out)
	if stats.Failed > 0 {
		os.Exit(3)
	}
}

func writeReport(exporter *export.Service, results []ingest.FileResult, out string) error {
	data, err := exporter.PoliciesXLSX(results)
	if err != nil {
		return err
	}
	return os.WriteFile(out, data, 0o644)
}

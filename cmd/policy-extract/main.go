package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"github.com/joseph-ayodele/policy-intake/internal/common"
	"github.com/joseph-ayodele/policy-intake/internal/pipeline"
	"github.com/joseph-ayodele/policy-intake/internal/services/intake"
	"github.com/joseph-ayodele/policy-intake/internal/workflow"
)

// printError prints an error message to stderr, falling back to stdout if stderr fails
func printError(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		fmt.Printf(format, args...)
	}
}

func main() {
	var (
		fallback = flag.Bool("fallback", false, "skip the issuer modules and use the LLM fallback")
		pretty   = flag.Bool("pretty", true, "indent the JSON output")
	)
	flag.Usage = func() {
		printError("usage: policy-extract [-fallback] <file.pdf|file.png|file.jpg>\n")
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}
	path := flag.Arg(0)

	cfg, err := common.LoadConfig()
	if err != nil {
		printError("Error: %v\n", err)
		os.Exit(2)
	}
	// stdout carries the JSON result
	logger := common.NewLogger(cfg.Log, os.Stderr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	svc, err := intake.New(ctx, cfg, logger, intake.Options{})
	if err != nil {
		printError("Error: %v\n", err)
		os.Exit(1)
	}
	defer svc.Close()

	wf := workflow.New(svc.Processor, workflow.WithLogger(logger))
	if _, err := wf.SubmitFile(ctx, path, pipeline.Options{ForceFallback: *fallback}); err != nil {
		printError("Error: %v\n", err)
		os.Exit(1)
	}
	if err := wf.Err(); err != nil {
		printError("Error: %v\n", err)
		os.Exit(1)
	}

	enc := json.NewEncoder(os.Stdout)
	if *pretty {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(wf.Outcome()); err != nil {
		printError("Error: encode: %v\n", err)
		os.Exit(1)
	}
}

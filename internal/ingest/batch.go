package ingest

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/joseph-ayodele/policy-intake/constants"
	"github.com/joseph-ayodele/policy-intake/internal/pipeline"
	"github.com/joseph-ayodele/policy-intake/internal/workflow"
)

// Runner processes files with bounded parallelism. Every file gets its own
// workflow; results keep the input order.
type Runner struct {
	proc    workflow.Processor
	workers int
	timeout time.Duration
	logger  *slog.Logger
}

type RunnerOption func(*Runner)

func WithWorkers(n int) RunnerOption {
	return func(r *Runner) {
		if n > 0 {
			r.workers = n
		}
	}
}

// WithFileTimeout bounds each file's run.
func WithFileTimeout(d time.Duration) RunnerOption {
	return func(r *Runner) {
		if d > 0 {
			r.timeout = d
		}
	}
}

func NewRunner(proc workflow.Processor, logger *slog.Logger, opts ...RunnerOption) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	r := &Runner{proc: proc, workers: 4, timeout: 3 * time.Minute, logger: logger}
	for _, o := range opts {
		o(r)
	}
	return r
}

// Run processes paths and returns one result per path. A failing file never
// stops the others; only ctx cancellation does.
func (r *Runner) Run(ctx context.Context, paths []string, opts pipeline.Options) ([]FileResult, DirStats, error) {
	results := make([]FileResult, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers)
	for i, path := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = r.runOne(gctx, path, opts)
			return nil
		})
	}
	err := g.Wait()

	stats := DirStats{Scanned: uint32(len(paths)), Matched: uint32(len(paths))}
	for i := range results {
		res := &results[i]
		if res.Path == "" {
			// never started because ctx was cancelled
			res.Path = paths[i]
			res.Err = "not started"
			if cause := context.Cause(ctx); cause != nil {
				res.Err = cause.Error()
			}
		}
		if res.Err != "" {
			stats.Failed++
			continue
		}
		stats.Succeeded++
		if res.Outcome.Method == constants.MethodStructured {
			stats.Structured++
		} else {
			stats.Fallback++
		}
	}
	r.logger.Info("ingest.batch.done", "files", len(paths), "succeeded", stats.Succeeded, "failed", stats.Failed,
		"structured", stats.Structured, "fallback", stats.Fallback)
	return results, stats, err
}

func (r *Runner) runOne(ctx context.Context, path string, opts pipeline.Options) FileResult {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	start := time.Now()
	wf := workflow.New(r.proc, workflow.WithLogger(r.logger))
	t, err := wf.SubmitFile(ctx, path, opts)
	res := FileResult{Path: path, RunID: t.RunID, State: wf.State(), Elapsed: time.Since(start)}
	switch {
	case err != nil:
		res.Err = err.Error()
	case wf.Err() != nil:
		res.Err = wf.Err().Error()
	default:
		res.Outcome = wf.Outcome()
	}
	if res.Err != "" {
		r.logger.Warn("ingest.file.failed", "path", path, "run_id", res.RunID, "error", res.Err)
	} else {
		r.logger.Info("ingest.file.ok", "path", path, "run_id", res.RunID, "method", res.Outcome.Method,
			"elapsed_ms", res.Elapsed.Milliseconds())
	}
	return res
}

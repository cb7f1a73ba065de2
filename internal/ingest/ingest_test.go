package ingest

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joseph-ayodele/policy-intake/constants"
	"github.com/joseph-ayodele/policy-intake/internal/entity"
	"github.com/joseph-ayodele/policy-intake/internal/pipeline"
)

func quietLogger() *slog.Logger { return slog.New(slog.NewTextHandler(io.Discard, nil)) }

func touch(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
}

func TestCollect(t *testing.T) {
	root := t.TempDir()
	touch(t, filepath.Join(root, "a.pdf"))
	touch(t, filepath.Join(root, "sub", "b.PNG"))
	touch(t, filepath.Join(root, "notes.txt"))
	touch(t, filepath.Join(root, ".hidden", "c.pdf"))
	touch(t, filepath.Join(root, ".d.pdf"))

	paths, stats, err := Collect(root, nil, true)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(root, "a.pdf"), filepath.Join(root, "sub", "b.PNG")}, paths)
	assert.Equal(t, uint32(3), stats.Scanned)
	assert.Equal(t, uint32(2), stats.Matched)

	paths, _, err = Collect(root, []string{".PDF"}, false)
	require.NoError(t, err)
	assert.Len(t, paths, 3)

	_, _, err = Collect("  ", nil, true)
	assert.Error(t, err)
	_, _, err = Collect(filepath.Join(root, "missing"), nil, true)
	assert.Error(t, err)
}

func TestHelpers(t *testing.T) {
	assert.True(t, AllowedExt(".JPG"))
	assert.False(t, AllowedExt("heic"))
	assert.True(t, IsHidden("/x/.y"))
	assert.False(t, IsHidden("/x/y"))
}

type pathProcessor struct{}

func (pathProcessor) Process(context.Context, entity.DocumentText, pipeline.Options) (entity.ExtractionOutcome, error) {
	return entity.ExtractionOutcome{}, errors.New("unused")
}

func (pathProcessor) ProcessFile(_ context.Context, path string, opts pipeline.Options) (entity.ExtractionOutcome, error) {
	switch {
	case strings.Contains(path, "bad"):
		return entity.ExtractionOutcome{}, errors.New("pdftotext failed")
	case opts.ForceFallback || strings.Contains(path, "scan"):
		return entity.ExtractionOutcome{Method: constants.MethodFallbackImage, Record: entity.PolicyRecord{PolicyNumber: path}}, nil
	default:
		return entity.ExtractionOutcome{Method: constants.MethodStructured, Record: entity.PolicyRecord{PolicyNumber: path}}, nil
	}
}

func TestRunnerKeepsOrderAndCounts(t *testing.T) {
	paths := []string{"/in/a.pdf", "/in/bad.pdf", "/in/scan.png", "/in/c.pdf", "/in/d.pdf"}
	r := NewRunner(pathProcessor{}, quietLogger(), WithWorkers(2), WithFileTimeout(time.Second))

	results, stats, err := r.Run(context.Background(), paths, pipeline.Options{})
	require.NoError(t, err)
	require.Len(t, results, len(paths))
	for i, res := range results {
		assert.Equal(t, paths[i], res.Path)
	}

	assert.Equal(t, "pdftotext failed", results[1].Err)
	assert.Equal(t, constants.StateError, results[1].State)
	assert.Nil(t, results[1].Outcome)

	require.NotNil(t, results[0].Outcome)
	assert.Equal(t, "/in/a.pdf", results[0].Outcome.Record.PolicyNumber)
	assert.Equal(t, constants.StateValidatingEntities, results[0].State)
	assert.NotEmpty(t, results[0].RunID)

	assert.Equal(t, DirStats{Scanned: 5, Matched: 5, Succeeded: 4, Failed: 1, Structured: 3, Fallback: 1}, stats)
}

func TestRunnerForceFallback(t *testing.T) {
	r := NewRunner(pathProcessor{}, quietLogger())
	_, stats, err := r.Run(context.Background(), []string{"/in/a.pdf"}, pipeline.Options{ForceFallback: true})
	require.NoError(t, err)
	assert.Equal(t, uint32(1), stats.Fallback)
}

func TestRunnerCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	r := NewRunner(pathProcessor{}, quietLogger(), WithWorkers(1))

	results, stats, err := r.Run(ctx, []string{"/in/a.pdf", "/in/b.pdf"}, pipeline.Options{})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, uint32(2), stats.Failed)
	for _, res := range results {
		assert.NotEmpty(t, res.Err)
	}
}

func TestWatch(t *testing.T) {
	root := t.TempDir()
	touch(t, filepath.Join(root, "existing.pdf"))
	touch(t, filepath.Join(root, "skip.txt"))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	events, _, err := Watch(ctx, WatchConfig{Roots: []string{root}, InitialScan: true, Debounce: 20 * time.Millisecond}, quietLogger())
	require.NoError(t, err)

	select {
	case p := <-events:
		assert.Equal(t, filepath.Join(root, "existing.pdf"), p)
	case <-time.After(2 * time.Second):
		t.Fatal("no initial event")
	}

	fresh := filepath.Join(root, "fresh.png")
	touch(t, fresh)
	touch(t, filepath.Join(root, "ignored.txt"))
	select {
	case p := <-events:
		assert.Equal(t, fresh, p)
	case <-time.After(2 * time.Second):
		t.Fatal("no event for new file")
	}

	cancel()
	for range events {
	}
}

func TestWatchNoRoots(t *testing.T) {
	_, _, err := Watch(context.Background(), WatchConfig{}, nil)
	assert.Error(t, err)
}

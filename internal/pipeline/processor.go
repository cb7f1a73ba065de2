// Package pipeline runs one document through text extraction, classification,
// dispatch, extraction, normalization and reconciliation, strictly in sequence.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/joseph-ayodele/policy-intake/internal/entity"
	"github.com/joseph-ayodele/policy-intake/internal/reconcile"
)

var (
	// ErrExtractFailed wraps every failure that ends a run.
	ErrExtractFailed = errors.New("extraction failed")
	// ErrFallbackUnavailable means no structured module applied and no LLM is configured.
	ErrFallbackUnavailable = errors.New("no structured extractor for issuer and no fallback configured")
	ErrUnsupportedFormat   = errors.New("unsupported format")
)

// Reconciler is the entity matching step.
type Reconciler interface {
	Reconcile(ctx context.Context, rec entity.PolicyRecord) (*entity.ClientRef, reconcile.AgentMatch)
}

type runIDKey struct{}

// WithRunID makes Process log under id instead of generating one.
func WithRunID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, runIDKey{}, id)
}

func runIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(runIDKey{}).(string)
	return id
}

// Options tune a single run.
type Options struct {
	// ForceFallback skips the registry and sends the document to the LLM.
	ForceFallback bool
}

// Processor coordinates text extraction, extraction and reconciliation.
type Processor struct {
	logger     *slog.Logger
	text       *TextStage
	extract    *ExtractStage
	reconciler Reconciler
}

func NewProcessor(logger *slog.Logger, text *TextStage, extract *ExtractStage, reconciler Reconciler) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Processor{logger: logger, text: text, extract: extract, reconciler: reconciler}
}

// ProcessFile reads path and runs Process on its text.
func (p *Processor) ProcessFile(ctx context.Context, path string, opts Options) (entity.ExtractionOutcome, error) {
	if p.text == nil {
		return entity.ExtractionOutcome{}, fmt.Errorf("%w: no text extractor configured", ErrExtractFailed)
	}
	doc, err := p.text.Run(ctx, path)
	if err != nil {
		p.logger.Error("pipeline.text.failed", "path", path, "error", err)
		return entity.ExtractionOutcome{}, fmt.Errorf("%w: %w", ErrExtractFailed, err)
	}
	return p.Process(ctx, doc, opts)
}

// Process runs classify → dispatch → extract → normalize → reconcile.
func (p *Processor) Process(ctx context.Context, doc entity.DocumentText, opts Options) (entity.ExtractionOutcome, error) {
	runID := runIDFrom(ctx)
	if runID == "" {
		runID = uuid.New().String()
	}
	logger := p.logger.With("run_id", runID)
	if doc.SourcePath != "" {
		logger = logger.With("file", filepath.Base(doc.SourcePath))
	}

	rec, cls, method, err := p.extract.Run(ctx, doc, opts.ForceFallback)
	if err != nil {
		logger.Error("pipeline.extract.failed", "error", err)
		return entity.ExtractionOutcome{}, fmt.Errorf("%w: %w", ErrExtractFailed, err)
	}

	out := entity.ExtractionOutcome{Record: rec, Classification: cls, Method: method}
	if p.reconciler != nil {
		client, agent := p.reconciler.Reconcile(ctx, rec)
		out.MatchedClient = client
		out.MatchedAgent = agent.Agent
		out.AgentCodeAlreadyRegistered = agent.CodeAlreadyRegistered
	}

	logger.Info("pipeline.process.ok",
		"method", method,
		"issuer", rec.Issuer,
		"product", rec.Product,
		"client_matched", out.MatchedClient != nil,
		"agent_matched", out.MatchedAgent != nil,
	)
	return out, nil
}

package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/joseph-ayodele/policy-intake/constants"
	"github.com/joseph-ayodele/policy-intake/internal/classify"
	"github.com/joseph-ayodele/policy-intake/internal/entity"
	"github.com/joseph-ayodele/policy-intake/internal/extract"
	"github.com/joseph-ayodele/policy-intake/internal/normalize"
)

// Resolver is the dispatch registry as seen by the pipeline.
type Resolver interface {
	Resolve(issuer constants.Issuer) (extract.StructuredExtractor, bool)
}

// FallbackExtractor is the issuer-agnostic LLM path.
type FallbackExtractor interface {
	Extract(ctx context.Context, doc entity.DocumentText, cls entity.ClassificationResult) (entity.PolicyRecord, constants.ExtractionMethod, error)
}

// TextStage turns a file into page texts.
type TextStage struct {
	TextExtractor extract.TextExtractor
	Logger        *slog.Logger
}

func NewTextStage(tx extract.TextExtractor, logger *slog.Logger) *TextStage {
	if logger == nil {
		logger = slog.Default()
	}
	return &TextStage{TextExtractor: tx, Logger: logger}
}

func (s *TextStage) Run(ctx context.Context, path string) (entity.DocumentText, error) {
	format := constants.MapExtToFormat(filepath.Ext(path))
	if format == "" {
		return entity.DocumentText{}, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
	doc, err := s.TextExtractor.Extract(ctx, path)
	if err != nil {
		return entity.DocumentText{}, fmt.Errorf("extract text: %w", err)
	}
	if doc.SourcePath == "" {
		doc.SourcePath = path
	}
	if doc.SourceType == "" {
		doc.SourceType = format
	}
	s.Logger.Debug("pipeline.text.ok", "path", path, "pages", len(doc.Pages), "chars", len(doc.FullText))
	return doc, nil
}

// ExtractStage classifies, dispatches and produces a normalized record.
type ExtractStage struct {
	Registry Resolver
	Fallback FallbackExtractor
	Logger   *slog.Logger
}

func NewExtractStage(registry Resolver, fallback FallbackExtractor, logger *slog.Logger) *ExtractStage {
	if logger == nil {
		logger = slog.Default()
	}
	return &ExtractStage{Registry: registry, Fallback: fallback, Logger: logger}
}

// Run returns the normalized record and the path that produced it. With force
// set the registry is skipped.
func (s *ExtractStage) Run(ctx context.Context, doc entity.DocumentText, force bool) (entity.PolicyRecord, entity.ClassificationResult, constants.ExtractionMethod, error) {
	start := time.Now()
	cls := classify.Classify(doc.Page1)
	s.Logger.Info("pipeline.classify.ok", "issuer", cls.Issuer, "product", cls.Product)

	if !force && s.Registry != nil {
		if ex, ok := s.Registry.Resolve(cls.Issuer); ok {
			rec := ex.Extract(doc)
			if rec.Issuer == "" {
				rec.Issuer = string(ex.Issuer())
			}
			rec = fillFromClassification(rec, cls)
			rec = normalize.Record(rec)
			s.Logger.Info("pipeline.extract.structured",
				"issuer", ex.Issuer(),
				"policy_number", rec.PolicyNumber,
				"elapsed_ms", time.Since(start).Milliseconds(),
			)
			return rec, cls, constants.MethodStructured, nil
		}
		s.Logger.Info("pipeline.dispatch.unresolved", "issuer", cls.Issuer)
	}

	if s.Fallback == nil {
		return entity.PolicyRecord{}, cls, "", ErrFallbackUnavailable
	}
	rec, method, err := s.Fallback.Extract(ctx, doc, cls)
	if err != nil {
		return entity.PolicyRecord{}, cls, "", fmt.Errorf("fallback: %w", err)
	}
	rec = normalize.Record(fillFromClassification(rec, cls))
	s.Logger.Info("pipeline.extract.fallback",
		"method", method,
		"policy_number", rec.PolicyNumber,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return rec, cls, method, nil
}

// fillFromClassification copies the classifier's issuer and product into a
// record that has none, skipping the unknown sentinels.
func fillFromClassification(rec entity.PolicyRecord, cls entity.ClassificationResult) entity.PolicyRecord {
	if rec.Issuer == "" && cls.Issuer != constants.IssuerUnknown {
		rec.Issuer = string(cls.Issuer)
	}
	if rec.Product == "" && cls.Product != constants.ProductUnknown {
		rec.Product = string(cls.Product)
	}
	return rec
}

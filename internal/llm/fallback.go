package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/joseph-ayodele/policy-intake/constants"
	"github.com/joseph-ayodele/policy-intake/internal/entity"
	"github.com/joseph-ayodele/policy-intake/internal/normalize"
)

// Mode is the request shape the fallback sends to the model.
type Mode string

const (
	ModeText  Mode = "text"
	ModeImage Mode = "image"
)

// FallbackConfig tunes mode selection and request size.
type FallbackConfig struct {
	MinTextChars    int
	MaxExcerptChars int
}

// Fallback is the issuer-agnostic extractor used when no structured module
// applies or the caller forces it.
type Fallback struct {
	completer Completer
	raster    Rasterizer
	cfg       FallbackConfig
	schema    map[string]any
	logger    *slog.Logger
}

func NewFallback(completer Completer, raster Rasterizer, cfg FallbackConfig, logger *slog.Logger) *Fallback {
	if cfg.MinTextChars <= 0 {
		cfg.MinTextChars = constants.MinTextChars
	}
	if cfg.MaxExcerptChars <= 0 {
		cfg.MaxExcerptChars = constants.MaxExcerptChars
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Fallback{
		completer: completer,
		raster:    raster,
		cfg:       cfg,
		schema:    PolicyJSONSchema(),
		logger:    logger,
	}
}

// SelectMode picks text mode when the trimmed text has at least minChars
// characters, image mode otherwise.
func SelectMode(text string, minChars int) Mode {
	if utf8.RuneCountInString(strings.TrimSpace(text)) >= minChars {
		return ModeText
	}
	return ModeImage
}

// Extract runs one fallback extraction and returns a normalized record.
func (f *Fallback) Extract(ctx context.Context, doc entity.DocumentText, cls entity.ClassificationResult) (entity.PolicyRecord, constants.ExtractionMethod, error) {
	rid := uuid.New().String()
	start := time.Now()
	mode := SelectMode(doc.FullText, f.cfg.MinTextChars)

	f.logger.Info("llm.fallback.start",
		"req_id", rid,
		"provider", f.completer.Name(),
		"mode", mode,
		"text_len", len(doc.FullText),
		"issuer_hint", cls.Issuer,
	)

	req := CompletionRequest{System: SystemPrompt, Schema: f.schema}
	method := constants.MethodFallbackText
	if mode == ModeText {
		req.User = BuildTextPrompt(doc.FullText, cls, f.cfg.MaxExcerptChars)
	} else {
		img, err := f.firstPageImage(ctx, doc)
		if err != nil {
			f.logger.Error("llm.fallback.image_error", "req_id", rid, "path", doc.SourcePath, "error", err)
			return entity.PolicyRecord{}, "", err
		}
		req.User = BuildImagePrompt(cls)
		req.Image = img
		method = constants.MethodFallbackImage
	}

	raw, err := f.completer.Complete(ctx, req)
	if err != nil {
		f.logger.Error("llm.fallback.completion_error",
			"req_id", rid, "error", err,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return entity.PolicyRecord{}, "", err
	}

	rec, err := DecodeResponse(raw, f.schema, f.logger)
	if err != nil {
		f.logger.Error("llm.fallback.decode_error",
			"req_id", rid, "error", err, "raw_len", len(raw),
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return entity.PolicyRecord{}, "", err
	}
	rec = normalize.Record(rec)

	f.logger.Info("llm.fallback.ok",
		"req_id", rid,
		"method", method,
		"policy_number", rec.PolicyNumber,
		"coverages", len(rec.Coverages),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return rec, method, nil
}

func (f *Fallback) firstPageImage(ctx context.Context, doc entity.DocumentText) (*Image, error) {
	if doc.SourcePath == "" {
		return nil, ErrNoImageSource
	}
	format := doc.SourceType
	if format == "" {
		format = constants.MapExtToFormat(filepath.Ext(doc.SourcePath))
	}
	switch format {
	case constants.IMAGE:
		return ReadImage(doc.SourcePath)
	case constants.PDF:
		if f.raster == nil {
			return nil, ErrNoImageSource
		}
		png, err := f.raster.RasterizeFirstPage(ctx, doc.SourcePath)
		if err != nil {
			return nil, fmt.Errorf("rasterize first page: %w", err)
		}
		return &Image{Data: png, MIMEType: "image/png"}, nil
	default:
		return nil, ErrNoImageSource
	}
}

// DecodeResponse turns raw model output into a record: one lenient repair,
// sanitize, schema validation (fail closed) and decode. The record is not
// normalized yet.
func DecodeResponse(raw string, schema map[string]any, logger *slog.Logger) (entity.PolicyRecord, error) {
	if logger == nil {
		logger = slog.Default()
	}
	doc, repaired, err := ParseLenient(raw)
	if err != nil {
		return entity.PolicyRecord{}, err
	}
	if repaired {
		logger.Warn("llm.decode.repaired")
	}

	clean, _, err := SanitizePolicyJSON(doc, logger)
	if err != nil {
		return entity.PolicyRecord{}, errors.Join(ErrUnparsableResponse, err)
	}
	if err := ValidateJSONAgainstSchema(schema, clean); err != nil {
		return entity.PolicyRecord{}, fmt.Errorf("%w: %v", ErrSchemaMismatch, err)
	}

	var rec entity.PolicyRecord
	if err := json.Unmarshal(clean, &rec); err != nil {
		return entity.PolicyRecord{}, fmt.Errorf("%w: %v", ErrSchemaMismatch, err)
	}
	return rec, nil
}

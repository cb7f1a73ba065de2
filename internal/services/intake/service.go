// Package intake assembles the extraction pipeline from configuration.
package intake

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/joseph-ayodele/policy-intake/internal/common"
	"github.com/joseph-ayodele/policy-intake/internal/extract"
	"github.com/joseph-ayodele/policy-intake/internal/llm"
	"github.com/joseph-ayodele/policy-intake/internal/llm/providers"
	"github.com/joseph-ayodele/policy-intake/internal/ocr"
	"github.com/joseph-ayodele/policy-intake/internal/pipeline"
	"github.com/joseph-ayodele/policy-intake/internal/reconcile"
	"github.com/joseph-ayodele/policy-intake/internal/registry"
	"github.com/joseph-ayodele/policy-intake/internal/repository"
)

// Service owns the collaborators behind one Processor.
type Service struct {
	Processor *pipeline.Processor
	Registry  *registry.Registry
	// DB is nil when no directory DSN is configured.
	DB     *repository.DB
	logger *slog.Logger
}

// Options replace collaborators, mainly for tests.
type Options struct {
	Completer llm.Completer
	Runner    ocr.Runner
}

// New builds the pipeline. A missing LLM key (llm.ErrMissingCredentials) and a
// configured directory that cannot be opened are both fatal, so no document is
// processed with a half-built pipeline.
func New(ctx context.Context, cfg *common.Config, logger *slog.Logger, opts Options) (*Service, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	ocrExtractor := ocr.NewExtractor(cfg.OCRConfig(), logger)
	if opts.Runner != nil {
		ocrExtractor = ocrExtractor.WithRunner(opts.Runner)
	}
	text := pipeline.NewTextStage(extract.NewOCRAdapter(ocrExtractor, logger), logger)

	completer := opts.Completer
	if completer == nil {
		c, err := providers.New(ctx, cfg.ProviderSettings(), logger)
		if err != nil {
			logger.Error("intake.llm_provider_failed", "provider", cfg.LLM.Provider, "error", err)
			return nil, fmt.Errorf("llm provider: %w", err)
		}
		completer = c
	}
	fallback := llm.NewFallback(completer, ocrExtractor, cfg.FallbackConfig(), logger)

	reg := registry.Default(logger)
	svc := &Service{Registry: reg, logger: logger}

	reconciler := reconcile.New(nil, nil, logger)
	if cfg.Directory.DSN != "" {
		db, err := repository.Open(ctx, cfg.RepositoryConfig(), logger)
		if err != nil {
			return nil, fmt.Errorf("open directory: %w", err)
		}
		if err := db.Migrate(ctx); err != nil {
			db.Close()
			return nil, fmt.Errorf("migrate directory: %w", err)
		}
		dir := repository.NewDirectory(db)
		reconciler = reconcile.New(dir, dir, logger)
		svc.DB = db
	} else {
		logger.Warn("intake.directory.disabled", "reason", "no DSN configured")
	}

	svc.Processor = pipeline.NewProcessor(logger, text, pipeline.NewExtractStage(reg, fallback, logger), reconciler)
	logger.Info("intake.ready",
		"issuers", reg.Issuers(),
		"fallback", completer != nil,
		"directory", svc.DB != nil,
	)
	return svc, nil
}

// Close releases the directory connection, if any.
func (s *Service) Close() {
	if s.DB != nil {
		s.DB.Close()
	}
}

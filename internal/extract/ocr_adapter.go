package extract

import (
	"context"
	"log/slog"

	"github.com/joseph-ayodele/policy-intake/internal/entity"
	"github.com/joseph-ayodele/policy-intake/internal/ocr"
)

// OCRAdapter exposes ocr.Extractor as a TextExtractor.
type OCRAdapter struct {
	extractor *ocr.Extractor
	logger    *slog.Logger
}

func NewOCRAdapter(e *ocr.Extractor, l *slog.Logger) *OCRAdapter {
	if l == nil {
		l = slog.Default()
	}
	return &OCRAdapter{
		extractor: e,
		logger:    l,
	}
}

func (a *OCRAdapter) Extract(ctx context.Context, path string) (entity.DocumentText, error) {
	r, err := a.extractor.Extract(ctx, path)
	if err != nil {
		return entity.DocumentText{}, err
	}
	if len(r.Warnings) > 0 {
		a.logger.Warn("extract.text.warnings", "path", path, "method", r.Method, "warnings", r.Warnings)
	}
	doc := entity.NewDocumentText(r.Pages)
	doc.SourcePath = path
	doc.SourceType = r.SourceType
	return doc, nil
}

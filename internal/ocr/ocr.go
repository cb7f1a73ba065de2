package ocr

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/pdfcpu/pdfcpu/pkg/api"

	"github.com/joseph-ayodele/policy-intake/constants"
)

type Config struct {
	Pdftotext string // binary name or absolute path; if empty -> "pdftotext"
	Pdftoppm  string // binary name or absolute path; if empty -> "pdftoppm"
	Tesseract string // binary name or absolute path; if empty -> "tesseract"

	TesseractLang string // default "spa+eng"
	DPI           int    // rasterization DPI, default 200
	MaxPages      int    // 0 = no limit

	TessdataDir string
	PSM         int // e.g. 6 for a uniform block of text
	OEM         int // 1 = LSTM; 0 leaves tesseract's default

	// OCRScannedPDFs runs tesseract over every page when pdftotext finds no text.
	// Off by default: short text sends the document to the image-mode fallback instead.
	OCRScannedPDFs bool
}

// Result is one document's text, split per page.
type Result struct {
	Pages      []string
	SourceType string // constants.PDF | constants.IMAGE
	Method     string // "pdf-text" | "pdf-ocr" | "image-ocr"
	Language   string
	Duration   time.Duration
	Warnings   []string
}

// Text joins the pages with newlines.
func (r Result) Text() string { return strings.Join(r.Pages, "\n") }

type Extractor struct {
	cfg       Config
	runner    Runner
	pageCount func(path string) (int, error)
	logger    *slog.Logger
}

func NewExtractor(cfg Config, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Pdftotext == "" {
		cfg.Pdftotext = "pdftotext"
	}
	if cfg.Pdftoppm == "" {
		cfg.Pdftoppm = "pdftoppm"
	}
	if cfg.Tesseract == "" {
		cfg.Tesseract = "tesseract"
	}
	if cfg.TesseractLang == "" {
		cfg.TesseractLang = "spa+eng"
	}
	if cfg.DPI <= 0 {
		cfg.DPI = 200
	}
	return &Extractor{
		cfg:       cfg,
		runner:    execRunner{logger: logger},
		pageCount: api.PageCountFile,
		logger:    logger,
	}
}

// WithRunner returns a copy of e that executes the external tools through r.
func (e *Extractor) WithRunner(r Runner) *Extractor {
	c := *e
	c.runner = r
	return &c
}

// Extract picks a strategy based on file extension.
func (e *Extractor) Extract(ctx context.Context, path string) (Result, error) {
	start := time.Now()
	ext := constants.NormalizeExt(filepath.Ext(path))
	e.logger.Debug("ocr.extract.start", "path", path, "ext", ext)

	var (
		res Result
		err error
	)
	switch constants.MapExtToFormat(ext) {
	case constants.PDF:
		res, err = e.extractPDF(ctx, path)
	case constants.IMAGE:
		res, err = e.extractImage(ctx, path)
	default:
		e.logger.Error("ocr.extract.unsupported", "path", path, "ext", ext)
		return Result{}, fmt.Errorf("unsupported extension: %q", ext)
	}
	res.Duration = time.Since(start)
	if err != nil {
		e.logger.Error("ocr.extract.failed", "path", path, "error", err, "warnings", res.Warnings)
		return res, err
	}
	e.logger.Info("ocr.extract.ok",
		"path", path,
		"method", res.Method,
		"pages", len(res.Pages),
		"elapsed_ms", res.Duration.Milliseconds(),
	)
	return res, nil
}

func (e *Extractor) extractPDF(ctx context.Context, path string) (Result, error) {
	pages, warns, err := e.pdfToText(ctx, path)
	if err != nil {
		return Result{SourceType: constants.PDF, Warnings: warns}, err
	}
	res := Result{Pages: pages, SourceType: constants.PDF, Method: "pdf-text", Warnings: warns}
	if !e.cfg.OCRScannedPDFs || strings.TrimSpace(res.Text()) != "" {
		return res, nil
	}

	e.logger.Info("ocr.pdf.no_text_layer", "path", path)
	ocrPages, ocrWarns, err := e.pdfToOCR(ctx, path)
	res.Warnings = append(res.Warnings, ocrWarns...)
	if err != nil {
		return res, err
	}
	res.Pages = ocrPages
	res.Method = "pdf-ocr"
	res.Language = e.cfg.TesseractLang
	return res, nil
}

func (e *Extractor) extractImage(ctx context.Context, path string) (Result, error) {
	txt, warns, err := e.tesseractOCR(ctx, path)
	if err != nil {
		return Result{SourceType: constants.IMAGE, Warnings: warns}, err
	}
	return Result{
		Pages:      []string{txt},
		SourceType: constants.IMAGE,
		Method:     "image-ocr",
		Language:   e.cfg.TesseractLang,
		Warnings:   warns,
	}, nil
}

package ocr

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

// pdfToText runs `pdftotext -layout` and splits the output on form feeds.
// Column spacing is preserved; the structured extractors depend on it.
func (e *Extractor) pdfToText(ctx context.Context, path string) ([]string, []string, error) {
	args := []string{"-layout", "-enc", "UTF-8", "-eol", "unix"}
	if e.cfg.MaxPages > 0 {
		args = append(args, "-l", strconv.Itoa(e.cfg.MaxPages))
	}
	args = append(args, path, "-")
	out, errb, err := e.runner.Run(ctx, e.cfg.Pdftotext, args...)
	if err != nil {
		return nil, []string{string(errb)}, fmt.Errorf("pdftotext: %w", err)
	}
	return SplitPages(string(out)), nil, nil
}

// SplitPages splits pdftotext output on form feeds and drops the empty tail
// pdftotext leaves after the last page.
func SplitPages(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	pages := strings.Split(text, "\f")
	for len(pages) > 1 && strings.TrimSpace(pages[len(pages)-1]) == "" {
		pages = pages[:len(pages)-1]
	}
	return pages
}

func (e *Extractor) pdfToOCR(ctx context.Context, path string) ([]string, []string, error) {
	tmpDir, err := os.MkdirTemp("", "pi-pp-*")
	if err != nil {
		return nil, nil, err
	}
	defer e.removeAll(tmpDir)

	prefix := filepath.Join(tmpDir, "page")
	args := []string{"-r", strconv.Itoa(e.cfg.DPI), "-png"}
	if e.cfg.MaxPages > 0 {
		args = append(args, "-l", strconv.Itoa(e.cfg.MaxPages))
	}
	args = append(args, path, prefix)
	// pdftoppm -r <dpi> -png <in.pdf> <tmp/page>
	if _, errb, err := e.runner.Run(ctx, e.cfg.Pdftoppm, args...); err != nil {
		return nil, []string{string(errb)}, fmt.Errorf("pdftoppm: %w", err)
	}

	// prefix-1.png, prefix-2.png, ... (zero padded when there are 10+ pages)
	matches, _ := filepath.Glob(prefix + "-*.png")
	sort.Strings(matches)
	if len(matches) == 0 {
		return nil, []string{"pdftoppm produced no images"}, fmt.Errorf("no pages rendered")
	}

	pages := make([]string, 0, len(matches))
	var warns []string
	for _, img := range matches {
		txt, w, err := e.tesseractOCR(ctx, img)
		warns = append(warns, w...)
		if err != nil {
			warns = append(warns, err.Error())
			pages = append(pages, "")
			continue
		}
		pages = append(pages, txt)
	}
	return pages, warns, nil
}

// RasterizeFirstPage renders page 1 of a PDF to PNG bytes for vision requests.
func (e *Extractor) RasterizeFirstPage(ctx context.Context, path string) ([]byte, error) {
	n, err := e.pageCount(path)
	if err != nil {
		return nil, fmt.Errorf("count pages: %w", err)
	}
	if n < 1 {
		return nil, fmt.Errorf("pdf %q has no pages", path)
	}

	tmpDir, err := os.MkdirTemp("", "pi-raster-*")
	if err != nil {
		return nil, err
	}
	defer e.removeAll(tmpDir)

	prefix := filepath.Join(tmpDir, "first")
	// pdftoppm -r <dpi> -f 1 -l 1 -png -singlefile <in.pdf> <tmp/first>
	_, errb, err := e.runner.Run(ctx, e.cfg.Pdftoppm,
		"-r", strconv.Itoa(e.cfg.DPI), "-f", "1", "-l", "1", "-png", "-singlefile", path, prefix)
	if err != nil {
		return nil, fmt.Errorf("pdftoppm: %w: %s", err, truncate(string(errb), 512))
	}
	png, err := os.ReadFile(prefix + ".png")
	if err != nil {
		return nil, fmt.Errorf("read rendered page: %w", err)
	}
	e.logger.Debug("ocr.rasterize.ok", "path", path, "pages", n, "bytes", len(png))
	return png, nil
}

func (e *Extractor) removeAll(dir string) {
	if err := os.RemoveAll(dir); err != nil {
		e.logger.Warn("ocr.tmpdir.remove_failed", "dir", dir, "error", err)
	}
}

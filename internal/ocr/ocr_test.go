package ocr

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joseph-ayodele/policy-intake/constants"
)

type call struct {
	name string
	args []string
}

// stubRunner answers by binary name and records every call. A hook can write
// files the real binary would have produced.
type stubRunner struct {
	out   map[string]string
	err   map[string]error
	hook  func(name string, args []string)
	calls []call
}

func (s *stubRunner) Run(_ context.Context, name string, args ...string) ([]byte, []byte, error) {
	s.calls = append(s.calls, call{name: name, args: args})
	if s.hook != nil {
		s.hook(name, args)
	}
	if err := s.err[name]; err != nil {
		return nil, []byte("boom"), err
	}
	return []byte(s.out[name]), nil, nil
}

func newTestExtractor(cfg Config, r Runner) *Extractor {
	return NewExtractor(cfg, slog.New(slog.NewTextHandler(io.Discard, nil))).WithRunner(r)
}

func TestExtractPDFSplitsPages(t *testing.T) {
	r := &stubRunner{out: map[string]string{
		"pdftotext": "POLIZA   12345\r\nPAGE ONE\fPAGE   TWO\n\f",
	}}
	e := newTestExtractor(Config{}, r)

	res, err := e.Extract(context.Background(), "/docs/policy.PDF")
	require.NoError(t, err)
	assert.Equal(t, constants.PDF, res.SourceType)
	assert.Equal(t, "pdf-text", res.Method)
	assert.Equal(t, []string{"POLIZA   12345\nPAGE ONE", "PAGE   TWO\n"}, res.Pages)

	require.Len(t, r.calls, 1)
	assert.Equal(t, []string{"-layout", "-enc", "UTF-8", "-eol", "unix", "/docs/policy.PDF", "-"}, r.calls[0].args)
}

func TestExtractPDFWithoutTextLayer(t *testing.T) {
	r := &stubRunner{out: map[string]string{"pdftotext": "\f\f"}}
	e := newTestExtractor(Config{}, r)

	res, err := e.Extract(context.Background(), "scan.pdf")
	require.NoError(t, err)
	assert.Equal(t, "pdf-text", res.Method)
	assert.Empty(t, strings.TrimSpace(res.Text()))
	assert.Len(t, r.calls, 1)
}

func TestExtractScannedPDFWithOCR(t *testing.T) {
	r := &stubRunner{out: map[string]string{"pdftotext": "", "tesseract": "POLIZA\t0012\r\n-----\n"}}
	r.hook = func(name string, args []string) {
		if name == "pdftoppm" {
			prefix := args[len(args)-1]
			require.NoError(t, os.WriteFile(prefix+"-1.png", []byte("p1"), 0o600))
			require.NoError(t, os.WriteFile(prefix+"-2.png", []byte("p2"), 0o600))
		}
	}
	e := newTestExtractor(Config{OCRScannedPDFs: true}, r)

	res, err := e.Extract(context.Background(), "scan.pdf")
	require.NoError(t, err)
	assert.Equal(t, "pdf-ocr", res.Method)
	assert.Equal(t, []string{"POLIZA  0012", "POLIZA  0012"}, res.Pages)
}

func TestExtractImage(t *testing.T) {
	r := &stubRunner{out: map[string]string{"tesseract": "QUALITAS\n\n\n\nPOLIZA 99  \n"}}
	e := newTestExtractor(Config{TesseractLang: "spa", PSM: 6}, r)

	res, err := e.Extract(context.Background(), "photo.jpg")
	require.NoError(t, err)
	assert.Equal(t, constants.IMAGE, res.SourceType)
	assert.Equal(t, []string{"QUALITAS\n\nPOLIZA 99"}, res.Pages)
	assert.Equal(t, []string{"photo.jpg", "stdout", "-l", "spa", "--psm", "6"}, r.calls[0].args)
}

func TestExtractErrors(t *testing.T) {
	e := newTestExtractor(Config{}, &stubRunner{})
	_, err := e.Extract(context.Background(), "notes.docx")
	assert.Error(t, err)

	e = newTestExtractor(Config{}, &stubRunner{err: map[string]error{"pdftotext": errors.New("exit 1")}})
	res, err := e.Extract(context.Background(), "broken.pdf")
	assert.Error(t, err)
	assert.Equal(t, []string{"boom"}, res.Warnings)
}

func TestRasterizeFirstPage(t *testing.T) {
	r := &stubRunner{}
	r.hook = func(name string, args []string) {
		prefix := args[len(args)-1]
		require.NoError(t, os.WriteFile(prefix+".png", []byte("png-data"), 0o600))
	}
	e := newTestExtractor(Config{DPI: 150}, r)
	e.pageCount = func(string) (int, error) { return 3, nil }

	png, err := e.RasterizeFirstPage(context.Background(), "policy.pdf")
	require.NoError(t, err)
	assert.Equal(t, []byte("png-data"), png)

	require.Len(t, r.calls, 1)
	args := r.calls[0].args
	assert.Equal(t, []string{"-r", "150", "-f", "1", "-l", "1", "-png", "-singlefile", "policy.pdf"}, args[:len(args)-1])
	assert.Equal(t, "first", filepath.Base(args[len(args)-1]))
}

func TestRasterizeFirstPageRejectsEmptyPDF(t *testing.T) {
	r := &stubRunner{}
	e := newTestExtractor(Config{}, r)

	e.pageCount = func(string) (int, error) { return 0, nil }
	_, err := e.RasterizeFirstPage(context.Background(), "empty.pdf")
	assert.Error(t, err)

	e.pageCount = func(string) (int, error) { return 0, errors.New("not a pdf") }
	_, err = e.RasterizeFirstPage(context.Background(), "fake.pdf")
	assert.Error(t, err)
	assert.Empty(t, r.calls)
}

func TestSplitPages(t *testing.T) {
	assert.Equal(t, []string{""}, SplitPages(""))
	assert.Equal(t, []string{"a", "b"}, SplitPages("a\fb\f\n"))
	assert.Equal(t, []string{"a", "", "c"}, SplitPages("a\f\fc"))
}

package pipeline

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joseph-ayodele/policy-intake/constants"
	"github.com/joseph-ayodele/policy-intake/internal/entity"
	"github.com/joseph-ayodele/policy-intake/internal/extract"
	"github.com/joseph-ayodele/policy-intake/internal/llm"
	"github.com/joseph-ayodele/policy-intake/internal/reconcile"
	"github.com/joseph-ayodele/policy-intake/internal/registry"
)

func quiet() *slog.Logger { return slog.New(slog.NewTextHandler(io.Discard, nil)) }

type stubStructured struct {
	issuer constants.Issuer
	rec    entity.PolicyRecord
	calls  int
}

func (s *stubStructured) Issuer() constants.Issuer { return s.issuer }
func (s *stubStructured) Extract(entity.DocumentText) entity.PolicyRecord {
	s.calls++
	return s.rec
}

type stubFallback struct {
	rec    entity.PolicyRecord
	method constants.ExtractionMethod
	err    error
	calls  int
	cls    entity.ClassificationResult
}

func (s *stubFallback) Extract(_ context.Context, _ entity.DocumentText, cls entity.ClassificationResult) (entity.PolicyRecord, constants.ExtractionMethod, error) {
	s.calls++
	s.cls = cls
	return s.rec, s.method, s.err
}

type stubReconciler struct {
	client *entity.ClientRef
	agent  reconcile.AgentMatch
	got    entity.PolicyRecord
}

func (s *stubReconciler) Reconcile(_ context.Context, rec entity.PolicyRecord) (*entity.ClientRef, reconcile.AgentMatch) {
	s.got = rec
	return s.client, s.agent
}

type stubText struct {
	doc entity.DocumentText
	err error
}

func (s stubText) Extract(context.Context, string) (entity.DocumentText, error) { return s.doc, s.err }

func registryWith(t *testing.T, ex extract.StructuredExtractor) *registry.Registry {
	t.Helper()
	r := registry.New(quiet())
	require.NoError(t, r.Register(ex.Issuer(), func() (extract.StructuredExtractor, error) { return ex, nil }))
	return r
}

const qualitasPage = "QUALITAS COMPANIA DE SEGUROS, S.A. DE C.V.\nPOLIZA DE SEGURO DE AUTOMOVILES\nNo. DE SERIE 3VW1K1AJ5EM123456\n"

func TestProcessStructuredPath(t *testing.T) {
	structured := &stubStructured{issuer: constants.IssuerQualitas, rec: entity.PolicyRecord{
		PolicyNumber: " 0012345 ",
		NetPremium:   "$1,234.50",
		TaxID:        "GAML850101AB1",
	}}
	fb := &stubFallback{}
	rc := &stubReconciler{client: &entity.ClientRef{ID: "c-1"}, agent: reconcile.AgentMatch{Agent: &entity.AgentRef{ID: "a-1"}, CodeAlreadyRegistered: true}}

	p := NewProcessor(quiet(), nil, NewExtractStage(registryWith(t, structured), fb, quiet()), rc)
	out, err := p.Process(context.Background(), entity.NewDocumentText([]string{qualitasPage}), Options{})
	require.NoError(t, err)

	assert.Equal(t, 1, structured.calls)
	assert.Zero(t, fb.calls)
	assert.Equal(t, constants.MethodStructured, out.Method)
	assert.Equal(t, constants.IssuerQualitas, out.Classification.Issuer)
	assert.Equal(t, "QUALITAS", out.Record.Issuer)
	assert.Equal(t, "auto", out.Record.Product)
	assert.Equal(t, "0012345", out.Record.PolicyNumber)
	assert.Equal(t, "1234.50", out.Record.NetPremium)
	assert.Equal(t, entity.PersonaPhysical, out.Record.PersonaType)
	assert.Equal(t, "c-1", out.MatchedClient.ID)
	assert.Equal(t, "a-1", out.MatchedAgent.ID)
	assert.True(t, out.AgentCodeAlreadyRegistered)
	assert.Equal(t, out.Record, rc.got)
}

func TestProcessUnresolvedDispatchUsesFallback(t *testing.T) {
	fb := &stubFallback{rec: entity.PolicyRecord{PolicyNumber: "M-1"}, method: constants.MethodFallbackText}
	p := NewProcessor(quiet(), nil, NewExtractStage(registry.Default(quiet()), fb, quiet()), nil)

	page := "MAPFRE MEXICO S.A.\nSEGURO DE VIDA INDIVIDUAL\n"
	out, err := p.Process(context.Background(), entity.NewDocumentText([]string{page}), Options{})
	require.NoError(t, err)

	assert.Equal(t, 1, fb.calls)
	assert.Equal(t, constants.IssuerMapfre, fb.cls.Issuer)
	assert.Equal(t, constants.MethodFallbackText, out.Method)
	assert.Equal(t, "M-1", out.Record.PolicyNumber)
	assert.Equal(t, "MAPFRE", out.Record.Issuer)
	assert.Equal(t, "life", out.Record.Product)
	assert.Nil(t, out.MatchedClient)
}

func TestProcessUnknownIssuerKeepsFieldsEmpty(t *testing.T) {
	fb := &stubFallback{rec: entity.PolicyRecord{}, method: constants.MethodFallbackImage}
	p := NewProcessor(quiet(), nil, NewExtractStage(registry.Default(quiet()), fb, quiet()), nil)

	out, err := p.Process(context.Background(), entity.DocumentText{}, Options{})
	require.NoError(t, err)
	assert.Equal(t, constants.IssuerUnknown, out.Classification.Issuer)
	assert.Empty(t, out.Record.Issuer)
	assert.Empty(t, out.Record.Product)
	assert.NotNil(t, out.Record.Coverages)
}

func TestProcessForceFallback(t *testing.T) {
	structured := &stubStructured{issuer: constants.IssuerQualitas}
	fb := &stubFallback{rec: entity.PolicyRecord{Issuer: "QUALITAS"}, method: constants.MethodFallbackText}
	p := NewProcessor(quiet(), nil, NewExtractStage(registryWith(t, structured), fb, quiet()), nil)

	out, err := p.Process(context.Background(), entity.NewDocumentText([]string{qualitasPage}), Options{ForceFallback: true})
	require.NoError(t, err)
	assert.Zero(t, structured.calls)
	assert.Equal(t, 1, fb.calls)
	assert.Equal(t, constants.MethodFallbackText, out.Method)
}

func TestProcessFailures(t *testing.T) {
	t.Run("fallback error", func(t *testing.T) {
		fb := &stubFallback{err: llm.ErrUnparsableResponse}
		p := NewProcessor(quiet(), nil, NewExtractStage(registry.New(quiet()), fb, quiet()), nil)
		_, err := p.Process(context.Background(), entity.NewDocumentText([]string{"x"}), Options{})
		assert.ErrorIs(t, err, ErrExtractFailed)
		assert.ErrorIs(t, err, llm.ErrUnparsableResponse)
	})

	t.Run("no fallback configured", func(t *testing.T) {
		p := NewProcessor(quiet(), nil, NewExtractStage(registry.New(quiet()), nil, quiet()), nil)
		_, err := p.Process(context.Background(), entity.NewDocumentText([]string{"x"}), Options{})
		assert.ErrorIs(t, err, ErrExtractFailed)
		assert.ErrorIs(t, err, ErrFallbackUnavailable)
	})
}

func TestProcessFile(t *testing.T) {
	structured := &stubStructured{issuer: constants.IssuerQualitas, rec: entity.PolicyRecord{PolicyNumber: "1"}}
	stage := NewExtractStage(registryWith(t, structured), nil, quiet())

	doc := entity.NewDocumentText([]string{qualitasPage})
	p := NewProcessor(quiet(), NewTextStage(stubText{doc: doc}, quiet()), stage, nil)
	out, err := p.ProcessFile(context.Background(), "/in/policy.pdf", Options{})
	require.NoError(t, err)
	assert.Equal(t, "1", out.Record.PolicyNumber)

	_, err = p.ProcessFile(context.Background(), "/in/policy.docx", Options{})
	assert.ErrorIs(t, err, ErrExtractFailed)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	p = NewProcessor(quiet(), NewTextStage(stubText{err: errors.New("pdftotext missing")}, quiet()), stage, nil)
	_, err = p.ProcessFile(context.Background(), "/in/policy.pdf", Options{})
	assert.ErrorIs(t, err, ErrExtractFailed)
}

func TestTextStageFillsSource(t *testing.T) {
	s := NewTextStage(stubText{doc: entity.NewDocumentText([]string{"a"})}, quiet())
	doc, err := s.Run(context.Background(), "/in/scan.JPG")
	require.NoError(t, err)
	assert.Equal(t, "/in/scan.JPG", doc.SourcePath)
	assert.Equal(t, constants.IMAGE, doc.SourceType)
}

func TestRunIDFromContext(t *testing.T) {
	assert.Empty(t, runIDFrom(context.Background()))
	assert.Equal(t, "run-1", runIDFrom(WithRunID(context.Background(), "run-1")))
}

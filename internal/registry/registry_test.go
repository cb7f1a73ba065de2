package registry

import (
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joseph-ayodele/policy-intake/constants"
	"github.com/joseph-ayodele/policy-intake/internal/extract"
	"github.com/joseph-ayodele/policy-intake/internal/extract/qualitas"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestDefaultRegistry(t *testing.T) {
	r := Default(discardLogger())
	assert.Equal(t, []constants.Issuer{
		constants.IssuerAXA, constants.IssuerChubb, constants.IssuerGNP, constants.IssuerHDI, constants.IssuerQualitas,
	}, r.Issuers())

	for _, issuer := range r.Issuers() {
		ex, ok := r.Resolve(issuer)
		require.True(t, ok, issuer)
		assert.Equal(t, issuer, ex.Issuer())
	}
}

func TestResolveUnknownIssuer(t *testing.T) {
	r := Default(discardLogger())
	ex, ok := r.Resolve(constants.IssuerMapfre)
	assert.False(t, ok)
	assert.Nil(t, ex)

	ex, ok = r.Resolve(constants.IssuerUnknown)
	assert.False(t, ok)
	assert.Nil(t, ex)
}

func TestResolveLoaderFailure(t *testing.T) {
	r := New(discardLogger())
	require.NoError(t, r.Register(constants.IssuerZurich, func() (extract.StructuredExtractor, error) {
		return nil, errors.New("broken module")
	}))

	ex, ok := r.Resolve(constants.IssuerZurich)
	assert.False(t, ok)
	assert.Nil(t, ex)
}

func TestRegisterDuplicate(t *testing.T) {
	r := New(discardLogger())
	load := func() (extract.StructuredExtractor, error) { return qualitas.New(), nil }
	require.NoError(t, r.Register(constants.IssuerQualitas, load))
	assert.Error(t, r.Register(constants.IssuerQualitas, load))
	assert.Error(t, r.Register(constants.IssuerGNP, nil))
}

func TestResolveLoadsOnce(t *testing.T) {
	r := New(discardLogger())
	var calls int
	var mu sync.Mutex
	require.NoError(t, r.Register(constants.IssuerQualitas, func() (extract.StructuredExtractor, error) {
		mu.Lock()
		calls++
		mu.Unlock()
		return qualitas.New(), nil
	}))

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, ok := r.Resolve(constants.IssuerQualitas)
			assert.True(t, ok)
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, calls)
}

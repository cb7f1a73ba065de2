package registry

import (
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/joseph-ayodele/policy-intake/constants"
	"github.com/joseph-ayodele/policy-intake/internal/extract"
	"github.com/joseph-ayodele/policy-intake/internal/extract/axa"
	"github.com/joseph-ayodele/policy-intake/internal/extract/chubb"
	"github.com/joseph-ayodele/policy-intake/internal/extract/gnp"
	"github.com/joseph-ayodele/policy-intake/internal/extract/hdi"
	"github.com/joseph-ayodele/policy-intake/internal/extract/qualitas"
)

// Loader builds an extractor on first use.
type Loader func() (extract.StructuredExtractor, error)

// Registry maps issuer keys to lazily loaded structured extractors. It is safe
// for concurrent use.
type Registry struct {
	mu      sync.Mutex
	loaders map[constants.Issuer]Loader
	loaded  map[constants.Issuer]extract.StructuredExtractor
	logger  *slog.Logger
}

// New creates an empty registry.
func New(logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.Default()
	}
	return &Registry{
		loaders: make(map[constants.Issuer]Loader),
		loaded:  make(map[constants.Issuer]extract.StructuredExtractor),
		logger:  logger,
	}
}

// Default returns a registry with every built-in issuer module registered.
func Default(logger *slog.Logger) *Registry {
	r := New(logger)
	builtin := map[constants.Issuer]Loader{
		constants.IssuerQualitas: func() (extract.StructuredExtractor, error) { return qualitas.New(), nil },
		constants.IssuerGNP:      func() (extract.StructuredExtractor, error) { return gnp.New(), nil },
		constants.IssuerAXA:      func() (extract.StructuredExtractor, error) { return axa.New(), nil },
		constants.IssuerHDI:      func() (extract.StructuredExtractor, error) { return hdi.New(), nil },
		constants.IssuerChubb:    func() (extract.StructuredExtractor, error) { return chubb.New(), nil },
	}
	for issuer, load := range builtin {
		// keys are distinct, Register cannot fail here
		_ = r.Register(issuer, load)
	}
	return r
}

// Register adds a loader for issuer.
func (r *Registry) Register(issuer constants.Issuer, load Loader) error {
	if load == nil {
		return fmt.Errorf("nil loader for issuer %s", issuer)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.loaders[issuer]; exists {
		return fmt.Errorf("issuer %s already registered", issuer)
	}
	r.loaders[issuer] = load
	return nil
}

// Resolve returns the extractor for issuer. An unknown key or a loader that
// fails yields (nil, false); the caller is expected to fall back.
func (r *Registry) Resolve(issuer constants.Issuer) (extract.StructuredExtractor, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if ex, ok := r.loaded[issuer]; ok {
		return ex, true
	}
	load, ok := r.loaders[issuer]
	if !ok {
		r.logger.Debug("registry.resolve.unregistered", "issuer", issuer)
		return nil, false
	}
	ex, err := load()
	if err != nil || ex == nil {
		r.logger.Warn("registry.resolve.load_failed", "issuer", issuer, "error", err)
		return nil, false
	}
	r.loaded[issuer] = ex
	r.logger.Debug("registry.resolve.loaded", "issuer", issuer)
	return ex, true
}

// Issuers lists the registered keys in sorted order.
func (r *Registry) Issuers() []constants.Issuer {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]constants.Issuer, 0, len(r.loaders))
	for k := range r.loaders {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

package llm

import "context"

// Image is a single rendered page or photo sent to a vision model.
type Image struct {
	Data     []byte
	MIMEType string
}

// CompletionRequest is the provider-neutral shape of one extraction call.
type CompletionRequest struct {
	System string
	User   string
	Schema map[string]any
	// Image switches the call to the provider's vision model. User text may be empty.
	Image *Image
}

// Completer is the interface the fallback extractor depends on. Implementations
// return the raw assistant text; parsing and validation happen in this package.
type Completer interface {
	Name() string
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}

// Rasterizer renders the first page of a PDF as PNG bytes.
type Rasterizer interface {
	RasterizeFirstPage(ctx context.Context, path string) ([]byte, error)
}

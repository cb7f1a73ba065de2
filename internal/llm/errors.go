package llm

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingCredentials is returned by provider constructors when no API key is configured.
	ErrMissingCredentials = errors.New("llm: missing credentials")
	// ErrUnparsableResponse means the reply was not JSON even after one repair attempt.
	ErrUnparsableResponse = errors.New("llm: unparsable response")
	// ErrSchemaMismatch means the reply parsed but does not satisfy the policy schema.
	ErrSchemaMismatch = errors.New("llm: response does not match schema")
	// ErrNoImageSource means image mode was selected but there is nothing to render.
	ErrNoImageSource = errors.New("llm: no image source for vision request")
)

// ProviderError carries a non-2xx reply from an LLM provider.
type ProviderError struct {
	Provider string
	Status   int
	Message  string
}

func (e *ProviderError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s: status %d", e.Provider, e.Status)
	}
	return fmt.Sprintf("%s: status %d: %s", e.Provider, e.Status, e.Message)
}

package extract

import (
	"context"

	"github.com/joseph-ayodele/policy-intake/constants"
	"github.com/joseph-ayodele/policy-intake/internal/entity"
)

// TextExtractor turns a file into per-page text.
type TextExtractor interface {
	Extract(ctx context.Context, path string) (entity.DocumentText, error)
}

// StructuredExtractor is implemented by every per-issuer parser. Extract never
// fails: fields it cannot find are left empty.
type StructuredExtractor interface {
	Issuer() constants.Issuer
	Extract(doc entity.DocumentText) entity.PolicyRecord
}

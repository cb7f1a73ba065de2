package classify

import (
	"strings"

	"github.com/joseph-ayodele/policy-intake/constants"
	"github.com/joseph-ayodele/policy-intake/internal/entity"
	"github.com/joseph-ayodele/policy-intake/internal/normalize"
)

// Excerpt returns the first ClassifierExcerptLines lines of page-1 text.
func Excerpt(page1 string) string {
	lines := strings.SplitN(page1, "\n", constants.ClassifierExcerptLines+1)
	if len(lines) > constants.ClassifierExcerptLines {
		lines = lines[:constants.ClassifierExcerptLines]
	}
	return strings.Join(lines, "\n")
}

// Classify guesses issuer and product from the head of page 1. Rules are
// evaluated in order and the first match wins. It never fails: a miss yields
// IssuerUnknown / ProductUnknown.
func Classify(page1 string) entity.ClassificationResult {
	excerpt := Excerpt(page1)
	folded := normalize.Fold(excerpt)

	issuer := constants.IssuerUnknown
	for _, r := range issuerRules {
		if r.pattern.MatchString(folded) {
			issuer = r.issuer
			break
		}
	}

	product := constants.ProductUnknown
	for _, r := range productRules {
		if r.onlyFor != "" && r.onlyFor != issuer {
			continue
		}
		if r.pattern.MatchString(folded) {
			product = r.product
			break
		}
	}

	return entity.ClassificationResult{
		Issuer:          issuer,
		Product:         product,
		AnalyzedExcerpt: excerpt,
	}
}

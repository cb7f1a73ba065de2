package llm

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"slices"
	"strconv"
	"strings"

	"github.com/joseph-ayodele/policy-intake/constants"
)

// SanitizePolicyJSON makes model output friendlier to the strict schema without
// inventing data:
// - drops unknown keys and nulls
// - coerces numbers to strings
// - lower-cases persona_type and payment_type, canonicalizes product
// - drops coverage items that are not objects or have no name
//
// It returns the rewritten document and the list of keys it dropped.
func SanitizePolicyJSON(raw []byte, logger *slog.Logger) ([]byte, []string, error) {
	if logger == nil {
		logger = slog.Default()
	}

	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, nil, fmt.Errorf("sanitize: decode: %w", err)
	}

	dropped := make([]string, 0, 4)
	for k, v := range m {
		if k == "coverages" {
			continue
		}
		if k != "persona_type" && k != "payment_type" && !slices.Contains(policyStringFields, k) {
			delete(m, k)
			dropped = append(dropped, k)
			continue
		}
		s, ok := coerceString(v)
		if !ok {
			delete(m, k)
			dropped = append(dropped, k)
			continue
		}
		m[k] = s
	}

	for _, k := range []string{"persona_type", "payment_type"} {
		if s, ok := m[k].(string); ok {
			m[k] = strings.ToLower(strings.TrimSpace(s))
		}
	}
	if s, ok := m["product"].(string); ok {
		if p, known := constants.CanonicalizeProduct(s); known {
			m["product"] = string(p)
		} else {
			delete(m, "product")
			dropped = append(dropped, "product")
		}
	}

	if v, ok := m["coverages"]; ok {
		items, isList := v.([]any)
		if !isList {
			delete(m, "coverages")
			dropped = append(dropped, "coverages")
		} else {
			m["coverages"] = sanitizeCoverages(items)
		}
	}

	out, err := json.Marshal(m)
	if err != nil {
		return nil, nil, fmt.Errorf("sanitize: encode: %w", err)
	}
	if len(dropped) > 0 {
		slices.Sort(dropped)
		logger.Debug("llm.sanitize.dropped", "keys", dropped)
	}
	return out, dropped, nil
}

func sanitizeCoverages(items []any) []any {
	out := make([]any, 0, len(items))
	for _, it := range items {
		obj, ok := it.(map[string]any)
		if !ok {
			continue
		}
		clean := make(map[string]any, len(coverageFields))
		for _, k := range coverageFields {
			if s, ok := coerceString(obj[k]); ok {
				clean[k] = s
			}
		}
		if name, _ := clean["name"].(string); strings.TrimSpace(name) == "" {
			continue
		}
		out = append(out, clean)
	}
	return out
}

func coerceString(v any) (string, bool) {
	switch t := v.(type) {
	case string:
		if strings.EqualFold(strings.TrimSpace(t), "null") {
			return "", false
		}
		return t, true
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), true
	case bool, nil:
		return "", false
	default:
		return "", false
	}
}

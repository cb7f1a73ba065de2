package llm

import (
	"encoding/json"
	"strings"
)

// ParseLenient returns raw as JSON bytes. When raw is not valid JSON it gets
// exactly one repair pass; if that still fails the result is ErrUnparsableResponse.
func ParseLenient(raw string) ([]byte, bool, error) {
	if isJSONObject(raw) {
		return []byte(raw), false, nil
	}
	fixed := RepairJSON(raw)
	if isJSONObject(fixed) {
		return []byte(fixed), true, nil
	}
	return nil, true, ErrUnparsableResponse
}

// RepairJSON strips the usual wrapping around a JSON object: BOM, markdown
// fences, stray backticks and prose outside the outermost braces.
func RepairJSON(raw string) string {
	s := strings.TrimPrefix(raw, "\ufeff")
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```")
		if nl := strings.IndexByte(s, '\n'); nl >= 0 && !strings.ContainsAny(s[:nl], "{}") {
			s = s[nl+1:]
		}
		s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	}
	s = strings.Trim(s, "` \t\r\n")

	start := strings.IndexByte(s, '{')
	end := strings.LastIndexByte(s, '}')
	if start < 0 || end <= start {
		return s
	}
	return s[start : end+1]
}

func isJSONObject(s string) bool {
	var m map[string]any
	return json.Unmarshal([]byte(s), &m) == nil
}

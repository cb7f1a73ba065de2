package utils

import (
	"encoding/json"
	"fmt"

	"google.golang.org/protobuf/types/known/structpb"

	"github.com/joseph-ayodele/policy-intake/internal/entity"
)

// ToStruct converts any JSON-encodable value into a protobuf Struct using its json tags.
func ToStruct(v any) (*structpb.Struct, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode: %w", err)
	}
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return structpb.NewStruct(m)
}

// FromStruct decodes s into v (a pointer) through the same json tags.
func FromStruct(s *structpb.Struct, v any) error {
	raw, err := json.Marshal(s.AsMap())
	if err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return json.Unmarshal(raw, v)
}

func ToPBOutcome(out entity.ExtractionOutcome) (*structpb.Struct, error) {
	return ToStruct(out)
}

func ToPBClassification(cls entity.ClassificationResult) (*structpb.Struct, error) {
	return ToStruct(cls)
}

// Package validation checks inbound recommendation requests against a JSON
// schema before they are decoded.
package validation

import (
	"fmt"
	"sort"
	"strings"

	"github.com/powerplant/plant-advisor/internal/domain"
	"github.com/xeipuuv/gojsonschema"
)

const recommendationSchema = `{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"type": "object",
	"required": ["location", "preferences"],
	"properties": {
		"requestId": {"type": "string", "maxLength": 128},
		"sessionId": {"type": "string", "maxLength": 128},
		"location":  {"type": "string", "minLength": 1, "maxLength": 200, "pattern": "\\S"},
		"limit":     {"type": "integer", "minimum": 1, "maximum": 50},
		"preferences": {
			"type": "object",
			"required": ["sunExposure", "experienceLevel", "primaryGoal"],
			"properties": {
				"plantTypes":       {"type": ["array", "null"], "items": {"type": "string"}, "maxItems": 20},
				"sunExposure":      {"enum": ["full-sun", "partial-sun", "partial-shade", "full-shade"]},
				"experienceLevel":  {"enum": ["beginner", "intermediate", "advanced"]},
				"primaryGoal":      {"enum": ["food", "beauty", "wildlife", "relaxation"]},
				"specialInterests": {"type": ["array", "null"], "items": {"type": "string"}, "maxItems": 20}
			}
		}
	}
}`

// Validator holds the compiled request schema. It is safe for concurrent use.
type Validator struct {
	schema *gojsonschema.Schema
}

// New compiles the recommendation request schema.
func New() (*Validator, error) {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(recommendationSchema))
	if err != nil {
		return nil, fmt.Errorf("compile request schema: %w", err)
	}
	return &Validator{schema: schema}, nil
}

// ValidateJSON checks a raw request body. Failures wrap domain.ErrMalformedInput
// and list every violated field.
func (v *Validator) ValidateJSON(data []byte) error {
	return v.validate(gojsonschema.NewBytesLoader(data))
}

// ValidateRequest checks an already-decoded request.
func (v *Validator) ValidateRequest(req domain.RecommendationRequest) error {
	return v.validate(gojsonschema.NewGoLoader(req))
}

func (v *Validator) validate(doc gojsonschema.JSONLoader) error {
	result, err := v.schema.Validate(doc)
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrMalformedInput, err)
	}
	if result.Valid() {
		return nil
	}

	errs := make([]string, len(result.Errors()))
	for i, desc := range result.Errors() {
		errs[i] = desc.String()
	}
	sort.Strings(errs)
	return fmt.Errorf("%w: %s", domain.ErrMalformedInput, strings.Join(errs, "; "))
}

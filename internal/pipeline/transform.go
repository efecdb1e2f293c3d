package pipeline

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/powerplant/plant-advisor/internal/domain"
)

// Recommender answers a decoded request.
type Recommender interface {
	Recommend(ctx context.Context, req domain.RecommendationRequest) (domain.RecommendationSet, error)
}

// JSONValidator checks a raw request body before decoding.
type JSONValidator interface {
	ValidateJSON(data []byte) error
}

// RecommendationTransformer implements Transformer by decoding the message
// body and handing it to the recommender.
type RecommendationTransformer struct {
	recommender Recommender
	validator   JSONValidator
}

// NewTransformer creates a RecommendationTransformer. Pass a nil validator to
// skip schema validation.
func NewTransformer(recommender Recommender, validator JSONValidator) *RecommendationTransformer {
	return &RecommendationTransformer{
		recommender: recommender,
		validator:   validator,
	}
}

func (t *RecommendationTransformer) Transform(ctx context.Context, raw domain.RawMessage) (domain.RecommendationSet, error) {
	if t.validator != nil {
		if err := t.validator.ValidateJSON(raw.Value); err != nil {
			return domain.RecommendationSet{}, err
		}
	}

	var req domain.RecommendationRequest
	if err := json.Unmarshal(raw.Value, &req); err != nil {
		return domain.RecommendationSet{}, fmt.Errorf("decode request: %w: %w", domain.ErrMalformedInput, err)
	}
	if req.RequestID == "" {
		req.RequestID = string(raw.Key)
	}

	return t.recommender.Recommend(ctx, req)
}

package pipeline

import (
	"context"

	"github.com/couchcryptid/crop-advisor-service/internal/domain"
)

// Advisor issues a recommendation for validated conditions.
type Advisor interface {
	Advise(ctx context.Context, c domain.FarmConditions) (domain.Recommendation, error)
}

// RecommendationTransformer decodes a FarmConditions request and runs it
// through the advisor.
type RecommendationTransformer struct {
	advisor Advisor
}

// NewTransformer creates a RecommendationTransformer.
func NewTransformer(advisor Advisor) *RecommendationTransformer {
	return &RecommendationTransformer{advisor: advisor}
}

func (t *RecommendationTransformer) Transform(ctx context.Context, raw domain.RawMessage) (domain.Recommendation, error) {
	conditions, err := domain.ParseRawMessage(raw)
	if err != nil {
		return domain.Recommendation{}, err
	}
	return t.advisor.Advise(ctx, conditions)
}

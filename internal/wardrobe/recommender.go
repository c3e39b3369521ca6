// Package wardrobe turns current weather into clothing advice, either by
// asking an LLM or by applying a fixed rule table.
package wardrobe

import (
	"context"
	"errors"
	"log"

	"github.com/rahul/weatherwear/internal/observability"
	"github.com/tmc/langchaingo/llms"
)

// ErrGeneration marks a failed LLM call. Stylist recovers from it by
// falling back to the RuleBook.
var ErrGeneration = errors.New("generation failure")

// Conditions is the input every recommender works from.
type Conditions struct {
	City      string
	TempC     float64
	Condition string
}

// Recommender produces clothing advice for the given conditions.
type Recommender interface {
	Recommend(ctx context.Context, c Conditions) (string, error)
}

// New returns a Stylist when a model is configured and the RuleBook otherwise.
func New(model llms.Model, modelName string, prompts *PromptManager, logger *observability.Logger) Recommender {
	if model == nil {
		log.Println("Warning: no LLM provider configured, using rule-based suggestions")
		return NewRuleBook()
	}
	return NewStylist(model, modelName, prompts, logger)
}

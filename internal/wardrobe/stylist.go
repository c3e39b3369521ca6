package wardrobe

import (
	"context"
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"github.com/rahul/weatherwear/internal/observability"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/schema"
)

const (
	defaultTemperature = 0.7
	defaultLLMTimeout  = 30 * time.Second
)

// Stylist asks an LLM for advice and falls back to the RuleBook when the
// call fails or comes back empty.
type Stylist struct {
	Model       llms.Model
	ModelName   string
	Temperature float64
	Prompts     *PromptManager
	Fallback    Recommender
	Logger      *observability.Logger

	sanitizer *bluemonday.Policy
}

func NewStylist(model llms.Model, modelName string, prompts *PromptManager, logger *observability.Logger) *Stylist {
	if logger == nil {
		logger = observability.NopLogger()
	}
	return &Stylist{
		Model:       model,
		ModelName:   modelName,
		Temperature: defaultTemperature,
		Prompts:     prompts,
		Fallback:    NewRuleBook(),
		Logger:      logger,
		sanitizer:   bluemonday.StrictPolicy(),
	}
}

func (s *Stylist) Recommend(ctx context.Context, c Conditions) (string, error) {
	text, err := s.generate(ctx, c)
	if err == nil {
		return text, nil
	}

	s.Logger.LogFallback(c.City, err)
	return s.Fallback.Recommend(ctx, c)
}

func (s *Stylist) generate(ctx context.Context, c Conditions) (string, error) {
	systemPrompt := s.Prompts.GetSystemPrompt()
	userPrompt, err := s.Prompts.GetUserPrompt(c)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrGeneration, err)
	}

	messages := []llms.MessageContent{
		{
			Role:  schema.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{llms.TextPart(systemPrompt)},
		},
		{
			Role:  schema.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{llms.TextPart(userPrompt)},
		},
	}

	var cancel context.CancelFunc
	if _, ok := ctx.Deadline(); !ok {
		ctx, cancel = context.WithTimeout(ctx, defaultLLMTimeout)
		defer cancel()
	}

	resp, err := s.Model.GenerateContent(ctx, messages, llms.WithTemperature(s.Temperature))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrGeneration, err)
	}
	if resp == nil || len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: no completion choices", ErrGeneration)
	}

	raw := resp.Choices[0].Content
	s.Logger.LogLLM(c.City, s.ModelName, map[string]string{"system": systemPrompt, "user": userPrompt}, raw)

	text := s.clean(raw)
	if text == "" {
		return "", fmt.Errorf("%w: empty completion", ErrGeneration)
	}
	return text, nil
}

// clean strips any markup the model slipped into its reply.
func (s *Stylist) clean(raw string) string {
	sanitizer := s.sanitizer
	if sanitizer == nil {
		sanitizer = bluemonday.StrictPolicy()
	}
	return strings.TrimSpace(html.UnescapeString(sanitizer.Sanitize(raw)))
}

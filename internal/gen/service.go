// Package gen turns user preferences into a generated recipe through a
// text generation backend.
package gen

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Zhengdong-uga/meal4u-sub000/internal/llm"
	"github.com/Zhengdong-uga/meal4u-sub000/internal/logger"
	"github.com/Zhengdong-uga/meal4u-sub000/internal/metrics"
	"github.com/Zhengdong-uga/meal4u-sub000/internal/prefs"
	"github.com/Zhengdong-uga/meal4u-sub000/internal/prompt"
	"github.com/Zhengdong-uga/meal4u-sub000/internal/recipe"
)

// GenerationError is surfaced to the caller when a generation attempt
// fails; unlike persistence errors it is never swallowed, since the
// caller owns the retry affordance.
type GenerationError struct {
	Stage string
	Err   error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("recipe generation failed during %s: %v", e.Stage, e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }

// ImageLookup finds a stock photo URL for a recipe. An empty URL means no
// match.
type ImageLookup interface {
	FindImage(ctx context.Context, query string) (string, error)
}

// Service generates recipes from preferences.
type Service struct {
	textGen      llm.TextGenerator
	images       ImageLookup
	metricsStore *metrics.Store
}

// NewService creates a new Service. images and metricsStore may be nil;
// both are best-effort concerns.
func NewService(textGen llm.TextGenerator, images ImageLookup, metricsStore *metrics.Store) *Service {
	return &Service{
		textGen:      textGen,
		images:       images,
		metricsStore: metricsStore,
	}
}

// wireRecipe mirrors the response schema the backend is asked for.
type wireRecipe struct {
	Name               string   `json:"name"`
	Description        string   `json:"description"`
	Time               string   `json:"time"`
	Difficulty         string   `json:"difficulty"`
	Ingredients        []string `json:"ingredients"`
	StepsOfPreparation []string `json:"stepsOfPreparation"`
	Nutrition          struct {
		Calories      string `json:"calories"`
		Protein       string `json:"protein"`
		Fat           string `json:"fat"`
		Carbohydrates string `json:"carbohydrates"`
	} `json:"nutrition"`
}

// GenerateRecipe renders the preference prompt, calls the backend with
// the response schema, and parses the result. After a successful parse it
// attaches a stock photo best-effort; a recipe without an image is still
// a success.
func (s *Service) GenerateRecipe(ctx context.Context, p prefs.UserPreferences) (*recipe.GeneratedRecipe, error) {
	p.Normalize()

	fullPrompt := instructionFor(p) + "\n\n" + prompt.BuildPrompt(p)

	start := time.Now()
	resp, err := s.textGen.GenerateContent(ctx, fullPrompt, prompt.ResponseSchema())
	if err != nil {
		return nil, &GenerationError{Stage: "model call", Err: err}
	}
	s.recordMetric(ctx, resp.Usage, time.Since(start))

	var wire wireRecipe
	if err := json.Unmarshal([]byte(resp.Content), &wire); err != nil {
		return nil, &GenerationError{
			Stage: "response parsing",
			Err:   fmt.Errorf("%w. Response: %s", err, resp.Content),
		}
	}
	if strings.TrimSpace(wire.Name) == "" {
		return nil, &GenerationError{Stage: "response parsing", Err: errors.New("response has no recipe name")}
	}

	rec := &recipe.GeneratedRecipe{
		Name:         wire.Name,
		Description:  wire.Description,
		TimeToCook:   wire.Time,
		Difficulty:   wire.Difficulty,
		Ingredients:  wire.Ingredients,
		Instructions: wire.StepsOfPreparation,
		Nutrition: map[string]string{
			"calories":      wire.Nutrition.Calories,
			"protein":       wire.Nutrition.Protein,
			"fat":           wire.Nutrition.Fat,
			"carbohydrates": wire.Nutrition.Carbohydrates,
		},
		Category: string(p.MealType),
	}

	s.attachImage(ctx, rec)
	return rec, nil
}

// attachImage patches the image URL in place at most once. Lookup
// failures leave the recipe imageless.
func (s *Service) attachImage(ctx context.Context, rec *recipe.GeneratedRecipe) {
	if s.images == nil || rec.ImageURL != "" {
		return
	}

	url, err := s.images.FindImage(ctx, rec.Name+" "+rec.Category)
	if err != nil {
		logger.Debug("image lookup failed", "recipe", rec.Name, "error", err)
		return
	}
	rec.ImageURL = url
}

func (s *Service) recordMetric(ctx context.Context, usage llm.TokenUsage, latency time.Duration) {
	if s.metricsStore == nil {
		return
	}
	err := s.metricsStore.Record(ctx, metrics.GenerationMetric{
		Operation:        "generate-recipe",
		Model:            usage.Model,
		PromptTokens:     usage.PromptTokens,
		CompletionTokens: usage.CompletionTokens,
		LatencyMS:        latency.Milliseconds(),
	})
	if err != nil {
		logger.Warn("failed to record generation metric", "error", err)
	}
}

func instructionFor(p prefs.UserPreferences) string {
	var b strings.Builder
	b.WriteString("You are a professional chef who creates recipes tailored to my preferences. ")

	switch p.MealType {
	case prefs.MealTypeDrinks:
		b.WriteString("Create one drink recipe for me.")
	case prefs.MealTypeDessert:
		b.WriteString("Create one dessert recipe for me.")
	default:
		b.WriteString("Create one meal recipe for me.")
	}

	if p.DishType != "" {
		fmt.Fprintf(&b, " It should be %s cuisine.", p.DishType)
	}
	if p.PrepareTime != "" {
		fmt.Fprintf(&b, " Preparation should take about %s.", p.PrepareTime)
	}

	b.WriteString(" Respond with a single JSON object matching the requested schema. Do not include any other text in your response.")
	return b.String()
}

// Package ai drafts recipes with an OpenAI-compatible chat completion API.
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"plateful/config"
	"plateful/internal/domain/entity"
	domainerrors "plateful/internal/domain/errors"
	"plateful/internal/domain/service"

	"github.com/pkg/errors"
)

const (
	defaultModel   = "gpt-4o-mini"
	defaultTimeout = 30 * time.Second

	systemPrompt = `You draft cooking recipes. Respond with a single JSON object and nothing else, using exactly these keys:
{"title": string, "description": string, "servings": int, "prep_minutes": int, "cook_minutes": int,
 "ingredients": [{"name": string, "quantity": number, "unit": string, "note": string}],
 "steps": [string], "tags": [string]}`
)

// chat completion request/response wire structures, reduced to the fields
// this client uses.
type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model          string         `json:"model"`
	Messages       []chatMessage  `json:"messages"`
	Temperature    float64        `json:"temperature"`
	ResponseFormat map[string]any `json:"response_format,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// draftPayload is the JSON shape the model is instructed to produce.
type draftPayload struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Servings    int    `json:"servings"`
	PrepMinutes int    `json:"prep_minutes"`
	CookMinutes int    `json:"cook_minutes"`
	Ingredients []struct {
		Name     string  `json:"name"`
		Quantity float64 `json:"quantity"`
		Unit     string  `json:"unit"`
		Note     string  `json:"note"`
	} `json:"ingredients"`
	Steps []string `json:"steps"`
	Tags  []string `json:"tags"`
}

// openaiGenerator implements service.RecipeGenerator against any
// OpenAI-compatible endpoint.
type openaiGenerator struct {
	baseURL    string
	apiKey     string
	model      string
	httpClient *http.Client
	logger     *slog.Logger
}

// disabledGenerator rejects every request. Used when no AI backend is
// configured so the rest of the app still runs.
type disabledGenerator struct{}

func (disabledGenerator) Generate(_ context.Context, _ *service.GenerationRequest) (*entity.Recipe, error) {
	return nil, domainerrors.ErrRecipeGenerationFailed.WrapMessage("recipe generation is not configured")
}

// NewOpenAIGenerator is the constructor for openaiGenerator. Without a
// configured endpoint the feature is disabled rather than failing startup;
// a configured endpoint with no API key is a configuration error.
func NewOpenAIGenerator(cfg *config.Config, logger *slog.Logger) (service.RecipeGenerator, error) {
	if cfg.AI == nil || cfg.AI.BaseURL == "" {
		logger.Info("AI backend not configured, recipe generation disabled")

		return disabledGenerator{}, nil
	}
	if cfg.AI.APIKey == "" {
		return nil, errors.New("ai.apiKey must be configured")
	}

	model := cfg.AI.Model
	if model == "" {
		model = defaultModel
	}
	timeout := cfg.AI.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &openaiGenerator{
		baseURL:    strings.TrimRight(cfg.AI.BaseURL, "/"),
		apiKey:     cfg.AI.APIKey,
		model:      model,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}, nil
}

// Generate asks the model for a recipe draft.
func (g *openaiGenerator) Generate(ctx context.Context, req *service.GenerationRequest) (*entity.Recipe, error) {
	content, err := g.complete(ctx, buildUserPrompt(req))
	if err != nil {
		g.logger.Warn("recipe generation failed", slog.Any("error", err))

		return nil, domainerrors.ErrRecipeGenerationFailed.WrapMessage(err.Error())
	}

	draft, err := parseDraft(content)
	if err != nil {
		g.logger.Warn("recipe draft rejected", slog.Any("error", err))

		return nil, domainerrors.ErrRecipeGenerationFailed.WrapMessage("model returned an unusable draft")
	}

	return draft, nil
}

// buildUserPrompt folds the request into a single instruction message.
func buildUserPrompt(req *service.GenerationRequest) string {
	var b strings.Builder
	b.WriteString("Draft a recipe")
	if req.Prompt != "" {
		b.WriteString(": ")
		b.WriteString(req.Prompt)
	}
	b.WriteString(".")
	if len(req.Ingredients) > 0 {
		b.WriteString(" Prefer these ingredients: ")
		b.WriteString(strings.Join(req.Ingredients, ", "))
		b.WriteString(".")
	}
	if len(req.DietaryTags) > 0 {
		b.WriteString(" The recipe must be ")
		b.WriteString(strings.Join(req.DietaryTags, " and "))
		b.WriteString(".")
	}
	if req.Servings > 0 {
		b.WriteString(" It should serve ")
		b.WriteString(strconv.Itoa(req.Servings))
		b.WriteString(" people.")
	}

	return b.String()
}

// complete performs one chat completion round-trip and returns the
// assistant message content.
func (g *openaiGenerator) complete(ctx context.Context, userPrompt string) (string, error) {
	body, err := json.Marshal(chatRequest{
		Model: g.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userPrompt},
		},
		Temperature:    0.7,
		ResponseFormat: map[string]any{"type": "json_object"},
	})
	if err != nil {
		return "", errors.Wrap(err, "failed to encode completion request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", errors.Wrap(err, "failed to create completion request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+g.apiKey)

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return "", errors.Wrap(err, "completion request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", errors.Errorf("completion endpoint returned status %d", resp.StatusCode)
	}

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", errors.Wrap(err, "failed to decode completion response")
	}
	if len(parsed.Choices) == 0 {
		return "", errors.New("completion response has no choices")
	}

	return parsed.Choices[0].Message.Content, nil
}

// parseDraft validates the model output and maps it onto a recipe entity.
func parseDraft(content string) (*entity.Recipe, error) {
	var payload draftPayload
	if err := json.Unmarshal([]byte(content), &payload); err != nil {
		return nil, errors.Wrap(err, "draft is not valid JSON")
	}

	if payload.Title == "" {
		return nil, errors.New("draft has no title")
	}
	if len(payload.Ingredients) == 0 {
		return nil, errors.New("draft has no ingredients")
	}
	if len(payload.Steps) == 0 {
		return nil, errors.New("draft has no steps")
	}

	ingredients := make([]*entity.RecipeIngredient, 0, len(payload.Ingredients))
	for _, line := range payload.Ingredients {
		if line.Name == "" {
			continue
		}
		ingredients = append(ingredients, &entity.RecipeIngredient{
			Name:     line.Name,
			Quantity: line.Quantity,
			Unit:     line.Unit,
			Note:     line.Note,
		})
	}
	if len(ingredients) == 0 {
		return nil, errors.New("draft ingredients are all unnamed")
	}

	return &entity.Recipe{
		Title:       payload.Title,
		Description: payload.Description,
		Servings:    payload.Servings,
		PrepMinutes: payload.PrepMinutes,
		CookMinutes: payload.CookMinutes,
		Ingredients: ingredients,
		Steps:       payload.Steps,
		Tags:        payload.Tags,
	}, nil
}

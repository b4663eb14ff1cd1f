package ai

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"plateful/config"
	domainerrors "plateful/internal/domain/errors"
	"plateful/internal/domain/service"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// completionServer answers chat completion requests with the given assistant
// message content.
func completionServer(t *testing.T, content string) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req chatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Messages, 2)
		assert.Equal(t, "system", req.Messages[0].Role)
		assert.Equal(t, "user", req.Messages[1].Role)

		resp := chatResponse{}
		resp.Choices = append(resp.Choices, struct {
			Message chatMessage `json:"message"`
		}{Message: chatMessage{Role: "assistant", Content: content}})

		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(resp))
	}))
	t.Cleanup(srv.Close)

	return srv
}

func testGenerator(t *testing.T, srv *httptest.Server) service.RecipeGenerator {
	t.Helper()

	gen, err := NewOpenAIGenerator(&config.Config{
		AI: &config.AIConfig{
			BaseURL: srv.URL,
			APIKey:  "test-key",
			Model:   "test-model",
		},
	}, discardLogger())
	require.NoError(t, err)

	return gen
}

func TestOpenAIGenerator_Generate_Success(t *testing.T) {
	draft := `{
		"title": "Vegan Curry",
		"description": "A quick weeknight curry.",
		"servings": 4,
		"prep_minutes": 10,
		"cook_minutes": 25,
		"ingredients": [
			{"name": "chickpeas", "quantity": 400, "unit": "g", "note": "drained"},
			{"name": "coconut milk", "quantity": 1, "unit": "can", "note": ""}
		],
		"steps": ["Fry the paste.", "Add everything else and simmer."],
		"tags": ["vegan", "quick"]
	}`
	srv := completionServer(t, draft)
	gen := testGenerator(t, srv)

	recipe, err := gen.Generate(context.Background(), &service.GenerationRequest{
		Prompt:      "a quick curry",
		DietaryTags: []string{"vegan"},
		Servings:    4,
	})

	require.NoError(t, err)
	assert.Equal(t, "Vegan Curry", recipe.Title)
	assert.Equal(t, 4, recipe.Servings)
	require.Len(t, recipe.Ingredients, 2)
	assert.Equal(t, "chickpeas", recipe.Ingredients[0].Name)
	assert.Equal(t, "drained", recipe.Ingredients[0].Note)
	assert.Len(t, recipe.Steps, 2)
	assert.Equal(t, []string{"vegan", "quick"}, recipe.Tags)
}

func TestOpenAIGenerator_Generate_SkipsUnnamedIngredientLines(t *testing.T) {
	draft := `{
		"title": "Toast",
		"servings": 1,
		"ingredients": [
			{"name": "", "quantity": 1, "unit": ""},
			{"name": "bread", "quantity": 2, "unit": "slices"}
		],
		"steps": ["Toast the bread."]
	}`
	srv := completionServer(t, draft)
	gen := testGenerator(t, srv)

	recipe, err := gen.Generate(context.Background(), &service.GenerationRequest{Prompt: "toast"})

	require.NoError(t, err)
	require.Len(t, recipe.Ingredients, 1)
	assert.Equal(t, "bread", recipe.Ingredients[0].Name)
}

func TestOpenAIGenerator_Generate_InvalidDraftJSON(t *testing.T) {
	srv := completionServer(t, "Sure! Here is a recipe idea for you:")
	gen := testGenerator(t, srv)

	recipe, err := gen.Generate(context.Background(), &service.GenerationRequest{Prompt: "anything"})

	assert.Nil(t, recipe)
	assert.True(t, errors.Is(err, domainerrors.ErrRecipeGenerationFailed))
}

func TestOpenAIGenerator_Generate_DraftMissingRequiredFields(t *testing.T) {
	// Valid JSON, but no steps.
	draft := `{"title": "Mystery", "ingredients": [{"name": "salt", "quantity": 1, "unit": "pinch"}], "steps": []}`
	srv := completionServer(t, draft)
	gen := testGenerator(t, srv)

	recipe, err := gen.Generate(context.Background(), &service.GenerationRequest{Prompt: "anything"})

	assert.Nil(t, recipe)
	assert.True(t, errors.Is(err, domainerrors.ErrRecipeGenerationFailed))
}

func TestOpenAIGenerator_Generate_UpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	t.Cleanup(srv.Close)
	gen := testGenerator(t, srv)

	recipe, err := gen.Generate(context.Background(), &service.GenerationRequest{Prompt: "anything"})

	assert.Nil(t, recipe)
	assert.True(t, errors.Is(err, domainerrors.ErrRecipeGenerationFailed))
}

func TestNewOpenAIGenerator_Disabled(t *testing.T) {
	gen, err := NewOpenAIGenerator(&config.Config{}, discardLogger())
	require.NoError(t, err)

	recipe, genErr := gen.Generate(context.Background(), &service.GenerationRequest{Prompt: "anything"})

	assert.Nil(t, recipe)
	assert.True(t, errors.Is(genErr, domainerrors.ErrRecipeGenerationFailed))
}

func TestNewOpenAIGenerator_MissingAPIKey(t *testing.T) {
	gen, err := NewOpenAIGenerator(&config.Config{
		AI: &config.AIConfig{BaseURL: "https://api.example.com/v1"},
	}, discardLogger())

	assert.Nil(t, gen)
	assert.Error(t, err)
}

func TestBuildUserPrompt(t *testing.T) {
	prompt := buildUserPrompt(&service.GenerationRequest{
		Prompt:      "a cozy soup",
		Ingredients: []string{"lentils", "carrots"},
		DietaryTags: []string{"vegan", "gluten-free"},
		Servings:    2,
	})

	assert.Contains(t, prompt, "a cozy soup")
	assert.Contains(t, prompt, "lentils, carrots")
	assert.Contains(t, prompt, "vegan and gluten-free")
	assert.Contains(t, prompt, "serve 2 people")
}

package service

import (
	"context"

	"plateful/internal/domain/entity"
)

// GenerationRequest describes what the user wants the model to draft.
type GenerationRequest struct {
	Prompt      string   // free-form description, e.g. "a quick weeknight curry"
	Ingredients []string // pantry ingredients the draft should prefer
	DietaryTags []string // constraints, e.g. "vegan", "gluten-free"
	Servings    int      // 0 means let the model decide
}

// RecipeGenerator drafts recipes with an external text-generation model.
// Drafts are returned to the client for review; they are never persisted
// directly.
type RecipeGenerator interface {
	// Generate asks the model for a recipe draft. The returned recipe has no
	// ID or author; those are assigned when the user saves it.
	Generate(ctx context.Context, req *GenerationRequest) (*entity.Recipe, error)
}

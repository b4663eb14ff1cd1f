package usecase

import (
	"context"

	"plateful/internal/domain/entity"

	"github.com/google/uuid"
)

// IngredientLineInput is one ingredient line of a recipe being created or
// updated.
type IngredientLineInput struct {
	Name     string  `json:"name" validate:"required"`
	Quantity float64 `json:"quantity" validate:"gte=0"`
	Unit     string  `json:"unit"`
	Note     string  `json:"note"`
}

// SaveRecipeInput carries the full recipe payload for create and update.
type SaveRecipeInput struct {
	Title       string                 `json:"title" validate:"required,max=200"`
	Description string                 `json:"description"`
	Servings    int                    `json:"servings" validate:"gte=0"`
	PrepMinutes int                    `json:"prepMinutes" validate:"gte=0"`
	CookMinutes int                    `json:"cookMinutes" validate:"gte=0"`
	Ingredients []*IngredientLineInput `json:"ingredients" validate:"required,min=1,dive"`
	Steps       []string               `json:"steps" validate:"required,min=1"`
	Tags        []string               `json:"tags"`
	ImageURL    string                 `json:"imageUrl"`
}

// ListRecipesInput narrows and pages the recipe listing.
type ListRecipesInput struct {
	AuthorID uuid.UUID
	Tag      string
	Query    string
	Page     int
	PerPage  int
}

// ListRecipesOutput is one page of recipes plus paging metadata.
type ListRecipesOutput struct {
	Recipes []*entity.Recipe `json:"recipes"`
	Total   int64            `json:"total"`
	Page    int              `json:"page"`
	PerPage int              `json:"perPage"`
}

// GenerateRecipeInput describes the desired AI draft.
type GenerateRecipeInput struct {
	Prompt      string   `json:"prompt"`
	Ingredients []string `json:"ingredients"`
	DietaryTags []string `json:"dietaryTags"`
	Servings    int      `json:"servings" validate:"gte=0"`
}

// RecipeUsecase defines recipe management operations.
type RecipeUsecase interface {
	// List returns a page of recipes matching the filter.
	List(ctx context.Context, input *ListRecipesInput) (*ListRecipesOutput, error)

	// Get returns a single recipe by id.
	Get(ctx context.Context, id uuid.UUID) (*entity.Recipe, error)

	// Create persists a new recipe owned by userID.
	Create(ctx context.Context, userID uuid.UUID, input *SaveRecipeInput) (*entity.Recipe, error)

	// Update replaces a recipe's content. Only the author may update.
	Update(ctx context.Context, userID, recipeID uuid.UUID, input *SaveRecipeInput) (*entity.Recipe, error)

	// Delete removes a recipe. Only the author may delete.
	Delete(ctx context.Context, userID, recipeID uuid.UUID) error

	// Generate drafts a recipe with the AI backend. The draft is returned
	// for review, not persisted. The user's dietary tags are merged into
	// the request constraints.
	Generate(ctx context.Context, userID uuid.UUID, input *GenerateRecipeInput) (*entity.Recipe, error)

	// ShareQR renders a QR code PNG pointing at the recipe's public page.
	ShareQR(ctx context.Context, recipeID uuid.UUID) ([]byte, error)
}

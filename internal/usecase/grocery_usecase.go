package usecase

import (
	"context"

	"plateful/internal/domain/entity"

	"github.com/google/uuid"
)

// BuildShoppingListInput selects the recipes to aggregate. Servings maps a
// recipe id to the desired serving count; quantities of that recipe scale
// proportionally to its stored serving count.
type BuildShoppingListInput struct {
	RecipeIDs []uuid.UUID       `json:"recipeIds" validate:"required,min=1"`
	Servings  map[uuid.UUID]int `json:"servings,omitempty"`
}

// NearbyStoresInput locates the search circle for grocery stores.
type NearbyStoresInput struct {
	Latitude     float64 `json:"lat" validate:"required,gte=-90,lte=90"`
	Longitude    float64 `json:"lon" validate:"required,gte=-180,lte=180"`
	RadiusMeters float64 `json:"radiusMeters"`
	Limit        int     `json:"limit"`
}

// GroceryUsecase defines ingredient catalog and shopping operations.
type GroceryUsecase interface {
	// SearchIngredients matches the query against the ingredient catalog.
	SearchIngredients(ctx context.Context, query string, limit int) ([]*entity.Ingredient, error)

	// BuildShoppingList aggregates the ingredient lines of the selected
	// recipes, merging lines that share a name and unit.
	BuildShoppingList(ctx context.Context, input *BuildShoppingListInput) (*entity.ShoppingList, error)

	// NearbyStores returns grocery stores around a coordinate, closest first.
	NearbyStores(ctx context.Context, input *NearbyStoresInput) ([]*entity.GroceryStore, error)
}

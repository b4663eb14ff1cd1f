// Package repository defines the interfaces for the persistence layer.
package repository

import (
	"context"
	"errors"

	"plateful/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrRecipeNotFound is returned when a recipe is not found.
var ErrRecipeNotFound = errors.New("recipe not found")

// RecipeFilter narrows List results. Zero values mean "no constraint".
type RecipeFilter struct {
	AuthorID uuid.UUID // filter by author
	Tag      string    // exact tag match
	Query    string    // case-insensitive substring match on the title
	Page     int       // 1-based page number
	PerPage  int       // page size
}

// RecipeRepository defines the standard operations for recipe persistence.
type RecipeRepository interface {
	// FindByID retrieves a single recipe with its ingredient lines.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Recipe, error)

	// FindByIDs retrieves multiple recipes at once, used by shopping-list
	// aggregation. Missing ids are skipped, not an error.
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*entity.Recipe, error)

	// List returns a page of recipes matching the filter, newest first,
	// along with the total match count.
	List(ctx context.Context, filter RecipeFilter) ([]*entity.Recipe, int64, error)

	// Create persists a new recipe and its ingredient lines.
	Create(ctx context.Context, recipe *entity.Recipe) error

	// Update replaces a recipe's fields and ingredient lines.
	Update(ctx context.Context, recipe *entity.Recipe) error

	// Delete removes a recipe and its ingredient lines.
	Delete(ctx context.Context, id uuid.UUID) error
}

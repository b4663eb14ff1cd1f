// Package repository defines the interfaces for the persistence layer.
package repository

import (
	"context"

	"plateful/internal/domain/entity"
)

// IngredientRepository exposes the read-mostly ingredient lookup catalog.
type IngredientRepository interface {
	// Search matches the query against ingredient names and aliases,
	// returning at most limit entries ordered by name.
	Search(ctx context.Context, query string, limit int) ([]*entity.Ingredient, error)

	// Upsert inserts a catalog entry if none exists with the same name.
	Upsert(ctx context.Context, ingredient *entity.Ingredient) error
}

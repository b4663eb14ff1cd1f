// Package entity contains the core business objects of the project.
package entity

import "github.com/google/uuid"

// ShoppingItem is one aggregated line of a shopping list. Items from
// different recipes merge when they share the same (name, unit) pair.
type ShoppingItem struct {
	Name     string   `json:"name"`
	Quantity float64  `json:"quantity"`
	Unit     string   `json:"unit,omitempty"`
	Recipes  []string `json:"recipes"` // titles of the recipes that contributed this item
}

// ShoppingList is the aggregation result for a set of recipes. It is computed
// on demand and never persisted.
type ShoppingList struct {
	RecipeIDs []uuid.UUID     `json:"recipeIds"`
	Items     []*ShoppingItem `json:"items"`
}

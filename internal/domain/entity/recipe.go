// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// Recipe is a user-authored (or AI-drafted, then user-submitted) recipe.
type Recipe struct {
	ID          uuid.UUID           `json:"id"`
	AuthorID    uuid.UUID           `json:"authorId"`
	Title       string              `json:"title"`
	Description string              `json:"description,omitempty"`
	Servings    int                 `json:"servings"`
	PrepMinutes int                 `json:"prepMinutes"`
	CookMinutes int                 `json:"cookMinutes"`
	Ingredients []*RecipeIngredient `json:"ingredients"`
	Steps       []string            `json:"steps"`
	Tags        []string            `json:"tags,omitempty"`
	ImageURL    string              `json:"imageUrl,omitempty"`
	CreatedAt   time.Time           `json:"createdAt"`
	UpdatedAt   time.Time           `json:"updatedAt"`
}

// RecipeIngredient is one line of a recipe's ingredient list.
// Quantity is expressed in Unit; free-form notes ("finely chopped") go in Note.
type RecipeIngredient struct {
	ID       uuid.UUID `json:"id"`
	RecipeID uuid.UUID `json:"-"`
	Name     string    `json:"name"`
	Quantity float64   `json:"quantity"`
	Unit     string    `json:"unit,omitempty"`
	Note     string    `json:"note,omitempty"`
}

// OwnedBy reports whether the given user authored this recipe.
func (r *Recipe) OwnedBy(userID uuid.UUID) bool {
	return r.AuthorID == userID
}

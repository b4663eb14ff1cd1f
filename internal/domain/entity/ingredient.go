// Package entity contains the core business objects of the project.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// Ingredient is an entry of the ingredient lookup catalog, used for
// autocomplete and shopping-list normalization.
type Ingredient struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Category  string    `json:"category,omitempty"` // e.g. "produce", "dairy", "spices"
	Aliases   []string  `json:"aliases,omitempty"`  // alternative spellings, e.g. "scallion" for "green onion"
	CreatedAt time.Time `json:"createdAt"`
}

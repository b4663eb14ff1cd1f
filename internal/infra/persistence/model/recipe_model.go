package model

import (
	"time"

	"github.com/google/uuid"
)

// RecipeModel mirrors the 'recipes' table.
type RecipeModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	AuthorID    uuid.UUID `gorm:"type:uuid;not null;index"`
	Title       string    `gorm:"type:varchar(200);not null"`
	Description string    `gorm:"type:text"`
	Servings    int
	PrepMinutes int
	CookMinutes int
	Steps       []string `gorm:"type:jsonb;serializer:json"`
	Tags        []string `gorm:"type:jsonb;serializer:json"`
	ImageURL    string   `gorm:"type:varchar(500)"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Ingredients []*RecipeIngredientModel `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE"`
}

// TableName explicitly sets the table name for GORM.
func (RecipeModel) TableName() string {
	return "recipes"
}

// RecipeIngredientModel mirrors the 'recipe_ingredients' table. Position
// preserves the author's ingredient order across reads.
type RecipeIngredientModel struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	RecipeID uuid.UUID `gorm:"type:uuid;not null;index"`
	Position int       `gorm:"not null"`
	Name     string    `gorm:"type:varchar(150);not null"`
	Quantity float64
	Unit     string `gorm:"type:varchar(50)"`
	Note     string `gorm:"type:varchar(255)"`
}

// TableName explicitly sets the table name for GORM.
func (RecipeIngredientModel) TableName() string {
	return "recipe_ingredients"
}

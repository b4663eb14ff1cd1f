package model

import (
	"time"

	"github.com/google/uuid"
)

// IngredientModel mirrors the 'ingredients' lookup catalog table.
type IngredientModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	Name      string    `gorm:"type:varchar(150);unique;not null"`
	Category  string    `gorm:"type:varchar(100);index"`
	Aliases   []string  `gorm:"type:jsonb;serializer:json"`
	CreatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (IngredientModel) TableName() string {
	return "ingredients"
}

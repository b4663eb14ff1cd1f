// Package model holds the GORM persistence models mirroring the PostgreSQL
// schema. They are mapped to and from pure domain entities at the
// repository boundary.
package model

import (
	"time"

	"github.com/google/uuid"
)

// UserModel mirrors the 'users' table. PostgreSQL generates UUIDs via
// uuid_generate_v7(). GoogleID and PasswordHash are nullable: a row carries
// at least one of them, which the service layer guarantees at creation.
type UserModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	Email        string    `gorm:"type:varchar(255);unique;not null"`
	Name         string    `gorm:"type:varchar(100)"`
	PasswordHash *string   `gorm:"type:varchar(255)"`
	GoogleID     *string   `gorm:"type:varchar(255);uniqueIndex"`
	AvatarURL    string    `gorm:"type:varchar(500)"`
	DietaryTags  []string  `gorm:"type:jsonb;serializer:json"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName explicitly sets the table name for GORM.
func (UserModel) TableName() string {
	return "users"
}

// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// User is the core identity record. An account always carries at least one
// authentication method: a password hash, a linked Google subject id, or both.
type User struct {
	ID           uuid.UUID // The unique identifier for the user, assigned at creation.
	Email        string    // Login identifier; always stored lowercased.
	Name         string    // Display name.
	PasswordHash string    // bcrypt hash; empty for Google-only accounts.
	GoogleID     string    // Google's stable 'sub' claim; empty unless linked. Never reassigned.
	AvatarURL    string    // Profile picture URL (blob storage or external).
	DietaryTags  []string  // Dietary preferences used to steer recipe generation, e.g. "vegetarian".
	CreatedAt    time.Time // Timestamp of account creation.
	UpdatedAt    time.Time // Timestamp of the last modification.
}

// HasPassword reports whether the account can authenticate with a password.
func (u *User) HasPassword() bool {
	return u.PasswordHash != ""
}

// PublicUser is the subset of User returned by the API. It never carries
// credentials.
type PublicUser struct {
	ID          uuid.UUID `json:"id"`
	Email       string    `json:"email"`
	Name        string    `json:"name"`
	AvatarURL   string    `json:"avatarUrl,omitempty"`
	DietaryTags []string  `json:"dietaryTags,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Public strips credential fields for API responses.
func (u *User) Public() *PublicUser {
	return &PublicUser{
		ID:          u.ID,
		Email:       u.Email,
		Name:        u.Name,
		AvatarURL:   u.AvatarURL,
		DietaryTags: u.DietaryTags,
		CreatedAt:   u.CreatedAt,
	}
}

// NormalizeEmail canonicalizes an email for storage and lookup.
// Matching is case-insensitive across the whole system.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

package usecase

import (
	"context"
	"io"

	"plateful/internal/domain/entity"

	"github.com/google/uuid"
)

// UpdateProfileInput carries a partial profile update. Nil fields are left
// unchanged.
type UpdateProfileInput struct {
	Name        *string   `json:"name"`
	DietaryTags *[]string `json:"dietaryTags"`
}

// SetAvatarInput carries either an uploaded image or a remote URL to fetch.
// Exactly one of Upload and RemoteURL must be set.
type SetAvatarInput struct {
	ContentType string
	Upload      io.Reader
	RemoteURL   string
}

// ProfileUsecase defines profile management operations.
type ProfileUsecase interface {
	// UpdateProfile applies a partial update and returns the fresh profile.
	UpdateProfile(ctx context.Context, userID uuid.UUID, input *UpdateProfileInput) (*entity.PublicUser, error)

	// SetAvatar stores a new profile picture, from an upload or a remote
	// URL, and returns the updated profile.
	SetAvatar(ctx context.Context, userID uuid.UUID, input *SetAvatarInput) (*entity.PublicUser, error)
}

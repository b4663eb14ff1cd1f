// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"plateful/internal/domain/entity"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// RegisterInput defines the data required to register with email/password.
type RegisterInput struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginInput defines the data required to log in with email/password.
type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// GoogleSignInInput carries the Google-issued ID token from the client.
type GoogleSignInInput struct {
	IDToken string `json:"idToken" validate:"required"`
}

// --- Output DTOs ---

// AuthOutput returns the session token and the authenticated user.
// IsNewUser reports whether the operation created the account, which the
// client uses to branch into onboarding after a Google sign-in.
type AuthOutput struct {
	Token     string             `json:"token"`
	User      *entity.PublicUser `json:"user"`
	IsNewUser bool               `json:"isNewUser"`
}

// AuthUsecase defines the identity operations the delivery layer depends on.
type AuthUsecase interface {
	// Register creates a password account and returns a session token.
	Register(ctx context.Context, input *RegisterInput) (*AuthOutput, error)

	// Login verifies password credentials and returns a session token.
	// Unknown email and wrong password are indistinguishable to the caller.
	Login(ctx context.Context, input *LoginInput) (*AuthOutput, error)

	// GoogleSignIn verifies a Google ID token, then signs in the matching
	// account, links the Google identity to an account with the same email,
	// or creates a new account.
	GoogleSignIn(ctx context.Context, input *GoogleSignInInput) (*AuthOutput, error)

	// CurrentUser returns the profile of the authenticated user.
	CurrentUser(ctx context.Context, userID uuid.UUID) (*entity.PublicUser, error)
}

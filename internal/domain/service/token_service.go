package service

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims defines the custom claims embedded in session tokens. Tokens are
// stateless: claims are trusted as-is for the token lifetime, so a renamed
// account is not reflected until a new token is issued.
type Claims struct {
	UserID uuid.UUID
	Email  string
	jwt.RegisteredClaims
}

// TokenService issues and validates the signed bearer tokens that represent
// a session. There is no server-side revocation: logout is purely
// client-side and a token stays valid until its natural expiry.
type TokenService interface {
	// Issue creates a signed token embedding the user id and email.
	Issue(userID uuid.UUID, email string) (string, error)

	// Verify checks signature and expiry. Expired tokens fail with
	// domainerrors.ErrTokenExpired; signature or format failures with
	// domainerrors.ErrTokenInvalid.
	Verify(tokenString string) (*Claims, error)
}

package service

import "context"

// GoogleIdentity holds the verified claims extracted from a Google ID token.
type GoogleIdentity struct {
	SubjectID string // Google's stable 'sub' claim
	Email     string // verified email address
	Name      string // display name; falls back to the email when absent
	AvatarURL string // profile picture URL, may be empty
}

// IdentityVerifier validates an externally issued Google ID token against
// Google's verification endpoint. This is a trust boundary: audience,
// expiry and email-verified checks are all mandatory. Skipping any one
// reopens a token-forgery or replay hole.
type IdentityVerifier interface {
	// VerifyIDToken verifies the raw token and returns its identity claims.
	// Any failure (transport, audience mismatch, unverified email, expiry)
	// is reported as a single opaque error.
	VerifyIDToken(ctx context.Context, idToken string) (*GoogleIdentity, error)

	// Enabled reports whether an OAuth client id is configured. When false
	// the Google sign-in flow is rejected with a clear error.
	Enabled() bool
}

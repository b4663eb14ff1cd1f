package service

import (
	"context"
	"io"

	"github.com/google/uuid"
)

// AvatarStorage stores profile pictures in a blob bucket and resolves them
// to URLs the frontend can render.
type AvatarStorage interface {
	// Save writes the avatar bytes for the user and returns its public URL.
	// A previous avatar for the same user is overwritten.
	Save(ctx context.Context, userID uuid.UUID, contentType string, r io.Reader) (string, error)

	// FetchRemote downloads an avatar from a user-supplied URL. The fetch is
	// SSRF-guarded: private, loopback and link-local targets are refused.
	FetchRemote(ctx context.Context, rawURL string) (contentType string, body []byte, err error)
}

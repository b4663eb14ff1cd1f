package storage

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gocloud.dev/blob/memblob"
)

func testAvatarStorage(t *testing.T) *avatarStorage {
	t.Helper()

	bucket := memblob.OpenBucket(nil)
	t.Cleanup(func() { _ = bucket.Close() })

	return &avatarStorage{
		bucket:        bucket,
		publicBaseURL: "https://cdn.plateful.example",
		maxBytes:      defaultMaxAvatarBytes,
		logger:        slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func TestAvatarStorage_Save(t *testing.T) {
	s := testAvatarStorage(t)

	ctx := context.Background()
	userID := uuid.New()

	url, err := s.Save(ctx, userID, "image/png", strings.NewReader("png-bytes"))

	require.NoError(t, err)
	assert.Equal(t, "https://cdn.plateful.example/avatars/"+userID.String()+".png", url)

	stored, err := s.bucket.ReadAll(ctx, "avatars/"+userID.String()+".png")
	require.NoError(t, err)
	assert.Equal(t, []byte("png-bytes"), stored)
}

func TestAvatarStorage_Save_ReplacesPrevious(t *testing.T) {
	s := testAvatarStorage(t)

	ctx := context.Background()
	userID := uuid.New()

	_, err := s.Save(ctx, userID, "image/jpeg", strings.NewReader("old"))
	require.NoError(t, err)
	_, err = s.Save(ctx, userID, "image/jpeg", strings.NewReader("new"))
	require.NoError(t, err)

	stored, err := s.bucket.ReadAll(ctx, "avatars/"+userID.String()+".jpg")
	require.NoError(t, err)
	assert.Equal(t, []byte("new"), stored)
}

func TestAvatarStorage_Save_RejectsOversizedUpload(t *testing.T) {
	s := testAvatarStorage(t)
	s.maxBytes = 8

	ctx := context.Background()
	userID := uuid.New()

	url, err := s.Save(ctx, userID, "image/png", strings.NewReader("nine bytes"))

	assert.Empty(t, url)
	assert.Error(t, err)

	// Nothing is written for a rejected upload.
	exists, err := s.bucket.Exists(ctx, "avatars/"+userID.String()+".png")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestAvatarStorage_Save_AcceptsExactlyMaxBytes(t *testing.T) {
	s := testAvatarStorage(t)
	s.maxBytes = 9

	url, err := s.Save(context.Background(), uuid.New(), "image/png", strings.NewReader("nine byte"))

	require.NoError(t, err)
	assert.NotEmpty(t, url)
}

func TestAvatarStorage_Save_UnsupportedContentType(t *testing.T) {
	s := testAvatarStorage(t)

	url, err := s.Save(context.Background(), uuid.New(), "image/svg+xml", strings.NewReader("<svg/>"))

	assert.Empty(t, url)
	assert.Error(t, err)
}

func TestExtensionFor(t *testing.T) {
	assert.Equal(t, ".jpg", extensionFor("image/jpeg"))
	assert.Equal(t, ".png", extensionFor("image/png"))
	assert.Equal(t, ".webp", extensionFor("image/webp"))
	assert.Empty(t, extensionFor("image/gif"))
	assert.Empty(t, extensionFor("text/html"))
	assert.Empty(t, extensionFor(""))
}

// Package storage persists profile pictures in a blob bucket. The bucket is
// addressed by a gocloud.dev URL, so local disk, GCS and S3 all work with
// the same code path.
package storage

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"time"

	"plateful/config"
	"plateful/internal/domain/service"

	"github.com/doyensec/safeurl"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
	"gocloud.dev/blob"
	_ "gocloud.dev/blob/fileblob"
	_ "gocloud.dev/blob/gcsblob"
)

const (
	defaultMaxAvatarBytes = 5 << 20 // 5 MiB
	remoteFetchTimeout    = 15 * time.Second
)

// avatarStorage implements service.AvatarStorage on a gocloud blob bucket.
type avatarStorage struct {
	bucket        *blob.Bucket
	publicBaseURL string
	maxBytes      int64
	// fetchClient is SSRF-guarded: user-supplied avatar URLs must not be
	// able to reach private or metadata addresses.
	fetchClient *safeurl.WrappedClient
	logger      *slog.Logger
}

// Params holds dependencies for the avatar storage, injected by Fx.
type Params struct {
	fx.In
	fx.Lifecycle

	Ctx    context.Context
	Config *config.Config
	Logger *slog.Logger
}

// New opens the configured avatar bucket and wires its shutdown into the
// application lifecycle.
func New(params Params) (service.AvatarStorage, error) {
	cfg := params.Config.Avatar
	if cfg == nil || cfg.BucketURL == "" {
		return nil, errors.New("avatar.bucketUrl must be configured")
	}

	bucket, err := blob.OpenBucket(params.Ctx, cfg.BucketURL)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open avatar bucket %s", cfg.BucketURL)
	}

	maxBytes := cfg.MaxBytes
	if maxBytes <= 0 {
		maxBytes = defaultMaxAvatarBytes
	}

	params.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return bucket.Close()
		},
	})

	fetchConfig := safeurl.GetConfigBuilder().
		SetTimeout(remoteFetchTimeout).
		SetAllowedSchemes("http", "https").
		SetAllowedPorts(80, 443).
		Build()

	return &avatarStorage{
		bucket:        bucket,
		publicBaseURL: cfg.PublicBaseURL,
		maxBytes:      maxBytes,
		fetchClient:   safeurl.Client(fetchConfig),
		logger:        params.Logger,
	}, nil
}

// Save writes the avatar bytes for the user and returns its public URL. The
// object key is derived from the user id, so a new upload replaces the old
// one. An upload over the size cap is rejected, not truncated: a cut-off
// image would be silently corrupt.
func (s *avatarStorage) Save(ctx context.Context, userID uuid.UUID, contentType string, r io.Reader) (string, error) {
	ext := extensionFor(contentType)
	if ext == "" {
		return "", errors.Errorf("unsupported avatar content type: %s", contentType)
	}

	body, err := io.ReadAll(io.LimitReader(r, s.maxBytes+1))
	if err != nil {
		return "", errors.Wrap(err, "failed to read avatar")
	}
	if int64(len(body)) > s.maxBytes {
		return "", errors.Errorf("avatar exceeds %d bytes", s.maxBytes)
	}

	key := "avatars/" + userID.String() + ext

	err = s.bucket.WriteAll(ctx, key, body, &blob.WriterOptions{
		ContentType:  contentType,
		CacheControl: "public, max-age=86400",
	})
	if err != nil {
		return "", errors.Wrap(err, "failed to write avatar")
	}

	s.logger.Info("avatar stored",
		slog.String("user_id", userID.String()),
		slog.String("key", key))

	return s.publicBaseURL + "/" + key, nil
}

// FetchRemote downloads an avatar from a user-supplied URL through the
// SSRF-guarded client.
func (s *avatarStorage) FetchRemote(ctx context.Context, rawURL string) (string, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", nil, errors.Wrap(err, "invalid avatar URL")
	}

	resp, err := s.fetchClient.Do(req)
	if err != nil {
		return "", nil, errors.Wrap(err, "failed to fetch remote avatar")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", nil, errors.Errorf("remote avatar returned status %d", resp.StatusCode)
	}

	contentType := resp.Header.Get("Content-Type")
	if extensionFor(contentType) == "" {
		return "", nil, errors.Errorf("remote avatar has unsupported content type: %s", contentType)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, s.maxBytes+1))
	if err != nil {
		return "", nil, errors.Wrap(err, "failed to read remote avatar")
	}
	if int64(len(body)) > s.maxBytes {
		return "", nil, errors.Errorf("remote avatar exceeds %d bytes", s.maxBytes)
	}

	return contentType, body, nil
}

// extensionFor maps the accepted image content types to file extensions.
// An empty result means the type is rejected.
func extensionFor(contentType string) string {
	switch contentType {
	case "image/jpeg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/webp":
		return ".webp"
	default:
		return ""
	}
}

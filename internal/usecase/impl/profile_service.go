package impl

import (
	"bytes"
	"context"
	"log/slog"

	deliverycontext "plateful/internal/delivery/context"
	"plateful/internal/domain/entity"
	domainerrors "plateful/internal/domain/errors"
	"plateful/internal/domain/repository"
	"plateful/internal/domain/service"
	"plateful/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// profileService implements the ProfileUsecase interface.
type profileService struct {
	userRepo      repository.UserRepository
	avatarStorage service.AvatarStorage
	logger        *slog.Logger
}

// ProfileServiceParams holds dependencies for profileService, injected by Fx.
type ProfileServiceParams struct {
	fx.In

	UserRepo      repository.UserRepository
	AvatarStorage service.AvatarStorage
	Logger        *slog.Logger
}

// NewProfileService is the constructor for profileService.
func NewProfileService(params ProfileServiceParams) usecase.ProfileUsecase {
	return &profileService{
		userRepo:      params.UserRepo,
		avatarStorage: params.AvatarStorage,
		logger:        params.Logger,
	}
}

func (srv *profileService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// UpdateProfile applies a partial update and returns the fresh profile.
func (srv *profileService) UpdateProfile(ctx context.Context, userID uuid.UUID, input *usecase.UpdateProfileInput) (*entity.PublicUser, error) {
	user, err := srv.loadUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		if *input.Name == "" {
			return nil, domainerrors.ErrValidationFailed.WrapMessage("name cannot be empty")
		}
		user.Name = *input.Name
	}
	if input.DietaryTags != nil {
		user.DietaryTags = *input.DietaryTags
	}

	if err := srv.userRepo.Update(ctx, user); err != nil {
		return nil, errors.Wrap(err, "failed to update profile")
	}

	srv.log(ctx).Info("Profile updated", slog.Any("userID", userID))

	return user.Public(), nil
}

// SetAvatar stores a new profile picture and returns the updated profile.
func (srv *profileService) SetAvatar(ctx context.Context, userID uuid.UUID, input *usecase.SetAvatarInput) (*entity.PublicUser, error) {
	user, err := srv.loadUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	contentType := input.ContentType
	body := input.Upload

	if input.RemoteURL != "" {
		remoteType, remoteBody, fetchErr := srv.avatarStorage.FetchRemote(ctx, input.RemoteURL)
		if fetchErr != nil {
			srv.log(ctx).Warn("Remote avatar fetch failed",
				slog.Any("userID", userID),
				slog.Any("error", fetchErr))

			return nil, domainerrors.ErrValidationFailed.WrapMessage("avatar URL could not be fetched")
		}
		contentType = remoteType
		body = bytes.NewReader(remoteBody)
	}

	if body == nil {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("avatar image or URL is required")
	}

	avatarURL, err := srv.avatarStorage.Save(ctx, userID, contentType, body)
	if err != nil {
		return nil, errors.Wrap(err, "failed to store avatar")
	}

	user.AvatarURL = avatarURL
	if err := srv.userRepo.Update(ctx, user); err != nil {
		return nil, errors.Wrap(err, "failed to update avatar URL")
	}

	srv.log(ctx).Info("Avatar updated", slog.Any("userID", userID))

	return user.Public(), nil
}

func (srv *profileService) loadUser(ctx context.Context, userID uuid.UUID) (*entity.User, error) {
	user, err := srv.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrUnauthenticated.WrapMessage("account no longer exists")
		}

		return nil, errors.Wrap(err, "failed to load user")
	}

	return user, nil
}

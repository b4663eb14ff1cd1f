package impl

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"plateful/internal/domain/entity"
	domainerrors "plateful/internal/domain/errors"
	"plateful/internal/domain/repository"
	mockRepo "plateful/internal/mocks/repository"
	mockSvc "plateful/internal/mocks/service"
	"plateful/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type profileServiceFixtures struct {
	service       usecase.ProfileUsecase
	userRepo      *mockRepo.MockUserRepository
	avatarStorage *mockSvc.MockAvatarStorage
}

func createTestProfileService(t *testing.T) profileServiceFixtures {
	userRepo := mockRepo.NewMockUserRepository(t)
	avatarStorage := mockSvc.NewMockAvatarStorage(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	svc := NewProfileService(ProfileServiceParams{
		UserRepo:      userRepo,
		AvatarStorage: avatarStorage,
		Logger:        logger,
	})

	return profileServiceFixtures{
		service:       svc,
		userRepo:      userRepo,
		avatarStorage: avatarStorage,
	}
}

func TestProfileService_UpdateProfile_PartialUpdate(t *testing.T) {
	fx := createTestProfileService(t)

	ctx := context.Background()
	userID := uuid.New()
	user := &entity.User{
		ID:          userID,
		Email:       "test@example.com",
		Name:        "Old Name",
		DietaryTags: []string{"vegetarian"},
	}

	newName := "New Name"

	fx.userRepo.EXPECT().FindByID(ctx, userID).Return(user, nil)
	fx.userRepo.EXPECT().
		Update(ctx, mock.AnythingOfType("*entity.User")).
		Run(func(ctx context.Context, updated *entity.User) {
			assert.Equal(t, "New Name", updated.Name)
			// Untouched fields stay as they were.
			assert.Equal(t, []string{"vegetarian"}, updated.DietaryTags)
		}).
		Return(nil)

	profile, err := fx.service.UpdateProfile(ctx, userID, &usecase.UpdateProfileInput{Name: &newName})

	require.NoError(t, err)
	assert.Equal(t, "New Name", profile.Name)
}

func TestProfileService_UpdateProfile_EmptyNameRejected(t *testing.T) {
	fx := createTestProfileService(t)

	ctx := context.Background()
	userID := uuid.New()

	fx.userRepo.EXPECT().FindByID(ctx, userID).Return(&entity.User{ID: userID}, nil)

	empty := ""
	profile, err := fx.service.UpdateProfile(ctx, userID, &usecase.UpdateProfileInput{Name: &empty})

	assert.Nil(t, profile)
	assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))
}

func TestProfileService_UpdateProfile_ClearDietaryTags(t *testing.T) {
	fx := createTestProfileService(t)

	ctx := context.Background()
	userID := uuid.New()
	user := &entity.User{ID: userID, DietaryTags: []string{"vegan"}}

	fx.userRepo.EXPECT().FindByID(ctx, userID).Return(user, nil)
	fx.userRepo.EXPECT().
		Update(ctx, mock.AnythingOfType("*entity.User")).
		Run(func(ctx context.Context, updated *entity.User) {
			assert.Empty(t, updated.DietaryTags)
		}).
		Return(nil)

	// An explicit empty slice clears the tags; nil would leave them alone.
	tags := []string{}
	_, err := fx.service.UpdateProfile(ctx, userID, &usecase.UpdateProfileInput{DietaryTags: &tags})

	require.NoError(t, err)
}

func TestProfileService_SetAvatar_Upload(t *testing.T) {
	fx := createTestProfileService(t)

	ctx := context.Background()
	userID := uuid.New()
	user := &entity.User{ID: userID, Email: "test@example.com"}
	body := strings.NewReader("fake-png-bytes")

	fx.userRepo.EXPECT().FindByID(ctx, userID).Return(user, nil)
	fx.avatarStorage.EXPECT().
		Save(ctx, userID, "image/png", body).
		Return("https://plateful.example/avatars/"+userID.String()+".png", nil)
	fx.userRepo.EXPECT().
		Update(ctx, mock.AnythingOfType("*entity.User")).
		Return(nil)

	profile, err := fx.service.SetAvatar(ctx, userID, &usecase.SetAvatarInput{
		ContentType: "image/png",
		Upload:      body,
	})

	require.NoError(t, err)
	assert.Contains(t, profile.AvatarURL, userID.String())
}

func TestProfileService_SetAvatar_RemoteURL(t *testing.T) {
	fx := createTestProfileService(t)

	ctx := context.Background()
	userID := uuid.New()
	user := &entity.User{ID: userID}

	fx.userRepo.EXPECT().FindByID(ctx, userID).Return(user, nil)
	fx.avatarStorage.EXPECT().
		FetchRemote(ctx, "https://example.com/pic.jpg").
		Return("image/jpeg", []byte("jpeg-bytes"), nil)
	fx.avatarStorage.EXPECT().
		Save(ctx, userID, "image/jpeg", mock.Anything).
		Return("https://plateful.example/avatars/"+userID.String()+".jpg", nil)
	fx.userRepo.EXPECT().Update(ctx, mock.AnythingOfType("*entity.User")).Return(nil)

	_, err := fx.service.SetAvatar(ctx, userID, &usecase.SetAvatarInput{
		RemoteURL: "https://example.com/pic.jpg",
	})

	require.NoError(t, err)
}

func TestProfileService_SetAvatar_RemoteFetchFails(t *testing.T) {
	fx := createTestProfileService(t)

	ctx := context.Background()
	userID := uuid.New()

	fx.userRepo.EXPECT().FindByID(ctx, userID).Return(&entity.User{ID: userID}, nil)
	fx.avatarStorage.EXPECT().
		FetchRemote(ctx, "http://169.254.169.254/latest/meta-data").
		Return("", nil, errors.New("blocked by SSRF guard"))

	profile, err := fx.service.SetAvatar(ctx, userID, &usecase.SetAvatarInput{
		RemoteURL: "http://169.254.169.254/latest/meta-data",
	})

	assert.Nil(t, profile)
	assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))
}

func TestProfileService_SetAvatar_NoBody(t *testing.T) {
	fx := createTestProfileService(t)

	ctx := context.Background()
	userID := uuid.New()

	fx.userRepo.EXPECT().FindByID(ctx, userID).Return(&entity.User{ID: userID}, nil)

	profile, err := fx.service.SetAvatar(ctx, userID, &usecase.SetAvatarInput{})

	assert.Nil(t, profile)
	assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))
}

func TestProfileService_UpdateProfile_DeletedAccount(t *testing.T) {
	fx := createTestProfileService(t)

	ctx := context.Background()
	userID := uuid.New()

	fx.userRepo.EXPECT().FindByID(ctx, userID).Return(nil, repository.ErrUserNotFound)

	name := "whoever"
	profile, err := fx.service.UpdateProfile(ctx, userID, &usecase.UpdateProfileInput{Name: &name})

	assert.Nil(t, profile)
	assert.True(t, errors.Is(err, domainerrors.ErrUnauthenticated))
}

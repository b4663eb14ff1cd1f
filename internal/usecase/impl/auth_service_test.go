package impl

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"plateful/internal/domain/entity"
	domainerrors "plateful/internal/domain/errors"
	"plateful/internal/domain/repository"
	"plateful/internal/domain/service"
	"plateful/internal/infra/metrics"
	mockRepo "plateful/internal/mocks/repository"
	mockSvc "plateful/internal/mocks/service"
	"plateful/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// authServiceFixtures holds all test dependencies for auth service tests.
type authServiceFixtures struct {
	service          usecase.AuthUsecase
	txManager        *mockRepo.MockTransactionManager
	userRepo         *mockRepo.MockUserRepository
	hasher           *mockSvc.MockPasswordHasher
	tokenService     *mockSvc.MockTokenService
	identityVerifier *mockSvc.MockIdentityVerifier
	eventPublisher   *mockSvc.MockEventPublisher
}

func createTestAuthService(t *testing.T) authServiceFixtures {
	txManager := mockRepo.NewMockTransactionManager(t)
	userRepo := mockRepo.NewMockUserRepository(t)
	hasher := mockSvc.NewMockPasswordHasher(t)
	tokenService := mockSvc.NewMockTokenService(t)
	identityVerifier := mockSvc.NewMockIdentityVerifier(t)
	eventPublisher := mockSvc.NewMockEventPublisher(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	svc := NewAuthService(AuthServiceParams{
		TxManager:        txManager,
		UserRepo:         userRepo,
		Hasher:           hasher,
		TokenService:     tokenService,
		IdentityVerifier: identityVerifier,
		EventPublisher:   eventPublisher,
		Collector:        metrics.NewCollector(),
		Logger:           logger,
	})

	return authServiceFixtures{
		service:          svc,
		txManager:        txManager,
		userRepo:         userRepo,
		hasher:           hasher,
		tokenService:     tokenService,
		identityVerifier: identityVerifier,
		eventPublisher:   eventPublisher,
	}
}

// transactionPassthrough makes the transaction manager run the given function
// against a factory serving the supplied user repository.
func transactionPassthrough(t *testing.T, txManager *mockRepo.MockTransactionManager, userRepo *mockRepo.MockUserRepository) {
	t.Helper()

	factory := mockRepo.NewMockRepositoryFactory(t)
	factory.EXPECT().UserRepo().Return(userRepo).Maybe()

	txManager.EXPECT().
		Execute(mock.Anything, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		RunAndReturn(func(_ context.Context, fn func(repository.RepositoryFactory) error) error {
			return fn(factory)
		})
}

func TestAuthService_Register_Success(t *testing.T) {
	fx := createTestAuthService(t)

	ctx := context.Background()
	input := &usecase.RegisterInput{
		Name:     "Test User",
		Email:    "  Test@Example.COM ",
		Password: "Password123!",
	}

	txUserRepo := mockRepo.NewMockUserRepository(t)
	transactionPassthrough(t, fx.txManager, txUserRepo)

	userID := uuid.New()

	fx.hasher.EXPECT().Hash(input.Password).Return("hashed_password", nil)
	txUserRepo.EXPECT().
		FindByEmail(ctx, "test@example.com").
		Return(nil, repository.ErrUserNotFound)
	txUserRepo.EXPECT().
		Create(ctx, mock.AnythingOfType("*entity.User")).
		Run(func(ctx context.Context, user *entity.User) {
			assert.Equal(t, "Test User", user.Name)
			user.ID = userID
		}).
		Return(nil)
	fx.tokenService.EXPECT().Issue(userID, "test@example.com").Return("session-token", nil)
	fx.eventPublisher.EXPECT().
		PublishAuthEvent(ctx, mock.AnythingOfType("*service.AuthEvent")).
		Return(nil)

	output, err := fx.service.Register(ctx, input)

	require.NoError(t, err)
	require.NotNil(t, output)
	assert.Equal(t, "session-token", output.Token)
	assert.Equal(t, "test@example.com", output.User.Email)
	assert.Equal(t, userID, output.User.ID)
	assert.True(t, output.IsNewUser)
}

func TestAuthService_Register_EmptyNameRejected(t *testing.T) {
	fx := createTestAuthService(t)

	for _, name := range []string{"", "   "} {
		output, err := fx.service.Register(context.Background(), &usecase.RegisterInput{
			Name:     name,
			Email:    "test@example.com",
			Password: "Password123!",
		})

		assert.Nil(t, output)
		assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))
	}
}

func TestAuthService_Register_PasswordTooShort(t *testing.T) {
	fx := createTestAuthService(t)

	output, err := fx.service.Register(context.Background(), &usecase.RegisterInput{
		Name:     "Test User",
		Email:    "test@example.com",
		Password: "short",
	})

	assert.Nil(t, output)
	assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))
}

func TestAuthService_Register_MalformedEmail(t *testing.T) {
	fx := createTestAuthService(t)

	output, err := fx.service.Register(context.Background(), &usecase.RegisterInput{
		Name:     "Test User",
		Email:    "not-an-email",
		Password: "Password123!",
	})

	assert.Nil(t, output)
	assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))
}

func TestAuthService_Register_EmailTaken(t *testing.T) {
	fx := createTestAuthService(t)

	ctx := context.Background()
	txUserRepo := mockRepo.NewMockUserRepository(t)
	transactionPassthrough(t, fx.txManager, txUserRepo)

	fx.hasher.EXPECT().Hash("Password123!").Return("hashed_password", nil)
	txUserRepo.EXPECT().
		FindByEmail(ctx, "taken@example.com").
		Return(&entity.User{ID: uuid.New(), Email: "taken@example.com"}, nil)

	output, err := fx.service.Register(ctx, &usecase.RegisterInput{
		Name:     "Test User",
		Email:    "taken@example.com",
		Password: "Password123!",
	})

	assert.Nil(t, output)
	assert.True(t, errors.Is(err, domainerrors.ErrUserAlreadyExists))
}

func TestAuthService_Login_Success(t *testing.T) {
	fx := createTestAuthService(t)

	ctx := context.Background()
	userID := uuid.New()
	user := &entity.User{
		ID:           userID,
		Email:        "test@example.com",
		PasswordHash: "stored-hash",
	}

	fx.userRepo.EXPECT().FindByEmail(ctx, "test@example.com").Return(user, nil)
	fx.hasher.EXPECT().Check("Password123!", "stored-hash").Return(true)
	fx.tokenService.EXPECT().Issue(userID, "test@example.com").Return("session-token", nil)

	output, err := fx.service.Login(ctx, &usecase.LoginInput{
		Email:    "Test@Example.com",
		Password: "Password123!",
	})

	require.NoError(t, err)
	assert.Equal(t, "session-token", output.Token)
	assert.Equal(t, userID, output.User.ID)
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	fx := createTestAuthService(t)

	ctx := context.Background()
	fx.userRepo.EXPECT().
		FindByEmail(ctx, "ghost@example.com").
		Return(nil, repository.ErrUserNotFound)
	// A bcrypt comparison is still burned so the miss is not observably faster.
	fx.hasher.EXPECT().Check("whatever", dummyBcryptHash).Return(false)

	output, err := fx.service.Login(ctx, &usecase.LoginInput{
		Email:    "ghost@example.com",
		Password: "whatever",
	})

	assert.Nil(t, output)
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidCredentials))
}

func TestAuthService_Login_GoogleOnlyAccount(t *testing.T) {
	fx := createTestAuthService(t)

	ctx := context.Background()
	user := &entity.User{
		ID:       uuid.New(),
		Email:    "google@example.com",
		GoogleID: "google-sub-1",
	}

	fx.userRepo.EXPECT().FindByEmail(ctx, "google@example.com").Return(user, nil)
	fx.hasher.EXPECT().Check("whatever", dummyBcryptHash).Return(false)

	output, err := fx.service.Login(ctx, &usecase.LoginInput{
		Email:    "google@example.com",
		Password: "whatever",
	})

	assert.Nil(t, output)
	// Indistinguishable from a wrong password.
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidCredentials))
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	fx := createTestAuthService(t)

	ctx := context.Background()
	user := &entity.User{
		ID:           uuid.New(),
		Email:        "test@example.com",
		PasswordHash: "stored-hash",
	}

	fx.userRepo.EXPECT().FindByEmail(ctx, "test@example.com").Return(user, nil)
	fx.hasher.EXPECT().Check("wrong", "stored-hash").Return(false)

	output, err := fx.service.Login(ctx, &usecase.LoginInput{
		Email:    "test@example.com",
		Password: "wrong",
	})

	assert.Nil(t, output)
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidCredentials))
}

func TestAuthService_GoogleSignIn_Disabled(t *testing.T) {
	fx := createTestAuthService(t)

	fx.identityVerifier.EXPECT().Enabled().Return(false)

	output, err := fx.service.GoogleSignIn(context.Background(), &usecase.GoogleSignInInput{IDToken: "token"})

	assert.Nil(t, output)
	assert.True(t, errors.Is(err, domainerrors.ErrGoogleSignInDisabled))
}

func TestAuthService_GoogleSignIn_InvalidToken(t *testing.T) {
	fx := createTestAuthService(t)

	ctx := context.Background()
	fx.identityVerifier.EXPECT().Enabled().Return(true)
	fx.identityVerifier.EXPECT().
		VerifyIDToken(ctx, "bad-token").
		Return(nil, errors.New("audience mismatch"))

	output, err := fx.service.GoogleSignIn(ctx, &usecase.GoogleSignInInput{IDToken: "bad-token"})

	assert.Nil(t, output)
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidGoogleToken))
}

func TestAuthService_GoogleSignIn_AlreadyLinked(t *testing.T) {
	fx := createTestAuthService(t)

	ctx := context.Background()
	userID := uuid.New()
	user := &entity.User{ID: userID, Email: "test@example.com", GoogleID: "google-sub-1"}

	fx.identityVerifier.EXPECT().Enabled().Return(true)
	fx.identityVerifier.EXPECT().
		VerifyIDToken(ctx, "token").
		Return(&service.GoogleIdentity{SubjectID: "google-sub-1", Email: "test@example.com"}, nil)

	txUserRepo := mockRepo.NewMockUserRepository(t)
	transactionPassthrough(t, fx.txManager, txUserRepo)
	txUserRepo.EXPECT().FindByGoogleID(ctx, "google-sub-1").Return(user, nil)

	fx.tokenService.EXPECT().Issue(userID, "test@example.com").Return("session-token", nil)

	// No audit event for a plain sign-in: the publisher mock has no
	// expectations, so any publish would fail the test.
	output, err := fx.service.GoogleSignIn(ctx, &usecase.GoogleSignInInput{IDToken: "token"})

	require.NoError(t, err)
	assert.Equal(t, userID, output.User.ID)
	assert.False(t, output.IsNewUser)
}

func TestAuthService_GoogleSignIn_LinksExistingEmail(t *testing.T) {
	fx := createTestAuthService(t)

	ctx := context.Background()
	userID := uuid.New()
	existing := &entity.User{
		ID:           userID,
		Email:        "test@example.com",
		PasswordHash: "stored-hash",
	}
	identity := &service.GoogleIdentity{
		SubjectID: "google-sub-1",
		Email:     "Test@Example.com",
		Name:      "Test User",
		AvatarURL: "https://lh3.example/photo.jpg",
	}

	fx.identityVerifier.EXPECT().Enabled().Return(true)
	fx.identityVerifier.EXPECT().VerifyIDToken(ctx, "token").Return(identity, nil)

	txUserRepo := mockRepo.NewMockUserRepository(t)
	transactionPassthrough(t, fx.txManager, txUserRepo)
	txUserRepo.EXPECT().FindByGoogleID(ctx, "google-sub-1").Return(nil, repository.ErrUserNotFound)
	txUserRepo.EXPECT().FindByEmail(ctx, "test@example.com").Return(existing, nil)
	txUserRepo.EXPECT().
		Update(ctx, mock.AnythingOfType("*entity.User")).
		Run(func(ctx context.Context, user *entity.User) {
			assert.Equal(t, "google-sub-1", user.GoogleID)
			// Empty avatar is backfilled from Google.
			assert.Equal(t, "https://lh3.example/photo.jpg", user.AvatarURL)
		}).
		Return(nil)

	fx.tokenService.EXPECT().Issue(userID, "test@example.com").Return("session-token", nil)
	fx.eventPublisher.EXPECT().
		PublishAuthEvent(ctx, mock.AnythingOfType("*service.AuthEvent")).
		Run(func(ctx context.Context, event *service.AuthEvent) {
			assert.Equal(t, service.EventAccountLinked, event.Type)
		}).
		Return(nil)

	output, err := fx.service.GoogleSignIn(ctx, &usecase.GoogleSignInInput{IDToken: "token"})

	require.NoError(t, err)
	assert.Equal(t, userID, output.User.ID)
	// Linking is not a fresh account.
	assert.False(t, output.IsNewUser)
}

func TestAuthService_GoogleSignIn_KeepsChosenAvatar(t *testing.T) {
	fx := createTestAuthService(t)

	ctx := context.Background()
	existing := &entity.User{
		ID:           uuid.New(),
		Email:        "test@example.com",
		PasswordHash: "stored-hash",
		AvatarURL:    "https://plateful.example/avatars/custom.png",
	}
	identity := &service.GoogleIdentity{
		SubjectID: "google-sub-1",
		Email:     "test@example.com",
		AvatarURL: "https://lh3.example/photo.jpg",
	}

	fx.identityVerifier.EXPECT().Enabled().Return(true)
	fx.identityVerifier.EXPECT().VerifyIDToken(ctx, "token").Return(identity, nil)

	txUserRepo := mockRepo.NewMockUserRepository(t)
	transactionPassthrough(t, fx.txManager, txUserRepo)
	txUserRepo.EXPECT().FindByGoogleID(ctx, "google-sub-1").Return(nil, repository.ErrUserNotFound)
	txUserRepo.EXPECT().FindByEmail(ctx, "test@example.com").Return(existing, nil)
	txUserRepo.EXPECT().
		Update(ctx, mock.AnythingOfType("*entity.User")).
		Run(func(ctx context.Context, user *entity.User) {
			// The avatar the user chose is never overwritten.
			assert.Equal(t, "https://plateful.example/avatars/custom.png", user.AvatarURL)
		}).
		Return(nil)

	fx.tokenService.EXPECT().Issue(existing.ID, "test@example.com").Return("session-token", nil)
	fx.eventPublisher.EXPECT().
		PublishAuthEvent(ctx, mock.AnythingOfType("*service.AuthEvent")).
		Return(nil)

	_, err := fx.service.GoogleSignIn(ctx, &usecase.GoogleSignInInput{IDToken: "token"})

	require.NoError(t, err)
}

func TestAuthService_GoogleSignIn_CreatesNewAccount(t *testing.T) {
	fx := createTestAuthService(t)

	ctx := context.Background()
	userID := uuid.New()
	identity := &service.GoogleIdentity{
		SubjectID: "google-sub-9",
		Email:     "new@example.com",
		Name:      "New User",
		AvatarURL: "https://lh3.example/new.jpg",
	}

	fx.identityVerifier.EXPECT().Enabled().Return(true)
	fx.identityVerifier.EXPECT().VerifyIDToken(ctx, "token").Return(identity, nil)

	txUserRepo := mockRepo.NewMockUserRepository(t)
	transactionPassthrough(t, fx.txManager, txUserRepo)
	txUserRepo.EXPECT().FindByGoogleID(ctx, "google-sub-9").Return(nil, repository.ErrUserNotFound)
	txUserRepo.EXPECT().FindByEmail(ctx, "new@example.com").Return(nil, repository.ErrUserNotFound)
	txUserRepo.EXPECT().
		Create(ctx, mock.AnythingOfType("*entity.User")).
		Run(func(ctx context.Context, user *entity.User) {
			assert.Equal(t, "google-sub-9", user.GoogleID)
			assert.Empty(t, user.PasswordHash)
			user.ID = userID
		}).
		Return(nil)

	fx.tokenService.EXPECT().Issue(userID, "new@example.com").Return("session-token", nil)
	fx.eventPublisher.EXPECT().
		PublishAuthEvent(ctx, mock.AnythingOfType("*service.AuthEvent")).
		Run(func(ctx context.Context, event *service.AuthEvent) {
			assert.Equal(t, service.EventUserRegistered, event.Type)
			assert.Equal(t, "google", event.Provider)
		}).
		Return(nil)

	output, err := fx.service.GoogleSignIn(ctx, &usecase.GoogleSignInInput{IDToken: "token"})

	require.NoError(t, err)
	assert.Equal(t, userID, output.User.ID)
	assert.True(t, output.IsNewUser)
}

func TestAuthService_CurrentUser_Success(t *testing.T) {
	fx := createTestAuthService(t)

	ctx := context.Background()
	userID := uuid.New()
	user := &entity.User{
		ID:           userID,
		Email:        "test@example.com",
		PasswordHash: "stored-hash",
	}

	fx.userRepo.EXPECT().FindByID(ctx, userID).Return(user, nil)

	profile, err := fx.service.CurrentUser(ctx, userID)

	require.NoError(t, err)
	assert.Equal(t, userID, profile.ID)
	assert.Equal(t, "test@example.com", profile.Email)
}

func TestAuthService_CurrentUser_DeletedAccount(t *testing.T) {
	fx := createTestAuthService(t)

	ctx := context.Background()
	userID := uuid.New()

	fx.userRepo.EXPECT().FindByID(ctx, userID).Return(nil, repository.ErrUserNotFound)

	profile, err := fx.service.CurrentUser(ctx, userID)

	assert.Nil(t, profile)
	assert.True(t, errors.Is(err, domainerrors.ErrUnauthenticated))
}

func TestAuthService_Register_EventPublishFailureDoesNotFail(t *testing.T) {
	fx := createTestAuthService(t)

	ctx := context.Background()
	txUserRepo := mockRepo.NewMockUserRepository(t)
	transactionPassthrough(t, fx.txManager, txUserRepo)

	userID := uuid.New()

	fx.hasher.EXPECT().Hash("Password123!").Return("hashed_password", nil)
	txUserRepo.EXPECT().FindByEmail(ctx, "test@example.com").Return(nil, repository.ErrUserNotFound)
	txUserRepo.EXPECT().
		Create(ctx, mock.AnythingOfType("*entity.User")).
		Run(func(ctx context.Context, user *entity.User) {
			user.ID = userID
		}).
		Return(nil)
	fx.tokenService.EXPECT().Issue(userID, "test@example.com").Return("session-token", nil)
	fx.eventPublisher.EXPECT().
		PublishAuthEvent(ctx, mock.AnythingOfType("*service.AuthEvent")).
		Return(errors.New("bus unavailable"))

	output, err := fx.service.Register(ctx, &usecase.RegisterInput{
		Name:     "Test User",
		Email:    "test@example.com",
		Password: "Password123!",
	})

	require.NoError(t, err)
	assert.Equal(t, "session-token", output.Token)
}

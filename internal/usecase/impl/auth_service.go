// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"
	"net/mail"
	"strings"
	"time"

	"plateful/config"
	deliverycontext "plateful/internal/delivery/context"
	"plateful/internal/domain/entity"
	domainerrors "plateful/internal/domain/errors"
	"plateful/internal/domain/repository"
	"plateful/internal/domain/service"
	"plateful/internal/infra/metrics"
	"plateful/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// dummyBcryptHash is compared against when the login email is unknown, so a
// miss costs roughly the same time as a real password check.
const dummyBcryptHash = "$2a$12$R9h/cIPz0gi.URNNX3kh2OPST9/PgBkqquzi.Ss7KIUgO2t0jWMUW"

// authService implements the AuthUsecase interface.
type authService struct {
	txManager         repository.TransactionManager
	userRepo          repository.UserRepository
	hasher            service.PasswordHasher
	tokenService      service.TokenService
	identityVerifier  service.IdentityVerifier
	eventPublisher    service.EventPublisher
	collector         *metrics.Collector
	minPasswordLength int
	logger            *slog.Logger
}

// AuthServiceParams holds dependencies for authService, injected by Fx.
type AuthServiceParams struct {
	fx.In

	TxManager        repository.TransactionManager
	UserRepo         repository.UserRepository
	Hasher           service.PasswordHasher
	TokenService     service.TokenService
	IdentityVerifier service.IdentityVerifier
	EventPublisher   service.EventPublisher
	Collector        *metrics.Collector
	Config           *config.Config
	Logger           *slog.Logger
}

// NewAuthService is the constructor for authService.
func NewAuthService(params AuthServiceParams) usecase.AuthUsecase {
	minPasswordLength := config.DefaultMinPasswordLength
	if params.Config != nil && params.Config.Auth != nil && params.Config.Auth.MinPasswordLength > 0 {
		minPasswordLength = params.Config.Auth.MinPasswordLength
	}

	return &authService{
		txManager:         params.TxManager,
		userRepo:          params.UserRepo,
		hasher:            params.Hasher,
		tokenService:      params.TokenService,
		identityVerifier:  params.IdentityVerifier,
		eventPublisher:    params.EventPublisher,
		collector:         params.Collector,
		minPasswordLength: minPasswordLength,
		logger:            params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to
// the service's logger.
func (srv *authService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Register creates a password account and returns a session token.
func (srv *authService) Register(ctx context.Context, input *usecase.RegisterInput) (*usecase.AuthOutput, error) {
	email := entity.NormalizeEmail(input.Email)

	name := strings.TrimSpace(input.Name)
	if name == "" {
		srv.collector.RecordAuthAttempt("password", "failure")

		return nil, domainerrors.ErrValidationFailed.WrapMessage("name is required")
	}
	if err := validateEmail(email); err != nil {
		srv.collector.RecordAuthAttempt("password", "failure")

		return nil, err
	}
	if len(input.Password) < srv.minPasswordLength {
		srv.collector.RecordAuthAttempt("password", "failure")

		return nil, domainerrors.ErrValidationFailed.WrapMessage("password is too short")
	}

	// Hash outside the transaction: bcrypt is CPU-bound and must not hold
	// a database connection.
	passwordHash, err := srv.hasher.Hash(input.Password)
	if err != nil {
		return nil, errors.Wrap(err, "failed to hash password during registration")
	}

	newUser := &entity.User{
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
	}

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()

		_, findErr := userRepo.FindByEmail(ctx, email)
		if findErr == nil {
			return domainerrors.ErrUserAlreadyExists.WrapMessage("email already registered")
		}
		if !errors.Is(findErr, repository.ErrUserNotFound) {
			return errors.Wrap(findErr, "failed to check email availability")
		}

		// The unique constraint on email still catches the race where two
		// registrations pass the check concurrently.
		return userRepo.Create(ctx, newUser)
	})
	if err != nil {
		srv.collector.RecordAuthAttempt("password", "failure")
		srv.log(ctx).Warn("Registration failed", slog.String("email", email), slog.Any("error", err))

		return nil, err
	}

	token, err := srv.tokenService.Issue(newUser.ID, newUser.Email)
	if err != nil {
		return nil, errors.Wrap(err, "failed to issue session token after registration")
	}

	srv.collector.RecordAuthAttempt("password", "success")
	srv.publishEvent(ctx, service.EventUserRegistered, newUser, "password")
	srv.log(ctx).Info("User registered", slog.Any("userID", newUser.ID))

	return &usecase.AuthOutput{Token: token, User: newUser.Public(), IsNewUser: true}, nil
}

// Login verifies password credentials and returns a session token. Every
// failure path returns the same generic error so the endpoint cannot be
// used to probe which emails are registered.
func (srv *authService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.AuthOutput, error) {
	email := entity.NormalizeEmail(input.Email)

	user, err := srv.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			// Burn a bcrypt comparison anyway to keep timing uniform.
			srv.hasher.Check(input.Password, dummyBcryptHash)

			return nil, srv.failLogin(ctx, email, "unknown email")
		}

		return nil, errors.Wrap(err, "failed to load user for login")
	}

	if !user.HasPassword() {
		// Google-only account. Same generic error as a wrong password.
		srv.hasher.Check(input.Password, dummyBcryptHash)

		return nil, srv.failLogin(ctx, email, "account has no password")
	}

	if !srv.hasher.Check(input.Password, user.PasswordHash) {
		return nil, srv.failLogin(ctx, email, "password mismatch")
	}

	token, err := srv.tokenService.Issue(user.ID, user.Email)
	if err != nil {
		return nil, errors.Wrap(err, "failed to issue session token for login")
	}

	srv.collector.RecordAuthAttempt("password", "success")
	srv.log(ctx).Info("User logged in", slog.Any("userID", user.ID))

	return &usecase.AuthOutput{Token: token, User: user.Public()}, nil
}

// failLogin records the failure with its real reason in the log, but hands
// back only the generic credentials error.
func (srv *authService) failLogin(ctx context.Context, email, reason string) error {
	srv.collector.RecordAuthAttempt("password", "failure")
	srv.log(ctx).Warn("Login failed",
		slog.String("email", email),
		slog.String("reason", reason))

	return domainerrors.ErrInvalidCredentials.WrapMessage("login failed")
}

// GoogleSignIn verifies a Google ID token, then resolves it to an account:
// by linked Google id first, then by email (linking the identity), and
// finally by creating a new account.
func (srv *authService) GoogleSignIn(ctx context.Context, input *usecase.GoogleSignInInput) (*usecase.AuthOutput, error) {
	if !srv.identityVerifier.Enabled() {
		return nil, domainerrors.ErrGoogleSignInDisabled.WrapMessage("google sign-in requested without configuration")
	}

	identity, err := srv.identityVerifier.VerifyIDToken(ctx, input.IDToken)
	if err != nil {
		srv.collector.RecordGoogleVerification("failure")
		srv.collector.RecordAuthAttempt("google", "failure")
		srv.log(ctx).Warn("Google sign-in rejected", slog.Any("error", err))

		return nil, domainerrors.ErrInvalidGoogleToken.WrapMessage("token verification failed")
	}
	srv.collector.RecordGoogleVerification("success")

	var signedInUser *entity.User
	var eventType string
	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		var resolveErr error
		signedInUser, eventType, resolveErr = srv.resolveGoogleIdentity(ctx, repoFactory.UserRepo(), identity)

		return resolveErr
	})
	if err != nil {
		srv.collector.RecordAuthAttempt("google", "failure")

		return nil, errors.Wrap(err, "failed to resolve Google identity")
	}

	token, err := srv.tokenService.Issue(signedInUser.ID, signedInUser.Email)
	if err != nil {
		return nil, errors.Wrap(err, "failed to issue session token for google sign-in")
	}

	srv.collector.RecordAuthAttempt("google", "success")
	if eventType != "" {
		srv.publishEvent(ctx, eventType, signedInUser, "google")
	}

	return &usecase.AuthOutput{
		Token:     token,
		User:      signedInUser.Public(),
		IsNewUser: eventType == service.EventUserRegistered,
	}, nil
}

// resolveGoogleIdentity maps a verified Google identity onto a local user.
// The returned event type is empty for a plain sign-in to an already-linked
// account.
func (srv *authService) resolveGoogleIdentity(ctx context.Context, userRepo repository.UserRepository, identity *service.GoogleIdentity) (*entity.User, string, error) {
	// 1. An account already linked to this Google subject signs straight in.
	user, err := userRepo.FindByGoogleID(ctx, identity.SubjectID)
	if err == nil {
		return user, "", nil
	}
	if !errors.Is(err, repository.ErrUserNotFound) {
		return nil, "", errors.Wrap(err, "failed to look up google id")
	}

	// 2. An account with the same email gets the Google identity linked.
	email := entity.NormalizeEmail(identity.Email)
	user, err = userRepo.FindByEmail(ctx, email)
	if err == nil {
		user.GoogleID = identity.SubjectID
		// The avatar is only backfilled, never overwritten: a picture the
		// user chose here wins over the Google one.
		if user.AvatarURL == "" {
			user.AvatarURL = identity.AvatarURL
		}
		if err := userRepo.Update(ctx, user); err != nil {
			return nil, "", errors.Wrap(err, "failed to link google identity")
		}
		srv.log(ctx).Info("Google identity linked to existing account",
			slog.Any("userID", user.ID))

		return user, service.EventAccountLinked, nil
	}
	if !errors.Is(err, repository.ErrUserNotFound) {
		return nil, "", errors.Wrap(err, "failed to look up email for google sign-in")
	}

	// 3. First sight of this identity: create a Google-only account.
	newUser := &entity.User{
		Name:      identity.Name,
		Email:     email,
		GoogleID:  identity.SubjectID,
		AvatarURL: identity.AvatarURL,
	}
	if err := userRepo.Create(ctx, newUser); err != nil {
		return nil, "", errors.Wrap(err, "failed to create user for google sign-in")
	}
	srv.log(ctx).Info("User created from Google identity", slog.Any("userID", newUser.ID))

	return newUser, service.EventUserRegistered, nil
}

// CurrentUser returns the profile of the authenticated user.
func (srv *authService) CurrentUser(ctx context.Context, userID uuid.UUID) (*entity.PublicUser, error) {
	user, err := srv.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			// A valid token for a deleted account is still unauthenticated.
			return nil, domainerrors.ErrUnauthenticated.WrapMessage("account no longer exists")
		}

		return nil, errors.Wrap(err, "failed to load current user")
	}

	return user.Public(), nil
}

// publishEvent emits an audit event. Publishing is best-effort: a bus outage
// must not fail the sign-in that triggered it.
func (srv *authService) publishEvent(ctx context.Context, eventType string, user *entity.User, provider string) {
	event := &service.AuthEvent{
		Type:       eventType,
		UserID:     user.ID.String(),
		Email:      user.Email,
		Provider:   provider,
		OccurredAt: time.Now().UTC(),
		RequestID:  deliverycontext.GetRequestIDFromContext(ctx),
	}

	if err := srv.eventPublisher.PublishAuthEvent(ctx, event); err != nil {
		srv.log(ctx).Warn("Failed to publish auth event",
			slog.String("type", eventType),
			slog.Any("error", err))
	}
}

// validateEmail rejects addresses the mail parser cannot make sense of.
func validateEmail(email string) error {
	if email == "" {
		return domainerrors.ErrValidationFailed.WrapMessage("email is required")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return domainerrors.ErrValidationFailed.WrapMessage("email is malformed")
	}

	return nil
}

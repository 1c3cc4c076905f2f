package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/MKhiriev/go-learning-platform/internal/adapter"
	"github.com/MKhiriev/go-learning-platform/internal/config"
	"github.com/MKhiriev/go-learning-platform/internal/crypto"
	"github.com/MKhiriev/go-learning-platform/internal/logger"
	"github.com/MKhiriev/go-learning-platform/internal/store"
	"github.com/MKhiriev/go-learning-platform/models"
)

// defaultUsernameBase is used when an email has an empty local part.
const defaultUsernameBase = "user"

// Column widths of users.username and profiles.fullname, in characters.
const (
	maxUsernameLength = 50
	maxFullNameLength = 50
)

// authService is the concrete implementation of AuthService.
// It handles registration, the local and Google sign-in flows and refresh
// token rotation.
type authService struct {
	// userRepository is the data-access layer used to create and look up users.
	userRepository store.UserRepository

	// refreshTokenRepository keeps the single live refresh token hash of
	// every user.
	refreshTokenRepository store.RefreshTokenRepository

	// identityVerifier validates Firebase ID tokens for the Google flow.
	identityVerifier adapter.IdentityVerifier

	passwordHasher crypto.PasswordHasher

	// subjectCipher hides the user id inside tokens and responses.
	subjectCipher crypto.SubjectCipher

	tokens *tokenIssuer

	// logger is the structured logger used for diagnostic and error output.
	logger *logger.Logger
}

// NewAuthService constructs a new AuthService with the token settings from
// cfg. It fails when the sign key, issuer or token lifetimes are missing.
//
// The returned service is safe for concurrent use; all state is read-only
// after construction.
func NewAuthService(
	storages *store.Storages,
	adapters *adapter.Adapters,
	passwordHasher crypto.PasswordHasher,
	subjectCipher crypto.SubjectCipher,
	cfg config.App,
	logger *logger.Logger,
) (AuthService, error) {
	tokens, err := newTokenIssuer(cfg)
	if err != nil {
		return nil, err
	}

	return &authService{
		userRepository:         storages.UserRepository,
		refreshTokenRepository: storages.RefreshTokenRepository,
		identityVerifier:       adapters.IdentityVerifier,
		passwordHasher:         passwordHasher,
		subjectCipher:          subjectCipher,
		tokens:                 tokens,
		logger:                 logger,
	}, nil
}

// Register creates a local account together with its profile.
//
// Returns the created account with the encrypted id or:
//   - ErrEmailAlreadyRegistered if the email is in use.
//   - ErrUsernameTaken if the username is in use.
//   - A wrapped storage error for any other failure.
func (a *authService) Register(ctx context.Context, req models.RegisterRequest) (models.RegisterResult, error) {
	log := logger.FromContext(ctx)

	emailTaken, err := a.userRepository.EmailExists(ctx, req.Email)
	if err != nil {
		return models.RegisterResult{}, fmt.Errorf("error checking email: %w", err)
	}
	if emailTaken {
		return models.RegisterResult{}, ErrEmailAlreadyRegistered
	}

	usernameTaken, err := a.userRepository.UsernameExists(ctx, req.Username)
	if err != nil {
		return models.RegisterResult{}, fmt.Errorf("error checking username: %w", err)
	}
	if usernameTaken {
		return models.RegisterResult{}, ErrUsernameTaken
	}

	passwordHash, err := a.passwordHasher.Hash(req.Password)
	if err != nil {
		log.Err(err).Str("func", "*authService.Register").Msg("error hashing password")
		return models.RegisterResult{}, fmt.Errorf("error hashing password: %w", err)
	}

	user, err := a.userRepository.CreateUserWithProfile(ctx, models.User{
		Email:        req.Email,
		Username:     req.Username,
		PasswordHash: passwordHash,
		Provider:     models.ProviderLocal,
		IsActive:     true,
	}, models.Profile{FullName: req.FullName})
	switch {
	case errors.Is(err, store.ErrEmailAlreadyExists):
		return models.RegisterResult{}, ErrEmailAlreadyRegistered
	case errors.Is(err, store.ErrUsernameAlreadyExists):
		return models.RegisterResult{}, ErrUsernameTaken
	case err != nil:
		log.Err(err).Str("func", "*authService.Register").Msg("user creation ended with error")
		return models.RegisterResult{}, fmt.Errorf("user creation ended with error: %w", err)
	}

	id, err := a.subjectCipher.Encrypt(user.UserID)
	if err != nil {
		return models.RegisterResult{}, fmt.Errorf("error encrypting user id: %w", err)
	}

	return models.RegisterResult{
		ID:       id,
		Email:    user.Email,
		Username: user.Username,
		FullName: user.Profile.FullName,
	}, nil
}

// Login authenticates a local account by email or username.
//
// An unknown identifier, a wrong password and an account without a password
// all yield the same ErrInvalidCredentials.
func (a *authService) Login(ctx context.Context, req models.LoginRequest) (models.Session, error) {
	log := logger.FromContext(ctx)

	user, err := a.userRepository.FindByIdentifier(ctx, req.Identifier)
	if errors.Is(err, store.ErrUserNotFound) {
		return models.Session{}, ErrInvalidCredentials
	}
	if err != nil {
		return models.Session{}, fmt.Errorf("user search by identifier failed: %w", err)
	}

	if !user.HasPassword() || !a.passwordHasher.Verify(user.PasswordHash, req.Password) {
		log.Info().Int64("user_id", user.UserID).Msg("wrong password")
		return models.Session{}, ErrInvalidCredentials
	}

	return a.startSession(ctx, user)
}

// GoogleLogin signs in with a Firebase ID token. Unknown emails get a new
// google account with a generated username.
func (a *authService) GoogleLogin(ctx context.Context, req models.GoogleLoginRequest) (models.Session, error) {
	log := logger.FromContext(ctx)

	idToken := strings.TrimSpace(req.Token)
	if idToken == "" {
		return models.Session{}, ErrInvalidToken
	}

	identity, err := a.identityVerifier.Verify(ctx, idToken)
	if errors.Is(err, adapter.ErrCertificatesUnavailable) {
		log.Err(err).Str("func", "*authService.GoogleLogin").Msg("identity verifier is unreachable")
		return models.Session{}, fmt.Errorf("identity verifier unavailable: %w", err)
	}
	if err != nil {
		log.Info().Err(err).Str("func", "*authService.GoogleLogin").Msg("id token verification failed")
		return models.Session{}, fmt.Errorf("%w: %w", ErrInvalidExternalToken, err)
	}
	if identity.Email == "" {
		return models.Session{}, ErrEmailNotFoundInToken
	}

	user, err := a.userRepository.FindByEmail(ctx, identity.Email)
	switch {
	case errors.Is(err, store.ErrUserNotFound):
		user, err = a.createGoogleUser(ctx, identity)
		if err != nil {
			log.Err(err).Str("func", "*authService.GoogleLogin").Str("email", identity.Email).Msg("error creating google user")
			return models.Session{}, fmt.Errorf("%w: %w", ErrUserCreationFailed, err)
		}
	case err != nil:
		return models.Session{}, fmt.Errorf("user search by email failed: %w", err)
	case user.Provider != models.ProviderGoogle:
		return models.Session{}, ErrProviderMismatch
	}

	return a.startSession(ctx, user)
}

// Refresh exchanges a live refresh token for a new pair. The presented token
// is consumed: a second exchange with it fails with ErrInvalidRefreshToken.
func (a *authService) Refresh(ctx context.Context, req models.RefreshRequest) (models.TokenPair, error) {
	log := logger.FromContext(ctx)

	if strings.TrimSpace(req.RefreshToken) == "" {
		return models.TokenPair{}, ErrRefreshTokenRequired
	}

	token, err := a.tokens.verify(req.RefreshToken, models.RefreshToken)
	if err != nil {
		return models.TokenPair{}, fmt.Errorf("%w: %w", ErrInvalidRefreshToken, err)
	}

	userID, err := a.subjectCipher.Decrypt(token.Claims.Subject)
	if err != nil {
		return models.TokenPair{}, fmt.Errorf("%w: %w", ErrInvalidRefreshToken, err)
	}

	user, err := a.userRepository.FindByID(ctx, userID)
	if errors.Is(err, store.ErrUserNotFound) {
		return models.TokenPair{}, ErrInvalidRefreshToken
	}
	if err != nil {
		return models.TokenPair{}, fmt.Errorf("user search by id failed: %w", err)
	}
	if !user.IsActive {
		log.Info().Int64("user_id", userID).Msg("refresh for inactive user")
		return models.TokenPair{}, ErrInvalidRefreshToken
	}

	pair, refresh, err := a.tokens.issuePair(models.SessionPayload{
		Subject:  token.Claims.Subject,
		Email:    user.Email,
		Username: user.Username,
	})
	if err != nil {
		return models.TokenPair{}, err
	}

	err = a.refreshTokenRepository.Replace(ctx, userID, a.tokens.hash(req.RefreshToken), a.tokens.hash(pair.RefreshToken), refresh.ExpiresAt)
	if errors.Is(err, store.ErrRefreshTokenNotFound) {
		log.Warn().Int64("user_id", userID).Msg("refresh token is not the live token of the user")
		return models.TokenPair{}, ErrInvalidRefreshToken
	}
	if err != nil {
		return models.TokenPair{}, fmt.Errorf("error replacing refresh token: %w", err)
	}

	return pair, nil
}

// ParseAccessToken verifies tokenString as an access token and resolves
// the caller from its encrypted subject.
func (a *authService) ParseAccessToken(ctx context.Context, tokenString string) (models.Identity, error) {
	token, err := a.tokens.verify(tokenString, models.AccessToken)
	if err != nil {
		return models.Identity{}, err
	}

	userID, err := a.subjectCipher.Decrypt(token.Claims.Subject)
	if err != nil {
		return models.Identity{}, fmt.Errorf("%w: %w", ErrTokenIsExpiredOrInvalid, err)
	}

	return models.Identity{
		UserID:   userID,
		Email:    token.Claims.Email,
		Username: token.Claims.Username,
	}, nil
}

// startSession issues a token pair for user, makes its refresh token the
// only live one and builds the sign-in response. Inactive accounts get no
// session.
func (a *authService) startSession(ctx context.Context, user models.User) (models.Session, error) {
	if !user.IsActive {
		logger.FromContext(ctx).Info().Int64("user_id", user.UserID).Msg("sign-in for inactive user")
		return models.Session{}, ErrAccountInactive
	}

	subject, err := a.subjectCipher.Encrypt(user.UserID)
	if err != nil {
		return models.Session{}, fmt.Errorf("%w: %w", ErrTokenGeneration, err)
	}

	pair, refresh, err := a.tokens.issuePair(models.SessionPayload{
		Subject:  subject,
		Email:    user.Email,
		Username: user.Username,
	})
	if err != nil {
		return models.Session{}, err
	}

	if err = a.refreshTokenRepository.Rotate(ctx, user.UserID, a.tokens.hash(pair.RefreshToken), refresh.ExpiresAt); err != nil {
		return models.Session{}, fmt.Errorf("error storing refresh token: %w", err)
	}

	return models.Session{
		ID:             subject,
		Email:          user.Email,
		Username:       user.Username,
		FullName:       user.Profile.FullName,
		ProfilePicture: user.Profile.ProfilePicture,
		IsVerified:     user.IsVerified,
		IsActive:       user.IsActive,
		TokenPair:      pair,
	}, nil
}

func (a *authService) createGoogleUser(ctx context.Context, identity models.ExternalIdentity) (models.User, error) {
	username, err := a.uniqueUsername(ctx, identity.Email)
	if err != nil {
		return models.User{}, err
	}

	return a.userRepository.CreateUserWithProfile(ctx, models.User{
		Email:      identity.Email,
		Username:   username,
		Provider:   models.ProviderGoogle,
		IsVerified: true,
		IsActive:   true,
		Subject:    identity.Subject,
	}, models.Profile{
		FullName:       truncateRunes(identity.Name, maxFullNameLength),
		ProfilePicture: identity.Picture,
	})
}

// uniqueUsername probes base, base1, base2, ... where base is the local part
// of email, and returns the first name not taken. The base is shortened so
// that base and suffix together fit the username column.
func (a *authService) uniqueUsername(ctx context.Context, email string) (string, error) {
	base, _, _ := strings.Cut(email, "@")
	if base == "" {
		base = defaultUsernameBase
	}

	username := truncateRunes(base, maxUsernameLength)
	for counter := 1; ; counter++ {
		taken, err := a.userRepository.UsernameExists(ctx, username)
		if err != nil {
			return "", fmt.Errorf("error checking username: %w", err)
		}
		if !taken {
			return username, nil
		}
		if err = ctx.Err(); err != nil {
			return "", err
		}
		suffix := strconv.Itoa(counter)
		username = truncateRunes(base, maxUsernameLength-len(suffix)) + suffix
	}
}

// truncateRunes cuts s to at most n characters.
func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}

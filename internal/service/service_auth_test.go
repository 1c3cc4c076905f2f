package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/MKhiriev/go-learning-platform/internal/adapter"
	"github.com/MKhiriev/go-learning-platform/internal/config"
	"github.com/MKhiriev/go-learning-platform/internal/store"
	"github.com/MKhiriev/go-learning-platform/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func localUser() models.User {
	return models.User{
		UserID:       7,
		Email:        "bob@example.com",
		Username:     "bob",
		PasswordHash: "$argon2id$stored",
		Provider:     models.ProviderLocal,
		IsActive:     true,
		Profile:      models.Profile{UserID: 7, FullName: "Bob Builder"},
	}
}

// ─────────────────────────────────────────────
// NewAuthService
// ─────────────────────────────────────────────

func TestNewAuthService_RejectsIncompleteConfig(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(cfg *config.App)
		wantErr error
	}{
		{"no sign key", func(c *config.App) { c.TokenSignKey = "" }, ErrMissingTokenSignKey},
		{"no issuer", func(c *config.App) { c.TokenIssuer = "" }, ErrMissingTokenIssuer},
		{"zero access duration", func(c *config.App) { c.AccessTokenDuration = 0 }, ErrInvalidTokenDuration},
		{"negative refresh duration", func(c *config.App) { c.RefreshTokenDuration = -time.Second }, ErrInvalidTokenDuration},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testAppConfig()
			tt.mutate(&cfg)

			svc, err := NewAuthService(&store.Storages{}, &adapter.Adapters{}, nil, nil, cfg, nil)

			assert.Nil(t, svc)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

// ─────────────────────────────────────────────
// Register
// ─────────────────────────────────────────────

func TestRegister_Success(t *testing.T) {
	f := newAuthFixture(t)
	req := models.RegisterRequest{Email: "bob@example.com", Username: "bob1", Password: "Secret1!", FullName: "Bob Builder"}

	f.users.EXPECT().EmailExists(gomock.Any(), req.Email).Return(false, nil)
	f.users.EXPECT().UsernameExists(gomock.Any(), req.Username).Return(false, nil)
	f.hasher.EXPECT().Hash(req.Password).Return("$argon2id$hash", nil)
	f.users.EXPECT().CreateUserWithProfile(gomock.Any(), gomock.Any(), models.Profile{FullName: req.FullName}).
		DoAndReturn(func(_ context.Context, user models.User, profile models.Profile) (models.User, error) {
			assert.Equal(t, models.ProviderLocal, user.Provider)
			assert.Equal(t, "$argon2id$hash", user.PasswordHash)
			assert.True(t, user.IsActive)
			assert.False(t, user.IsVerified)
			user.UserID = 11
			user.Profile = profile
			return user, nil
		})

	got, err := f.svc.Register(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, req.Email, got.Email)
	assert.Equal(t, req.Username, got.Username)
	assert.Equal(t, req.FullName, got.FullName)

	id, err := f.cipher.Decrypt(got.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(11), id)
}

func TestRegister_EmailTaken(t *testing.T) {
	f := newAuthFixture(t)
	f.users.EXPECT().EmailExists(gomock.Any(), "bob@example.com").Return(true, nil)

	_, err := f.svc.Register(context.Background(), models.RegisterRequest{Email: "bob@example.com", Username: "bob1"})

	assert.ErrorIs(t, err, ErrEmailAlreadyRegistered)
}

func TestRegister_UsernameTaken(t *testing.T) {
	f := newAuthFixture(t)
	f.users.EXPECT().EmailExists(gomock.Any(), gomock.Any()).Return(false, nil)
	f.users.EXPECT().UsernameExists(gomock.Any(), "bob1").Return(true, nil)

	_, err := f.svc.Register(context.Background(), models.RegisterRequest{Email: "bob@example.com", Username: "bob1"})

	assert.ErrorIs(t, err, ErrUsernameTaken)
}

func TestRegister_RacedUniqueViolation(t *testing.T) {
	tests := []struct {
		name     string
		storeErr error
		wantErr  error
	}{
		{"email", store.ErrEmailAlreadyExists, ErrEmailAlreadyRegistered},
		{"username", store.ErrUsernameAlreadyExists, ErrUsernameTaken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newAuthFixture(t)
			f.users.EXPECT().EmailExists(gomock.Any(), gomock.Any()).Return(false, nil)
			f.users.EXPECT().UsernameExists(gomock.Any(), gomock.Any()).Return(false, nil)
			f.hasher.EXPECT().Hash(gomock.Any()).Return("$argon2id$hash", nil)
			f.users.EXPECT().CreateUserWithProfile(gomock.Any(), gomock.Any(), gomock.Any()).Return(models.User{}, tt.storeErr)

			_, err := f.svc.Register(context.Background(), models.RegisterRequest{Email: "a@b.c", Username: "abcd"})

			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestRegister_StorageError(t *testing.T) {
	f := newAuthFixture(t)
	dbErr := errors.New("connection reset")
	f.users.EXPECT().EmailExists(gomock.Any(), gomock.Any()).Return(false, dbErr)

	_, err := f.svc.Register(context.Background(), models.RegisterRequest{Email: "a@b.c"})

	assert.ErrorIs(t, err, dbErr)
}

// ─────────────────────────────────────────────
// Login
// ─────────────────────────────────────────────

func TestLogin_Success_RotatesRefreshToken(t *testing.T) {
	f := newAuthFixture(t)
	user := localUser()

	var storedHash string
	var storedExpiry time.Time
	f.users.EXPECT().FindByIdentifier(gomock.Any(), "bob").Return(user, nil)
	f.hasher.EXPECT().Verify(user.PasswordHash, "Secret1!").Return(true)
	f.tokens.EXPECT().Rotate(gomock.Any(), user.UserID, gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ int64, hash string, expiresAt time.Time) error {
			storedHash = hash
			storedExpiry = expiresAt
			return nil
		})

	session, err := f.svc.Login(context.Background(), models.LoginRequest{Identifier: "bob", Password: "Secret1!"})

	require.NoError(t, err)
	assert.Equal(t, user.Email, session.Email)
	assert.Equal(t, user.Username, session.Username)
	assert.Equal(t, "Bob Builder", session.FullName)
	assert.NotEmpty(t, session.AccessToken)
	assert.NotEmpty(t, session.RefreshToken)
	assert.NotEqual(t, session.AccessToken, session.RefreshToken)

	assert.Equal(t, f.digest.HashString(session.RefreshToken), storedHash)
	assert.WithinDuration(t, time.Now().Add(7*24*time.Hour), storedExpiry, time.Minute)

	id, err := f.cipher.Decrypt(session.ID)
	require.NoError(t, err)
	assert.Equal(t, user.UserID, id)

	identity, err := f.svc.ParseAccessToken(context.Background(), session.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, models.Identity{UserID: 7, Email: user.Email, Username: user.Username}, identity)
}

func TestLogin_UnknownUser_InvalidCredentials(t *testing.T) {
	f := newAuthFixture(t)
	f.users.EXPECT().FindByIdentifier(gomock.Any(), "ghost").Return(models.User{}, store.ErrUserNotFound)

	_, err := f.svc.Login(context.Background(), models.LoginRequest{Identifier: "ghost", Password: "whatever1"})

	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_WrongPassword_InvalidCredentials(t *testing.T) {
	f := newAuthFixture(t)
	user := localUser()
	f.users.EXPECT().FindByIdentifier(gomock.Any(), "bob").Return(user, nil)
	f.hasher.EXPECT().Verify(user.PasswordHash, "wrongpass").Return(false)

	_, err := f.svc.Login(context.Background(), models.LoginRequest{Identifier: "bob", Password: "wrongpass"})

	require.ErrorIs(t, err, ErrInvalidCredentials)
	assert.Equal(t, "invalid email/username or password", err.Error())
}

func TestLogin_GoogleAccountWithoutPassword(t *testing.T) {
	f := newAuthFixture(t)
	user := localUser()
	user.PasswordHash = ""
	user.Provider = models.ProviderGoogle
	f.users.EXPECT().FindByIdentifier(gomock.Any(), "bob").Return(user, nil)
	// no Verify call is expected for an account without a password

	_, err := f.svc.Login(context.Background(), models.LoginRequest{Identifier: "bob", Password: "Secret1!"})

	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_RotateFails(t *testing.T) {
	f := newAuthFixture(t)
	user := localUser()
	rotateErr := errors.New("tx aborted")
	f.users.EXPECT().FindByIdentifier(gomock.Any(), gomock.Any()).Return(user, nil)
	f.hasher.EXPECT().Verify(gomock.Any(), gomock.Any()).Return(true)
	f.tokens.EXPECT().Rotate(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(rotateErr)

	_, err := f.svc.Login(context.Background(), models.LoginRequest{Identifier: "bob", Password: "Secret1!"})

	assert.ErrorIs(t, err, rotateErr)
}

func TestLogin_InactiveAccount_NoSession(t *testing.T) {
	f := newAuthFixture(t)
	user := localUser()
	user.IsActive = false
	f.users.EXPECT().FindByIdentifier(gomock.Any(), "bob").Return(user, nil)
	f.hasher.EXPECT().Verify(user.PasswordHash, "Secret1!").Return(true)
	// Rotate must not be called for an inactive account

	_, err := f.svc.Login(context.Background(), models.LoginRequest{Identifier: "bob", Password: "Secret1!"})

	assert.ErrorIs(t, err, ErrAccountInactive)
}

// ─────────────────────────────────────────────
// GoogleLogin
// ─────────────────────────────────────────────

func TestGoogleLogin_EmptyToken(t *testing.T) {
	f := newAuthFixture(t)

	for _, token := range []string{"", "   ", "\t\n"} {
		_, err := f.svc.GoogleLogin(context.Background(), models.GoogleLoginRequest{Token: token})
		assert.ErrorIs(t, err, ErrInvalidToken)
	}
}

func TestGoogleLogin_VerifierRejectsToken(t *testing.T) {
	f := newAuthFixture(t)
	f.verifier.EXPECT().Verify(gomock.Any(), "id-token").Return(models.ExternalIdentity{}, adapter.ErrInvalidIDToken)

	_, err := f.svc.GoogleLogin(context.Background(), models.GoogleLoginRequest{Token: "id-token"})

	assert.ErrorIs(t, err, ErrInvalidExternalToken)
	assert.ErrorIs(t, err, adapter.ErrInvalidIDToken)
}

func TestGoogleLogin_VerifierUnreachable_IsInternal(t *testing.T) {
	f := newAuthFixture(t)
	outage := fmt.Errorf("%w: %w", adapter.ErrInvalidIDToken, adapter.ErrCertificatesUnavailable)
	f.verifier.EXPECT().Verify(gomock.Any(), "id-token").Return(models.ExternalIdentity{}, outage)

	_, err := f.svc.GoogleLogin(context.Background(), models.GoogleLoginRequest{Token: "id-token"})

	require.ErrorIs(t, err, adapter.ErrCertificatesUnavailable)
	assert.NotErrorIs(t, err, ErrInvalidExternalToken)
}

func TestGoogleLogin_InactiveGoogleUser(t *testing.T) {
	f := newAuthFixture(t)
	user := models.User{UserID: 3, Email: "ann@example.com", Username: "ann", Provider: models.ProviderGoogle}
	f.verifier.EXPECT().Verify(gomock.Any(), gomock.Any()).Return(models.ExternalIdentity{Email: user.Email}, nil)
	f.users.EXPECT().FindByEmail(gomock.Any(), user.Email).Return(user, nil)

	_, err := f.svc.GoogleLogin(context.Background(), models.GoogleLoginRequest{Token: "id-token"})

	assert.ErrorIs(t, err, ErrAccountInactive)
}

func TestGoogleLogin_NoEmailClaim(t *testing.T) {
	f := newAuthFixture(t)
	f.verifier.EXPECT().Verify(gomock.Any(), gomock.Any()).Return(models.ExternalIdentity{Subject: "g-1"}, nil)

	_, err := f.svc.GoogleLogin(context.Background(), models.GoogleLoginRequest{Token: "id-token"})

	assert.ErrorIs(t, err, ErrEmailNotFoundInToken)
}

func TestGoogleLogin_ProviderMismatch_WritesNothing(t *testing.T) {
	f := newAuthFixture(t)
	f.verifier.EXPECT().Verify(gomock.Any(), gomock.Any()).Return(models.ExternalIdentity{Email: "bob@example.com"}, nil)
	f.users.EXPECT().FindByEmail(gomock.Any(), "bob@example.com").Return(localUser(), nil)
	// neither CreateUserWithProfile nor Rotate may be called

	_, err := f.svc.GoogleLogin(context.Background(), models.GoogleLoginRequest{Token: "id-token"})

	assert.ErrorIs(t, err, ErrProviderMismatch)
}

func TestGoogleLogin_ExistingGoogleUser(t *testing.T) {
	f := newAuthFixture(t)
	user := models.User{
		UserID: 3, Email: "ann@example.com", Username: "ann", Provider: models.ProviderGoogle,
		IsVerified: true, IsActive: true,
		Profile: models.Profile{FullName: "Ann", ProfilePicture: "https://cdn/ann.png"},
	}
	f.verifier.EXPECT().Verify(gomock.Any(), gomock.Any()).Return(models.ExternalIdentity{Email: user.Email}, nil)
	f.users.EXPECT().FindByEmail(gomock.Any(), user.Email).Return(user, nil)
	f.tokens.EXPECT().Rotate(gomock.Any(), int64(3), gomock.Any(), gomock.Any()).Return(nil)

	session, err := f.svc.GoogleLogin(context.Background(), models.GoogleLoginRequest{Token: " id-token "})

	require.NoError(t, err)
	assert.Equal(t, "ann", session.Username)
	assert.Equal(t, "https://cdn/ann.png", session.ProfilePicture)
	assert.True(t, session.IsVerified)
	assert.True(t, session.IsActive)
}

func TestGoogleLogin_NewUser_ProbesUsername(t *testing.T) {
	f := newAuthFixture(t)
	identity := models.ExternalIdentity{
		Subject: "g-42", Email: "new@x.com", EmailVerified: true, Name: "New Person", Picture: "https://lh3/p.png",
	}

	f.verifier.EXPECT().Verify(gomock.Any(), gomock.Any()).Return(identity, nil)
	f.users.EXPECT().FindByEmail(gomock.Any(), "new@x.com").Return(models.User{}, store.ErrUserNotFound)
	gomock.InOrder(
		f.users.EXPECT().UsernameExists(gomock.Any(), "new").Return(true, nil),
		f.users.EXPECT().UsernameExists(gomock.Any(), "new1").Return(true, nil),
		f.users.EXPECT().UsernameExists(gomock.Any(), "new2").Return(false, nil),
	)
	f.users.EXPECT().CreateUserWithProfile(gomock.Any(), gomock.Any(), models.Profile{FullName: "New Person", ProfilePicture: "https://lh3/p.png"}).
		DoAndReturn(func(_ context.Context, user models.User, profile models.Profile) (models.User, error) {
			assert.Equal(t, "new2", user.Username)
			assert.Equal(t, models.ProviderGoogle, user.Provider)
			assert.Equal(t, "g-42", user.Subject)
			assert.True(t, user.IsVerified)
			assert.True(t, user.IsActive)
			assert.Empty(t, user.PasswordHash)
			user.UserID = 99
			user.Profile = profile
			return user, nil
		})
	f.tokens.EXPECT().Rotate(gomock.Any(), int64(99), gomock.Any(), gomock.Any()).Return(nil)

	session, err := f.svc.GoogleLogin(context.Background(), models.GoogleLoginRequest{Token: "id-token"})

	require.NoError(t, err)
	assert.Equal(t, "new2", session.Username)
	assert.Equal(t, "New Person", session.FullName)
	assert.NotEmpty(t, session.AccessToken)
}

func TestGoogleLogin_CreationFails(t *testing.T) {
	f := newAuthFixture(t)
	f.verifier.EXPECT().Verify(gomock.Any(), gomock.Any()).Return(models.ExternalIdentity{Email: "new@x.com"}, nil)
	f.users.EXPECT().FindByEmail(gomock.Any(), gomock.Any()).Return(models.User{}, store.ErrUserNotFound)
	f.users.EXPECT().UsernameExists(gomock.Any(), "new").Return(false, nil)
	f.users.EXPECT().CreateUserWithProfile(gomock.Any(), gomock.Any(), gomock.Any()).Return(models.User{}, store.ErrEmailAlreadyExists)

	_, err := f.svc.GoogleLogin(context.Background(), models.GoogleLoginRequest{Token: "id-token"})

	assert.ErrorIs(t, err, ErrUserCreationFailed)
}

func TestGoogleLogin_LongNamesFitColumns(t *testing.T) {
	f := newAuthFixture(t)
	local := strings.Repeat("a", 64)
	identity := models.ExternalIdentity{Email: local + "@x.com", Name: strings.Repeat("Ж", 60)}

	f.verifier.EXPECT().Verify(gomock.Any(), gomock.Any()).Return(identity, nil)
	f.users.EXPECT().FindByEmail(gomock.Any(), identity.Email).Return(models.User{}, store.ErrUserNotFound)
	gomock.InOrder(
		f.users.EXPECT().UsernameExists(gomock.Any(), local[:maxUsernameLength]).Return(true, nil),
		f.users.EXPECT().UsernameExists(gomock.Any(), local[:maxUsernameLength-1]+"1").Return(false, nil),
	)
	f.users.EXPECT().CreateUserWithProfile(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, user models.User, profile models.Profile) (models.User, error) {
			assert.Len(t, user.Username, maxUsernameLength)
			assert.Equal(t, maxFullNameLength, utf8.RuneCountInString(profile.FullName))
			user.UserID = 5
			user.Profile = profile
			return user, nil
		})
	f.tokens.EXPECT().Rotate(gomock.Any(), int64(5), gomock.Any(), gomock.Any()).Return(nil)

	_, err := f.svc.GoogleLogin(context.Background(), models.GoogleLoginRequest{Token: "id-token"})

	require.NoError(t, err)
}

func TestTruncateRunes(t *testing.T) {
	assert.Equal(t, "abc", truncateRunes("abc", 5))
	assert.Equal(t, "ab", truncateRunes("abc", 2))
	assert.Equal(t, "жё", truncateRunes("жёлтый", 2))
}

func TestUniqueUsername_EmptyLocalPart(t *testing.T) {
	f := newAuthFixture(t)
	f.users.EXPECT().UsernameExists(gomock.Any(), defaultUsernameBase).Return(false, nil)

	got, err := f.svc.(*authService).uniqueUsername(context.Background(), "@example.com")

	require.NoError(t, err)
	assert.Equal(t, defaultUsernameBase, got)
}

// ─────────────────────────────────────────────
// Refresh
// ─────────────────────────────────────────────

// loginForRefresh signs user in and returns the issued refresh token
// together with the hash that was stored for it.
func loginForRefresh(t *testing.T, f *authFixture, user models.User) (string, string) {
	t.Helper()

	var storedHash string
	f.users.EXPECT().FindByIdentifier(gomock.Any(), gomock.Any()).Return(user, nil)
	f.hasher.EXPECT().Verify(gomock.Any(), gomock.Any()).Return(true)
	f.tokens.EXPECT().Rotate(gomock.Any(), user.UserID, gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ int64, hash string, _ time.Time) error {
			storedHash = hash
			return nil
		})

	session, err := f.svc.Login(context.Background(), models.LoginRequest{Identifier: user.Username, Password: "Secret1!"})
	require.NoError(t, err)

	return session.RefreshToken, storedHash
}

func TestRefresh_Success_ReplacesLiveToken(t *testing.T) {
	f := newAuthFixture(t)
	user := localUser()
	refreshToken, storedHash := loginForRefresh(t, f, user)

	var newHash string
	f.users.EXPECT().FindByID(gomock.Any(), user.UserID).Return(user, nil)
	f.tokens.EXPECT().Replace(gomock.Any(), user.UserID, storedHash, gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ int64, _ string, hash string, _ time.Time) error {
			newHash = hash
			return nil
		})

	pair, err := f.svc.Refresh(context.Background(), models.RefreshRequest{RefreshToken: refreshToken})

	require.NoError(t, err)
	assert.NotEqual(t, refreshToken, pair.RefreshToken)
	assert.Equal(t, f.digest.HashString(pair.RefreshToken), newHash)

	identity, err := f.svc.ParseAccessToken(context.Background(), pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, user.UserID, identity.UserID)
}

func TestRefresh_ReplayedToken_Rejected(t *testing.T) {
	f := newAuthFixture(t)
	user := localUser()
	refreshToken, _ := loginForRefresh(t, f, user)

	f.users.EXPECT().FindByID(gomock.Any(), user.UserID).Return(user, nil)
	f.tokens.EXPECT().Replace(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(store.ErrRefreshTokenNotFound)

	_, err := f.svc.Refresh(context.Background(), models.RefreshRequest{RefreshToken: refreshToken})

	assert.ErrorIs(t, err, ErrInvalidRefreshToken)
}

func TestRefresh_MissingToken(t *testing.T) {
	f := newAuthFixture(t)

	_, err := f.svc.Refresh(context.Background(), models.RefreshRequest{})

	assert.ErrorIs(t, err, ErrRefreshTokenRequired)
}

func TestRefresh_MalformedToken(t *testing.T) {
	f := newAuthFixture(t)

	_, err := f.svc.Refresh(context.Background(), models.RefreshRequest{RefreshToken: "not-a-jwt"})

	assert.ErrorIs(t, err, ErrInvalidRefreshToken)
}

func TestRefresh_AccessTokenPresented(t *testing.T) {
	f := newAuthFixture(t)
	f.users.EXPECT().FindByIdentifier(gomock.Any(), gomock.Any()).Return(localUser(), nil)
	f.hasher.EXPECT().Verify(gomock.Any(), gomock.Any()).Return(true)
	f.tokens.EXPECT().Rotate(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

	session, err := f.svc.Login(context.Background(), models.LoginRequest{Identifier: "bob", Password: "Secret1!"})
	require.NoError(t, err)

	_, err = f.svc.Refresh(context.Background(), models.RefreshRequest{RefreshToken: session.AccessToken})

	assert.ErrorIs(t, err, ErrInvalidRefreshToken)
}

func TestRefresh_UserGoneOrInactive(t *testing.T) {
	tests := []struct {
		name string
		user models.User
		err  error
	}{
		{"not found", models.User{}, store.ErrUserNotFound},
		{"inactive", models.User{UserID: 7, IsActive: false}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newAuthFixture(t)
			refreshToken, _ := loginForRefresh(t, f, localUser())
			f.users.EXPECT().FindByID(gomock.Any(), int64(7)).Return(tt.user, tt.err)

			_, err := f.svc.Refresh(context.Background(), models.RefreshRequest{RefreshToken: refreshToken})

			assert.ErrorIs(t, err, ErrInvalidRefreshToken)
		})
	}
}

// ─────────────────────────────────────────────
// ParseAccessToken
// ─────────────────────────────────────────────

func signTestToken(t *testing.T, subject string, tokenType models.TokenType, expiresAt time.Time) string {
	t.Helper()

	claims := models.SessionClaims{
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    testIssuer,
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(expiresAt.Add(-time.Hour)),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, &claims).SignedString([]byte(testSignKey))
	require.NoError(t, err)

	return signed
}

func TestParseAccessToken_Expired(t *testing.T) {
	f := newAuthFixture(t)
	subject, err := f.cipher.Encrypt(7)
	require.NoError(t, err)

	_, err = f.svc.ParseAccessToken(context.Background(), signTestToken(t, subject, models.AccessToken, time.Now().Add(-time.Minute)))

	assert.ErrorIs(t, err, ErrTokenIsExpired)
}

func TestParseAccessToken_RefreshTokenRejected(t *testing.T) {
	f := newAuthFixture(t)
	subject, err := f.cipher.Encrypt(7)
	require.NoError(t, err)

	_, err = f.svc.ParseAccessToken(context.Background(), signTestToken(t, subject, models.RefreshToken, time.Now().Add(time.Hour)))

	assert.ErrorIs(t, err, ErrTokenIsExpiredOrInvalid)
}

func TestParseAccessToken_UndecryptableSubject(t *testing.T) {
	f := newAuthFixture(t)

	_, err := f.svc.ParseAccessToken(context.Background(), signTestToken(t, "plain-subject", models.AccessToken, time.Now().Add(time.Hour)))

	assert.ErrorIs(t, err, ErrTokenIsExpiredOrInvalid)
}

func TestParseAccessToken_WrongSignature(t *testing.T) {
	f := newAuthFixture(t)
	subject, err := f.cipher.Encrypt(7)
	require.NoError(t, err)

	token := signTestToken(t, subject, models.AccessToken, time.Now().Add(time.Hour))
	tampered := token[:len(token)-2] + "xx"

	_, err = f.svc.ParseAccessToken(context.Background(), tampered)

	assert.ErrorIs(t, err, ErrTokenIsExpiredOrInvalid)
}

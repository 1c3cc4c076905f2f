package service

import (
	"testing"
	"time"

	"github.com/MKhiriev/go-learning-platform/internal/adapter"
	"github.com/MKhiriev/go-learning-platform/internal/config"
	"github.com/MKhiriev/go-learning-platform/internal/crypto"
	"github.com/MKhiriev/go-learning-platform/internal/logger"
	"github.com/MKhiriev/go-learning-platform/internal/mock"
	"github.com/MKhiriev/go-learning-platform/internal/store"
	"github.com/MKhiriev/go-learning-platform/internal/utils"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const (
	testEncryptionKey = "000102030405060708090a0b0c0d0e0f101112131415161718191a1b1c1d1e1f"
	testEncryptionIV  = "0f0e0d0c0b0a09080706050403020100"
	testSignKey       = "test-sign-key"
	testIssuer        = "test-issuer"
	testHashKey       = "test-hash-key"
)

func testAppConfig() config.App {
	return config.App{
		TokenSignKey:         testSignKey,
		TokenIssuer:          testIssuer,
		AccessTokenDuration:  15 * time.Minute,
		RefreshTokenDuration: 7 * 24 * time.Hour,
		EncryptionKey:        testEncryptionKey,
		EncryptionIV:         testEncryptionIV,
		HashKey:              testHashKey,
		Version:              "1.0.0",
	}
}

// authFixture bundles an authService with its mocked collaborators.
type authFixture struct {
	svc      AuthService
	users    *mock.MockUserRepository
	tokens   *mock.MockRefreshTokenRepository
	verifier *mock.MockIdentityVerifier
	hasher   *mock.MockPasswordHasher
	cipher   crypto.SubjectCipher
	digest   *utils.TokenHasher
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	cipher, err := crypto.NewSubjectCipher(testEncryptionKey, testEncryptionIV)
	require.NoError(t, err)

	f := &authFixture{
		users:    mock.NewMockUserRepository(ctrl),
		tokens:   mock.NewMockRefreshTokenRepository(ctrl),
		verifier: mock.NewMockIdentityVerifier(ctrl),
		hasher:   mock.NewMockPasswordHasher(ctrl),
		cipher:   cipher,
		digest:   utils.NewTokenHasher(testHashKey),
	}

	f.svc, err = NewAuthService(
		&store.Storages{UserRepository: f.users, RefreshTokenRepository: f.tokens},
		&adapter.Adapters{IdentityVerifier: f.verifier},
		f.hasher,
		cipher,
		testAppConfig(),
		logger.Nop(),
	)
	require.NoError(t, err)

	return f
}

package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-learning-platform/internal/config"
	"github.com/MKhiriev/go-learning-platform/internal/utils"
	"github.com/MKhiriev/go-learning-platform/models"
	"github.com/golang-jwt/jwt/v5"
)

// tokenIssuer mints and verifies the access/refresh pair. Both token types
// share the sign key and are told apart by the typ claim.
type tokenIssuer struct {
	signKey         string
	issuer          string
	accessDuration  time.Duration
	refreshDuration time.Duration

	// hasher produces the value stored for a refresh token.
	hasher *utils.TokenHasher
}

func newTokenIssuer(cfg config.App) (*tokenIssuer, error) {
	if cfg.TokenSignKey == "" {
		return nil, ErrMissingTokenSignKey
	}
	if cfg.TokenIssuer == "" {
		return nil, ErrMissingTokenIssuer
	}
	if cfg.AccessTokenDuration <= 0 || cfg.RefreshTokenDuration <= 0 {
		return nil, ErrInvalidTokenDuration
	}

	return &tokenIssuer{
		signKey:         cfg.TokenSignKey,
		issuer:          cfg.TokenIssuer,
		accessDuration:  cfg.AccessTokenDuration,
		refreshDuration: cfg.RefreshTokenDuration,
		hasher:          utils.NewTokenHasher(cfg.HashKey),
	}, nil
}

// issuePair signs a new access and refresh token for payload. The refresh
// token is returned separately so callers can persist its expiry.
func (t *tokenIssuer) issuePair(payload models.SessionPayload) (models.TokenPair, models.Token, error) {
	access, err := utils.GenerateSessionToken(t.issuer, payload, models.AccessToken, t.accessDuration, t.signKey)
	if err != nil {
		return models.TokenPair{}, models.Token{}, fmt.Errorf("%w: %w", ErrTokenGeneration, err)
	}

	refresh, err := utils.GenerateSessionToken(t.issuer, payload, models.RefreshToken, t.refreshDuration, t.signKey)
	if err != nil {
		return models.TokenPair{}, models.Token{}, fmt.Errorf("%w: %w", ErrTokenGeneration, err)
	}

	return models.TokenPair{
		AccessToken:  access.String(),
		RefreshToken: refresh.String(),
	}, refresh, nil
}

// verify parses tokenString as a token of the expected type. Expired tokens
// are reported as ErrTokenIsExpired, every other failure as
// ErrTokenIsExpiredOrInvalid.
func (t *tokenIssuer) verify(tokenString string, expected models.TokenType) (models.Token, error) {
	token, err := utils.ParseSessionToken(tokenString, t.signKey, t.issuer, expected)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return models.Token{}, fmt.Errorf("%w: %w", ErrTokenIsExpired, err)
		}
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenIsExpiredOrInvalid, err)
	}

	return token, nil
}

func (t *tokenIssuer) hash(tokenString string) string {
	return t.hasher.HashString(tokenString)
}

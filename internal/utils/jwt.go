package utils

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/go-learning-platform/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	// ErrInvalidTokenParams is returned when a token is requested with an
	// empty issuer, sign key, subject or a non-positive lifetime.
	ErrInvalidTokenParams = errors.New("invalid params for generating JWT Token")
	// ErrUnexpectedTokenType is returned when a refresh token is presented
	// where an access token is expected, or vice versa.
	ErrUnexpectedTokenType = errors.New("unexpected token type")
	// ErrEmptySubject is returned when a token carries no subject claim.
	ErrEmptySubject = errors.New("empty subject error")
	// ErrInvalidAuthorizationHeader is returned for headers that are not in
	// the "Bearer <token>" form.
	ErrInvalidAuthorizationHeader = errors.New("invalid authorization header")
)

// GenerateSessionToken creates a signed HMAC-SHA256 JWT for the given session
// payload.
//
// The token includes the following claims:
//   - Issuer    (iss): identifies the service that issued the token
//   - Subject   (sub): the encrypted user identifier from payload
//   - ID        (jti): a fresh UUIDv7, so two tokens minted in the same second differ
//   - IssuedAt  (iat): the current time
//   - ExpiresAt (exp): the current time plus tokenDuration
//   - typ, email, username: session attributes
//
// Example usage:
//
//	token, err := utils.GenerateSessionToken("learning", payload, models.AccessToken, 15*time.Minute, "secret")
func GenerateSessionToken(issuer string, payload models.SessionPayload, tokenType models.TokenType, tokenDuration time.Duration, signKey string) (models.Token, error) {
	if issuer == "" || tokenDuration <= 0 || signKey == "" || payload.Subject == "" {
		return models.Token{}, ErrInvalidTokenParams
	}

	jti, err := uuid.NewV7()
	if err != nil {
		return models.Token{}, fmt.Errorf("error generating token id: %w", err)
	}

	now := time.Now()
	expiresAt := now.Add(tokenDuration)
	claims := models.SessionClaims{
		Email:     payload.Email,
		Username:  payload.Username,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        jti.String(),
			Issuer:    issuer,
			Subject:   payload.Subject,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &claims)
	tokenString, err := token.SignedString([]byte(signKey))
	if err != nil {
		return models.Token{}, fmt.Errorf("error occurred during singing JWT token: %w", err)
	}

	return models.Token{
		Token:        token,
		Claims:       claims,
		SignedString: tokenString,
		ExpiresAt:    claims.ExpiresAt.Time,
	}, nil
}

// ParseSessionToken validates the given JWT string and extracts its claims.
//
// Validation includes:
//   - Signature verification with HS256 and the provided sign key
//   - Issuer (iss) claim check against tokenIssuer
//   - Expiration (exp) claim presence and check
//   - typ claim check against expectedType
//   - Subject (sub) claim presence
//
// Example usage:
//
//	token, err := utils.ParseSessionToken(raw, "secret", "learning", models.AccessToken)
//	if err != nil {
//	    // handle invalid or expired token
//	}
func ParseSessionToken(tokenString, tokenSignKey, tokenIssuer string, expectedType models.TokenType) (models.Token, error) {
	claims := &models.SessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		return []byte(tokenSignKey), nil
	},
		jwt.WithIssuer(tokenIssuer),
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return models.Token{}, fmt.Errorf("error occurred validating and parsing token: %w", err)
	}

	if claims.TokenType != expectedType {
		return models.Token{}, fmt.Errorf("%w: got %q, want %q", ErrUnexpectedTokenType, claims.TokenType, expectedType)
	}

	if claims.Subject == "" {
		return models.Token{}, ErrEmptySubject
	}

	return models.Token{
		Token:        token,
		Claims:       *claims,
		SignedString: tokenString,
		ExpiresAt:    claims.ExpiresAt.Time,
	}, nil
}

// ParseBearerToken extracts the token from an "Authorization: Bearer <token>"
// header value. The scheme is matched case-insensitively.
func ParseBearerToken(authorizationHeader string) (string, error) {
	parts := strings.Fields(authorizationHeader)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", ErrInvalidAuthorizationHeader
	}
	return parts[1], nil
}

package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenType distinguishes access tokens from refresh tokens. Both are signed
// with the same key, so the type claim is what keeps one from being accepted
// in place of the other.
type TokenType string

const (
	AccessToken  TokenType = "access"
	RefreshToken TokenType = "refresh"
)

// SessionPayload is the claim set embedded in both access and refresh tokens.
//
// Subject holds the hex-encoded ciphertext of the user ID, so a token never
// carries the plain identifier.
type SessionPayload struct {
	Subject  string `json:"sub"`
	Email    string `json:"email"`
	Username string `json:"username"`
}

// SessionClaims is the JWT claim set issued by the service.
type SessionClaims struct {
	Email     string    `json:"email"`
	Username  string    `json:"username"`
	TokenType TokenType `json:"typ"`

	jwt.RegisteredClaims
}

// Payload returns the session payload carried by the claims.
func (c *SessionClaims) Payload() SessionPayload {
	return SessionPayload{
		Subject:  c.Subject,
		Email:    c.Email,
		Username: c.Username,
	}
}

// Token wraps a signed JWT together with its decoded claims.
type Token struct {
	// Token is the underlying JWT token used for signing and claim inspection.
	*jwt.Token `json:"-"`

	// Claims is the decoded claim set.
	Claims SessionClaims `json:"-"`

	// SignedString is the compact JWS representation of the token
	// (base64url-encoded header.payload.signature).
	SignedString string `json:"-"`

	// ExpiresAt is a copy of the "exp" claim.
	ExpiresAt time.Time `json:"-"`
}

// String returns the compact JWS serialization of the token.
// It implements the [fmt.Stringer] interface.
func (t *Token) String() string {
	return t.SignedString
}

// TokenPair is the access/refresh pair returned by every sign-in flow.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// RefreshTokenRecord is the persisted, hashed form of the single live refresh
// token of a user.
type RefreshTokenRecord struct {
	ID        int64
	UserID    int64
	TokenHash string
	ExpiresAt time.Time
	CreatedAt time.Time
}

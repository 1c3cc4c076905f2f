package adapter

import (
	"context"
	"crypto/rsa"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/MKhiriev/go-learning-platform/internal/config"
	"github.com/MKhiriev/go-learning-platform/internal/logger"
	"github.com/MKhiriev/go-learning-platform/internal/utils"
	"github.com/MKhiriev/go-learning-platform/models"
	"github.com/golang-jwt/jwt/v5"
)

const (
	firebaseIssuerPrefix    = "https://securetoken.google.com/"
	defaultCertsCacheMaxAge = time.Hour
)

// firebaseClaims is the claim set of a Firebase ID token.
type firebaseClaims struct {
	Email         string `json:"email"`
	EmailVerified bool   `json:"email_verified"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`

	jwt.RegisteredClaims
}

type firebaseVerifier struct {
	client    *utils.HTTPClient
	projectID string
	certsURL  string

	// mu guards keys and expiresAt, the cached certificate set.
	mu        sync.RWMutex
	keys      map[string]*rsa.PublicKey
	expiresAt time.Time

	now    func() time.Time
	logger *logger.Logger
}

// NewFirebaseVerifier constructs an [IdentityVerifier] for Firebase ID tokens
// of the configured project. Signing certificates are fetched from
// cfg.FirebaseCertsURL on first use and cached for the max-age advertised by
// the response.
func NewFirebaseVerifier(cfg config.Adapter, logger *logger.Logger) (IdentityVerifier, error) {
	if cfg.FirebaseProjectID == "" || cfg.FirebaseCertsURL == "" {
		return nil, fmt.Errorf("%w: firebase project id and certs url are required", ErrMissingConfig)
	}

	return &firebaseVerifier{
		client:    utils.NewHTTPClient(cfg.RequestTimeout),
		projectID: cfg.FirebaseProjectID,
		certsURL:  cfg.FirebaseCertsURL,
		now:       time.Now,
		logger:    logger,
	}, nil
}

// Verify implements [IdentityVerifier].
func (f *firebaseVerifier) Verify(ctx context.Context, idToken string) (models.ExternalIdentity, error) {
	claims := &firebaseClaims{}
	_, err := jwt.ParseWithClaims(idToken, claims, func(token *jwt.Token) (any, error) {
		kid, _ := token.Header["kid"].(string)
		if kid == "" {
			return nil, fmt.Errorf("token has no kid header")
		}
		return f.publicKey(ctx, kid)
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}),
		jwt.WithAudience(f.projectID),
		jwt.WithIssuer(firebaseIssuerPrefix+f.projectID),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
		jwt.WithTimeFunc(f.now),
	)
	if err != nil {
		return models.ExternalIdentity{}, fmt.Errorf("%w: %w", ErrInvalidIDToken, err)
	}

	if claims.Subject == "" {
		return models.ExternalIdentity{}, fmt.Errorf("%w: empty subject", ErrInvalidIDToken)
	}

	return models.ExternalIdentity{
		Subject:       claims.Subject,
		Email:         claims.Email,
		EmailVerified: claims.EmailVerified,
		Name:          claims.Name,
		Picture:       claims.Picture,
	}, nil
}

// publicKey returns the key for kid. The certificate set is refetched only
// once the cached one has expired; an unknown kid in a fresh set is rejected
// without contacting the endpoint.
func (f *firebaseVerifier) publicKey(ctx context.Context, kid string) (*rsa.PublicKey, error) {
	f.mu.RLock()
	key, ok := f.keys[kid]
	fresh := f.now().Before(f.expiresAt)
	f.mu.RUnlock()

	if fresh {
		if !ok {
			return nil, fmt.Errorf("unknown signing key %q", kid)
		}
		return key, nil
	}

	if err := f.refreshKeys(ctx); err != nil {
		return nil, err
	}

	f.mu.RLock()
	defer f.mu.RUnlock()

	key, ok = f.keys[kid]
	if !ok {
		return nil, fmt.Errorf("unknown signing key %q", kid)
	}
	return key, nil
}

func (f *firebaseVerifier) refreshKeys(ctx context.Context) error {
	log := logger.FromContext(ctx)

	resp, err := f.client.R().
		SetContext(ctx).
		SetHeader("Accept", "application/json").
		Get(f.certsURL)
	if err != nil {
		log.Err(err).Str("func", "*firebaseVerifier.refreshKeys").Msg("error fetching firebase certificates")
		return fmt.Errorf("%w: %w", ErrCertificatesUnavailable, err)
	}
	if err = mapHTTPError("firebase certificates", resp); err != nil {
		log.Err(err).Str("func", "*firebaseVerifier.refreshKeys").Msg("firebase certificates endpoint returned an error")
		return fmt.Errorf("%w: %w", ErrCertificatesUnavailable, err)
	}

	var certs map[string]string
	if err = json.Unmarshal(resp.Body(), &certs); err != nil {
		return fmt.Errorf("%w: decode certificates: %w", ErrCertificatesUnavailable, err)
	}

	keys := make(map[string]*rsa.PublicKey, len(certs))
	for kid, pemCert := range certs {
		key, parseErr := jwt.ParseRSAPublicKeyFromPEM([]byte(pemCert))
		if parseErr != nil {
			log.Warn().Err(parseErr).Str("func", "*firebaseVerifier.refreshKeys").Str("kid", kid).Msg("skipping unparsable certificate")
			continue
		}
		keys[kid] = key
	}
	if len(keys) == 0 {
		return fmt.Errorf("%w: no usable certificates", ErrCertificatesUnavailable)
	}

	f.mu.Lock()
	f.keys = keys
	f.expiresAt = f.now().Add(cacheMaxAge(resp.Header().Get("Cache-Control")))
	f.mu.Unlock()

	return nil
}

// cacheMaxAge extracts max-age from a Cache-Control header value.
func cacheMaxAge(header string) time.Duration {
	for _, directive := range strings.Split(header, ",") {
		name, value, found := strings.Cut(strings.TrimSpace(directive), "=")
		if !found || !strings.EqualFold(name, "max-age") {
			continue
		}
		seconds, err := strconv.Atoi(value)
		if err != nil || seconds <= 0 {
			break
		}
		return time.Duration(seconds) * time.Second
	}
	return defaultCertsCacheMaxAge
}

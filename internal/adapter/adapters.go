package adapter

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-learning-platform/internal/config"
	"github.com/MKhiriev/go-learning-platform/internal/logger"
	"github.com/MKhiriev/go-learning-platform/models"
)

var (
	ErrVerifierNotConfigured = errors.New("google sign-in is not configured")
	ErrStorageNotConfigured  = errors.New("file storage is not configured")
)

// Adapters groups the outbound integrations used by the service layer.
type Adapters struct {
	IdentityVerifier IdentityVerifier
	FileStorage      FileStorage
}

// NewAdapters builds every adapter from cfg. An integration whose settings
// are absent is replaced by a stub that fails each call, so a server without
// Google or ImageKit credentials still starts and serves the other routes.
func NewAdapters(cfg config.Adapter, logger *logger.Logger) (*Adapters, error) {
	adapters := &Adapters{
		IdentityVerifier: unconfiguredVerifier{},
		FileStorage:      unconfiguredStorage{},
	}

	if cfg.FirebaseProjectID != "" {
		verifier, err := NewFirebaseVerifier(cfg, logger)
		if err != nil {
			return nil, fmt.Errorf("error creating identity verifier: %w", err)
		}
		adapters.IdentityVerifier = verifier
	} else {
		logger.Warn().Msg("firebase project id is not set, google sign-in is disabled")
	}

	if cfg.ImageKitPrivateKey != "" {
		storage, err := NewImageKitStorage(cfg, logger)
		if err != nil {
			return nil, fmt.Errorf("error creating file storage: %w", err)
		}
		adapters.FileStorage = storage
	} else {
		logger.Warn().Msg("imagekit private key is not set, file uploads are disabled")
	}

	return adapters, nil
}

type unconfiguredVerifier struct{}

func (unconfiguredVerifier) Verify(context.Context, string) (models.ExternalIdentity, error) {
	return models.ExternalIdentity{}, fmt.Errorf("%w: %w", ErrInvalidIDToken, ErrVerifierNotConfigured)
}

type unconfiguredStorage struct{}

func (unconfiguredStorage) Upload(context.Context, string, []byte) (string, error) {
	return "", ErrStorageNotConfigured
}

func (unconfiguredStorage) Delete(_ context.Context, fileURL string) error {
	if fileURL == "" {
		return nil
	}
	return ErrStorageNotConfigured
}

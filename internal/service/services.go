package service

import (
	"fmt"

	"github.com/MKhiriev/go-learning-platform/internal/adapter"
	"github.com/MKhiriev/go-learning-platform/internal/config"
	"github.com/MKhiriev/go-learning-platform/internal/crypto"
	"github.com/MKhiriev/go-learning-platform/internal/logger"
	"github.com/MKhiriev/go-learning-platform/internal/store"
	"github.com/MKhiriev/go-learning-platform/internal/validators"
)

type Services struct {
	AuthService     AuthService
	ProfileService  ProfileService
	ContentService  ContentService
	SearchService   SearchService
	ErrorLogService ErrorLogService
	AppInfoService  AppInfoService
}

// NewServices builds every service and decorates the ones that accept
// request bodies with validation. It fails when the token or encryption
// settings in cfg are unusable.
func NewServices(storages *store.Storages, adapters *adapter.Adapters, cfg config.StructuredConfig, logger *logger.Logger) (*Services, error) {
	subjectCipher, err := crypto.NewSubjectCipher(cfg.App.EncryptionKey, cfg.App.EncryptionIV)
	if err != nil {
		return nil, fmt.Errorf("error creating subject cipher: %w", err)
	}

	authService, err := NewAuthService(storages, adapters, crypto.NewPasswordHasher(), subjectCipher, cfg.App, logger)
	if err != nil {
		return nil, fmt.Errorf("error creating auth service: %w", err)
	}

	appInfoService, err := NewAppInfoService(cfg.App, logger)
	if err != nil {
		return nil, fmt.Errorf("error creating app info service: %w", err)
	}

	validator := validators.NewRequestValidator()

	return &Services{
		AuthService:     NewAuthValidationService(validator).Wrap(authService),
		ProfileService:  NewProfileValidationService(validator).Wrap(NewProfileService(storages, adapters, logger)),
		ContentService:  NewContentValidationService(validator).Wrap(NewContentService(storages, adapters, logger)),
		SearchService:   NewSearchService(storages, logger),
		ErrorLogService: NewErrorLogService(storages, logger),
		AppInfoService:  appInfoService,
	}, nil
}

package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-learning-platform/internal/logger"
	"github.com/MKhiriev/go-learning-platform/internal/store"
	"github.com/MKhiriev/go-learning-platform/models"
)

type errorLogService struct {
	errorLogRepository store.ErrorLogRepository

	logger *logger.Logger
}

func NewErrorLogService(storages *store.Storages, logger *logger.Logger) ErrorLogService {
	return &errorLogService{
		errorLogRepository: storages.ErrorLogRepository,
		logger:             logger,
	}
}

func (s *errorLogService) Record(ctx context.Context, entry models.ErrorLog) error {
	if err := s.errorLogRepository.Save(ctx, entry); err != nil {
		return fmt.Errorf("error saving error log: %w", err)
	}

	return nil
}

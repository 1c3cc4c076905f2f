package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-learning-platform/internal/logger"
	"github.com/MKhiriev/go-learning-platform/models"
)

type errorLogRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewErrorLogRepository constructs an [ErrorLogRepository].
func NewErrorLogRepository(db *DB, logger *logger.Logger) ErrorLogRepository {
	logger.Debug().Msg("creating error log repository")
	return &errorLogRepository{
		db:     db,
		logger: logger,
	}
}

func (r *errorLogRepository) Save(ctx context.Context, entry models.ErrorLog) error {
	_, err := r.db.ExecContext(ctx, insertErrorLog,
		entry.FeatureName,
		entry.ProcessID,
		entry.UserID,
		entry.Error,
		entry.ErrorMessage,
		entry.ErrorStack,
	)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*errorLogRepository.Save").Msg("failed to save error log")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, r.db.dbError(err))
	}

	return nil
}

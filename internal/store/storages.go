package store

import "github.com/MKhiriev/go-learning-platform/internal/logger"

// Storages groups every repository of the server.
type Storages struct {
	UserRepository         UserRepository
	ProfileRepository      ProfileRepository
	RefreshTokenRepository RefreshTokenRepository
	ContentRepository      ContentRepository
	SearchRepository       SearchRepository
	ErrorLogRepository     ErrorLogRepository
}

// NewStorages builds all repositories on top of db.
func NewStorages(db *DB, logger *logger.Logger) *Storages {
	return &Storages{
		UserRepository:         NewUserRepository(db, logger),
		ProfileRepository:      NewProfileRepository(db, logger),
		RefreshTokenRepository: NewRefreshTokenRepository(db, logger),
		ContentRepository:      NewContentRepository(db, logger),
		SearchRepository:       NewSearchRepository(db, logger),
		ErrorLogRepository:     NewErrorLogRepository(db, logger),
	}
}

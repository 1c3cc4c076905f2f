// Package workers runs the server's periodic background jobs.
package workers

import (
	"context"
	"time"

	"github.com/MKhiriev/go-learning-platform/internal/config"
	"github.com/MKhiriev/go-learning-platform/internal/logger"
	"github.com/MKhiriev/go-learning-platform/internal/store"
)

// Worker is a background job. Run returns immediately; the job keeps going
// in its own goroutine until ctx is cancelled.
type Worker interface {
	Run(ctx context.Context)
}

// expiredTokenDeleter is the part of the refresh token repository the purge
// job needs.
type expiredTokenDeleter interface {
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

// Workers is the fixed set of jobs started by main.
type Workers struct {
	workers []Worker
}

func NewWorkers(storages *store.Storages, cfg config.Workers, logger *logger.Logger) *Workers {
	return &Workers{workers: []Worker{
		newTokenPurger(storages.RefreshTokenRepository, cfg.TokenPurgeInterval, logger),
	}}
}

// Run starts the jobs in registration order, all bound to ctx.
func (w *Workers) Run(ctx context.Context) {
	for _, worker := range w.workers {
		worker.Run(ctx)
	}
}

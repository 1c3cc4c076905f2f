package workers

import (
	"context"
	"time"

	"github.com/MKhiriev/go-learning-platform/internal/logger"
)

const defaultPurgeInterval = time.Hour

// tokenPurger periodically deletes expired refresh tokens.
type tokenPurger struct {
	tokens   expiredTokenDeleter
	interval time.Duration
	now      func() time.Time
	logger   *logger.Logger
}

func newTokenPurger(tokens expiredTokenDeleter, interval time.Duration, logger *logger.Logger) *tokenPurger {
	if interval <= 0 {
		interval = defaultPurgeInterval
	}
	return &tokenPurger{
		tokens:   tokens,
		interval: interval,
		now:      time.Now,
		logger:   logger,
	}
}

func (p *tokenPurger) Run(ctx context.Context) {
	p.logger.Info().Dur("interval", p.interval).Msg("token purge worker started")

	go func() {
		ticker := time.NewTicker(p.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				p.logger.Info().Msg("token purge worker stopped")
				return
			case <-ticker.C:
				p.purge(ctx)
			}
		}
	}()
}

func (p *tokenPurger) purge(ctx context.Context) {
	deleted, err := p.tokens.DeleteExpired(ctx, p.now())
	if err != nil {
		p.logger.Err(err).Msg("failed to purge expired refresh tokens")
		return
	}
	if deleted > 0 {
		p.logger.Info().Int64("deleted", deleted).Msg("expired refresh tokens purged")
	}
}

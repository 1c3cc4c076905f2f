package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-learning-platform/internal/logger"
	"github.com/MKhiriev/go-learning-platform/models"
)

type searchRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewSearchRepository constructs a [SearchRepository].
func NewSearchRepository(db *DB, logger *logger.Logger) SearchRepository {
	logger.Debug().Msg("creating search repository")
	return &searchRepository{
		db:     db,
		logger: logger,
	}
}

// Search returns the rows of target whose title contains title, ordered by
// title. LIKE wildcards in title are matched literally.
func (r *searchRepository) Search(ctx context.Context, target models.SearchTarget, title string, page models.PageRequest) ([]models.SearchItem, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSearchQuery(target, title, page)
	if err != nil {
		log.Err(err).Str("func", "*searchRepository.Search").Str("target", string(target)).Msg("failed to create query")
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*searchRepository.Search").Str("target", string(target)).Msg("failed to execute search query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, r.db.dbError(err))
	}
	defer rows.Close()

	items := make([]models.SearchItem, 0, page.Limit)
	for rows.Next() {
		var item models.SearchItem
		if err = rows.Scan(&item.ID, &item.Title, &item.Description); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		items = append(items, item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return items, nil
}

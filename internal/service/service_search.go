package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-learning-platform/internal/logger"
	"github.com/MKhiriev/go-learning-platform/internal/store"
	"github.com/MKhiriev/go-learning-platform/models"
)

type searchService struct {
	searchRepository store.SearchRepository

	logger *logger.Logger
}

func NewSearchService(storages *store.Storages, logger *logger.Logger) SearchService {
	return &searchService{
		searchRepository: storages.SearchRepository,
		logger:           logger,
	}
}

// Search looks title up in target. The pagination block carries no totals.
func (s *searchService) Search(ctx context.Context, target models.SearchTarget, title string, page models.PageRequest) (models.SearchPage, error) {
	items, err := s.searchRepository.Search(ctx, target, title, page)
	if err != nil {
		return models.SearchPage{}, fmt.Errorf("error searching %s: %w", target, err)
	}
	if items == nil {
		items = []models.SearchItem{}
	}

	return models.SearchPage{
		Pagination: models.Pagination{Page: page.Page, Limit: page.Limit},
		Data:       items,
	}, nil
}

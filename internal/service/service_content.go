// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-learning-platform/internal/adapter"
	"github.com/MKhiriev/go-learning-platform/internal/logger"
	"github.com/MKhiriev/go-learning-platform/internal/store"
	"github.com/MKhiriev/go-learning-platform/internal/utils"
	"github.com/MKhiriev/go-learning-platform/models"
)

// contentService serves the chapter/topic/question catalogue and the
// progress of the caller through it.
type contentService struct {
	contentRepository store.ContentRepository
	fileStorage       adapter.FileStorage
	uuidGenerator     *utils.UUIDGenerator

	logger *logger.Logger
}

func NewContentService(storages *store.Storages, adapters *adapter.Adapters, logger *logger.Logger) ContentService {
	return &contentService{
		contentRepository: storages.ContentRepository,
		fileStorage:       adapters.FileStorage,
		uuidGenerator:     utils.NewUUIDGenerator(),
		logger:            logger,
	}
}

func (s *contentService) ListChapters(ctx context.Context, userID int64) ([]models.ChapterOverview, error) {
	chapters, err := s.contentRepository.ListChapters(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing chapters: %w", err)
	}
	if chapters == nil {
		chapters = []models.ChapterOverview{}
	}

	return chapters, nil
}

func (s *contentService) ListChaptersPaged(ctx context.Context, userID int64, page models.PageRequest) (models.ChapterPage, error) {
	chapters, total, err := s.contentRepository.ListChaptersPaged(ctx, userID, page)
	if err != nil {
		return models.ChapterPage{}, fmt.Errorf("error listing chapters: %w", err)
	}
	if chapters == nil {
		chapters = []models.ChapterOverview{}
	}

	return models.ChapterPage{
		Chapters:   chapters,
		Pagination: models.NewPagination(page, total),
	}, nil
}

func (s *contentService) ListTopicsByChapter(ctx context.Context, userID, chapterID int64, page models.PageRequest) (models.TopicPage, error) {
	topics, total, err := s.contentRepository.ListTopicsByChapter(ctx, userID, chapterID, page)
	if err != nil {
		return models.TopicPage{}, fmt.Errorf("error listing topics: %w", err)
	}
	if topics == nil {
		topics = []models.TopicSummary{}
	}

	return models.TopicPage{
		Topics:     topics,
		Pagination: models.NewPagination(page, total),
	}, nil
}

func (s *contentService) CreateChapter(ctx context.Context, userID int64, input models.CreateChapterInput) (models.Chapter, error) {
	chapter, err := s.contentRepository.CreateChapter(ctx, models.Chapter{
		Title:       input.Title,
		Description: input.Description,
		UserID:      &userID,
	})
	if err != nil {
		return models.Chapter{}, fmt.Errorf("error creating chapter: %w", err)
	}

	return chapter, nil
}

func (s *contentService) CreateTopic(ctx context.Context, userID int64, input models.CreateTopicInput) (models.Topic, error) {
	if err := s.mustExist(ctx, s.contentRepository.ChapterExists, input.ChapterID, ErrChapterNotFound); err != nil {
		return models.Topic{}, err
	}

	topic, err := s.contentRepository.CreateTopic(ctx, models.Topic{
		Title:       input.Title,
		Description: input.Description,
		ChapterID:   input.ChapterID,
		CreatedBy:   &userID,
	})
	if errors.Is(err, store.ErrReferenceNotFound) {
		return models.Topic{}, ErrChapterNotFound
	}
	if err != nil {
		return models.Topic{}, fmt.Errorf("error creating topic: %w", err)
	}

	return topic, nil
}

// CreateQuestion checks every referenced row before uploading the image so
// that a rejected question leaves no orphan file behind.
func (s *contentService) CreateQuestion(ctx context.Context, userID int64, input models.CreateQuestionInput, image *models.UploadedFile) (models.Question, error) {
	if input.SubtopicID != nil {
		if err := s.mustExist(ctx, s.contentRepository.TopicExists, *input.SubtopicID, ErrTopicNotFound); err != nil {
			return models.Question{}, err
		}
	}
	if input.DifficultyID != nil {
		if err := s.mustExist(ctx, s.contentRepository.DifficultyExists, *input.DifficultyID, ErrDifficultyNotFound); err != nil {
			return models.Question{}, err
		}
	}
	if err := s.mustExist(ctx, s.contentRepository.TypeExists, input.TypeID, ErrTypeNotFound); err != nil {
		return models.Question{}, err
	}

	var explanationImage *string
	if image.Present() {
		url, err := s.fileStorage.Upload(ctx, s.uuidGenerator.FileName(image.Name), image.Content)
		if err != nil {
			logger.FromContext(ctx).Err(err).Str("func", "*contentService.CreateQuestion").Msg("error uploading explanation image")
			return models.Question{}, fmt.Errorf("%w: %w", ErrImageUploadFailed, err)
		}
		explanationImage = &url
	}

	isActive := true
	if input.IsActive != nil {
		isActive = *input.IsActive
	}

	question, err := s.contentRepository.CreateQuestion(ctx, models.Question{
		Title:            input.Title,
		Description:      input.Description,
		Question:         input.Question,
		SubtopicID:       input.SubtopicID,
		DifficultyID:     input.DifficultyID,
		Explanation:      input.Explanation,
		ExplanationImage: explanationImage,
		TimeLimit:        input.TimeLimit,
		TypeID:           input.TypeID,
		TagID:            input.TagID,
		IsActive:         isActive,
		CreatedBy:        &userID,
	})
	if err != nil {
		return models.Question{}, fmt.Errorf("error creating question: %w", err)
	}

	return question, nil
}

func (s *contentService) SetChapterProgress(ctx context.Context, userID, chapterID int64, completed bool) error {
	if err := s.mustExist(ctx, s.contentRepository.ChapterExists, chapterID, ErrChapterNotFound); err != nil {
		return err
	}

	err := s.contentRepository.SetChapterProgress(ctx, userID, chapterID, completed)
	if errors.Is(err, store.ErrReferenceNotFound) {
		return ErrChapterNotFound
	}
	if err != nil {
		return fmt.Errorf("error saving chapter progress: %w", err)
	}

	return nil
}

func (s *contentService) SetTopicProgress(ctx context.Context, userID, topicID int64, completed bool) error {
	if err := s.mustExist(ctx, s.contentRepository.TopicExists, topicID, ErrTopicNotFound); err != nil {
		return err
	}

	err := s.contentRepository.SetTopicProgress(ctx, userID, topicID, completed)
	if errors.Is(err, store.ErrReferenceNotFound) {
		return ErrTopicNotFound
	}
	if err != nil {
		return fmt.Errorf("error saving topic progress: %w", err)
	}

	return nil
}

// mustExist returns notFound when exists reports that id is absent.
func (s *contentService) mustExist(ctx context.Context, exists func(context.Context, int64) (bool, error), id int64, notFound error) error {
	ok, err := exists(ctx, id)
	if err != nil {
		return fmt.Errorf("error checking reference: %w", err)
	}
	if !ok {
		return notFound
	}

	return nil
}

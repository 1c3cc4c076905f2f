package service

import (
	"context"
	"strings"

	"github.com/MKhiriev/go-learning-platform/internal/validators"
	"github.com/MKhiriev/go-learning-platform/models"
)

type ContentValidationService struct {
	inner     ContentService
	validator validators.Validator
}

func NewContentValidationService(validator validators.Validator) ContentServiceWrapper {
	return &ContentValidationService{
		validator: validator,
	}
}

func (v *ContentValidationService) ListChapters(ctx context.Context, userID int64) ([]models.ChapterOverview, error) {
	return v.inner.ListChapters(ctx, userID)
}

func (v *ContentValidationService) ListChaptersPaged(ctx context.Context, userID int64, page models.PageRequest) (models.ChapterPage, error) {
	return v.inner.ListChaptersPaged(ctx, userID, page)
}

func (v *ContentValidationService) ListTopicsByChapter(ctx context.Context, userID, chapterID int64, page models.PageRequest) (models.TopicPage, error) {
	return v.inner.ListTopicsByChapter(ctx, userID, chapterID, page)
}

func (v *ContentValidationService) CreateChapter(ctx context.Context, userID int64, input models.CreateChapterInput) (models.Chapter, error) {
	if err := v.validator.Validate(ctx, input); err != nil {
		return models.Chapter{}, err
	}

	return v.inner.CreateChapter(ctx, userID, input)
}

// CreateTopic trims the title before its length is checked.
func (v *ContentValidationService) CreateTopic(ctx context.Context, userID int64, input models.CreateTopicInput) (models.Topic, error) {
	input.Title = strings.TrimSpace(input.Title)
	if err := v.validator.Validate(ctx, input); err != nil {
		return models.Topic{}, err
	}

	return v.inner.CreateTopic(ctx, userID, input)
}

func (v *ContentValidationService) CreateQuestion(ctx context.Context, userID int64, input models.CreateQuestionInput, image *models.UploadedFile) (models.Question, error) {
	if err := v.validator.Validate(ctx, input); err != nil {
		return models.Question{}, err
	}

	return v.inner.CreateQuestion(ctx, userID, input, image)
}

func (v *ContentValidationService) SetChapterProgress(ctx context.Context, userID, chapterID int64, completed bool) error {
	return v.inner.SetChapterProgress(ctx, userID, chapterID, completed)
}

func (v *ContentValidationService) SetTopicProgress(ctx context.Context, userID, topicID int64, completed bool) error {
	return v.inner.SetTopicProgress(ctx, userID, topicID, completed)
}

func (v *ContentValidationService) Wrap(inner ContentService) ContentService {
	v.inner = inner
	return v
}

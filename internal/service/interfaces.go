// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package service holds the business logic of the learning platform server.
//
// Services receive plain input records and the caller's user id as explicit
// parameters; they never read the HTTP request. Validation of request bodies
// is layered on top of the core services with wrappers (see [AuthServiceWrapper]).
package service

import (
	"context"

	"github.com/MKhiriev/go-learning-platform/models"
)

// AuthService implements registration, the sign-in flows and token checks.
type AuthService interface {
	Register(ctx context.Context, req models.RegisterRequest) (models.RegisterResult, error)
	Login(ctx context.Context, req models.LoginRequest) (models.Session, error)
	GoogleLogin(ctx context.Context, req models.GoogleLoginRequest) (models.Session, error)
	Refresh(ctx context.Context, req models.RefreshRequest) (models.TokenPair, error)

	// ParseAccessToken verifies an access token and resolves the caller.
	ParseAccessToken(ctx context.Context, tokenString string) (models.Identity, error)
}

type ProfileService interface {
	GetProfileSummary(ctx context.Context, userID int64) (models.ProfileSummary, error)
	GetProfileDetail(ctx context.Context, userID int64) (models.ProfileDetail, error)
	GetPublicProfile(ctx context.Context, username string) (models.PublicProfile, error)

	// SetupProfile creates or updates the profile of userID. picture is
	// optional.
	SetupProfile(ctx context.Context, userID int64, input models.ProfileInput, picture *models.UploadedFile) (models.Profile, error)
	UpdateProfilePicture(ctx context.Context, userID int64, picture *models.UploadedFile) (models.Profile, error)
}

type ContentService interface {
	ListChapters(ctx context.Context, userID int64) ([]models.ChapterOverview, error)
	ListChaptersPaged(ctx context.Context, userID int64, page models.PageRequest) (models.ChapterPage, error)
	ListTopicsByChapter(ctx context.Context, userID, chapterID int64, page models.PageRequest) (models.TopicPage, error)

	CreateChapter(ctx context.Context, userID int64, input models.CreateChapterInput) (models.Chapter, error)
	CreateTopic(ctx context.Context, userID int64, input models.CreateTopicInput) (models.Topic, error)
	// CreateQuestion stores a question. image, when present, becomes the
	// explanation image.
	CreateQuestion(ctx context.Context, userID int64, input models.CreateQuestionInput, image *models.UploadedFile) (models.Question, error)

	SetChapterProgress(ctx context.Context, userID, chapterID int64, completed bool) error
	SetTopicProgress(ctx context.Context, userID, topicID int64, completed bool) error
}

type SearchService interface {
	Search(ctx context.Context, target models.SearchTarget, title string, page models.PageRequest) (models.SearchPage, error)
}

// ErrorLogService persists internal server errors.
type ErrorLogService interface {
	Record(ctx context.Context, entry models.ErrorLog) error
}

type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
}

// AuthServiceWrapper defines middleware composition for AuthService.
// Implementations wrap an existing AuthService to add behavior such as
// validating.
type AuthServiceWrapper interface {
	Wrap(AuthService) AuthService
}

// ProfileServiceWrapper defines middleware composition for ProfileService.
type ProfileServiceWrapper interface {
	Wrap(ProfileService) ProfileService
}

// ContentServiceWrapper defines middleware composition for ContentService.
type ContentServiceWrapper interface {
	Wrap(ContentService) ContentService
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package store implements the PostgreSQL persistence layer of the learning
// platform server. Every table group is served by one repository; all of
// them share a single [*DB] connection pool.
package store

import (
	"context"
	"time"

	"github.com/MKhiriev/go-learning-platform/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// ErrorClassificator decides whether a driver error is transient.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}

// UserRepository persists accounts. Every lookup joins the profile so that
// the returned [models.User] carries FullName and ProfilePicture.
type UserRepository interface {
	// FindByIdentifier matches identifier against both email and username.
	FindByIdentifier(ctx context.Context, identifier string) (models.User, error)
	FindByEmail(ctx context.Context, email string) (models.User, error)
	FindByID(ctx context.Context, userID int64) (models.User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	UsernameExists(ctx context.Context, username string) (bool, error)

	// CreateUserWithProfile inserts the user and its profile in one
	// transaction and returns the user with the assigned identifier.
	CreateUserWithProfile(ctx context.Context, user models.User, profile models.Profile) (models.User, error)
}

// ProfileRepository persists the 1:1 profile extension of users.
type ProfileRepository interface {
	// FindByUserID returns the user with the complete profile.
	FindByUserID(ctx context.Context, userID int64) (models.User, error)
	// FindByUsername returns the user with the complete profile.
	FindByUsername(ctx context.Context, username string) (models.User, error)
	// GetProfile returns the profile row itself or [ErrProfileNotFound].
	GetProfile(ctx context.Context, userID int64) (models.Profile, error)
	Upsert(ctx context.Context, profile models.Profile) (models.Profile, error)
	UpdatePicture(ctx context.Context, userID int64, pictureURL string) (models.Profile, error)
}

// RefreshTokenRepository keeps the single live refresh token hash per user.
type RefreshTokenRepository interface {
	// Rotate drops every token of the user and stores tokenHash.
	Rotate(ctx context.Context, userID int64, tokenHash string, expiresAt time.Time) error
	// Replace swaps oldHash for newHash only if oldHash is the live token of
	// the user. Otherwise it returns [ErrRefreshTokenNotFound] and writes
	// nothing.
	Replace(ctx context.Context, userID int64, oldHash, newHash string, expiresAt time.Time) error
	// DeleteExpired removes tokens that expired before now and reports how
	// many rows were deleted.
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

// ContentRepository serves chapters, topics, questions and progress.
type ContentRepository interface {
	ListChapters(ctx context.Context, userID int64) ([]models.ChapterOverview, error)
	ListChaptersPaged(ctx context.Context, userID int64, page models.PageRequest) ([]models.ChapterOverview, int64, error)
	ListTopicsByChapter(ctx context.Context, userID, chapterID int64, page models.PageRequest) ([]models.TopicSummary, int64, error)

	CreateChapter(ctx context.Context, chapter models.Chapter) (models.Chapter, error)
	CreateTopic(ctx context.Context, topic models.Topic) (models.Topic, error)
	CreateQuestion(ctx context.Context, question models.Question) (models.Question, error)

	ChapterExists(ctx context.Context, chapterID int64) (bool, error)
	TopicExists(ctx context.Context, topicID int64) (bool, error)
	DifficultyExists(ctx context.Context, difficultyID int64) (bool, error)
	TypeExists(ctx context.Context, typeID int64) (bool, error)

	SetChapterProgress(ctx context.Context, userID, chapterID int64, completed bool) error
	SetTopicProgress(ctx context.Context, userID, topicID int64, completed bool) error
}

// SearchRepository runs case-insensitive title searches.
type SearchRepository interface {
	Search(ctx context.Context, target models.SearchTarget, title string, page models.PageRequest) ([]models.SearchItem, error)
}

// ErrorLogRepository persists internal server errors.
type ErrorLogRepository interface {
	Save(ctx context.Context, entry models.ErrorLog) error
}

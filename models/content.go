// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// Chapter is the top level of the content hierarchy.
type Chapter struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	UserID      *int64    `json:"user_id"`
	CreatedBy   *int64    `json:"created_by"`
	UpdatedBy   *int64    `json:"updated_by"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Topic belongs to a [Chapter] and groups questions.
type Topic struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	ChapterID   int64     `json:"chapter_id"`
	CreatedBy   *int64    `json:"created_by"`
	UpdatedBy   *int64    `json:"updated_by"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Question belongs to a [Topic] through SubtopicID.
type Question struct {
	ID               int64     `json:"id"`
	Title            *string   `json:"title"`
	Description      *string   `json:"description"`
	Question         string    `json:"question"`
	SubtopicID       *int64    `json:"subtopic_id"`
	DifficultyID     *int64    `json:"difficulty_id"`
	Explanation      *string   `json:"explanation"`
	ExplanationImage *string   `json:"explanation_image"`
	TimeLimit        *int      `json:"time_limit"`
	TypeID           int64     `json:"type_id"`
	TagID            *int64    `json:"tag_id"`
	IsActive         bool      `json:"is_active"`
	CreatedBy        *int64    `json:"created_by"`
	UpdatedBy        *int64    `json:"updated_by"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// CreateChapterInput is the body of the create chapter endpoint.
type CreateChapterInput struct {
	Title       string  `json:"title" validate:"required,min=3,max=255"`
	Description *string `json:"description" validate:"omitempty,max=1000"`
}

// CreateTopicInput is the body of the create topic endpoint.
type CreateTopicInput struct {
	Title       string  `json:"title" validate:"required,min=3,max=255"`
	Description *string `json:"description"`
	ChapterID   int64   `json:"chapter_id" validate:"required"`
}

// CreateQuestionInput is the body of the create question endpoint.
// IsActive defaults to true when omitted.
type CreateQuestionInput struct {
	Title        *string `json:"title" validate:"omitempty,max=255"`
	Description  *string `json:"description" validate:"omitempty,max=1000"`
	Question     string  `json:"question" validate:"required"`
	SubtopicID   *int64  `json:"subtopic_id"`
	DifficultyID *int64  `json:"difficulty_id"`
	Explanation  *string `json:"explanation" validate:"omitempty,max=2000"`
	TimeLimit    *int    `json:"time_limit" validate:"omitempty,min=10,max=600"`
	TypeID       int64   `json:"type_id" validate:"required"`
	TagID        *int64  `json:"tag_id"`
	IsActive     *bool   `json:"is_active"`
}

// ProgressInput marks a chapter or topic as completed or not.
type ProgressInput struct {
	IsCompleted bool `json:"is_completed"`
}

// ChapterOverview is a chapter together with the caller's progress on it.
// TopicProgress is rendered as "completed/total".
type ChapterOverview struct {
	ID               int64   `json:"id"`
	Title            string  `json:"title"`
	Description      *string `json:"description"`
	CompletionStatus bool    `json:"completion_status"`
	TopicProgress    string  `json:"topic_progress"`

	TotalTopics     int64 `json:"-"`
	CompletedTopics int64 `json:"-"`
}

// TopicSummary aggregates the caller's answer statistics for a topic.
type TopicSummary struct {
	TopicsID                     int64   `json:"topics_id"`
	TopicsName                   string  `json:"topics_name"`
	TotalQuestions               int64   `json:"total_questions"`
	TotalCorrectAnswers          int64   `json:"total_correct_answers"`
	TotalIncorrectAnswers        int64   `json:"total_incorrect_answers"`
	UserProgress                 int64   `json:"user_progress"`
	TopicsUserStrugglesWith      int64   `json:"topics_user_struggles_with"`
	AvgTimeTaken                 float64 `json:"avg_time_taken"`
	QuestionsCompletedWithinTime int64   `json:"questions_completed_within_time"`
	QuestionsExceededTimeLimit   int64   `json:"questions_exceeded_time_limit"`
}

// SearchItem is a row returned by the title search endpoints.
type SearchItem struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Description *string `json:"description"`
}

// SearchTarget names the catalogue a title search runs against.
type SearchTarget string

const (
	SearchChapters     SearchTarget = "chapters"
	SearchTopics       SearchTarget = "topics"
	SearchDifficulties SearchTarget = "difficulties"
	SearchTypes        SearchTarget = "types"
)

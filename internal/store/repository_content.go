package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-learning-platform/internal/logger"
	"github.com/MKhiriev/go-learning-platform/models"
	"github.com/jackc/pgerrcode"
)

// contentRepository is the PostgreSQL-backed implementation of
// [ContentRepository]. Listing queries are assembled with squirrel, see
// sql_queries.go.
type contentRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewContentRepository constructs a [ContentRepository].
func NewContentRepository(db *DB, logger *logger.Logger) ContentRepository {
	logger.Debug().Msg("creating content repository")
	return &contentRepository{
		db:     db,
		logger: logger,
	}
}

func (r *contentRepository) ListChapters(ctx context.Context, userID int64) ([]models.ChapterOverview, error) {
	query, args, err := buildListChaptersQuery(userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return r.queryChapters(ctx, "*contentRepository.ListChapters", query, args)
}

// ListChaptersPaged returns one page of chapters and the total number of
// chapters.
func (r *contentRepository) ListChaptersPaged(ctx context.Context, userID int64, page models.PageRequest) ([]models.ChapterOverview, int64, error) {
	query, args, err := buildListChaptersPagedQuery(userID, page)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	chapters, err := r.queryChapters(ctx, "*contentRepository.ListChaptersPaged", query, args)
	if err != nil {
		return nil, 0, err
	}

	total, err := r.count(ctx, "*contentRepository.ListChaptersPaged", countChapters)
	if err != nil {
		return nil, 0, err
	}

	return chapters, total, nil
}

// ListTopicsByChapter returns one page of topic statistics and the number
// of topics in the chapter. Only answers given by userID are aggregated.
func (r *contentRepository) ListTopicsByChapter(ctx context.Context, userID, chapterID int64, page models.PageRequest) ([]models.TopicSummary, int64, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildListTopicsQuery(userID, chapterID, page)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*contentRepository.ListTopicsByChapter").Int64("chapter_id", chapterID).Msg("failed to query topics")
		return nil, 0, fmt.Errorf("%w: %w", ErrExecutingQuery, r.db.dbError(err))
	}
	defer rows.Close()

	topics := make([]models.TopicSummary, 0, page.Limit)
	for rows.Next() {
		var t models.TopicSummary
		if err = rows.Scan(
			&t.TopicsID,
			&t.TopicsName,
			&t.TotalQuestions,
			&t.TotalCorrectAnswers,
			&t.TotalIncorrectAnswers,
			&t.UserProgress,
			&t.TopicsUserStrugglesWith,
			&t.AvgTimeTaken,
			&t.QuestionsCompletedWithinTime,
			&t.QuestionsExceededTimeLimit,
		); err != nil {
			log.Err(err).Str("func", "*contentRepository.ListTopicsByChapter").Msg("failed to scan topic row")
			return nil, 0, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		topics = append(topics, t)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	total, err := r.count(ctx, "*contentRepository.ListTopicsByChapter", countTopicsByChapter, chapterID)
	if err != nil {
		return nil, 0, err
	}

	return topics, total, nil
}

func (r *contentRepository) CreateChapter(ctx context.Context, chapter models.Chapter) (models.Chapter, error) {
	var c models.Chapter
	err := r.db.QueryRowContext(ctx, createChapter, chapter.Title, chapter.Description, chapter.UserID).Scan(
		&c.ID, &c.Title, &c.Description, &c.UserID, &c.CreatedBy, &c.UpdatedBy, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*contentRepository.CreateChapter").Msg("failed to create chapter")
		return models.Chapter{}, r.insertError(err)
	}

	return c, nil
}

func (r *contentRepository) CreateTopic(ctx context.Context, topic models.Topic) (models.Topic, error) {
	var t models.Topic
	err := r.db.QueryRowContext(ctx, createTopic, topic.Title, topic.Description, topic.ChapterID, topic.CreatedBy).Scan(
		&t.ID, &t.Title, &t.Description, &t.ChapterID, &t.CreatedBy, &t.UpdatedBy, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*contentRepository.CreateTopic").Int64("chapter_id", topic.ChapterID).Msg("failed to create topic")
		return models.Topic{}, r.insertError(err)
	}

	return t, nil
}

func (r *contentRepository) CreateQuestion(ctx context.Context, question models.Question) (models.Question, error) {
	var q models.Question
	err := r.db.QueryRowContext(ctx, createQuestion,
		question.Title,
		question.Description,
		question.Question,
		question.SubtopicID,
		question.DifficultyID,
		question.Explanation,
		question.ExplanationImage,
		question.TimeLimit,
		question.TypeID,
		question.TagID,
		question.IsActive,
		question.CreatedBy,
	).Scan(
		&q.ID, &q.Title, &q.Description, &q.Question, &q.SubtopicID, &q.DifficultyID, &q.Explanation,
		&q.ExplanationImage, &q.TimeLimit, &q.TypeID, &q.TagID, &q.IsActive, &q.CreatedBy, &q.UpdatedBy,
		&q.CreatedAt, &q.UpdatedAt,
	)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*contentRepository.CreateQuestion").Msg("failed to create question")
		return models.Question{}, r.insertError(err)
	}

	return q, nil
}

func (r *contentRepository) ChapterExists(ctx context.Context, chapterID int64) (bool, error) {
	return r.exists(ctx, chapterExists, chapterID)
}

func (r *contentRepository) TopicExists(ctx context.Context, topicID int64) (bool, error) {
	return r.exists(ctx, topicExists, topicID)
}

func (r *contentRepository) DifficultyExists(ctx context.Context, difficultyID int64) (bool, error) {
	return r.exists(ctx, difficultyExists, difficultyID)
}

func (r *contentRepository) TypeExists(ctx context.Context, typeID int64) (bool, error) {
	return r.exists(ctx, typeExists, typeID)
}

func (r *contentRepository) SetChapterProgress(ctx context.Context, userID, chapterID int64, completed bool) error {
	return r.setProgress(ctx, "*contentRepository.SetChapterProgress", upsertChapterProgress, userID, chapterID, completed)
}

func (r *contentRepository) SetTopicProgress(ctx context.Context, userID, topicID int64, completed bool) error {
	return r.setProgress(ctx, "*contentRepository.SetTopicProgress", upsertTopicProgress, userID, topicID, completed)
}

func (r *contentRepository) setProgress(ctx context.Context, funcName, query string, userID, itemID int64, completed bool) error {
	if _, err := r.db.ExecContext(ctx, query, userID, itemID, completed); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", funcName).Int64("user_id", userID).Int64("item_id", itemID).Msg("failed to save progress")
		return r.insertError(err)
	}

	return nil
}

func (r *contentRepository) queryChapters(ctx context.Context, funcName, query string, args []any) ([]models.ChapterOverview, error) {
	log := logger.FromContext(ctx)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", funcName).Msg("failed to query chapters")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, r.db.dbError(err))
	}
	defer rows.Close()

	chapters := make([]models.ChapterOverview, 0)
	for rows.Next() {
		var c models.ChapterOverview
		if err = rows.Scan(&c.ID, &c.Title, &c.Description, &c.CompletionStatus, &c.TotalTopics, &c.CompletedTopics); err != nil {
			log.Err(err).Str("func", funcName).Msg("failed to scan chapter row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		c.TopicProgress = fmt.Sprintf("%d/%d", c.CompletedTopics, c.TotalTopics)
		chapters = append(chapters, c)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return chapters, nil
}

func (r *contentRepository) count(ctx context.Context, funcName, query string, args ...any) (int64, error) {
	var total int64
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&total); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", funcName).Msg("failed to count rows")
		return 0, fmt.Errorf("%w: %w", ErrExecutingQuery, r.db.dbError(err))
	}

	return total, nil
}

func (r *contentRepository) exists(ctx context.Context, query string, id int64) (bool, error) {
	var found bool
	if err := r.db.QueryRowContext(ctx, query, id).Scan(&found); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*contentRepository.exists").Int64("id", id).Msg("failed to check existence")
		return false, r.db.dbError(err)
	}

	return found, nil
}

// insertError maps a foreign key violation to [ErrReferenceNotFound]. The
// service checks references before inserting, so this only fires when a
// referenced row is deleted concurrently.
func (r *contentRepository) insertError(err error) error {
	if postgresError(err) == pgerrcode.ForeignKeyViolation {
		return fmt.Errorf("%w: %w", ErrReferenceNotFound, err)
	}
	return r.db.dbError(err)
}

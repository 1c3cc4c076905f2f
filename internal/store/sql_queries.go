package store

import (
	"fmt"
	"strings"

	"github.com/MKhiriev/go-learning-platform/models"
	sq "github.com/Masterminds/squirrel"
)

const (
	userWithProfileColumns = `u.id, u.email, u.username, COALESCE(u.password, ''), u.provider, u.is_verified, u.is_active,
    COALESCE(u.sub, ''), u.created_at, u.updated_at, COALESCE(p.fullname, ''), COALESCE(p.profile_picture, '')`

	findUserByIdentifier = `SELECT ` + userWithProfileColumns + `
    FROM users u
    LEFT JOIN profiles p ON p.user_id = u.id
    WHERE u.email = $1 OR u.username = $1
    ORDER BY u.id
    LIMIT 1;`

	findUserByEmail = `SELECT ` + userWithProfileColumns + `
    FROM users u
    LEFT JOIN profiles p ON p.user_id = u.id
    WHERE u.email = $1;`

	findUserByID = `SELECT ` + userWithProfileColumns + `
    FROM users u
    LEFT JOIN profiles p ON p.user_id = u.id
    WHERE u.id = $1;`

	emailExists    = `SELECT EXISTS(SELECT 1 FROM users WHERE email = $1);`
	usernameExists = `SELECT EXISTS(SELECT 1 FROM users WHERE username = $1);`

	createUser = `INSERT INTO users (email, username, password, provider, is_verified, is_active, sub)
    VALUES ($1, $2, NULLIF($3, ''), $4, $5, $6, NULLIF($7, ''))
    RETURNING id, created_at, updated_at;`

	createProfile = `INSERT INTO profiles (user_id, fullname, profile_picture, created_by, updated_by)
    VALUES ($1, $2, $3, $1, $1)
    RETURNING id;`

	profileColumns = `id, user_id, fullname, profile_picture, phone_number, birth_date, address, city, country,
    gender, school, class, graduation_year, created_at, updated_at, created_by, updated_by`

	userWithFullProfileColumns = `u.id, u.email, u.username, u.provider, u.is_verified, u.is_active, u.created_at, u.updated_at,
    COALESCE(p.id, 0), COALESCE(p.fullname, ''), COALESCE(p.profile_picture, ''), p.phone_number, p.birth_date,
    p.address, p.city, p.country, p.gender, p.school, p.class, p.graduation_year, p.created_at, p.updated_at`

	findFullProfileByUserID = `SELECT ` + userWithFullProfileColumns + `
    FROM users u
    LEFT JOIN profiles p ON p.user_id = u.id
    WHERE u.id = $1;`

	findFullProfileByUsername = `SELECT ` + userWithFullProfileColumns + `
    FROM users u
    LEFT JOIN profiles p ON p.user_id = u.id
    WHERE u.username = $1;`

	getProfile = `SELECT ` + profileColumns + `
    FROM profiles
    WHERE user_id = $1;`

	upsertProfile = `INSERT INTO profiles (
            user_id, fullname, profile_picture, phone_number, birth_date, address, city,
            country, gender, school, class, graduation_year, created_by, updated_by
        ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $1, $1)
        ON CONFLICT (user_id) DO UPDATE SET
            fullname = EXCLUDED.fullname,
            profile_picture = EXCLUDED.profile_picture,
            phone_number = EXCLUDED.phone_number,
            birth_date = EXCLUDED.birth_date,
            address = EXCLUDED.address,
            city = EXCLUDED.city,
            country = EXCLUDED.country,
            gender = EXCLUDED.gender,
            school = EXCLUDED.school,
            class = EXCLUDED.class,
            graduation_year = EXCLUDED.graduation_year,
            updated_by = EXCLUDED.updated_by,
            updated_at = NOW()
        RETURNING ` + profileColumns + `;`

	updateProfilePicture = `UPDATE profiles
    SET profile_picture = $2, updated_by = $1, updated_at = NOW()
    WHERE user_id = $1
    RETURNING ` + profileColumns + `;`

	deleteUserRefreshTokens = `DELETE FROM refresh_tokens WHERE user_id = $1;`

	upsertRefreshToken = `INSERT INTO refresh_tokens (user_id, token_hash, expires_at)
    VALUES ($1, $2, $3)
    ON CONFLICT (user_id) DO UPDATE SET
        token_hash = EXCLUDED.token_hash,
        expires_at = EXCLUDED.expires_at,
        created_at = NOW();`

	consumeRefreshToken = `DELETE FROM refresh_tokens
    WHERE user_id = $1 AND token_hash = $2 AND expires_at > NOW()
    RETURNING id;`

	deleteExpiredRefreshTokens = `DELETE FROM refresh_tokens WHERE expires_at < $1;`

	chapterColumns  = `id, title, description, user_id, created_by, updated_by, created_at, updated_at`
	topicColumns    = `id, title, description, chapter_id, created_by, updated_by, created_at, updated_at`
	questionColumns = `id, title, description, question, subtopic_id, difficulty_id, explanation, explanation_image,
    time_limit, type_id, tag_id, is_active, created_by, updated_by, created_at, updated_at`

	createChapter = `INSERT INTO chapter (title, description, user_id, created_by, updated_by)
    VALUES ($1, $2, $3, $3, $3)
    RETURNING ` + chapterColumns + `;`

	createTopic = `INSERT INTO topics (title, description, chapter_id, created_by, updated_by)
    VALUES ($1, $2, $3, $4, $4)
    RETURNING ` + topicColumns + `;`

	createQuestion = `INSERT INTO questions (
            title, description, question, subtopic_id, difficulty_id, explanation, explanation_image,
            time_limit, type_id, tag_id, is_active, created_by, updated_by
        ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $12)
        RETURNING ` + questionColumns + `;`

	chapterExists    = `SELECT EXISTS(SELECT 1 FROM chapter WHERE id = $1);`
	topicExists      = `SELECT EXISTS(SELECT 1 FROM topics WHERE id = $1);`
	difficultyExists = `SELECT EXISTS(SELECT 1 FROM difficulty WHERE id = $1);`
	typeExists       = `SELECT EXISTS(SELECT 1 FROM "type" WHERE id = $1);`

	countChapters        = `SELECT COUNT(*) FROM chapter;`
	countTopicsByChapter = `SELECT COUNT(*) FROM topics WHERE chapter_id = $1;`

	upsertChapterProgress = `INSERT INTO chapter_progress (user_id, chapter_id, is_completed)
    VALUES ($1, $2, $3)
    ON CONFLICT (user_id, chapter_id) DO UPDATE SET
        is_completed = EXCLUDED.is_completed,
        updated_at = NOW();`

	upsertTopicProgress = `INSERT INTO topic_progress (user_id, topics_id, is_completed)
    VALUES ($1, $2, $3)
    ON CONFLICT (user_id, topics_id) DO UPDATE SET
        is_completed = EXCLUDED.is_completed,
        updated_at = NOW();`

	insertErrorLog = `INSERT INTO error_log (feature_name, process_id, user_id, error, error_message, error_stack)
    VALUES ($1, $2, $3, $4, $5, $6);`
)

// psql renders squirrel builders with PostgreSQL $n placeholders.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// chapterSortColumns maps accepted sort_by values to ORDER BY expressions.
// nama and nama_chapter are kept for clients of the first API version.
var chapterSortColumns = map[string]string{
	"id":                "c.id",
	"title":             "c.title",
	"description":       "c.description",
	"completion_status": "completion_status",
	"nama":              "c.title",
	"nama_chapter":      "c.description",
}

var topicSortColumns = map[string]string{
	"topics_name":           "topics_name",
	"total_questions":       "total_questions",
	"total_correct_answers": "total_correct_answers",
	"avg_time_taken":        "avg_time_taken",
}

var searchTables = map[models.SearchTarget]string{
	models.SearchChapters:     "chapter",
	models.SearchTopics:       "topics",
	models.SearchDifficulties: "difficulty",
	models.SearchTypes:        `"type"`,
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func orderDirection(order models.SortOrder) string {
	if order == models.SortDesc {
		return "DESC"
	}
	return "ASC"
}

func sortColumn(columns map[string]string, sortBy, fallback string) string {
	if column, ok := columns[sortBy]; ok {
		return column
	}
	return fallback
}

func chapterOverviewQuery(userID int64) sq.SelectBuilder {
	return psql.
		Select(
			"c.id",
			"c.title",
			"c.description",
			"COALESCE(cp.is_completed, false) AS completion_status",
			"COUNT(DISTINCT t.id) AS total_topics",
			"COUNT(DISTINCT CASE WHEN tp.is_completed THEN t.id END) AS completed_topics",
		).
		From("chapter c").
		LeftJoin("chapter_progress cp ON cp.chapter_id = c.id AND cp.user_id = ?", userID).
		LeftJoin("topics t ON t.chapter_id = c.id").
		LeftJoin("topic_progress tp ON tp.topics_id = t.id AND tp.user_id = ?", userID).
		GroupBy("c.id", "c.title", "c.description", "cp.is_completed")
}

// buildListChaptersQuery selects every chapter with the progress of userID.
func buildListChaptersQuery(userID int64) (string, []any, error) {
	return chapterOverviewQuery(userID).OrderBy("c.id ASC").ToSql()
}

// buildListChaptersPagedQuery selects one page of chapters ordered by a
// whitelisted column. Unknown sort keys fall back to the chapter id.
func buildListChaptersPagedQuery(userID int64, page models.PageRequest) (string, []any, error) {
	column := sortColumn(chapterSortColumns, page.SortBy, "c.id")

	return chapterOverviewQuery(userID).
		OrderBy(column+" "+orderDirection(page.SortOrder), "c.id ASC").
		Limit(uint64(page.Limit)).
		Offset(uint64(page.Offset())).
		ToSql()
}

// buildListTopicsQuery aggregates the answer statistics of userID for every
// topic of chapterID.
func buildListTopicsQuery(userID, chapterID int64, page models.PageRequest) (string, []any, error) {
	column := sortColumn(topicSortColumns, page.SortBy, "topics_name")

	return psql.
		Select(
			"t.id AS topics_id",
			"t.title AS topics_name",
			"COUNT(DISTINCT q.id) AS total_questions",
			"COALESCE(SUM(CASE WHEN msa.is_correct = true THEN 1 ELSE 0 END), 0) AS total_correct_answers",
			"COALESCE(SUM(CASE WHEN msa.is_correct = false THEN 1 ELSE 0 END), 0) AS total_incorrect_answers",
			"COUNT(DISTINCT tp.id) AS user_progress",
			"COUNT(DISTINCT q.id) - COUNT(DISTINCT CASE WHEN msa.is_correct = true THEN msa.question_id END) AS topics_user_struggles_with",
			"COALESCE(AVG(msa.time_taken), 0)::float8 AS avg_time_taken",
			"COUNT(DISTINCT CASE WHEN msa.time_taken <= q.time_limit THEN msa.id END) AS questions_completed_within_time",
			"COUNT(DISTINCT CASE WHEN msa.time_taken > q.time_limit THEN msa.id END) AS questions_exceeded_time_limit",
		).
		From("topics t").
		LeftJoin("questions q ON q.subtopic_id = t.id").
		LeftJoin("multiple_student_answers_abcd msa ON msa.question_id = q.id AND msa.user_id = ?"+
			" AND msa.is_correct IS NOT NULL AND msa.selected_answer IS NOT NULL", userID).
		LeftJoin("topic_progress tp ON tp.topics_id = t.id AND tp.user_id = ?", userID).
		Where(sq.Eq{"t.chapter_id": chapterID}).
		GroupBy("t.id", "t.title").
		OrderBy(column+" "+orderDirection(page.SortOrder), "t.id ASC").
		Limit(uint64(page.Limit)).
		Offset(uint64(page.Offset())).
		ToSql()
}

// buildSearchQuery matches title as a literal substring, case-insensitively.
func buildSearchQuery(target models.SearchTarget, title string, page models.PageRequest) (string, []any, error) {
	table, ok := searchTables[target]
	if !ok {
		return "", nil, fmt.Errorf("%w: unknown search target %q", ErrBuildingSQLQuery, target)
	}

	return psql.
		Select("id", "title", "description").
		From(table).
		Where(sq.ILike{"title": "%" + likeEscaper.Replace(title) + "%"}).
		OrderBy("title ASC", "id ASC").
		Limit(uint64(page.Limit)).
		Offset(uint64(page.Offset())).
		ToSql()
}

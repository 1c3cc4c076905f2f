package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/MKhiriev/go-learning-platform/internal/logger"
	"github.com/MKhiriev/go-learning-platform/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var profileRowColumns = []string{
	"id", "user_id", "fullname", "profile_picture", "phone_number", "birth_date", "address", "city", "country",
	"gender", "school", "class", "graduation_year", "created_at", "updated_at", "created_by", "updated_by",
}

var fullProfileColumns = []string{
	"id", "email", "username", "provider", "is_verified", "is_active", "created_at", "updated_at",
	"profile_id", "fullname", "profile_picture", "phone_number", "birth_date", "address", "city", "country",
	"gender", "school", "class", "graduation_year", "profile_created_at", "profile_updated_at",
}

func newTestProfileRepo(t *testing.T) (*profileRepository, sqlmock.Sqlmock) {
	db, mock, sqlDB := newMockDB(t)
	t.Cleanup(func() { sqlDB.Close() })
	return &profileRepository{db: db, logger: logger.Nop()}, mock
}

func TestProfileFindByUserID_WithProfile(t *testing.T) {
	repo, mock := newTestProfileRepo(t)

	now := time.Now()
	birth := time.Date(2005, 3, 14, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery("WHERE u.id = \\$1").
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows(fullProfileColumns).AddRow(
			5, "ann@mail.com", "ann", "local", false, true, now, now,
			2, "Ann Lee", "https://cdn/ann.png", "+628123456789", birth, nil, "Jakarta", "ID",
			"female", "SMA 1", "12", 2026, now, now,
		))

	user, err := repo.FindByUserID(context.Background(), 5)
	require.NoError(t, err)

	assert.Equal(t, "ann", user.Username)
	assert.Equal(t, int64(2), user.Profile.ID)
	assert.Equal(t, int64(5), user.Profile.UserID)
	assert.Equal(t, "Ann Lee", user.Profile.FullName)
	require.NotNil(t, user.Profile.PhoneNumber)
	assert.Equal(t, "+628123456789", *user.Profile.PhoneNumber)
	assert.Nil(t, user.Profile.Address)
	require.NotNil(t, user.Profile.GraduationYear)
	assert.Equal(t, 2026, *user.Profile.GraduationYear)
	assert.False(t, user.Profile.CreatedAt.IsZero())
}

func TestProfileFindByUsername_WithoutProfileRow(t *testing.T) {
	repo, mock := newTestProfileRepo(t)

	now := time.Now()
	mock.ExpectQuery("WHERE u.username = \\$1").
		WithArgs("ann").
		WillReturnRows(sqlmock.NewRows(fullProfileColumns).AddRow(
			5, "ann@mail.com", "ann", "local", false, true, now, now,
			0, "", "", nil, nil, nil, nil, nil, nil, nil, nil, nil, nil, nil,
		))

	user, err := repo.FindByUsername(context.Background(), "ann")
	require.NoError(t, err)

	assert.Zero(t, user.Profile.ID)
	assert.True(t, user.Profile.CreatedAt.IsZero())
	assert.Nil(t, user.Profile.City)
}

func TestProfileFindByUsername_NotFound(t *testing.T) {
	repo, mock := newTestProfileRepo(t)

	mock.ExpectQuery("WHERE u.username = \\$1").
		WithArgs("ghost").
		WillReturnRows(sqlmock.NewRows(fullProfileColumns))

	_, err := repo.FindByUsername(context.Background(), "ghost")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestGetProfile_NotFound(t *testing.T) {
	repo, mock := newTestProfileRepo(t)

	mock.ExpectQuery("FROM profiles").
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows(profileRowColumns))

	_, err := repo.GetProfile(context.Background(), 5)
	assert.ErrorIs(t, err, ErrProfileNotFound)
}

func profileRow(now time.Time, picture string) *sqlmock.Rows {
	return sqlmock.NewRows(profileRowColumns).AddRow(
		2, 5, "Ann Lee", picture, nil, nil, nil, "Jakarta", nil,
		nil, nil, nil, nil, now, now, 5, 5,
	)
}

func TestUpsertProfile_Success(t *testing.T) {
	repo, mock := newTestProfileRepo(t)

	city := "Jakarta"
	now := time.Now()
	profile := models.Profile{UserID: 5, FullName: "Ann Lee", ProfilePicture: "https://cdn/a.png", City: &city}

	mock.ExpectQuery("INSERT INTO profiles(.|\\n)*ON CONFLICT \\(user_id\\) DO UPDATE").
		WithArgs(int64(5), "Ann Lee", "https://cdn/a.png", nil, nil, nil, "Jakarta", nil, nil, nil, nil, nil).
		WillReturnRows(profileRow(now, "https://cdn/a.png"))

	saved, err := repo.Upsert(context.Background(), profile)
	require.NoError(t, err)

	assert.Equal(t, int64(2), saved.ID)
	assert.Equal(t, "https://cdn/a.png", saved.ProfilePicture)
	require.NotNil(t, saved.CreatedBy)
	assert.Equal(t, int64(5), *saved.CreatedBy)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpsertProfile_DBError(t *testing.T) {
	repo, mock := newTestProfileRepo(t)

	mock.ExpectQuery("INSERT INTO profiles").WillReturnError(errors.New("boom"))

	_, err := repo.Upsert(context.Background(), models.Profile{UserID: 5})
	assert.ErrorContains(t, err, "unexpected DB error")
}

func TestUpdatePicture(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		repo, mock := newTestProfileRepo(t)

		mock.ExpectQuery("UPDATE profiles").
			WithArgs(int64(5), "https://cdn/new.png").
			WillReturnRows(profileRow(time.Now(), "https://cdn/new.png"))

		profile, err := repo.UpdatePicture(context.Background(), 5, "https://cdn/new.png")
		require.NoError(t, err)
		assert.Equal(t, "https://cdn/new.png", profile.ProfilePicture)
	})

	t.Run("no profile", func(t *testing.T) {
		repo, mock := newTestProfileRepo(t)

		mock.ExpectQuery("UPDATE profiles").
			WithArgs(int64(5), "https://cdn/new.png").
			WillReturnRows(sqlmock.NewRows(profileRowColumns))

		_, err := repo.UpdatePicture(context.Background(), 5, "https://cdn/new.png")
		assert.ErrorIs(t, err, ErrProfileNotFound)
	})
}

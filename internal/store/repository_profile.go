package store

import (
	"context"
	"database/sql"
	"errors"

	"github.com/MKhiriev/go-learning-platform/internal/logger"
	"github.com/MKhiriev/go-learning-platform/models"
)

// profileRepository is the PostgreSQL-backed implementation of
// [ProfileRepository] over the "profiles" table.
type profileRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewProfileRepository constructs a [ProfileRepository].
func NewProfileRepository(db *DB, logger *logger.Logger) ProfileRepository {
	logger.Debug().Msg("creating profile repository")
	return &profileRepository{
		db:     db,
		logger: logger,
	}
}

func (r *profileRepository) FindByUserID(ctx context.Context, userID int64) (models.User, error) {
	return r.findFull(ctx, "*profileRepository.FindByUserID", findFullProfileByUserID, userID)
}

func (r *profileRepository) FindByUsername(ctx context.Context, username string) (models.User, error) {
	return r.findFull(ctx, "*profileRepository.FindByUsername", findFullProfileByUsername, username)
}

func (r *profileRepository) GetProfile(ctx context.Context, userID int64) (models.Profile, error) {
	profile, err := scanProfile(r.db.QueryRowContext(ctx, getProfile, userID))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Profile{}, ErrProfileNotFound
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*profileRepository.GetProfile").Int64("user_id", userID).Msg("error getting profile")
		return models.Profile{}, r.db.dbError(err)
	}

	return profile, nil
}

// Upsert creates the profile of profile.UserID or overwrites every editable
// column of the existing one.
func (r *profileRepository) Upsert(ctx context.Context, profile models.Profile) (models.Profile, error) {
	log := logger.FromContext(ctx)

	saved, err := scanProfile(r.db.QueryRowContext(ctx, upsertProfile,
		profile.UserID,
		profile.FullName,
		profile.ProfilePicture,
		profile.PhoneNumber,
		profile.BirthDate,
		profile.Address,
		profile.City,
		profile.Country,
		profile.Gender,
		profile.School,
		profile.Class,
		profile.GraduationYear,
	))
	if err != nil {
		log.Err(err).Str("func", "*profileRepository.Upsert").Int64("user_id", profile.UserID).Msg("error saving profile")
		return models.Profile{}, r.db.dbError(err)
	}

	log.Info().Str("func", "*profileRepository.Upsert").Int64("user_id", profile.UserID).Msg("profile saved")
	return saved, nil
}

func (r *profileRepository) UpdatePicture(ctx context.Context, userID int64, pictureURL string) (models.Profile, error) {
	profile, err := scanProfile(r.db.QueryRowContext(ctx, updateProfilePicture, userID, pictureURL))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Profile{}, ErrProfileNotFound
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*profileRepository.UpdatePicture").Int64("user_id", userID).Msg("error updating profile picture")
		return models.Profile{}, r.db.dbError(err)
	}

	return profile, nil
}

func (r *profileRepository) findFull(ctx context.Context, funcName, query string, arg any) (models.User, error) {
	var (
		user                 models.User
		createdAt, updatedAt sql.NullTime
	)
	p := &user.Profile

	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&user.UserID,
		&user.Email,
		&user.Username,
		&user.Provider,
		&user.IsVerified,
		&user.IsActive,
		&user.CreatedAt,
		&user.UpdatedAt,
		&p.ID,
		&p.FullName,
		&p.ProfilePicture,
		&p.PhoneNumber,
		&p.BirthDate,
		&p.Address,
		&p.City,
		&p.Country,
		&p.Gender,
		&p.School,
		&p.Class,
		&p.GraduationYear,
		&createdAt,
		&updatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, ErrUserNotFound
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", funcName).Msg("error finding profile")
		return models.User{}, r.db.dbError(err)
	}

	p.UserID = user.UserID
	// zero timestamps mean the user has no profile row yet
	p.CreatedAt = createdAt.Time
	p.UpdatedAt = updatedAt.Time

	return user, nil
}

func scanProfile(row rowScanner) (models.Profile, error) {
	var p models.Profile
	err := row.Scan(
		&p.ID,
		&p.UserID,
		&p.FullName,
		&p.ProfilePicture,
		&p.PhoneNumber,
		&p.BirthDate,
		&p.Address,
		&p.City,
		&p.Country,
		&p.Gender,
		&p.School,
		&p.Class,
		&p.GraduationYear,
		&p.CreatedAt,
		&p.UpdatedAt,
		&p.CreatedBy,
		&p.UpdatedBy,
	)
	return p, err
}

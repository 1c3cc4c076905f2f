package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-learning-platform/internal/logger"
	"github.com/MKhiriev/go-learning-platform/models"
	"github.com/jackc/pgerrcode"
)

const (
	usersEmailConstraint    = "users_email_key"
	usersUsernameConstraint = "users_username_key"
)

// rowScanner is satisfied by both [*sql.Row] and [*sql.Rows].
type rowScanner interface {
	Scan(dest ...any) error
}

// userRepository is the PostgreSQL-backed implementation of [UserRepository].
// It handles account creation and lookup against the "users" table joined
// with "profiles".
//
// All methods obtain a context-scoped logger via [logger.FromContext] for
// structured, request-level tracing of database interactions.
type userRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewUserRepository constructs a [UserRepository] backed by the provided
// database connection and logger.
func NewUserRepository(db *DB, logger *logger.Logger) UserRepository {
	logger.Debug().Msg("creating user repository")
	return &userRepository{
		db:     db,
		logger: logger,
	}
}

func (r *userRepository) FindByIdentifier(ctx context.Context, identifier string) (models.User, error) {
	return r.findOne(ctx, "*userRepository.FindByIdentifier", findUserByIdentifier, identifier)
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (models.User, error) {
	return r.findOne(ctx, "*userRepository.FindByEmail", findUserByEmail, email)
}

func (r *userRepository) FindByID(ctx context.Context, userID int64) (models.User, error) {
	return r.findOne(ctx, "*userRepository.FindByID", findUserByID, userID)
}

func (r *userRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	return r.exists(ctx, "*userRepository.EmailExists", emailExists, email)
}

func (r *userRepository) UsernameExists(ctx context.Context, username string) (bool, error) {
	return r.exists(ctx, "*userRepository.UsernameExists", usernameExists, username)
}

// CreateUserWithProfile inserts the user and its profile in one transaction.
//
// Error handling:
//   - unique_violation on users.email → [ErrEmailAlreadyExists].
//   - unique_violation on users.username → [ErrUsernameAlreadyExists].
//   - Any other driver-level error → wrapped as "unexpected DB error".
func (r *userRepository) CreateUserWithProfile(ctx context.Context, user models.User, profile models.Profile) (models.User, error) {
	log := logger.FromContext(ctx)

	err := r.db.inTx(ctx, "*userRepository.CreateUserWithProfile", func(tx *sql.Tx) error {
		row := tx.QueryRowContext(ctx, createUser,
			user.Email, user.Username, user.PasswordHash, user.Provider,
			user.IsVerified, user.IsActive, user.Subject)
		if err := row.Scan(&user.UserID, &user.CreatedAt, &user.UpdatedAt); err != nil {
			log.Err(err).Str("func", "*userRepository.CreateUserWithProfile").Msg("error inserting user")
			return r.createUserError(err)
		}

		row = tx.QueryRowContext(ctx, createProfile, user.UserID, profile.FullName, profile.ProfilePicture)
		if err := row.Scan(&profile.ID); err != nil {
			log.Err(err).Str("func", "*userRepository.CreateUserWithProfile").Int64("user_id", user.UserID).Msg("error inserting profile")
			return r.db.dbError(err)
		}

		return nil
	})
	if err != nil {
		return models.User{}, err
	}

	profile.UserID = user.UserID
	user.Profile = profile

	log.Info().Str("func", "*userRepository.CreateUserWithProfile").Int64("user_id", user.UserID).Msg("user created")
	return user, nil
}

func (r *userRepository) createUserError(err error) error {
	switch {
	case isUniqueViolation(err, usersEmailConstraint):
		return ErrEmailAlreadyExists
	case isUniqueViolation(err, usersUsernameConstraint):
		return ErrUsernameAlreadyExists
	case postgresError(err) == pgerrcode.UniqueViolation:
		return fmt.Errorf("%w: %w", ErrEmailAlreadyExists, err)
	default:
		return r.db.dbError(err)
	}
}

func (r *userRepository) findOne(ctx context.Context, funcName, query string, arg any) (models.User, error) {
	log := logger.FromContext(ctx)

	user, err := scanUser(r.db.QueryRowContext(ctx, query, arg))
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, ErrUserNotFound
	}
	if err != nil {
		log.Err(err).Str("func", funcName).Msg("error finding user")
		return models.User{}, r.db.dbError(err)
	}

	return user, nil
}

func (r *userRepository) exists(ctx context.Context, funcName, query string, arg any) (bool, error) {
	var found bool
	if err := r.db.QueryRowContext(ctx, query, arg).Scan(&found); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", funcName).Msg("error checking existence")
		return false, r.db.dbError(err)
	}

	return found, nil
}

func scanUser(row rowScanner) (models.User, error) {
	var user models.User
	err := row.Scan(
		&user.UserID,
		&user.Email,
		&user.Username,
		&user.PasswordHash,
		&user.Provider,
		&user.IsVerified,
		&user.IsActive,
		&user.Subject,
		&user.CreatedAt,
		&user.UpdatedAt,
		&user.Profile.FullName,
		&user.Profile.ProfilePicture,
	)
	if err != nil {
		return models.User{}, err
	}

	user.Profile.UserID = user.UserID
	return user, nil
}

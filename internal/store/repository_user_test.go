package store

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/MKhiriev/go-learning-platform/internal/logger"
	"github.com/MKhiriev/go-learning-platform/models"
	"github.com/jackc/pgerrcode"
)

var userColumns = []string{
	"id", "email", "username", "password", "provider", "is_verified", "is_active",
	"sub", "created_at", "updated_at", "fullname", "profile_picture",
}

func newTestUserRepo(t *testing.T) (*userRepository, sqlmock.Sqlmock, func()) {
	db, mock, sqlDB := newMockDB(t)
	repo := &userRepository{db: db, logger: logger.Nop()}
	return repo, mock, func() { sqlDB.Close() }
}

func TestFindByIdentifier_Success(t *testing.T) {
	repo, mock, closeDB := newTestUserRepo(t)
	defer closeDB()

	now := time.Now()
	rows := sqlmock.NewRows(userColumns).
		AddRow(7, "john@mail.com", "john", "$argon2id$hash", "local", false, true, "", now, now, "John Doe", "")

	mock.ExpectQuery("WHERE u.email = \\$1 OR u.username = \\$1").
		WithArgs("john").
		WillReturnRows(rows)

	user, err := repo.FindByIdentifier(context.Background(), "john")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.UserID != 7 || user.Email != "john@mail.com" || user.Username != "john" {
		t.Errorf("unexpected user: %+v", user)
	}
	if user.Provider != models.ProviderLocal || !user.HasPassword() {
		t.Errorf("expected local user with password, got %+v", user)
	}
	if user.Profile.FullName != "John Doe" || user.Profile.UserID != 7 {
		t.Errorf("expected joined profile, got %+v", user.Profile)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestFindByIdentifier_NotFound(t *testing.T) {
	repo, mock, closeDB := newTestUserRepo(t)
	defer closeDB()

	mock.ExpectQuery("FROM users u").
		WithArgs("ghost").
		WillReturnRows(sqlmock.NewRows(userColumns))

	_, err := repo.FindByIdentifier(context.Background(), "ghost")
	if !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestFindByEmail_UnexpectedError(t *testing.T) {
	repo, mock, closeDB := newTestUserRepo(t)
	defer closeDB()

	mock.ExpectQuery("WHERE u.email = \\$1;").
		WithArgs("john@mail.com").
		WillReturnError(errors.New("db failure"))

	_, err := repo.FindByEmail(context.Background(), "john@mail.com")
	if err == nil || !strings.Contains(err.Error(), "unexpected DB error") {
		t.Fatalf("expected wrapped unexpected DB error, got %v", err)
	}
}

func TestFindByID_TransientError(t *testing.T) {
	repo, mock, closeDB := newTestUserRepo(t)
	defer closeDB()

	mock.ExpectQuery("WHERE u.id = \\$1").
		WithArgs(int64(7)).
		WillReturnError(pgError(pgerrcode.ConnectionFailure))

	_, err := repo.FindByID(context.Background(), 7)
	if !errors.Is(err, ErrTemporarilyUnavailable) {
		t.Fatalf("expected ErrTemporarilyUnavailable, got %v", err)
	}
}

func TestFindByID_GoogleUserWithoutPassword(t *testing.T) {
	repo, mock, closeDB := newTestUserRepo(t)
	defer closeDB()

	now := time.Now()
	mock.ExpectQuery("WHERE u.id = \\$1").
		WithArgs(int64(9)).
		WillReturnRows(sqlmock.NewRows(userColumns).
			AddRow(9, "g@mail.com", "g", "", "google", true, true, "firebase-uid", now, now, "G", "https://cdn/p.png"))

	user, err := repo.FindByID(context.Background(), 9)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.HasPassword() {
		t.Error("google user must not have a password")
	}
	if user.Subject != "firebase-uid" || user.Profile.ProfilePicture != "https://cdn/p.png" {
		t.Errorf("unexpected user: %+v", user)
	}
}

func TestUsernameExists(t *testing.T) {
	repo, mock, closeDB := newTestUserRepo(t)
	defer closeDB()

	mock.ExpectQuery("SELECT EXISTS\\(SELECT 1 FROM users WHERE username").
		WithArgs("john").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectQuery("SELECT EXISTS\\(SELECT 1 FROM users WHERE email").
		WithArgs("free@mail.com").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

	taken, err := repo.UsernameExists(context.Background(), "john")
	if err != nil || !taken {
		t.Fatalf("expected taken username, got %v, %v", taken, err)
	}

	taken, err = repo.EmailExists(context.Background(), "free@mail.com")
	if err != nil || taken {
		t.Fatalf("expected free email, got %v, %v", taken, err)
	}
}

func TestCreateUserWithProfile_Success(t *testing.T) {
	repo, mock, closeDB := newTestUserRepo(t)
	defer closeDB()

	now := time.Now()
	user := models.User{
		Email:        "john@mail.com",
		Username:     "john",
		PasswordHash: "hash",
		Provider:     models.ProviderLocal,
		IsActive:     true,
	}
	profile := models.Profile{FullName: "John Doe"}

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO users").
		WithArgs("john@mail.com", "john", "hash", "local", false, true, "").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(11, now, now))
	mock.ExpectQuery("INSERT INTO profiles").
		WithArgs(int64(11), "John Doe", "").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(3))
	mock.ExpectCommit()

	created, err := repo.CreateUserWithProfile(context.Background(), user, profile)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.UserID != 11 {
		t.Errorf("expected UserID=11, got %d", created.UserID)
	}
	if created.Profile.ID != 3 || created.Profile.UserID != 11 || created.Profile.FullName != "John Doe" {
		t.Errorf("unexpected profile: %+v", created.Profile)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestCreateUserWithProfile_UniqueViolations(t *testing.T) {
	tests := []struct {
		name       string
		constraint string
		want       error
	}{
		{name: "email", constraint: usersEmailConstraint, want: ErrEmailAlreadyExists},
		{name: "username", constraint: usersUsernameConstraint, want: ErrUsernameAlreadyExists},
		{name: "unknown constraint", constraint: "other", want: ErrEmailAlreadyExists},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, closeDB := newTestUserRepo(t)
			defer closeDB()

			mock.ExpectBegin()
			mock.ExpectQuery("INSERT INTO users").
				WillReturnError(pgConstraintError(pgerrcode.UniqueViolation, tt.constraint))
			mock.ExpectRollback()

			_, err := repo.CreateUserWithProfile(context.Background(), models.User{Email: "a@b.c"}, models.Profile{})
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
			if err := mock.ExpectationsWereMet(); err != nil {
				t.Errorf("unmet expectations: %v", err)
			}
		})
	}
}

func TestCreateUserWithProfile_ProfileFailureRollsBack(t *testing.T) {
	repo, mock, closeDB := newTestUserRepo(t)
	defer closeDB()

	now := time.Now()
	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO users").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(11, now, now))
	mock.ExpectQuery("INSERT INTO profiles").
		WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	_, err := repo.CreateUserWithProfile(context.Background(), models.User{}, models.Profile{})
	if err == nil || !strings.Contains(err.Error(), "unexpected DB error") {
		t.Fatalf("expected wrapped unexpected DB error, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestCreateUserWithProfile_BeginFails(t *testing.T) {
	repo, mock, closeDB := newTestUserRepo(t)
	defer closeDB()

	mock.ExpectBegin().WillReturnError(errors.New("no connection"))

	_, err := repo.CreateUserWithProfile(context.Background(), models.User{}, models.Profile{})
	if !errors.Is(err, ErrBeginningTransaction) {
		t.Fatalf("expected ErrBeginningTransaction, got %v", err)
	}
}

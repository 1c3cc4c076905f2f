package store

import "errors"

// Domain errors. Services translate these into their own sentinels.
var (
	ErrUserNotFound          = errors.New("user not found")
	ErrEmailAlreadyExists    = errors.New("email already exists")    // users_email_key
	ErrUsernameAlreadyExists = errors.New("username already exists") // users_username_key
	ErrProfileNotFound       = errors.New("profile not found")

	// ErrRefreshTokenNotFound means the compare-and-swap found no live row
	// for the presented token hash.
	ErrRefreshTokenNotFound = errors.New("refresh token not found")

	// ErrReferenceNotFound reports a foreign key violation, e.g. a topic
	// created under a chapter that does not exist.
	ErrReferenceNotFound = errors.New("referenced row not found")

	// ErrTemporarilyUnavailable is added to driver errors the classifier
	// marks as retryable.
	ErrTemporarilyUnavailable = errors.New("database temporarily unavailable")
)

// Operation errors wrap the driver error of the step that failed.
var (
	ErrBuildingSQLQuery     = errors.New("error building sql query")
	ErrExecutingQuery       = errors.New("error executing sql query")
	ErrExecutingStatement   = errors.New("failed to execute statement")
	ErrScanningRow          = errors.New("failed to scan row")
	ErrScanningRows         = errors.New("failed to scan rows")
	ErrBeginningTransaction = errors.New("failed to begin transaction")
	ErrCommitingTransaction = errors.New("failed to commit transaction")
)

package service

import "errors"

// Sentinel errors returned by the services. The text of each value is the
// message shown to clients.
var (
	ErrInvalidCredentials   = errors.New("invalid email/username or password")
	ErrInvalidToken         = errors.New("invalid token")
	ErrInvalidExternalToken = errors.New("invalid firebase token")
	ErrEmailNotFoundInToken = errors.New("invalid firebase token: email not found")
	ErrProviderMismatch     = errors.New("this email is already registered with a different provider")
	ErrAccountInactive      = errors.New("account is inactive")
	ErrUserCreationFailed   = errors.New("failed to create user")
	ErrTokenGeneration      = errors.New("failed to generate authentication tokens")

	ErrRefreshTokenRequired = errors.New("refresh token is required")
	ErrInvalidRefreshToken  = errors.New("invalid refresh token")

	ErrEmailAlreadyRegistered = errors.New("email already registered")
	ErrUsernameTaken          = errors.New("username already taken")

	ErrTokenIsExpired          = errors.New("token is expired")
	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")

	ErrUserNotFound        = errors.New("user not found")
	ErrProfileNotFound     = errors.New("profile not found")
	ErrPictureUploadFailed = errors.New("failed to upload profile picture")
	ErrNoFileUploaded      = errors.New("no file uploaded")
	ErrInvalidBirthDate    = errors.New("birth_date must be a valid date in YYYY-MM-DD format")

	ErrChapterNotFound    = errors.New("chapter not found")
	ErrTopicNotFound      = errors.New("topic not found")
	ErrDifficultyNotFound = errors.New("difficulty level not found")
	ErrTypeNotFound       = errors.New("question type not found")
	ErrImageUploadFailed  = errors.New("failed to upload image")

	ErrVersionIsNotSpecified = errors.New("app version is not specified")
	ErrMissingTokenSignKey   = errors.New("token sign key is not specified")
	ErrMissingTokenIssuer    = errors.New("token issuer is not specified")
	ErrInvalidTokenDuration  = errors.New("token duration must be positive")
)

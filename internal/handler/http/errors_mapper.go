package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-learning-platform/internal/service"
	"github.com/MKhiriev/go-learning-platform/internal/store"
	"github.com/MKhiriev/go-learning-platform/internal/utils"
	"github.com/MKhiriev/go-learning-platform/internal/validators"
)

type errorStatus struct {
	target error
	status int
}

// errorStatusMap is matched top to bottom. Sentinels that wrap others must
// come first: Refresh wraps the token expiry errors inside
// ErrInvalidRefreshToken and GoogleLogin wraps adapter errors inside
// ErrInvalidExternalToken.
var errorStatusMap = []errorStatus{
	{service.ErrInvalidRefreshToken, http.StatusForbidden},
	{service.ErrInvalidExternalToken, http.StatusUnauthorized},
	{service.ErrUserCreationFailed, http.StatusInternalServerError},
	{service.ErrTokenGeneration, http.StatusInternalServerError},

	{service.ErrRefreshTokenRequired, http.StatusBadRequest},
	{service.ErrInvalidToken, http.StatusBadRequest},
	{service.ErrEmailNotFoundInToken, http.StatusUnauthorized},
	{service.ErrInvalidCredentials, http.StatusUnauthorized},
	{service.ErrTokenIsExpired, http.StatusForbidden},
	{service.ErrTokenIsExpiredOrInvalid, http.StatusForbidden},
	{service.ErrProviderMismatch, http.StatusForbidden},
	{service.ErrAccountInactive, http.StatusForbidden},
	{service.ErrEmailAlreadyRegistered, http.StatusConflict},
	{service.ErrUsernameTaken, http.StatusConflict},

	{service.ErrUserNotFound, http.StatusNotFound},
	{service.ErrProfileNotFound, http.StatusNotFound},
	{service.ErrPictureUploadFailed, http.StatusBadRequest},
	{service.ErrNoFileUploaded, http.StatusBadRequest},
	{service.ErrInvalidBirthDate, http.StatusBadRequest},
	{validators.ErrInvalidUsername, http.StatusBadRequest},

	{service.ErrChapterNotFound, http.StatusNotFound},
	{service.ErrTopicNotFound, http.StatusNotFound},
	{service.ErrDifficultyNotFound, http.StatusNotFound},
	{service.ErrTypeNotFound, http.StatusNotFound},
	{service.ErrImageUploadFailed, http.StatusBadRequest},

	{ErrUnauthorized, http.StatusUnauthorized},
	{ErrInvalidToken, http.StatusForbidden},
	{ErrInvalidRequestBody, http.StatusBadRequest},
	{ErrInvalidPathParam, http.StatusBadRequest},
	{ErrUploadTooLarge, http.StatusRequestEntityTooLarge},
	{ErrTooManyRequests, http.StatusTooManyRequests},
	{utils.ErrEmptyBody, http.StatusBadRequest},

	{store.ErrTemporarilyUnavailable, http.StatusServiceUnavailable},
}

// statusFromError resolves the response status of err and the sentinel whose
// text becomes the response message. The sentinel is nil for unknown errors,
// which are always 500.
func statusFromError(err error) (int, error) {
	for _, e := range errorStatusMap {
		if errors.Is(err, e.target) {
			return e.status, e.target
		}
	}
	return http.StatusInternalServerError, nil
}

// validationError extracts the field errors produced by the validating
// service decorators.
func validationError(err error) (*validators.ValidationError, bool) {
	var vErr *validators.ValidationError
	if errors.As(err, &vErr) {
		return vErr, true
	}
	return nil, false
}

package adapter

import "errors"

var (
	ErrBadRequest          = errors.New("bad request")
	ErrUnauthorized        = errors.New("unauthorized")
	ErrForbidden           = errors.New("forbidden")
	ErrNotFound            = errors.New("not found")
	ErrConflict            = errors.New("conflict")
	ErrTooManyRequests     = errors.New("too many requests")
	ErrBadGateway          = errors.New("bad gateway")
	ErrInternalServerError = errors.New("internal server error")

	// ErrInvalidIDToken is returned by [IdentityVerifier.Verify] for tokens
	// that fail any check.
	ErrInvalidIDToken = errors.New("invalid id token")
	// ErrCertificatesUnavailable is returned when the signing certificates
	// cannot be fetched or parsed.
	ErrCertificatesUnavailable = errors.New("signing certificates unavailable")
	// ErrMissingConfig is returned by constructors when a required setting
	// is empty.
	ErrMissingConfig = errors.New("adapter configuration is incomplete")
)

package crypto

import "errors"

var (
	// ErrInvalidHash is returned for password hashes that are not valid
	// Argon2id PHC strings.
	ErrInvalidHash = errors.New("invalid password hash")
	// ErrInvalidKey is returned when the cipher key or IV has the wrong size
	// or is not hex encoded.
	ErrInvalidKey = errors.New("invalid encryption key")
	// ErrInvalidSubject is returned when a subject cannot be decrypted into
	// a user id.
	ErrInvalidSubject = errors.New("invalid subject")
)

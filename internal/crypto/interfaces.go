// Package crypto holds the server-side primitives that protect credentials
// and identifiers: Argon2id password hashing and the reversible cipher that
// hides user ids inside tokens and API responses.
package crypto

//go:generate mockgen -source=interfaces.go -destination=../mock/crypto_mock.go -package=mock

// PasswordHasher hashes and verifies user passwords.
type PasswordHasher interface {
	// Hash returns a self-describing PHC string
	// ($argon2id$v=19$m=...,t=...,p=...$salt$hash) for plaintext.
	Hash(plaintext string) (string, error)

	// Verify reports whether plaintext matches encoded. It never panics and
	// returns false for malformed or unsupported encodings.
	Verify(encoded, plaintext string) bool
}

// SubjectCipher reversibly encrypts internal user ids into the opaque
// subject that is exposed to clients.
type SubjectCipher interface {
	// Encrypt returns the hex-encoded ciphertext of userID.
	Encrypt(userID int64) (string, error)

	// Decrypt recovers the user id from a value produced by Encrypt.
	Decrypt(subject string) (int64, error)
}

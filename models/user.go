// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// Provider marks where the credentials of a [User] come from.
type Provider string

const (
	// ProviderLocal is an account that signs in with a password.
	ProviderLocal Provider = "local"
	// ProviderGoogle is an account provisioned by a verified Google identity.
	ProviderGoogle Provider = "google"
)

// User represents an account entity used for authentication and authorization.
// It contains identity attributes and credential-related data.
// Sensitive fields must never be exposed outside trusted boundaries.
type User struct {
	// UserID is the internal unique identifier of the user.
	// It is never serialized; outward-facing payloads carry the encrypted form.
	UserID int64 `json:"-"`

	// Email is globally unique across all providers.
	Email string `json:"email"`

	// Username is globally unique and used as a login identifier.
	Username string `json:"username"`

	// PasswordHash is the self-describing Argon2id hash of the password.
	// Empty for federated-only accounts.
	PasswordHash string `json:"-"`

	// Provider is the credential origin of the account.
	Provider Provider `json:"provider"`

	IsVerified bool `json:"is_verified"`
	IsActive   bool `json:"is_active"`

	// Subject is the identifier assigned by the external identity provider.
	Subject string `json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Profile carries the display attributes joined from the profiles table.
	// Only FullName and ProfilePicture are populated by identity lookups.
	Profile Profile `json:"-"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}

// HasPassword reports whether the account can authenticate with a local password.
func (u User) HasPassword() bool {
	return u.PasswordHash != ""
}

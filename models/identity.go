// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// Identity is the authenticated caller, resolved from a verified access token.
// It is produced by the auth middleware and passed explicitly into services.
type Identity struct {
	UserID   int64
	Email    string
	Username string
}

// ExternalIdentity holds the verified claims of a third-party identity token.
type ExternalIdentity struct {
	Subject       string
	Email         string
	EmailVerified bool
	Name          string
	Picture       string
}

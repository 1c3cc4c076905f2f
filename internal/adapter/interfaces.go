// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides the outbound integrations of the learning
// platform server.
//
// Two abstractions decouple the service layer from third-party APIs:
//   - [IdentityVerifier] validates Firebase ID tokens presented by clients
//     signing in with Google ([NewFirebaseVerifier]).
//   - [FileStorage] stores uploaded images on the ImageKit CDN
//     ([NewImageKitStorage]).
//
// Both talk REST through resty. Error values defined in errors.go are mapped
// from HTTP status codes by mapHTTPError so that callers can use [errors.Is].
package adapter

import (
	"context"

	"github.com/MKhiriev/go-learning-platform/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/adapter_mock.go -package=mock

// IdentityVerifier validates third-party identity tokens.
type IdentityVerifier interface {
	// Verify checks the signature, audience, issuer and lifetime of idToken
	// and returns the identity it asserts. Any failure is reported wrapped
	// in [ErrInvalidIDToken].
	Verify(ctx context.Context, idToken string) (models.ExternalIdentity, error)
}

// FileStorage stores public files and returns their URLs.
type FileStorage interface {
	// Upload stores content under name and returns the public URL.
	Upload(ctx context.Context, name string, content []byte) (string, error)

	// Delete removes the file served at fileURL. A URL that is empty or not
	// known to the storage is not an error.
	Delete(ctx context.Context, fileURL string) error
}

// Package utils holds small helpers shared by the transport and service
// layers: request identity in context, bearer token parsing, JSON decoding,
// hashing, JWT handling and id generation.
package utils

import (
	"context"

	"github.com/MKhiriev/go-learning-platform/models"
)

// identityKey is unexported so no other package can overwrite the value.
type identityKey struct{}

// WithIdentity returns a copy of ctx that carries the authenticated caller.
func WithIdentity(ctx context.Context, identity models.Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, identity)
}

// GetIdentityFromContext returns the caller stored by [WithIdentity]. ok is
// false on routes that skipped authentication.
func GetIdentityFromContext(ctx context.Context) (identity models.Identity, ok bool) {
	identity, ok = ctx.Value(identityKey{}).(models.Identity)
	return identity, ok
}

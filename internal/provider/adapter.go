// Package provider defines the capability interface every identity provider
// implements, the raw user info they return, and the error taxonomy callers
// see. Concrete providers live in subpackages.
package provider

import (
	"context"

	"social_media_auth/internal/shared"
)

// Adapter signs a user in and out of one provider.
type Adapter interface {
	ID() shared.ProviderID

	// SignIn runs the provider's interactive sign-in. Failures are *AdapterError.
	SignIn(ctx context.Context) (RawUserInfo, error)

	// SignOut ends the provider session. Failures are *AdapterError.
	SignOut(ctx context.Context) error

	// IsConnected reports the live session state held by the provider SDK,
	// never a locally cached flag.
	IsConnected(ctx context.Context) bool
}

package google

import (
	"context"
	"errors"

	"social_media_auth/internal/provider"
)

// Failures an SDK reports; the adapter maps them to provider error kinds.
var (
	ErrSignInCancelled          = errors.New("google sign-in cancelled")
	ErrPlayServicesNotAvailable = errors.New("google play services not available")
	ErrInProgress               = errors.New("google sign-in already in progress")
)

// SDK is the Google Sign-In surface the adapter needs.
type SDK interface {
	HasPlayServices(ctx context.Context) error
	SignIn(ctx context.Context) (*provider.GoogleUserInfo, error)
	SignOut(ctx context.Context) error
	IsSignedIn(ctx context.Context) (bool, error)
}

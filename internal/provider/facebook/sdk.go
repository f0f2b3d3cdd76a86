package facebook

import (
	"context"
	"time"
)

// LoginResult is the outcome of the login dialog. A declined dialog is a
// result with IsCancelled set, not an error.
type LoginResult struct {
	IsCancelled         bool
	GrantedPermissions  []string
	DeclinedPermissions []string
}

// AccessToken is the SDK's current token.
type AccessToken struct {
	AccessToken    string
	UserID         string
	Permissions    []string
	ExpirationTime time.Time // zero when the token does not expire
}

// Active reports a non-empty token that has not expired at now.
func (t *AccessToken) Active(now time.Time) bool {
	if t == nil || t.AccessToken == "" {
		return false
	}
	return t.ExpirationTime.IsZero() || now.Before(t.ExpirationTime)
}

type LoginManager interface {
	LogInWithPermissions(ctx context.Context, permissions []string) (*LoginResult, error)
	LogOut(ctx context.Context) error
}

type TokenProvider interface {
	// CurrentAccessToken returns nil without error when there is no token.
	CurrentAccessToken(ctx context.Context) (*AccessToken, error)
}

// SDK is the full Facebook Login surface.
type SDK interface {
	LoginManager
	TokenProvider
}

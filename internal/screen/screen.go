package screen

import (
	"context"

	"social_media_auth/internal/session"
	"social_media_auth/internal/shared"
)

const (
	TitleError   = "Error"
	TitleSuccess = "Success"
)

// Alert is a modal message for the user.
type Alert struct {
	Title   string
	Message string
}

// Session is what the screens need from the session controller.
type Session interface {
	SignIn(ctx context.Context, id shared.ProviderID) (shared.Profile, error)
	SignOut(ctx context.Context, id shared.ProviderID) error
	Refresh(ctx context.Context) shared.ConnectionStatus
	Status() shared.ConnectionStatus
	State() shared.SessionState
	Profile(ctx context.Context) (*shared.Profile, error)
}

var _ Session = (*session.Controller)(nil)

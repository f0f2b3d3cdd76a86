// Package facebook signs users in with Facebook Login and reads their
// profile from the Graph API.
package facebook

import (
	"context"
	"errors"
	"time"

	"social_media_auth/internal/provider"
	"social_media_auth/internal/shared"

	"go.uber.org/zap"
)

const (
	msgCancelled        = "Facebook login was cancelled"
	msgTokenUnavailable = "Something went wrong obtaining access token"
	msgProfile          = "Could not load your Facebook profile. Check your connection and try again."
)

// Adapter implements provider.Adapter. Sign-in is two phase: the login dialog
// first, then the profile fetch with the resulting token.
type Adapter struct {
	login       LoginManager
	tokens      TokenProvider
	graph       Profiler
	permissions []string
	now         func() time.Time
	logger      *zap.Logger
}

var _ provider.Adapter = (*Adapter)(nil)

func NewAdapter(login LoginManager, tokens TokenProvider, graph Profiler, permissions []string, logger *zap.Logger) *Adapter {
	return &Adapter{
		login:       login,
		tokens:      tokens,
		graph:       graph,
		permissions: permissions,
		now:         time.Now,
		logger:      logger.Named("FacebookAdapter"),
	}
}

func (a *Adapter) ID() shared.ProviderID { return shared.ProviderFacebook }

func (a *Adapter) SignIn(ctx context.Context) (provider.RawUserInfo, error) {
	res, err := a.login.LogInWithPermissions(ctx, a.permissions)
	if err != nil {
		a.logger.Info("Facebook login failed", zap.Error(err))
		return nil, provider.Classify(shared.ProviderFacebook, err, provider.KindUnknown, "Facebook login failed")
	}
	if res == nil {
		return nil, provider.NewError(shared.ProviderFacebook, provider.KindUnknown, "Facebook login failed", errors.New("sdk returned no login result"))
	}
	if res.IsCancelled {
		return nil, provider.NewError(shared.ProviderFacebook, provider.KindUserCancelled, msgCancelled, nil)
	}
	if len(res.DeclinedPermissions) > 0 {
		a.logger.Info("User declined permissions", zap.Strings("declined", res.DeclinedPermissions))
	}

	tok, err := a.tokens.CurrentAccessToken(ctx)
	if err != nil || tok == nil || tok.AccessToken == "" {
		if err == nil {
			err = errors.New("no current access token")
		}
		a.logger.Warn("Access token unavailable after login", zap.Error(err))
		return nil, provider.NewError(shared.ProviderFacebook, provider.KindTokenUnavailable, msgTokenUnavailable, err)
	}

	user, err := a.graph.Me(ctx, tok.AccessToken)
	if err != nil {
		a.logger.Warn("Graph profile fetch failed", zap.Error(err))
		return nil, provider.NewError(shared.ProviderFacebook, provider.KindNetworkError, msgProfile, err)
	}
	if user == nil {
		return nil, provider.NewError(shared.ProviderFacebook, provider.KindNetworkError, msgProfile, errors.New("empty graph response"))
	}
	return *user, nil
}

func (a *Adapter) SignOut(ctx context.Context) error {
	if err := a.login.LogOut(ctx); err != nil {
		a.logger.Error("Facebook logout failed", zap.Error(err))
		return provider.Classify(shared.ProviderFacebook, err, provider.KindUnknown, "Failed to disconnect from Facebook")
	}
	return nil
}

// IsConnected reports whether the SDK holds an active access token.
func (a *Adapter) IsConnected(ctx context.Context) bool {
	tok, err := a.tokens.CurrentAccessToken(ctx)
	if err != nil {
		a.logger.Warn("Could not query Facebook session", zap.Error(err))
		return false
	}
	return tok.Active(a.now())
}

package google

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync/atomic"

	"social_media_auth/internal/config"
	"social_media_auth/internal/kvstore"
	"social_media_auth/internal/provider"
	"social_media_auth/internal/provider/oauthflow"
	"social_media_auth/internal/shared"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
	googleoauth "golang.org/x/oauth2/google"
	oauth2api "google.golang.org/api/oauth2/v2"
	"google.golang.org/api/option"
)

// OAuthSDK is an SDK backed by the installed-app OAuth flow. The stored token
// is the session.
type OAuthSDK struct {
	oauth   *oauth2.Config
	offline bool
	authz   oauthflow.Authorizer
	tokens  *oauthflow.TokenStore
	apiOpts []option.ClientOption
	logger  *zap.Logger

	busy atomic.Bool
}

var _ SDK = (*OAuthSDK)(nil)

// Option customizes an OAuthSDK.
type Option func(*OAuthSDK)

// WithEndpoint replaces Google's authorization and token endpoints.
func WithEndpoint(e oauth2.Endpoint) Option {
	return func(s *OAuthSDK) { s.oauth.Endpoint = e }
}

// WithAPIOptions is passed to the userinfo API client.
func WithAPIOptions(opts ...option.ClientOption) Option {
	return func(s *OAuthSDK) { s.apiOpts = append(s.apiOpts, opts...) }
}

func NewOAuthSDK(cfg *config.Config, authz oauthflow.Authorizer, kv kvstore.Store, logger *zap.Logger, opts ...Option) *OAuthSDK {
	s := &OAuthSDK{
		oauth: &oauth2.Config{
			ClientID:     cfg.GoogleClientID(),
			ClientSecret: cfg.GoogleClientSecret,
			Endpoint:     googleoauth.Endpoint,
			Scopes:       withOpenID(cfg.GoogleScopes),
		},
		offline: cfg.GoogleOfflineAccess,
		authz:   authz,
		tokens:  oauthflow.NewTokenStore(kv, shared.ProviderGoogle),
		logger:  logger.Named("GoogleOAuthSDK"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// withOpenID makes sure the token response carries an ID token.
func withOpenID(scopes []string) []string {
	if slices.Contains(scopes, "openid") {
		return scopes
	}
	return append([]string{"openid"}, scopes...)
}

// HasPlayServices fails when no client is registered for the platform.
func (s *OAuthSDK) HasPlayServices(context.Context) error {
	if s.oauth.ClientID == "" {
		return fmt.Errorf("%w: no client id configured", ErrPlayServicesNotAvailable)
	}
	return nil
}

func (s *OAuthSDK) SignIn(ctx context.Context) (*provider.GoogleUserInfo, error) {
	if !s.busy.CompareAndSwap(false, true) {
		return nil, ErrInProgress
	}
	defer s.busy.Store(false)

	var opts []oauth2.AuthCodeOption
	if s.offline {
		opts = append(opts, oauth2.AccessTypeOffline, oauth2.ApprovalForce)
	}
	grant, err := s.authz.Authorize(ctx, s.oauth, opts...)
	if err != nil {
		return nil, err
	}
	if grant.Cancelled {
		return nil, fmt.Errorf("%w: %s", ErrSignInCancelled, grant.Reason)
	}

	info, err := s.userInfo(ctx, grant.Token)
	if err != nil {
		return nil, err
	}
	if err := s.tokens.Save(ctx, grant.Token); err != nil {
		return nil, err
	}
	return info, nil
}

func (s *OAuthSDK) SignOut(ctx context.Context) error {
	return s.tokens.Clear(ctx)
}

// IsSignedIn reports a stored token that is still valid or can be refreshed.
func (s *OAuthSDK) IsSignedIn(ctx context.Context) (bool, error) {
	tok, err := s.tokens.Load(ctx)
	if err != nil || tok == nil {
		return false, err
	}
	return tok.Valid() || tok.RefreshToken != "", nil
}

type idTokenClaims struct {
	Email      string `json:"email"`
	Name       string `json:"name"`
	Picture    string `json:"picture"`
	GivenName  string `json:"given_name"`
	FamilyName string `json:"family_name"`
	jwt.RegisteredClaims
}

// userInfo reads the profile from the ID token and falls back to the
// userinfo endpoint when the token is absent or lacks profile claims.
// The ID token came straight from the token endpoint over TLS, so its
// signature is not checked.
func (s *OAuthSDK) userInfo(ctx context.Context, tok *oauth2.Token) (*provider.GoogleUserInfo, error) {
	info := &provider.GoogleUserInfo{Scopes: s.oauth.Scopes}
	if scope, _ := tok.Extra("scope").(string); scope != "" {
		info.Scopes = strings.Fields(scope)
	}

	if raw, _ := tok.Extra("id_token").(string); raw != "" {
		info.IDToken = raw
		var claims idTokenClaims
		if _, _, err := jwt.NewParser().ParseUnverified(raw, &claims); err != nil {
			s.logger.Warn("Could not read ID token claims", zap.Error(err))
		} else if claims.Subject != "" && claims.Name != "" {
			info.User = provider.GoogleUser{
				ID:         claims.Subject,
				Name:       claims.Name,
				Email:      claims.Email,
				Photo:      claims.Picture,
				GivenName:  claims.GivenName,
				FamilyName: claims.FamilyName,
			}
			return info, nil
		}
	}

	opts := append([]option.ClientOption{option.WithTokenSource(s.oauth.TokenSource(ctx, tok))}, s.apiOpts...)
	svc, err := oauth2api.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating userinfo client: %w", err)
	}
	ui, err := svc.Userinfo.Get().Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("fetching google userinfo: %w", err)
	}
	info.User = provider.GoogleUser{
		ID:         ui.Id,
		Name:       ui.Name,
		Email:      ui.Email,
		Photo:      ui.Picture,
		GivenName:  ui.GivenName,
		FamilyName: ui.FamilyName,
	}
	return info, nil
}

package facebook

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"social_media_auth/internal/config"
	"social_media_auth/internal/kvstore"
	"social_media_auth/internal/provider/oauthflow"
	"social_media_auth/internal/shared"

	"go.uber.org/zap"
	"golang.org/x/oauth2"
	fboauth "golang.org/x/oauth2/facebook"
)

const permissionsKey = "sdk.facebook.permissions"

// OAuthSDK is an SDK backed by the Facebook Login web dialog.
type OAuthSDK struct {
	oauth  *oauth2.Config
	authz  oauthflow.Authorizer
	kv     kvstore.Store
	tokens *oauthflow.TokenStore
	logger *zap.Logger
}

var _ SDK = (*OAuthSDK)(nil)

// Option customizes an OAuthSDK.
type Option func(*OAuthSDK)

// WithEndpoint replaces Facebook's dialog and token endpoints.
func WithEndpoint(e oauth2.Endpoint) Option {
	return func(s *OAuthSDK) { s.oauth.Endpoint = e }
}

func NewOAuthSDK(cfg *config.Config, authz oauthflow.Authorizer, kv kvstore.Store, logger *zap.Logger, opts ...Option) *OAuthSDK {
	s := &OAuthSDK{
		oauth: &oauth2.Config{
			ClientID:     cfg.FacebookAppID,
			ClientSecret: cfg.FacebookAppSecret,
			Endpoint:     fboauth.Endpoint,
		},
		authz:  authz,
		kv:     kv,
		tokens: oauthflow.NewTokenStore(kv, shared.ProviderFacebook),
		logger: logger.Named("FacebookOAuthSDK"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// LogInWithPermissions runs the dialog. The web dialog does not report which
// permissions were granted, so all requested ones are assumed granted.
func (s *OAuthSDK) LogInWithPermissions(ctx context.Context, permissions []string) (*LoginResult, error) {
	if s.oauth.ClientID == "" {
		return nil, errors.New("facebook app id is not configured")
	}
	flowCfg := *s.oauth
	flowCfg.Scopes = permissions

	grant, err := s.authz.Authorize(ctx, &flowCfg)
	if err != nil {
		return nil, err
	}
	if grant.Cancelled {
		s.logger.Info("Login dialog declined", zap.String("reason", grant.Reason))
		return &LoginResult{IsCancelled: true}, nil
	}

	if err := s.tokens.Save(ctx, grant.Token); err != nil {
		return nil, err
	}
	if err := s.kv.Set(ctx, permissionsKey, strings.Join(permissions, ",")); err != nil {
		return nil, fmt.Errorf("saving permissions: %w", err)
	}
	return &LoginResult{GrantedPermissions: permissions}, nil
}

func (s *OAuthSDK) LogOut(ctx context.Context) error {
	if err := s.tokens.Clear(ctx); err != nil {
		return err
	}
	if err := s.kv.Remove(ctx, permissionsKey); err != nil {
		return fmt.Errorf("clearing permissions: %w", err)
	}
	return nil
}

// CurrentAccessToken carries no UserID; the dialog flow does not return one.
func (s *OAuthSDK) CurrentAccessToken(ctx context.Context) (*AccessToken, error) {
	tok, err := s.tokens.Load(ctx)
	if err != nil || tok == nil {
		return nil, err
	}
	at := &AccessToken{AccessToken: tok.AccessToken, ExpirationTime: tok.Expiry}
	raw, ok, err := s.kv.Get(ctx, permissionsKey)
	if err != nil {
		return nil, fmt.Errorf("loading permissions: %w", err)
	}
	if ok && raw != "" {
		at.Permissions = strings.Split(raw, ",")
	}
	return at, nil
}

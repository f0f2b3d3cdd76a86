// Package oauthflow runs the OAuth 2.0 authorization code flow for an
// installed application: the browser is sent to the provider and the redirect
// comes back to a short lived loopback listener.
package oauthflow

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"social_media_auth/internal/middleware"
	"social_media_auth/internal/platform/crypto"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
)

var (
	ErrStateMismatch = errors.New("oauth state mismatch")
	ErrMissingCode   = errors.New("authorization code missing from redirect")
)

// AuthorizationError is an error redirect other than the user declining.
type AuthorizationError struct {
	Code        string
	Description string
}

func (e *AuthorizationError) Error() string {
	if e.Description == "" {
		return "authorization failed: " + e.Code
	}
	return fmt.Sprintf("authorization failed: %s: %s", e.Code, e.Description)
}

// Grant is the outcome of one interactive authorization. A declined consent
// screen is a Grant with Cancelled set, not an error.
type Grant struct {
	Token     *oauth2.Token
	Cancelled bool
	Reason    string
}

// Authorizer runs an interactive authorization for cfg.
type Authorizer interface {
	Authorize(ctx context.Context, cfg *oauth2.Config, opts ...oauth2.AuthCodeOption) (*Grant, error)
}

// Opener presents the authorization URL to the user, usually in a browser.
type Opener func(ctx context.Context, authURL string) error

// LogOpener asks the user, through the log, to open the URL themselves.
func LogOpener(logger *zap.Logger) Opener {
	return func(_ context.Context, authURL string) error {
		logger.Info("Open this URL in a browser to continue signing in", zap.String("url", authURL))
		return nil
	}
}

// ReceiverConfig says where the loopback listener binds.
type ReceiverConfig struct {
	Host string
	Port int // 0 picks a free port
	Path string
}

// Receiver is an Authorizer backed by a loopback HTTP listener.
type Receiver struct {
	cfg    ReceiverConfig
	open   Opener
	logger *zap.Logger
}

var _ Authorizer = (*Receiver)(nil)

func NewReceiver(cfg ReceiverConfig, open Opener, logger *zap.Logger) *Receiver {
	if cfg.Path == "" {
		cfg.Path = "/oauth/callback"
	}
	return &Receiver{cfg: cfg, open: open, logger: logger.Named("OAuthReceiver")}
}

type callback struct {
	code      string
	cancelled bool
	reason    string
	err       error
}

// Authorize blocks until the redirect arrives, ctx is done, or the listener fails.
// cfg is not modified; its RedirectURL is replaced by the loopback address.
func (r *Receiver) Authorize(ctx context.Context, cfg *oauth2.Config, opts ...oauth2.AuthCodeOption) (*Grant, error) {
	ln, err := net.Listen("tcp", net.JoinHostPort(r.cfg.Host, strconv.Itoa(r.cfg.Port)))
	if err != nil {
		return nil, fmt.Errorf("starting redirect listener: %w", err)
	}

	flowCfg := *cfg
	flowCfg.RedirectURL = "http://" + ln.Addr().String() + r.cfg.Path

	state, err := crypto.GenerateSecureRandomString(crypto.StateBytes)
	if err != nil {
		ln.Close()
		return nil, fmt.Errorf("generating oauth state: %w", err)
	}
	verifier := oauth2.GenerateVerifier()

	results := make(chan callback, 1)
	srv := &http.Server{
		Handler:           r.handler(state, results),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			r.logger.Error("Redirect listener stopped", zap.Error(err))
		}
	}()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			r.logger.Warn("Redirect listener did not shut down cleanly", zap.Error(err))
		}
	}()

	authOpts := append([]oauth2.AuthCodeOption{oauth2.S256ChallengeOption(verifier)}, opts...)
	if err := r.open(ctx, flowCfg.AuthCodeURL(state, authOpts...)); err != nil {
		return nil, fmt.Errorf("opening authorization page: %w", err)
	}
	r.logger.Debug("Waiting for authorization redirect", zap.String("redirect_url", flowCfg.RedirectURL))

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case cb := <-results:
		if cb.err != nil {
			return nil, cb.err
		}
		if cb.cancelled {
			return &Grant{Cancelled: true, Reason: cb.reason}, nil
		}
		tok, err := flowCfg.Exchange(ctx, cb.code, oauth2.VerifierOption(verifier))
		if err != nil {
			return nil, fmt.Errorf("exchanging authorization code: %w", err)
		}
		return &Grant{Token: tok}, nil
	}
}

// handler serves the redirect path. Only the first callback is delivered.
func (r *Receiver) handler(state string, results chan<- callback) http.Handler {
	engine := gin.New()
	engine.Use(middleware.ZapLogger(r.logger), gin.Recovery())
	engine.GET(r.cfg.Path, func(c *gin.Context) {
		cb := parseCallback(c, state)
		select {
		case results <- cb:
		default:
		}

		switch {
		case cb.err != nil:
			_ = c.Error(cb.err)
			c.String(http.StatusBadRequest, "Sign-in failed. You can close this window.")
		case cb.cancelled:
			c.String(http.StatusOK, "Sign-in cancelled. You can close this window.")
		default:
			c.String(http.StatusOK, "Signed in. You can return to the app.")
		}
	})
	return engine
}

func parseCallback(c *gin.Context, state string) callback {
	if c.Query("state") != state {
		return callback{err: ErrStateMismatch}
	}
	if code := c.Query("error"); code != "" {
		if code == "access_denied" {
			reason := c.Query("error_reason")
			if reason == "" {
				reason = c.Query("error_description")
			}
			return callback{cancelled: true, reason: reason}
		}
		return callback{err: &AuthorizationError{Code: code, Description: c.Query("error_description")}}
	}
	code := c.Query("code")
	if code == "" {
		return callback{err: ErrMissingCode}
	}
	return callback{code: code}
}

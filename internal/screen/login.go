package screen

import (
	"context"
	"sync/atomic"

	"social_media_auth/internal/common"
	"social_media_auth/internal/config"
	"social_media_auth/internal/shared"

	"go.uber.org/zap"
)

type LoginButton struct {
	Provider shared.ProviderID
	Label    string
	Disabled bool
}

type LoginView struct {
	Title   string
	Buttons []LoginButton
}

// LoginScreen offers one sign-in button per provider. While a sign-in is
// running every button is disabled.
type LoginScreen struct {
	session Session
	nav     *Navigator
	title   string
	logger  *zap.Logger

	busy atomic.Bool
}

func NewLoginScreen(cfg *config.Config, s Session, nav *Navigator, logger *zap.Logger) *LoginScreen {
	return &LoginScreen{
		session: s,
		nav:     nav,
		title:   "Welcome to " + cfg.AppDisplayName,
		logger:  logger.Named("LoginScreen"),
	}
}

func (l *LoginScreen) View() LoginView {
	busy := l.busy.Load()
	buttons := make([]LoginButton, 0, len(shared.Providers))
	for _, id := range shared.Providers {
		buttons = append(buttons, LoginButton{
			Provider: id,
			Label:    "Sign in with " + id.DisplayName(),
			Disabled: busy,
		})
	}
	return LoginView{Title: l.title, Buttons: buttons}
}

// SignIn returns nil on success or when a sign-in is already running, and the
// alert to show otherwise. Success replaces the login route with the dashboard.
func (l *LoginScreen) SignIn(ctx context.Context, id shared.ProviderID) *Alert {
	if !l.busy.CompareAndSwap(false, true) {
		l.logger.Debug("Ignoring sign-in while another is running", zap.String("provider", string(id)))
		return nil
	}
	defer l.busy.Store(false)

	if _, err := l.session.SignIn(ctx, id); err != nil {
		return &Alert{Title: TitleError, Message: common.UserMessage(err)}
	}
	l.nav.Replace(RouteDashboard)
	return nil
}

// Busy reports whether a sign-in is running.
func (l *LoginScreen) Busy() bool { return l.busy.Load() }

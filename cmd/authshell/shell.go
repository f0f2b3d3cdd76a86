package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"social_media_auth/internal/common"
	"social_media_auth/internal/config"
	"social_media_auth/internal/screen"
	"social_media_auth/internal/session"
	"social_media_auth/internal/shared"

	"go.uber.org/zap"
)

const usage = `usage: authshell <command> [arguments]

commands:
  signin <google|facebook>   sign in and show the dashboard
  signout <google|facebook>  disconnect one provider
  status                     show session state and connected accounts
  profile                    show the profile screen
  dashboard                  show the dashboard
`

var (
	errUsage     = errors.New("invalid usage")
	errAlerted   = errors.New("operation failed")
	errSignedOut = errors.New("not signed in")
)

type shell struct {
	cfg    *config.Config
	ctrl   *session.Controller
	out    io.Writer
	logger *zap.Logger
}

func newShell(cfg *config.Config, ctrl *session.Controller, logger *zap.Logger) *shell {
	return &shell{cfg: cfg, ctrl: ctrl, out: os.Stdout, logger: logger.Named("Shell")}
}

// run restores the session, then drives the screen that matches cmd.
func (s *shell) run(ctx context.Context, cmd string, args []string) error {
	state, err := s.ctrl.Restore(ctx)
	if err != nil {
		s.logger.Warn("Session could not be restored", zap.Error(err))
		fmt.Fprintf(s.out, "%s: %s\n", screen.TitleError, common.UserMessage(err))
	}
	nav := screen.NewNavigator(screen.InitialRoute(state), s.logger)

	switch cmd {
	case "signin":
		id, err := s.providerArg(cmd, args)
		if err != nil {
			return err
		}
		if nav.Current() == screen.RouteDashboard {
			nav.Replace(screen.RouteLogin)
		}
		login := screen.NewLoginScreen(s.cfg, s.ctrl, nav, s.logger)
		if alert := login.SignIn(ctx, id); alert != nil {
			s.renderAlert(*alert)
			return errAlerted
		}
		s.renderDashboard(screen.NewDashboardScreen(s.ctrl, nav, s.logger).Focus(ctx))
		return nil

	case "signout":
		id, err := s.providerArg(cmd, args)
		if err != nil {
			return err
		}
		alert := screen.NewProfileScreen(s.ctrl, s.logger).Disconnect(ctx, id)
		s.renderAlert(alert)
		if alert.Title == screen.TitleError {
			return errAlerted
		}
		return nil

	case "status":
		s.renderStatus()
		return nil

	case "profile":
		view, alert := screen.NewProfileScreen(s.ctrl, s.logger).Focus(ctx)
		if alert != nil {
			s.renderAlert(*alert)
		}
		s.renderProfile(view)
		return nil

	case "dashboard":
		if nav.Current() != screen.RouteDashboard {
			s.renderLogin(screen.NewLoginScreen(s.cfg, s.ctrl, nav, s.logger).View())
			return errSignedOut
		}
		s.renderDashboard(screen.NewDashboardScreen(s.ctrl, nav, s.logger).Focus(ctx))
		return nil
	}

	fmt.Fprint(s.out, usage)
	return fmt.Errorf("%w: unknown command %q", errUsage, cmd)
}

func (s *shell) providerArg(cmd string, args []string) (shared.ProviderID, error) {
	fs := flag.NewFlagSet(cmd, flag.ContinueOnError)
	fs.SetOutput(s.out)
	if err := fs.Parse(args); err != nil {
		return "", fmt.Errorf("%w: %v", errUsage, err)
	}
	if fs.NArg() != 1 {
		return "", fmt.Errorf("%w: %s needs exactly one provider", errUsage, cmd)
	}
	id, err := shared.ParseProviderID(fs.Arg(0))
	if err != nil {
		return "", fmt.Errorf("%w: %v", errUsage, err)
	}
	return id, nil
}

func (s *shell) renderAlert(a screen.Alert) {
	fmt.Fprintf(s.out, "%s: %s\n", a.Title, a.Message)
}

func (s *shell) renderStatus() {
	fmt.Fprintf(s.out, "state: %s\n", s.ctrl.State())
	if origin := s.ctrl.Origin(); origin != "" {
		fmt.Fprintf(s.out, "signed in with: %s\n", origin.DisplayName())
	}
	status := s.ctrl.Status()
	for _, id := range shared.Providers {
		fmt.Fprintf(s.out, "%-9s %s\n", id.DisplayName(), connectedLabel(status.Get(id)))
	}
}

func (s *shell) renderLogin(v screen.LoginView) {
	fmt.Fprintln(s.out, v.Title)
	for _, b := range v.Buttons {
		fmt.Fprintf(s.out, "  [%s]  authshell signin %s\n", b.Label, b.Provider)
	}
}

func (s *shell) renderProfile(v screen.ProfileView) {
	fmt.Fprintln(s.out, screen.RouteProfile.Title())
	if v.Loading {
		fmt.Fprintln(s.out, v.Message)
		return
	}
	fmt.Fprintf(s.out, "%s <%s>\n", v.Profile.Name, v.Profile.Email)
	if v.Profile.PhotoURL != "" {
		fmt.Fprintf(s.out, "photo: %s\n", v.Profile.PhotoURL)
	}
	fmt.Fprintf(s.out, "\n%s\n", v.SectionTitle)
	for _, row := range v.Accounts {
		fmt.Fprintf(s.out, "  %-9s %s\n", row.Label, row.Action)
	}
}

func (s *shell) renderDashboard(v screen.DashboardView) {
	fmt.Fprintln(s.out, screen.RouteDashboard.Title())
	fmt.Fprintln(s.out, strings.TrimSpace(v.Welcome))
	for _, p := range v.Posts {
		fmt.Fprintf(s.out, "\n%s - %s - %s\n%s\n%s  %s\n", p.AuthorName, p.Platform, p.Timestamp, p.Content, p.LikeLabel, p.CommentLabel)
	}
}

func connectedLabel(connected bool) string {
	if connected {
		return "Connected"
	}
	return screen.NotConnectedText
}

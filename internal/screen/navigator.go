// Package screen holds the view-models behind the login, profile and
// dashboard screens and the stack navigator that moves between them.
package screen

import (
	"sync"

	"social_media_auth/internal/shared"

	"go.uber.org/zap"
)

type Route string

const (
	RouteLogin     Route = "Login"
	RouteProfile   Route = "Profile"
	RouteDashboard Route = "Dashboard"
)

// Title is the header shown for the route; the login screen has none.
func (r Route) Title() string {
	switch r {
	case RouteProfile:
		return "My Profile"
	case RouteDashboard:
		return "Dashboard"
	}
	return ""
}

// InitialRoute picks the first screen for a restored session.
func InitialRoute(state shared.SessionState) Route {
	if state == shared.SignedIn {
		return RouteDashboard
	}
	return RouteLogin
}

// Navigator is a route stack. It is never empty.
type Navigator struct {
	mu     sync.Mutex
	stack  []Route
	logger *zap.Logger
}

func NewNavigator(initial Route, logger *zap.Logger) *Navigator {
	return &Navigator{stack: []Route{initial}, logger: logger.Named("Navigator")}
}

// Navigate pushes r on top of the current route.
func (n *Navigator) Navigate(r Route) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.stack = append(n.stack, r)
	n.logger.Debug("Navigate", zap.String("route", string(r)), zap.Int("depth", len(n.stack)))
}

// Replace swaps the current route for r, so Back cannot return to it.
func (n *Navigator) Replace(r Route) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.stack[len(n.stack)-1] = r
	n.logger.Debug("Replace", zap.String("route", string(r)))
}

// Back pops the current route. It reports false at the root.
func (n *Navigator) Back() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.stack) == 1 {
		return false
	}
	n.stack = n.stack[:len(n.stack)-1]
	return true
}

func (n *Navigator) Current() Route {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.stack[len(n.stack)-1]
}

// Stack returns a copy of the routes, root first.
func (n *Navigator) Stack() []Route {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]Route(nil), n.stack...)
}

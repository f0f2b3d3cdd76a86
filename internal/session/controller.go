package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"social_media_auth/internal/common"
	"social_media_auth/internal/config"
	"social_media_auth/internal/profile"
	"social_media_auth/internal/provider"
	"social_media_auth/internal/shared"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// saveTimeout bounds the profile write that follows a completed sign-in. It is
// separate from the operation timeout, which is mostly spent on user consent.
const saveTimeout = 5 * time.Second

// Controller owns the session state machine. The state is SignedIn exactly
// when a profile is stored and the origin provider's session is live.
type Controller struct {
	registry       *provider.Registry
	store          *Store
	timeout        time.Duration
	clearOnSignOut bool
	logger         *zap.Logger

	mu     sync.RWMutex
	state  shared.SessionState
	origin shared.ProviderID

	busyMu sync.Mutex
	busy   map[shared.ProviderID]struct{}
}

func NewController(cfg *config.Config, registry *provider.Registry, store *Store, logger *zap.Logger) *Controller {
	return &Controller{
		registry:       registry,
		store:          store,
		timeout:        cfg.OperationTimeout,
		clearOnSignOut: cfg.ClearProfileOnSignOut,
		logger:         logger.Named("SessionController"),
		busy:           make(map[shared.ProviderID]struct{}),
	}
}

// Restore rebuilds the state from the stored profile and live adapter
// sessions. A record without an origin is attributed to the first connected
// provider.
func (c *Controller) Restore(ctx context.Context) (shared.SessionState, error) {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	status := c.refresh(ctx)
	p, err := c.store.Load(ctx)
	if err != nil {
		c.setState(shared.SignedOut, "")
		return shared.SignedOut, err
	}
	if p == nil {
		c.setState(shared.SignedOut, "")
		return shared.SignedOut, nil
	}

	origin := p.Provider
	if origin == "" {
		for _, id := range c.registry.IDs() {
			if status.Get(id) {
				origin = id
				break
			}
		}
	}
	if origin == "" || !status.Get(origin) {
		c.logger.Info("Stored profile has no live session", zap.String("provider", string(origin)))
		c.setState(shared.SignedOut, "")
		return shared.SignedOut, nil
	}

	c.setState(shared.SignedIn, origin)
	c.logger.Info("Session restored", zap.String("provider", string(origin)))
	return shared.SignedIn, nil
}

// SignIn runs the provider's sign-in and replaces the stored profile. On an
// adapter failure nothing changes. When the profile cannot be saved the
// provider is still marked connected but the state does not move.
func (c *Controller) SignIn(ctx context.Context, id shared.ProviderID) (shared.Profile, error) {
	adapter, release, log, err := c.begin(id, "sign_in")
	if err != nil {
		return shared.Profile{}, err
	}
	defer release()
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	raw, err := adapter.SignIn(ctx)
	if err != nil {
		log.Info("Sign-in failed", zap.String("kind", string(provider.KindOf(err))), zap.Error(err))
		return shared.Profile{}, err
	}
	c.store.SetConnected(id, true)

	p, err := profile.Normalize(id, raw)
	if err != nil {
		log.Error("Could not normalize user info", zap.Error(err))
		return shared.Profile{}, err
	}
	saveCtx, cancelSave := context.WithTimeout(context.WithoutCancel(ctx), saveTimeout)
	defer cancelSave()
	if err := c.store.Save(saveCtx, p); err != nil {
		log.Error("Signed in but profile was not saved", zap.Error(err))
		return shared.Profile{}, err
	}

	c.setState(shared.SignedIn, id)
	log.Info("Signed in")
	return p, nil
}

// SignOut ends the provider session. The state moves to SignedOut only when id
// is the origin of the current session.
func (c *Controller) SignOut(ctx context.Context, id shared.ProviderID) error {
	adapter, release, log, err := c.begin(id, "sign_out")
	if err != nil {
		return err
	}
	defer release()
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	if err := adapter.SignOut(ctx); err != nil {
		log.Warn("Sign-out failed", zap.Error(err))
		return err
	}
	c.store.SetConnected(id, false)

	c.mu.Lock()
	if c.state == shared.SignedIn && c.origin == id {
		c.state, c.origin = shared.SignedOut, ""
	}
	c.mu.Unlock()

	if c.clearOnSignOut && !c.store.Connections().Any() {
		if err := c.store.Clear(ctx); err != nil {
			log.Warn("Could not clear profile after last sign-out", zap.Error(err))
		}
	}
	log.Info("Signed out")
	return nil
}

// Refresh re-reads every adapter's live session. It is safe to call any
// number of times.
func (c *Controller) Refresh(ctx context.Context) shared.ConnectionStatus {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()
	return c.refresh(ctx)
}

func (c *Controller) refresh(ctx context.Context) shared.ConnectionStatus {
	for _, id := range c.registry.IDs() {
		adapter, err := c.registry.Get(id)
		if err != nil {
			continue
		}
		c.store.SetConnected(id, adapter.IsConnected(ctx))
	}
	status := c.store.Connections()
	c.logger.Debug("Connections refreshed", zap.Bool("google", status.Google), zap.Bool("facebook", status.Facebook))
	return status
}

func (c *Controller) Status() shared.ConnectionStatus { return c.store.Connections() }

func (c *Controller) State() shared.SessionState {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

// Origin is the provider the current session came from, or "" when signed out.
func (c *Controller) Origin() shared.ProviderID {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.origin
}

// Profile returns the stored profile, or nil when there is none.
func (c *Controller) Profile(ctx context.Context) (*shared.Profile, error) {
	return c.store.Load(ctx)
}

func (c *Controller) setState(state shared.SessionState, origin shared.ProviderID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state, c.origin = state, origin
}

// begin looks up the adapter and claims the provider for one operation.
func (c *Controller) begin(id shared.ProviderID, op string) (provider.Adapter, func(), *zap.Logger, error) {
	adapter, err := c.registry.Get(id)
	if err != nil {
		return nil, nil, nil, err
	}

	c.busyMu.Lock()
	if _, ok := c.busy[id]; ok {
		c.busyMu.Unlock()
		return nil, nil, nil, fmt.Errorf("%s %s: %w", op, id, common.ErrOperationInProgress)
	}
	c.busy[id] = struct{}{}
	c.busyMu.Unlock()

	release := func() {
		c.busyMu.Lock()
		delete(c.busy, id)
		c.busyMu.Unlock()
	}
	log := c.logger.With(
		zap.String("operation", op),
		zap.String("operation_id", uuid.NewString()),
		zap.String("provider", string(id)),
	)
	return adapter, release, log, nil
}

func (c *Controller) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, c.timeout)
}

// Package google signs users in with Google.
package google

import (
	"context"
	"errors"

	"social_media_auth/internal/provider"
	"social_media_auth/internal/shared"

	"go.uber.org/zap"
)

// Adapter implements provider.Adapter on top of an SDK.
type Adapter struct {
	sdk    SDK
	logger *zap.Logger
}

var _ provider.Adapter = (*Adapter)(nil)

func NewAdapter(sdk SDK, logger *zap.Logger) *Adapter {
	return &Adapter{sdk: sdk, logger: logger.Named("GoogleAdapter")}
}

func (a *Adapter) ID() shared.ProviderID { return shared.ProviderGoogle }

// SignIn checks for play services before starting the interactive flow.
func (a *Adapter) SignIn(ctx context.Context) (provider.RawUserInfo, error) {
	if err := a.sdk.HasPlayServices(ctx); err != nil {
		a.logger.Warn("Play services check failed", zap.Error(err))
		return nil, a.classify(err, provider.KindServiceUnavailable, "Google Play Services are not available")
	}

	info, err := a.sdk.SignIn(ctx)
	if err != nil {
		a.logger.Info("Google sign-in failed", zap.Error(err))
		return nil, a.classify(err, provider.KindUnknown, "Google sign-in failed")
	}
	if info == nil {
		return nil, provider.NewError(shared.ProviderGoogle, provider.KindUnknown, "Google sign-in failed", errors.New("sdk returned no user"))
	}
	a.logger.Debug("Google sign-in succeeded", zap.String("user_id", info.User.ID))
	return *info, nil
}

func (a *Adapter) SignOut(ctx context.Context) error {
	if err := a.sdk.SignOut(ctx); err != nil {
		a.logger.Error("Google sign-out failed", zap.Error(err))
		return a.classify(err, provider.KindUnknown, "Failed to disconnect from Google")
	}
	return nil
}

// IsConnected treats a failed query as not connected.
func (a *Adapter) IsConnected(ctx context.Context) bool {
	ok, err := a.sdk.IsSignedIn(ctx)
	if err != nil {
		a.logger.Warn("Could not query Google session", zap.Error(err))
		return false
	}
	return ok
}

func (a *Adapter) classify(err error, fallback provider.ErrorKind, message string) *provider.AdapterError {
	switch {
	case errors.Is(err, ErrSignInCancelled):
		return provider.NewError(shared.ProviderGoogle, provider.KindUserCancelled, "Google sign-in was cancelled", err)
	case errors.Is(err, ErrPlayServicesNotAvailable):
		return provider.NewError(shared.ProviderGoogle, provider.KindServiceUnavailable, "Google Play Services are not available", err)
	case errors.Is(err, ErrInProgress):
		return provider.NewError(shared.ProviderGoogle, provider.KindUnknown, "Google sign-in is already in progress", err)
	}
	return provider.Classify(shared.ProviderGoogle, err, fallback, message)
}

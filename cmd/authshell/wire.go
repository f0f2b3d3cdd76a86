//go:build wireinject
// +build wireinject

package main

import (
	"social_media_auth/internal/config"
	"social_media_auth/internal/provider/oauthflow"
	"social_media_auth/internal/session"

	"github.com/google/wire"
)

// initializeShell is the Wire injector.
func initializeShell(cfg *config.Config) (*shell, func(), error) {
	wire.Build(
		// Platform Layer
		provideLogger,
		provideKVStore,

		// Providers
		provideReceiver,
		wire.Bind(new(oauthflow.Authorizer), new(*oauthflow.Receiver)),
		provideGoogleAdapter,
		provideFacebookAdapter,
		provideRegistry,

		// Session
		session.NewStore,
		session.NewController,

		newShell,
	)
	return nil, nil, nil
}

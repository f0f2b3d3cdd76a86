package main

import (
	"log"

	"social_media_auth/internal/config"
	"social_media_auth/internal/kvstore"
	"social_media_auth/internal/platform/database"
	"social_media_auth/internal/platform/logger"
	"social_media_auth/internal/provider"
	"social_media_auth/internal/provider/facebook"
	"social_media_auth/internal/provider/google"
	"social_media_auth/internal/provider/oauthflow"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func provideLogger(cfg *config.Config) (*zap.Logger, func(), error) {
	l, err := logger.New(cfg)
	if err != nil {
		return nil, nil, err
	}
	return l, func() {
		if err := l.Sync(); err != nil {
			log.Printf("ERROR: Failed to sync logger during cleanup: %v", err)
		}
	}, nil
}

// provideKVStore picks the store named by STORE_DRIVER.
func provideKVStore(cfg *config.Config, logger *zap.Logger) (kvstore.Store, func(), error) {
	if cfg.StoreDriver == "memory" {
		logger.Info("Using in-memory store; the session ends with the process")
		return kvstore.NewMemoryStore(), func() {}, nil
	}
	db, err := database.NewSQLite(cfg, logger)
	if err != nil {
		return nil, nil, err
	}
	store, err := kvstore.NewGORMStore(db, logger)
	if err != nil {
		database.Close(db, logger)
		return nil, nil, err
	}
	return store, func() { database.Close(db, logger) }, nil
}

func provideReceiver(cfg *config.Config, logger *zap.Logger) *oauthflow.Receiver {
	switch cfg.AppMode {
	case "release":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.DebugMode)
	}
	return oauthflow.NewReceiver(oauthflow.ReceiverConfig{
		Host: cfg.OAuthRedirectHost,
		Port: cfg.OAuthRedirectPort,
		Path: cfg.OAuthCallbackPath,
	}, oauthflow.LogOpener(logger), logger)
}

func provideGoogleAdapter(cfg *config.Config, authz oauthflow.Authorizer, kv kvstore.Store, logger *zap.Logger) *google.Adapter {
	return google.NewAdapter(google.NewOAuthSDK(cfg, authz, kv, logger), logger)
}

func provideFacebookAdapter(cfg *config.Config, authz oauthflow.Authorizer, kv kvstore.Store, logger *zap.Logger) *facebook.Adapter {
	sdk := facebook.NewOAuthSDK(cfg, authz, kv, logger)
	graph := facebook.NewGraphClient(cfg.FacebookGraphURL, nil, logger)
	return facebook.NewAdapter(sdk, sdk, graph, cfg.FacebookPermissions, logger)
}

func provideRegistry(g *google.Adapter, f *facebook.Adapter) *provider.Registry {
	return provider.NewRegistry(g, f)
}

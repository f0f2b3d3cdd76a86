package screen

import (
	"context"
	"testing"

	"social_media_auth/internal/config"
	"social_media_auth/internal/kvstore"
	"social_media_auth/internal/provider"
	"social_media_auth/internal/provider/providertest"
	"social_media_auth/internal/session"
	"social_media_auth/internal/shared"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type harness struct {
	google   *providertest.MockAdapter
	facebook *providertest.MockAdapter
	kv       *kvstore.MemoryStore
	ctrl     *session.Controller
	nav      *Navigator
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	h := &harness{
		google:   providertest.NewMockAdapter(shared.ProviderGoogle),
		facebook: providertest.NewMockAdapter(shared.ProviderFacebook),
		kv:       kvstore.NewMemoryStore(),
		nav:      NewNavigator(RouteLogin, zap.NewNop()),
	}
	store := session.NewStore(h.kv, zap.NewNop())
	h.ctrl = session.NewController(&config.Config{}, provider.NewRegistry(h.google, h.facebook), store, zap.NewNop())
	return h
}

func (h *harness) storeProfile(t *testing.T, raw string) {
	t.Helper()
	require.NoError(t, h.kv.Set(context.Background(), session.ProfileKey, raw))
}

var googleAna = provider.GoogleUserInfo{
	User: provider.GoogleUser{ID: "g-1", Name: "Ana Lee", Email: "ana@x.io", Photo: "https://p/a.png"},
}

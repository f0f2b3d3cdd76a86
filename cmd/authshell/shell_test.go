package main

import (
	"bytes"
	"context"
	"testing"

	"social_media_auth/internal/config"
	"social_media_auth/internal/kvstore"
	"social_media_auth/internal/provider"
	"social_media_auth/internal/provider/providertest"
	"social_media_auth/internal/session"
	"social_media_auth/internal/shared"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type testShell struct {
	*shell
	google   *providertest.MockAdapter
	facebook *providertest.MockAdapter
	kv       *kvstore.MemoryStore
	buf      *bytes.Buffer
}

func newTestShell(t *testing.T) *testShell {
	t.Helper()
	cfg := &config.Config{AppDisplayName: "Social Media Auth"}
	ts := &testShell{
		google:   providertest.NewMockAdapter(shared.ProviderGoogle),
		facebook: providertest.NewMockAdapter(shared.ProviderFacebook),
		kv:       kvstore.NewMemoryStore(),
		buf:      new(bytes.Buffer),
	}
	ctrl := session.NewController(cfg, provider.NewRegistry(ts.google, ts.facebook), session.NewStore(ts.kv, zap.NewNop()), zap.NewNop())
	ts.shell = newShell(cfg, ctrl, zap.NewNop())
	ts.shell.out = ts.buf
	return ts
}

func (ts *testShell) connected(google, facebook bool) {
	ts.google.On("IsConnected", mock.Anything).Return(google)
	ts.facebook.On("IsConnected", mock.Anything).Return(facebook)
}

func TestShell_SignInShowsDashboard(t *testing.T) {
	ts := newTestShell(t)
	ts.connected(false, false)
	ts.google.On("SignIn", mock.Anything).Return(provider.GoogleUserInfo{
		User: provider.GoogleUser{ID: "g-1", Name: "Ana Lee", Email: "ana@x.io"},
	}, nil)

	require.NoError(t, ts.run(context.Background(), "signin", []string{"Google"}))
	out := ts.buf.String()
	assert.Contains(t, out, "Welcome, Ana")
	assert.Contains(t, out, "Just shared a new photo!")
	assert.Contains(t, out, "Like (24)  Comment (5)")
}

func TestShell_SignInFailurePrintsAlert(t *testing.T) {
	ts := newTestShell(t)
	ts.connected(false, false)
	ts.facebook.On("SignIn", mock.Anything).
		Return(nil, provider.NewError(shared.ProviderFacebook, provider.KindUserCancelled, "Facebook login was cancelled", nil))

	err := ts.run(context.Background(), "signin", []string{"facebook"})
	assert.ErrorIs(t, err, errAlerted)
	assert.Contains(t, ts.buf.String(), "Error: Facebook login was cancelled")
}

func TestShell_Status(t *testing.T) {
	ts := newTestShell(t)
	require.NoError(t, ts.kv.Set(context.Background(), session.ProfileKey, `{"name":"Ana Lee","email":"ana@x.io","provider":"facebook"}`))
	ts.connected(false, true)

	require.NoError(t, ts.run(context.Background(), "status", nil))
	out := ts.buf.String()
	assert.Contains(t, out, "state: signed_in")
	assert.Contains(t, out, "signed in with: Facebook")
	assert.Contains(t, out, "Google    Not Connected")
	assert.Contains(t, out, "Facebook  Connected")
}

func TestShell_DashboardWhenSignedOut(t *testing.T) {
	ts := newTestShell(t)
	ts.connected(false, false)

	err := ts.run(context.Background(), "dashboard", nil)
	assert.ErrorIs(t, err, errSignedOut)
	assert.Contains(t, ts.buf.String(), "Welcome to Social Media Auth")
	assert.Contains(t, ts.buf.String(), "[Sign in with Google]")
}

func TestShell_Profile(t *testing.T) {
	ts := newTestShell(t)
	require.NoError(t, ts.kv.Set(context.Background(), session.ProfileKey, `{"name":"Ana Lee","email":"ana@x.io","photoURL":"https://p/a.png","provider":"google"}`))
	ts.connected(true, false)

	require.NoError(t, ts.run(context.Background(), "profile", nil))
	out := ts.buf.String()
	assert.Contains(t, out, "My Profile")
	assert.Contains(t, out, "Ana Lee <ana@x.io>")
	assert.Contains(t, out, "Google    Disconnect")
	assert.Contains(t, out, "Facebook  Not Connected")
}

func TestShell_SignOut(t *testing.T) {
	ts := newTestShell(t)
	ts.connected(true, false)
	ts.google.On("SignOut", mock.Anything).Return(nil)

	require.NoError(t, ts.run(context.Background(), "signout", []string{"google"}))
	assert.Contains(t, ts.buf.String(), "Success: Disconnected from google")
}

func TestShell_UsageErrors(t *testing.T) {
	ts := newTestShell(t)
	ts.connected(false, false)
	ctx := context.Background()

	assert.ErrorIs(t, ts.run(ctx, "signin", nil), errUsage)
	assert.ErrorIs(t, ts.run(ctx, "signin", []string{"twitter"}), errUsage)
	assert.ErrorIs(t, ts.run(ctx, "signout", []string{"google", "facebook"}), errUsage)
	assert.ErrorIs(t, ts.run(ctx, "nope", nil), errUsage)
	ts.google.AssertNotCalled(t, "SignIn", mock.Anything)
}

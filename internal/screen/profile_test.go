package screen

import (
	"context"
	"testing"

	"social_media_auth/internal/provider"
	"social_media_auth/internal/shared"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestProfileScreen_LoadingWithoutProfile(t *testing.T) {
	h := newHarness(t)
	h.google.On("IsConnected", mock.Anything).Return(false)
	h.facebook.On("IsConnected", mock.Anything).Return(false)

	v, alert := NewProfileScreen(h.ctrl, zap.NewNop()).Focus(context.Background())
	assert.Nil(t, alert)
	assert.True(t, v.Loading)
	assert.Equal(t, "Loading profile...", v.Message)
	assert.Empty(t, v.Accounts)
}

func TestProfileScreen_Accounts(t *testing.T) {
	h := newHarness(t)
	h.storeProfile(t, `{"name":"Ana Lee","email":"ana@x.io","photoURL":"https://p/a.png","provider":"google"}`)
	h.google.On("IsConnected", mock.Anything).Return(true)
	h.facebook.On("IsConnected", mock.Anything).Return(false)

	v, alert := NewProfileScreen(h.ctrl, zap.NewNop()).Focus(context.Background())
	assert.Nil(t, alert)
	require.NotNil(t, v.Profile)
	assert.Equal(t, "Ana Lee", v.Profile.Name)
	assert.Equal(t, "Connected Accounts", v.SectionTitle)
	assert.Equal(t, []AccountRow{
		{Provider: shared.ProviderGoogle, Label: "Google", Connected: true, Action: "Disconnect"},
		{Provider: shared.ProviderFacebook, Label: "Facebook", Connected: false, Action: "Not Connected"},
	}, v.Accounts)
}

func TestProfileScreen_CorruptProfile(t *testing.T) {
	h := newHarness(t)
	h.storeProfile(t, `{"name"`)
	h.google.On("IsConnected", mock.Anything).Return(false)
	h.facebook.On("IsConnected", mock.Anything).Return(false)

	v, alert := NewProfileScreen(h.ctrl, zap.NewNop()).Focus(context.Background())
	require.NotNil(t, alert)
	assert.Equal(t, Alert{Title: "Error", Message: "Failed to load profile"}, *alert)
	assert.True(t, v.Loading)
}

func TestProfileScreen_Disconnect(t *testing.T) {
	h := newHarness(t)
	h.storeProfile(t, `{"name":"Ana Lee","email":"ana@x.io","provider":"google"}`)
	h.google.On("IsConnected", mock.Anything).Return(true)
	h.facebook.On("IsConnected", mock.Anything).Return(true)
	h.facebook.On("SignOut", mock.Anything).Return(nil)
	ctx := context.Background()

	p := NewProfileScreen(h.ctrl, zap.NewNop())
	_, _ = p.Focus(ctx)

	alert := p.Disconnect(ctx, shared.ProviderFacebook)
	assert.Equal(t, Alert{Title: "Success", Message: "Disconnected from facebook"}, alert)

	rows := p.View().Accounts
	assert.True(t, rows[0].Connected)
	assert.False(t, rows[1].Connected)
	assert.Equal(t, "Not Connected", rows[1].Action)
}

func TestProfileScreen_DisconnectFailure(t *testing.T) {
	h := newHarness(t)
	h.storeProfile(t, `{"name":"Ana Lee","email":"ana@x.io","provider":"google"}`)
	h.google.On("IsConnected", mock.Anything).Return(true)
	h.facebook.On("IsConnected", mock.Anything).Return(false)
	h.google.On("SignOut", mock.Anything).
		Return(provider.NewError(shared.ProviderGoogle, provider.KindUnknown, "boom", nil))
	ctx := context.Background()

	p := NewProfileScreen(h.ctrl, zap.NewNop())
	_, _ = p.Focus(ctx)

	alert := p.Disconnect(ctx, shared.ProviderGoogle)
	assert.Equal(t, Alert{Title: "Error", Message: "Failed to disconnect from google"}, alert)
	assert.True(t, p.View().Accounts[0].Connected)
}

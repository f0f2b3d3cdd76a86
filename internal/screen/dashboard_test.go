package screen

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestDashboardScreen_Focus(t *testing.T) {
	h := newHarness(t)
	h.storeProfile(t, `{"name":"Ana Lee","email":"ana@x.io","photoURL":"https://p/a.png","provider":"google"}`)

	v := NewDashboardScreen(h.ctrl, h.nav, zap.NewNop()).Focus(context.Background())
	assert.Equal(t, "Welcome, Ana", v.Welcome)
	assert.Equal(t, "https://p/a.png", v.PhotoURL)
	assert.False(t, v.Refreshing)
	require.Len(t, v.Posts, 2)

	first := v.Posts[0]
	assert.Equal(t, "Facebook", first.Platform)
	assert.Equal(t, "Just shared a new photo!", first.Content)
	assert.Equal(t, "2 hours ago", first.Timestamp)
	assert.Equal(t, "Like (24)", first.LikeLabel)
	assert.Equal(t, "Comment (5)", first.CommentLabel)
	assert.Equal(t, "Ana Lee", first.AuthorName)
	assert.Equal(t, "https://p/a.png", first.AuthorPhotoURL)

	assert.Equal(t, "Google", v.Posts[1].Platform)
	assert.Equal(t, "Like (15)", v.Posts[1].LikeLabel)
}

func TestDashboardScreen_WithoutProfile(t *testing.T) {
	h := newHarness(t)
	h.storeProfile(t, `not json`)

	v := NewDashboardScreen(h.ctrl, h.nav, zap.NewNop()).Focus(context.Background())
	assert.Equal(t, "Welcome, ", v.Welcome)
	assert.Empty(t, v.PhotoURL)
	assert.Len(t, v.Posts, 2)
}

func TestDashboardScreen_RefreshPicksUpNewProfile(t *testing.T) {
	h := newHarness(t)
	h.storeProfile(t, `{"name":"Ana Lee","email":"ana@x.io"}`)
	ctx := context.Background()

	d := NewDashboardScreen(h.ctrl, h.nav, zap.NewNop())
	assert.Equal(t, "Welcome, Ana", d.Focus(ctx).Welcome)

	h.storeProfile(t, `{"name":"Bo Chen","email":"bo@x.io"}`)
	v := d.Refresh(ctx)
	assert.Equal(t, "Welcome, Bo", v.Welcome)
	assert.False(t, v.Refreshing)
}

func TestDashboardScreen_OpenProfile(t *testing.T) {
	h := newHarness(t)
	h.nav.Replace(RouteDashboard)

	NewDashboardScreen(h.ctrl, h.nav, zap.NewNop()).OpenProfile()
	assert.Equal(t, RouteProfile, h.nav.Current())
	assert.True(t, h.nav.Back())
	assert.Equal(t, RouteDashboard, h.nav.Current())
}

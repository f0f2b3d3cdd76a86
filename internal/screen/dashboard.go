package screen

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"social_media_auth/internal/shared"

	"go.uber.org/zap"
)

// Post is an entry in the dashboard feed.
type Post struct {
	ID        int
	Platform  string
	Content   string
	Timestamp string
	Likes     int
	Comments  int
}

// SamplePosts is the placeholder feed; no provider feed API is called.
func SamplePosts() []Post {
	return []Post{
		{ID: 1, Platform: "Facebook", Content: "Just shared a new photo!", Timestamp: "2 hours ago", Likes: 24, Comments: 5},
		{ID: 2, Platform: "Google", Content: "Check out my latest update!", Timestamp: "5 hours ago", Likes: 15, Comments: 3},
	}
}

type PostView struct {
	Post
	AuthorName     string
	AuthorPhotoURL string
	LikeLabel      string
	CommentLabel   string
}

type DashboardView struct {
	Welcome    string
	PhotoURL   string
	Posts      []PostView
	Refreshing bool
}

type DashboardScreen struct {
	session Session
	nav     *Navigator
	feed    func() []Post
	logger  *zap.Logger

	refreshing atomic.Bool

	mu      sync.Mutex
	profile *shared.Profile
	posts   []Post
}

func NewDashboardScreen(s Session, nav *Navigator, logger *zap.Logger) *DashboardScreen {
	return &DashboardScreen{session: s, nav: nav, feed: SamplePosts, logger: logger.Named("DashboardScreen")}
}

// Focus loads the profile and the feed. A profile that cannot be read is
// logged and the dashboard renders without it.
func (d *DashboardScreen) Focus(ctx context.Context) DashboardView {
	d.load(ctx)
	return d.View()
}

// Refresh reloads the feed and the profile; a refresh already running wins.
func (d *DashboardScreen) Refresh(ctx context.Context) DashboardView {
	if !d.refreshing.CompareAndSwap(false, true) {
		return d.View()
	}
	d.reload(ctx)
	return d.View()
}

func (d *DashboardScreen) reload(ctx context.Context) {
	defer d.refreshing.Store(false)
	d.load(ctx)
}

// OpenProfile pushes the profile screen.
func (d *DashboardScreen) OpenProfile() {
	d.nav.Navigate(RouteProfile)
}

func (d *DashboardScreen) load(ctx context.Context) {
	prof, err := d.session.Profile(ctx)
	if err != nil {
		d.logger.Error("Error loading profile", zap.Error(err))
	}
	posts := d.feed()

	d.mu.Lock()
	defer d.mu.Unlock()
	d.profile = prof
	d.posts = posts
}

func (d *DashboardScreen) View() DashboardView {
	d.mu.Lock()
	defer d.mu.Unlock()

	v := DashboardView{Refreshing: d.refreshing.Load()}
	var name string
	if d.profile != nil {
		name = d.profile.Name
		v.PhotoURL = d.profile.PhotoURL
	}
	v.Welcome = "Welcome, " + d.profile.FirstName()

	v.Posts = make([]PostView, 0, len(d.posts))
	for _, p := range d.posts {
		v.Posts = append(v.Posts, PostView{
			Post:           p,
			AuthorName:     name,
			AuthorPhotoURL: v.PhotoURL,
			LikeLabel:      fmt.Sprintf("Like (%d)", p.Likes),
			CommentLabel:   fmt.Sprintf("Comment (%d)", p.Comments),
		})
	}
	return v
}

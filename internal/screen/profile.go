package screen

import (
	"context"
	"fmt"
	"sync"

	"social_media_auth/internal/shared"

	"go.uber.org/zap"
)

const (
	LoadingProfileText = "Loading profile..."
	NotConnectedText   = "Not Connected"
	DisconnectText     = "Disconnect"
)

// AccountRow is one provider under "Connected Accounts". Action is either the
// disconnect button label or the not connected notice.
type AccountRow struct {
	Provider  shared.ProviderID
	Label     string
	Connected bool
	Action    string
}

type ProfileView struct {
	Loading      bool
	Message      string
	Profile      *shared.Profile
	SectionTitle string
	Accounts     []AccountRow
}

type ProfileScreen struct {
	session Session
	logger  *zap.Logger

	mu      sync.Mutex
	profile *shared.Profile
}

func NewProfileScreen(s Session, logger *zap.Logger) *ProfileScreen {
	return &ProfileScreen{session: s, logger: logger.Named("ProfileScreen")}
}

// Focus reloads the profile and re-queries every provider.
func (p *ProfileScreen) Focus(ctx context.Context) (ProfileView, *Alert) {
	var alert *Alert
	prof, err := p.session.Profile(ctx)
	if err != nil {
		p.logger.Error("Failed to load profile", zap.Error(err))
		alert = &Alert{Title: TitleError, Message: "Failed to load profile"}
	}
	p.session.Refresh(ctx)

	p.mu.Lock()
	p.profile = prof
	p.mu.Unlock()
	return p.View(), alert
}

// View renders the last loaded profile with the current connection flags.
func (p *ProfileScreen) View() ProfileView {
	p.mu.Lock()
	prof := p.profile
	p.mu.Unlock()

	if prof == nil {
		return ProfileView{Loading: true, Message: LoadingProfileText}
	}

	status := p.session.Status()
	rows := make([]AccountRow, 0, len(shared.Providers))
	for _, id := range shared.Providers {
		row := AccountRow{Provider: id, Label: id.DisplayName(), Connected: status.Get(id), Action: NotConnectedText}
		if row.Connected {
			row.Action = DisconnectText
		}
		rows = append(rows, row)
	}
	return ProfileView{Profile: prof, SectionTitle: "Connected Accounts", Accounts: rows}
}

// Disconnect signs out of one provider. The route does not change.
func (p *ProfileScreen) Disconnect(ctx context.Context, id shared.ProviderID) Alert {
	if err := p.session.SignOut(ctx, id); err != nil {
		p.logger.Warn("Disconnect failed", zap.String("provider", string(id)), zap.Error(err))
		return Alert{Title: TitleError, Message: fmt.Sprintf("Failed to disconnect from %s", id)}
	}
	return Alert{Title: TitleSuccess, Message: fmt.Sprintf("Disconnected from %s", id)}
}

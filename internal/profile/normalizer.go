// Package profile turns provider user info into the canonical Profile.
package profile

import (
	"fmt"

	"social_media_auth/internal/provider"
	"social_media_auth/internal/shared"
)

// Normalize builds a complete Profile from raw. The result always replaces
// whatever was stored before; no field is carried over. raw must come from p.
func Normalize(p shared.ProviderID, raw provider.RawUserInfo) (shared.Profile, error) {
	if raw == nil {
		return shared.Profile{}, fmt.Errorf("normalize %s: no user info", p)
	}
	if raw.Provider() != p {
		return shared.Profile{}, fmt.Errorf("normalize %s: user info is from %s", p, raw.Provider())
	}

	switch info := raw.(type) {
	case provider.GoogleUserInfo:
		return fromGoogle(info), nil
	case *provider.GoogleUserInfo:
		return fromGoogle(*info), nil
	case provider.FacebookUserInfo:
		return fromFacebook(info), nil
	case *provider.FacebookUserInfo:
		return fromFacebook(*info), nil
	}
	return shared.Profile{}, fmt.Errorf("normalize %s: unsupported user info %T", p, raw)
}

func fromGoogle(info provider.GoogleUserInfo) shared.Profile {
	return shared.Profile{
		Name:     info.User.Name,
		Email:    info.User.Email,
		PhotoURL: info.User.Photo,
		Provider: shared.ProviderGoogle,
	}
}

func fromFacebook(info provider.FacebookUserInfo) shared.Profile {
	return shared.Profile{
		Name:     info.Name,
		Email:    info.Email,
		PhotoURL: info.PictureURL(),
		Provider: shared.ProviderFacebook,
	}
}

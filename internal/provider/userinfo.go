package provider

import "social_media_auth/internal/shared"

// RawUserInfo is the provider specific result of a successful sign-in.
// The set of implementations is closed to this package.
type RawUserInfo interface {
	Provider() shared.ProviderID
	sealed()
}

// GoogleUser mirrors the user block returned by Google Sign-In.
type GoogleUser struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Photo      string `json:"photo"`
	GivenName  string `json:"givenName"`
	FamilyName string `json:"familyName"`
}

// GoogleUserInfo is what the Google adapter returns.
type GoogleUserInfo struct {
	IDToken string     `json:"idToken"`
	Scopes  []string   `json:"scopes"`
	User    GoogleUser `json:"user"`
}

func (GoogleUserInfo) Provider() shared.ProviderID { return shared.ProviderGoogle }
func (GoogleUserInfo) sealed()                     {}

// FacebookPictureData is the innermost level of the Graph picture field.
type FacebookPictureData struct {
	URL          string `json:"url"`
	Width        int    `json:"width,omitempty"`
	Height       int    `json:"height,omitempty"`
	IsSilhouette bool   `json:"is_silhouette,omitempty"`
}

// FacebookPicture is the Graph picture field; Data may be absent.
type FacebookPicture struct {
	Data *FacebookPictureData `json:"data,omitempty"`
}

// FacebookUserInfo is the Graph /me response with fields id,name,email,picture.
type FacebookUserInfo struct {
	ID      string           `json:"id"`
	Name    string           `json:"name"`
	Email   string           `json:"email"`
	Picture *FacebookPicture `json:"picture,omitempty"`
}

func (FacebookUserInfo) Provider() shared.ProviderID { return shared.ProviderFacebook }
func (FacebookUserInfo) sealed()                     {}

// PictureURL walks picture.data.url and returns "" when any level is missing.
func (f FacebookUserInfo) PictureURL() string {
	if f.Picture == nil || f.Picture.Data == nil {
		return ""
	}
	return f.Picture.Data.URL
}

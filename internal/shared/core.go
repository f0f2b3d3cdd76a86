package shared

import (
	"fmt"
	"strings"
)

// ProviderID identifies an external identity service.
type ProviderID string

const (
	ProviderGoogle   ProviderID = "google"
	ProviderFacebook ProviderID = "facebook"
)

// Providers lists every supported provider in display order.
var Providers = []ProviderID{ProviderGoogle, ProviderFacebook}

// ParseProviderID accepts the case-insensitive name of a supported provider.
func ParseProviderID(s string) (ProviderID, error) {
	id := ProviderID(strings.ToLower(strings.TrimSpace(s)))
	switch id {
	case ProviderGoogle, ProviderFacebook:
		return id, nil
	}
	return "", fmt.Errorf("unknown provider %q", s)
}

// DisplayName is the label shown next to a provider in the UI.
func (p ProviderID) DisplayName() string {
	switch p {
	case ProviderGoogle:
		return "Google"
	case ProviderFacebook:
		return "Facebook"
	}
	return string(p)
}

// Profile is the canonical record of the current user. It is always replaced
// as a whole, never patched field by field.
type Profile struct {
	Name     string     `json:"name"`
	Email    string     `json:"email"`
	PhotoURL string     `json:"photoURL,omitempty"`
	Provider ProviderID `json:"provider,omitempty"` // origin of the record
}

// FirstName returns the first whitespace separated token of Name.
func (p *Profile) FirstName() string {
	if p == nil {
		return ""
	}
	fields := strings.Fields(p.Name)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

// ConnectionStatus tells whether each provider currently holds a live session.
type ConnectionStatus struct {
	Google   bool `json:"google"`
	Facebook bool `json:"facebook"`
}

// Get returns the flag for id; unknown providers are never connected.
func (s ConnectionStatus) Get(id ProviderID) bool {
	switch id {
	case ProviderGoogle:
		return s.Google
	case ProviderFacebook:
		return s.Facebook
	}
	return false
}

// Set updates the flag for id. Unknown providers are ignored.
func (s *ConnectionStatus) Set(id ProviderID, connected bool) {
	switch id {
	case ProviderGoogle:
		s.Google = connected
	case ProviderFacebook:
		s.Facebook = connected
	}
}

// Any reports whether at least one provider is connected.
func (s ConnectionStatus) Any() bool {
	return s.Google || s.Facebook
}

// SessionState is the controller's view of the session.
type SessionState int

const (
	SignedOut SessionState = iota
	SignedIn
)

func (s SessionState) String() string {
	if s == SignedIn {
		return "signed_in"
	}
	return "signed_out"
}

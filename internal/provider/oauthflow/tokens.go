package oauthflow

import (
	"context"
	"encoding/json"
	"fmt"

	"social_media_auth/internal/kvstore"
	"social_media_auth/internal/shared"

	"golang.org/x/oauth2"
)

// TokenStore keeps one provider's OAuth token in the key-value store. The
// stored token is that provider's session.
type TokenStore struct {
	kv  kvstore.Store
	key string
}

func NewTokenStore(kv kvstore.Store, p shared.ProviderID) *TokenStore {
	return &TokenStore{kv: kv, key: "sdk." + string(p) + ".token"}
}

// Load returns nil without error when no token is stored.
func (s *TokenStore) Load(ctx context.Context) (*oauth2.Token, error) {
	raw, ok, err := s.kv.Get(ctx, s.key)
	if err != nil {
		return nil, fmt.Errorf("loading token: %w", err)
	}
	if !ok {
		return nil, nil
	}
	var tok oauth2.Token
	if err := json.Unmarshal([]byte(raw), &tok); err != nil {
		return nil, fmt.Errorf("decoding stored token: %w", err)
	}
	return &tok, nil
}

func (s *TokenStore) Save(ctx context.Context, tok *oauth2.Token) error {
	b, err := json.Marshal(tok)
	if err != nil {
		return fmt.Errorf("encoding token: %w", err)
	}
	if err := s.kv.Set(ctx, s.key, string(b)); err != nil {
		return fmt.Errorf("saving token: %w", err)
	}
	return nil
}

func (s *TokenStore) Clear(ctx context.Context) error {
	if err := s.kv.Remove(ctx, s.key); err != nil {
		return fmt.Errorf("clearing token: %w", err)
	}
	return nil
}

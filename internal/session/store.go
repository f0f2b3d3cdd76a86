// Package session keeps the signed in user's profile and connection state and
// drives sign-in and sign-out across providers.
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"social_media_auth/internal/kvstore"
	"social_media_auth/internal/shared"

	"go.uber.org/zap"
)

// ProfileKey is the key of the single persisted profile record.
const ProfileKey = "userProfile"

type StoreErrorKind string

const (
	KindSerialization StoreErrorKind = "SerializationError"
	KindIO            StoreErrorKind = "IOError"
)

// StoreError is returned by every Store method that touches persistence.
type StoreError struct {
	Kind StoreErrorKind
	Op   string // save, load or clear
	Err  error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("session store %s: %s: %v", e.Op, e.Kind, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }

func (e *StoreError) UserMessage() string {
	if e.Kind == KindSerialization && e.Op == "load" {
		return "Your saved profile could not be read. Please sign in again."
	}
	return fmt.Sprintf("Failed to %s profile", e.Op)
}

// Store persists the profile as one JSON record and keeps per-provider
// connection flags in memory only. The flags are a view of live adapter
// queries and are never written to the key-value store.
type Store struct {
	kv     kvstore.Store
	logger *zap.Logger

	mu        sync.RWMutex
	connected shared.ConnectionStatus
}

func NewStore(kv kvstore.Store, logger *zap.Logger) *Store {
	return &Store{kv: kv, logger: logger.Named("SessionStore")}
}

// Save replaces the stored profile.
func (s *Store) Save(ctx context.Context, p shared.Profile) error {
	b, err := json.Marshal(p)
	if err != nil {
		return &StoreError{Kind: KindSerialization, Op: "save", Err: err}
	}
	if err := s.kv.Set(ctx, ProfileKey, string(b)); err != nil {
		s.logger.Error("Failed to persist profile", zap.Error(err))
		return &StoreError{Kind: KindIO, Op: "save", Err: err}
	}
	return nil
}

// Load returns nil without error when nothing is stored.
func (s *Store) Load(ctx context.Context) (*shared.Profile, error) {
	raw, ok, err := s.kv.Get(ctx, ProfileKey)
	if err != nil {
		return nil, &StoreError{Kind: KindIO, Op: "load", Err: err}
	}
	if !ok {
		return nil, nil
	}
	var p shared.Profile
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		s.logger.Warn("Stored profile is corrupt", zap.Error(err))
		return nil, &StoreError{Kind: KindSerialization, Op: "load", Err: err}
	}
	return &p, nil
}

func (s *Store) Clear(ctx context.Context) error {
	if err := s.kv.Remove(ctx, ProfileKey); err != nil {
		return &StoreError{Kind: KindIO, Op: "clear", Err: err}
	}
	return nil
}

func (s *Store) SetConnected(id shared.ProviderID, connected bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.connected.Set(id, connected)
}

func (s *Store) GetConnected(id shared.ProviderID) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.connected.Get(id)
}

// Connections returns a copy of every flag.
func (s *Store) Connections() shared.ConnectionStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.connected
}

// Package kvstore is the local key-value persistence used for the session
// record and provider tokens. Values are opaque strings.
package kvstore

import "context"

// Store is a string key-value store. Set replaces the whole value atomically:
// a concurrent Get sees either the previous value or the new one.
type Store interface {
	// Get returns the value for key; ok is false when the key is absent.
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	// Remove deletes key. Removing an absent key is not an error.
	Remove(ctx context.Context, key string) error
}

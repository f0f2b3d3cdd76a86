package provider

import (
	"fmt"
	"sort"
	"sync"

	"social_media_auth/internal/common"
	"social_media_auth/internal/shared"
)

// Registry maps provider identifiers to their adapters.
type Registry struct {
	mu       sync.RWMutex
	adapters map[shared.ProviderID]Adapter
}

// NewRegistry registers the given adapters under their own IDs.
func NewRegistry(adapters ...Adapter) *Registry {
	r := &Registry{adapters: make(map[shared.ProviderID]Adapter)}
	for _, a := range adapters {
		r.Register(a)
	}
	return r
}

// Register adds or replaces the adapter for a.ID().
func (r *Registry) Register(a Adapter) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.adapters[a.ID()] = a
}

// Get returns the adapter for id or an error wrapping common.ErrUnknownProvider.
func (r *Registry) Get(id shared.ProviderID) (Adapter, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.adapters[id]
	if !ok {
		return nil, fmt.Errorf("%s: %w", id, common.ErrUnknownProvider)
	}
	return a, nil
}

// IDs lists registered providers, known providers first in display order.
func (r *Registry) IDs() []shared.ProviderID {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rank := make(map[shared.ProviderID]int, len(shared.Providers))
	for i, id := range shared.Providers {
		rank[id] = i
	}
	ids := make([]shared.ProviderID, 0, len(r.adapters))
	for id := range r.adapters {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		ri, iok := rank[ids[i]]
		rj, jok := rank[ids[j]]
		switch {
		case iok && jok:
			return ri < rj
		case iok != jok:
			return iok
		}
		return ids[i] < ids[j]
	})
	return ids
}

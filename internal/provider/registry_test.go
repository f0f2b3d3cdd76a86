package provider

import (
	"context"
	"testing"

	"social_media_auth/internal/common"
	"social_media_auth/internal/shared"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubAdapter struct{ id shared.ProviderID }

func (s stubAdapter) ID() shared.ProviderID                       { return s.id }
func (s stubAdapter) SignIn(context.Context) (RawUserInfo, error) { return nil, nil }
func (s stubAdapter) SignOut(context.Context) error               { return nil }
func (s stubAdapter) IsConnected(context.Context) bool            { return false }

func TestRegistry_GetAndIDs(t *testing.T) {
	r := NewRegistry(stubAdapter{id: shared.ProviderFacebook}, stubAdapter{id: shared.ProviderGoogle})

	a, err := r.Get(shared.ProviderGoogle)
	require.NoError(t, err)
	assert.Equal(t, shared.ProviderGoogle, a.ID())

	assert.Equal(t, []shared.ProviderID{shared.ProviderGoogle, shared.ProviderFacebook}, r.IDs())
}

func TestRegistry_UnknownProvider(t *testing.T) {
	r := NewRegistry(stubAdapter{id: shared.ProviderGoogle})
	_, err := r.Get(shared.ProviderFacebook)
	assert.ErrorIs(t, err, common.ErrUnknownProvider)
}

func TestRegistry_UnsortedExtrasGoLast(t *testing.T) {
	r := NewRegistry(stubAdapter{id: "zeta"}, stubAdapter{id: shared.ProviderFacebook}, stubAdapter{id: "alpha"})
	assert.Equal(t, []shared.ProviderID{shared.ProviderFacebook, "alpha", "zeta"}, r.IDs())
}

// Package providertest holds test doubles for provider.Adapter.
package providertest

import (
	"context"

	"social_media_auth/internal/provider"
	"social_media_auth/internal/shared"

	"github.com/stretchr/testify/mock"
)

var _ provider.Adapter = (*MockAdapter)(nil)

// MockAdapter is a testify mock of provider.Adapter.
type MockAdapter struct {
	mock.Mock
	Provider shared.ProviderID
}

func NewMockAdapter(id shared.ProviderID) *MockAdapter {
	return &MockAdapter{Provider: id}
}

func (m *MockAdapter) ID() shared.ProviderID { return m.Provider }

func (m *MockAdapter) SignIn(ctx context.Context) (provider.RawUserInfo, error) {
	args := m.Called(ctx)
	var raw provider.RawUserInfo
	if args.Get(0) != nil {
		raw = args.Get(0).(provider.RawUserInfo)
	}
	return raw, args.Error(1)
}

func (m *MockAdapter) SignOut(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockAdapter) IsConnected(ctx context.Context) bool {
	args := m.Called(ctx)
	return args.Bool(0)
}

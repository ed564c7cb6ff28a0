package auth

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService() *Service {
	return NewService(User{
		ID:            "demo-user-001",
		Email:         "demo@example.com",
		Name:          "Demo User",
		Tier:          "GOLD",
		Country:       "IN",
		LifetimeSpend: decimal.NewFromInt(15000),
		OrdersPlaced:  12,
	}, "s3cret!")
}

func TestService_Authenticate(t *testing.T) {
	s := newTestService()

	user, token, err := s.Authenticate("demo@example.com", "s3cret!")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "demo-user-001", user.ID)
	assert.NotEmpty(t, token)
	assert.True(t, s.ValidSession(token))

	// Each login gets a distinct token; both stay valid.
	_, second, err := s.Authenticate("demo@example.com", "s3cret!")
	require.NoError(t, err)
	assert.NotEqual(t, token, second)
	assert.True(t, s.ValidSession(token))
	assert.True(t, s.ValidSession(second))
}

func TestService_AuthenticateRejects(t *testing.T) {
	s := newTestService()

	tests := []struct {
		name            string
		email, password string
	}{
		{"wrong password", "demo@example.com", "nope"},
		{"wrong email", "other@example.com", "s3cret!"},
		{"empty credentials", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, token, err := s.Authenticate(tt.email, tt.password)
			require.ErrorIs(t, err, ErrInvalidCredentials)
			assert.Nil(t, user)
			assert.Empty(t, token)
		})
	}
}

func TestService_ValidSession_UnknownToken(t *testing.T) {
	s := newTestService()
	assert.False(t, s.ValidSession("made-up"))
}

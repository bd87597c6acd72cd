package service

import (
	"testing"

	"github.com/rocketscienceinc/squares-backend/internal/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthService_Tokens(t *testing.T) {
	auth := NewAuthService("test-secret")

	t.Run("RoundTrip", func(t *testing.T) {
		// When: a token is issued and parsed back
		token, err := auth.GenerateToken("Alice@Example.com")
		require.NoError(t, err)

		email, err := auth.ParseToken(token)

		// Then: the identifier comes back case-normalized
		require.NoError(t, err)
		assert.Equal(t, "alice@example.com", email)
	})

	t.Run("Garbage", func(t *testing.T) {
		_, err := auth.ParseToken("not-a-token")
		require.ErrorIs(t, err, apperror.ErrUnauthenticated)
	})

	t.Run("WrongSecret", func(t *testing.T) {
		token, err := NewAuthService("other-secret").GenerateToken("alice@example.com")
		require.NoError(t, err)

		_, err = auth.ParseToken(token)
		require.ErrorIs(t, err, apperror.ErrUnauthenticated)
	})
}

package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rafflehub/rafflehub/internal/shared/authorization"
	"github.com/rafflehub/rafflehub/internal/shared/biztime"
)

func TestJWTService_RoundTrip(t *testing.T) {
	svc := NewJWTService("secret", "rafflehub", 60)

	token, err := svc.Generate(authorization.Actor{ID: "shop-owner-1", Role: authorization.RoleShop, ShopID: 7})
	require.NoError(t, err)

	claims, err := svc.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, authorization.Actor{ID: "shop-owner-1", Role: authorization.RoleShop, ShopID: 7}, claims.Actor())
}

func TestJWTService_Rejects(t *testing.T) {
	svc := NewJWTService("secret", "rafflehub", 60)

	t.Run("wrong secret", func(t *testing.T) {
		other := NewJWTService("other", "rafflehub", 60)
		token, err := other.Generate(authorization.Actor{ID: "u", Role: authorization.RoleUser})
		require.NoError(t, err)

		_, err = svc.Verify(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("wrong issuer", func(t *testing.T) {
		other := NewJWTService("secret", "someone-else", 60)
		token, err := other.Generate(authorization.Actor{ID: "u", Role: authorization.RoleUser})
		require.NoError(t, err)

		_, err = svc.Verify(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("expired", func(t *testing.T) {
		old := NewJWTService("secret", "rafflehub", 1)
		old.clock = biztime.FixedClock{T: time.Now().Add(-time.Hour)}
		token, err := old.Generate(authorization.Actor{ID: "u", Role: authorization.RoleUser})
		require.NoError(t, err)

		_, err = svc.Verify(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("shop token without shop id", func(t *testing.T) {
		token, err := svc.Generate(authorization.Actor{ID: "s", Role: authorization.RoleShop})
		require.NoError(t, err)

		_, err = svc.Verify(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("none algorithm", func(t *testing.T) {
		claims := &Claims{UserID: "u", Role: authorization.RoleAdmin, RegisteredClaims: jwt.RegisteredClaims{Issuer: "rafflehub"}}
		token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		_, err = svc.Verify(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("invalid role is not signed", func(t *testing.T) {
		_, err := svc.Generate(authorization.Actor{ID: "u", Role: "root"})
		assert.Error(t, err)
	})
}

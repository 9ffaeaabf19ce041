package services

import (
	"testing"

	"pmeboard/model"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	t.Setenv("JWT_SECRET_KEY", "test-secret")

	token, err := CreateAccessToken("u1", "maria@corretora.com", []string{"admin", "corretor"})
	require.NoError(t, err)

	claims := &model.AccessClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	require.True(t, parsed.Valid)

	assert.Equal(t, "u1", claims.UserID)
	assert.Equal(t, "maria@corretora.com", claims.Email)
	assert.Equal(t, []string{"admin", "corretor"}, claims.Roles)
	assert.Equal(t, "pmeboard", claims.Issuer)
}

func TestRefreshTokenHashCompare(t *testing.T) {
	t.Setenv("JWT_REFRESH_SECRET_KEY", "refresh-secret")

	token, err := CreateRefreshToken("u1")
	require.NoError(t, err)

	hashed, err := HashRefreshToken(token)
	require.NoError(t, err)

	assert.NoError(t, CompareRefreshToken(hashed, token))
	assert.Error(t, CompareRefreshToken(hashed, token+"tampered"))
}

package media

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildTokenRequiresCredentials(t *testing.T) {
	builder := NewTokenBuilder("", "secret", time.Hour)

	require.False(t, builder.Configured())
	_, err := builder.BuildToken("room_x", "u1", RolePublisher)
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestBuildTokenDefaultsToSubscriber(t *testing.T) {
	builder := NewTokenBuilder("app", "secret", time.Minute)

	signed, err := builder.BuildToken("room_x", "u1", "director")
	require.NoError(t, err)

	parsed, err := jwt.Parse(signed, func(token *jwt.Token) (any, error) {
		return []byte("secret"), nil
	})
	require.NoError(t, err)
	claims := parsed.Claims.(jwt.MapClaims)
	assert.Equal(t, RoleSubscriber, claims["role"])
	assert.Equal(t, "app", claims["app_id"])

	exp := int64(claims["exp"].(float64))
	iat := int64(claims["iat"].(float64))
	assert.Equal(t, int64(60), exp-iat)
}

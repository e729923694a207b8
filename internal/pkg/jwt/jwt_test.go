package jwt

import (
	"testing"

	"github.com/communityroots/volunteer-backend-go/internal/domain/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-for-jwt"

func TestGenerateAccessToken(t *testing.T) {
	service := NewJWTService(testSecret, "1h", "24h")

	tokenString, expiresAt, err := service.GenerateAccessToken("user-123", "vol@example.com", user.RoleVolunteer)
	require.NoError(t, err)
	assert.NotEmpty(t, tokenString)
	assert.Greater(t, expiresAt, int64(0))

	token, err := service.JWTAuth().Decode(tokenString)
	require.NoError(t, err)

	userID, _ := token.Get("user_id")
	assert.Equal(t, "user-123", userID)
	role, _ := token.Get("role")
	assert.Equal(t, "volunteer", role)
	tokenType, _ := token.Get("type")
	assert.Equal(t, "access", tokenType)
}

func TestDecodeRefreshToken_RoundTrip(t *testing.T) {
	service := NewJWTService(testSecret, "1h", "24h")

	tokenString, _, err := service.GenerateRefreshToken("user-456")
	require.NoError(t, err)

	userID, err := service.DecodeRefreshToken(tokenString)
	require.NoError(t, err)
	assert.Equal(t, "user-456", userID)
}

func TestDecodeRefreshToken_RejectsAccessToken(t *testing.T) {
	service := NewJWTService(testSecret, "1h", "24h")

	accessToken, _, err := service.GenerateAccessToken("user-789", "vol@example.com", user.RoleVolunteer)
	require.NoError(t, err)

	_, err = service.DecodeRefreshToken(accessToken)
	assert.Error(t, err)
}

func TestDecodeRefreshToken_RejectsWrongSecret(t *testing.T) {
	service := NewJWTService(testSecret, "1h", "24h")
	other := NewJWTService("a-completely-different-secret", "1h", "24h")

	tokenString, _, err := other.GenerateRefreshToken("user-999")
	require.NoError(t, err)

	_, err = service.DecodeRefreshToken(tokenString)
	assert.Error(t, err)
}

func TestRefreshTokenCookie(t *testing.T) {
	service := NewJWTService(testSecret, "1h", "24h")

	cookie := service.RefreshTokenCookie("some-token", 1700000000)
	assert.Equal(t, "refresh_token", cookie.Name)
	assert.Equal(t, "some-token", cookie.Value)
	assert.Equal(t, "/api/v1/auth", cookie.Path)
	assert.True(t, cookie.HttpOnly)
}

package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testService() *JWTService {
	return NewJWTService(JWTConfig{
		SecretKey:       "test-secret-key",
		AccessTokenExp:  15 * time.Minute,
		RefreshTokenExp: 7 * 24 * time.Hour,
		TokenIssuer:     "greeklink-test",
	})
}

func TestGenerateTokenPair_RoundTrip(t *testing.T) {
	svc := testService()

	accessToken, refreshToken, expiresIn, refreshExpiresIn, err := svc.GenerateTokenPair(42, "jane@example.com", "ADMIN")
	require.NoError(t, err)
	require.NotEmpty(t, accessToken)
	require.NotEmpty(t, refreshToken)
	assert.Equal(t, int((15 * time.Minute).Seconds()), expiresIn)
	assert.Equal(t, int((7 * 24 * time.Hour).Seconds()), refreshExpiresIn)

	claims, err := svc.ValidateAndExtractClaims(accessToken)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "jane@example.com", claims.Email)
	assert.Equal(t, "ADMIN", claims.Role)
	assert.Equal(t, "greeklink-test", claims.Issuer)
}

func TestGenerateTokenPair_RefreshTokenIsOpaque(t *testing.T) {
	svc := testService()

	_, refreshToken, _, _, err := svc.GenerateTokenPair(1, "a@example.com", "MEMBER")
	require.NoError(t, err)

	// The refresh token is not a JWT and must never validate as one
	_, err = svc.ValidateToken(refreshToken)
	assert.Error(t, err)
}

func TestValidateToken_WrongSecret(t *testing.T) {
	svc := testService()
	accessToken, _, _, _, err := svc.GenerateTokenPair(7, "b@example.com", "MEMBER")
	require.NoError(t, err)

	other := NewJWTService(JWTConfig{
		SecretKey:      "a-different-secret",
		AccessTokenExp: 15 * time.Minute,
	})
	_, err = other.ValidateToken(accessToken)
	assert.Error(t, err)
}

func TestValidateToken_Expired(t *testing.T) {
	svc := NewJWTService(JWTConfig{
		SecretKey:      "test-secret-key",
		AccessTokenExp: -time.Minute,
	})

	accessToken, _, _, _, err := svc.GenerateTokenPair(7, "c@example.com", "MEMBER")
	require.NoError(t, err)

	_, err = svc.ValidateToken(accessToken)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestValidateAndExtractClaims_Empty(t *testing.T) {
	_, err := testService().ValidateAndExtractClaims("")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestExtractBearerToken(t *testing.T) {
	token, err := ExtractBearerToken("Bearer abc.def.ghi")
	require.NoError(t, err)
	assert.Equal(t, "abc.def.ghi", token)

	// A bare token without the scheme prefix is accepted as-is
	token, err = ExtractBearerToken("abc.def.ghi")
	require.NoError(t, err)
	assert.Equal(t, "abc.def.ghi", token)

	_, err = ExtractBearerToken("")
	assert.ErrorIs(t, err, ErrInvalidFormat)
}

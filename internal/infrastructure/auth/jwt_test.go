package auth

import (
	"testing"
	"time"

	"github.com/buildledger/backend/internal/infrastructure/config"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testJWTService() *JWTService {
	return NewJWTService(config.JWTConfig{
		Secret:                 "test-secret-key",
		AccessTokenExpiration:  time.Minute,
		RefreshTokenExpiration: time.Hour,
		Issuer:                 "buildledger-test",
	})
}

func TestJWTService_GenerateAndValidate(t *testing.T) {
	svc := testJWTService()
	userID := uuid.New()

	pair, err := svc.GenerateTokenPair(GenerateTokenInput{
		UserID:      userID,
		Email:       "pm@example.com",
		IsStaff:     true,
		IsSuperuser: false,
	})
	require.NoError(t, err)
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)
	assert.Equal(t, "Bearer", pair.TokenType)

	claims, err := svc.ValidateAccessToken(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, userID.String(), claims.UserID)
	assert.Equal(t, "pm@example.com", claims.Email)
	assert.True(t, claims.IsStaff)
	assert.False(t, claims.IsSuperuser)
	assert.Equal(t, TokenTypeAccess, claims.TokenType)
	assert.NotEmpty(t, claims.ID)
}

func TestJWTService_TokenTypeEnforced(t *testing.T) {
	svc := testJWTService()
	pair, err := svc.GenerateTokenPair(GenerateTokenInput{UserID: uuid.New(), Email: "x@example.com"})
	require.NoError(t, err)

	_, err = svc.ValidateAccessToken(pair.RefreshToken)
	assert.ErrorIs(t, err, ErrInvalidTokenType)

	_, err = svc.ValidateRefreshToken(pair.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidTokenType)
}

func TestJWTService_RefreshTokenRoundTrip(t *testing.T) {
	svc := testJWTService()
	userID := uuid.New()
	pair, err := svc.GenerateTokenPair(GenerateTokenInput{UserID: userID, Email: "x@example.com"})
	require.NoError(t, err)

	claims, err := svc.ValidateRefreshToken(pair.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, userID.String(), claims.UserID)
	assert.Equal(t, TokenTypeRefresh, claims.TokenType)
}

func TestJWTService_ExpiredToken(t *testing.T) {
	svc := NewJWTService(config.JWTConfig{
		Secret:                 "test-secret-key",
		AccessTokenExpiration:  -time.Minute,
		RefreshTokenExpiration: time.Hour,
		Issuer:                 "buildledger-test",
	})
	pair, err := svc.GenerateTokenPair(GenerateTokenInput{UserID: uuid.New(), Email: "x@example.com"})
	require.NoError(t, err)

	_, err = svc.ValidateAccessToken(pair.AccessToken)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestJWTService_TamperedToken(t *testing.T) {
	svc := testJWTService()
	pair, err := svc.GenerateTokenPair(GenerateTokenInput{UserID: uuid.New(), Email: "x@example.com"})
	require.NoError(t, err)

	_, err = svc.ValidateAccessToken(pair.AccessToken + "x")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestHashAndComparePassword(t *testing.T) {
	hash, err := HashPassword("s3cret-pass")
	require.NoError(t, err)
	require.NotEqual(t, "s3cret-pass", hash)

	assert.NoError(t, ComparePassword(hash, "s3cret-pass"))
	assert.ErrorIs(t, ComparePassword(hash, "wrong"), ErrPasswordMismatch)
}

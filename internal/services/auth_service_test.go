package services_test

import (
	"testing"
	"time"

	"giftmart/internal/apperrors"
	"giftmart/internal/services"

	"github.com/dgrijalva/jwt-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test_jwt_secret"

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func TestAuthService_ValidateToken(t *testing.T) {
	service := services.NewAuthService(testSecret)

	tokenString := signToken(t, testSecret, jwt.MapClaims{
		"sub":   "ext-1",
		"email": "ada@example.com",
		"name":  "Ada",
		"exp":   time.Now().Add(time.Hour).Unix(),
		"iat":   time.Now().Unix(),
	})

	claims, err := service.ValidateToken(tokenString)
	require.NoError(t, err)
	assert.Equal(t, "ext-1", claims.UserID)
	assert.Equal(t, "ada@example.com", claims.Email)
	assert.Equal(t, "Ada", claims.Name)
}

func TestAuthService_RejectsWrongSecret(t *testing.T) {
	service := services.NewAuthService(testSecret)

	tokenString := signToken(t, "some-other-secret", jwt.MapClaims{
		"sub": "ext-1",
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	_, err := service.ValidateToken(tokenString)
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}

func TestAuthService_RejectsExpiredToken(t *testing.T) {
	service := services.NewAuthService(testSecret)

	tokenString := signToken(t, testSecret, jwt.MapClaims{
		"sub": "ext-1",
		"exp": time.Now().Add(-time.Hour).Unix(),
	})

	_, err := service.ValidateToken(tokenString)
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}

func TestAuthService_RejectsMissingSubject(t *testing.T) {
	service := services.NewAuthService(testSecret)

	tokenString := signToken(t, testSecret, jwt.MapClaims{
		"email": "ada@example.com",
		"exp":   time.Now().Add(time.Hour).Unix(),
	})

	_, err := service.ValidateToken(tokenString)
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}

func TestAuthService_RejectsGarbage(t *testing.T) {
	service := services.NewAuthService(testSecret)

	_, err := service.ValidateToken("not-a-token")
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}

package services

import (
	"fmt"
	"log"

	"giftmart/internal/apperrors"

	"github.com/dgrijalva/jwt-go"
)

// Claims are the identity-provider claims this service trusts after
// signature verification. The role used for admin gating does NOT come from
// here; it is read from the synced user record so a client cannot elevate
// itself by minting claims it controls.
type Claims struct {
	UserID string // external user key ("sub")
	Email  string
	Name   string
}

// AuthService verifies tokens issued by the external identity provider.
// Tokens are HMAC-signed with a secret shared with the provider; claims are
// trusted without a callback once the signature checks out.
type AuthService struct {
	jwtSecret []byte
}

// NewAuthService creates a new AuthService.
func NewAuthService(jwtSecret string) *AuthService {
	return &AuthService{
		jwtSecret: []byte(jwtSecret),
	}
}

// ValidateToken parses and validates a JWT token, returning the identity
// claims if valid.
func (s *AuthService) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		// Validate the alg is what we expect:
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		log.Printf("Token validation error: %v", err)
		return nil, fmt.Errorf("invalid token: %w", apperrors.ErrUnauthorized)
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token: %w", apperrors.ErrUnauthorized)
	}

	sub, _ := mapClaims["sub"].(string)
	if sub == "" {
		return nil, fmt.Errorf("token missing subject claim: %w", apperrors.ErrUnauthorized)
	}

	claims := &Claims{UserID: sub}
	claims.Email, _ = mapClaims["email"].(string)
	claims.Name, _ = mapClaims["name"].(string)
	return claims, nil
}

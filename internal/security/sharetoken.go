package security

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ErrInvalidShareToken is returned for tokens that are malformed, expired,
// or signed with the wrong key.
var ErrInvalidShareToken = errors.New("invalid share token")

// shareScope is the only claim scope a share token may carry
const shareScope = "stats:read"

type shareClaims struct {
	Scope string `json:"scope"`
	jwt.RegisteredClaims
}

// MintShareToken issues a signed read-only token that grants access to the
// public statistics view for ttl.
func MintShareToken(secret string, ttl time.Duration) (string, error) {
	if secret == "" {
		return "", errors.New("share token secret not configured")
	}

	now := time.Now()
	claims := shareClaims{
		Scope: shareScope,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("failed to sign share token: %w", err)
	}
	return signed, nil
}

// ValidateShareToken verifies a share token's signature, expiry, and scope
func ValidateShareToken(secret, tokenString string) error {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{"HS256"}))

	claims := &shareClaims{}
	token, err := parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return ErrInvalidShareToken
	}
	if claims.Scope != shareScope {
		return ErrInvalidShareToken
	}
	return nil
}

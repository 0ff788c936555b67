package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
)

// CallerClaims defines the custom claims for the service. The subject holds
// the caller's textual principal; derivations are scoped by it.
type CallerClaims struct {
	jwt.RegisteredClaims
}

// Principal returns the caller's textual principal.
func (c *CallerClaims) Principal() string {
	return c.Subject
}

// JWTManager handles JWT generation and validation
type JWTManager struct {
	secretKey     []byte
	issuer        string
	tokenDuration time.Duration
}

// NewJWTManager creates a new JWTManager
func NewJWTManager(secretKey string, issuer string, tokenDuration time.Duration) *JWTManager {
	return &JWTManager{
		secretKey:     []byte(secretKey),
		issuer:        issuer,
		tokenDuration: tokenDuration,
	}
}

// Generate creates a new JWT token for the given textual principal
func (m *JWTManager) Generate(principal string) (string, error) {
	claims := CallerClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(m.tokenDuration)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
			Issuer:    m.issuer,
			Subject:   principal,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secretKey)
}

// Validate validates the JWT token and returns the claims
func (m *JWTManager) Validate(tokenString string) (*CallerClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &CallerClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secretKey, nil
	})

	if err != nil {
		return nil, errors.Wrap(err, "invalid token")
	}

	claims, ok := token.Claims.(*CallerClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token claims")
	}

	return claims, nil
}

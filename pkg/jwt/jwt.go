package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("invalid token")

// Claims carries only the user id besides the registered time claims.
type Claims struct {
	UserID string `json:"user_id"`
	jwt.RegisteredClaims
}

// Issuer signs and validates session tokens. The expiry depends on whether the
// user asked to stay logged in.
type Issuer struct {
	secret        []byte
	ttl           time.Duration
	persistentTTL time.Duration
	now           func() time.Time
}

func NewIssuer(secret string, ttl, persistentTTL time.Duration) *Issuer {
	return &Issuer{
		secret:        []byte(secret),
		ttl:           ttl,
		persistentTTL: persistentTTL,
		now:           time.Now,
	}
}

// TTL returns the token lifetime for the given tier.
func (i *Issuer) TTL(persistent bool) time.Duration {
	if persistent {
		return i.persistentTTL
	}
	return i.ttl
}

func (i *Issuer) GenerateToken(userID string, persistent bool) (string, time.Time, error) {
	now := i.now()
	expiresAt := now.Add(i.TTL(persistent))

	claims := Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}
	return token, expiresAt, nil
}

func (i *Issuer) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return i.secret, nil
	}, jwt.WithTimeFunc(i.now))
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.UserID == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// Package session mints and verifies signed session tokens.
//
// Tokens are HS256 JWTs carrying the account's identity snapshot. The
// role and permission grants in the token reflect the account at sign-in
// time; changes take effect when the token is reissued.
package session

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/dealhub/dealhub/pkg/identity"
	"github.com/dealhub/dealhub/pkg/model"
)

// SecretEnvVar names the environment variable holding the signing secret
const SecretEnvVar = "DEALHUB_SESSION_SECRET"

var (
	// ErrNoSecret is returned when no signing secret is configured
	ErrNoSecret = errors.New("session: signing secret not configured")

	// ErrInvalidToken is returned for tokens that fail verification
	ErrInvalidToken = errors.New("session: invalid token")
)

// Signer mints and verifies session tokens with a shared secret
type Signer struct {
	secret []byte
	ttl    time.Duration
}

// NewSigner creates a signer with an explicit secret
func NewSigner(secret []byte, ttl time.Duration) *Signer {
	return &Signer{secret: secret, ttl: ttl}
}

// NewSignerFromEnv creates a signer using DEALHUB_SESSION_SECRET
func NewSignerFromEnv(ttl time.Duration) (*Signer, error) {
	secret := os.Getenv(SecretEnvVar)
	if secret == "" {
		return nil, ErrNoSecret
	}
	return NewSigner([]byte(secret), ttl), nil
}

type sessionClaims struct {
	Email       string   `json:"email"`
	Role        string   `json:"role"`
	Permissions []string `json:"permissions"`
	jwt.RegisteredClaims
}

// Mint issues a signed token for a user
func (s *Signer) Mint(user *model.User) (string, error) {
	now := time.Now()
	claims := sessionClaims{
		Email:       user.Email,
		Role:        user.Role,
		Permissions: user.Permissions,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}
	return signed, nil
}

// Parse verifies a token and returns the identity claims it carries
func (s *Signer) Parse(tokenString string) (identity.Claims, error) {
	var claims sessionClaims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil || !token.Valid {
		return identity.Claims{}, ErrInvalidToken
	}

	out := identity.Claims{
		UserID:      claims.Subject,
		Email:       claims.Email,
		Role:        claims.Role,
		Permissions: claims.Permissions,
	}
	if claims.IssuedAt != nil {
		out.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		out.ExpiresAt = claims.ExpiresAt.Time
	}
	return out, nil
}

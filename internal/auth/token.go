package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultAccessTTL applies when the caller does not specify a token lifetime.
const DefaultAccessTTL = 15 * time.Minute

// ErrInvalidToken is returned when a token fails signature or claim validation.
var ErrInvalidToken = errors.New("invalid token")

// AccessToken is a signed HS256 JWT together with its expiry.
type AccessToken struct {
	Token string
	Exp   time.Time
}

// NewAccessToken builds and signs an HS256 JWT for the given subject.
// The token carries standard sub, exp and iat claims. A non-positive ttl
// falls back to DefaultAccessTTL.
func NewAccessToken(secret, subject string, ttl time.Duration) (AccessToken, error) {
	if ttl <= 0 {
		ttl = DefaultAccessTTL
	}
	now := time.Now().UTC()
	exp := now.Add(ttl)

	claims := jwt.RegisteredClaims{
		Subject:   subject,
		ExpiresAt: jwt.NewNumericDate(exp),
		IssuedAt:  jwt.NewNumericDate(now),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		return AccessToken{}, err
	}
	return AccessToken{Token: signed, Exp: exp}, nil
}

// ParseSubject validates a signed token and returns its subject claim.
// Expired tokens and tokens signed with another method or secret are rejected.
func ParseSubject(secret, tokenStr string) (string, error) {
	tok, err := jwt.Parse(tokenStr, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil || !tok.Valid {
		return "", ErrInvalidToken
	}
	sub, err := tok.Claims.GetSubject()
	if err != nil || sub == "" {
		return "", ErrInvalidToken
	}
	return sub, nil
}

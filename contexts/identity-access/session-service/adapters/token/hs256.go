package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	domainerrors "skvote/contexts/identity-access/session-service/domain/errors"
)

// HS256Codec signs and verifies session tokens with a shared HMAC secret.
type HS256Codec struct {
	secret []byte
	issuer string
}

func NewHS256Codec(secret string, issuer string) *HS256Codec {
	return &HS256Codec{secret: []byte(secret), issuer: issuer}
}

type sessionClaims struct {
	jwt.RegisteredClaims
}

func (c *HS256Codec) Issue(accountID string, issuedAt time.Time, ttl time.Duration) (string, error) {
	claims := sessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   accountID,
			Issuer:    c.issuer,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
}

func (c *HS256Codec) Verify(token string) (string, error) {
	parsed, err := jwt.ParseWithClaims(token, &sessionClaims{}, func(t *jwt.Token) (any, error) {
		// prevent alg confusion
		if t.Method == nil || t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, domainerrors.ErrTokenInvalid
		}
		return c.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", domainerrors.ErrTokenExpired
		}
		return "", domainerrors.ErrTokenInvalid
	}

	claims, ok := parsed.Claims.(*sessionClaims)
	if !ok || !parsed.Valid || claims.Subject == "" {
		return "", domainerrors.ErrTokenInvalid
	}
	return claims.Subject, nil
}

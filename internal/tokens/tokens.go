package tokens

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	ScopeAccess      = "access"
	ScopeRefresh     = "refresh"
	ScopeEmailVerify = "email_verification"
)

var (
	ErrTokenInvalid = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)

type Claims struct {
	Scope string `json:"scope"`
	jwt.RegisteredClaims
}

// Service signs and verifies the three token kinds with a single
// process-wide HS256 secret. Scope keeps them from being replayed
// outside their purpose.
type Service struct {
	Secret []byte
}

func (s *Service) Create(subject, scope string, ttl time.Duration) (string, error) {
	now := time.Now().UTC()
	// The jti keeps two tokens minted within the same second from
	// being byte-identical, otherwise rotation could hand back the
	// token it was supposed to replace.
	claims := Claims{
		Scope: scope,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(s.Secret)
}

// Decode verifies the signature and expiry, checks that the token
// carries expectedScope and returns its subject.
func (s *Service) Decode(raw, expectedScope string) (string, error) {
	var claims Claims
	tkn, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (any, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, ErrTokenInvalid
		}
		return s.Secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", ErrTokenExpired
		}
		return "", ErrTokenInvalid
	}
	if !tkn.Valid {
		return "", ErrTokenInvalid
	}

	if claims.Scope != expectedScope {
		return "", ErrTokenInvalid
	}

	return claims.Subject, nil
}

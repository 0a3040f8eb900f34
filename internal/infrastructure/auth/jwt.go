package auth

import (
	"errors"
	"fmt"
	"time"

	"igia-backend/internal/domain/user"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrNoSecret     = errors.New("no jwt secret configured")
	ErrInvalidToken = errors.New("invalid token")
)

// Claims carries the public user id as subject plus role and staff flag.
type Claims struct {
	jwt.RegisteredClaims
	Role  string `json:"role,omitempty"`
	Staff bool   `json:"staff,omitempty"`
}

// Tokens issues and verifies HS256 access tokens.
type Tokens struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokens(secret string, ttl time.Duration) *Tokens {
	return &Tokens{secret: []byte(secret), ttl: ttl, now: func() time.Time { return time.Now().UTC() }}
}

func (t *Tokens) Issue(p user.Principal) (string, time.Time, error) {
	if len(t.secret) == 0 {
		return "", time.Time{}, ErrNoSecret
	}
	now := t.now()
	exp := now.Add(t.ttl)
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   p.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
		Role:  string(p.Role),
		Staff: p.IsStaff,
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, exp, nil
}

func (t *Tokens) Parse(token string) (user.Principal, error) {
	if len(t.secret) == 0 {
		return user.Principal{}, ErrNoSecret
	}
	parsed, err := jwt.ParseWithClaims(token, &Claims{}, func(tok *jwt.Token) (interface{}, error) {
		if _, ok := tok.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", tok.Header["alg"])
		}
		return t.secret, nil
	}, jwt.WithTimeFunc(t.now))
	if err != nil {
		return user.Principal{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid || claims.Subject == "" {
		return user.Principal{}, ErrInvalidToken
	}
	return user.Principal{UserID: claims.Subject, Role: user.Role(claims.Role), IsStaff: claims.Staff}, nil
}

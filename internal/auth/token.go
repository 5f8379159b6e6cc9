// Package auth implements the signed bearer token codec and the session
// lifecycle manager that keeps one token renewed in the background.
package auth

import (
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	apperrors "pennyplan/internal/errors"
)

// bearerPrefix is the optional scheme prefix stripped before decoding.
const bearerPrefix = "Bearer "

// Claims represents the claims embedded in a bearer token.
type Claims struct {
	UserID string `json:"user_id"`
	jwt.RegisteredClaims
}

// Session is one authenticated session: the token plus the claims it
// was minted from. It is held by a single lifecycle manager and never
// shared across sessions.
type Session struct {
	Token     string
	Subject   string
	UserID    string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Codec issues and verifies HMAC-SHA-256 signed bearer tokens. The
// signing key is process-wide, supplied externally, and never derived
// from a password.
type Codec struct {
	secret []byte
	ttl    time.Duration
}

// NewCodec creates a codec signing with secret and issuing tokens valid
// for ttl. The secret must be at least 256 bits; config enforces this.
func NewCodec(secret []byte, ttl time.Duration) *Codec {
	return &Codec{secret: secret, ttl: ttl}
}

// Issue mints a token for subject/userID expiring after the codec TTL.
func (c *Codec) Issue(subject, userID string) (Session, error) {
	now := time.Now()
	expiresAt := now.Add(c.ttl)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	})

	signed, err := token.SignedString(c.secret)
	if err != nil {
		return Session{}, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return Session{
		Token:     signed,
		Subject:   subject,
		UserID:    userID,
		IssuedAt:  now,
		ExpiresAt: expiresAt,
	}, nil
}

// Verify checks the signature and expiry of raw, which may carry an
// optional "Bearer " prefix. Malformed, tampered, and expired tokens all
// collapse to the same InvalidToken error so the caller cannot tell why
// verification failed.
func (c *Codec) Verify(raw string) (*Claims, error) {
	raw = strings.TrimPrefix(raw, bearerPrefix)

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return c.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, apperrors.Wrap(apperrors.ErrInvalidToken, err)
	}

	return claims, nil
}

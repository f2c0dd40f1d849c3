package auth

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const bearerPrefix = "Bearer "

// Claims is what the client reads out of its session token.
type Claims struct {
	UserID    string
	Name      string
	ExpiresAt time.Time // zero when the token has no exp claim
}

// InspectToken decodes tokenString without verifying its signature; the
// server does that. It fails fast on malformed or already expired tokens so
// the client does not dial with a credential the server will refuse.
func InspectToken(tokenString string, now time.Time) (*Claims, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tokenString, claims); err != nil {
		return nil, fmt.Errorf("parsing token: %w", err)
	}
	c := &Claims{
		UserID: UserIDFromClaims(claims),
		Name:   FirstNameFromClaims(claims),
	}
	exp, err := claims.GetExpirationTime()
	if err != nil {
		return nil, fmt.Errorf("reading exp: %w", err)
	}
	if exp != nil {
		c.ExpiresAt = exp.Time
		if !now.Before(exp.Time) {
			return nil, fmt.Errorf("%w at %s", jwt.ErrTokenExpired, exp.Time.Format(time.RFC3339))
		}
	}
	return c, nil
}

// Header returns the handshake headers carrying token.
func Header(token string) http.Header {
	h := http.Header{}
	if token != "" {
		h.Set("Authorization", bearerPrefix+token)
	}
	return h
}

// FirstNameFromClaims returns the first word of the "name" claim, or a fallback.
func FirstNameFromClaims(claims jwt.MapClaims) string {
	name, _ := claims["name"].(string)
	parts := strings.Fields(name)
	if len(parts) == 0 {
		return "Player"
	}
	return parts[0]
}

// UserIDFromClaims returns the user id from claims ("sub" or "id").
func UserIDFromClaims(claims jwt.MapClaims) string {
	if sub, ok := claims["sub"].(string); ok && sub != "" {
		return sub
	}
	if id, ok := claims["id"].(string); ok && id != "" {
		return id
	}
	return ""
}

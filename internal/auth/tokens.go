// Package auth issues and verifies the JWTs that carry the authenticated
// user identity between requests. Tokens are HS256-signed and delivered
// as an HttpOnly cookie (or a Bearer header for API clients).
package auth

import (
	"fmt"
	"time"

	"github.com/lestrrat-go/jwx/v2/jwa"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

// TokenTTL is how long an issued session token stays valid
const TokenTTL = 15 * 24 * time.Hour

// CookieName is the cookie carrying the session token
const CookieName = "jwt"

// IssueToken creates a signed session token for the user
func IssueToken(secret []byte, userID string) (string, error) {
	if userID == "" {
		return "", fmt.Errorf("user id is required")
	}

	now := time.Now().UTC()
	token, err := jwt.NewBuilder().
		Subject(userID).
		IssuedAt(now).
		Expiration(now.Add(TokenTTL)).
		Build()
	if err != nil {
		return "", fmt.Errorf("failed to build token: %w", err)
	}

	signed, err := jwt.Sign(token, jwt.WithKey(jwa.HS256, secret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return string(signed), nil
}

// VerifyToken validates a session token's signature and expiry and
// returns the user id it carries
func VerifyToken(secret []byte, raw string) (string, error) {
	token, err := jwt.Parse([]byte(raw),
		jwt.WithKey(jwa.HS256, secret),
		jwt.WithValidate(true))
	if err != nil {
		return "", fmt.Errorf("invalid token: %w", err)
	}

	userID := token.Subject()
	if userID == "" {
		return "", fmt.Errorf("token missing subject")
	}

	return userID, nil
}

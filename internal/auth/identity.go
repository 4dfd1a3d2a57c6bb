// File: internal/auth/identity.go
package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// userIDClaims lists where upstream tokens carry the user identifier, in lookup order.
var userIDClaims = []string{"id", "userId", "_id", "sub"}

// UserIDFromToken reads the user identifier out of a JWT without verifying it.
// The gateway does not hold the signing key; the upstream verifies the token it receives.
func UserIDFromToken(token string) string {
	if token == "" {
		return ""
	}
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return ""
	}
	for _, name := range userIDClaims {
		switch v := claims[name].(type) {
		case string:
			if v != "" {
				return v
			}
		case float64:
			return fmt.Sprintf("%.0f", v)
		}
	}
	return ""
}

// ExpiryFromToken returns the exp claim of a JWT, read without verification.
func ExpiryFromToken(token string) (time.Time, bool) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}

package domain

import (
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// UserRecord is the cached identity of the signed-in user.
type UserRecord struct {
	Username string `json:"username"`
	Role     string `json:"role,omitempty"`
	Subject  string `json:"sub,omitempty"`
}

// SessionState is what the session store persists: a token and a user record,
// always written and cleared together.
type SessionState struct {
	Token string      `json:"token"`
	User  *UserRecord `json:"user"`
}

func (s SessionState) IsEmpty() bool { return s.Token == "" && s.User == nil }

// TokenClaims is what the client can read from a token without verifying it.
// Verification is the backend's job.
type TokenClaims struct {
	User      UserRecord
	ExpiresAt time.Time
}

// DecodeTokenClaims reads the claims of a JWT without checking the signature.
// ok is false for opaque (non-JWT) tokens.
func DecodeTokenClaims(token string) (claims TokenClaims, ok bool) {
	mc := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, mc); err != nil {
		return TokenClaims{}, false
	}
	claims.User.Username, _ = mc["username"].(string)
	claims.User.Role, _ = mc["role"].(string)
	if sub, err := mc.GetSubject(); err == nil {
		claims.User.Subject = sub
	}
	if claims.User.Subject == "" {
		// Some backends put a numeric user id in sub.
		if f, isNum := mc["sub"].(float64); isNum {
			claims.User.Subject = formatNumber(f)
		}
	}
	if exp, err := mc.GetExpirationTime(); err == nil && exp != nil {
		claims.ExpiresAt = exp.Time
	}
	return claims, true
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

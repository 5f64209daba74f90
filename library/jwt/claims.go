package jwt

import (
	"time"

	gutils "github.com/Laisky/go-utils/v6"
	"github.com/golang-jwt/jwt/v5"
)

// AccessClaims is the payload carried by an access token.
//
// The token is self-contained: verification needs only the signature
// and the registered time claims, never a store lookup.
type AccessClaims struct {
	jwt.RegisteredClaims
	// Email login email of the subject
	Email string `json:"email"`
}

// NewAccessClaims builds claims for subject/email expiring after ttl.
func NewAccessClaims(subject, email string, ttl time.Duration) *AccessClaims {
	now := gutils.Clock.GetUTCNow()
	return &AccessClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Email: email,
	}
}

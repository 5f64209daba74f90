// Package jwt signs and verifies HS256 access tokens.
package jwt

import (
	"github.com/Laisky/errors/v2"
	gutils "github.com/Laisky/go-utils/v6"
	jwtLib "github.com/golang-jwt/jwt/v5"
)

var (
	// ErrExpired indicates the token signature is fine but it is past its expiry.
	ErrExpired = errors.New("token expired")
	// ErrInvalid indicates the token is malformed or its signature does not verify.
	ErrInvalid = errors.New("token invalid")
)

// Signer signs and verifies access tokens with a shared HMAC secret.
type Signer struct {
	secret []byte
}

// NewSigner creates a signer from the shared secret.
func NewSigner(secret []byte) (*Signer, error) {
	if len(secret) == 0 {
		return nil, errors.New("empty jwt secret")
	}

	return &Signer{secret: secret}, nil
}

// Sign produces a signed token string for the claims.
func (s *Signer) Sign(claims *AccessClaims) (string, error) {
	token := jwtLib.NewWithClaims(jwtLib.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", errors.Wrap(err, "sign token")
	}

	return signed, nil
}

// Verify checks signature and time claims, returning the embedded claims.
// Fails with ErrExpired or ErrInvalid; no other state is consulted.
func (s *Signer) Verify(raw string) (*AccessClaims, error) {
	claims := new(AccessClaims)
	parser := jwtLib.NewParser(
		jwtLib.WithValidMethods([]string{jwtLib.SigningMethodHS256.Alg()}),
		jwtLib.WithIssuedAt(),
		jwtLib.WithTimeFunc(gutils.Clock.GetUTCNow),
	)

	token, err := parser.ParseWithClaims(raw, claims, func(*jwtLib.Token) (any, error) {
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwtLib.ErrTokenExpired) {
			return nil, errors.WithStack(ErrExpired)
		}

		return nil, errors.Wrap(ErrInvalid, err.Error())
	}
	if !token.Valid {
		return nil, errors.WithStack(ErrInvalid)
	}

	return claims, nil
}

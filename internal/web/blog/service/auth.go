package service

import (
	"context"

	"github.com/Laisky/errors/v2"
	gcrypto "github.com/Laisky/go-utils/v6/crypto"
	"github.com/Laisky/zap"
	"github.com/google/uuid"

	"github.com/Laisky/laisky-blog-api/internal/web/blog/dto"
	"github.com/Laisky/laisky-blog-api/internal/web/blog/model"
	"github.com/Laisky/laisky-blog-api/library/jwt"
)

// Login verifies the presented credentials against the configured
// admin identity and issues a fresh token pair, replacing any prior
// session. Every failure surfaces as ErrInvalidCredentials so the
// response never reveals which half was wrong.
func (s *Blog) Login(ctx context.Context, email, password string) (*dto.TokenPair, error) {
	normalized, err := normalizeEmail(email)
	if err != nil {
		return nil, errors.WithStack(model.ErrInvalidCredentials)
	}
	if password == "" {
		return nil, errors.WithStack(model.ErrInvalidCredentials)
	}

	if !secureCompareString(normalized, s.admin.Email) {
		return nil, errors.WithStack(model.ErrInvalidCredentials)
	}

	if err = gcrypto.VerifyHashedPassword([]byte(password), s.admin.PasswordHash); err != nil {
		s.logger.Debug("password mismatch", zap.String("email", normalized))
		return nil, errors.WithStack(model.ErrInvalidCredentials)
	}

	pair, err := s.issueTokens(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "issue tokens")
	}

	s.logger.Info("admin logged in", zap.String("email", normalized))
	return pair, nil
}

// issueTokens mints an access token and a fresh opaque refresh token,
// overwriting the stored session so at most one is ever live.
func (s *Blog) issueTokens(ctx context.Context) (*dto.TokenPair, error) {
	claims := jwt.NewAccessClaims(s.admin.ID, s.admin.Email, s.accessTTL)
	access, err := s.signer.Sign(claims)
	if err != nil {
		return nil, errors.Wrap(err, "sign access token")
	}

	refresh := uuid.NewString()
	if err = s.sessions.SetSession(ctx, s.admin.ID, refresh, s.refreshTTL); err != nil {
		return nil, errors.Wrap(err, "store refresh session")
	}

	return &dto.TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
	}, nil
}

// VerifyAccess checks an access token by signature and expiry only.
// No store lookup: a live access token cannot be revoked before its
// natural expiry.
func (s *Blog) VerifyAccess(token string) (*model.AdminIdentity, error) {
	claims, err := s.signer.Verify(token)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrExpired):
			return nil, errors.WithStack(model.ErrTokenExpired)
		default:
			return nil, errors.WithStack(model.ErrTokenInvalid)
		}
	}

	if claims.Subject != s.admin.ID {
		return nil, errors.WithStack(model.ErrTokenInvalid)
	}

	identity := s.admin
	return &identity, nil
}

// Rotate exchanges a refresh token for a new pair. The presented token
// must exactly match the single stored session; on success the old
// token is superseded immediately, so each refresh token rotates once.
func (s *Blog) Rotate(ctx context.Context, presented string) (*dto.TokenPair, error) {
	if err := s.matchSession(ctx, presented); err != nil {
		return nil, errors.WithStack(err)
	}

	pair, err := s.issueTokens(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "issue tokens")
	}

	return pair, nil
}

// Revoke deletes the stored session (logout). A non-matching token is
// an error, not a no-op.
func (s *Blog) Revoke(ctx context.Context, presented string) error {
	if err := s.matchSession(ctx, presented); err != nil {
		return errors.WithStack(err)
	}

	if err := s.sessions.DelSession(ctx, s.admin.ID); err != nil {
		return errors.Wrap(err, "delete refresh session")
	}

	s.logger.Info("admin logged out")
	return nil
}

// matchSession compares the presented refresh token against the stored
// session constant-time.
func (s *Blog) matchSession(ctx context.Context, presented string) error {
	if presented == "" {
		return errors.WithStack(model.ErrInvalidRefreshToken)
	}

	sess, err := s.sessions.GetSession(ctx, s.admin.ID)
	if err != nil {
		return errors.Wrap(err, "load refresh session")
	}
	if sess == nil || !secureCompareString(presented, sess.Token) {
		return errors.WithStack(model.ErrInvalidRefreshToken)
	}

	return nil
}

// Package service is the service layer of blog.
package service

import (
	"context"
	"time"

	"github.com/Laisky/errors/v2"
	glog "github.com/Laisky/go-utils/v6/log"

	"github.com/Laisky/laisky-blog-api/internal/web/blog/model"
	rlibs "github.com/Laisky/laisky-blog-api/library/db/redis"
	"github.com/Laisky/laisky-blog-api/library/jwt"
)

// SessionStore persists the single live refresh session per owner.
// Exactly one key per owner; SetSession overwrites unconditionally and
// the backing store enforces the TTL.
type SessionStore interface {
	SetSession(ctx context.Context, ownerID, token string, ttl time.Duration) error
	GetSession(ctx context.Context, ownerID string) (*rlibs.RefreshSession, error)
	DelSession(ctx context.Context, ownerID string) error
}

// Config carries the injected admin identity and token policy.
type Config struct {
	// Admin the single configured admin identity
	Admin model.AdminIdentity
	// AccessTTL lifetime of issued access tokens
	AccessTTL time.Duration
	// RefreshTTL lifetime of stored refresh sessions
	RefreshTTL time.Duration
}

// Blog blog service
type Blog struct {
	logger   glog.Logger
	store    Storage
	sessions SessionStore
	signer   *jwt.Signer

	admin      model.AdminIdentity
	accessTTL  time.Duration
	refreshTTL time.Duration
}

// New new blog service
func New(ctx context.Context,
	logger glog.Logger,
	store Storage,
	sessions SessionStore,
	signer *jwt.Signer,
	cfg Config) (*Blog, error) {
	b, err := newBlog(logger, store, sessions, signer, cfg)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	if err := store.EnsureIndexes(ctx); err != nil {
		return nil, errors.Wrap(err, "ensure indexes")
	}

	return b, nil
}

// newBlog validates the config and assembles the service. The admin
// email is canonicalized here, so login always compares against the
// same form normalizeEmail produces for presented credentials,
// whatever casing the deployment configured.
func newBlog(logger glog.Logger,
	store Storage,
	sessions SessionStore,
	signer *jwt.Signer,
	cfg Config) (*Blog, error) {
	if cfg.Admin.ID == "" || cfg.Admin.PasswordHash == "" {
		return nil, errors.New("admin identity is not fully configured")
	}

	email, err := normalizeEmail(cfg.Admin.Email)
	if err != nil {
		return nil, errors.Wrap(err, "admin email")
	}
	cfg.Admin.Email = email

	if cfg.AccessTTL <= 0 || cfg.RefreshTTL <= 0 {
		return nil, errors.New("token ttls must be positive")
	}
	if cfg.AccessTTL >= cfg.RefreshTTL {
		return nil, errors.New("access ttl must be shorter than refresh ttl")
	}

	return &Blog{
		logger:     logger,
		store:      store,
		sessions:   sessions,
		signer:     signer,
		admin:      cfg.Admin,
		accessTTL:  cfg.AccessTTL,
		refreshTTL: cfg.RefreshTTL,
	}, nil
}

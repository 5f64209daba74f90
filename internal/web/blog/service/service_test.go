package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Laisky/laisky-blog-api/internal/web/blog/model"
	"github.com/Laisky/laisky-blog-api/library/jwt"
	"github.com/Laisky/laisky-blog-api/library/log"
)

func TestNewBlogValidatesConfig(t *testing.T) {
	t.Parallel()

	signer, err := jwt.NewSigner([]byte("test-secret"))
	require.NoError(t, err)

	valid := Config{
		Admin: model.AdminIdentity{
			ID:           "admin",
			Email:        "Admin@Example.COM",
			PasswordHash: "hashed",
		},
		AccessTTL:  15 * time.Minute,
		RefreshTTL: 7 * 24 * time.Hour,
	}

	t.Run("canonicalizes admin email", func(t *testing.T) {
		t.Parallel()
		svc, err := newBlog(log.Logger, newFakeStorage(), newMemSessionStore(), signer, valid)
		require.NoError(t, err)
		require.Equal(t, "admin@example.com", svc.admin.Email)
	})

	t.Run("rejects incomplete admin identity", func(t *testing.T) {
		t.Parallel()
		cfg := valid
		cfg.Admin.PasswordHash = ""
		_, err := newBlog(log.Logger, newFakeStorage(), newMemSessionStore(), signer, cfg)
		require.ErrorContains(t, err, "admin identity")
	})

	t.Run("rejects malformed admin email", func(t *testing.T) {
		t.Parallel()
		cfg := valid
		cfg.Admin.Email = "not-an-email"
		_, err := newBlog(log.Logger, newFakeStorage(), newMemSessionStore(), signer, cfg)
		require.ErrorContains(t, err, "admin email")
	})

	t.Run("rejects nonpositive ttls", func(t *testing.T) {
		t.Parallel()
		cfg := valid
		cfg.AccessTTL = 0
		_, err := newBlog(log.Logger, newFakeStorage(), newMemSessionStore(), signer, cfg)
		require.ErrorContains(t, err, "positive")
	})

	t.Run("rejects access ttl not shorter than refresh ttl", func(t *testing.T) {
		t.Parallel()
		cfg := valid
		cfg.AccessTTL = cfg.RefreshTTL
		_, err := newBlog(log.Logger, newFakeStorage(), newMemSessionStore(), signer, cfg)
		require.ErrorContains(t, err, "shorter than")
	})
}

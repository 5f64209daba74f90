package cmd

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func getterFromMap(values map[string]any) configGetter {
	return func(key string) any {
		v, ok := values[key]
		if !ok {
			return nil
		}
		return v
	}
}

func validConfig() map[string]any {
	return map[string]any{
		"settings.mongo.addr":          "localhost:27017",
		"settings.mongo.db":            "blog",
		"settings.redis.addr":          "localhost:6379",
		"settings.redis.db":            0,
		"settings.secret":              "hmac secret",
		"settings.admin.id":            "admin",
		"settings.admin.email":         "admin@example.com",
		"settings.admin.password_hash": "sha256:deadbeef",
		"settings.token.access_ttl":    "15m",
		"settings.token.refresh_ttl":   "720h",
	}
}

func TestValidateStartupConfigValid(t *testing.T) {
	t.Parallel()

	require.NoError(t, validateStartupConfigWithGetter(getterFromMap(validConfig())))
}

func TestValidateStartupConfigNilGetter(t *testing.T) {
	t.Parallel()

	require.Error(t, validateStartupConfigWithGetter(nil))
}

func TestValidateStartupConfigMissingRequired(t *testing.T) {
	t.Parallel()

	for _, key := range []string{
		"settings.mongo.addr",
		"settings.mongo.db",
		"settings.redis.addr",
		"settings.secret",
		"settings.admin.id",
		"settings.admin.email",
		"settings.admin.password_hash",
		"settings.token.access_ttl",
		"settings.token.refresh_ttl",
	} {
		cfg := validConfig()
		delete(cfg, key)

		err := validateStartupConfigWithGetter(getterFromMap(cfg))
		require.Error(t, err, key)
		require.Contains(t, err.Error(), key)
	}
}

func TestValidateStartupConfigMalformedValues(t *testing.T) {
	t.Parallel()

	cases := map[string]any{
		"settings.mongo.addr":        "   ",
		"settings.redis.db":          -1,
		"settings.admin.email":       "not-an-email",
		"settings.token.access_ttl":  "soon",
		"settings.token.refresh_ttl": "-1h",
	}

	for key, bad := range cases {
		cfg := validConfig()
		cfg[key] = bad

		err := validateStartupConfigWithGetter(getterFromMap(cfg))
		require.Error(t, err, key)
		require.Contains(t, err.Error(), key)
	}
}

func TestValidateStartupConfigLeavesTTLRelationToService(t *testing.T) {
	t.Parallel()

	// Both TTLs parse fine here; the access-shorter-than-refresh
	// relation is enforced by the service constructor, not repeated in
	// the startup validator.
	cfg := validConfig()
	cfg["settings.token.access_ttl"] = "720h"
	cfg["settings.token.refresh_ttl"] = "15m"

	require.NoError(t, validateStartupConfigWithGetter(getterFromMap(cfg)))
}

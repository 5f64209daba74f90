package cmd

import (
	"math"
	"net/mail"
	"strconv"
	"strings"
	"time"

	errors "github.com/Laisky/errors/v2"
	gconfig "github.com/Laisky/go-config/v2"
)

// configGetter retrieves raw configuration values by dotted key path.
type configGetter func(key string) any

// validateStartupConfig validates startup configuration from the shared config source.
// It returns an error when any configured value is malformed or violates constraints.
func validateStartupConfig() error {
	return validateStartupConfigWithGetter(func(key string) any {
		return gconfig.S.Get(key)
	})
}

// validateStartupConfigWithGetter validates startup configuration via a key-value getter.
// It accepts a value getter and returns nil when all configured values are valid.
func validateStartupConfigWithGetter(get configGetter) error {
	if get == nil {
		return errors.New("config getter is nil")
	}

	validationErrs := make([]string, 0)

	validateMongoConfig(get, &validationErrs)
	validateRedisConfig(get, &validationErrs)
	validateAdminConfig(get, &validationErrs)
	validateTokenConfig(get, &validationErrs)

	if len(validationErrs) == 0 {
		return nil
	}

	return errors.Errorf("invalid configuration:\n - %s", strings.Join(validationErrs, "\n - "))
}

// validateMongoConfig validates document-store connection settings.
func validateMongoConfig(get configGetter, errs *[]string) {
	validateRequiredStringNonEmpty(get, "settings.mongo.addr", errs)
	validateRequiredStringNonEmpty(get, "settings.mongo.db", errs)
}

// validateRedisConfig validates session-store connection settings.
func validateRedisConfig(get configGetter, errs *[]string) {
	validateRequiredStringNonEmpty(get, "settings.redis.addr", errs)
	validateOptionalIntMin(get, "settings.redis.db", 0, errs)
}

// validateAdminConfig validates the injected admin identity and signing secret.
func validateAdminConfig(get configGetter, errs *[]string) {
	validateRequiredStringNonEmpty(get, "settings.secret", errs)
	validateRequiredStringNonEmpty(get, "settings.admin.id", errs)
	validateRequiredStringNonEmpty(get, "settings.admin.password_hash", errs)

	raw := get("settings.admin.email")
	email, parseErr := parseStrictString(raw)
	if raw == nil || parseErr != nil || strings.TrimSpace(email) == "" {
		appendValidationError(errs, "settings.admin.email must be a non-empty string")
		return
	}
	if _, err := mail.ParseAddress(strings.TrimSpace(email)); err != nil {
		appendValidationError(errs, "settings.admin.email must be a valid email address")
	}
}

// validateTokenConfig validates that both TTL keys parse as positive
// durations. The relation between the two is a service invariant and
// is enforced once, by the service constructor.
func validateTokenConfig(get configGetter, errs *[]string) {
	validateRequiredDuration(get, "settings.token.access_ttl", errs)
	validateRequiredDuration(get, "settings.token.refresh_ttl", errs)
}

// validateRequiredDuration validates a required positive duration key and returns
// the parsed value, or 0 when invalid.
func validateRequiredDuration(get configGetter, key string, errs *[]string) time.Duration {
	raw := get(key)
	if raw == nil {
		appendValidationError(errs, "%s is required", key)
		return 0
	}

	value, parseErr := parseStrictString(raw)
	if parseErr != nil {
		appendValidationError(errs, "%s must be a duration string like `15m`", key)
		return 0
	}

	d, err := time.ParseDuration(strings.TrimSpace(value))
	if err != nil {
		appendValidationError(errs, "%s must be a duration string like `15m`", key)
		return 0
	}
	if d <= 0 {
		appendValidationError(errs, "%s must be positive", key)
		return 0
	}

	return d
}

// validateRequiredStringNonEmpty validates that a required key is a non-empty string.
func validateRequiredStringNonEmpty(get configGetter, key string, errs *[]string) {
	raw := get(key)
	if raw == nil {
		appendValidationError(errs, "%s is required", key)
		return
	}

	value, parseErr := parseStrictString(raw)
	if parseErr != nil {
		appendValidationError(errs, "%s must be a string", key)
		return
	}

	if strings.TrimSpace(value) == "" {
		appendValidationError(errs, "%s must not be empty", key)
	}
}

// validateOptionalIntMin validates an optionally configured integer key with a
// minimum constraint.
func validateOptionalIntMin(get configGetter, key string, min int, errs *[]string) {
	raw := get(key)
	if raw == nil {
		return
	}

	value, parseErr := parseStrictInt(raw)
	if parseErr != nil {
		appendValidationError(errs, "%s must be an integer", key)
		return
	}

	if value < min {
		appendValidationError(errs, "%s must be >= %d", key, min)
	}
}

// parseStrictString parses a strictly typed string value.
func parseStrictString(value any) (string, error) {
	switch v := value.(type) {
	case string:
		return v, nil
	default:
		return "", errors.Errorf("%v is not a string", value)
	}
}

// parseStrictInt parses a strictly typed integer value.
func parseStrictInt(value any) (int, error) {
	switch v := value.(type) {
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case float64:
		if math.Trunc(v) != v {
			return 0, errors.Errorf("%v is not an integer", v)
		}
		return int(v), nil
	case string:
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			return 0, errors.New("empty integer string")
		}
		parsed, err := strconv.Atoi(trimmed)
		if err != nil {
			return 0, errors.Wrap(err, "atoi")
		}
		return parsed, nil
	default:
		return 0, errors.Errorf("%v is not an integer", value)
	}
}

// appendValidationError appends a formatted validation error to the collector.
func appendValidationError(errs *[]string, format string, args ...any) {
	if errs == nil {
		return
	}

	*errs = append(*errs, errors.Errorf(format, args...).Error())
}

package service

import (
	"crypto/sha256"
	"crypto/subtle"
	"net/mail"
	"strings"
	"unicode/utf8"

	"github.com/Laisky/errors/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Laisky/laisky-blog-api/internal/web/blog/model"
)

const (
	// maxTitleLength caps the length of post titles.
	maxTitleLength = 200
	// maxNameLength caps the length of category/tag names.
	maxNameLength = 100
	// maxExcerptLength caps the length of post excerpts.
	maxExcerptLength = 2000
	// maxDescriptionLength caps the length of category descriptions.
	maxDescriptionLength = 2000
	// maxSearchQueryLength caps the length of search queries.
	maxSearchQueryLength = 256
	// maxEmailLength caps the length of login emails.
	maxEmailLength = 254
	// maxPasswordLength caps the length of login passwords.
	maxPasswordLength = 1024
	// maxReferencedIDs caps the number of category/tag ids per post.
	maxReferencedIDs = 50
)

// sanitizeOptionalText trims input, checks for null bytes, enforces maxLen
// runes, and returns the sanitized value.
func sanitizeOptionalText(input string, maxLen int, field string) (string, error) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return "", nil
	}
	if strings.ContainsRune(trimmed, '\x00') {
		return "", errors.Wrapf(model.ErrValidation, "%s contains invalid null byte", field)
	}
	if utf8.RuneCountInString(trimmed) > maxLen {
		return "", errors.Wrapf(model.ErrValidation, "%s exceeds max length %d", field, maxLen)
	}
	return trimmed, nil
}

// sanitizeRequiredText trims input, enforces maxLen runes, and rejects empty values.
func sanitizeRequiredText(input string, maxLen int, field string) (string, error) {
	trimmed, err := sanitizeOptionalText(input, maxLen, field)
	if err != nil {
		return "", err
	}
	if trimmed == "" {
		return "", errors.Wrapf(model.ErrValidation, "%s is required", field)
	}
	return trimmed, nil
}

// normalizeEmail canonicalizes a login email: trim, lowercase, and a
// format check. The result is what gets compared against the
// configured admin email.
func normalizeEmail(email string) (string, error) {
	trimmed, err := sanitizeRequiredText(email, maxEmailLength, "email")
	if err != nil {
		return "", err
	}

	lowered := strings.ToLower(trimmed)
	if _, err := mail.ParseAddress(lowered); err != nil {
		return "", errors.Wrap(model.ErrValidation, "invalid email")
	}

	return lowered, nil
}

// parseObjectIDs parses hex ids into ObjectIDs, preserving order and
// duplicates: the reference guard counts against the raw list length.
func parseObjectIDs(raw []string, field string) ([]primitive.ObjectID, error) {
	if len(raw) > maxReferencedIDs {
		return nil, errors.Wrapf(model.ErrValidation, "%s exceeds max count %d", field, maxReferencedIDs)
	}

	ids := make([]primitive.ObjectID, 0, len(raw))
	for _, r := range raw {
		id, err := primitive.ObjectIDFromHex(strings.TrimSpace(r))
		if err != nil {
			return nil, errors.Wrapf(model.ErrValidation, "%s contains invalid id %q", field, r)
		}
		ids = append(ids, id)
	}

	return ids, nil
}

// secureCompareString performs a constant-time comparison of two strings.
func secureCompareString(left string, right string) bool {
	leftSum := sha256.Sum256([]byte(left))
	rightSum := sha256.Sum256([]byte(right))
	return subtle.ConstantTimeCompare(leftSum[:], rightSum[:]) == 1
}

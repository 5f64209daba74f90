package controller

import (
	"github.com/Laisky/errors/v2"

	"github.com/Laisky/laisky-blog-api/internal/web/blog/model"
)

// maskLoginError returns a sanitized login error for client responses.
// Malformed input and bad credentials collapse to the same kind, so the
// response never distinguishes an unknown email from a wrong password.
func maskLoginError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, model.ErrValidation) {
		return errors.WithStack(model.ErrInvalidCredentials)
	}

	return err
}

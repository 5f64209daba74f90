package model

import "github.com/Laisky/errors/v2"

// Content is the structured document tree of a post. This layer treats
// it as an opaque blob; only the top-level tag is checked. Rendering
// belongs to a separate layer.
type Content map[string]any

const contentRootType = "root"

// ValidateRoot checks the shallow type tag of the tree.
func (c Content) ValidateRoot() error {
	if len(c) == 0 {
		return errors.Wrap(ErrValidation, "content is required")
	}

	typ, ok := c["type"].(string)
	if !ok || typ != contentRootType {
		return errors.Wrapf(ErrValidation, "content root must be tagged %q", contentRootType)
	}

	return nil
}

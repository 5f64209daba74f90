package service

import (
	"context"

	"github.com/Laisky/errors/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Laisky/laisky-blog-api/internal/web/blog/model"
)

// The reference integrity guard gates every mutation that could leave
// a dangling reference. The checks are advisory at write time only:
// nothing maintains integrity after the fact, so deletion must be
// refused while dependents exist.

// assertCategoriesExist fails unless every id resolves. Matches are
// counted against the raw list length, so duplicated or partially
// dangling id lists both fail.
func (s *Blog) assertCategoriesExist(ctx context.Context, ids []primitive.ObjectID) error {
	if len(ids) == 0 {
		return nil
	}

	n, err := s.store.CountCategories(ctx, ids)
	if err != nil {
		return errors.Wrap(err, "count categories")
	}
	if int(n) != len(ids) {
		return errors.Wrapf(model.ErrDanglingReference,
			"categories resolved %d of %d ids", n, len(ids))
	}

	return nil
}

// assertTagsExist fails unless every id resolves, counting as above.
func (s *Blog) assertTagsExist(ctx context.Context, ids []primitive.ObjectID) error {
	if len(ids) == 0 {
		return nil
	}

	n, err := s.store.CountTags(ctx, ids)
	if err != nil {
		return errors.Wrap(err, "count tags")
	}
	if int(n) != len(ids) {
		return errors.Wrapf(model.ErrDanglingReference,
			"tags resolved %d of %d ids", n, len(ids))
	}

	return nil
}

// assertCategoryDeletable refuses deletion while any post references
// the category or any category has it as parent.
func (s *Blog) assertCategoryDeletable(ctx context.Context, id primitive.ObjectID) error {
	n, err := s.store.CountPostsWithCategory(ctx, id)
	if err != nil {
		return errors.Wrap(err, "count referencing posts")
	}
	if n > 0 {
		return errors.Wrapf(model.ErrCategoryInUse, "%d posts reference category", n)
	}

	n, err = s.store.CountCategoryChildren(ctx, id)
	if err != nil {
		return errors.Wrap(err, "count child categories")
	}
	if n > 0 {
		return errors.Wrapf(model.ErrCategoryHasChildren, "%d child categories", n)
	}

	return nil
}

// assertTagDeletable refuses deletion while any post references the tag.
func (s *Blog) assertTagDeletable(ctx context.Context, id primitive.ObjectID) error {
	n, err := s.store.CountPostsWithTag(ctx, id)
	if err != nil {
		return errors.Wrap(err, "count referencing posts")
	}
	if n > 0 {
		return errors.Wrapf(model.ErrTagInUse, "%d posts reference tag", n)
	}

	return nil
}

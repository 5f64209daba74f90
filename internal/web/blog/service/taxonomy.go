package service

import (
	"context"

	"github.com/Laisky/errors/v2"
	gutils "github.com/Laisky/go-utils/v6"
	"github.com/Laisky/zap"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Laisky/laisky-blog-api/internal/web/blog/dto"
	"github.com/Laisky/laisky-blog-api/internal/web/blog/model"
)

// NewCategory inserts a category. A parent, when given, must already
// exist; broken parent links are refused the same way as any other
// dangling reference.
func (s *Blog) NewCategory(ctx context.Context, req *dto.NewCategoryRequest) (*dto.CategoryResponse, error) {
	name, err := sanitizeRequiredText(req.Name, maxNameLength, "name")
	if err != nil {
		return nil, errors.WithStack(err)
	}

	description, err := sanitizeOptionalText(req.Description, maxDescriptionLength, "description")
	if err != nil {
		return nil, errors.WithStack(err)
	}

	var parentID *primitive.ObjectID
	if req.ParentID != nil && *req.ParentID != "" {
		pid, err := s.resolveParent(ctx, *req.ParentID, nil)
		if err != nil {
			return nil, errors.WithStack(err)
		}
		parentID = pid
	}

	slug := slugify(name)
	if slug == "" {
		return nil, errors.Wrap(model.ErrValidation, "name yields empty slug")
	}
	if err = ensureSlugFree(ctx, s.store.CategorySlugTaken, slug, nil); err != nil {
		return nil, errors.WithStack(err)
	}

	ts := gutils.Clock.GetUTCNow()
	cate := &model.Category{
		ID:          primitive.NewObjectID(),
		CreatedAt:   ts,
		UpdatedAt:   ts,
		Name:        name,
		Slug:        slug,
		Description: description,
		ParentID:    parentID,
	}

	if err = s.store.InsertCategory(ctx, cate); err != nil {
		return nil, errors.Wrap(err, "insert category")
	}

	s.logger.Info("insert new category", zap.String("slug", slug))
	return dto.NewCategoryResponse(cate)
}

// UpdateCategory applies a partial merge. A present but empty parentId
// detaches the category from its parent; a non-empty one re-parents it,
// rejecting self-parenting.
func (s *Blog) UpdateCategory(ctx context.Context, rawID string, req *dto.UpdateCategoryRequest) (*dto.CategoryResponse, error) {
	id, err := primitive.ObjectIDFromHex(rawID)
	if err != nil {
		return nil, errors.Wrapf(model.ErrValidation, "invalid category id %q", rawID)
	}

	cate, err := s.store.GetCategoryByID(ctx, id)
	if err != nil {
		return nil, errors.Wrapf(err, "load category %q", rawID)
	}
	if cate == nil {
		return nil, errors.WithStack(model.ErrNotFound)
	}

	if req.Name != nil {
		name, err := sanitizeRequiredText(*req.Name, maxNameLength, "name")
		if err != nil {
			return nil, errors.WithStack(err)
		}

		slug := slugify(name)
		if slug == "" {
			return nil, errors.Wrap(model.ErrValidation, "name yields empty slug")
		}
		if slug != cate.Slug {
			if err = ensureSlugFree(ctx, s.store.CategorySlugTaken, slug, &cate.ID); err != nil {
				return nil, errors.WithStack(err)
			}
		}

		cate.Name = name
		cate.Slug = slug
	}

	if req.Description != nil {
		description, err := sanitizeOptionalText(*req.Description, maxDescriptionLength, "description")
		if err != nil {
			return nil, errors.WithStack(err)
		}
		cate.Description = description
	}

	if req.ParentID != nil {
		if *req.ParentID == "" {
			cate.ParentID = nil
		} else {
			pid, err := s.resolveParent(ctx, *req.ParentID, &cate.ID)
			if err != nil {
				return nil, errors.WithStack(err)
			}
			cate.ParentID = pid
		}
	}

	cate.UpdatedAt = gutils.Clock.GetUTCNow()
	if err = s.store.ReplaceCategory(ctx, cate); err != nil {
		return nil, errors.Wrap(err, "update category")
	}

	s.logger.Info("updated category", zap.String("slug", cate.Slug))
	return dto.NewCategoryResponse(cate)
}

// DeleteCategory removes a category, refusing while any post references
// it or any category has it as parent.
func (s *Blog) DeleteCategory(ctx context.Context, rawID string) error {
	id, err := primitive.ObjectIDFromHex(rawID)
	if err != nil {
		return errors.Wrapf(model.ErrValidation, "invalid category id %q", rawID)
	}

	if err = s.assertCategoryDeletable(ctx, id); err != nil {
		return errors.WithStack(err)
	}

	deleted, err := s.store.DeleteCategory(ctx, id)
	if err != nil {
		return errors.Wrap(err, "delete category")
	}
	if !deleted {
		return errors.WithStack(model.ErrNotFound)
	}

	s.logger.Info("deleted category", zap.String("id", rawID))
	return nil
}

// LoadCategories lists all categories sorted by name.
func (s *Blog) LoadCategories(ctx context.Context) ([]*dto.CategoryResponse, error) {
	cates, err := s.store.ListCategories(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "find categories")
	}

	results := make([]*dto.CategoryResponse, 0, len(cates))
	for _, cate := range cates {
		resp, err := dto.NewCategoryResponse(cate)
		if err != nil {
			return nil, errors.Wrap(err, "serialize category")
		}
		results = append(results, resp)
	}

	return results, nil
}

// LoadCategory fetches one category by id or slug.
func (s *Blog) LoadCategory(ctx context.Context, idOrSlug string) (*dto.CategoryResponse, error) {
	cate, err := s.store.GetCategory(ctx, idOrSlug)
	if err != nil {
		return nil, errors.Wrapf(err, "load category %q", idOrSlug)
	}
	if cate == nil {
		return nil, errors.WithStack(model.ErrNotFound)
	}

	return dto.NewCategoryResponse(cate)
}

// resolveParent validates a raw parent id: it must parse, must not be
// the category itself, and must exist. Deeper cycles through the parent
// chain are tolerated, only direct self-parenting is refused.
func (s *Blog) resolveParent(ctx context.Context, raw string, selfID *primitive.ObjectID) (*primitive.ObjectID, error) {
	pid, err := primitive.ObjectIDFromHex(raw)
	if err != nil {
		return nil, errors.Wrapf(model.ErrValidation, "invalid parent id %q", raw)
	}
	if selfID != nil && pid == *selfID {
		return nil, errors.Wrap(model.ErrValidation, "category cannot be its own parent")
	}

	if err = s.assertCategoriesExist(ctx, []primitive.ObjectID{pid}); err != nil {
		return nil, errors.WithStack(err)
	}

	return &pid, nil
}

// NewTag inserts a tag.
func (s *Blog) NewTag(ctx context.Context, req *dto.NewTagRequest) (*dto.TagResponse, error) {
	name, err := sanitizeRequiredText(req.Name, maxNameLength, "name")
	if err != nil {
		return nil, errors.WithStack(err)
	}

	slug := slugify(name)
	if slug == "" {
		return nil, errors.Wrap(model.ErrValidation, "name yields empty slug")
	}
	if err = ensureSlugFree(ctx, s.store.TagSlugTaken, slug, nil); err != nil {
		return nil, errors.WithStack(err)
	}

	ts := gutils.Clock.GetUTCNow()
	tag := &model.Tag{
		ID:        primitive.NewObjectID(),
		CreatedAt: ts,
		UpdatedAt: ts,
		Name:      name,
		Slug:      slug,
	}

	if err = s.store.InsertTag(ctx, tag); err != nil {
		return nil, errors.Wrap(err, "insert tag")
	}

	s.logger.Info("insert new tag", zap.String("slug", slug))
	return dto.NewTagResponse(tag)
}

// UpdateTag renames a tag, recomputing the slug.
func (s *Blog) UpdateTag(ctx context.Context, rawID string, req *dto.UpdateTagRequest) (*dto.TagResponse, error) {
	id, err := primitive.ObjectIDFromHex(rawID)
	if err != nil {
		return nil, errors.Wrapf(model.ErrValidation, "invalid tag id %q", rawID)
	}

	tag, err := s.store.GetTagByID(ctx, id)
	if err != nil {
		return nil, errors.Wrapf(err, "load tag %q", rawID)
	}
	if tag == nil {
		return nil, errors.WithStack(model.ErrNotFound)
	}

	if req.Name != nil {
		name, err := sanitizeRequiredText(*req.Name, maxNameLength, "name")
		if err != nil {
			return nil, errors.WithStack(err)
		}

		slug := slugify(name)
		if slug == "" {
			return nil, errors.Wrap(model.ErrValidation, "name yields empty slug")
		}
		if slug != tag.Slug {
			if err = ensureSlugFree(ctx, s.store.TagSlugTaken, slug, &tag.ID); err != nil {
				return nil, errors.WithStack(err)
			}
		}

		tag.Name = name
		tag.Slug = slug
	}

	tag.UpdatedAt = gutils.Clock.GetUTCNow()
	if err = s.store.ReplaceTag(ctx, tag); err != nil {
		return nil, errors.Wrap(err, "update tag")
	}

	s.logger.Info("updated tag", zap.String("slug", tag.Slug))
	return dto.NewTagResponse(tag)
}

// DeleteTag removes a tag, refusing while any post references it.
func (s *Blog) DeleteTag(ctx context.Context, rawID string) error {
	id, err := primitive.ObjectIDFromHex(rawID)
	if err != nil {
		return errors.Wrapf(model.ErrValidation, "invalid tag id %q", rawID)
	}

	if err = s.assertTagDeletable(ctx, id); err != nil {
		return errors.WithStack(err)
	}

	deleted, err := s.store.DeleteTag(ctx, id)
	if err != nil {
		return errors.Wrap(err, "delete tag")
	}
	if !deleted {
		return errors.WithStack(model.ErrNotFound)
	}

	s.logger.Info("deleted tag", zap.String("id", rawID))
	return nil
}

// LoadTags lists all tags sorted by name.
func (s *Blog) LoadTags(ctx context.Context) ([]*dto.TagResponse, error) {
	tags, err := s.store.ListTags(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "find tags")
	}

	results := make([]*dto.TagResponse, 0, len(tags))
	for _, tag := range tags {
		resp, err := dto.NewTagResponse(tag)
		if err != nil {
			return nil, errors.Wrap(err, "serialize tag")
		}
		results = append(results, resp)
	}

	return results, nil
}

// LoadTag fetches one tag by id or slug.
func (s *Blog) LoadTag(ctx context.Context, idOrSlug string) (*dto.TagResponse, error) {
	tag, err := s.store.GetTag(ctx, idOrSlug)
	if err != nil {
		return nil, errors.Wrapf(err, "load tag %q", idOrSlug)
	}
	if tag == nil {
		return nil, errors.WithStack(model.ErrNotFound)
	}

	return dto.NewTagResponse(tag)
}

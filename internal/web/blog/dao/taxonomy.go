package dao

import (
	"context"

	"github.com/Laisky/errors/v2"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	mongoLib "go.mongodb.org/mongo-driver/mongo"

	"github.com/Laisky/laisky-blog-api/internal/web/blog/model"
	mongoSDK "github.com/Laisky/laisky-blog-api/library/db/mongo"
)

// CategorySlugTaken reports whether another category holds slug.
func (d *Blog) CategorySlugTaken(ctx context.Context, slug string, exclude *primitive.ObjectID) (bool, error) {
	return slugTaken(ctx, d.GetCategoriesCol(), slug, exclude)
}

// TagSlugTaken reports whether another tag holds slug.
func (d *Blog) TagSlugTaken(ctx context.Context, slug string, exclude *primitive.ObjectID) (bool, error) {
	return slugTaken(ctx, d.GetTagsCol(), slug, exclude)
}

// InsertCategory persists a new category, mapping unique-index
// violations to ErrDuplicateSlug.
func (d *Blog) InsertCategory(ctx context.Context, cate *model.Category) error {
	if _, err := d.GetCategoriesCol().InsertOne(ctx, cate); err != nil {
		if mongoLib.IsDuplicateKeyError(err) {
			return errors.Wrap(model.ErrDuplicateSlug, cate.Slug)
		}

		return errors.Wrap(err, "insert category")
	}

	return nil
}

// ReplaceCategory overwrites the stored category document.
func (d *Blog) ReplaceCategory(ctx context.Context, cate *model.Category) error {
	if _, err := d.GetCategoriesCol().
		ReplaceOne(ctx, bson.M{"_id": cate.ID}, cate); err != nil {
		if mongoLib.IsDuplicateKeyError(err) {
			return errors.Wrap(model.ErrDuplicateSlug, cate.Slug)
		}

		return errors.Wrap(err, "replace category")
	}

	return nil
}

// DeleteCategory removes a category, reporting whether anything matched.
func (d *Blog) DeleteCategory(ctx context.Context, id primitive.ObjectID) (bool, error) {
	res, err := d.GetCategoriesCol().DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return false, errors.Wrap(err, "delete category")
	}

	return res.DeletedCount > 0, nil
}

// GetCategoryByID fetches one category by id, returning (nil, nil) on
// no match.
func (d *Blog) GetCategoryByID(ctx context.Context, id primitive.ObjectID) (*model.Category, error) {
	cate := new(model.Category)
	if err := d.GetCategoriesCol().
		FindOne(ctx, bson.M{"_id": id}).
		Decode(cate); err != nil {
		if mongoSDK.NotFound(err) {
			return nil, nil
		}

		return nil, errors.Wrap(err, "find category by id")
	}

	return cate, nil
}

// GetCategory fetches one category by id or slug, returning (nil, nil)
// on no match.
func (d *Blog) GetCategory(ctx context.Context, idOrSlug string) (*model.Category, error) {
	cate := new(model.Category)
	if err := d.GetCategoriesCol().
		FindOne(ctx, idOrSlugQuery(idOrSlug)).
		Decode(cate); err != nil {
		if mongoSDK.NotFound(err) {
			return nil, nil
		}

		return nil, errors.Wrap(err, "find category")
	}

	return cate, nil
}

// ListCategories lists all categories sorted by name.
func (d *Blog) ListCategories(ctx context.Context) ([]*model.Category, error) {
	cur, err := d.GetCategoriesCol().Find(ctx, bson.M{}, findSortedByName())
	if err != nil {
		return nil, errors.Wrap(err, "find categories")
	}
	defer cur.Close(ctx) //nolint:errcheck

	cates := []*model.Category{}
	if err = cur.All(ctx, &cates); err != nil {
		return nil, errors.Wrap(err, "load categories")
	}

	return cates, nil
}

// InsertTag persists a new tag, mapping unique-index violations to
// ErrDuplicateSlug.
func (d *Blog) InsertTag(ctx context.Context, tag *model.Tag) error {
	if _, err := d.GetTagsCol().InsertOne(ctx, tag); err != nil {
		if mongoLib.IsDuplicateKeyError(err) {
			return errors.Wrap(model.ErrDuplicateSlug, tag.Slug)
		}

		return errors.Wrap(err, "insert tag")
	}

	return nil
}

// ReplaceTag overwrites the stored tag document.
func (d *Blog) ReplaceTag(ctx context.Context, tag *model.Tag) error {
	if _, err := d.GetTagsCol().
		ReplaceOne(ctx, bson.M{"_id": tag.ID}, tag); err != nil {
		if mongoLib.IsDuplicateKeyError(err) {
			return errors.Wrap(model.ErrDuplicateSlug, tag.Slug)
		}

		return errors.Wrap(err, "replace tag")
	}

	return nil
}

// DeleteTag removes a tag, reporting whether anything matched.
func (d *Blog) DeleteTag(ctx context.Context, id primitive.ObjectID) (bool, error) {
	res, err := d.GetTagsCol().DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return false, errors.Wrap(err, "delete tag")
	}

	return res.DeletedCount > 0, nil
}

// GetTagByID fetches one tag by id, returning (nil, nil) on no match.
func (d *Blog) GetTagByID(ctx context.Context, id primitive.ObjectID) (*model.Tag, error) {
	tag := new(model.Tag)
	if err := d.GetTagsCol().
		FindOne(ctx, bson.M{"_id": id}).
		Decode(tag); err != nil {
		if mongoSDK.NotFound(err) {
			return nil, nil
		}

		return nil, errors.Wrap(err, "find tag by id")
	}

	return tag, nil
}

// GetTag fetches one tag by id or slug, returning (nil, nil) on no
// match.
func (d *Blog) GetTag(ctx context.Context, idOrSlug string) (*model.Tag, error) {
	tag := new(model.Tag)
	if err := d.GetTagsCol().
		FindOne(ctx, idOrSlugQuery(idOrSlug)).
		Decode(tag); err != nil {
		if mongoSDK.NotFound(err) {
			return nil, nil
		}

		return nil, errors.Wrap(err, "find tag")
	}

	return tag, nil
}

// ListTags lists all tags sorted by name.
func (d *Blog) ListTags(ctx context.Context) ([]*model.Tag, error) {
	cur, err := d.GetTagsCol().Find(ctx, bson.M{}, findSortedByName())
	if err != nil {
		return nil, errors.Wrap(err, "find tags")
	}
	defer cur.Close(ctx) //nolint:errcheck

	tags := []*model.Tag{}
	if err = cur.All(ctx, &tags); err != nil {
		return nil, errors.Wrap(err, "load tags")
	}

	return tags, nil
}

package dao

import (
	"context"

	"github.com/Laisky/errors/v2"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	mongoLib "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Laisky/laisky-blog-api/internal/web/blog/model"
	mongoSDK "github.com/Laisky/laisky-blog-api/library/db/mongo"
)

// CountCategories counts distinct categories among ids.
func (d *Blog) CountCategories(ctx context.Context, ids []primitive.ObjectID) (int64, error) {
	return countByIDs(ctx, d.GetCategoriesCol(), ids)
}

// CountTags counts distinct tags among ids.
func (d *Blog) CountTags(ctx context.Context, ids []primitive.ObjectID) (int64, error) {
	return countByIDs(ctx, d.GetTagsCol(), ids)
}

// CountPostsWithCategory counts posts referencing the category.
func (d *Blog) CountPostsWithCategory(ctx context.Context, id primitive.ObjectID) (int64, error) {
	n, err := d.GetPostsCol().CountDocuments(ctx, bson.M{"categories": id})
	if err != nil {
		return 0, errors.Wrap(err, "count posts by category")
	}

	return n, nil
}

// CountPostsWithTag counts posts referencing the tag.
func (d *Blog) CountPostsWithTag(ctx context.Context, id primitive.ObjectID) (int64, error) {
	n, err := d.GetPostsCol().CountDocuments(ctx, bson.M{"tags": id})
	if err != nil {
		return 0, errors.Wrap(err, "count posts by tag")
	}

	return n, nil
}

// CountCategoryChildren counts categories whose parent is id.
func (d *Blog) CountCategoryChildren(ctx context.Context, id primitive.ObjectID) (int64, error) {
	n, err := d.GetCategoriesCol().CountDocuments(ctx, bson.M{"parent_id": id})
	if err != nil {
		return 0, errors.Wrap(err, "count child categories")
	}

	return n, nil
}

// PostSlugTaken reports whether another post holds slug.
func (d *Blog) PostSlugTaken(ctx context.Context, slug string, exclude *primitive.ObjectID) (bool, error) {
	return slugTaken(ctx, d.GetPostsCol(), slug, exclude)
}

// InsertPost persists a new post, mapping unique-index violations to
// ErrDuplicateSlug.
func (d *Blog) InsertPost(ctx context.Context, p *model.Post) error {
	if _, err := d.GetPostsCol().InsertOne(ctx, p); err != nil {
		if mongoLib.IsDuplicateKeyError(err) {
			return errors.Wrap(model.ErrDuplicateSlug, p.Slug)
		}

		return errors.Wrap(err, "insert post")
	}

	return nil
}

// ReplacePost overwrites the stored post document, mapping unique-index
// violations to ErrDuplicateSlug.
func (d *Blog) ReplacePost(ctx context.Context, p *model.Post) error {
	if _, err := d.GetPostsCol().
		ReplaceOne(ctx, bson.M{"_id": p.ID}, p); err != nil {
		if mongoLib.IsDuplicateKeyError(err) {
			return errors.Wrap(model.ErrDuplicateSlug, p.Slug)
		}

		return errors.Wrap(err, "replace post")
	}

	return nil
}

// DeletePost removes a post, reporting whether anything matched.
func (d *Blog) DeletePost(ctx context.Context, id primitive.ObjectID) (bool, error) {
	res, err := d.GetPostsCol().DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return false, errors.Wrap(err, "delete post")
	}

	return res.DeletedCount > 0, nil
}

// GetPostByID fetches one post by id, returning (nil, nil) on no match.
func (d *Blog) GetPostByID(ctx context.Context, id primitive.ObjectID) (*model.Post, error) {
	p := new(model.Post)
	if err := d.GetPostsCol().
		FindOne(ctx, bson.M{"_id": id}).
		Decode(p); err != nil {
		if mongoSDK.NotFound(err) {
			return nil, nil
		}

		return nil, errors.Wrap(err, "find post by id")
	}

	return p, nil
}

// GetPost fetches one post by id or slug, optionally restricted to
// published status, returning (nil, nil) on no match.
func (d *Blog) GetPost(ctx context.Context, idOrSlug string, publishedOnly bool) (*model.Post, error) {
	query := idOrSlugQuery(idOrSlug)
	if publishedOnly {
		query["status"] = model.PostStatusPublished
	}

	p := new(model.Post)
	if err := d.GetPostsCol().FindOne(ctx, query).Decode(p); err != nil {
		if mongoSDK.NotFound(err) {
			return nil, nil
		}

		return nil, errors.Wrap(err, "find post")
	}

	return p, nil
}

// ListPosts lists published posts matching the filter, excluding the
// heavyweight content field. Results are ranked by text relevance when
// searching, then by publication recency.
func (d *Blog) ListPosts(ctx context.Context, filter model.PostFilter) ([]*model.Post, error) {
	query := bson.M{"status": model.PostStatusPublished}
	projection := bson.M{"content": 0}
	sort := bson.D{{Key: "published_at", Value: -1}}

	if filter.Search != "" {
		query["$text"] = bson.M{"$search": filter.Search}
		projection["score"] = bson.M{"$meta": "textScore"}
		sort = append(bson.D{
			{Key: "score", Value: bson.M{"$meta": "textScore"}},
		}, sort...)
	}
	if len(filter.CategoryIDs) != 0 {
		query["categories"] = bson.M{"$in": filter.CategoryIDs}
	}
	if len(filter.TagIDs) != 0 {
		query["tags"] = bson.M{"$in": filter.TagIDs}
	}

	opts := options.Find().
		SetProjection(projection).
		SetSort(sort)
	if filter.Limit > 0 {
		opts = opts.SetLimit(filter.Limit)
	}

	cur, err := d.GetPostsCol().Find(ctx, query, opts)
	if err != nil {
		return nil, errors.Wrap(err, "find posts")
	}
	defer cur.Close(ctx) //nolint:errcheck

	posts := []*model.Post{}
	if err = cur.All(ctx, &posts); err != nil {
		return nil, errors.Wrap(err, "load posts")
	}

	return posts, nil
}

// FindCategoriesByIDs fetches the categories among ids.
func (d *Blog) FindCategoriesByIDs(ctx context.Context, ids []primitive.ObjectID) ([]*model.Category, error) {
	cur, err := d.GetCategoriesCol().
		Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, errors.Wrap(err, "find categories by ids")
	}
	defer cur.Close(ctx) //nolint:errcheck

	cates := []*model.Category{}
	if err = cur.All(ctx, &cates); err != nil {
		return nil, errors.Wrap(err, "load categories by ids")
	}

	return cates, nil
}

// FindTagsByIDs fetches the tags among ids.
func (d *Blog) FindTagsByIDs(ctx context.Context, ids []primitive.ObjectID) ([]*model.Tag, error) {
	cur, err := d.GetTagsCol().
		Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, errors.Wrap(err, "find tags by ids")
	}
	defer cur.Close(ctx) //nolint:errcheck

	tags := []*model.Tag{}
	if err = cur.All(ctx, &tags); err != nil {
		return nil, errors.Wrap(err, "load tags by ids")
	}

	return tags, nil
}

// Package dao contains all the data access objects used by the blog application.
package dao

import (
	"context"

	"github.com/Laisky/errors/v2"
	glog "github.com/Laisky/go-utils/v6/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	mongoLib "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Blog dao type
type Blog struct {
	logger glog.Logger
	db     mongoDB
}

// mongoDB is the subset of the mongo library wrapper the dao relies on.
type mongoDB interface {
	GetCol(colName string) *mongoLib.Collection
}

// New create new dao
func New(logger glog.Logger, db mongoDB) *Blog {
	return &Blog{
		logger: logger,
		db:     db,
	}
}

// GetPostsCol get posts collection
func (d *Blog) GetPostsCol() *mongoLib.Collection {
	return d.db.GetCol("posts")
}

// GetCategoriesCol get categories collection
func (d *Blog) GetCategoriesCol() *mongoLib.Collection {
	return d.db.GetCol("categories")
}

// GetTagsCol get tags collection
func (d *Blog) GetTagsCol() *mongoLib.Collection {
	return d.db.GetCol("tags")
}

// EnsureIndexes creates the indexes the write paths rely on: unique
// slug per collection and a text index over title/excerpt for search.
// The unique index also backstops the non-transactional slug check
// under concurrent creates.
func (d *Blog) EnsureIndexes(ctx context.Context) error {
	for _, col := range []*mongoLib.Collection{
		d.GetPostsCol(),
		d.GetCategoriesCol(),
		d.GetTagsCol(),
	} {
		if _, err := col.Indexes().CreateOne(ctx, mongoLib.IndexModel{
			Keys: bson.M{
				"slug": 1,
			},
			Options: options.Index().SetUnique(true),
		}); err != nil {
			return errors.Wrapf(err, "create slug index for %s", col.Name())
		}
	}

	if _, err := d.GetPostsCol().Indexes().CreateOne(ctx, mongoLib.IndexModel{
		Keys: bson.D{
			{Key: "title", Value: "text"},
			{Key: "excerpt", Value: "text"},
		},
	}); err != nil {
		return errors.Wrap(err, "create text index for posts")
	}

	return nil
}

// idOrSlugQuery builds a lookup filter for a single identifier that may
// be either an entity id or a slug. Anything that parses as an id is
// treated as one; slugs never parse as ids, so the two cannot collide.
func idOrSlugQuery(idOrSlug string) bson.M {
	if id, err := primitive.ObjectIDFromHex(idOrSlug); err == nil {
		return bson.M{"_id": id}
	}

	return bson.M{"slug": idOrSlug}
}

// countByIDs counts distinct documents whose id is in ids.
func countByIDs(ctx context.Context, col *mongoLib.Collection, ids []primitive.ObjectID) (int64, error) {
	n, err := col.CountDocuments(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return 0, errors.Wrapf(err, "count %s", col.Name())
	}

	return n, nil
}

// slugTaken reports whether any document other than exclude holds slug.
func slugTaken(ctx context.Context, col *mongoLib.Collection,
	slug string, exclude *primitive.ObjectID) (bool, error) {
	query := bson.M{"slug": slug}
	if exclude != nil {
		query["_id"] = bson.M{"$ne": *exclude}
	}

	n, err := col.CountDocuments(ctx, query)
	if err != nil {
		return false, errors.Wrapf(err, "count slug %q in %s", slug, col.Name())
	}

	return n > 0, nil
}

func findSortedByName() *options.FindOptions {
	return options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
}

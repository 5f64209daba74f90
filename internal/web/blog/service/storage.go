package service

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Laisky/laisky-blog-api/internal/web/blog/model"
)

// Storage is the document-store boundary the service orchestrates.
// Implementations honor these contracts:
//
//   - slug unique-index violations on insert/replace surface as
//     model.ErrDuplicateSlug;
//   - lookups that match nothing return (nil, nil), deletes that match
//     nothing return (false, nil) — mapping onto model.ErrNotFound is
//     the service's job;
//   - Count* methods count distinct stored documents, so a duplicated
//     id list resolves fewer documents than it has entries;
//   - ListPosts returns published posts only, content excluded, sorted
//     by relevance (when Search is set) then publication recency;
//   - ListCategories and ListTags sort by name.
type Storage interface {
	// EnsureIndexes creates the unique slug indexes and the post text index.
	EnsureIndexes(ctx context.Context) error

	CountCategories(ctx context.Context, ids []primitive.ObjectID) (int64, error)
	CountTags(ctx context.Context, ids []primitive.ObjectID) (int64, error)
	CountPostsWithCategory(ctx context.Context, id primitive.ObjectID) (int64, error)
	CountPostsWithTag(ctx context.Context, id primitive.ObjectID) (int64, error)
	CountCategoryChildren(ctx context.Context, id primitive.ObjectID) (int64, error)

	PostSlugTaken(ctx context.Context, slug string, exclude *primitive.ObjectID) (bool, error)
	CategorySlugTaken(ctx context.Context, slug string, exclude *primitive.ObjectID) (bool, error)
	TagSlugTaken(ctx context.Context, slug string, exclude *primitive.ObjectID) (bool, error)

	InsertPost(ctx context.Context, p *model.Post) error
	ReplacePost(ctx context.Context, p *model.Post) error
	DeletePost(ctx context.Context, id primitive.ObjectID) (bool, error)
	GetPostByID(ctx context.Context, id primitive.ObjectID) (*model.Post, error)
	GetPost(ctx context.Context, idOrSlug string, publishedOnly bool) (*model.Post, error)
	ListPosts(ctx context.Context, filter model.PostFilter) ([]*model.Post, error)
	FindCategoriesByIDs(ctx context.Context, ids []primitive.ObjectID) ([]*model.Category, error)
	FindTagsByIDs(ctx context.Context, ids []primitive.ObjectID) ([]*model.Tag, error)

	InsertCategory(ctx context.Context, cate *model.Category) error
	ReplaceCategory(ctx context.Context, cate *model.Category) error
	DeleteCategory(ctx context.Context, id primitive.ObjectID) (bool, error)
	GetCategoryByID(ctx context.Context, id primitive.ObjectID) (*model.Category, error)
	GetCategory(ctx context.Context, idOrSlug string) (*model.Category, error)
	ListCategories(ctx context.Context) ([]*model.Category, error)

	InsertTag(ctx context.Context, tag *model.Tag) error
	ReplaceTag(ctx context.Context, tag *model.Tag) error
	DeleteTag(ctx context.Context, id primitive.ObjectID) (bool, error)
	GetTagByID(ctx context.Context, id primitive.ObjectID) (*model.Tag, error)
	GetTag(ctx context.Context, idOrSlug string) (*model.Tag, error)
	ListTags(ctx context.Context) ([]*model.Tag, error)
}

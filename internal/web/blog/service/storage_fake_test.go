package service

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/Laisky/errors/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Laisky/laisky-blog-api/internal/web/blog/model"
)

// fakeStorage keeps all documents in maps, mirroring the Storage
// contracts: duplicate slugs fail inserts and replaces, missing lookups
// return (nil, nil), counts are over distinct documents, and listings
// honor the published-only / content-excluded / sorted rules.
type fakeStorage struct {
	mu    sync.Mutex
	posts map[primitive.ObjectID]*model.Post
	cates map[primitive.ObjectID]*model.Category
	tags  map[primitive.ObjectID]*model.Tag
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{
		posts: map[primitive.ObjectID]*model.Post{},
		cates: map[primitive.ObjectID]*model.Category{},
		tags:  map[primitive.ObjectID]*model.Tag{},
	}
}

func copyPost(p *model.Post) *model.Post {
	cp := *p
	return &cp
}

func copyCategory(cate *model.Category) *model.Category {
	cp := *cate
	return &cp
}

func copyTag(tag *model.Tag) *model.Tag {
	cp := *tag
	return &cp
}

func (f *fakeStorage) EnsureIndexes(context.Context) error { return nil }

func (f *fakeStorage) CountCategories(_ context.Context, ids []primitive.ObjectID) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var n int64
	seen := map[primitive.ObjectID]struct{}{}
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		if _, ok := f.cates[id]; ok {
			n++
		}
	}
	return n, nil
}

func (f *fakeStorage) CountTags(_ context.Context, ids []primitive.ObjectID) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var n int64
	seen := map[primitive.ObjectID]struct{}{}
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		if _, ok := f.tags[id]; ok {
			n++
		}
	}
	return n, nil
}

func (f *fakeStorage) CountPostsWithCategory(_ context.Context, id primitive.ObjectID) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var n int64
	for _, p := range f.posts {
		for _, cid := range p.Categories {
			if cid == id {
				n++
				break
			}
		}
	}
	return n, nil
}

func (f *fakeStorage) CountPostsWithTag(_ context.Context, id primitive.ObjectID) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var n int64
	for _, p := range f.posts {
		for _, tid := range p.Tags {
			if tid == id {
				n++
				break
			}
		}
	}
	return n, nil
}

func (f *fakeStorage) CountCategoryChildren(_ context.Context, id primitive.ObjectID) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var n int64
	for _, cate := range f.cates {
		if cate.ParentID != nil && *cate.ParentID == id {
			n++
		}
	}
	return n, nil
}

func (f *fakeStorage) PostSlugTaken(_ context.Context, slug string, exclude *primitive.ObjectID) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, p := range f.posts {
		if p.Slug == slug && (exclude == nil || p.ID != *exclude) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeStorage) CategorySlugTaken(_ context.Context, slug string, exclude *primitive.ObjectID) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, cate := range f.cates {
		if cate.Slug == slug && (exclude == nil || cate.ID != *exclude) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeStorage) TagSlugTaken(_ context.Context, slug string, exclude *primitive.ObjectID) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, tag := range f.tags {
		if tag.Slug == slug && (exclude == nil || tag.ID != *exclude) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeStorage) InsertPost(_ context.Context, p *model.Post) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, other := range f.posts {
		if other.Slug == p.Slug {
			return errors.Wrap(model.ErrDuplicateSlug, p.Slug)
		}
	}
	f.posts[p.ID] = copyPost(p)
	return nil
}

func (f *fakeStorage) ReplacePost(_ context.Context, p *model.Post) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, other := range f.posts {
		if other.Slug == p.Slug && other.ID != p.ID {
			return errors.Wrap(model.ErrDuplicateSlug, p.Slug)
		}
	}
	f.posts[p.ID] = copyPost(p)
	return nil
}

func (f *fakeStorage) DeletePost(_ context.Context, id primitive.ObjectID) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.posts[id]; !ok {
		return false, nil
	}
	delete(f.posts, id)
	return true, nil
}

func (f *fakeStorage) GetPostByID(_ context.Context, id primitive.ObjectID) (*model.Post, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	p, ok := f.posts[id]
	if !ok {
		return nil, nil
	}
	return copyPost(p), nil
}

func (f *fakeStorage) GetPost(_ context.Context, idOrSlug string, publishedOnly bool) (*model.Post, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var found *model.Post
	if id, err := primitive.ObjectIDFromHex(idOrSlug); err == nil {
		found = f.posts[id]
	} else {
		for _, p := range f.posts {
			if p.Slug == idOrSlug {
				found = p
				break
			}
		}
	}

	if found == nil {
		return nil, nil
	}
	if publishedOnly && found.Status != model.PostStatusPublished {
		return nil, nil
	}
	return copyPost(found), nil
}

func (f *fakeStorage) ListPosts(_ context.Context, filter model.PostFilter) ([]*model.Post, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	results := []*model.Post{}
	for _, p := range f.posts {
		if p.Status != model.PostStatusPublished {
			continue
		}
		if filter.Search != "" {
			haystack := strings.ToLower(p.Title + " " + p.Excerpt)
			if !strings.Contains(haystack, strings.ToLower(filter.Search)) {
				continue
			}
		}
		if len(filter.CategoryIDs) != 0 && !anyIDMatch(p.Categories, filter.CategoryIDs) {
			continue
		}
		if len(filter.TagIDs) != 0 && !anyIDMatch(p.Tags, filter.TagIDs) {
			continue
		}

		cp := copyPost(p)
		cp.Content = nil
		results = append(results, cp)
	}

	sort.Slice(results, func(i, j int) bool {
		a, b := results[i].PublishedAt, results[j].PublishedAt
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		default:
			return a.After(*b)
		}
	})

	if filter.Limit > 0 && int64(len(results)) > filter.Limit {
		results = results[:filter.Limit]
	}
	return results, nil
}

func anyIDMatch(have, want []primitive.ObjectID) bool {
	for _, h := range have {
		for _, w := range want {
			if h == w {
				return true
			}
		}
	}
	return false
}

func (f *fakeStorage) FindCategoriesByIDs(_ context.Context, ids []primitive.ObjectID) ([]*model.Category, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	results := []*model.Category{}
	for _, id := range ids {
		if cate, ok := f.cates[id]; ok {
			results = append(results, copyCategory(cate))
		}
	}
	return results, nil
}

func (f *fakeStorage) FindTagsByIDs(_ context.Context, ids []primitive.ObjectID) ([]*model.Tag, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	results := []*model.Tag{}
	for _, id := range ids {
		if tag, ok := f.tags[id]; ok {
			results = append(results, copyTag(tag))
		}
	}
	return results, nil
}

func (f *fakeStorage) InsertCategory(_ context.Context, cate *model.Category) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, other := range f.cates {
		if other.Slug == cate.Slug {
			return errors.Wrap(model.ErrDuplicateSlug, cate.Slug)
		}
	}
	f.cates[cate.ID] = copyCategory(cate)
	return nil
}

func (f *fakeStorage) ReplaceCategory(_ context.Context, cate *model.Category) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, other := range f.cates {
		if other.Slug == cate.Slug && other.ID != cate.ID {
			return errors.Wrap(model.ErrDuplicateSlug, cate.Slug)
		}
	}
	f.cates[cate.ID] = copyCategory(cate)
	return nil
}

func (f *fakeStorage) DeleteCategory(_ context.Context, id primitive.ObjectID) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.cates[id]; !ok {
		return false, nil
	}
	delete(f.cates, id)
	return true, nil
}

func (f *fakeStorage) GetCategoryByID(_ context.Context, id primitive.ObjectID) (*model.Category, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	cate, ok := f.cates[id]
	if !ok {
		return nil, nil
	}
	return copyCategory(cate), nil
}

func (f *fakeStorage) GetCategory(_ context.Context, idOrSlug string) (*model.Category, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if id, err := primitive.ObjectIDFromHex(idOrSlug); err == nil {
		if cate, ok := f.cates[id]; ok {
			return copyCategory(cate), nil
		}
		return nil, nil
	}

	for _, cate := range f.cates {
		if cate.Slug == idOrSlug {
			return copyCategory(cate), nil
		}
	}
	return nil, nil
}

func (f *fakeStorage) ListCategories(_ context.Context) ([]*model.Category, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	results := []*model.Category{}
	for _, cate := range f.cates {
		results = append(results, copyCategory(cate))
	}
	sort.Slice(results, func(i, j int) bool {
		return results[i].Name < results[j].Name
	})
	return results, nil
}

func (f *fakeStorage) InsertTag(_ context.Context, tag *model.Tag) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, other := range f.tags {
		if other.Slug == tag.Slug {
			return errors.Wrap(model.ErrDuplicateSlug, tag.Slug)
		}
	}
	f.tags[tag.ID] = copyTag(tag)
	return nil
}

func (f *fakeStorage) ReplaceTag(_ context.Context, tag *model.Tag) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, other := range f.tags {
		if other.Slug == tag.Slug && other.ID != tag.ID {
			return errors.Wrap(model.ErrDuplicateSlug, tag.Slug)
		}
	}
	f.tags[tag.ID] = copyTag(tag)
	return nil
}

func (f *fakeStorage) DeleteTag(_ context.Context, id primitive.ObjectID) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.tags[id]; !ok {
		return false, nil
	}
	delete(f.tags, id)
	return true, nil
}

func (f *fakeStorage) GetTagByID(_ context.Context, id primitive.ObjectID) (*model.Tag, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	tag, ok := f.tags[id]
	if !ok {
		return nil, nil
	}
	return copyTag(tag), nil
}

func (f *fakeStorage) GetTag(_ context.Context, idOrSlug string) (*model.Tag, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if id, err := primitive.ObjectIDFromHex(idOrSlug); err == nil {
		if tag, ok := f.tags[id]; ok {
			return copyTag(tag), nil
		}
		return nil, nil
	}

	for _, tag := range f.tags {
		if tag.Slug == idOrSlug {
			return copyTag(tag), nil
		}
	}
	return nil, nil
}

func (f *fakeStorage) ListTags(_ context.Context) ([]*model.Tag, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	results := []*model.Tag{}
	for _, tag := range f.tags {
		results = append(results, copyTag(tag))
	}
	sort.Slice(results, func(i, j int) bool {
		return results[i].Name < results[j].Name
	})
	return results, nil
}

// postCount reports the number of stored posts, for asserting that a
// refused write persisted nothing.
func (f *fakeStorage) postCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.posts)
}

var _ Storage = (*fakeStorage)(nil)

package service

import (
	"context"
	"time"

	"github.com/Laisky/errors/v2"
	gutils "github.com/Laisky/go-utils/v6"
	"github.com/Laisky/zap"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/sync/errgroup"

	"github.com/Laisky/laisky-blog-api/internal/web/blog/dto"
	"github.com/Laisky/laisky-blog-api/internal/web/blog/model"
)

// searchResultLimit caps full-text search results.
const searchResultLimit = 5

// slugTakenFunc checks whether a slug is held by any live entity other
// than the excluded one.
type slugTakenFunc func(ctx context.Context, slug string, exclude *primitive.ObjectID) (bool, error)

// NewPost inserts a new post. The slug is derived from the title and
// must be free; referenced category/tag ids must all resolve before
// anything is persisted.
func (s *Blog) NewPost(ctx context.Context, req *dto.NewPostRequest) (*dto.PostResponse, error) {
	title, err := sanitizeRequiredText(req.Title, maxTitleLength, "title")
	if err != nil {
		return nil, errors.WithStack(err)
	}

	excerpt, err := sanitizeOptionalText(req.Excerpt, maxExcerptLength, "excerpt")
	if err != nil {
		return nil, errors.WithStack(err)
	}

	if err = req.Content.ValidateRoot(); err != nil {
		return nil, errors.WithStack(err)
	}

	cateIDs, err := parseObjectIDs(req.Categories, "categories")
	if err != nil {
		return nil, errors.WithStack(err)
	}
	tagIDs, err := parseObjectIDs(req.Tags, "tags")
	if err != nil {
		return nil, errors.WithStack(err)
	}

	if err = s.assertCategoriesExist(ctx, cateIDs); err != nil {
		return nil, errors.WithStack(err)
	}
	if err = s.assertTagsExist(ctx, tagIDs); err != nil {
		return nil, errors.WithStack(err)
	}

	slug := slugify(title)
	if slug == "" {
		return nil, errors.Wrap(model.ErrValidation, "title yields empty slug")
	}
	if err = ensureSlugFree(ctx, s.store.PostSlugTaken, slug, nil); err != nil {
		return nil, errors.WithStack(err)
	}

	ts := gutils.Clock.GetUTCNow()
	p := &model.Post{
		ID:        primitive.NewObjectID(),
		CreatedAt: ts,
		UpdatedAt: ts,
		Title:     title,
		Slug:      slug,
		Excerpt:   excerpt,
		Content:   req.Content,
		Author: model.AuthorSnapshot{
			ID:    s.admin.ID,
			Email: s.admin.Email,
		},
		Categories: cateIDs,
		Tags:       tagIDs,
		Metadata:   req.Metadata,
		Status:     model.PostStatusDraft,
	}

	if req.Status != "" && model.PostStatus(req.Status) != model.PostStatusDraft {
		if err = applyStatusTransition(p, model.PostStatus(req.Status), ts); err != nil {
			return nil, errors.WithStack(err)
		}
	}

	if err = s.store.InsertPost(ctx, p); err != nil {
		return nil, errors.Wrap(err, "insert post")
	}

	s.logger.Info("insert new post",
		zap.String("title", p.Title),
		zap.String("slug", p.Slug))
	return s.serializePost(ctx, p, true)
}

// UpdatePost applies a partial merge: only fields present in the
// request overwrite the stored document. Content and author are
// immutable after creation and never accepted here. A new title
// recomputes the slug and re-checks uniqueness excluding the post
// itself.
func (s *Blog) UpdatePost(ctx context.Context, rawID string, req *dto.UpdatePostRequest) (*dto.PostResponse, error) {
	id, err := primitive.ObjectIDFromHex(rawID)
	if err != nil {
		return nil, errors.Wrapf(model.ErrValidation, "invalid post id %q", rawID)
	}

	p, err := s.store.GetPostByID(ctx, id)
	if err != nil {
		return nil, errors.Wrapf(err, "load post %q", rawID)
	}
	if p == nil {
		return nil, errors.WithStack(model.ErrNotFound)
	}

	if req.Title != nil {
		title, err := sanitizeRequiredText(*req.Title, maxTitleLength, "title")
		if err != nil {
			return nil, errors.WithStack(err)
		}

		slug := slugify(title)
		if slug == "" {
			return nil, errors.Wrap(model.ErrValidation, "title yields empty slug")
		}
		if slug != p.Slug {
			if err = ensureSlugFree(ctx, s.store.PostSlugTaken, slug, &p.ID); err != nil {
				return nil, errors.WithStack(err)
			}
		}

		p.Title = title
		p.Slug = slug
	}

	if req.Excerpt != nil {
		excerpt, err := sanitizeOptionalText(*req.Excerpt, maxExcerptLength, "excerpt")
		if err != nil {
			return nil, errors.WithStack(err)
		}
		p.Excerpt = excerpt
	}

	if req.Categories != nil {
		cateIDs, err := parseObjectIDs(*req.Categories, "categories")
		if err != nil {
			return nil, errors.WithStack(err)
		}
		if err = s.assertCategoriesExist(ctx, cateIDs); err != nil {
			return nil, errors.WithStack(err)
		}
		p.Categories = cateIDs
	}

	if req.Tags != nil {
		tagIDs, err := parseObjectIDs(*req.Tags, "tags")
		if err != nil {
			return nil, errors.WithStack(err)
		}
		if err = s.assertTagsExist(ctx, tagIDs); err != nil {
			return nil, errors.WithStack(err)
		}
		p.Tags = tagIDs
	}

	if req.Metadata != nil {
		p.Metadata = *req.Metadata
	}

	if req.Status != nil {
		if err = applyStatusTransition(p, model.PostStatus(*req.Status),
			gutils.Clock.GetUTCNow()); err != nil {
			return nil, errors.WithStack(err)
		}
	}

	p.UpdatedAt = gutils.Clock.GetUTCNow()
	if err = s.store.ReplacePost(ctx, p); err != nil {
		return nil, errors.Wrap(err, "update post")
	}

	s.logger.Info("updated post", zap.String("slug", p.Slug))
	return s.serializePost(ctx, p, true)
}

// DeletePost removes a post unconditionally; nothing in the model
// references a post by id.
func (s *Blog) DeletePost(ctx context.Context, rawID string) error {
	id, err := primitive.ObjectIDFromHex(rawID)
	if err != nil {
		return errors.Wrapf(model.ErrValidation, "invalid post id %q", rawID)
	}

	deleted, err := s.store.DeletePost(ctx, id)
	if err != nil {
		return errors.Wrap(err, "delete post")
	}
	if !deleted {
		return errors.WithStack(model.ErrNotFound)
	}

	s.logger.Info("deleted post", zap.String("id", rawID))
	return nil
}

// LoadPublishedPosts lists published posts sorted by publication
// recency, excluding the heavyweight content field.
func (s *Blog) LoadPublishedPosts(ctx context.Context) ([]*dto.PostResponse, error) {
	return s.findPosts(ctx, model.PostFilter{})
}

// LoadPost fetches one post by id or slug: the identifier is tried as
// an id first, then as a slug. The public path only resolves published
// posts; an authenticated admin may read any status.
func (s *Blog) LoadPost(ctx context.Context, idOrSlug string, publishedOnly bool) (*dto.PostResponse, error) {
	p, err := s.store.GetPost(ctx, idOrSlug, publishedOnly)
	if err != nil {
		return nil, errors.Wrapf(err, "load post %q", idOrSlug)
	}
	if p == nil {
		return nil, errors.WithStack(model.ErrNotFound)
	}

	return s.serializePost(ctx, p, true)
}

// SearchPosts runs a full-text search over published posts, returning
// the top results ranked by relevance then recency. Ranking itself is
// delegated to the store's text index.
func (s *Blog) SearchPosts(ctx context.Context, query string) ([]*dto.PostResponse, error) {
	q, err := sanitizeRequiredText(query, maxSearchQueryLength, "query")
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return s.findPosts(ctx, model.PostFilter{
		Search: q,
		Limit:  searchResultLimit,
	})
}

// LoadPostsByTags lists published posts referencing any of the given
// tag ids. The id set is existence-validated first.
func (s *Blog) LoadPostsByTags(ctx context.Context, rawIDs []string) ([]*dto.PostResponse, error) {
	ids, err := parseObjectIDs(rawIDs, "tagIds")
	if err != nil {
		return nil, errors.WithStack(err)
	}
	if len(ids) == 0 {
		return nil, errors.Wrap(model.ErrValidation, "tagIds is required")
	}
	if err = s.assertTagsExist(ctx, ids); err != nil {
		return nil, errors.WithStack(err)
	}

	return s.findPosts(ctx, model.PostFilter{TagIDs: ids})
}

// LoadPostsByCategories lists published posts referencing any of the
// given category ids. The id set is existence-validated first.
func (s *Blog) LoadPostsByCategories(ctx context.Context, rawIDs []string) ([]*dto.PostResponse, error) {
	ids, err := parseObjectIDs(rawIDs, "categoryIds")
	if err != nil {
		return nil, errors.WithStack(err)
	}
	if len(ids) == 0 {
		return nil, errors.Wrap(model.ErrValidation, "categoryIds is required")
	}
	if err = s.assertCategoriesExist(ctx, ids); err != nil {
		return nil, errors.WithStack(err)
	}

	return s.findPosts(ctx, model.PostFilter{CategoryIDs: ids})
}

// findPosts runs a filtered listing and serializes the results with
// references resolved.
func (s *Blog) findPosts(ctx context.Context, filter model.PostFilter) ([]*dto.PostResponse, error) {
	posts, err := s.store.ListPosts(ctx, filter)
	if err != nil {
		return nil, errors.Wrap(err, "find posts")
	}

	return s.serializePosts(ctx, posts, false)
}

// applyStatusTransition enforces the status state machine and stamps
// publishedAt exactly once, on the first transition into published.
// Later transitions never clear it: it records first publication, not
// current status.
func applyStatusTransition(p *model.Post, next model.PostStatus, now time.Time) error {
	if !next.Valid() {
		return errors.Wrapf(model.ErrValidation, "unknown status %q", next)
	}
	if !p.Status.CanTransition(next) {
		return errors.Wrapf(model.ErrValidation,
			"cannot transition %s -> %s", p.Status, next)
	}

	p.Status = next
	if next == model.PostStatusPublished && p.PublishedAt == nil {
		ts := now
		p.PublishedAt = &ts
	}

	return nil
}

// ensureSlugFree checks a slug against live entities, excluding the
// renamed entity itself. The read-then-write window is not
// transactional; the unique index maps the residual race to
// ErrDuplicateSlug at insert.
func ensureSlugFree(ctx context.Context, taken slugTakenFunc,
	slug string, excludeID *primitive.ObjectID) error {
	ok, err := taken(ctx, slug, excludeID)
	if err != nil {
		return errors.Wrapf(err, "check slug %q", slug)
	}
	if ok {
		return errors.Wrap(model.ErrDuplicateSlug, slug)
	}

	return nil
}

// populateRefs is the explicit fetch-and-merge stage after the primary
// read: both referenced id sets are fetched concurrently and handed to
// the serializer for resolution.
func (s *Blog) populateRefs(ctx context.Context, posts []*model.Post) (
	map[primitive.ObjectID]*model.Category,
	map[primitive.ObjectID]*model.Tag,
	error,
) {
	cateIDs := map[primitive.ObjectID]struct{}{}
	tagIDs := map[primitive.ObjectID]struct{}{}
	for _, p := range posts {
		for _, id := range p.Categories {
			cateIDs[id] = struct{}{}
		}
		for _, id := range p.Tags {
			tagIDs[id] = struct{}{}
		}
	}

	cates := map[primitive.ObjectID]*model.Category{}
	tags := map[primitive.ObjectID]*model.Tag{}

	pool, gctx := errgroup.WithContext(ctx)
	if len(cateIDs) != 0 {
		ids := make([]primitive.ObjectID, 0, len(cateIDs))
		for id := range cateIDs {
			ids = append(ids, id)
		}

		pool.Go(func() error {
			results, err := s.store.FindCategoriesByIDs(gctx, ids)
			if err != nil {
				return errors.Wrap(err, "find referenced categories")
			}

			for _, cate := range results {
				cates[cate.ID] = cate
			}
			return nil
		})
	}

	if len(tagIDs) != 0 {
		ids := make([]primitive.ObjectID, 0, len(tagIDs))
		for id := range tagIDs {
			ids = append(ids, id)
		}

		pool.Go(func() error {
			results, err := s.store.FindTagsByIDs(gctx, ids)
			if err != nil {
				return errors.Wrap(err, "find referenced tags")
			}

			for _, tag := range results {
				tags[tag.ID] = tag
			}
			return nil
		})
	}

	if err := pool.Wait(); err != nil {
		return nil, nil, errors.WithStack(err)
	}

	return cates, tags, nil
}

func (s *Blog) serializePost(ctx context.Context, p *model.Post, includeContent bool) (*dto.PostResponse, error) {
	results, err := s.serializePosts(ctx, []*model.Post{p}, includeContent)
	if err != nil {
		return nil, err
	}

	return results[0], nil
}

func (s *Blog) serializePosts(ctx context.Context, posts []*model.Post, includeContent bool) ([]*dto.PostResponse, error) {
	cates, tags, err := s.populateRefs(ctx, posts)
	if err != nil {
		return nil, errors.Wrap(err, "populate references")
	}

	results := make([]*dto.PostResponse, 0, len(posts))
	for _, p := range posts {
		resp, err := dto.NewPostResponse(p, cates, tags, includeContent)
		if err != nil {
			return nil, errors.Wrap(err, "serialize post")
		}

		resp.ExcerptHTML = RenderExcerptHTML(p.Excerpt)
		results = append(results, resp)
	}

	return results, nil
}

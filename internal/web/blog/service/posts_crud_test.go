package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Laisky/laisky-blog-api/internal/web/blog/dto"
	"github.com/Laisky/laisky-blog-api/internal/web/blog/model"
)

func testContent() model.Content {
	return model.Content{
		"type": "root",
		"children": []any{
			map[string]any{"type": "paragraph", "text": "hello"},
		},
	}
}

func strPtr(s string) *string { return &s }

func TestNewPostDuplicateSlug(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, _, _ := newTestService(t, testAdminEmail)

	_, err := svc.NewPost(ctx, &dto.NewPostRequest{
		Title:   "Hello World",
		Content: testContent(),
	})
	require.NoError(t, err)

	// A title differing only in casing and whitespace slugs to the same
	// value and must be refused.
	_, err = svc.NewPost(ctx, &dto.NewPostRequest{
		Title:   "  hello   WORLD ",
		Content: testContent(),
	})
	require.ErrorIs(t, err, model.ErrDuplicateSlug)
}

func TestNewTaxonomyDuplicateSlug(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, _, _ := newTestService(t, testAdminEmail)

	_, err := svc.NewCategory(ctx, &dto.NewCategoryRequest{Name: "Tech"})
	require.NoError(t, err)
	_, err = svc.NewCategory(ctx, &dto.NewCategoryRequest{Name: " TECH "})
	require.ErrorIs(t, err, model.ErrDuplicateSlug)

	_, err = svc.NewTag(ctx, &dto.NewTagRequest{Name: "Go Modules"})
	require.NoError(t, err)
	_, err = svc.NewTag(ctx, &dto.NewTagRequest{Name: "go   modules"})
	require.ErrorIs(t, err, model.ErrDuplicateSlug)
}

func TestUpdatePostPartialMerge(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, _, _ := newTestService(t, testAdminEmail)

	created, err := svc.NewPost(ctx, &dto.NewPostRequest{
		Title:   "Immutable Slug",
		Excerpt: "before",
		Content: testContent(),
	})
	require.NoError(t, err)
	require.Equal(t, "immutable-slug", created.Slug)

	// Updating without a title leaves title and slug untouched.
	updated, err := svc.UpdatePost(ctx, created.ID, &dto.UpdatePostRequest{
		Excerpt: strPtr("after"),
	})
	require.NoError(t, err)
	require.Equal(t, "Immutable Slug", updated.Title)
	require.Equal(t, "immutable-slug", updated.Slug)
	require.Equal(t, "after", updated.Excerpt)

	// A new title recomputes the slug.
	updated, err = svc.UpdatePost(ctx, created.ID, &dto.UpdatePostRequest{
		Title: strPtr("Renamed Post"),
	})
	require.NoError(t, err)
	require.Equal(t, "renamed-post", updated.Slug)
	require.Equal(t, "after", updated.Excerpt)

	// Re-asserting the own title is not a collision with itself.
	_, err = svc.UpdatePost(ctx, created.ID, &dto.UpdatePostRequest{
		Title: strPtr("Renamed Post"),
	})
	require.NoError(t, err)

	// Renaming onto another post's slug is refused.
	_, err = svc.NewPost(ctx, &dto.NewPostRequest{
		Title:   "Occupied Title",
		Content: testContent(),
	})
	require.NoError(t, err)
	_, err = svc.UpdatePost(ctx, created.ID, &dto.UpdatePostRequest{
		Title: strPtr("occupied title"),
	})
	require.ErrorIs(t, err, model.ErrDuplicateSlug)
}

func TestPostPublishLifecycle(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, _, _ := newTestService(t, testAdminEmail)

	created, err := svc.NewPost(ctx, &dto.NewPostRequest{
		Title:   "Lifecycle",
		Content: testContent(),
	})
	require.NoError(t, err)
	require.Equal(t, model.PostStatusDraft, created.Status)
	require.Nil(t, created.PublishedAt)

	// Drafts are invisible on the public path but readable for admins.
	_, err = svc.LoadPost(ctx, created.ID, true)
	require.ErrorIs(t, err, model.ErrNotFound)
	_, err = svc.LoadPost(ctx, created.ID, false)
	require.NoError(t, err)

	published, err := svc.UpdatePost(ctx, created.ID, &dto.UpdatePostRequest{
		Status: strPtr(string(model.PostStatusPublished)),
	})
	require.NoError(t, err)
	require.Equal(t, model.PostStatusPublished, published.Status)
	require.NotNil(t, published.PublishedAt)

	listed, err := svc.LoadPublishedPosts(ctx)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	require.Nil(t, listed[0].Content, "listings exclude content")

	// published -> draft is not a legal transition.
	_, err = svc.UpdatePost(ctx, created.ID, &dto.UpdatePostRequest{
		Status: strPtr(string(model.PostStatusDraft)),
	})
	require.ErrorIs(t, err, model.ErrValidation)

	archived, err := svc.UpdatePost(ctx, created.ID, &dto.UpdatePostRequest{
		Status: strPtr(string(model.PostStatusArchived)),
	})
	require.NoError(t, err)
	require.Equal(t, model.PostStatusArchived, archived.Status)
	require.Equal(t, published.PublishedAt, archived.PublishedAt,
		"archiving keeps the first publication time")

	_, err = svc.LoadPost(ctx, created.ID, true)
	require.ErrorIs(t, err, model.ErrNotFound)
}

func TestPostReferenceResolution(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, _, _ := newTestService(t, testAdminEmail)

	cate, err := svc.NewCategory(ctx, &dto.NewCategoryRequest{Name: "Backend"})
	require.NoError(t, err)
	tag, err := svc.NewTag(ctx, &dto.NewTagRequest{Name: "mongodb"})
	require.NoError(t, err)

	created, err := svc.NewPost(ctx, &dto.NewPostRequest{
		Title:      "Resolved References",
		Content:    testContent(),
		Categories: []string{cate.ID},
		Tags:       []string{tag.ID},
		Status:     string(model.PostStatusPublished),
	})
	require.NoError(t, err)
	require.Len(t, created.Categories, 1)
	require.Equal(t, "Backend", created.Categories[0].Name)
	require.Equal(t, "backend", created.Categories[0].Slug)
	require.Len(t, created.Tags, 1)
	require.Equal(t, "mongodb", created.Tags[0].Name)

	byCate, err := svc.LoadPostsByCategories(ctx, []string{cate.ID})
	require.NoError(t, err)
	require.Len(t, byCate, 1)

	byTag, err := svc.LoadPostsByTags(ctx, []string{tag.ID})
	require.NoError(t, err)
	require.Len(t, byTag, 1)
}

func TestSearchPostsPublishedOnly(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, _, _ := newTestService(t, testAdminEmail)

	_, err := svc.NewPost(ctx, &dto.NewPostRequest{
		Title:   "Visible Gopher Notes",
		Content: testContent(),
		Status:  string(model.PostStatusPublished),
	})
	require.NoError(t, err)
	_, err = svc.NewPost(ctx, &dto.NewPostRequest{
		Title:   "Hidden Gopher Draft",
		Content: testContent(),
	})
	require.NoError(t, err)

	results, err := svc.SearchPosts(ctx, "gopher")
	require.NoError(t, err)
	require.Len(t, results, 1)
	require.Equal(t, "visible-gopher-notes", results[0].Slug)
}

package dto

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Laisky/laisky-blog-api/internal/web/blog/model"
)

func samplePost() (*model.Post, *model.Category, *model.Tag) {
	now := time.Date(2026, 8, 24, 10, 0, 0, 0, time.UTC)
	cate := &model.Category{
		ID:   primitive.NewObjectID(),
		Name: "Tech",
		Slug: "tech",
	}
	tag := &model.Tag{
		ID:   primitive.NewObjectID(),
		Name: "AI",
		Slug: "ai",
	}
	p := &model.Post{
		ID:        primitive.NewObjectID(),
		CreatedAt: now,
		UpdatedAt: now,
		Title:     "Hello World",
		Slug:      "hello-world",
		Excerpt:   "greetings",
		Content:   model.Content{"type": "root"},
		Author:    model.AuthorSnapshot{ID: "admin", Email: "admin@example.com"},
		Categories: []primitive.ObjectID{
			cate.ID,
		},
		Tags: []primitive.ObjectID{
			tag.ID,
		},
		Status: model.PostStatusPublished,
	}

	return p, cate, tag
}

func TestNewPostResponse(t *testing.T) {
	t.Parallel()

	p, cate, tag := samplePost()
	cates := map[primitive.ObjectID]*model.Category{cate.ID: cate}
	tags := map[primitive.ObjectID]*model.Tag{tag.ID: tag}

	resp, err := NewPostResponse(p, cates, tags, true)
	require.NoError(t, err)

	require.Equal(t, p.ID.Hex(), resp.ID)
	require.Equal(t, "Hello World", resp.Title)
	require.Equal(t, "hello-world", resp.Slug)
	require.Equal(t, p.Author, resp.Author)
	require.Equal(t, model.PostStatusPublished, resp.Status)
	require.Equal(t, p.Content, resp.Content)

	require.Equal(t, []CategoryRef{{ID: cate.ID.Hex(), Name: "Tech", Slug: "tech"}}, resp.Categories)
	require.Equal(t, []TagRef{{ID: tag.ID.Hex(), Name: "AI", Slug: "ai"}}, resp.Tags)
}

func TestNewPostResponseExcludesContent(t *testing.T) {
	t.Parallel()

	p, cate, tag := samplePost()
	cates := map[primitive.ObjectID]*model.Category{cate.ID: cate}
	tags := map[primitive.ObjectID]*model.Tag{tag.ID: tag}

	resp, err := NewPostResponse(p, cates, tags, false)
	require.NoError(t, err)
	require.Nil(t, resp.Content)
	require.Equal(t, "greetings", resp.Excerpt)
}

func TestNewPostResponseUnresolvedRefs(t *testing.T) {
	t.Parallel()

	p, _, _ := samplePost()

	// Empty maps: the id survives as a bare ref instead of vanishing.
	resp, err := NewPostResponse(p, nil, nil, true)
	require.NoError(t, err)
	require.Len(t, resp.Categories, 1)
	require.Equal(t, p.Categories[0].Hex(), resp.Categories[0].ID)
	require.Empty(t, resp.Categories[0].Name)
	require.Len(t, resp.Tags, 1)
	require.Equal(t, p.Tags[0].Hex(), resp.Tags[0].ID)
}

func TestNewCategoryResponse(t *testing.T) {
	t.Parallel()

	parent := primitive.NewObjectID()
	cate := &model.Category{
		ID:          primitive.NewObjectID(),
		Name:        "Databases",
		Slug:        "databases",
		Description: "storage things",
		ParentID:    &parent,
	}

	resp, err := NewCategoryResponse(cate)
	require.NoError(t, err)
	require.Equal(t, cate.ID.Hex(), resp.ID)
	require.Equal(t, "databases", resp.Slug)
	require.NotNil(t, resp.ParentID)
	require.Equal(t, parent.Hex(), *resp.ParentID)

	// Root category carries no parent linkage.
	cate.ParentID = nil
	resp, err = NewCategoryResponse(cate)
	require.NoError(t, err)
	require.Nil(t, resp.ParentID)
}

func TestNewTagResponse(t *testing.T) {
	t.Parallel()

	tag := &model.Tag{
		ID:   primitive.NewObjectID(),
		Name: "Go",
		Slug: "go",
	}

	resp, err := NewTagResponse(tag)
	require.NoError(t, err)
	require.Equal(t, tag.ID.Hex(), resp.ID)
	require.Equal(t, "Go", resp.Name)
	require.Equal(t, "go", resp.Slug)
}

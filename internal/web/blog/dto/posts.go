package dto

import (
	"time"

	"github.com/Laisky/laisky-blog-api/internal/web/blog/model"
)

// NewPostRequest full post payload for POST /blogs.
type NewPostRequest struct {
	Title      string         `json:"title" binding:"required"`
	Excerpt    string         `json:"excerpt"`
	Content    model.Content  `json:"content" binding:"required"`
	Categories []string       `json:"categories"`
	Tags       []string       `json:"tags"`
	Metadata   map[string]any `json:"metadata"`
	Status     string         `json:"status"`
}

// UpdatePostRequest partial payload for PATCH /blogs/:id. Only fields
// present overwrite the stored document; content and author are not
// accepted after creation.
type UpdatePostRequest struct {
	Title      *string         `json:"title"`
	Excerpt    *string         `json:"excerpt"`
	Categories *[]string       `json:"categories"`
	Tags       *[]string       `json:"tags"`
	Metadata   *map[string]any `json:"metadata"`
	Status     *string         `json:"status"`
}

// CategoryRef is a resolved {name, slug} projection of a referenced category.
type CategoryRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// TagRef is a resolved {name, slug} projection of a referenced tag.
type TagRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// PostResponse wire form of a post. Content is omitted on list and
// search paths, where only the excerpt travels.
type PostResponse struct {
	ID          string               `json:"id"`
	Title       string               `json:"title"`
	Slug        string               `json:"slug"`
	Excerpt     string               `json:"excerpt"`
	ExcerptHTML string               `json:"excerptHtml,omitempty"`
	Content     model.Content        `json:"content,omitempty"`
	Author      model.AuthorSnapshot `json:"author"`
	Categories  []CategoryRef        `json:"categories"`
	Tags        []TagRef             `json:"tags"`
	Metadata    map[string]any       `json:"metadata,omitempty"`
	Status      model.PostStatus     `json:"status"`
	CreatedAt   time.Time            `json:"createdAt"`
	UpdatedAt   time.Time            `json:"updatedAt"`
	PublishedAt *time.Time           `json:"publishedAt,omitempty"`
}

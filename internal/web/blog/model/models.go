// Package model contains all the documents used by the blog application.
package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PostStatus publication status of a post
type PostStatus string

const (
	// PostStatusDraft post is not publicly visible yet
	PostStatusDraft PostStatus = "draft"
	// PostStatusPublished post is publicly visible
	PostStatusPublished PostStatus = "published"
	// PostStatusArchived post is retired; no transition leaves this state
	PostStatusArchived PostStatus = "archived"
)

// Valid reports whether s is a known status.
func (s PostStatus) Valid() bool {
	switch s {
	case PostStatusDraft, PostStatusPublished, PostStatusArchived:
		return true
	default:
		return false
	}
}

// CanTransition reports whether a post may move from s to next.
// Allowed: draft->published, draft->archived, published->archived.
// Re-asserting the current status is a no-op and always allowed.
func (s PostStatus) CanTransition(next PostStatus) bool {
	if s == next {
		return true
	}

	switch s {
	case PostStatusDraft:
		return next == PostStatusPublished || next == PostStatusArchived
	case PostStatusPublished:
		return next == PostStatusArchived
	default:
		return false
	}
}

// AuthorSnapshot is the author identity embedded into a post at
// creation time. It is a snapshot, not a live reference.
type AuthorSnapshot struct {
	// ID admin identity id
	ID string `bson:"id" json:"id"`
	// Email admin email at creation time
	Email string `bson:"email" json:"email"`
}

// Post blog posts
type Post struct {
	// ID unique identifier for the post
	ID primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	// CreatedAt time when the post was created
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	// UpdatedAt time when the post was last modified
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
	// Title title of the post
	Title string `bson:"title" json:"title"`
	// Slug unique URL-safe projection of the title
	Slug string `bson:"slug" json:"slug"`
	// Excerpt short summary shown in listings
	Excerpt string `bson:"excerpt" json:"excerpt"`
	// Content opaque structured document tree, root-tagged
	Content Content `bson:"content,omitempty" json:"content,omitempty"`
	// Author embedded author snapshot, immutable after creation
	Author AuthorSnapshot `bson:"author" json:"author"`
	// Categories referenced category ids
	Categories []primitive.ObjectID `bson:"categories" json:"categories"`
	// Tags referenced tag ids
	Tags []primitive.ObjectID `bson:"tags" json:"tags"`
	// Metadata free-form metadata
	Metadata map[string]any `bson:"metadata,omitempty" json:"metadata,omitempty"`
	// Status publication status
	Status PostStatus `bson:"status" json:"status"`
	// PublishedAt set exactly once on first transition into published
	PublishedAt *time.Time `bson:"published_at,omitempty" json:"published_at,omitempty"`
}

// Category blog post categories, forming a forest via ParentID
type Category struct {
	// ID unique identifier for the category
	ID primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	// Name name of the category
	Name string `bson:"name" json:"name"`
	// Slug unique URL-safe projection of the name
	Slug string `bson:"slug" json:"slug"`
	// Description optional description
	Description string `bson:"description,omitempty" json:"description,omitempty"`
	// ParentID optional parent category
	ParentID *primitive.ObjectID `bson:"parent_id,omitempty" json:"parent_id,omitempty"`
	// CreatedAt time when the category was created
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	// UpdatedAt time when the category was last modified
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// Tag blog post tags
type Tag struct {
	// ID unique identifier for the tag
	ID primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	// Name name of the tag
	Name string `bson:"name" json:"name"`
	// Slug unique URL-safe projection of the name
	Slug string `bson:"slug" json:"slug"`
	// CreatedAt time when the tag was created
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	// UpdatedAt time when the tag was last modified
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

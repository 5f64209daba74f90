package dto

import "time"

// NewCategoryRequest payload for POST /categories.
type NewCategoryRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	ParentID    *string `json:"parentId"`
}

// UpdateCategoryRequest partial payload for PATCH /categories/:id.
type UpdateCategoryRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	ParentID    *string `json:"parentId"`
}

// CategoryResponse wire form of a category, exposing parent linkage.
type CategoryResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description,omitempty"`
	ParentID    *string   `json:"parentId,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// NewTagRequest payload for POST /tags.
type NewTagRequest struct {
	Name string `json:"name" binding:"required"`
}

// UpdateTagRequest partial payload for PATCH /tags/:id.
type UpdateTagRequest struct {
	Name *string `json:"name"`
}

// TagResponse wire form of a tag.
type TagResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

package dto

import (
	"github.com/Laisky/errors/v2"
	"github.com/jinzhu/copier"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Laisky/laisky-blog-api/internal/web/blog/model"
)

// NewPostResponse projects a post onto its wire form. Referenced
// categories/tags are resolved through the maps produced by the
// service's fetch-and-merge stage; ids missing from the maps are kept
// as bare id refs rather than dropped, since integrity is only
// enforced at write time.
func NewPostResponse(p *model.Post,
	cates map[primitive.ObjectID]*model.Category,
	tags map[primitive.ObjectID]*model.Tag,
	includeContent bool,
) (*PostResponse, error) {
	resp := &PostResponse{
		ID:          p.ID.Hex(),
		Title:       p.Title,
		Slug:        p.Slug,
		Excerpt:     p.Excerpt,
		Author:      p.Author,
		Metadata:    p.Metadata,
		Status:      p.Status,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
		PublishedAt: p.PublishedAt,
	}
	if includeContent {
		resp.Content = p.Content
	}

	resp.Categories = make([]CategoryRef, 0, len(p.Categories))
	for _, cid := range p.Categories {
		ref := CategoryRef{ID: cid.Hex()}
		if cate, ok := cates[cid]; ok {
			ref.Name = cate.Name
			ref.Slug = cate.Slug
		}
		resp.Categories = append(resp.Categories, ref)
	}

	resp.Tags = make([]TagRef, 0, len(p.Tags))
	for _, tid := range p.Tags {
		ref := TagRef{ID: tid.Hex()}
		if tag, ok := tags[tid]; ok {
			ref.Name = tag.Name
			ref.Slug = tag.Slug
		}
		resp.Tags = append(resp.Tags, ref)
	}

	return resp, nil
}

// NewCategoryResponse projects a category onto its wire form.
func NewCategoryResponse(c *model.Category) (*CategoryResponse, error) {
	resp := new(CategoryResponse)
	if err := copier.Copy(resp, c); err != nil {
		return nil, errors.Wrap(err, "copy category")
	}

	resp.ID = c.ID.Hex()
	if c.ParentID != nil {
		pid := c.ParentID.Hex()
		resp.ParentID = &pid
	}

	return resp, nil
}

// NewTagResponse projects a tag onto its wire form.
func NewTagResponse(t *model.Tag) (*TagResponse, error) {
	resp := new(TagResponse)
	if err := copier.Copy(resp, t); err != nil {
		return nil, errors.Wrap(err, "copy tag")
	}

	resp.ID = t.ID.Hex()
	return resp, nil
}

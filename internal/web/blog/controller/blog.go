package controller

import (
	"net/http"
	"strings"

	"github.com/Laisky/errors/v2"
	"github.com/gin-gonic/gin"

	"github.com/Laisky/laisky-blog-api/internal/web/blog/dto"
	"github.com/Laisky/laisky-blog-api/internal/web/blog/model"
)

// NewPost creates a post.
func (t *Type) NewPost(ctx *gin.Context) {
	req := new(dto.NewPostRequest)
	if err := ctx.ShouldBindJSON(req); err != nil {
		t.abortErr(ctx, errors.Wrap(model.ErrValidation, err.Error()))
		return
	}

	resp, err := t.svc.NewPost(ctx.Request.Context(), req)
	if err != nil {
		t.abortErr(ctx, err)
		return
	}

	respondData(ctx, http.StatusCreated, resp)
}

// UpdatePost partially updates a post by id.
func (t *Type) UpdatePost(ctx *gin.Context) {
	req := new(dto.UpdatePostRequest)
	if err := ctx.ShouldBindJSON(req); err != nil {
		t.abortErr(ctx, errors.Wrap(model.ErrValidation, err.Error()))
		return
	}

	resp, err := t.svc.UpdatePost(ctx.Request.Context(), ctx.Param("idOrSlug"), req)
	if err != nil {
		t.abortErr(ctx, err)
		return
	}

	respondData(ctx, http.StatusOK, resp)
}

// DeletePost deletes a post by id.
func (t *Type) DeletePost(ctx *gin.Context) {
	if err := t.svc.DeletePost(ctx.Request.Context(), ctx.Param("idOrSlug")); err != nil {
		t.abortErr(ctx, err)
		return
	}

	respondMessage(ctx, "post deleted")
}

// ListPosts lists published posts, content excluded.
func (t *Type) ListPosts(ctx *gin.Context) {
	results, err := t.svc.LoadPublishedPosts(ctx.Request.Context())
	if err != nil {
		t.abortErr(ctx, err)
		return
	}

	respondData(ctx, http.StatusOK, results)
}

// GetPost fetches one post by id or slug. The public path resolves
// published posts only; a valid admin token widens it to any status.
func (t *Type) GetPost(ctx *gin.Context) {
	resp, err := t.svc.LoadPost(ctx.Request.Context(),
		ctx.Param("idOrSlug"), !t.isAdmin(ctx))
	if err != nil {
		t.abortErr(ctx, err)
		return
	}

	respondData(ctx, http.StatusOK, resp)
}

// SearchPosts full-text search over published posts.
func (t *Type) SearchPosts(ctx *gin.Context) {
	results, err := t.svc.SearchPosts(ctx.Request.Context(), ctx.Query("query"))
	if err != nil {
		t.abortErr(ctx, err)
		return
	}

	respondData(ctx, http.StatusOK, results)
}

// PostsByTags lists published posts referencing any of the given tags.
func (t *Type) PostsByTags(ctx *gin.Context) {
	results, err := t.svc.LoadPostsByTags(ctx.Request.Context(),
		splitIDs(ctx.Query("tagIds")))
	if err != nil {
		t.abortErr(ctx, err)
		return
	}

	respondData(ctx, http.StatusOK, results)
}

// PostsByCategories lists published posts referencing any of the given
// categories.
func (t *Type) PostsByCategories(ctx *gin.Context) {
	results, err := t.svc.LoadPostsByCategories(ctx.Request.Context(),
		splitIDs(ctx.Query("categoryIds")))
	if err != nil {
		t.abortErr(ctx, err)
		return
	}

	respondData(ctx, http.StatusOK, results)
}

// splitIDs splits a comma-separated id list, dropping empty segments.
func splitIDs(raw string) []string {
	ids := []string{}
	for _, seg := range strings.Split(raw, ",") {
		if seg = strings.TrimSpace(seg); seg != "" {
			ids = append(ids, seg)
		}
	}

	return ids
}

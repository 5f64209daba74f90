package controller

import (
	"net/http"

	"github.com/Laisky/errors/v2"
	"github.com/gin-gonic/gin"

	"github.com/Laisky/laisky-blog-api/internal/web/blog/dto"
	"github.com/Laisky/laisky-blog-api/internal/web/blog/model"
)

// NewCategory creates a category.
func (t *Type) NewCategory(ctx *gin.Context) {
	req := new(dto.NewCategoryRequest)
	if err := ctx.ShouldBindJSON(req); err != nil {
		t.abortErr(ctx, errors.Wrap(model.ErrValidation, err.Error()))
		return
	}

	resp, err := t.svc.NewCategory(ctx.Request.Context(), req)
	if err != nil {
		t.abortErr(ctx, err)
		return
	}

	respondData(ctx, http.StatusCreated, resp)
}

// UpdateCategory partially updates a category by id.
func (t *Type) UpdateCategory(ctx *gin.Context) {
	req := new(dto.UpdateCategoryRequest)
	if err := ctx.ShouldBindJSON(req); err != nil {
		t.abortErr(ctx, errors.Wrap(model.ErrValidation, err.Error()))
		return
	}

	resp, err := t.svc.UpdateCategory(ctx.Request.Context(), ctx.Param("idOrSlug"), req)
	if err != nil {
		t.abortErr(ctx, err)
		return
	}

	respondData(ctx, http.StatusOK, resp)
}

// DeleteCategory deletes a category by id unless dependents exist.
func (t *Type) DeleteCategory(ctx *gin.Context) {
	if err := t.svc.DeleteCategory(ctx.Request.Context(), ctx.Param("idOrSlug")); err != nil {
		t.abortErr(ctx, err)
		return
	}

	respondMessage(ctx, "category deleted")
}

// ListCategories lists all categories.
func (t *Type) ListCategories(ctx *gin.Context) {
	results, err := t.svc.LoadCategories(ctx.Request.Context())
	if err != nil {
		t.abortErr(ctx, err)
		return
	}

	respondData(ctx, http.StatusOK, results)
}

// GetCategory fetches one category by id or slug.
func (t *Type) GetCategory(ctx *gin.Context) {
	resp, err := t.svc.LoadCategory(ctx.Request.Context(), ctx.Param("idOrSlug"))
	if err != nil {
		t.abortErr(ctx, err)
		return
	}

	respondData(ctx, http.StatusOK, resp)
}

// NewTag creates a tag.
func (t *Type) NewTag(ctx *gin.Context) {
	req := new(dto.NewTagRequest)
	if err := ctx.ShouldBindJSON(req); err != nil {
		t.abortErr(ctx, errors.Wrap(model.ErrValidation, err.Error()))
		return
	}

	resp, err := t.svc.NewTag(ctx.Request.Context(), req)
	if err != nil {
		t.abortErr(ctx, err)
		return
	}

	respondData(ctx, http.StatusCreated, resp)
}

// UpdateTag renames a tag by id.
func (t *Type) UpdateTag(ctx *gin.Context) {
	req := new(dto.UpdateTagRequest)
	if err := ctx.ShouldBindJSON(req); err != nil {
		t.abortErr(ctx, errors.Wrap(model.ErrValidation, err.Error()))
		return
	}

	resp, err := t.svc.UpdateTag(ctx.Request.Context(), ctx.Param("idOrSlug"), req)
	if err != nil {
		t.abortErr(ctx, err)
		return
	}

	respondData(ctx, http.StatusOK, resp)
}

// DeleteTag deletes a tag by id unless posts reference it.
func (t *Type) DeleteTag(ctx *gin.Context) {
	if err := t.svc.DeleteTag(ctx.Request.Context(), ctx.Param("idOrSlug")); err != nil {
		t.abortErr(ctx, err)
		return
	}

	respondMessage(ctx, "tag deleted")
}

// ListTags lists all tags.
func (t *Type) ListTags(ctx *gin.Context) {
	results, err := t.svc.LoadTags(ctx.Request.Context())
	if err != nil {
		t.abortErr(ctx, err)
		return
	}

	respondData(ctx, http.StatusOK, results)
}

// GetTag fetches one tag by id or slug.
func (t *Type) GetTag(ctx *gin.Context) {
	resp, err := t.svc.LoadTag(ctx.Request.Context(), ctx.Param("idOrSlug"))
	if err != nil {
		t.abortErr(ctx, err)
		return
	}

	respondData(ctx, http.StatusOK, resp)
}

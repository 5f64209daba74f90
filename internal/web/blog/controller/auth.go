package controller

import (
	"net/http"

	"github.com/Laisky/errors/v2"
	"github.com/gin-gonic/gin"

	"github.com/Laisky/laisky-blog-api/internal/web/blog/dto"
	"github.com/Laisky/laisky-blog-api/internal/web/blog/model"
)

// Login exchanges admin credentials for a token pair.
func (t *Type) Login(ctx *gin.Context) {
	req := new(dto.LoginRequest)
	if err := ctx.ShouldBindJSON(req); err != nil {
		t.abortErr(ctx, maskLoginError(errors.Wrap(model.ErrValidation, err.Error())))
		return
	}

	pair, err := t.svc.Login(ctx.Request.Context(), req.Email, req.Password)
	if err != nil {
		t.abortErr(ctx, maskLoginError(err))
		return
	}

	respondData(ctx, http.StatusOK, pair)
}

// Refresh rotates a refresh token into a fresh pair. A malformed body
// is a validation failure; only a well-formed but unknown or superseded
// token is an auth failure.
func (t *Type) Refresh(ctx *gin.Context) {
	req := new(dto.RefreshRequest)
	if err := ctx.ShouldBindJSON(req); err != nil {
		t.abortErr(ctx, errors.Wrap(model.ErrValidation, err.Error()))
		return
	}

	pair, err := t.svc.Rotate(ctx.Request.Context(), req.RefreshToken)
	if err != nil {
		t.abortErr(ctx, err)
		return
	}

	respondData(ctx, http.StatusOK, pair)
}

// Logout revokes the live refresh session.
func (t *Type) Logout(ctx *gin.Context) {
	req := new(dto.RefreshRequest)
	if err := ctx.ShouldBindJSON(req); err != nil {
		t.abortErr(ctx, errors.Wrap(model.ErrValidation, err.Error()))
		return
	}

	if err := t.svc.Revoke(ctx.Request.Context(), req.RefreshToken); err != nil {
		t.abortErr(ctx, err)
		return
	}

	respondMessage(ctx, "logged out")
}

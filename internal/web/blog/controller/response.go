package controller

import (
	"net/http"

	"github.com/Laisky/errors/v2"
	gconfig "github.com/Laisky/go-config/v2"
	"github.com/Laisky/zap"
	"github.com/gin-gonic/gin"

	"github.com/Laisky/laisky-blog-api/internal/web/blog/model"
)

func respondData(ctx *gin.Context, status int, data any) {
	ctx.JSON(status, gin.H{
		"success": true,
		"data":    data,
	})
}

func respondMessage(ctx *gin.Context, msg string) {
	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": msg,
	})
}

// abortErr converts a domain error into the error envelope. Classified
// kinds surface their own message; anything unclassified is logged and
// reported generically, with details only in debug mode.
func (t *Type) abortErr(ctx *gin.Context, err error) {
	status := statusForError(err)
	if status != http.StatusInternalServerError {
		ctx.AbortWithStatusJSON(status, gin.H{
			"success": false,
			"error":   err.Error(),
		})
		return
	}

	t.logger.Error("request failed",
		zap.String("path", ctx.FullPath()),
		zap.Error(err))
	body := gin.H{
		"success": false,
		"error":   "internal error",
	}
	if gconfig.Shared.GetBool("debug") {
		body["details"] = err.Error()
	}

	ctx.AbortWithStatusJSON(status, body)
}

// statusForError maps each domain error kind onto exactly one HTTP
// status; unclassified errors fall through to 500.
func statusForError(err error) int {
	switch {
	case errors.Is(err, model.ErrValidation),
		errors.Is(err, model.ErrDuplicateSlug),
		errors.Is(err, model.ErrDanglingReference),
		errors.Is(err, model.ErrCategoryInUse),
		errors.Is(err, model.ErrCategoryHasChildren),
		errors.Is(err, model.ErrTagInUse):
		return http.StatusBadRequest
	case errors.Is(err, model.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, model.ErrInvalidCredentials),
		errors.Is(err, model.ErrInvalidRefreshToken),
		errors.Is(err, model.ErrTokenExpired),
		errors.Is(err, model.ErrTokenInvalid),
		errors.Is(err, model.ErrUnauthorized):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

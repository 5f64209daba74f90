// Package controller is the HTTP boundary of blog: route registration,
// auth middleware, and the mapping from domain errors onto statuses.
package controller

import (
	glog "github.com/Laisky/go-utils/v6/log"
	"github.com/gin-gonic/gin"

	"github.com/Laisky/laisky-blog-api/internal/web/blog/service"
)

// Type blog controller
type Type struct {
	logger glog.Logger
	svc    *service.Blog
}

// New new blog controller
func New(logger glog.Logger, svc *service.Blog) *Type {
	return &Type{
		logger: logger,
		svc:    svc,
	}
}

// RegisterRoutes mounts the public and admin routes. Mutations sit
// behind the admin middleware; every read path is public.
func (t *Type) RegisterRoutes(engine *gin.Engine) {
	engine.POST("/login", t.Login)
	engine.POST("/refresh", t.Refresh)
	engine.POST("/logout", t.Logout)

	blogs := engine.Group("/blogs")
	blogs.GET("", t.ListPosts)
	blogs.GET("/search", t.SearchPosts)
	blogs.GET("/tags", t.PostsByTags)
	blogs.GET("/categories", t.PostsByCategories)
	blogs.GET("/:idOrSlug", t.GetPost)
	blogs.POST("", t.RequireAdmin, t.NewPost)
	blogs.PATCH("/:idOrSlug", t.RequireAdmin, t.UpdatePost)
	blogs.DELETE("/:idOrSlug", t.RequireAdmin, t.DeletePost)

	cates := engine.Group("/categories")
	cates.GET("", t.ListCategories)
	cates.GET("/:idOrSlug", t.GetCategory)
	cates.POST("", t.RequireAdmin, t.NewCategory)
	cates.PATCH("/:idOrSlug", t.RequireAdmin, t.UpdateCategory)
	cates.DELETE("/:idOrSlug", t.RequireAdmin, t.DeleteCategory)

	tags := engine.Group("/tags")
	tags.GET("", t.ListTags)
	tags.GET("/:idOrSlug", t.GetTag)
	tags.POST("", t.RequireAdmin, t.NewTag)
	tags.PATCH("/:idOrSlug", t.RequireAdmin, t.UpdateTag)
	tags.DELETE("/:idOrSlug", t.RequireAdmin, t.DeleteTag)
}

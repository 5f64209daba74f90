// Package web gin server
package web

import (
	"net/http"
	"net/url"
	"strings"

	gmw "github.com/Laisky/gin-middlewares/v7"
	gconfig "github.com/Laisky/go-config/v2"
	"github.com/Laisky/zap"
	"github.com/gin-gonic/gin"

	"github.com/Laisky/laisky-blog-api/internal/web/blog/controller"
	"github.com/Laisky/laisky-blog-api/library/log"
)

var (
	server = gin.New()
)

// RunServer mounts the blog routes and blocks serving HTTP on addr.
func RunServer(addr string, ctl *controller.Type) {
	server.Use(
		gin.Recovery(),
		gmw.NewLoggerMiddleware(
			gmw.WithLogger(log.Logger.Named("gin")),
		),
		allowCORS,
	)
	if !gconfig.Shared.GetBool("debug") {
		gin.SetMode(gin.ReleaseMode)
	}

	if err := gmw.EnableMetric(server); err != nil {
		log.Logger.Panic("enable metric server", zap.Error(err))
	}

	server.Any("/health", func(ctx *gin.Context) {
		ctx.String(http.StatusOK, "hello, world")
	})

	ctl.RegisterRoutes(server)

	log.Logger.Info("listening on http", zap.String("addr", addr))
	log.Logger.Panic("http server exit", zap.Error(server.Run(addr)))
}

// allowCORS reflects the origin when its host matches one of the
// configured `settings.cors_hosts` suffixes. With no hosts configured
// every origin is allowed, which suits a public read-mostly API.
func allowCORS(ctx *gin.Context) {
	origin := ctx.Request.Header.Get("Origin")
	allowedOrigin := ""

	if origin != "" {
		hosts := gconfig.Shared.GetStringSlice("settings.cors_hosts")
		if len(hosts) == 0 {
			allowedOrigin = origin
		} else if parsedOriginURL, err := url.Parse(origin); err == nil {
			host := strings.ToLower(parsedOriginURL.Hostname())
			for _, allowed := range hosts {
				allowed = strings.ToLower(allowed)
				if host == allowed || strings.HasSuffix(host, "."+allowed) {
					allowedOrigin = origin
					break
				}
			}
		}
	}

	if allowedOrigin != "" {
		ctx.Header("Access-Control-Allow-Origin", allowedOrigin)
		ctx.Header("Access-Control-Allow-Credentials", "true")
		ctx.Header("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS, HEAD")
		ctx.Header("Access-Control-Allow-Headers", "Content-Type, Authorization, Accept, Origin, X-Requested-With")
		ctx.Header("Access-Control-Max-Age", "86400")
		ctx.Header("Vary", "Origin")

		if ctx.Request.Method == http.MethodOptions {
			ctx.AbortWithStatus(http.StatusNoContent)
			return
		}
	} else if origin != "" && ctx.Request.Method == http.MethodOptions {
		// Preflight from a disallowed origin.
		ctx.AbortWithStatus(http.StatusForbidden)
		return
	}

	ctx.Next()
}

package cmd

import (
	"context"

	"github.com/Laisky/errors/v2"
	gconfig "github.com/Laisky/go-config/v2"
	gcmd "github.com/Laisky/go-utils/v6/cmd"
	"github.com/Laisky/zap"
	redisSDK "github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/Laisky/laisky-blog-api/internal/web"
	"github.com/Laisky/laisky-blog-api/internal/web/blog/controller"
	"github.com/Laisky/laisky-blog-api/internal/web/blog/dao"
	"github.com/Laisky/laisky-blog-api/internal/web/blog/model"
	"github.com/Laisky/laisky-blog-api/internal/web/blog/service"
	mongoSDK "github.com/Laisky/laisky-blog-api/library/db/mongo"
	rlibs "github.com/Laisky/laisky-blog-api/library/db/redis"
	"github.com/Laisky/laisky-blog-api/library/jwt"
	"github.com/Laisky/laisky-blog-api/library/log"
)

var apiCMD = &cobra.Command{
	Use:   "api",
	Short: "api",
	Long:  `blog content management API service`,
	Args:  gcmd.NoExtraArgs,
	PreRun: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		if err := initialize(ctx, cmd); err != nil {
			log.Logger.Panic("init", zap.Error(err))
		}
		if err := validateStartupConfig(); err != nil {
			log.Logger.Panic("validate config", zap.Error(err))
		}
	},
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		ctl, err := setupBlog(ctx)
		if err != nil {
			log.Logger.Panic("setup blog", zap.Error(err))
		}

		web.RunServer(gconfig.Shared.GetString("listen"), ctl)
	},
}

// setupBlog dials the stores and assembles dao -> service -> controller.
func setupBlog(ctx context.Context) (*controller.Type, error) {
	mongoDB, err := mongoSDK.NewDB(ctx, mongoSDK.DialInfo{
		Addr:   gconfig.Shared.GetString("settings.mongo.addr"),
		DBName: gconfig.Shared.GetString("settings.mongo.db"),
		User:   gconfig.Shared.GetString("settings.mongo.user"),
		Pwd:    gconfig.Shared.GetString("settings.mongo.pwd"),
	})
	if err != nil {
		return nil, errors.Wrap(err, "dial mongo")
	}

	rdb := rlibs.NewDB(&redisSDK.Options{
		Addr:     gconfig.Shared.GetString("settings.redis.addr"),
		DB:       gconfig.Shared.GetInt("settings.redis.db"),
		Password: gconfig.Shared.GetString("settings.redis.password"),
	})

	signer, err := jwt.NewSigner([]byte(gconfig.Shared.GetString("settings.secret")))
	if err != nil {
		return nil, errors.Wrap(err, "new signer")
	}

	svc, err := service.New(ctx,
		log.Logger.Named("blog"),
		dao.New(log.Logger.Named("blog_dao"), mongoDB),
		rdb,
		signer,
		service.Config{
			Admin: model.AdminIdentity{
				ID:           gconfig.Shared.GetString("settings.admin.id"),
				Email:        gconfig.Shared.GetString("settings.admin.email"),
				PasswordHash: gconfig.Shared.GetString("settings.admin.password_hash"),
			},
			AccessTTL:  gconfig.Shared.GetDuration("settings.token.access_ttl"),
			RefreshTTL: gconfig.Shared.GetDuration("settings.token.refresh_ttl"),
		})
	if err != nil {
		return nil, errors.Wrap(err, "new blog service")
	}

	return controller.New(log.Logger.Named("blog_ctl"), svc), nil
}

func init() {
	rootCMD.AddCommand(apiCMD)
}

// Package server wires repositories, services and handlers into a gin
// engine.
package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"socialhub/internal/config"
	"socialhub/internal/domain/auth"
	"socialhub/internal/domain/changelog"
	"socialhub/internal/domain/friendship"
	"socialhub/internal/domain/media"
	"socialhub/internal/domain/user"
	"socialhub/internal/middleware"
	"socialhub/internal/pkg/jwt"
	"socialhub/internal/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/afero"
	"gorm.io/gorm"
)

// Models lists every table the server needs.
func Models() []any {
	return []any{&user.User{}, &friendship.Friendship{}}
}

// New assembles the HTTP engine. Files live in fs under cfg.DataDirectory.
func New(cfg *config.Config, db *gorm.DB, fs afero.Fs, logger *slog.Logger) *gin.Engine {
	layout := user.NewLayout(cfg.DataDirectory)
	tokens := jwt.New(cfg.JWTSecret, cfg.TokenTTL)

	userRepo := user.NewRepository(db)
	users := user.NewService(userRepo, fs, layout, logger)

	friendRepo := friendship.NewRepository(db)
	guard := user.NewGuard(users, friendship.NewAuthorizer(friendRepo, users))
	friends := friendship.NewService(friendRepo, users, guard, logger)

	policies := media.NewPolicies(media.Limits{
		MediaMaxFiles:  cfg.MediaMaxFiles,
		StoryMaxFiles:  cfg.StoryMaxFiles,
		UploadMaxBytes: cfg.UploadMaxBytes,
		AvatarMaxBytes: cfg.AvatarMaxBytes,
	})
	mediaService := media.NewService(fs, layout, guard, policies, logger)

	authHandler := auth.NewHandler(users, tokens, auth.CookieConfig{
		Secure:   cfg.CookieSecure,
		SameSite: cfg.CookieSameSite,
	})
	userHandler := user.NewHandler(users, guard)
	friendHandler := friendship.NewHandler(friends)
	mediaHandler := media.NewHandler(mediaService)
	changelogHandler := changelog.NewHandler(changelog.NewService(fs, cfg.ChangelogDirectory, logger))

	r := gin.New()
	r.Use(middleware.RequestLogger(logger), middleware.Recovery(logger), middleware.Metrics())
	if cfg.Debug {
		r.Use(middleware.CORS())
	}

	r.GET("/health", health(db))
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	authHandler.RegisterPublicRoutes(api)
	if cfg.Debug {
		user.RegisterDebugRoutes(api, userHandler)
	}

	authed := api.Group("")
	authed.Use(middleware.CookieAuth(tokens, users))
	{
		authHandler.RegisterProtectedRoutes(authed)
		user.RegisterRoutes(authed, userHandler)
		friendship.RegisterRoutes(authed, friendHandler)
		media.RegisterRoutes(authed, mediaHandler)
		changelog.RegisterRoutes(authed, changelogHandler)
	}

	return r
}

func health(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.PingContext(ctx)
		}
		if err != nil {
			response.Error(c, http.StatusServiceUnavailable, "DB_UNAVAILABLE", "Database is not reachable")
			return
		}
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	}
}

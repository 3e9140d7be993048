// Package routers 组装 HTTP 路由
package routers

import (
	"time"

	"github.com/haierkeys/note-board-sync-service/internal/app"
	"github.com/haierkeys/note-board-sync-service/internal/middleware"
	"github.com/haierkeys/note-board-sync-service/internal/routers/api_router"
	"github.com/haierkeys/note-board-sync-service/pkg/limiter"

	"github.com/gin-gonic/gin"
)

// 认证接口限流：注册与登录共用 /api/user 前缀
var methodLimiters = limiter.NewMethodLimiter().AddBuckets(
	limiter.BucketRule{
		Key:          "/api/user/register",
		FillInterval: time.Second,
		Capacity:     10,
		Quantum:      10,
	},
	limiter.BucketRule{
		Key:          "/api/user/login",
		FillInterval: time.Second,
		Capacity:     10,
		Quantum:      10,
	},
)

// NewRouter 创建公开 HTTP 路由
func NewRouter(appContainer *app.App) *gin.Engine {

	cfg := appContainer.Config()

	r := gin.New()

	api := r.Group("/api")
	{
		api.Use(middleware.RateLimiter(methodLimiters))
		api.Use(middleware.ContextTimeout(time.Duration(cfg.App.DefaultContextTimeout) * time.Second))
		api.Use(middleware.Cors())
		api.Use(middleware.AccessLogWithLogger(appContainer.Logger()))
		api.Use(middleware.RecoveryWithLogger(appContainer.Logger()))

		// 创建 Handlers（注入 App Container）
		userHandler := api_router.NewUserHandler(appContainer)
		noteHandler := api_router.NewNoteHandler(appContainer)
		settingHandler := api_router.NewSettingHandler(appContainer)
		healthHandler := api_router.NewHealthHandler(appContainer)

		api.POST("/user/register", userHandler.Register)
		api.POST("/user/login", userHandler.Login)

		// 无需认证
		api.GET("/health", healthHandler.Health)
		api.GET("/version", healthHandler.Version)

		auth := api.Group("", middleware.UserAuthToken(appContainer.TokenManager))
		{
			auth.GET("/user/info", userHandler.Info)

			auth.GET("/notes", noteHandler.List)
			auth.POST("/note", noteHandler.Create)
			auth.PUT("/note/:id", noteHandler.Update)
			auth.DELETE("/note/:id", noteHandler.Delete)

			auth.GET("/setting/viewport", settingHandler.ViewportGet)
			auth.POST("/setting/viewport", settingHandler.ViewportSave)
		}
	}

	r.Use(middleware.Cors())
	r.NoRoute(middleware.NoFound())

	return r
}

package routers

import (
	"github.com/haierkeys/lifeframe-journal-service/internal/app"
	"github.com/haierkeys/lifeframe-journal-service/internal/middleware"
	"github.com/haierkeys/lifeframe-journal-service/internal/routers/api_router"

	"github.com/gin-gonic/gin"
)

// NewRouter 创建 HTTP 路由
func NewRouter(appContainer *app.App) *gin.Engine {

	// 获取配置
	cfg := appContainer.Config()

	r := gin.New()

	api := r.Group("/api")
	{
		api.Use(middleware.AppInfoWithConfig(app.Name, app.Version))
		api.Use(middleware.TraceMiddleware(cfg.Tracer)) // Trace ID 中间件
		api.Use(middleware.ContextTimeout(cfg.GetContextTimeout()))
		api.Use(middleware.Cors())
		api.Use(middleware.Lang())
		api.Use(middleware.AccessLogWithLogger(appContainer.Logger()))
		api.Use(middleware.RecoveryWithLogger(appContainer.Logger()))

		// 创建 Handlers（注入 App Container）
		itemHandler := api_router.NewItemHandler(appContainer)
		chapterHandler := api_router.NewChapterHandler(appContainer)
		searchHandler := api_router.NewSearchHandler(appContainer)
		settingsHandler := api_router.NewSettingsHandler(appContainer)
		versionHandler := api_router.NewVersionHandler(appContainer)

		api.GET("/version", versionHandler.ServerVersion)

		api.POST("/items/text", itemHandler.CreateText)
		api.POST("/items/media", itemHandler.CreateMedia)
		api.POST("/items/text-media", itemHandler.CreateTextMedia)
		api.PUT("/items/:id", itemHandler.Modify)
		api.DELETE("/items/:id", itemHandler.Delete)

		api.GET("/chapters", chapterHandler.List)
		api.GET("/chapters/current", chapterHandler.Current)
		api.DELETE("/chapters/:id", chapterHandler.Delete)
		api.DELETE("/chapters/:id/items", itemHandler.DeleteAll)
		api.GET("/activity", chapterHandler.Activity)

		api.GET("/search", searchHandler.Search)

		api.GET("/settings/private-mode", settingsHandler.GetPrivateMode)
		api.POST("/settings/private-mode", settingsHandler.SetPrivateMode)
	}

	r.Use(middleware.Cors())
	r.NoRoute(middleware.NoFound())

	return r
}

package function

import (
	"amzlens/internal/function/handlers"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Router 路由管理器
type Router struct {
	router       *gin.Engine
	logger       *zap.Logger
	dependencies *Dependencies
}

// NewRouter 创建路由管理器
func NewRouter(router *gin.Engine, logger *zap.Logger, deps *Dependencies) *Router {
	return &Router{
		router:       router,
		logger:       logger,
		dependencies: deps,
	}
}

// SetupRoutes 设置所有路由
func (r *Router) SetupRoutes() {
	// 健康检查
	healthHandler := handlers.NewHealthHandler(r.logger)
	r.router.GET("/health", healthHandler.Check)

	// API v1 路由组
	api := r.router.Group("/api/v1")
	{
		if r.dependencies != nil {
			// 搜索路由
			searchHandler := handlers.NewSearchHandlerWithDeps(r.dependencies)
			if searchHandler != nil {
				api.POST("/search", searchHandler.Search)
				api.GET("/search/export", searchHandler.Export)
			}

			// 快照路由
			snapshotHandler := handlers.NewSnapshotHandlerWithDeps(r.dependencies)
			if snapshotHandler != nil {
				api.GET("/snapshots", snapshotHandler.List)
				api.GET("/snapshots/:id", snapshotHandler.Get)
			}

			// 账户路由
			accountHandler := handlers.NewAccountHandlerWithDeps(r.dependencies)
			if accountHandler != nil {
				api.GET("/account", accountHandler.Get)
			}
		}

		// 站点列表不依赖外部服务
		marketplaceHandler := handlers.NewMarketplaceHandler(r.logger)
		api.GET("/marketplaces", marketplaceHandler.List)
	}
}

// RegisterCustomRoutes 注册自定义路由
// 这个方法允许外部注册额外的路由处理器
func (r *Router) RegisterCustomRoutes(registerFunc func(*gin.RouterGroup)) {
	api := r.router.Group("/api/v1")
	registerFunc(api)
}

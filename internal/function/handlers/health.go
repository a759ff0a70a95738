package handlers

import (
	"context"
	"net/http"
	"time"

	"amzlens/internal/database"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// HealthHandler 健康检查处理器
type HealthHandler struct {
	logger *zap.Logger
}

// NewHealthHandler 创建健康检查处理器
func NewHealthHandler(logger *zap.Logger) *HealthHandler {
	return &HealthHandler{logger: logger}
}

// Check 检查服务与已启用数据库的状态
func (h *HealthHandler) Check(c *gin.Context) {
	status := gin.H{
		"status": "ok",
		"time":   time.Now().Format(time.RFC3339),
	}

	// 数据库未初始化时只报告服务本身的状态
	if dbs := database.GetGlobal(); dbs != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		if err := dbs.Ping(ctx); err != nil {
			if h.logger != nil {
				h.logger.Warn("health check database ping failed", zap.Error(err))
			}
			status["status"] = "degraded"
			status["database"] = err.Error()
			c.JSON(http.StatusServiceUnavailable, status)
			return
		}
		status["database"] = "ok"
	}

	c.JSON(http.StatusOK, status)
}

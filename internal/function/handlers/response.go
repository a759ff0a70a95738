package handlers

import (
	"net/http"

	"amzlens/internal/config"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// DependenciesProvider 依赖提供者接口
type DependenciesProvider interface {
	GetConfig() *config.Config
	GetWatchlistsConfig() *config.WatchlistsConfig
	GetLogger() *zap.Logger
}

// SuccessResponse 成功响应
type SuccessResponse struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// ErrorResponse 错误响应
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

// jsonSuccess 返回成功响应
func jsonSuccess(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, SuccessResponse{
		Code:    0,
		Message: "success",
		Data:    data,
	})
}

// jsonError 返回指定状态码的错误响应
func jsonError(c *gin.Context, logger *zap.Logger, status int, message string, err error) {
	response := ErrorResponse{
		Code:    status,
		Message: message,
	}
	if err != nil {
		response.Error = err.Error()
		if logger != nil {
			logger.Error(message, zap.Error(err))
		}
	}
	c.JSON(status, response)
}

// jsonBadRequest 返回400错误
func jsonBadRequest(c *gin.Context, logger *zap.Logger, message string, err error) {
	jsonError(c, logger, http.StatusBadRequest, message, err)
}

// jsonInternalError 返回500错误
func jsonInternalError(c *gin.Context, logger *zap.Logger, message string, err error) {
	jsonError(c, logger, http.StatusInternalServerError, message, err)
}

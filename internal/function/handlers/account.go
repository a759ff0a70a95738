package handlers

import (
	"errors"
	"net/http"
	"time"

	"amzlens/internal/api"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AccountHandler SerpAPI 账户信息处理器
type AccountHandler struct {
	logger *zap.Logger
	client *api.Client
}

// NewAccountHandler 创建账户信息处理器
func NewAccountHandler(logger *zap.Logger, client *api.Client) *AccountHandler {
	return &AccountHandler{
		logger: logger,
		client: client,
	}
}

// NewAccountHandlerWithDeps 通过依赖创建账户信息处理器
func NewAccountHandlerWithDeps(deps DependenciesProvider) *AccountHandler {
	if deps == nil {
		return nil
	}

	cfg := deps.GetConfig()
	logger := deps.GetLogger()
	if cfg == nil || logger == nil {
		return nil
	}

	timeout := cfg.SerpAPI.TimeoutDuration
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	client := api.NewClient(api.Config{
		BaseURL:           cfg.SerpAPI.BaseURL,
		APIKey:            cfg.SerpAPI.APIKey,
		Timeout:           timeout,
		MaxRetries:        cfg.SerpAPI.MaxRetries,
		RequestsPerMinute: cfg.SerpAPI.RequestsPerMinute,
		Logger:            logger,
	})

	return &AccountHandler{
		logger: logger,
		client: client,
	}
}

// Get 返回 SerpAPI 账户余量信息
func (h *AccountHandler) Get(c *gin.Context) {
	info, err := h.client.GetAccountInfo(c.Request.Context())
	if err != nil {
		if errors.Is(err, api.ErrQuotaExceeded) {
			jsonError(c, h.logger, http.StatusTooManyRequests, "account quota exceeded", err)
			return
		}
		jsonInternalError(c, h.logger, "failed to fetch account info", err)
		return
	}

	jsonSuccess(c, info)
}

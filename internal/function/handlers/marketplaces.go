package handlers

import (
	"amzlens/internal/marketplace"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// MarketplaceHandler 站点信息处理器
type MarketplaceHandler struct {
	logger *zap.Logger
}

// NewMarketplaceHandler 创建站点信息处理器
func NewMarketplaceHandler(logger *zap.Logger) *MarketplaceHandler {
	return &MarketplaceHandler{logger: logger}
}

// MarketplaceInfo 单个站点信息
type MarketplaceInfo struct {
	Domain   string `json:"domain"`
	Currency string `json:"currency"`
	Default  bool   `json:"default,omitempty"`
}

// List 返回所有受支持的 Amazon 站点
func (h *MarketplaceHandler) List(c *gin.Context) {
	domains := marketplace.Domains()

	marketplaces := make([]MarketplaceInfo, 0, len(domains))
	for _, domain := range domains {
		marketplaces = append(marketplaces, MarketplaceInfo{
			Domain:   domain,
			Currency: marketplace.Currency(domain),
			Default:  domain == marketplace.DefaultDomain,
		})
	}

	jsonSuccess(c, gin.H{
		"marketplaces": marketplaces,
		"count":        len(marketplaces),
	})
}

package amazon_search

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"amzlens/internal/api"
	"amzlens/internal/marketplace"
	"amzlens/internal/model"

	"go.uber.org/zap"
)

// Service Amazon Search 服务
type Service struct {
	client *api.Client
	logger *zap.Logger
}

// NewService 创建新的 Amazon Search 服务
func NewService(client *api.Client, logger *zap.Logger) *Service {
	return &Service{
		client: client,
		logger: logger,
	}
}

// RequestParams Amazon Search 请求参数
type RequestParams struct {
	// 必需参数
	Query  string `json:"query"`  // 搜索关键词
	Domain string `json:"domain"` // Amazon 站点域名（例如 amazon.com、amazon.de）

	// 可选参数
	Page *int `json:"page,omitempty"` // 页码：从 1 开始，首页不传
}

// Validate 验证请求参数
func (p *RequestParams) Validate() error {
	// 验证 query 不能为空
	if strings.TrimSpace(p.Query) == "" {
		return fmt.Errorf("query is required and cannot be empty")
	}

	// 验证 domain 是受支持的站点
	if !marketplace.IsSupported(p.Domain) {
		return fmt.Errorf("unsupported domain: %s", p.Domain)
	}

	// 验证 page 值（必须是正整数）
	if p.Page != nil && *p.Page < 1 {
		return fmt.Errorf("invalid page value: %d (must be >= 1)", *p.Page)
	}

	return nil
}

// ToQueryParams 将 RequestParams 转换为查询参数字典
func (p *RequestParams) ToQueryParams() map[string]string {
	params := make(map[string]string)

	// 必需参数
	params["engine"] = "amazon"
	params["amazon_domain"] = p.Domain
	params["k"] = p.Query

	// 首页不传 page 参数
	if p.Page != nil && *p.Page > 1 {
		params["page"] = strconv.Itoa(*p.Page)
	}

	return params
}

// Fetch 获取单页搜索结果
func (s *Service) Fetch(ctx context.Context, params RequestParams) (*model.SearchPageResponse, error) {
	// 验证参数
	if err := params.Validate(); err != nil {
		if s.logger != nil {
			s.logger.Error("invalid request parameters", zap.Error(err))
		}
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	// 记录请求日志
	if s.logger != nil {
		logFields := []zap.Field{
			zap.String("query", params.Query),
			zap.String("domain", params.Domain),
		}
		if params.Page != nil {
			logFields = append(logFields, zap.Int("page", *params.Page))
		}
		s.logger.Info("fetching amazon search results", logFields...)
	}

	// 调用 API 获取原始数据
	rawData, err := s.client.GetRawData(ctx, api.SearchEndpoint, params.ToQueryParams())
	if err != nil {
		if s.logger != nil {
			s.logger.Error("failed to fetch amazon search results",
				zap.Error(err),
				zap.String("query", params.Query),
			)
		}
		return nil, fmt.Errorf("failed to fetch data: %w", err)
	}

	// 解析响应
	var response model.SearchPageResponse
	if err := json.Unmarshal(rawData, &response); err != nil {
		if s.logger != nil {
			s.logger.Error("failed to parse amazon search response", zap.Error(err))
		}
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	if s.logger != nil {
		s.logger.Info("amazon search results fetched successfully",
			zap.Int("organic_results", len(response.OrganicResults)),
			zap.Int("data_size", len(rawData)),
		)
	}

	return &response, nil
}

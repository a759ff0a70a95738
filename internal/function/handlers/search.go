package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"amzlens/internal/analytics"
	"amzlens/internal/api"
	"amzlens/internal/api/serp/amazon_search"
	"amzlens/internal/config"
	"amzlens/internal/database"
	"amzlens/internal/model"
	"amzlens/internal/processor"
	"amzlens/internal/repository"
	"amzlens/internal/searcher"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SearchHandler 搜索处理器
type SearchHandler struct {
	logger    *zap.Logger
	config    *config.Config
	searcher  *searcher.Searcher
	processor *processor.Processor
	repo      *repository.SearchRepository // MongoDB 未启用时为 nil，快照不落库
}

// NewSearchHandler 创建搜索处理器
func NewSearchHandler(
	logger *zap.Logger,
	cfg *config.Config,
	s *searcher.Searcher,
	proc *processor.Processor,
	repo *repository.SearchRepository,
) *SearchHandler {
	return &SearchHandler{
		logger:    logger,
		config:    cfg,
		searcher:  s,
		processor: proc,
		repo:      repo,
	}
}

// NewSearchHandlerWithDeps 通过依赖创建搜索处理器
func NewSearchHandlerWithDeps(deps DependenciesProvider) *SearchHandler {
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

	apiClient := api.NewClient(api.Config{
		BaseURL:           cfg.SerpAPI.BaseURL,
		APIKey:            cfg.SerpAPI.APIKey,
		Timeout:           timeout,
		MaxRetries:        cfg.SerpAPI.MaxRetries,
		RequestsPerMinute: cfg.SerpAPI.RequestsPerMinute,
		Logger:            logger,
	})

	service := amazon_search.NewService(apiClient, logger)
	proc := processor.NewProcessor(logger)

	// MongoDB 可选，未启用时搜索结果不落库
	var repo *repository.SearchRepository
	if dbs := database.GetGlobal(); dbs != nil && dbs.MongoDB != nil {
		storage := database.NewStorage(dbs.MongoDB, logger)
		repo = repository.NewSearchRepository(storage, logger)
	}

	return &SearchHandler{
		logger:    logger,
		config:    cfg,
		searcher:  searcher.New(service, proc, logger),
		processor: proc,
		repo:      repo,
	}
}

// 品牌榜与折扣榜的默认长度
const topListLimit = 10

// SearchResponse 搜索响应结构
type SearchResponse struct {
	Products     []model.Product        `json:"products"`
	Summary      analytics.Summary      `json:"summary"`
	TopBrands    []analytics.BrandStats `json:"top_brands,omitempty"`
	Prices       analytics.PriceStats   `json:"prices"`
	Ads          analytics.AdStats      `json:"ads"`
	TopDiscounts []model.Product        `json:"top_discounts,omitempty"`
	PagesFetched int                    `json:"pages_fetched"`
	RawCount     int                    `json:"raw_count"`
	QuotaReached bool                   `json:"quota_reached"`
	SnapshotID   string                 `json:"snapshot_id,omitempty"`
}

// newSearchResponse 基于搜索结果组装完整的分析响应
func newSearchResponse(result *searcher.Result) SearchResponse {
	return SearchResponse{
		Products:     result.Products,
		Summary:      analytics.Summarize(result.Products),
		TopBrands:    analytics.BrandPerformance(result.Products, topListLimit),
		Prices:       analytics.Prices(result.Products),
		Ads:          analytics.Ads(result.Products, topListLimit),
		TopDiscounts: analytics.TopDiscounts(result.Products, topListLimit),
		PagesFetched: result.PagesFetched,
		RawCount:     result.RawCount,
		QuotaReached: result.QuotaReached,
	}
}

// Search 执行一次搜索并返回分析结果
func (h *SearchHandler) Search(c *gin.Context) {
	ctx := c.Request.Context()

	req := h.defaultRequest()
	if err := c.ShouldBindJSON(&req); err != nil {
		jsonBadRequest(c, h.logger, "invalid request body", err)
		return
	}

	if err := req.Validate(); err != nil {
		jsonBadRequest(c, h.logger, "invalid search request", err)
		return
	}

	result, err := h.searcher.Search(ctx, req)
	if err != nil {
		if errors.Is(err, api.ErrQuotaExceeded) {
			jsonError(c, h.logger, http.StatusTooManyRequests, "search quota exceeded", err)
			return
		}
		jsonInternalError(c, h.logger, "search failed", err)
		return
	}

	response := newSearchResponse(result)

	// 落库失败不影响搜索结果返回
	if h.repo != nil {
		snapshot := &model.SearchSnapshot{
			Query:     req.Query,
			Domain:    req.Domain,
			Pages:     result.PagesFetched,
			Source:    "api",
			Products:  result.Products,
			FetchedAt: time.Now(),
		}
		if err := h.repo.SaveSnapshot(ctx, snapshot); err != nil {
			h.logger.Warn("failed to save search snapshot", zap.Error(err))
		} else {
			response.SnapshotID = snapshot.ID.Hex()
		}
	}

	jsonSuccess(c, response)
}

// Export 执行搜索并以 CSV 形式导出结果表格
func (h *SearchHandler) Export(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.requestFromQuery(c)
	if err != nil {
		jsonBadRequest(c, h.logger, "invalid query parameters", err)
		return
	}

	if err := req.Validate(); err != nil {
		jsonBadRequest(c, h.logger, "invalid search request", err)
		return
	}

	result, err := h.searcher.Search(ctx, req)
	if err != nil {
		if errors.Is(err, api.ErrQuotaExceeded) {
			jsonError(c, h.logger, http.StatusTooManyRequests, "search quota exceeded", err)
			return
		}
		jsonInternalError(c, h.logger, "search failed", err)
		return
	}

	table := h.processor.ToTable(result.Products)

	filename := fmt.Sprintf("amazon_products_%s.csv", time.Now().Format("20060102_150405"))
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

	if err := table.WriteCSV(c.Writer); err != nil {
		h.logger.Error("failed to write CSV export", zap.Error(err))
	}
}

// defaultRequest 按配置填充搜索请求默认值
func (h *SearchHandler) defaultRequest() model.SearchRequest {
	req := model.DefaultSearchRequest()
	if h.config.Search.DefaultDomain != "" {
		req.Domain = h.config.Search.DefaultDomain
	}
	if h.config.Search.DefaultPages > 0 {
		req.Pages = h.config.Search.DefaultPages
	}
	return req
}

// requestFromQuery 从查询参数构建搜索请求（导出接口用）
func (h *SearchHandler) requestFromQuery(c *gin.Context) (model.SearchRequest, error) {
	req := h.defaultRequest()
	req.Query = c.Query("q")

	if domain := c.Query("domain"); domain != "" {
		req.Domain = domain
	}

	if pages := c.Query("pages"); pages != "" {
		n, err := strconv.Atoi(pages)
		if err != nil {
			return req, fmt.Errorf("invalid pages: %w", err)
		}
		req.Pages = n
	}

	if minRating := c.Query("min_rating"); minRating != "" {
		v, err := strconv.ParseFloat(minRating, 64)
		if err != nil {
			return req, fmt.Errorf("invalid min_rating: %w", err)
		}
		req.MinRating = v
	}

	if minReviews := c.Query("min_reviews"); minReviews != "" {
		n, err := strconv.Atoi(minReviews)
		if err != nil {
			return req, fmt.Errorf("invalid min_reviews: %w", err)
		}
		req.MinReviews = n
	}

	if minPrice := c.Query("min_price"); minPrice != "" {
		v, err := strconv.ParseFloat(minPrice, 64)
		if err != nil {
			return req, fmt.Errorf("invalid min_price: %w", err)
		}
		req.MinPrice = &v
	}

	if maxPrice := c.Query("max_price"); maxPrice != "" {
		v, err := strconv.ParseFloat(maxPrice, 64)
		if err != nil {
			return req, fmt.Errorf("invalid max_price: %w", err)
		}
		req.MaxPrice = &v
	}

	if includeAds := c.Query("include_ads"); includeAds != "" {
		v, err := strconv.ParseBool(includeAds)
		if err != nil {
			return req, fmt.Errorf("invalid include_ads: %w", err)
		}
		req.IncludeAds = v
	}

	if includeOrganic := c.Query("include_organic"); includeOrganic != "" {
		v, err := strconv.ParseBool(includeOrganic)
		if err != nil {
			return req, fmt.Errorf("invalid include_organic: %w", err)
		}
		req.IncludeOrganic = v
	}

	return req, nil
}

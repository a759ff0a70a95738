package searcher

import (
	"context"
	"errors"
	"fmt"

	"amzlens/internal/api"
	"amzlens/internal/api/serp/amazon_search"
	"amzlens/internal/model"
	"amzlens/internal/processor"

	"go.uber.org/zap"
)

// pageFetcher 单页搜索结果获取接口
// 生产环境由 amazon_search.Service 实现
type pageFetcher interface {
	Fetch(ctx context.Context, params amazon_search.RequestParams) (*model.SearchPageResponse, error)
}

// Searcher 搜索编排器
// 逐页抓取搜索结果，然后走清洗、去重、过滤流水线
type Searcher struct {
	fetcher   pageFetcher
	processor *processor.Processor
	logger    *zap.Logger
}

// New 创建新的搜索编排器
func New(service *amazon_search.Service, proc *processor.Processor, logger *zap.Logger) *Searcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	if proc == nil {
		proc = processor.NewProcessor(logger)
	}

	return &Searcher{
		fetcher:   service,
		processor: proc,
		logger:    logger,
	}
}

// Result 一次搜索的完整结果
type Result struct {
	Products     []model.Product `json:"products"`
	PagesFetched int             `json:"pages_fetched"`
	RawCount     int             `json:"raw_count"`     // 清洗前的记录总数
	QuotaReached bool            `json:"quota_reached"` // 配额耗尽导致提前终止
}

// Search 执行一次完整搜索
// 首页失败返回错误；后续页失败记录日志并返回已抓取的部分结果
// 配额耗尽时停止抓取剩余页，已有结果照常处理
func (s *Searcher) Search(ctx context.Context, req model.SearchRequest) (*Result, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("invalid search request: %w", err)
	}

	result := &Result{}
	var rawRecords []model.RawProduct

	for page := 1; page <= req.Pages; page++ {
		params := amazon_search.RequestParams{
			Query:  req.Query,
			Domain: req.Domain,
		}
		if page > 1 {
			params.Page = &page
		}

		response, err := s.fetcher.Fetch(ctx, params)
		if err != nil {
			if errors.Is(err, api.ErrQuotaExceeded) {
				s.logger.Warn("search quota exceeded, stopping pagination",
					zap.String("query", req.Query),
					zap.Int("page", page),
				)
				result.QuotaReached = true
				if page == 1 {
					return nil, err
				}
				break
			}

			// 首页失败没有可用数据，直接失败
			if page == 1 {
				return nil, fmt.Errorf("failed to fetch page 1: %w", err)
			}

			s.logger.Warn("failed to fetch page, returning partial results",
				zap.String("query", req.Query),
				zap.Int("page", page),
				zap.Error(err),
			)
			break
		}

		if response.Error != "" {
			s.logger.Warn("search page returned error",
				zap.String("query", req.Query),
				zap.Int("page", page),
				zap.String("error", response.Error),
			)
			if page == 1 {
				return nil, fmt.Errorf("search failed: %s", response.Error)
			}
			break
		}

		rawRecords = append(rawRecords, response.OrganicResults...)
		result.PagesFetched++

		// 该页没有结果，后续页不会再有
		if len(response.OrganicResults) == 0 {
			break
		}
	}

	result.RawCount = len(rawRecords)

	// 清洗、去重、过滤
	products := s.processor.NormalizeBatch(rawRecords, req.IncludeOrganic, req.IncludeAds)
	products = s.processor.Deduplicate(products)
	products = s.processor.Filter(products, processor.FilterOptions{
		MinRating:  req.MinRating,
		MinReviews: req.MinReviews,
		MinPrice:   req.MinPrice,
		MaxPrice:   req.MaxPrice,
	})

	result.Products = products

	s.logger.Info("search completed",
		zap.String("query", req.Query),
		zap.String("domain", req.Domain),
		zap.Int("pages_fetched", result.PagesFetched),
		zap.Int("raw_count", result.RawCount),
		zap.Int("product_count", len(result.Products)),
	)

	return result, nil
}

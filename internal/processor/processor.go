package processor

import (
	"fmt"

	"amzlens/internal/extractor"
	"amzlens/internal/model"

	"go.uber.org/zap"
)

// Processor 商品批处理器
// 将原始搜索结果解析为商品实体，并提供去重、过滤与表格化
type Processor struct {
	brandExtractor *extractor.Extractor
	logger         *zap.Logger
}

// NewProcessor 创建处理器
func NewProcessor(logger *zap.Logger) *Processor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Processor{
		brandExtractor: extractor.NewExtractor(),
		logger:         logger,
	}
}

// ParseProduct 将一条原始记录解析为商品实体
// 字段校验失败时整条记录被拒绝
func (p *Processor) ParseProduct(raw model.RawProduct) (*model.Product, error) {
	kind := model.KindOrganic
	if raw.Sponsored {
		kind = model.KindSponsored
	}

	// 优先使用去除跟踪参数后的链接
	link := raw.LinkClean
	if link == "" {
		link = raw.Link
	}

	product, err := model.NewProduct(model.ProductParams{
		Kind:            kind,
		Position:        raw.Position,
		ASIN:            raw.ASIN,
		Brand:           p.brandExtractor.ExtractBrand(raw),
		Title:           raw.Title,
		Price:           raw.ExtractedPrice,
		OldPrice:        raw.ExtractedOldPrice,
		Rating:          raw.Rating,
		Reviews:         raw.Reviews,
		BoughtLastMonth: raw.BoughtLastMonth,
		Prime:           raw.Prime,
		Thumbnail:       raw.Thumbnail,
		Link:            link,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse product: %w", err)
	}

	return product, nil
}

// NormalizeBatch 批量解析原始记录
// 每条记录独立解析，保持输入顺序；无法解析的记录记一条告警后跳过，
// 随后按两个开关丢弃被排除的商品类型（两者都关闭时结果为空）
func (p *Processor) NormalizeBatch(records []model.RawProduct, includeOrganic, includeAds bool) []model.Product {
	products := make([]model.Product, 0, len(records))

	for _, raw := range records {
		product, err := p.ParseProduct(raw)
		if err != nil {
			p.logger.Warn("skipping unparsable product record",
				zap.String("asin", raw.ASIN),
				zap.String("title", raw.Title),
				zap.Error(err),
			)
			continue
		}

		switch product.Kind {
		case model.KindSponsored:
			if !includeAds {
				continue
			}
		case model.KindOrganic:
			if !includeOrganic {
				continue
			}
		}

		products = append(products, *product)
	}

	p.logger.Info("normalized product batch",
		zap.Int("input_records", len(records)),
		zap.Int("products", len(products)),
	)

	return products
}

// Deduplicate 按 ASIN 去重
// 保留每个非空 ASIN 的首次出现；没有 ASIN 的商品永远保留，相对顺序不变
func (p *Processor) Deduplicate(products []model.Product) []model.Product {
	seen := make(map[string]bool, len(products))
	unique := make([]model.Product, 0, len(products))

	for _, product := range products {
		if product.ASIN != "" {
			if seen[product.ASIN] {
				p.logger.Debug("skipping duplicate ASIN", zap.String("asin", product.ASIN))
				continue
			}
			seen[product.ASIN] = true
		}
		unique = append(unique, product)
	}

	if removed := len(products) - len(unique); removed > 0 {
		p.logger.Info("removed duplicate products", zap.Int("removed", removed))
	}

	return unique
}

// FilterOptions 多条件过滤参数
// 零值条件不生效；价格上下界为 nil 时不限制
type FilterOptions struct {
	MinRating  float64
	MinReviews int
	MinPrice   *float64
	MaxPrice   *float64
}

// Filter 按评分、评论数与价格区间过滤
// 评分/评论阈值生效时，对应字段未知的商品被排除；
// 价格区间只作用于价格已知的商品，价格未知的商品不受影响。
// 所有生效条件取交集，保持输入顺序
func (p *Processor) Filter(products []model.Product, opts FilterOptions) []model.Product {
	filtered := make([]model.Product, 0, len(products))

	for _, product := range products {
		if opts.MinRating > 0 {
			if product.Rating == nil || *product.Rating < opts.MinRating {
				continue
			}
		}

		if opts.MinReviews > 0 {
			if product.Reviews == nil || *product.Reviews < opts.MinReviews {
				continue
			}
		}

		if product.Price != nil {
			if opts.MaxPrice != nil && *product.Price > *opts.MaxPrice {
				continue
			}
			if opts.MinPrice != nil && *product.Price < *opts.MinPrice {
				continue
			}
		}

		filtered = append(filtered, product)
	}

	p.logger.Info("filtered products",
		zap.Int("input", len(products)),
		zap.Int("output", len(filtered)),
	)

	return filtered
}

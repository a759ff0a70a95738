package analytics

import (
	"sort"

	"amzlens/internal/model"

	"github.com/montanaflynn/stats"
)

// Summary 搜索结果概览指标
type Summary struct {
	TotalProducts  int      `json:"total_products"`
	SponsoredCount int      `json:"sponsored_count"`
	UniqueBrands   int      `json:"unique_brands"`
	AvgPrice       *float64 `json:"avg_price,omitempty"`
	AvgRating      *float64 `json:"avg_rating,omitempty"`
	PrimePct       float64  `json:"prime_pct"`
}

// Summarize 计算结果概览
// 均值只统计字段已知的商品，全部未知时对应指标缺失
func Summarize(products []model.Product) Summary {
	summary := Summary{TotalProducts: len(products)}
	if len(products) == 0 {
		return summary
	}

	brands := make(map[string]bool)
	primeCount := 0
	var prices, ratings []float64

	for _, p := range products {
		if p.Kind == model.KindSponsored {
			summary.SponsoredCount++
		}
		brands[p.Brand] = true
		if p.Prime {
			primeCount++
		}
		if p.Price != nil {
			prices = append(prices, *p.Price)
		}
		if p.Rating != nil {
			ratings = append(ratings, *p.Rating)
		}
	}

	summary.UniqueBrands = len(brands)
	summary.AvgPrice = meanOrNil(prices)
	summary.AvgRating = meanOrNil(ratings)
	summary.PrimePct = float64(primeCount) / float64(len(products)) * 100

	return summary
}

// BrandStats 单个品牌的表现汇总
type BrandStats struct {
	Brand        string   `json:"brand"`
	Products     int      `json:"products"`
	AvgPrice     *float64 `json:"avg_price,omitempty"`
	AvgRating    *float64 `json:"avg_rating,omitempty"`
	TotalReviews int      `json:"total_reviews"`
	PrimeCount   int      `json:"prime_count"`
}

// BrandPerformance 按品牌汇总表现并排序
// 按商品数降序排列，数量相同时按品牌名升序保证结果稳定；limit <= 0 时返回全部
func BrandPerformance(products []model.Product, limit int) []BrandStats {
	type accumulator struct {
		count      int
		prices     []float64
		ratings    []float64
		reviews    int
		primeCount int
	}

	byBrand := make(map[string]*accumulator)
	for _, p := range products {
		acc := byBrand[p.Brand]
		if acc == nil {
			acc = &accumulator{}
			byBrand[p.Brand] = acc
		}
		acc.count++
		if p.Price != nil {
			acc.prices = append(acc.prices, *p.Price)
		}
		if p.Rating != nil {
			acc.ratings = append(acc.ratings, *p.Rating)
		}
		if p.Reviews != nil {
			acc.reviews += *p.Reviews
		}
		if p.Prime {
			acc.primeCount++
		}
	}

	result := make([]BrandStats, 0, len(byBrand))
	for brand, acc := range byBrand {
		result = append(result, BrandStats{
			Brand:        brand,
			Products:     acc.count,
			AvgPrice:     meanOrNil(acc.prices),
			AvgRating:    meanOrNil(acc.ratings),
			TotalReviews: acc.reviews,
			PrimeCount:   acc.primeCount,
		})
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].Products != result[j].Products {
			return result[i].Products > result[j].Products
		}
		return result[i].Brand < result[j].Brand
	})

	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result
}

// PriceStats 价格统计
type PriceStats struct {
	Min       *float64                    `json:"min,omitempty"`
	Max       *float64                    `json:"max,omitempty"`
	Median    *float64                    `json:"median,omitempty"`
	AvgByKind map[model.ProductKind]float64 `json:"avg_by_kind,omitempty"`
}

// Prices 计算价格统计
// 只统计价格已知的商品；没有任何已知价格时所有指标缺失
func Prices(products []model.Product) PriceStats {
	var all []float64
	byKind := make(map[model.ProductKind][]float64)

	for _, p := range products {
		if p.Price == nil {
			continue
		}
		all = append(all, *p.Price)
		byKind[p.Kind] = append(byKind[p.Kind], *p.Price)
	}

	result := PriceStats{}
	if len(all) == 0 {
		return result
	}

	if v, err := stats.Min(all); err == nil {
		result.Min = &v
	}
	if v, err := stats.Max(all); err == nil {
		result.Max = &v
	}
	if v, err := stats.Median(all); err == nil {
		result.Median = &v
	}

	result.AvgByKind = make(map[model.ProductKind]float64, len(byKind))
	for kind, prices := range byKind {
		if v, err := stats.Mean(prices); err == nil {
			result.AvgByKind[kind] = v
		}
	}

	return result
}

// AdStats 广告投放分析
type AdStats struct {
	SponsoredCount     int          `json:"sponsored_count"`
	OrganicCount       int          `json:"organic_count"`
	AvgPosition        *float64     `json:"avg_position,omitempty"`
	TopThreePositions  int          `json:"top_three_positions"`
	TopSponsoredBrands []BrandStats `json:"top_sponsored_brands,omitempty"`
}

// Ads 计算广告投放分析
// 位置统计只覆盖位置已知的广告商品
func Ads(products []model.Product, brandLimit int) AdStats {
	var sponsored []model.Product
	var positions []float64
	result := AdStats{}

	for _, p := range products {
		if p.Kind != model.KindSponsored {
			result.OrganicCount++
			continue
		}
		result.SponsoredCount++
		sponsored = append(sponsored, p)
		if p.Position != nil {
			positions = append(positions, float64(*p.Position))
			if *p.Position <= 3 {
				result.TopThreePositions++
			}
		}
	}

	result.AvgPosition = meanOrNil(positions)
	result.TopSponsoredBrands = BrandPerformance(sponsored, brandLimit)

	return result
}

// TopDiscounts 返回折扣最高的商品
// 按折扣降序排列，折扣为 0 的商品不出现在结果中；limit <= 0 时返回全部
func TopDiscounts(products []model.Product, limit int) []model.Product {
	discounted := make([]model.Product, 0)
	for _, p := range products {
		if p.HasDiscount() {
			discounted = append(discounted, p)
		}
	}

	sort.SliceStable(discounted, func(i, j int) bool {
		return discounted[i].DiscountPct > discounted[j].DiscountPct
	})

	if limit > 0 && len(discounted) > limit {
		discounted = discounted[:limit]
	}
	return discounted
}

// meanOrNil 计算均值，空输入返回 nil
func meanOrNil(values []float64) *float64 {
	v, err := stats.Mean(values)
	if err != nil {
		return nil
	}
	return &v
}

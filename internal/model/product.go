package model

import (
	"fmt"
	"math"
	"strings"
)

// ProductKind 商品在搜索结果中的展示类型
type ProductKind string

const (
	// KindSponsored 广告位商品
	KindSponsored ProductKind = "Sponsored"
	// KindOrganic 自然排名商品
	KindOrganic ProductKind = "Organic"
)

// 品牌字段约束
const (
	MinBrandLength = 1
	MaxBrandLength = 50
)

// UnknownBrand 品牌无法识别时的占位值
const UnknownBrand = "Unknown"

// RawProduct SerpAPI 返回的单条原始商品记录
// 除 sponsored（缺失视为 false）外所有字段均可缺失
type RawProduct struct {
	Position          *int     `json:"position,omitempty"`
	ASIN              string   `json:"asin,omitempty"`
	Title             string   `json:"title,omitempty"`
	Brand             string   `json:"brand,omitempty"`
	Price             string   `json:"price,omitempty"` // 展示用价格字符串，解析时忽略
	ExtractedPrice    *float64 `json:"extracted_price,omitempty"`
	ExtractedOldPrice *float64 `json:"extracted_old_price,omitempty"`
	Rating            *float64 `json:"rating,omitempty"`
	Reviews           *int     `json:"reviews,omitempty"`
	BoughtLastMonth   *int     `json:"bought_last_month,omitempty"`
	Prime             bool     `json:"prime,omitempty"`
	Thumbnail         string   `json:"thumbnail,omitempty"`
	LinkClean         string   `json:"link_clean,omitempty"`
	Link              string   `json:"link,omitempty"`
	Sponsored         bool     `json:"sponsored,omitempty"`
}

// Product 校验后的商品实体
// 由 NewProduct 构建，构建完成后不再修改
type Product struct {
	Kind            ProductKind `json:"type" bson:"type"`
	Position        *int        `json:"position,omitempty" bson:"position,omitempty"`
	ASIN            string      `json:"asin,omitempty" bson:"asin,omitempty"`
	Brand           string      `json:"brand" bson:"brand"`
	Title           string      `json:"title,omitempty" bson:"title,omitempty"`
	Price           *float64    `json:"price,omitempty" bson:"price,omitempty"`
	OldPrice        *float64    `json:"old_price,omitempty" bson:"old_price,omitempty"`
	Rating          *float64    `json:"rating,omitempty" bson:"rating,omitempty"`
	Reviews         *int        `json:"reviews,omitempty" bson:"reviews,omitempty"`
	BoughtLastMonth *int        `json:"bought_last_month,omitempty" bson:"bought_last_month,omitempty"`
	Prime           bool        `json:"prime" bson:"prime"`
	Thumbnail       string      `json:"thumbnail,omitempty" bson:"thumbnail,omitempty"`
	Link            string      `json:"link,omitempty" bson:"link,omitempty"`
	DiscountPct     float64     `json:"discount_pct" bson:"discount_pct"`
}

// ProductParams NewProduct 的构建参数
type ProductParams struct {
	Kind            ProductKind
	Position        *int
	ASIN            string
	Brand           string
	Title           string
	Price           *float64
	OldPrice        *float64
	Rating          *float64
	Reviews         *int
	BoughtLastMonth *int
	Prime           bool
	Thumbnail       string
	Link            string
	DiscountPct     float64
}

// NewProduct 构建并校验商品实体
// 任一字段校验失败时返回错误，不返回部分构建的实体
func NewProduct(p ProductParams) (*Product, error) {
	if p.Kind != KindSponsored && p.Kind != KindOrganic {
		return nil, fmt.Errorf("invalid product kind: %q", p.Kind)
	}

	if p.Position != nil && *p.Position <= 0 {
		return nil, fmt.Errorf("position must be positive, got %d", *p.Position)
	}

	if p.Price != nil && *p.Price < 0 {
		return nil, fmt.Errorf("price cannot be negative, got %v", *p.Price)
	}

	if p.OldPrice != nil && *p.OldPrice < 0 {
		return nil, fmt.Errorf("old price cannot be negative, got %v", *p.OldPrice)
	}

	if p.Rating != nil && (*p.Rating < 0 || *p.Rating > 5) {
		return nil, fmt.Errorf("rating must be in [0, 5], got %v", *p.Rating)
	}

	if p.Reviews != nil && *p.Reviews < 0 {
		return nil, fmt.Errorf("reviews cannot be negative, got %d", *p.Reviews)
	}

	if p.BoughtLastMonth != nil && *p.BoughtLastMonth < 0 {
		return nil, fmt.Errorf("bought_last_month cannot be negative, got %d", *p.BoughtLastMonth)
	}

	if p.DiscountPct < 0 || p.DiscountPct > 100 {
		return nil, fmt.Errorf("discount_pct must be in [0, 100], got %v", p.DiscountPct)
	}

	// 品牌：去除首尾空白，超长截断，空值回退到 Unknown
	brand := strings.TrimSpace(p.Brand)
	if runes := []rune(brand); len(runes) > MaxBrandLength {
		brand = string(runes[:MaxBrandLength])
	}
	if brand == "" {
		brand = UnknownBrand
	}

	product := &Product{
		Kind:            p.Kind,
		Position:        p.Position,
		ASIN:            p.ASIN,
		Brand:           brand,
		Title:           strings.TrimSpace(p.Title),
		Price:           p.Price,
		OldPrice:        p.OldPrice,
		Rating:          p.Rating,
		Reviews:         p.Reviews,
		BoughtLastMonth: p.BoughtLastMonth,
		Prime:           p.Prime,
		Thumbnail:       p.Thumbnail,
		Link:            p.Link,
		DiscountPct:     p.DiscountPct,
	}

	// 折扣推导：仅在未显式给出非零折扣、且两个价格均已知时计算
	if product.DiscountPct == 0 && product.Price != nil && product.OldPrice != nil && *product.OldPrice > 0 {
		raw := (*product.OldPrice - *product.Price) / *product.OldPrice * 100
		if raw < 0 {
			// 划线价低于现价时不是折扣
			raw = 0
		}
		product.DiscountPct = math.Round(raw*10) / 10
	}

	return product, nil
}

// HasDiscount 商品是否有有效折扣
func (p *Product) HasDiscount() bool {
	return p.DiscountPct > 0
}

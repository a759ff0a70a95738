package model

import (
	"fmt"
	"strings"
	"time"

	"amzlens/internal/marketplace"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// 查询参数约束
const (
	MinQueryLength = 1
	MaxQueryLength = 200
	MinPages       = 1
	MaxPages       = 5
)

// dangerousQuerySubstrings 查询词中禁止出现的注入类片段（不区分大小写）
var dangerousQuerySubstrings = []string{"<", ">", "script", "javascript:", "onerror="}

// SearchRequest 一次用户查询的参数
// 通过 Validate 校验后才允许进入后续流程，校验失败的请求不会触发任何网络调用
type SearchRequest struct {
	Query          string   `json:"query"`
	Domain         string   `json:"domain"`
	Pages          int      `json:"pages"`
	IncludeAds     bool     `json:"include_ads"`
	IncludeOrganic bool     `json:"include_organic"`
	MinRating      float64  `json:"min_rating"`
	MinReviews     int      `json:"min_reviews"`
	MinPrice       *float64 `json:"min_price,omitempty"`
	MaxPrice       *float64 `json:"max_price,omitempty"`
}

// DefaultSearchRequest 返回带默认值的搜索请求
func DefaultSearchRequest() SearchRequest {
	return SearchRequest{
		Domain:         marketplace.DefaultDomain,
		Pages:          1,
		IncludeAds:     true,
		IncludeOrganic: true,
	}
}

// Validate 校验请求参数
// 同时对查询词做首尾空白清理
func (r *SearchRequest) Validate() error {
	r.Query = strings.TrimSpace(r.Query)

	if len(r.Query) < MinQueryLength || len(r.Query) > MaxQueryLength {
		return fmt.Errorf("query length must be between %d and %d characters, got %d",
			MinQueryLength, MaxQueryLength, len(r.Query))
	}

	queryLower := strings.ToLower(r.Query)
	for _, s := range dangerousQuerySubstrings {
		if strings.Contains(queryLower, s) {
			return fmt.Errorf("query contains invalid characters: %s", s)
		}
	}

	if !marketplace.IsSupported(r.Domain) {
		return fmt.Errorf("unsupported domain: %s", r.Domain)
	}

	if r.Pages < MinPages || r.Pages > MaxPages {
		return fmt.Errorf("pages must be between %d and %d, got %d", MinPages, MaxPages, r.Pages)
	}

	if r.MinRating < 0 || r.MinRating > 5 {
		return fmt.Errorf("min_rating must be in [0, 5], got %v", r.MinRating)
	}

	if r.MinReviews < 0 {
		return fmt.Errorf("min_reviews cannot be negative, got %d", r.MinReviews)
	}

	if r.MinPrice != nil && *r.MinPrice < 0 {
		return fmt.Errorf("min_price cannot be negative, got %v", *r.MinPrice)
	}

	if r.MaxPrice != nil && *r.MaxPrice < 0 {
		return fmt.Errorf("max_price cannot be negative, got %v", *r.MaxPrice)
	}

	if r.MinPrice != nil && r.MaxPrice != nil && *r.MinPrice > *r.MaxPrice {
		return fmt.Errorf("min_price %v exceeds max_price %v", *r.MinPrice, *r.MaxPrice)
	}

	return nil
}

// SearchPageResponse SerpAPI Amazon 搜索单页响应
// 广告位商品与自然商品都在 organic_results 中，由 sponsored 标记区分
type SearchPageResponse struct {
	OrganicResults []RawProduct `json:"organic_results"`
	Error          string       `json:"error,omitempty"`
}

// CollectionSearchSnapshots 搜索快照集合名
const CollectionSearchSnapshots = "search_snapshots"

// SearchSnapshot 一次搜索的落库快照
type SearchSnapshot struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Query        string             `bson:"query" json:"query"`
	Domain       string             `bson:"domain" json:"domain"`
	Pages        int                `bson:"pages" json:"pages"`
	Source       string             `bson:"source" json:"source"` // api, watchlist
	ProductCount int                `bson:"product_count" json:"product_count"`
	Products     []Product          `bson:"products" json:"products,omitempty"`
	FetchedAt    time.Time          `bson:"fetched_at" json:"fetched_at"`
	CreatedAt    time.Time          `bson:"created_at,omitempty" json:"created_at,omitempty"`
}

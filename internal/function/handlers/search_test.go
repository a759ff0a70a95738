package handlers

import (
	"testing"

	"amzlens/internal/model"
	"amzlens/internal/searcher"
)

func floatPtr(f float64) *float64 { return &f }
func intPtr(i int) *int           { return &i }

func TestNewSearchResponse_AnalyticsSections(t *testing.T) {
	products := []model.Product{
		{
			Kind:        model.KindSponsored,
			Position:    intPtr(1),
			ASIN:        "B001",
			Brand:       "Anker",
			Price:       floatPtr(19.99),
			OldPrice:    floatPtr(29.99),
			DiscountPct: 33.3,
			Prime:       true,
		},
		{
			Kind:        model.KindOrganic,
			Position:    intPtr(2),
			ASIN:        "B002",
			Brand:       "Sony",
			Price:       floatPtr(49.99),
			OldPrice:    floatPtr(54.99),
			DiscountPct: 9.1,
		},
		{
			Kind:  model.KindOrganic,
			ASIN:  "B003",
			Brand: "Anker",
			Price: floatPtr(24.99),
		},
	}

	result := &searcher.Result{
		Products:     products,
		PagesFetched: 2,
		RawCount:     5,
	}

	response := newSearchResponse(result)

	if response.Summary.TotalProducts != 3 {
		t.Errorf("Summary.TotalProducts = %d, want 3", response.Summary.TotalProducts)
	}
	if len(response.TopBrands) != 2 {
		t.Errorf("len(TopBrands) = %d, want 2", len(response.TopBrands))
	}

	// 价格统计
	if response.Prices.Min == nil || *response.Prices.Min != 19.99 {
		t.Errorf("Prices.Min = %v, want 19.99", response.Prices.Min)
	}
	if response.Prices.Max == nil || *response.Prices.Max != 49.99 {
		t.Errorf("Prices.Max = %v, want 49.99", response.Prices.Max)
	}
	if response.Prices.Median == nil {
		t.Error("Prices.Median should be set")
	}

	// 广告分析
	if response.Ads.SponsoredCount != 1 {
		t.Errorf("Ads.SponsoredCount = %d, want 1", response.Ads.SponsoredCount)
	}
	if response.Ads.OrganicCount != 2 {
		t.Errorf("Ads.OrganicCount = %d, want 2", response.Ads.OrganicCount)
	}

	// 折扣榜按折扣降序排列
	if len(response.TopDiscounts) != 2 {
		t.Fatalf("len(TopDiscounts) = %d, want 2", len(response.TopDiscounts))
	}
	if response.TopDiscounts[0].ASIN != "B001" {
		t.Errorf("TopDiscounts[0].ASIN = %s, want B001", response.TopDiscounts[0].ASIN)
	}

	if response.PagesFetched != 2 || response.RawCount != 5 {
		t.Errorf("PagesFetched/RawCount = %d/%d, want 2/5", response.PagesFetched, response.RawCount)
	}
}

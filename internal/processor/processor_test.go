package processor

import (
	"reflect"
	"testing"

	"amzlens/internal/model"

	"go.uber.org/zap"
)

func newTestProcessor() *Processor {
	return NewProcessor(zap.NewNop())
}

func TestParseProduct(t *testing.T) {
	p := newTestProcessor()

	tests := []struct {
		name    string
		raw     model.RawProduct
		wantErr bool
		check   func(t *testing.T, got *model.Product)
	}{
		{
			name: "organic product with full fields",
			raw: model.RawProduct{
				Position:          intPtr(3),
				ASIN:              "B001",
				Title:             "Sony - Wireless Earbuds",
				ExtractedPrice:    floatPtr(79.99),
				ExtractedOldPrice: floatPtr(99.99),
				Rating:            floatPtr(4.4),
				Reviews:           intPtr(1520),
				Prime:             true,
				LinkClean:         "https://amazon.com/dp/B001",
				Link:              "https://amazon.com/dp/B001?tag=tracking",
			},
			check: func(t *testing.T, got *model.Product) {
				if got.Kind != model.KindOrganic {
					t.Errorf("Kind = %v, want Organic", got.Kind)
				}
				if got.Brand != "Sony" {
					t.Errorf("Brand = %q, want Sony", got.Brand)
				}
				if got.Link != "https://amazon.com/dp/B001" {
					t.Errorf("Link = %q, want cleaned link", got.Link)
				}
				if got.DiscountPct != 20.0 {
					t.Errorf("DiscountPct = %v, want 20.0", got.DiscountPct)
				}
			},
		},
		{
			name: "sponsored flag maps to sponsored kind",
			raw:  model.RawProduct{Sponsored: true, Title: "Anker Charger"},
			check: func(t *testing.T, got *model.Product) {
				if got.Kind != model.KindSponsored {
					t.Errorf("Kind = %v, want Sponsored", got.Kind)
				}
			},
		},
		{
			name: "raw link used when cleaned link missing",
			raw:  model.RawProduct{Title: "Anker Charger", Link: "https://amazon.com/dp/B002"},
			check: func(t *testing.T, got *model.Product) {
				if got.Link != "https://amazon.com/dp/B002" {
					t.Errorf("Link = %q, want raw link", got.Link)
				}
			},
		},
		{
			name:    "rating out of range rejects record",
			raw:     model.RawProduct{Title: "Anker Charger", Rating: floatPtr(9.9)},
			wantErr: true,
		},
		{
			name:    "negative price rejects record",
			raw:     model.RawProduct{Title: "Anker Charger", ExtractedPrice: floatPtr(-5)},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := p.ParseProduct(tt.raw)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseProduct() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && tt.check != nil {
				tt.check(t, got)
			}
		})
	}
}

func TestNormalizeBatch(t *testing.T) {
	p := newTestProcessor()

	records := []model.RawProduct{
		{ASIN: "B001", Title: "Sony - Earbuds", Sponsored: true},
		{ASIN: "B002", Title: "Anker Charger"},
		{ASIN: "B003", Title: "JBL Speaker", Rating: floatPtr(7)}, // 无效记录，被跳过
		{ASIN: "B004", Title: "Bose Headphones"},
	}

	t.Run("include everything", func(t *testing.T) {
		got := p.NormalizeBatch(records, true, true)
		if len(got) != 3 {
			t.Fatalf("len = %d, want 3", len(got))
		}
		// 顺序保持输入顺序
		wantASINs := []string{"B001", "B002", "B004"}
		for i, asin := range wantASINs {
			if got[i].ASIN != asin {
				t.Errorf("got[%d].ASIN = %q, want %q", i, got[i].ASIN, asin)
			}
		}
	})

	t.Run("organic only", func(t *testing.T) {
		got := p.NormalizeBatch(records, true, false)
		for _, product := range got {
			if product.Kind != model.KindOrganic {
				t.Errorf("unexpected kind %v", product.Kind)
			}
		}
		if len(got) != 2 {
			t.Errorf("len = %d, want 2", len(got))
		}
	})

	t.Run("ads only", func(t *testing.T) {
		got := p.NormalizeBatch(records, false, true)
		if len(got) != 1 || got[0].Kind != model.KindSponsored {
			t.Errorf("got %d products, want exactly the sponsored one", len(got))
		}
	})

	t.Run("both excluded yields empty", func(t *testing.T) {
		got := p.NormalizeBatch(records, false, false)
		if len(got) != 0 {
			t.Errorf("len = %d, want 0", len(got))
		}
	})

	t.Run("empty input yields empty output", func(t *testing.T) {
		got := p.NormalizeBatch(nil, true, true)
		if len(got) != 0 {
			t.Errorf("len = %d, want 0", len(got))
		}
	})
}

func TestDeduplicate(t *testing.T) {
	p := newTestProcessor()

	products := []model.Product{
		{Kind: model.KindOrganic, ASIN: "B001", Title: "first"},
		{Kind: model.KindOrganic, ASIN: "B001", Title: "second"},
		{Kind: model.KindOrganic, Title: "no identifier"},
	}

	got := p.Deduplicate(products)

	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].Title != "first" {
		t.Errorf("kept occurrence = %q, want the first one", got[0].Title)
	}
	if got[1].Title != "no identifier" {
		t.Errorf("identifier-less product missing, got %q", got[1].Title)
	}
}

func TestDeduplicate_IdentifierlessNeverDeduplicated(t *testing.T) {
	p := newTestProcessor()

	products := []model.Product{
		{Kind: model.KindOrganic, Title: "a"},
		{Kind: model.KindOrganic, Title: "b"},
		{Kind: model.KindOrganic, Title: "c"},
	}

	got := p.Deduplicate(products)
	if len(got) != 3 {
		t.Errorf("len = %d, want 3", len(got))
	}
}

func TestDeduplicate_Idempotent(t *testing.T) {
	p := newTestProcessor()

	products := []model.Product{
		{Kind: model.KindOrganic, ASIN: "B001"},
		{Kind: model.KindSponsored, ASIN: "B002"},
		{Kind: model.KindOrganic, ASIN: "B001"},
		{Kind: model.KindOrganic},
	}

	once := p.Deduplicate(products)
	twice := p.Deduplicate(once)

	if !reflect.DeepEqual(once, twice) {
		t.Errorf("Deduplicate not idempotent: %v != %v", once, twice)
	}
}

func TestFilter(t *testing.T) {
	p := newTestProcessor()

	products := []model.Product{
		{Kind: model.KindOrganic, ASIN: "B001"},                                                // 无评分
		{Kind: model.KindOrganic, ASIN: "B002", Rating: floatPtr(3.0), Reviews: intPtr(50)},    //
		{Kind: model.KindOrganic, ASIN: "B003", Rating: floatPtr(4.5), Reviews: intPtr(2000)},  //
		{Kind: model.KindOrganic, ASIN: "B004", Rating: floatPtr(4.8), Price: floatPtr(25.00)}, // 无评论数
	}

	t.Run("min rating excludes unknown", func(t *testing.T) {
		got := p.Filter(products, FilterOptions{MinRating: 4.0})
		if len(got) != 2 {
			t.Fatalf("len = %d, want 2", len(got))
		}
		if got[0].ASIN != "B003" || got[1].ASIN != "B004" {
			t.Errorf("got %q, %q; want B003, B004", got[0].ASIN, got[1].ASIN)
		}
	})

	t.Run("min reviews excludes unknown", func(t *testing.T) {
		got := p.Filter(products, FilterOptions{MinReviews: 100})
		if len(got) != 1 || got[0].ASIN != "B003" {
			t.Errorf("want only B003, got %d products", len(got))
		}
	})

	t.Run("price bounds skip unknown prices", func(t *testing.T) {
		got := p.Filter(products, FilterOptions{MaxPrice: floatPtr(10)})
		// 只有 B004 有价格且超过上限被排除，其余价格未知全部通过
		if len(got) != 3 {
			t.Fatalf("len = %d, want 3", len(got))
		}
		for _, product := range got {
			if product.ASIN == "B004" {
				t.Errorf("B004 should have been excluded by max price")
			}
		}
	})

	t.Run("conditions combine with AND", func(t *testing.T) {
		got := p.Filter(products, FilterOptions{MinRating: 4.0, MinReviews: 100})
		if len(got) != 1 || got[0].ASIN != "B003" {
			t.Errorf("want only B003, got %d products", len(got))
		}
	})

	t.Run("no active conditions keeps everything", func(t *testing.T) {
		got := p.Filter(products, FilterOptions{})
		if len(got) != len(products) {
			t.Errorf("len = %d, want %d", len(got), len(products))
		}
	})

	t.Run("empty input yields empty output", func(t *testing.T) {
		got := p.Filter(nil, FilterOptions{MinRating: 4.0})
		if len(got) != 0 {
			t.Errorf("len = %d, want 0", len(got))
		}
	})
}

// 辅助函数
func intPtr(i int) *int {
	return &i
}

func floatPtr(f float64) *float64 {
	return &f
}

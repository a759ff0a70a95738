package searcher

import (
	"context"
	"errors"
	"testing"

	"amzlens/internal/api"
	"amzlens/internal/api/serp/amazon_search"
	"amzlens/internal/model"
	"amzlens/internal/processor"

	"go.uber.org/zap"
)

// fakeFetcher 按页返回预设响应或错误
type fakeFetcher struct {
	pages map[int]*model.SearchPageResponse
	errs  map[int]error
	calls int
}

func (f *fakeFetcher) Fetch(_ context.Context, params amazon_search.RequestParams) (*model.SearchPageResponse, error) {
	f.calls++

	page := 1
	if params.Page != nil {
		page = *params.Page
	}

	if err, ok := f.errs[page]; ok {
		return nil, err
	}
	if response, ok := f.pages[page]; ok {
		return response, nil
	}
	return &model.SearchPageResponse{}, nil
}

func newTestSearcher(fetcher pageFetcher) *Searcher {
	return &Searcher{
		fetcher:   fetcher,
		processor: processor.NewProcessor(zap.NewNop()),
		logger:    zap.NewNop(),
	}
}

func rawProduct(asin, title string, sponsored bool) model.RawProduct {
	return model.RawProduct{
		ASIN:      asin,
		Title:     title,
		Sponsored: sponsored,
	}
}

func defaultRequest(pages int) model.SearchRequest {
	req := model.DefaultSearchRequest()
	req.Query = "wireless earbuds"
	req.Pages = pages
	return req
}

func TestSearcher_Search_MultiPage(t *testing.T) {
	fetcher := &fakeFetcher{
		pages: map[int]*model.SearchPageResponse{
			1: {OrganicResults: []model.RawProduct{
				rawProduct("B001", "Sony - Wireless Earbuds", true),
				rawProduct("B002", "Anker Soundcore Earbuds", false),
			}},
			2: {OrganicResults: []model.RawProduct{
				rawProduct("B001", "Sony - Wireless Earbuds", true), // 跨页重复
				rawProduct("B003", "JBL Tune Earbuds", false),
			}},
		},
	}

	s := newTestSearcher(fetcher)
	result, err := s.Search(context.Background(), defaultRequest(2))
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}

	if result.PagesFetched != 2 {
		t.Errorf("PagesFetched = %d, want 2", result.PagesFetched)
	}
	if result.RawCount != 4 {
		t.Errorf("RawCount = %d, want 4", result.RawCount)
	}
	if len(result.Products) != 3 {
		t.Fatalf("len(Products) = %d, want 3 (cross-page duplicate removed)", len(result.Products))
	}
	if result.Products[0].ASIN != "B001" || result.Products[2].ASIN != "B003" {
		t.Errorf("unexpected product order: %v, %v", result.Products[0].ASIN, result.Products[2].ASIN)
	}
}

func TestSearcher_Search_InvalidRequest(t *testing.T) {
	fetcher := &fakeFetcher{}
	s := newTestSearcher(fetcher)

	req := defaultRequest(1)
	req.Query = ""

	if _, err := s.Search(context.Background(), req); err == nil {
		t.Error("Search() with empty query should fail")
	}
	if fetcher.calls != 0 {
		t.Errorf("fetcher called %d times, invalid request must not trigger network calls", fetcher.calls)
	}
}

func TestSearcher_Search_FirstPageError(t *testing.T) {
	fetcher := &fakeFetcher{
		errs: map[int]error{1: errors.New("connection refused")},
	}

	s := newTestSearcher(fetcher)
	if _, err := s.Search(context.Background(), defaultRequest(2)); err == nil {
		t.Error("Search() should fail when page 1 cannot be fetched")
	}
}

func TestSearcher_Search_LaterPageErrorReturnsPartial(t *testing.T) {
	fetcher := &fakeFetcher{
		pages: map[int]*model.SearchPageResponse{
			1: {OrganicResults: []model.RawProduct{rawProduct("B001", "Sony Earbuds", false)}},
		},
		errs: map[int]error{2: errors.New("connection refused")},
	}

	s := newTestSearcher(fetcher)
	result, err := s.Search(context.Background(), defaultRequest(3))
	if err != nil {
		t.Fatalf("Search() error = %v, later page failures should return partial results", err)
	}

	if result.PagesFetched != 1 {
		t.Errorf("PagesFetched = %d, want 1", result.PagesFetched)
	}
	if len(result.Products) != 1 {
		t.Errorf("len(Products) = %d, want 1", len(result.Products))
	}
	if fetcher.calls != 2 {
		t.Errorf("fetcher calls = %d, want 2 (page 3 must not be attempted)", fetcher.calls)
	}
}

func TestSearcher_Search_QuotaOnFirstPage(t *testing.T) {
	fetcher := &fakeFetcher{
		errs: map[int]error{1: &api.QuotaError{Message: "out of credits"}},
	}

	s := newTestSearcher(fetcher)
	_, err := s.Search(context.Background(), defaultRequest(2))
	if !errors.Is(err, api.ErrQuotaExceeded) {
		t.Errorf("error = %v, want quota error", err)
	}
}

func TestSearcher_Search_QuotaOnLaterPage(t *testing.T) {
	fetcher := &fakeFetcher{
		pages: map[int]*model.SearchPageResponse{
			1: {OrganicResults: []model.RawProduct{rawProduct("B001", "Sony Earbuds", false)}},
		},
		errs: map[int]error{2: &api.QuotaError{Message: "out of credits"}},
	}

	s := newTestSearcher(fetcher)
	result, err := s.Search(context.Background(), defaultRequest(3))
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}

	if !result.QuotaReached {
		t.Error("QuotaReached = false, want true")
	}
	if len(result.Products) != 1 {
		t.Errorf("len(Products) = %d, want 1", len(result.Products))
	}
}

func TestSearcher_Search_EmptyPageStopsPagination(t *testing.T) {
	fetcher := &fakeFetcher{
		pages: map[int]*model.SearchPageResponse{
			1: {OrganicResults: []model.RawProduct{rawProduct("B001", "Sony Earbuds", false)}},
			2: {}, // 空页
			3: {OrganicResults: []model.RawProduct{rawProduct("B999", "should never be fetched", false)}},
		},
	}

	s := newTestSearcher(fetcher)
	result, err := s.Search(context.Background(), defaultRequest(3))
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}

	if fetcher.calls != 2 {
		t.Errorf("fetcher calls = %d, want 2", fetcher.calls)
	}
	if len(result.Products) != 1 {
		t.Errorf("len(Products) = %d, want 1", len(result.Products))
	}
}

func TestSearcher_Search_PageErrorField(t *testing.T) {
	fetcher := &fakeFetcher{
		pages: map[int]*model.SearchPageResponse{
			1: {Error: "Amazon hasn't returned any results for this query."},
		},
	}

	s := newTestSearcher(fetcher)
	if _, err := s.Search(context.Background(), defaultRequest(1)); err == nil {
		t.Error("Search() should fail when page 1 carries an error field")
	}
}

func TestSearcher_Search_FilterApplied(t *testing.T) {
	rating := 4.8
	lowRating := 3.0

	page := &model.SearchPageResponse{
		OrganicResults: []model.RawProduct{
			{ASIN: "B001", Title: "Sony Earbuds", Rating: &rating},
			{ASIN: "B002", Title: "Generic Earbuds", Rating: &lowRating},
			{ASIN: "B003", Title: "No Rating Earbuds"},
		},
	}

	fetcher := &fakeFetcher{pages: map[int]*model.SearchPageResponse{1: page}}
	s := newTestSearcher(fetcher)

	req := defaultRequest(1)
	req.MinRating = 4.0

	result, err := s.Search(context.Background(), req)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}

	if len(result.Products) != 1 || result.Products[0].ASIN != "B001" {
		t.Errorf("filter should keep only B001, got %d products", len(result.Products))
	}
}

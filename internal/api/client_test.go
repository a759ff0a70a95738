package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/zap"
)

// newTestClient 指向测试服务器的客户端，退避时间压缩到毫秒级
func newTestClient(serverURL string) *Client {
	c := NewClient(Config{
		BaseURL:           serverURL,
		APIKey:            "test-key",
		Timeout:           2 * time.Second,
		RequestsPerMinute: 6000,
		Logger:            zap.NewNop(),
	})
	c.retryBaseWait = time.Millisecond
	c.retryMaxWait = 5 * time.Millisecond
	return c
}

func TestClient_GetRawData_Success(t *testing.T) {
	var gotKey, gotQuery atomic.Value

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey.Store(r.URL.Query().Get("api_key"))
		gotQuery.Store(r.URL.Query().Get("k"))
		w.Write([]byte(`{"organic_results": []}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	body, err := client.GetRawData(context.Background(), SearchEndpoint, map[string]string{"k": "earbuds"})
	if err != nil {
		t.Fatalf("GetRawData() error = %v", err)
	}
	if len(body) == 0 {
		t.Error("GetRawData() returned empty body")
	}
	if gotKey.Load() != "test-key" {
		t.Errorf("api_key = %v, want test-key", gotKey.Load())
	}
	if gotQuery.Load() != "earbuds" {
		t.Errorf("k = %v, want earbuds", gotQuery.Load())
	}
}

func TestClient_GetRawData_MissingAPIKey(t *testing.T) {
	client := NewClient(Config{BaseURL: "http://localhost:1", Logger: zap.NewNop()})

	if _, err := client.GetRawData(context.Background(), SearchEndpoint, nil); err == nil {
		t.Error("GetRawData() with empty api key should fail")
	}
}

func TestClient_GetRawData_QuotaOn429(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	_, err := client.GetRawData(context.Background(), SearchEndpoint, nil)
	if !errors.Is(err, ErrQuotaExceeded) {
		t.Errorf("error = %v, want quota error", err)
	}
}

func TestClient_GetRawData_QuotaFromErrorBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"error": "You are out of searches, please add credits."}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	_, err := client.GetRawData(context.Background(), SearchEndpoint, nil)
	if !errors.Is(err, ErrQuotaExceeded) {
		t.Errorf("error = %v, want quota error", err)
	}
}

func TestClient_GetRawData_APIErrorNotRetried(t *testing.T) {
	var calls atomic.Int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Write([]byte(`{"error": "Unsupported engine."}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	_, err := client.GetRawData(context.Background(), SearchEndpoint, nil)

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error = %v, want APIError", err)
	}
	if errors.Is(err, ErrQuotaExceeded) {
		t.Error("generic API error must not be classified as quota error")
	}
	if calls.Load() != 1 {
		t.Errorf("calls = %d, business errors must not be retried", calls.Load())
	}
}

func TestClient_GetRawData_RetriesNetworkErrors(t *testing.T) {
	// 服务器立即关闭，所有请求都是连接错误
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	serverURL := server.URL
	server.Close()

	client := newTestClient(serverURL)
	start := time.Now()
	_, err := client.GetRawData(context.Background(), SearchEndpoint, nil)
	if err == nil {
		t.Fatal("GetRawData() against closed server should fail")
	}
	// 失败前应当重试了 maxRetries 次（退避时间是毫秒级）
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Errorf("retries took too long: %v", elapsed)
	}
}

func TestClient_GetAccountInfo(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != AccountEndpoint {
			t.Errorf("path = %q, want %q", r.URL.Path, AccountEndpoint)
		}
		w.Write([]byte(`{"plan_name": "Free", "searches_per_month": 100, "plan_searches_left": 82, "this_month_usage": 18}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	info, err := client.GetAccountInfo(context.Background())
	if err != nil {
		t.Fatalf("GetAccountInfo() error = %v", err)
	}
	if info.PlanName != "Free" || info.PlanSearchesLeft != 82 {
		t.Errorf("info = %+v", info)
	}
}

func TestIsQuotaMessage(t *testing.T) {
	tests := []struct {
		msg  string
		want bool
	}{
		{"You are out of credits", true},
		{"Monthly quota exceeded", true},
		{"Rate LIMIT hit", true},
		{"Unsupported engine", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := isQuotaMessage(tt.msg); got != tt.want {
			t.Errorf("isQuotaMessage(%q) = %v, want %v", tt.msg, got, tt.want)
		}
	}
}

package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// SerpAPIBaseURL SerpAPI 基础 URL
const SerpAPIBaseURL = "https://serpapi.com"

// API 端点
const (
	SearchEndpoint  = "/search"
	AccountEndpoint = "/account"
)

// 重试默认值
const (
	DefaultMaxRetries        = 3
	DefaultRequestsPerMinute = 10
	defaultRetryBaseWait     = 1 * time.Second
	defaultRetryMaxWait      = 10 * time.Second
)

// Client SerpAPI 客户端
// 内置指数退避重试与每分钟请求数限制
type Client struct {
	baseURL       string
	apiKey        string
	httpClient    *http.Client
	limiter       *rate.Limiter
	maxRetries    int
	retryBaseWait time.Duration
	retryMaxWait  time.Duration
	logger        *zap.Logger
}

// Config API 客户端配置
type Config struct {
	BaseURL           string
	APIKey            string
	Timeout           time.Duration
	MaxRetries        int
	RequestsPerMinute int
	Logger            *zap.Logger
}

// NewClient 创建新的 API 客户端
func NewClient(cfg Config) *Client {
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = DefaultMaxRetries
	}
	if cfg.RequestsPerMinute <= 0 {
		cfg.RequestsPerMinute = DefaultRequestsPerMinute
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = SerpAPIBaseURL
	}

	return &Client{
		baseURL: baseURL,
		apiKey:  cfg.APIKey,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		limiter:       rate.NewLimiter(rate.Every(time.Minute/time.Duration(cfg.RequestsPerMinute)), 1),
		maxRetries:    cfg.MaxRetries,
		retryBaseWait: defaultRetryBaseWait,
		retryMaxWait:  defaultRetryMaxWait,
		logger:        cfg.Logger,
	}
}

// GetRawData 请求端点并返回原始响应体
// 网络错误按指数退避重试，HTTP 429 与配额类业务错误立即返回 QuotaError
func (c *Client) GetRawData(ctx context.Context, endpoint string, params map[string]string) ([]byte, error) {
	if c.apiKey == "" {
		err := fmt.Errorf("api key is required but not set")
		if c.logger != nil {
			c.logger.Error("api key missing", zap.Error(err))
		}
		return nil, err
	}

	// 1. 构建完整的 URL
	fullURL, err := url.JoinPath(c.baseURL, endpoint)
	if err != nil {
		return nil, fmt.Errorf("failed to build URL: %w", err)
	}

	parsedURL, err := url.Parse(fullURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse URL: %w", err)
	}

	// 2. 构建查询参数（api_key 为必需参数）
	query := parsedURL.Query()
	query.Set("api_key", c.apiKey)
	for key, value := range params {
		query.Set(key, value)
	}
	parsedURL.RawQuery = query.Encode()
	finalURL := parsedURL.String()

	// 3. 带重试地发送请求
	var lastErr error
	for attempt := 1; attempt <= c.maxRetries; attempt++ {
		// 按每分钟限额排队
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter wait cancelled: %w", err)
		}

		body, err := c.doRequest(ctx, finalURL, endpoint)
		if err == nil {
			return body, nil
		}

		lastErr = err

		// 只有网络错误才重试
		if _, retryable := err.(*NetworkError); !retryable {
			return nil, err
		}

		if attempt == c.maxRetries {
			break
		}

		wait := c.backoff(attempt)
		if c.logger != nil {
			c.logger.Warn("request failed, retrying",
				zap.String("endpoint", endpoint),
				zap.Int("attempt", attempt),
				zap.Duration("wait", wait),
				zap.Error(err),
			)
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(wait):
		}
	}

	if c.logger != nil {
		c.logger.Error("request failed after all retries",
			zap.String("endpoint", endpoint),
			zap.Int("max_retries", c.maxRetries),
			zap.Error(lastErr),
		)
	}
	return nil, fmt.Errorf("request failed after %d attempts: %w", c.maxRetries, lastErr)
}

// doRequest 执行单次 HTTP 请求并做错误分类
func (c *Client) doRequest(ctx context.Context, finalURL, endpoint string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, finalURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", "amzlens-client/1.0")
	req.Header.Set("Accept", "application/json")

	if c.logger != nil {
		c.logger.Debug("sending HTTP request",
			zap.String("method", req.Method),
			zap.String("endpoint", endpoint),
		)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	// 429 表示额度用尽或被限流
	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, &QuotaError{Message: "rate limit exceeded"}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &APIError{Message: fmt.Sprintf("HTTP status code %d", resp.StatusCode)}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &NetworkError{Err: fmt.Errorf("failed to read response body: %w", err)}
	}

	// 响应体中的 error 字段表示业务错误
	var envelope struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Error != "" {
		if isQuotaMessage(envelope.Error) {
			return nil, &QuotaError{Message: envelope.Error}
		}
		return nil, &APIError{Message: envelope.Error}
	}

	if c.logger != nil {
		c.logger.Debug("HTTP request succeeded",
			zap.Int("status_code", resp.StatusCode),
			zap.String("endpoint", endpoint),
			zap.Int("body_size", len(body)),
		)
	}

	return body, nil
}

// backoff 计算第 attempt 次失败后的等待时间
// 基准时间按 2 的幂增长，限制在 [base, max] 区间
func (c *Client) backoff(attempt int) time.Duration {
	wait := c.retryBaseWait * time.Duration(2<<(attempt-1))
	if wait < c.retryBaseWait {
		wait = c.retryBaseWait
	}
	if wait > c.retryMaxWait {
		wait = c.retryMaxWait
	}
	return wait
}

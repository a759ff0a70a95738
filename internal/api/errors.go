package api

import (
	"errors"
	"fmt"
	"strings"
)

// ErrQuotaExceeded 配额耗尽哨兵错误
// 使用 errors.Is 判断是否应当停止继续请求
var ErrQuotaExceeded = errors.New("serpapi quota exceeded")

// APIError SerpAPI 返回的业务错误（响应体携带 error 字段）
type APIError struct {
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("serpapi error: %s", e.Message)
}

// QuotaError 配额/额度耗尽错误，不可通过重试恢复
type QuotaError struct {
	Message string
}

func (e *QuotaError) Error() string {
	return fmt.Sprintf("serpapi quota exceeded: %s", e.Message)
}

// Is 支持 errors.Is(err, ErrQuotaExceeded)
func (e *QuotaError) Is(target error) bool {
	return target == ErrQuotaExceeded
}

// NetworkError 网络层错误，可重试
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("serpapi network error: %v", e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// quotaKeywords 业务错误文案中标识配额问题的关键词
var quotaKeywords = []string{"credit", "quota", "limit"}

// isQuotaMessage 判断错误文案是否指向配额问题
func isQuotaMessage(msg string) bool {
	msgLower := strings.ToLower(msg)
	for _, keyword := range quotaKeywords {
		if strings.Contains(msgLower, keyword) {
			return true
		}
	}
	return false
}

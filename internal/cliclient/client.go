package cliclient

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const DefaultServerURL = "http://localhost:8080"

// Client HTTP 客户端，用于与 amzlens Server 通信
type Client struct {
	serverURL  string
	httpClient *http.Client
}

// NewClient 创建新的 HTTP 客户端
func NewClient(serverURL string) *Client {
	if serverURL == "" {
		serverURL = DefaultServerURL
	}
	return &Client{
		serverURL: serverURL,
		httpClient: &http.Client{
			Timeout: 120 * time.Second, // 多页搜索较慢
		},
	}
}

// GetServerURL 返回服务器 URL
func (c *Client) GetServerURL() string {
	return c.serverURL
}

// PostJSONAndUnmarshal 发送 POST 请求并解析响应为指定类型
func (c *Client) PostJSONAndUnmarshal(endpoint string, body interface{}, result interface{}) error {
	var jsonData []byte
	var err error
	if body != nil {
		jsonData, err = json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
	}

	return c.do("POST", endpoint, bytes.NewBuffer(jsonData), result)
}

// GetJSONAndUnmarshal 发送 GET 请求并解析响应为指定类型
func (c *Client) GetJSONAndUnmarshal(endpoint string, result interface{}) error {
	return c.do("GET", endpoint, nil, result)
}

// do 发送请求，检查状态码并解析 JSON 响应
func (c *Client) do(method, endpoint string, body io.Reader, result interface{}) error {
	url := fmt.Sprintf("%s%s", c.serverURL, endpoint)

	req, err := http.NewRequest(method, url, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	// 检查 HTTP 状态码
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("HTTP error: status code %d, response: %s", resp.StatusCode, string(bodyBytes))
	}

	if result != nil {
		if err := json.Unmarshal(bodyBytes, result); err != nil {
			return fmt.Errorf("failed to unmarshal response: %w", err)
		}
	}

	return nil
}

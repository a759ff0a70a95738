package api

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"
)

// AccountInfo SerpAPI 账户信息（额度与用量）
type AccountInfo struct {
	AccountEmail      string `json:"account_email,omitempty"`
	PlanName          string `json:"plan_name,omitempty"`
	SearchesPerMonth  int    `json:"searches_per_month"`
	PlanSearchesLeft  int    `json:"plan_searches_left"`
	ThisMonthUsage    int    `json:"this_month_usage"`
	TotalSearchesLeft int    `json:"total_searches_left"`
}

// GetAccountInfo 查询账户额度与用量
func (c *Client) GetAccountInfo(ctx context.Context) (*AccountInfo, error) {
	body, err := c.GetRawData(ctx, AccountEndpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch account info: %w", err)
	}

	var info AccountInfo
	if err := json.Unmarshal(body, &info); err != nil {
		return nil, fmt.Errorf("failed to parse account info: %w", err)
	}

	if c.logger != nil {
		c.logger.Info("account info fetched",
			zap.String("plan", info.PlanName),
			zap.Int("plan_searches_left", info.PlanSearchesLeft),
		)
	}

	return &info, nil
}

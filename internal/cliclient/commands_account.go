package cliclient

import (
	"context"
	"fmt"

	"amzlens/internal/api"
)

// AccountCommand 查看 SerpAPI 账户额度
type AccountCommand struct {
	client *Client
}

// NewAccountCommand 创建账户命令
func NewAccountCommand(client *Client) *AccountCommand {
	return &AccountCommand{
		client: client,
	}
}

// Name 返回命令名称
func (c *AccountCommand) Name() string {
	return "account"
}

// Aliases 返回命令别名
func (c *AccountCommand) Aliases() []string {
	return []string{"quota"}
}

// Description 返回命令描述
func (c *AccountCommand) Description() string {
	return "查看 SerpAPI 账户额度与用量"
}

// Usage 返回使用说明
func (c *AccountCommand) Usage() string {
	return "account"
}

// accountAPIResponse 账户信息响应结构
type accountAPIResponse struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    api.AccountInfo `json:"data"`
}

// Execute 执行命令
func (c *AccountCommand) Execute(ctx context.Context, args []string) error {
	var response accountAPIResponse
	if err := c.client.GetJSONAndUnmarshal("/api/v1/account", &response); err != nil {
		return err
	}

	if response.Code != 0 {
		return fmt.Errorf("服务器返回错误: %s", response.Message)
	}

	info := response.Data
	fmt.Println()
	fmt.Println("SerpAPI 账户信息:")
	fmt.Println("───────────────────────────────────────")
	if info.AccountEmail != "" {
		fmt.Printf("  邮箱:       %s\n", info.AccountEmail)
	}
	if info.PlanName != "" {
		fmt.Printf("  套餐:       %s\n", info.PlanName)
	}
	fmt.Printf("  月度额度:   %d\n", info.SearchesPerMonth)
	fmt.Printf("  本月已用:   %d\n", info.ThisMonthUsage)
	fmt.Printf("  剩余额度:   %d\n", info.PlanSearchesLeft)
	fmt.Printf("  总剩余:     %d\n", info.TotalSearchesLeft)
	fmt.Println("───────────────────────────────────────")
	return nil
}

package cliclient

import (
	"context"
	"fmt"
	"strconv"

	"amzlens/internal/formatter"
	"amzlens/internal/model"
)

// SnapshotsCommand 查看历史搜索快照
type SnapshotsCommand struct {
	client *Client
}

// NewSnapshotsCommand 创建快照命令
func NewSnapshotsCommand(client *Client) *SnapshotsCommand {
	return &SnapshotsCommand{
		client: client,
	}
}

// Name 返回命令名称
func (c *SnapshotsCommand) Name() string {
	return "snapshots"
}

// Aliases 返回命令别名
func (c *SnapshotsCommand) Aliases() []string {
	return []string{"snap", "history"}
}

// Description 返回命令描述
func (c *SnapshotsCommand) Description() string {
	return "查看最近保存的搜索快照"
}

// Usage 返回使用说明
func (c *SnapshotsCommand) Usage() string {
	return "snapshots [limit]\n" +
		"  示例:\n" +
		"    snapshots        # 显示最近 20 条\n" +
		"    snapshots 50     # 显示最近 50 条"
}

// snapshotsAPIResponse 快照列表响应结构
type snapshotsAPIResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    struct {
		Snapshots []model.SearchSnapshot `json:"snapshots"`
		Count     int                    `json:"count"`
		Total     int64                  `json:"total"`
	} `json:"data"`
}

// Execute 执行命令
func (c *SnapshotsCommand) Execute(ctx context.Context, args []string) error {
	endpoint := "/api/v1/snapshots"
	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil || n <= 0 {
			return fmt.Errorf("invalid limit: %s", args[0])
		}
		endpoint = fmt.Sprintf("%s?limit=%d", endpoint, n)
	}

	var response snapshotsAPIResponse
	if err := c.client.GetJSONAndUnmarshal(endpoint, &response); err != nil {
		return err
	}

	if response.Code != 0 {
		return fmt.Errorf("服务器返回错误: %s", response.Message)
	}

	if response.Data.Count == 0 {
		fmt.Println("暂无搜索快照")
		return nil
	}

	fmt.Println()
	fmt.Printf("最近 %d 条搜索快照 (共 %d 条):\n", response.Data.Count, response.Data.Total)
	fmt.Println("───────────────────────────────────────────────────────────")
	for _, s := range response.Data.Snapshots {
		fmt.Printf("%s  %-25s %-12s %2d页  %3d个商品  [%s]\n",
			s.FetchedAt.Format("2006-01-02 15:04"),
			formatter.TruncateText(s.Query, 25),
			s.Domain,
			s.Pages,
			s.ProductCount,
			s.Source,
		)
		fmt.Printf("  ID: %s\n", s.ID.Hex())
	}
	fmt.Println("───────────────────────────────────────────────────────────")
	return nil
}

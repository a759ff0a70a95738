package cliclient

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"amzlens/internal/analytics"
	"amzlens/internal/formatter"
	"amzlens/internal/model"
)

// SearchCommand 搜索命令
type SearchCommand struct {
	client *Client
}

// NewSearchCommand 创建搜索命令
func NewSearchCommand(client *Client) *SearchCommand {
	return &SearchCommand{
		client: client,
	}
}

// Name 返回命令名称
func (c *SearchCommand) Name() string {
	return "search"
}

// Aliases 返回命令别名
func (c *SearchCommand) Aliases() []string {
	return []string{"s"}
}

// Description 返回命令描述
func (c *SearchCommand) Description() string {
	return "搜索 Amazon 商品并展示分析结果"
}

// Usage 返回使用说明
func (c *SearchCommand) Usage() string {
	return "search <query> [--domain=amazon.com] [--pages=1] [--min-rating=0] [--min-reviews=0] [--min-price=N] [--max-price=N] [--no-ads] [--no-organic]\n" +
		"  示例:\n" +
		"    search wireless earbuds                    # 默认站点搜索\n" +
		"    search earbuds --domain=amazon.de --pages=2\n" +
		"    search earbuds --min-rating=4 --min-reviews=100"
}

// searchAPIResponse 服务器搜索响应结构
type searchAPIResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    struct {
		Products     []model.Product        `json:"products"`
		Summary      analytics.Summary      `json:"summary"`
		TopBrands    []analytics.BrandStats `json:"top_brands"`
		Prices       analytics.PriceStats   `json:"prices"`
		Ads          analytics.AdStats      `json:"ads"`
		TopDiscounts []model.Product        `json:"top_discounts"`
		PagesFetched int                    `json:"pages_fetched"`
		RawCount     int                    `json:"raw_count"`
		QuotaReached bool                   `json:"quota_reached"`
		SnapshotID   string                 `json:"snapshot_id"`
	} `json:"data"`
}

// Execute 执行命令
func (c *SearchCommand) Execute(ctx context.Context, args []string) error {
	req, err := parseSearchArgs(args)
	if err != nil {
		return err
	}

	fmt.Printf("正在搜索 %q (站点: %s, 页数: %d)...\n", req.Query, req.Domain, req.Pages)

	var response searchAPIResponse
	if err := c.client.PostJSONAndUnmarshal("/api/v1/search", req, &response); err != nil {
		return err
	}

	if response.Code != 0 {
		return fmt.Errorf("服务器返回错误: %s", response.Message)
	}

	c.displayResults(req.Domain, &response)
	return nil
}

// parseSearchArgs 解析命令参数
// 非 -- 前缀的词拼成查询词，-- 前缀的词解释为选项
func parseSearchArgs(args []string) (model.SearchRequest, error) {
	req := model.DefaultSearchRequest()

	var queryWords []string
	for _, arg := range args {
		if !strings.HasPrefix(arg, "--") {
			queryWords = append(queryWords, arg)
			continue
		}

		name, value, _ := strings.Cut(strings.TrimPrefix(arg, "--"), "=")
		switch name {
		case "domain":
			req.Domain = value
		case "pages":
			n, err := strconv.Atoi(value)
			if err != nil {
				return req, fmt.Errorf("invalid --pages value: %s", value)
			}
			req.Pages = n
		case "min-rating":
			v, err := strconv.ParseFloat(value, 64)
			if err != nil {
				return req, fmt.Errorf("invalid --min-rating value: %s", value)
			}
			req.MinRating = v
		case "min-reviews":
			n, err := strconv.Atoi(value)
			if err != nil {
				return req, fmt.Errorf("invalid --min-reviews value: %s", value)
			}
			req.MinReviews = n
		case "min-price":
			v, err := strconv.ParseFloat(value, 64)
			if err != nil {
				return req, fmt.Errorf("invalid --min-price value: %s", value)
			}
			req.MinPrice = &v
		case "max-price":
			v, err := strconv.ParseFloat(value, 64)
			if err != nil {
				return req, fmt.Errorf("invalid --max-price value: %s", value)
			}
			req.MaxPrice = &v
		case "no-ads":
			req.IncludeAds = false
		case "no-organic":
			req.IncludeOrganic = false
		default:
			return req, fmt.Errorf("unknown option: --%s", name)
		}
	}

	req.Query = strings.Join(queryWords, " ")
	if req.Query == "" {
		return req, fmt.Errorf("query is required, see 'help search'")
	}

	return req, nil
}

// displayResults 展示搜索结果与概览指标
func (c *SearchCommand) displayResults(domain string, response *searchAPIResponse) {
	data := response.Data
	priceFmt := formatter.NewCurrencyFormatter(domain)

	fmt.Println()
	fmt.Println("═══════════════════════════════════════════════════════════")
	fmt.Printf("搜索结果 (共 %d 个商品, 抓取 %d 页)\n", len(data.Products), data.PagesFetched)
	if data.QuotaReached {
		fmt.Println("注意: API 配额耗尽，结果不完整")
	}
	fmt.Println("═══════════════════════════════════════════════════════════")
	fmt.Println()

	for i, p := range data.Products {
		kind := "自然"
		if p.Kind == model.KindSponsored {
			kind = "广告"
		}

		fmt.Printf("【%d】[%s] %s\n", i+1, kind, formatter.TruncateText(p.Title, 70))
		fmt.Printf("    品牌: %-20s ASIN: %s\n", p.Brand, p.ASIN)

		line := fmt.Sprintf("    价格: %s", priceFmt.FormatPrice(p.Price))
		if p.HasDiscount() {
			line += fmt.Sprintf(" (原价 %s, 折扣 %s)", priceFmt.FormatPrice(p.OldPrice), priceFmt.FormatDiscount(p.DiscountPct))
		}
		fmt.Println(line)

		fmt.Printf("    评分: %-6s 评论数: %-10s Prime: %v\n",
			formatter.FormatRating(p.Rating),
			formatter.FormatNumber(p.Reviews),
			p.Prime,
		)
		fmt.Println()
	}

	// 概览
	fmt.Println("───────────────────────────────────────────────────────────")
	fmt.Printf("概览: 商品 %d | 广告 %d | 品牌 %d | 均价 %s | 平均评分 %s | Prime %s\n",
		data.Summary.TotalProducts,
		data.Summary.SponsoredCount,
		data.Summary.UniqueBrands,
		priceFmt.FormatPrice(data.Summary.AvgPrice),
		formatter.FormatRating(data.Summary.AvgRating),
		formatter.FormatPercentage(&data.Summary.PrimePct),
	)
	fmt.Printf("价格: 最低 %s | 最高 %s | 中位 %s\n",
		priceFmt.FormatPrice(data.Prices.Min),
		priceFmt.FormatPrice(data.Prices.Max),
		priceFmt.FormatPrice(data.Prices.Median),
	)
	fmt.Printf("广告: 广告位 %d | 前三名广告 %d | 平均位置 %s\n",
		data.Ads.SponsoredCount,
		data.Ads.TopThreePositions,
		formatter.FormatRating(data.Ads.AvgPosition),
	)

	if len(data.TopBrands) > 0 {
		fmt.Println()
		fmt.Println("热门品牌:")
		for i, b := range data.TopBrands {
			fmt.Printf("  %2d. %-20s 商品 %-3d 均价 %s\n",
				i+1, b.Brand, b.Products, priceFmt.FormatPrice(b.AvgPrice))
		}
	}

	if len(data.TopDiscounts) > 0 {
		fmt.Println()
		fmt.Println("折扣榜:")
		for i, p := range data.TopDiscounts {
			fmt.Printf("  %2d. -%s  %-50s 现价 %s\n",
				i+1,
				priceFmt.FormatDiscount(p.DiscountPct),
				formatter.TruncateText(p.Title, 50),
				priceFmt.FormatPrice(p.Price),
			)
		}
	}

	if data.SnapshotID != "" {
		fmt.Println()
		fmt.Printf("快照已保存: %s\n", data.SnapshotID)
	}
	fmt.Println("───────────────────────────────────────────────────────────")
}

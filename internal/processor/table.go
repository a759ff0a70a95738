package processor

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"amzlens/internal/model"
)

// TableColumns 表格列，顺序固定
var TableColumns = []string{
	"type", "position", "asin", "brand", "title",
	"price", "old_price", "rating", "reviews", "bought_last_month",
	"prime", "thumbnail", "link", "discount_pct",
}

// Table 商品列表的表格化视图
// 数值列保持数值类型，缺失值用 nil 表示而不是解析错误
type Table struct {
	Columns []string `json:"columns"`
	Rows    [][]any  `json:"rows"`
}

// ToTable 将商品列表物化为表格
// 每个商品一行，每个属性一列；空输入产生零行表格
func (p *Processor) ToTable(products []model.Product) *Table {
	table := &Table{
		Columns: TableColumns,
		Rows:    make([][]any, 0, len(products)),
	}

	for _, product := range products {
		row := []any{
			string(product.Kind),
			nullableInt(product.Position),
			product.ASIN,
			product.Brand,
			product.Title,
			nullableFloat(product.Price),
			nullableFloat(product.OldPrice),
			nullableFloat(product.Rating),
			nullableInt(product.Reviews),
			nullableInt(product.BoughtLastMonth),
			product.Prime,
			product.Thumbnail,
			product.Link,
			product.DiscountPct,
		}
		table.Rows = append(table.Rows, row)
	}

	return table
}

// WriteCSV 将表格写出为 CSV（含表头）
// 缺失值写为空字符串
func (t *Table) WriteCSV(w io.Writer) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(t.Columns); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	record := make([]string, len(t.Columns))
	for _, row := range t.Rows {
		for i, cell := range row {
			record[i] = formatCell(cell)
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// formatCell 单元格转为 CSV 文本
func formatCell(cell any) string {
	switch v := cell.(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case int:
		return strconv.Itoa(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprintf("%v", v)
	}
}

// nullableInt 解引用可选整数，缺失返回 nil
func nullableInt(v *int) any {
	if v == nil {
		return nil
	}
	return *v
}

// nullableFloat 解引用可选浮点数，缺失返回 nil
func nullableFloat(v *float64) any {
	if v == nil {
		return nil
	}
	return *v
}

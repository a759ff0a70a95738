package formatter

import (
	"fmt"
	"strings"

	"amzlens/internal/marketplace"
)

// NotAvailable 缺失值的展示文本
const NotAvailable = "N/A"

// CurrencyFormatter 按站点货币符号格式化金额
type CurrencyFormatter struct {
	symbol string
}

// NewCurrencyFormatter 创建货币格式化器
func NewCurrencyFormatter(domain string) *CurrencyFormatter {
	return &CurrencyFormatter{symbol: marketplace.Currency(domain)}
}

// Symbol 返回货币符号
func (f *CurrencyFormatter) Symbol() string {
	return f.symbol
}

// FormatPrice 格式化价格，缺失返回 N/A
func (f *CurrencyFormatter) FormatPrice(price *float64) string {
	if price == nil {
		return NotAvailable
	}
	return fmt.Sprintf("%s%.2f", f.symbol, *price)
}

// FormatDiscount 格式化折扣，无折扣返回 "-"
func (f *CurrencyFormatter) FormatDiscount(discountPct float64) string {
	if discountPct <= 0 {
		return "-"
	}
	return fmt.Sprintf("%.1f%%", discountPct)
}

// FormatNumber 格式化整数，加千位分隔符，缺失返回 N/A
func FormatNumber(value *int) string {
	if value == nil {
		return NotAvailable
	}

	n := *value
	negative := n < 0
	if negative {
		n = -n
	}

	digits := fmt.Sprintf("%d", n)
	var b strings.Builder
	for i, d := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(d)
	}

	if negative {
		return "-" + b.String()
	}
	return b.String()
}

// FormatPercentage 格式化百分比，保留一位小数
func FormatPercentage(value *float64) string {
	if value == nil {
		return NotAvailable
	}
	return fmt.Sprintf("%.1f%%", *value)
}

// FormatRating 格式化评分，保留一位小数，缺失返回 N/A
func FormatRating(rating *float64) string {
	if rating == nil {
		return NotAvailable
	}
	return fmt.Sprintf("%.1f", *rating)
}

// TruncateText 截断文本到最大长度，超长时加省略后缀
func TruncateText(text string, maxLength int) string {
	const suffix = "..."

	if text == "" {
		return ""
	}

	runes := []rune(text)
	if len(runes) <= maxLength {
		return text
	}
	if maxLength <= len(suffix) {
		return string(runes[:maxLength])
	}
	return string(runes[:maxLength-len(suffix)]) + suffix
}

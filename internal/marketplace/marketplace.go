package marketplace

import "sort"

// DefaultDomain 默认站点
const DefaultDomain = "amazon.com"

// DefaultCurrency 未知站点的货币符号回退值
const DefaultCurrency = "$"

// currencies 各站点对应的货币符号
// 同时定义了支持的站点集合
var currencies = map[string]string{
	"amazon.com":    "$",
	"amazon.co.uk":  "£",
	"amazon.de":     "€",
	"amazon.fr":     "€",
	"amazon.ca":     "C$",
	"amazon.es":     "€",
	"amazon.it":     "€",
	"amazon.co.jp":  "¥",
	"amazon.com.au": "A$",
	"amazon.in":     "₹",
	"amazon.com.br": "R$",
	"amazon.com.mx": "MX$",
}

// IsSupported 判断站点是否受支持
func IsSupported(domain string) bool {
	_, ok := currencies[domain]
	return ok
}

// Currency 返回站点的货币符号
// 未知站点返回默认符号
func Currency(domain string) string {
	if symbol, ok := currencies[domain]; ok {
		return symbol
	}
	return DefaultCurrency
}

// Domains 返回所有支持的站点（按字典序）
func Domains() []string {
	domains := make([]string, 0, len(currencies))
	for domain := range currencies {
		domains = append(domains, domain)
	}
	sort.Strings(domains)
	return domains
}

package extractor

import (
	"regexp"
	"strings"
	"unicode"

	"amzlens/internal/model"
)

// placeholderBrands 显式品牌字段中视为无效的占位值（小写比较）
var placeholderBrands = map[string]bool{
	"unknown": true,
	"n/a":     true,
	"none":    true,
}

// excludedWords 品牌候选中禁止出现的词（不区分大小写，子串匹配）
var excludedWords = []string{
	"pack", "set", "bundle", "piece", "pieces", "pcs",
	"compatible", "replacement", "for",
}

// titlePattern 标题提取步骤：按顺序尝试，第一个产生有效候选的模式生效
type titlePattern struct {
	name string
	re   *regexp.Regexp
}

// titlePatterns 标题提取模式链
// 依次为：连字符/短横线分隔、逗号分隔、"by" 分隔、竖线分隔
var titlePatterns = []titlePattern{
	{name: "hyphen", re: regexp.MustCompile(`^([^-–]+)\s*[-–]\s*`)},
	{name: "comma", re: regexp.MustCompile(`^([^,]+),\s*`)},
	{name: "by", re: regexp.MustCompile(`^(.+?)\s+by\s+`)},
	{name: "pipe", re: regexp.MustCompile(`^([^|]+)\|`)},
}

// trailingSuffix 品牌尾部需要剥离的店铺后缀
var trailingSuffix = regexp.MustCompile(`(?i)\s+(Store|Official|Shop)$`)

// whitespaceRun 连续空白
var whitespaceRun = regexp.MustCompile(`\s+`)

// Extractor 从原始商品记录中猜测品牌名
// 无副作用，相同输入恒定返回相同结果
type Extractor struct{}

// NewExtractor 创建品牌提取器
func NewExtractor() *Extractor {
	return &Extractor{}
}

// ExtractBrand 提取品牌
// 优先使用显式 brand 字段，其次从标题按模式链提取，全部失败时返回 Unknown
func (e *Extractor) ExtractBrand(raw model.RawProduct) string {
	// 1. 显式品牌字段：非空且不是占位值时直接清洗返回
	if brand := strings.TrimSpace(raw.Brand); brand != "" && !placeholderBrands[strings.ToLower(brand)] {
		return cleanBrand(brand)
	}

	// 2. 从标题提取
	if title := strings.TrimSpace(raw.Title); title != "" {
		if brand := e.extractFromTitle(title); brand != "" {
			return brand
		}
	}

	return model.UnknownBrand
}

// extractFromTitle 从标题中提取品牌，无有效候选时返回空串
func (e *Extractor) extractFromTitle(title string) string {
	// 模式链：第一个通过筛查的候选胜出
	for _, p := range titlePatterns {
		match := p.re.FindStringSubmatch(title)
		if match == nil {
			continue
		}
		candidate := strings.TrimSpace(match[1])
		if isValidBrand(candidate) {
			return cleanBrand(candidate)
		}
	}

	// 位置启发：先试标题前两个词，再试第一个词
	words := strings.Fields(title)
	if len(words) >= 2 {
		candidate := words[0] + " " + words[1]
		if isValidBrand(candidate) {
			return cleanBrand(candidate)
		}
	}
	if len(words) >= 1 {
		if isValidBrand(words[0]) {
			return cleanBrand(words[0])
		}
	}

	return ""
}

// isValidBrand 判断候选文本是否可能是品牌名
func isValidBrand(brand string) bool {
	length := len([]rune(brand))
	if length < 2 || length > model.MaxBrandLength {
		return false
	}

	brandLower := strings.ToLower(brand)
	for _, word := range excludedWords {
		if strings.Contains(brandLower, word) {
			return false
		}
	}

	// 纯数字（允许夹杂空格）不是品牌
	if isAllDigits(strings.ReplaceAll(brand, " ", "")) {
		return false
	}

	return true
}

// isAllDigits 字符串非空且全部由数字构成
func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// cleanBrand 清洗品牌名
// 压缩空白、剥离店铺后缀；全大写或全小写时转为标题格，混合大小写保持原样
func cleanBrand(brand string) string {
	brand = whitespaceRun.ReplaceAllString(strings.TrimSpace(brand), " ")
	brand = trailingSuffix.ReplaceAllString(brand, "")
	brand = strings.TrimSpace(brand)

	if isAllUpper(brand) || isAllLower(brand) {
		return titleCase(brand)
	}
	return brand
}

// isAllUpper 字符串包含字母且所有字母均为大写
func isAllUpper(s string) bool {
	hasLetter := false
	for _, r := range s {
		if unicode.IsLetter(r) {
			hasLetter = true
			if !unicode.IsUpper(r) {
				return false
			}
		}
	}
	return hasLetter
}

// isAllLower 字符串包含字母且所有字母均为小写
func isAllLower(s string) bool {
	hasLetter := false
	for _, r := range s {
		if unicode.IsLetter(r) {
			hasLetter = true
			if !unicode.IsLower(r) {
				return false
			}
		}
	}
	return hasLetter
}

// titleCase 将每个词转为首字母大写、其余小写
// 任何非字母字符都视为词边界，如 "coca-cola" → "Coca-Cola"、"3M" → "3M"
func titleCase(s string) string {
	runes := []rune(s)
	prevLetter := false
	for i, r := range runes {
		if !unicode.IsLetter(r) {
			prevLetter = false
			continue
		}
		if prevLetter {
			runes[i] = unicode.ToLower(r)
		} else {
			runes[i] = unicode.ToUpper(r)
		}
		prevLetter = true
	}
	return string(runes)
}

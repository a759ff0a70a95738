package extractor

import (
	"testing"

	"amzlens/internal/model"
)

func TestExtractBrand_ExplicitField(t *testing.T) {
	e := NewExtractor()

	tests := []struct {
		name  string
		brand string
		title string
		want  string
	}{
		{
			name:  "explicit brand wins over title",
			brand: "Anker",
			title: "Sony - Wireless Earbuds",
			want:  "Anker",
		},
		{
			name:  "explicit brand is cleaned",
			brand: "  anker   innovations  ",
			title: "",
			want:  "Anker Innovations",
		},
		{
			name:  "store suffix is stripped",
			brand: "Anker Store",
			title: "",
			want:  "Anker",
		},
		{
			name:  "official suffix is stripped case-insensitively",
			brand: "Soundcore official",
			title: "",
			want:  "Soundcore",
		},
		{
			name:  "hyphen is a word boundary for title casing",
			brand: "coca-cola",
			title: "",
			want:  "Coca-Cola",
		},
		{
			name:  "digit prefix keeps following letter uppercase",
			brand: "3M",
			title: "",
			want:  "3M",
		},
		{
			name:  "placeholder unknown falls through to title",
			brand: "Unknown",
			title: "Sony - Wireless Earbuds",
			want:  "Sony",
		},
		{
			name:  "placeholder n/a falls through to title",
			brand: "N/A",
			title: "Sony - Wireless Earbuds",
			want:  "Sony",
		},
		{
			name:  "placeholder none with empty title",
			brand: "none",
			title: "",
			want:  model.UnknownBrand,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := e.ExtractBrand(model.RawProduct{Brand: tt.brand, Title: tt.title})
			if got != tt.want {
				t.Errorf("ExtractBrand() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExtractBrand_TitlePatterns(t *testing.T) {
	e := NewExtractor()

	tests := []struct {
		name  string
		title string
		want  string
	}{
		{
			name:  "hyphen separator",
			title: "Sony - Wireless Earbuds",
			want:  "Sony",
		},
		{
			name:  "en dash separator",
			title: "Bose – Noise Cancelling Headphones",
			want:  "Bose",
		},
		{
			name:  "comma separator keeps title case rule",
			title: "JBL, Bluetooth Speaker",
			want:  "Jbl", // 全大写转标题格，JBL 变为 Jbl
		},
		{
			name:  "by separator",
			title: "Echo Dot by Amazon",
			want:  "Echo Dot",
		},
		{
			name:  "pipe separator",
			title: "Logitech | Wireless Mouse",
			want:  "Logitech",
		},
		{
			name:  "first two words fallback",
			title: "Anker Soundcore Wireless Earbuds With Charging Case",
			want:  "Anker Soundcore",
		},
		{
			name:  "single word fallback",
			title: "Sennheiser",
			want:  "Sennheiser",
		},
		{
			name:  "excluded words reject all candidates",
			title: "replacement pack cable",
			want:  model.UnknownBrand,
		},
		{
			name:  "digits only candidate rejected",
			title: "123 456",
			want:  model.UnknownBrand,
		},
		{
			name:  "empty title",
			title: "",
			want:  model.UnknownBrand,
		},
		{
			name:  "lowercase brand title cased",
			title: "anker - USB C Charger",
			want:  "Anker",
		},
		{
			name:  "mixed case preserved",
			title: "SanDisk - 128GB Memory Card",
			want:  "SanDisk",
		},
		{
			name:  "invalid pattern candidate falls through to next pattern",
			title: "2-Pack, Belkin Cables", // 连字符候选 "2" 过短，逗号候选含 "pack"，两词候选也含 "pack"，单词候选 "2-Pack" 含 "pack"
			want:  model.UnknownBrand,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := e.ExtractBrand(model.RawProduct{Title: tt.title})
			if got != tt.want {
				t.Errorf("ExtractBrand(%q) = %q, want %q", tt.title, got, tt.want)
			}
		})
	}
}

func TestExtractBrand_Deterministic(t *testing.T) {
	e := NewExtractor()
	raw := model.RawProduct{Title: "Anker Soundcore Life P2 True Wireless Earbuds"}

	first := e.ExtractBrand(raw)
	for i := 0; i < 10; i++ {
		if got := e.ExtractBrand(raw); got != first {
			t.Fatalf("ExtractBrand() not deterministic: %q != %q", got, first)
		}
	}
}

func TestIsValidBrand(t *testing.T) {
	tests := []struct {
		brand string
		want  bool
	}{
		{"Sony", true},
		{"A", false},             // 过短
		{"5-pack widget", false}, // 排除词
		{"Compatible charger", false},
		{"12345", false}, // 纯数字
		{"12 34", false}, // 数字夹空格
		{"3M", true},     // 数字加字母可以是品牌
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.brand, func(t *testing.T) {
			if got := isValidBrand(tt.brand); got != tt.want {
				t.Errorf("isValidBrand(%q) = %v, want %v", tt.brand, got, tt.want)
			}
		})
	}
}

func TestCleanBrand(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"sony", "Sony"},
		{"SONY", "Sony"},
		{"SanDisk", "SanDisk"},
		{"anker  innovations", "Anker Innovations"},
		{"Belkin Shop", "Belkin"},
		{"LG Official", "Lg"}, // 全大写品牌同样被转为标题格，按既定规则不做白名单
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := cleanBrand(tt.in); got != tt.want {
				t.Errorf("cleanBrand(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

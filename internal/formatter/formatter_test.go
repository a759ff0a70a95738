package formatter

import "testing"

func TestCurrencyFormatter_FormatPrice(t *testing.T) {
	tests := []struct {
		name   string
		domain string
		price  *float64
		want   string
	}{
		{"us dollars", "amazon.com", floatPtr(79.99), "$79.99"},
		{"uk pounds", "amazon.co.uk", floatPtr(10), "£10.00"},
		{"missing price", "amazon.com", nil, "N/A"},
		{"unknown domain falls back to dollar", "amazon.unknown", floatPtr(5), "$5.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewCurrencyFormatter(tt.domain)
			if got := f.FormatPrice(tt.price); got != tt.want {
				t.Errorf("FormatPrice() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCurrencyFormatter_FormatDiscount(t *testing.T) {
	f := NewCurrencyFormatter("amazon.com")

	tests := []struct {
		discount float64
		want     string
	}{
		{20.0, "20.0%"},
		{33.33, "33.3%"},
		{0, "-"},
		{-5, "-"},
	}

	for _, tt := range tests {
		if got := f.FormatDiscount(tt.discount); got != tt.want {
			t.Errorf("FormatDiscount(%v) = %q, want %q", tt.discount, got, tt.want)
		}
	}
}

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		name  string
		value *int
		want  string
	}{
		{"small", intPtr(5), "5"},
		{"hundreds", intPtr(152), "152"},
		{"thousands", intPtr(1520), "1,520"},
		{"millions", intPtr(1234567), "1,234,567"},
		{"negative", intPtr(-1520), "-1,520"},
		{"missing", nil, "N/A"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatNumber(tt.value); got != tt.want {
				t.Errorf("FormatNumber() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFormatRating(t *testing.T) {
	if got := FormatRating(floatPtr(4.45)); got != "4.5" {
		t.Errorf("FormatRating(4.45) = %q, want %q", got, "4.5")
	}
	if got := FormatRating(nil); got != "N/A" {
		t.Errorf("FormatRating(nil) = %q, want N/A", got)
	}
}

func TestTruncateText(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		maxLength int
		want      string
	}{
		{"short text unchanged", "Sony Earbuds", 50, "Sony Earbuds"},
		{"exact length unchanged", "abcde", 5, "abcde"},
		{"long text truncated with suffix", "abcdefghij", 8, "abcde..."},
		{"empty text", "", 10, ""},
		{"tiny max length", "abcdefghij", 2, "ab"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TruncateText(tt.text, tt.maxLength); got != tt.want {
				t.Errorf("TruncateText() = %q, want %q", got, tt.want)
			}
		})
	}
}

// 辅助函数
func intPtr(i int) *int {
	return &i
}

func floatPtr(f float64) *float64 {
	return &f
}

package marketplace

import "testing"

func TestIsSupported(t *testing.T) {
	tests := []struct {
		domain string
		want   bool
	}{
		{"amazon.com", true},
		{"amazon.co.uk", true},
		{"amazon.co.jp", true},
		{"amazon.cn", false},
		{"ebay.com", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.domain, func(t *testing.T) {
			if got := IsSupported(tt.domain); got != tt.want {
				t.Errorf("IsSupported(%q) = %v, want %v", tt.domain, got, tt.want)
			}
		})
	}
}

func TestCurrency(t *testing.T) {
	tests := []struct {
		domain string
		want   string
	}{
		{"amazon.com", "$"},
		{"amazon.co.uk", "£"},
		{"amazon.de", "€"},
		{"amazon.co.jp", "¥"},
		{"amazon.in", "₹"},
		{"amazon.unknown", "$"}, // 未知站点回退到默认符号
		{"", "$"},
	}

	for _, tt := range tests {
		t.Run(tt.domain, func(t *testing.T) {
			if got := Currency(tt.domain); got != tt.want {
				t.Errorf("Currency(%q) = %q, want %q", tt.domain, got, tt.want)
			}
		})
	}
}

func TestDomains(t *testing.T) {
	domains := Domains()

	if len(domains) != 12 {
		t.Errorf("Domains() returned %d domains, want 12", len(domains))
	}

	// 结果应当有序且每个站点都受支持
	for i, domain := range domains {
		if i > 0 && domains[i-1] >= domain {
			t.Errorf("Domains() not sorted: %q >= %q", domains[i-1], domain)
		}
		if !IsSupported(domain) {
			t.Errorf("Domains() returned unsupported domain %q", domain)
		}
	}
}

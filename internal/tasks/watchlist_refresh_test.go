package tasks

import (
	"testing"
	"time"

	"amzlens/internal/config"

	"go.uber.org/zap"
)

func TestWatchlistRefreshTask_Enabled(t *testing.T) {
	logger := zap.NewNop()

	tests := []struct {
		name string
		cfg  *config.WatchlistsConfig
		want bool
	}{
		{
			name: "enabled with entries",
			cfg: &config.WatchlistsConfig{
				Enabled: true,
				Entries: []config.WatchlistEntryConfig{{Name: "earbuds", Query: "wireless earbuds", Enabled: true}},
			},
			want: true,
		},
		{
			name: "disabled by flag",
			cfg: &config.WatchlistsConfig{
				Enabled: false,
				Entries: []config.WatchlistEntryConfig{{Name: "earbuds", Query: "wireless earbuds", Enabled: true}},
			},
			want: false,
		},
		{
			name: "enabled but no entries",
			cfg:  &config.WatchlistsConfig{Enabled: true},
			want: false,
		},
		{
			name: "nil config",
			cfg:  nil,
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			task := NewWatchlistRefreshTask(nil, nil, tt.cfg, logger)
			if got := task.Enabled(); got != tt.want {
				t.Errorf("Enabled() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestWatchlistRefreshTask_Schedule(t *testing.T) {
	logger := zap.NewNop()

	withSchedule := NewWatchlistRefreshTask(nil, nil, &config.WatchlistsConfig{Schedule: "0 30 * * * *"}, logger)
	if got := withSchedule.Schedule(); got != "0 30 * * * *" {
		t.Errorf("Schedule() = %q, want configured value", got)
	}

	withoutSchedule := NewWatchlistRefreshTask(nil, nil, &config.WatchlistsConfig{}, logger)
	if got := withoutSchedule.Schedule(); got != defaultWatchlistSchedule {
		t.Errorf("Schedule() = %q, want default %q", got, defaultWatchlistSchedule)
	}
}

func TestWatchlistRefreshTask_Timeout(t *testing.T) {
	task := NewWatchlistRefreshTask(nil, nil, nil, zap.NewNop())
	if task.Timeout() <= 0 {
		t.Error("Timeout() should be positive")
	}
	if task.Timeout() > time.Hour {
		t.Errorf("Timeout() = %v, unexpectedly long", task.Timeout())
	}
}

func TestBuildSearchRequest(t *testing.T) {
	tests := []struct {
		name       string
		entry      config.WatchlistEntryConfig
		wantDomain string
		wantPages  int
	}{
		{
			name:       "defaults applied",
			entry:      config.WatchlistEntryConfig{Query: "wireless earbuds"},
			wantDomain: "amazon.com",
			wantPages:  1,
		},
		{
			name: "explicit values kept",
			entry: config.WatchlistEntryConfig{
				Query:  "bluetooth speaker",
				Domain: "amazon.de",
				Pages:  3,
			},
			wantDomain: "amazon.de",
			wantPages:  3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := buildSearchRequest(tt.entry)
			if req.Query != tt.entry.Query {
				t.Errorf("Query = %q, want %q", req.Query, tt.entry.Query)
			}
			if req.Domain != tt.wantDomain {
				t.Errorf("Domain = %q, want %q", req.Domain, tt.wantDomain)
			}
			if req.Pages != tt.wantPages {
				t.Errorf("Pages = %d, want %d", req.Pages, tt.wantPages)
			}
			if !req.IncludeAds || !req.IncludeOrganic {
				t.Error("watchlist requests should include both ads and organic results")
			}
		})
	}
}

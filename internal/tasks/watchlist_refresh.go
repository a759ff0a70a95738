package tasks

import (
	"context"
	"errors"
	"fmt"
	"time"

	"amzlens/internal/api"
	"amzlens/internal/config"
	"amzlens/internal/model"
	"amzlens/internal/repository"
	"amzlens/internal/searcher"

	"go.uber.org/zap"
)

// 未配置 schedule 时默认每 6 小时刷新一次
const defaultWatchlistSchedule = "0 0 */6 * * *"

// WatchlistRefreshTask 定时刷新监控查询的任务
// 对每个启用的监控项执行一次搜索，并将结果落库为快照
type WatchlistRefreshTask struct {
	searcher *searcher.Searcher
	repo     *repository.SearchRepository
	cfg      *config.WatchlistsConfig
	logger   *zap.Logger
}

// NewWatchlistRefreshTask 创建监控刷新任务
func NewWatchlistRefreshTask(s *searcher.Searcher, repo *repository.SearchRepository, cfg *config.WatchlistsConfig, logger *zap.Logger) *WatchlistRefreshTask {
	if cfg == nil {
		cfg = &config.WatchlistsConfig{}
	}
	return &WatchlistRefreshTask{
		searcher: s,
		repo:     repo,
		cfg:      cfg,
		logger:   logger,
	}
}

func (t *WatchlistRefreshTask) Name() string {
	return "watchlist_refresh"
}

func (t *WatchlistRefreshTask) Schedule() string {
	if t.cfg.Schedule != "" {
		return t.cfg.Schedule
	}
	return defaultWatchlistSchedule
}

func (t *WatchlistRefreshTask) Timeout() time.Duration {
	return 20 * time.Minute
}

func (t *WatchlistRefreshTask) Enabled() bool {
	return t.cfg.Enabled && len(t.cfg.Entries) > 0
}

// Run 依次刷新所有启用的监控项
// 单个监控项失败记录日志后继续；配额耗尽时中止整轮刷新
func (t *WatchlistRefreshTask) Run(ctx context.Context) error {
	var refreshed, failed int

	for _, entry := range t.cfg.Entries {
		if !entry.Enabled {
			continue
		}

		if ctx.Err() != nil {
			return ctx.Err()
		}

		if err := t.refreshEntry(ctx, entry); err != nil {
			if errors.Is(err, api.ErrQuotaExceeded) {
				if t.logger != nil {
					t.logger.Warn("quota exceeded, aborting watchlist refresh",
						zap.String("entry", entry.Name),
						zap.Int("refreshed", refreshed),
					)
				}
				return fmt.Errorf("watchlist refresh aborted after %d entries: %w", refreshed, err)
			}

			failed++
			if t.logger != nil {
				t.logger.Error("failed to refresh watchlist entry",
					zap.String("entry", entry.Name),
					zap.String("query", entry.Query),
					zap.Error(err),
				)
			}
			continue
		}

		refreshed++
	}

	if t.logger != nil {
		t.logger.Info("watchlist refresh completed",
			zap.Int("refreshed", refreshed),
			zap.Int("failed", failed),
		)
	}

	if refreshed == 0 && failed > 0 {
		return fmt.Errorf("all %d watchlist entries failed", failed)
	}

	return nil
}

// refreshEntry 刷新单个监控项并保存快照
func (t *WatchlistRefreshTask) refreshEntry(ctx context.Context, entry config.WatchlistEntryConfig) error {
	req := buildSearchRequest(entry)

	result, err := t.searcher.Search(ctx, req)
	if err != nil {
		return err
	}

	snapshot := &model.SearchSnapshot{
		Query:     req.Query,
		Domain:    req.Domain,
		Pages:     result.PagesFetched,
		Source:    "watchlist",
		Products:  result.Products,
		FetchedAt: time.Now(),
	}

	if err := t.repo.SaveSnapshot(ctx, snapshot); err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}

	if t.logger != nil {
		t.logger.Info("watchlist entry refreshed",
			zap.String("entry", entry.Name),
			zap.String("query", req.Query),
			zap.Int("product_count", len(result.Products)),
		)
	}

	return nil
}

// buildSearchRequest 将监控项配置转换为搜索请求，缺省字段取默认值
func buildSearchRequest(entry config.WatchlistEntryConfig) model.SearchRequest {
	req := model.DefaultSearchRequest()
	req.Query = entry.Query

	if entry.Domain != "" {
		req.Domain = entry.Domain
	}
	if entry.Pages > 0 {
		req.Pages = entry.Pages
	}
	req.MinRating = entry.MinRating
	req.MinReviews = entry.MinReviews

	return req
}

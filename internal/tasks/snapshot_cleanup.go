package tasks

import (
	"context"
	"time"

	"amzlens/internal/repository"

	"go.uber.org/zap"
)

// SnapshotCleanupTask 清理过期搜索快照的任务
type SnapshotCleanupTask struct {
	repo      *repository.SearchRepository
	retention time.Duration
	logger    *zap.Logger
}

// NewSnapshotCleanupTask 创建快照清理任务
// retention 为 0 时任务不启用，快照永久保留
func NewSnapshotCleanupTask(repo *repository.SearchRepository, retention time.Duration, logger *zap.Logger) *SnapshotCleanupTask {
	return &SnapshotCleanupTask{
		repo:      repo,
		retention: retention,
		logger:    logger,
	}
}

func (t *SnapshotCleanupTask) Name() string {
	return "snapshot_cleanup"
}

func (t *SnapshotCleanupTask) Schedule() string {
	// 每天凌晨2点执行
	return "0 0 2 * * *"
}

func (t *SnapshotCleanupTask) Timeout() time.Duration {
	return 10 * time.Minute
}

func (t *SnapshotCleanupTask) Enabled() bool {
	return t.retention > 0
}

func (t *SnapshotCleanupTask) Run(ctx context.Context) error {
	cutoff := time.Now().Add(-t.retention)

	deleted, err := t.repo.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		return err
	}

	if t.logger != nil {
		t.logger.Info("snapshot cleanup completed",
			zap.Time("cutoff", cutoff),
			zap.Int64("deleted_count", deleted),
		)
	}

	return nil
}

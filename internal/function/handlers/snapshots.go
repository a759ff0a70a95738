package handlers

import (
	"net/http"
	"strconv"

	"amzlens/internal/database"
	"amzlens/internal/repository"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SnapshotHandler 搜索快照处理器
type SnapshotHandler struct {
	logger *zap.Logger
	repo   *repository.SearchRepository
}

// NewSnapshotHandler 创建快照处理器
func NewSnapshotHandler(logger *zap.Logger, repo *repository.SearchRepository) *SnapshotHandler {
	return &SnapshotHandler{
		logger: logger,
		repo:   repo,
	}
}

// NewSnapshotHandlerWithDeps 通过依赖创建快照处理器
// MongoDB 未启用时返回 nil，快照接口不注册
func NewSnapshotHandlerWithDeps(deps DependenciesProvider) *SnapshotHandler {
	if deps == nil {
		return nil
	}

	logger := deps.GetLogger()
	if logger == nil {
		return nil
	}

	dbs := database.GetGlobal()
	if dbs == nil || dbs.MongoDB == nil {
		logger.Warn("MongoDB not available, snapshot endpoints disabled")
		return nil
	}

	storage := database.NewStorage(dbs.MongoDB, logger)
	return &SnapshotHandler{
		logger: logger,
		repo:   repository.NewSearchRepository(storage, logger),
	}
}

// List 返回最近的搜索快照摘要
func (h *SnapshotHandler) List(c *gin.Context) {
	limit := 20
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 || n > 200 {
			jsonBadRequest(c, h.logger, "limit must be an integer between 1 and 200", err)
			return
		}
		limit = n
	}

	snapshots, err := h.repo.ListRecent(c.Request.Context(), limit)
	if err != nil {
		jsonInternalError(c, h.logger, "failed to list snapshots", err)
		return
	}

	total, err := h.repo.CountSnapshots(c.Request.Context())
	if err != nil {
		jsonInternalError(c, h.logger, "failed to count snapshots", err)
		return
	}

	jsonSuccess(c, gin.H{
		"snapshots": snapshots,
		"count":     len(snapshots),
		"total":     total,
	})
}

// Get 返回单个快照的完整内容（含商品明细）
func (h *SnapshotHandler) Get(c *gin.Context) {
	id := c.Param("id")

	snapshot, err := h.repo.GetByID(c.Request.Context(), id)
	if err != nil {
		jsonBadRequest(c, h.logger, "invalid snapshot id", err)
		return
	}
	if snapshot == nil {
		jsonError(c, h.logger, http.StatusNotFound, "snapshot not found", nil)
		return
	}

	jsonSuccess(c, snapshot)
}
